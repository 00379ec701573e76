package utils

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"runoot/models/user"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// HashPassword converts a plain text password into a hashed version
func HashPassword(password string) (string, error) {
	// Cost factor of 12 balances security and login latency
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		return "", errors.New("failed to hash password")
	}
	return string(bytes), nil
}

// CheckPasswordHash compares a password against a hash
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// GenerateToken issues an HMAC-signed JWT for the given profile
func GenerateToken(profile *user.Profile) (string, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return "", fmt.Errorf("JWT_SECRET is not configured")
	}

	ttl := 24 * time.Hour
	claims := jwt.MapClaims{
		"id":       profile.ID,
		"uuid":     profile.Uuid,
		"username": profile.Username,
		"role":     profile.Role.String(),
		"iat":      time.Now().Unix(),
		"exp":      time.Now().Add(ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

var slugStrip = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify collapses a free-text name into a lowercase filename-safe slug
func Slugify(s string) string {
	slug := slugStrip.ReplaceAllString(strings.ToLower(s), "-")
	slug = strings.Trim(slug, "-")
	if slug == "" {
		slug = "file"
	}
	if len(slug) > 60 {
		slug = slug[:60]
	}
	return slug
}

// FormatMoney renders a price for notification and email bodies
func FormatMoney(amount float64, currency string) string {
	return fmt.Sprintf("%.2f %s", amount, strings.ToUpper(currency))
}
