package middleware

import (
	"fmt"
	"os"
	"strings"

	"runoot/constants"
	"runoot/types"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// VerifyJWT validates a token against the app's HMAC secret and returns its
// claims.
func VerifyJWT(tokenString string) (jwt.MapClaims, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET is not configured")
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse JWT: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid JWT token")
	}
	return claims, nil
}

func hasRole(tokenString string, requiredRoles []string) (jwt.MapClaims, bool) {
	claims, err := VerifyJWT(tokenString)
	if err != nil {
		return nil, false
	}

	for _, required := range requiredRoles {
		if required == constants.RoleAny {
			return claims, true
		}
	}

	role, ok := claims["role"].(string)
	if !ok {
		return claims, false
	}

	for _, required := range requiredRoles {
		if role == required {
			return claims, true
		}
	}
	return claims, false
}

// RequireRoles checks for a valid bearer token carrying one of the given
// roles, and attaches the claims to the request context.
func RequireRoles(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var token string

		authHeader := c.Get("Authorization")
		if authHeader != "" {
			tokenParts := strings.Split(authHeader, " ")
			if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
				return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
					Status:  fiber.StatusUnauthorized,
					Message: "Invalid authorization header format",
				})
			}
			token = tokenParts[1]
		} else {
			// Cookie fallback for browser sessions
			token = c.Cookies("access")
			if token == "" {
				return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
					Status:  fiber.StatusUnauthorized,
					Message: "Authorization token missing",
				})
			}
		}

		claims, allowed := hasRole(token, roles)
		if !allowed {
			return c.Status(fiber.StatusForbidden).JSON(types.ApiResponse{
				Status:  fiber.StatusForbidden,
				Message: "Insufficient permissions",
			})
		}

		c.Locals("user", claims)
		return c.Next()
	}
}

// RequireAuthentication only requires a valid token, any role
func RequireAuthentication() fiber.Handler {
	return RequireRoles(constants.RoleAny)
}

// CallerID extracts the authenticated profile id from the request context
func CallerID(c *fiber.Ctx) (uint, error) {
	claims, ok := c.Locals("user").(jwt.MapClaims)
	if !ok {
		return 0, fmt.Errorf("user claims missing from context")
	}
	// JSON numbers decode as float64
	id, ok := claims["id"].(float64)
	if !ok || id <= 0 {
		return 0, fmt.Errorf("profile id missing from token")
	}
	return uint(id), nil
}

// CallerRole extracts the authenticated role, or "" when absent
func CallerRole(c *fiber.Ctx) string {
	claims, ok := c.Locals("user").(jwt.MapClaims)
	if !ok {
		return ""
	}
	role, _ := claims["role"].(string)
	return role
}
