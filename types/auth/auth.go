package auth

import (
	"fmt"
	"strings"

	"runoot/models/user"
)

type RegisterRequest struct {
	Username  string `json:"username"`
	LegalName string `json:"legal_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Password  string `json:"password"`
	Role      string `json:"role"`
	Company   string `json:"company"`
}

func (r RegisterRequest) Validate() error {
	if r.Username == "" {
		return fmt.Errorf("username is required")
	}
	if r.Email == "" || !strings.Contains(r.Email, "@") {
		return fmt.Errorf("a valid email is required")
	}
	if len(r.Password) < 8 {
		return fmt.Errorf("password must be at least 8 characters")
	}
	role := user.Role(r.Role)
	if !role.IsValid() {
		return fmt.Errorf("role must be one of team_leader, operator, runner")
	}
	// Staff accounts are provisioned out of band, never self-registered
	if role.IsStaff() {
		return fmt.Errorf("cannot self-register a staff account")
	}
	return nil
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r LoginRequest) Validate() error {
	if r.Email == "" {
		return fmt.Errorf("email is required")
	}
	if r.Password == "" {
		return fmt.Errorf("password is required")
	}
	return nil
}
