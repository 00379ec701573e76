package user

import (
	"time"
)

// Profile roles
type Role string

const (
	RoleTeamLeader Role = "team_leader"
	RoleOperator   Role = "operator"
	RoleRunner     Role = "runner"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "superadmin"
)

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	switch r {
	case RoleTeamLeader, RoleOperator, RoleRunner, RoleAdmin, RoleSuperAdmin:
		return true
	default:
		return false
	}
}

// IsStaff returns true for roles that receive admin-side notifications
func (r Role) IsStaff() bool {
	return r == RoleAdmin || r == RoleSuperAdmin
}

// Profile represents a marketplace account (team leader, operator, runner or staff)
type Profile struct {
	ID            uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	Uuid          string  `gorm:"type:varchar(255);not null;unique" json:"uuid"`
	Username      string  `gorm:"type:varchar(255);not null;unique" json:"username"`
	LegalName     string  `gorm:"type:varchar(255);not null" json:"legal_name"`
	Email         string  `gorm:"type:varchar(255);not null;unique" json:"email"`
	EmailVerified bool    `gorm:"type:bool;default:false" json:"email_verified"`
	Phone         *string `gorm:"type:varchar(20)" json:"phone,omitempty"`
	PasswordHash  string  `gorm:"type:varchar(255);not null" json:"-"`
	Role          Role    `gorm:"type:varchar(50);not null;default:runner" json:"role"`
	Company       *string `gorm:"type:varchar(255)" json:"company,omitempty"`
	Avatar        string  `gorm:"type:varchar(2048)" json:"avatar"`

	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt *time.Time `gorm:"index" json:"deleted_at,omitempty"`
}

// TableName sets the table name for the Profile model
func (Profile) TableName() string {
	return "profiles"
}
