package models

import (
	"strings"
	"time"

	"gorm.io/datatypes"
)

type Role string

const (
	RoleClient     Role = "client"
	RoleFreelancer Role = "freelancer"
	RoleAdmin      Role = "admin"
)

// internal/models/user.go
type User struct {
	ID    uint   `gorm:"primaryKey" json:"id" db:"id"`
	Name  string `gorm:"type:varchar(120);not null" json:"name" db:"name"`
	Email string `gorm:"type:varchar(190);uniqueIndex;not null" json:"email" db:"email"`

	Password string `gorm:"not null" json:"-" db:"password_hash"`

	Bio          string                      `gorm:"type:text" json:"bio" db:"bio"`
	Skills       datatypes.JSONSlice[string] `json:"skills" db:"skills"`
	HourlyRate   float64                     `json:"hourly_rate" db:"hourly_rate"`
	IsFreelancer bool                        `gorm:"not null;default:false;index" json:"is_freelancer" db:"is_freelancer"`

	// computed from the configured admin email, never persisted
	IsAdmin bool `gorm:"-" json:"is_admin" db:"-"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// ApplyAdmin sets IsAdmin from the admin email.
func (u *User) ApplyAdmin(adminEmail string) {
	u.IsAdmin = adminEmail != "" && strings.EqualFold(strings.TrimSpace(u.Email), strings.TrimSpace(adminEmail))
}

// Role returns the role carried in session tokens.
func (u *User) Role(adminEmail string) Role {
	u.ApplyAdmin(adminEmail)
	switch {
	case u.IsAdmin:
		return RoleAdmin
	case u.IsFreelancer:
		return RoleFreelancer
	default:
		return RoleClient
	}
}
