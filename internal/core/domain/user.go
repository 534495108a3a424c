package domain

import (
	"strings"
	"time"
)

// Role is the closed set of roles a user can hold.
type Role string

const (
	RoleAdmin   Role = "ADMIN"
	RoleRM      Role = "RM"
	RoleAnalyst Role = "ANALYST"
)

// ParseRole returns the Role named by s, ignoring case and surrounding spaces.
func ParseRole(s string) (Role, bool) {
	switch Role(strings.ToUpper(strings.TrimSpace(s))) {
	case RoleAdmin:
		return RoleAdmin, true
	case RoleRM:
		return RoleRM, true
	case RoleAnalyst:
		return RoleAnalyst, true
	}
	return "", false
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleRM, RoleAnalyst:
		return true
	}
	return false
}

// User models an authenticated actor in the system.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Actor is the identity carried by a verified session token.
type Actor struct {
	ID       string
	Username string
	Role     Role
}
