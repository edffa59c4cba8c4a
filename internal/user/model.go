package user

import (
	"errors"
	"time"
)

var (
	ErrNotFound           = errors.New("user not found")
	ErrEmailAlreadyUsed   = errors.New("email already used")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInactiveUser       = errors.New("user is inactive")
)

// Role distinguishes regular users from administrators. Administrators manage
// field inventory and booking confirmations.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User represents an account in the system.
type User struct {
	ID           string // UUID
	Email        string
	PasswordHash string
	DisplayName  *string
	PhoneNumber  *string
	Role         Role
	IsActive     bool
	CreatedAt    time.Time
	LastLoginAt  *time.Time
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
