package api

import (
	"time"

	"github.com/tharadol/sport-booking-backend/internal/user"
)

// RegisterRequest is the payload for POST /v1/auth/register.
type RegisterRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required"`
	DisplayName string `json:"display_name"`
	PhoneNumber string `json:"phone_number" binding:"omitempty,max=10"`
}

// LoginRequest is the payload for POST /v1/auth/login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UserResponse is the shape of user data returned in API responses.
type UserResponse struct {
	ID          string     `json:"id"`
	Email       string     `json:"email"`
	DisplayName *string    `json:"display_name,omitempty"`
	PhoneNumber *string    `json:"phone_number,omitempty"`
	Role        string     `json:"role"`
	IsActive    bool       `json:"is_active"`
	CreatedAt   time.Time  `json:"created_at"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
}

// RegisterResponse is the response for POST /v1/auth/register.
type RegisterResponse struct {
	User UserResponse `json:"user"`
}

// LoginResponse is the response for POST /v1/auth/login.
type LoginResponse struct {
	AccessToken string       `json:"access_token"`
	User        UserResponse `json:"user"`
}

// MeResponse is the response for GET /v1/me.
type MeResponse struct {
	User UserResponse `json:"user"`
}

// NewUserResponse converts a domain user to the API representation.
func NewUserResponse(u *user.User) UserResponse {
	var lastLoginAt *time.Time
	if u.LastLoginAt != nil {
		ll := *u.LastLoginAt
		lastLoginAt = &ll
	}

	return UserResponse{
		ID:          u.ID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		PhoneNumber: u.PhoneNumber,
		Role:        string(u.Role),
		IsActive:    u.IsActive,
		CreatedAt:   u.CreatedAt,
		LastLoginAt: lastLoginAt,
	}
}
