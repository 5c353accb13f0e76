package dto

import (
	"time"

	"agriaccount/internal/domain/auth"
)

// LoginRequest contains login credentials.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RegisterRequest contains new user data. Admin-only endpoint.
type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	FullName string `json:"fullName"`
	Role     string `json:"role"`
}

// ChangePasswordRequest contains password change data.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required"`
}

// UserResponse contains public user fields.
type UserResponse struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	FullName  string    `json:"fullName"`
	Role      string    `json:"role"`
	IsAdmin   bool      `json:"isAdmin"`
	CreatedAt time.Time `json:"createdAt"`
}

// FromUser converts domain user to response DTO.
func FromUser(u *auth.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		FullName:  u.FullName,
		Role:      u.Role,
		IsAdmin:   u.IsAdmin,
		CreatedAt: u.CreatedAt,
	}
}

// LoginResponse contains the token and user info.
type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      UserResponse `json:"user"`
}

// FromLoginResult converts a domain login result to response DTO.
func FromLoginResult(r *auth.LoginResult) LoginResponse {
	return LoginResponse{
		Token:     r.Token,
		ExpiresAt: r.ExpiresAt,
		User:      FromUser(r.User),
	}
}
