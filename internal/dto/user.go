package dto

import (
	"time"

	"github.com/slimatic/zakapp-sub006/internal/core/domain"
)

// RegisterUserRequest defines the data needed to register a new user.
type RegisterUserRequest struct {
	Username        string `json:"username" binding:"required,min=3,max=50"`
	Password        string `json:"password" binding:"required,min=8"`
	Name            string `json:"name" binding:"required"`
	DefaultCurrency string `json:"defaultCurrency" binding:"omitempty,uppercase,len=3"`
}

// LoginRequest defines the credentials for a login attempt.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the issued bearer token.
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// UserResponse defines the data returned for a user.
type UserResponse struct {
	UserID          string    `json:"userID"`
	Username        string    `json:"username"`
	Name            string    `json:"name"`
	DefaultCurrency string    `json:"defaultCurrency"`
	CreatedAt       time.Time `json:"createdAt"`
}

// ToUserResponse converts a domain.User to a UserResponse DTO
func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		UserID:          u.UserID,
		Username:        u.Username,
		Name:            u.Name,
		DefaultCurrency: u.DefaultCurrency,
		CreatedAt:       u.CreatedAt,
	}
}
