package services

import (
	"context"

	"github.com/slimatic/zakapp-sub006/internal/core/domain"
	"github.com/slimatic/zakapp-sub006/internal/dto"
)

// UserSvcFacade covers the minimum user surface needed for user-scoped
// engine operations: registration, credential verification, and lookup.
type UserSvcFacade interface {
	// RegisterUser creates a new user with a bcrypt-hashed password.
	RegisterUser(ctx context.Context, req dto.RegisterUserRequest) (*domain.User, error)

	// AuthenticateUser verifies credentials and returns the user on success.
	AuthenticateUser(ctx context.Context, username, password string) (*domain.User, error)

	// GetUserByID retrieves a user by ID.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
}
