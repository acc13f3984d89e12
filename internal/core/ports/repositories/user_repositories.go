package repositories

import (
	"context"

	"github.com/slimatic/zakapp-sub006/internal/core/domain"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	// SaveUser inserts a new user.
	SaveUser(ctx context.Context, user domain.User) error

	// FindUserByID retrieves a user by ID.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)

	// FindUserByUsername retrieves a user by username.
	FindUserByUsername(ctx context.Context, username string) (*domain.User, error)
}
