package repositories

import (
	"context"

	"github.com/slimatic/zakapp-sub006/internal/core/domain"
)

// MethodologyConfigRepository defines persistence operations for user-defined
// CUSTOM methodology configs.
type MethodologyConfigRepository interface {
	// SaveMethodologyConfig inserts a new config.
	SaveMethodologyConfig(ctx context.Context, config domain.MethodologyConfig) error

	// FindMethodologyConfigByID retrieves a config owned by the user.
	FindMethodologyConfigByID(ctx context.Context, userID, configID string) (*domain.MethodologyConfig, error)

	// ListMethodologyConfigsByUser retrieves all configs owned by the user.
	ListMethodologyConfigsByUser(ctx context.Context, userID string) ([]domain.MethodologyConfig, error)

	// UpdateMethodologyConfig persists changes to an existing config.
	UpdateMethodologyConfig(ctx context.Context, config domain.MethodologyConfig) error

	// DeleteMethodologyConfig removes a config owned by the user.
	DeleteMethodologyConfig(ctx context.Context, userID, configID string) error
}
