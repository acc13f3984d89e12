package services

import (
	"context"

	"github.com/slimatic/zakapp-sub006/internal/core/domain"
	"github.com/slimatic/zakapp-sub006/internal/dto"
)

// MethodologySvcFacade manages user-defined CUSTOM methodology configs.
type MethodologySvcFacade interface {
	// CreateMethodologyConfig persists a new config for the user.
	CreateMethodologyConfig(ctx context.Context, userID string, req dto.CreateMethodologyConfigRequest) (*domain.MethodologyConfig, error)

	// GetMethodologyConfig retrieves a config owned by the user.
	GetMethodologyConfig(ctx context.Context, userID, configID string) (*domain.MethodologyConfig, error)

	// ListMethodologyConfigs retrieves all configs owned by the user.
	ListMethodologyConfigs(ctx context.Context, userID string) ([]domain.MethodologyConfig, error)

	// UpdateMethodologyConfig applies changes to a config owned by the user.
	UpdateMethodologyConfig(ctx context.Context, userID, configID string, req dto.UpdateMethodologyConfigRequest) (*domain.MethodologyConfig, error)

	// DeleteMethodologyConfig removes a config owned by the user.
	DeleteMethodologyConfig(ctx context.Context, userID, configID string) error
}
