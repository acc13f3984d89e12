package repositories

import (
	"context"

	"github.com/slimatic/zakapp-sub006/internal/core/domain"
)

// AssetRepository defines persistence operations for assets. All lookups are
// scoped by user; an asset belonging to another user is reported as not found.
type AssetRepository interface {
	// SaveAsset inserts a new asset.
	SaveAsset(ctx context.Context, asset domain.Asset) error

	// FindAssetByID retrieves a single asset owned by the user.
	FindAssetByID(ctx context.Context, userID, assetID string) (*domain.Asset, error)

	// ListActiveAssetsByUser retrieves the user's active assets.
	ListActiveAssetsByUser(ctx context.Context, userID string) ([]domain.Asset, error)

	// UpdateAsset persists changes to an existing asset owned by the user.
	UpdateAsset(ctx context.Context, asset domain.Asset) error

	// DeactivateAsset soft-deletes an asset (IsActive = false).
	DeactivateAsset(ctx context.Context, userID, assetID, updaterUserID string) error
}

// AssetRepositoryWithTx combines asset persistence with transaction management
type AssetRepositoryWithTx interface {
	AssetRepository
	TransactionManager
}
