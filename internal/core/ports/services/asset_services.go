package services

import (
	"context"

	"github.com/slimatic/zakapp-sub006/internal/core/domain"
	"github.com/slimatic/zakapp-sub006/internal/dto"
)

// AssetReaderSvc defines read operations for assets
type AssetReaderSvc interface {
	// GetAsset retrieves a single asset owned by the user.
	GetAsset(ctx context.Context, userID, assetID string) (*domain.Asset, error)

	// ListAssets retrieves the user's active assets.
	ListAssets(ctx context.Context, userID string) ([]domain.Asset, error)
}

// AssetWriterSvc defines write operations for assets. Every write runs the
// classification pipeline so the stored modifier matches the stored flags.
type AssetWriterSvc interface {
	// CreateAsset registers and classifies a new asset.
	CreateAsset(ctx context.Context, userID string, req dto.CreateAssetRequest) (*domain.Asset, error)

	// UpdateAsset applies changes and re-classifies the asset.
	UpdateAsset(ctx context.Context, userID, assetID string, req dto.UpdateAssetRequest) (*domain.Asset, error)

	// DeactivateAsset soft-deletes an asset.
	DeactivateAsset(ctx context.Context, userID, assetID string) error
}

// AssetSvcFacade combines all asset-related service interfaces
type AssetSvcFacade interface {
	AssetReaderSvc
	AssetWriterSvc
}
