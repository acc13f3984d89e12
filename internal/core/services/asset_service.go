package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/slimatic/zakapp-sub006/internal/apperrors"
	"github.com/slimatic/zakapp-sub006/internal/core/domain"
	portsrepo "github.com/slimatic/zakapp-sub006/internal/core/ports/repositories"
	portssvc "github.com/slimatic/zakapp-sub006/internal/core/ports/services"
	"github.com/slimatic/zakapp-sub006/internal/dto"
	"github.com/slimatic/zakapp-sub006/internal/middleware"
	"github.com/slimatic/zakapp-sub006/internal/utils/zakat"
)

// assetService manages user assets and keeps their derived classification
// consistent with their flags on every write.
type assetService struct {
	assetRepo portsrepo.AssetRepository
}

// NewAssetService creates a new asset service.
func NewAssetService(assetRepo portsrepo.AssetRepository) portssvc.AssetSvcFacade {
	return &assetService{assetRepo: assetRepo}
}

var _ portssvc.AssetSvcFacade = (*assetService)(nil)

// treatmentFromFlags converts the wire-level flag pair plus retirement config
// into the internal tagged treatment. Both flags set at once is rejected
// rather than silently resolved, since the request carries no ordering.
func treatmentFromFlags(subCategory string, passive, restricted bool, retirement *dto.RetirementConfigDTO) (domain.ZakatTreatment, error) {
	if passive && restricted {
		return domain.ZakatTreatment{}, fmt.Errorf("%w: isPassiveInvestment and isRestrictedAccount are mutually exclusive", apperrors.ErrValidation)
	}
	if domain.IsRetirementSubCategory(subCategory) && retirement != nil {
		if err := validateRetirementConfig(retirement); err != nil {
			return domain.ZakatTreatment{}, err
		}
		return domain.ZakatTreatment{
			Kind: domain.TreatmentRetirement,
			Retirement: &domain.RetirementConfig{
				Methodology:       domain.RetirementMethodology(retirement.Methodology),
				WithdrawalPenalty: retirement.WithdrawalPenalty,
				EstimatedTaxRate:  retirement.EstimatedTaxRate,
			},
		}, nil
	}
	if restricted {
		return domain.ZakatTreatment{Kind: domain.TreatmentRestricted}, nil
	}
	if passive {
		return domain.ZakatTreatment{Kind: domain.TreatmentPassive}, nil
	}
	return domain.FullTreatment(), nil
}

func validateRetirementConfig(cfg *dto.RetirementConfigDTO) error {
	one := decimal.NewFromInt(1)
	if cfg.WithdrawalPenalty.IsNegative() || cfg.WithdrawalPenalty.GreaterThan(one) {
		return fmt.Errorf("%w: withdrawalPenalty must be within [0,1]", apperrors.ErrValidation)
	}
	if cfg.EstimatedTaxRate.IsNegative() || cfg.EstimatedTaxRate.GreaterThan(one) {
		return fmt.Errorf("%w: estimatedTaxRate must be within [0,1]", apperrors.ErrValidation)
	}
	return nil
}

// CreateAsset registers a new asset and classifies it.
func (s *assetService) CreateAsset(ctx context.Context, userID string, req dto.CreateAssetRequest) (*domain.Asset, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	category := domain.AssetCategory(req.Category)
	if !category.IsValid() {
		return nil, fmt.Errorf("%w: unknown asset category '%s'", apperrors.ErrValidation, req.Category)
	}
	if req.Value.IsNegative() {
		return nil, fmt.Errorf("%w: asset value cannot be negative", apperrors.ErrValidation)
	}

	treatment, err := treatmentFromFlags(req.SubCategory, req.IsPassiveInvestment, req.IsRestrictedAccount, req.RetirementConfig)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	acquisitionDate := now
	if req.AcquisitionDate != nil {
		acquisitionDate = *req.AcquisitionDate
	}

	asset := domain.Asset{
		AssetID:         uuid.NewString(),
		UserID:          userID,
		Name:            req.Name,
		Category:        category,
		SubCategory:     req.SubCategory,
		Value:           req.Value,
		CurrencyCode:    req.CurrencyCode,
		AcquisitionDate: acquisitionDate,
		ZakatEligible:   true,
		Treatment:       treatment,
		IsActive:        true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if req.ZakatEligible != nil {
		asset.ZakatEligible = *req.ZakatEligible
		// An explicit eligibility choice at creation counts as a manual
		// override and disables jewelry auto-exemption for this asset.
		asset.IsEligibilityManual = true
	}

	// Jewelry exemption is applied at calculation time against the active
	// methodology config; at write time we only normalize and derive.
	asset = zakat.Classify(asset, nil)

	if err := s.assetRepo.SaveAsset(ctx, asset); err != nil {
		logger.Error("Failed to save asset", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to create asset: %w", err)
	}

	return &asset, nil
}

// GetAsset retrieves a single asset owned by the user.
func (s *assetService) GetAsset(ctx context.Context, userID, assetID string) (*domain.Asset, error) {
	asset, err := s.assetRepo.FindAssetByID(ctx, userID, assetID)
	if err != nil {
		return nil, fmt.Errorf("failed to get asset: %w", err)
	}
	return asset, nil
}

// ListAssets retrieves the user's active assets.
func (s *assetService) ListAssets(ctx context.Context, userID string) ([]domain.Asset, error) {
	assets, err := s.assetRepo.ListActiveAssetsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list assets: %w", err)
	}
	if assets == nil {
		return []domain.Asset{}, nil
	}
	return assets, nil
}

// UpdateAsset applies the requested changes and re-runs classification so the
// stored modifier never drifts from the stored flags.
func (s *assetService) UpdateAsset(ctx context.Context, userID, assetID string, req dto.UpdateAssetRequest) (*domain.Asset, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	asset, err := s.assetRepo.FindAssetByID(ctx, userID, assetID)
	if err != nil {
		return nil, fmt.Errorf("failed to load asset for update: %w", err)
	}

	if req.Name != nil {
		asset.Name = *req.Name
	}
	if req.Category != nil {
		category := domain.AssetCategory(*req.Category)
		if !category.IsValid() {
			return nil, fmt.Errorf("%w: unknown asset category '%s'", apperrors.ErrValidation, *req.Category)
		}
		asset.Category = category
	}
	if req.SubCategory != nil {
		asset.SubCategory = *req.SubCategory
	}
	if req.Value != nil {
		if req.Value.IsNegative() {
			return nil, fmt.Errorf("%w: asset value cannot be negative", apperrors.ErrValidation)
		}
		asset.Value = *req.Value
	}
	if req.AcquisitionDate != nil {
		asset.AcquisitionDate = *req.AcquisitionDate
	}
	if req.ZakatEligible != nil {
		asset.ZakatEligible = *req.ZakatEligible
		asset.IsEligibilityManual = true
	}

	// Flag changes rebuild the treatment; absent flags keep the current one.
	if req.IsPassiveInvestment != nil || req.IsRestrictedAccount != nil || req.RetirementConfig != nil {
		passive := asset.Treatment.IsPassive()
		restricted := asset.Treatment.IsRestricted()
		if req.IsPassiveInvestment != nil {
			passive = *req.IsPassiveInvestment
			if passive {
				// Enabling passive always clears restricted.
				restricted = false
			}
		}
		if req.IsRestrictedAccount != nil {
			restricted = *req.IsRestrictedAccount
			if restricted {
				// Enabling restricted always clears passive.
				passive = false
			}
		}
		retirement := req.RetirementConfig
		if retirement == nil && asset.Treatment.Kind == domain.TreatmentRetirement && asset.Treatment.Retirement != nil {
			retirement = &dto.RetirementConfigDTO{
				Methodology:       string(asset.Treatment.Retirement.Methodology),
				WithdrawalPenalty: asset.Treatment.Retirement.WithdrawalPenalty,
				EstimatedTaxRate:  asset.Treatment.Retirement.EstimatedTaxRate,
			}
		}
		treatment, err := treatmentFromFlags(asset.SubCategory, passive, restricted, retirement)
		if err != nil {
			return nil, err
		}
		asset.Treatment = treatment
	}

	asset.LastUpdatedAt = time.Now()
	asset.LastUpdatedBy = userID

	updated := zakat.Classify(*asset, nil)

	if err := s.assetRepo.UpdateAsset(ctx, updated); err != nil {
		logger.Error("Failed to update asset", slog.String("asset_id", assetID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to update asset: %w", err)
	}

	return &updated, nil
}

// DeactivateAsset soft-deletes an asset.
func (s *assetService) DeactivateAsset(ctx context.Context, userID, assetID string) error {
	if err := s.assetRepo.DeactivateAsset(ctx, userID, assetID, userID); err != nil {
		return fmt.Errorf("failed to deactivate asset: %w", err)
	}
	return nil
}
