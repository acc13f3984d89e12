package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/slimatic/zakapp-sub006/internal/apperrors"
	"github.com/slimatic/zakapp-sub006/internal/core/domain"
	portsrepo "github.com/slimatic/zakapp-sub006/internal/core/ports/repositories"
	portssvc "github.com/slimatic/zakapp-sub006/internal/core/ports/services"
	"github.com/slimatic/zakapp-sub006/internal/dto"
	"github.com/slimatic/zakapp-sub006/internal/middleware"
	"github.com/slimatic/zakapp-sub006/internal/utils/zakat"
)

var (
	ErrUnknownMethodology     = errors.New("methodology must be one of STANDARD, HANAFI, SHAFII, CUSTOM")
	ErrCustomConfigRequired   = errors.New("CUSTOM methodology requires a methodologyConfigID")
	ErrCustomConfigNotAllowed = errors.New("methodologyConfigID is only valid with the CUSTOM methodology")
)

// zakatService resolves nisab thresholds and runs ad-hoc calculations over a
// user's classified assets.
type zakatService struct {
	assetRepo       portsrepo.AssetRepository
	methodologyRepo portsrepo.MethodologyConfigRepository
	priceOracle     portssvc.PriceOracle
	defaultCurrency string
}

// NewZakatService creates a new zakat calculation service.
func NewZakatService(assetRepo portsrepo.AssetRepository, methodologyRepo portsrepo.MethodologyConfigRepository, priceOracle portssvc.PriceOracle, defaultCurrency string) portssvc.ZakatSvcFacade {
	return &zakatService{
		assetRepo:       assetRepo,
		methodologyRepo: methodologyRepo,
		priceOracle:     priceOracle,
		defaultCurrency: defaultCurrency,
	}
}

var _ portssvc.ZakatSvcFacade = (*zakatService)(nil)

// validateMethodologySelection enforces the methodology rules shared by
// calculations and snapshots: the methodology must be a known calculation
// methodology, CUSTOM requires a config id, and non-CUSTOM must not carry one.
func validateMethodologySelection(methodology domain.Methodology, configID *string) error {
	if !methodology.IsValidForCalculation() {
		return fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrUnknownMethodology)
	}
	if methodology == domain.MethodologyCustom && (configID == nil || *configID == "") {
		return fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrCustomConfigRequired)
	}
	if methodology != domain.MethodologyCustom && configID != nil && *configID != "" {
		return fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrCustomConfigNotAllowed)
	}
	return nil
}

// resolveMethodologyRuleset loads the CUSTOM config when required and produces
// the effective zakat rate plus the methodology config used for jewelry
// exemption. Shared by calculations and snapshot creation.
func resolveMethodologyRuleset(ctx context.Context, methodologyRepo portsrepo.MethodologyConfigRepository, userID string, methodology domain.Methodology, configID *string) (decimal.Decimal, *domain.MethodologyConfig, error) {
	if methodology == domain.MethodologyCustom {
		config, err := methodologyRepo.FindMethodologyConfigByID(ctx, userID, *configID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return decimal.Zero, nil, fmt.Errorf("%w: methodology config '%s' not found", apperrors.ErrValidation, *configID)
			}
			return decimal.Zero, nil, fmt.Errorf("failed to load methodology config: %w", err)
		}
		return config.EffectiveZakatRate(), config, nil
	}
	if methodology.JewelryExemptByDefault() {
		return domain.StandardZakatRate, &domain.MethodologyConfig{JewelryExempt: true}, nil
	}
	return domain.StandardZakatRate, nil, nil
}

// CalculateNisab resolves nisab thresholds for the methodology in the given
// currency. Price failures are recovered inside the oracle; a non-positive
// resolved price is rejected here, before it can poison a calculation.
func (s *zakatService) CalculateNisab(ctx context.Context, methodology domain.Methodology, currency string) (*domain.NisabInfo, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if currency == "" {
		currency = s.defaultCurrency
	}

	goldPrice, err := s.priceOracle.GetGoldPricePerGram(ctx, currency)
	if err != nil {
		return nil, fmt.Errorf("failed to obtain gold price for %s: %w", currency, err)
	}
	silverPrice, err := s.priceOracle.GetSilverPricePerGram(ctx, currency)
	if err != nil {
		return nil, fmt.Errorf("failed to obtain silver price for %s: %w", currency, err)
	}
	if !goldPrice.IsPositive() || !silverPrice.IsPositive() {
		return nil, fmt.Errorf("%w: metal prices must be positive (gold=%s, silver=%s)", apperrors.ErrValidation, goldPrice, silverPrice)
	}

	info := zakat.CalculateNisab(goldPrice, silverPrice, methodology)
	logger.Debug("Nisab resolved",
		slog.String("methodology", string(methodology)),
		slog.String("currency", currency),
		slog.String("effective_nisab", info.EffectiveNisab.String()),
		slog.String("basis", string(info.NisabBasis)),
	)
	return &info, nil
}

// CalculateZakat runs a full calculation over the user's active assets without
// persisting anything.
func (s *zakatService) CalculateZakat(ctx context.Context, userID string, req dto.CalculateZakatRequest) (*domain.ZakatCalculationResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	methodology := domain.Methodology(req.Methodology)
	if err := validateMethodologySelection(methodology, req.MethodologyConfigID); err != nil {
		return nil, err
	}

	zakatRate, config, err := resolveMethodologyRuleset(ctx, s.methodologyRepo, userID, methodology, req.MethodologyConfigID)
	if err != nil {
		return nil, err
	}

	assets, err := s.assetRepo.ListActiveAssetsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load assets for calculation: %w", err)
	}
	assets = zakat.FilterAssets(assets, req.IncludeAssets)

	// Re-classify against the active ruleset; the stored modifier is never
	// trusted independently of its inputs.
	for i := range assets {
		assets[i] = zakat.Classify(assets[i], config)
	}

	currency := req.Currency
	if currency == "" {
		currency = s.defaultCurrency
	}
	nisab, err := s.CalculateNisab(ctx, methodology, currency)
	if err != nil {
		return nil, err
	}
	if config != nil {
		overridden := zakat.ApplyNisabBasisOverride(*nisab, config.NisabBasis)
		nisab = &overridden
	}

	result := zakat.CalculateZakat(assets, methodology, zakatRate, *nisab)
	logger.Info("Zakat calculated",
		slog.String("methodology", string(methodology)),
		slog.Int("asset_count", len(assets)),
		slog.Bool("meets_nisab", result.MeetsNisab),
		slog.String("total_zakat_due", result.TotalZakatDue.String()),
	)
	return &result, nil
}
