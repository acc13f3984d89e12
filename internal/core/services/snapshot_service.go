package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
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

var (
	ErrNoAssetsForCalculation = errors.New("no assets found for calculation")
	ErrUnlockReasonRequired   = errors.New("unlock reason is required")
	ErrUnlockReasonTooLong    = errors.New("unlock reason exceeds the maximum length")
)

// Zakat year lengths in days. The Hijri path approximates one lunar year.
const (
	gregorianYearDays = 365
	hijriYearDays     = 354
)

// snapshotService records calculation results as born-locked snapshots and
// manages their unlock/re-lock/delete/compare lifecycle.
type snapshotService struct {
	snapshotRepo    portsrepo.SnapshotRepository
	assetRepo       portsrepo.AssetRepository
	methodologyRepo portsrepo.MethodologyConfigRepository
	zakatSvc        portssvc.ZakatSvcFacade
}

// NewSnapshotService creates a new snapshot service.
func NewSnapshotService(snapshotRepo portsrepo.SnapshotRepository, assetRepo portsrepo.AssetRepository, methodologyRepo portsrepo.MethodologyConfigRepository, zakatSvc portssvc.ZakatSvcFacade) portssvc.SnapshotSvcFacade {
	return &snapshotService{
		snapshotRepo:    snapshotRepo,
		assetRepo:       assetRepo,
		methodologyRepo: methodologyRepo,
		zakatSvc:        zakatSvc,
	}
}

var _ portssvc.SnapshotSvcFacade = (*snapshotService)(nil)

// zakatYearBounds computes the zakat year window starting at the reference
// date. The Hijri calendar uses the approximate 354-day lunar year.
func zakatYearBounds(start time.Time, calendar domain.CalendarType) (time.Time, time.Time) {
	if calendar == domain.CalendarHijri {
		return start, start.AddDate(0, 0, hijriYearDays)
	}
	return start, start.AddDate(0, 0, gregorianYearDays)
}

// CreateSnapshot runs a calculation over the user's active assets and persists
// it already locked, together with one captured value row per asset.
func (s *snapshotService) CreateSnapshot(ctx context.Context, userID string, req dto.CreateSnapshotRequest) (*domain.CalculationSnapshot, []domain.SnapshotAssetValue, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	methodology := domain.Methodology(req.Methodology)
	if err := validateMethodologySelection(methodology, req.MethodologyConfigID); err != nil {
		return nil, nil, err
	}

	zakatRate, config, err := resolveMethodologyRuleset(ctx, s.methodologyRepo, userID, methodology, req.MethodologyConfigID)
	if err != nil {
		return nil, nil, err
	}

	assets, err := s.assetRepo.ListActiveAssetsByUser(ctx, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load assets for snapshot: %w", err)
	}
	if len(assets) == 0 {
		return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrNoAssetsForCalculation)
	}
	for i := range assets {
		assets[i] = zakat.Classify(assets[i], config)
	}

	nisab, err := s.zakatSvc.CalculateNisab(ctx, methodology, req.Currency)
	if err != nil {
		return nil, nil, err
	}
	if config != nil {
		overridden := zakat.ApplyNisabBasisOverride(*nisab, config.NisabBasis)
		nisab = &overridden
	}

	result := zakat.CalculateZakat(assets, methodology, zakatRate, *nisab)

	now := time.Now()
	calculationDate := now
	if req.ReferenceDate != nil {
		calculationDate = *req.ReferenceDate
	}
	calendar := domain.CalendarGregorian
	if req.CalendarType != "" {
		calendar = domain.CalendarType(req.CalendarType)
	}
	yearStart, yearEnd := zakatYearBounds(calculationDate, calendar)

	snapshot := domain.CalculationSnapshot{
		SnapshotID:          uuid.NewString(),
		UserID:              userID,
		CalculationDate:     calculationDate,
		Methodology:         methodology,
		MethodologyConfigID: req.MethodologyConfigID,
		CalendarType:        calendar,
		ZakatYearStart:      yearStart,
		ZakatYearEnd:        yearEnd,
		TotalWealth:         result.TotalAssets,
		ZakatDue:            result.TotalZakatDue,
		NisabThreshold:      nisab.EffectiveNisab,
		// A snapshot is born immutable.
		IsLocked: true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	values := make([]domain.SnapshotAssetValue, len(assets))
	for i, a := range assets {
		values[i] = domain.SnapshotAssetValue{
			SnapshotAssetValueID: uuid.NewString(),
			SnapshotID:           snapshot.SnapshotID,
			AssetID:              a.AssetID,
			AssetName:            a.Name,
			AssetCategory:        a.Category,
			CapturedValue:        a.Value,
			CapturedAt:           now,
			IsZakatable:          a.ZakatEligible,
		}
	}

	if err := s.snapshotRepo.SaveSnapshotWithValues(ctx, snapshot, values); err != nil {
		logger.Error("Failed to persist snapshot", slog.String("error", err.Error()))
		return nil, nil, fmt.Errorf("failed to persist snapshot: %w", err)
	}

	logger.Info("Snapshot created",
		slog.String("snapshot_id", snapshot.SnapshotID),
		slog.String("methodology", string(methodology)),
		slog.Int("asset_count", len(values)),
		slog.Bool("meets_nisab", result.MeetsNisab),
	)
	return &snapshot, values, nil
}

// ListSnapshots retrieves a page of the user's snapshots.
func (s *snapshotService) ListSnapshots(ctx context.Context, userID string, limit int, nextToken *string) ([]domain.CalculationSnapshot, *string, error) {
	snapshots, token, err := s.snapshotRepo.ListSnapshotsByUser(ctx, userID, limit, nextToken)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	if snapshots == nil {
		snapshots = []domain.CalculationSnapshot{}
	}
	return snapshots, token, nil
}

// GetSnapshot retrieves one snapshot with its captured asset values.
func (s *snapshotService) GetSnapshot(ctx context.Context, userID, snapshotID string) (*domain.CalculationSnapshot, []domain.SnapshotAssetValue, error) {
	snapshot, err := s.snapshotRepo.FindSnapshotByID(ctx, userID, snapshotID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get snapshot: %w", err)
	}
	values, err := s.snapshotRepo.FindSnapshotAssetValues(ctx, userID, snapshotID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get snapshot asset values: %w", err)
	}
	return snapshot, values, nil
}

// UnlockSnapshot transitions a locked snapshot to editable, recording the
// mandatory audit reason. Unlocking an already-unlocked snapshot is a no-op.
func (s *snapshotService) UnlockSnapshot(ctx context.Context, userID, snapshotID, reason string) (*domain.CalculationSnapshot, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrUnlockReasonRequired)
	}
	if len(reason) > domain.MaxUnlockReasonLength {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrUnlockReasonTooLong)
	}

	snapshot, err := s.snapshotRepo.FindSnapshotByID(ctx, userID, snapshotID)
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot for unlock: %w", err)
	}
	if !snapshot.IsLocked {
		return snapshot, nil
	}

	now := time.Now()
	if err := s.snapshotRepo.UpdateSnapshotLockState(ctx, userID, snapshotID, false, &reason, &now, userID); err != nil {
		return nil, fmt.Errorf("failed to unlock snapshot: %w", err)
	}

	snapshot.IsLocked = false
	snapshot.UnlockReason = &reason
	snapshot.UnlockedAt = &now
	logger.Info("Snapshot unlocked", slog.String("snapshot_id", snapshotID), slog.String("reason", reason))
	return snapshot, nil
}

// LockSnapshot re-freezes an unlocked snapshot. The unlock reason stays for
// audit. Locking an already-locked snapshot is a no-op.
func (s *snapshotService) LockSnapshot(ctx context.Context, userID, snapshotID string) (*domain.CalculationSnapshot, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	snapshot, err := s.snapshotRepo.FindSnapshotByID(ctx, userID, snapshotID)
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot for lock: %w", err)
	}
	if snapshot.IsLocked {
		return snapshot, nil
	}

	if err := s.snapshotRepo.UpdateSnapshotLockState(ctx, userID, snapshotID, true, snapshot.UnlockReason, snapshot.UnlockedAt, userID); err != nil {
		return nil, fmt.Errorf("failed to lock snapshot: %w", err)
	}

	snapshot.IsLocked = true
	logger.Info("Snapshot locked", slog.String("snapshot_id", snapshotID))
	return snapshot, nil
}

// DeleteSnapshot removes a snapshot and cascades deletion of its asset values.
func (s *snapshotService) DeleteSnapshot(ctx context.Context, userID, snapshotID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)
	if err := s.snapshotRepo.DeleteSnapshot(ctx, userID, snapshotID); err != nil {
		return fmt.Errorf("failed to delete snapshot: %w", err)
	}
	logger.Info("Snapshot deleted", slog.String("snapshot_id", snapshotID))
	return nil
}

// changeMetric computes the absolute and percentage change from one value to
// another. A zero base uses a denominator of one so the percentage stays
// defined.
func changeMetric(from, to decimal.Decimal) domain.ChangeMetric {
	absolute := to.Sub(from)
	denominator := from
	if denominator.IsZero() {
		denominator = decimal.NewFromInt(1)
	}
	return domain.ChangeMetric{
		Absolute:   absolute,
		Percentage: absolute.Div(denominator).Mul(decimal.NewFromInt(100)),
	}
}

// CompareSnapshots compares two snapshots owned by the user. DaysElapsed is
// the floor of the day difference and keeps the sign of the given order.
func (s *snapshotService) CompareSnapshots(ctx context.Context, userID, fromID, toID string) (*domain.SnapshotComparison, error) {
	from, err := s.snapshotRepo.FindSnapshotByID(ctx, userID, fromID)
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot %s: %w", fromID, err)
	}
	to, err := s.snapshotRepo.FindSnapshotByID(ctx, userID, toID)
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot %s: %w", toID, err)
	}

	daysElapsed := int(math.Floor(to.CalculationDate.Sub(from.CalculationDate).Hours() / 24))

	return &domain.SnapshotComparison{
		FromSnapshotID:    from.SnapshotID,
		ToSnapshotID:      to.SnapshotID,
		WealthChange:      changeMetric(from.TotalWealth, to.TotalWealth),
		ZakatDueChange:    changeMetric(from.ZakatDue, to.ZakatDue),
		MethodologyChange: from.Methodology != to.Methodology,
		DaysElapsed:       daysElapsed,
	}, nil
}
