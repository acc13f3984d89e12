package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/slimatic/zakapp-sub006/internal/apperrors"
	"github.com/slimatic/zakapp-sub006/internal/core/domain"
	portsrepo "github.com/slimatic/zakapp-sub006/internal/core/ports/repositories"
	"github.com/slimatic/zakapp-sub006/internal/models"
	"github.com/slimatic/zakapp-sub006/internal/utils/mapping"
)

type PgxAssetRepository struct {
	BaseRepository
}

func newPgxAssetRepository(db *pgxpool.Pool) *PgxAssetRepository {
	return &PgxAssetRepository{BaseRepository{Pool: db}}
}

// Ensure PgxAssetRepository implements portsrepo.AssetRepository
var _ portsrepo.AssetRepository = (*PgxAssetRepository)(nil)

const assetColumns = `asset_id, user_id, name, category, sub_category, value, currency_code,
	acquisition_date, zakat_eligible, is_eligibility_manual, treatment_kind,
	retirement_method, withdrawal_penalty, estimated_tax_rate, calculation_modifier,
	is_active, created_at, created_by, last_updated_at, last_updated_by`

func scanAsset(row pgx.Row) (models.Asset, error) {
	var m models.Asset
	err := row.Scan(
		&m.AssetID,
		&m.UserID,
		&m.Name,
		&m.Category,
		&m.SubCategory,
		&m.Value,
		&m.CurrencyCode,
		&m.AcquisitionDate,
		&m.ZakatEligible,
		&m.IsEligibilityManual,
		&m.TreatmentKind,
		&m.RetirementMethod,
		&m.WithdrawalPenalty,
		&m.EstimatedTaxRate,
		&m.CalculationModifier,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxAssetRepository) SaveAsset(ctx context.Context, asset domain.Asset) error {
	m := mapping.ToModelAsset(asset)
	query := `
		INSERT INTO assets (` + assetColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.AssetID, m.UserID, m.Name, m.Category, m.SubCategory, m.Value, m.CurrencyCode,
		m.AcquisitionDate, m.ZakatEligible, m.IsEligibilityManual, m.TreatmentKind,
		m.RetirementMethod, m.WithdrawalPenalty, m.EstimatedTaxRate, m.CalculationModifier,
		m.IsActive, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save asset: %w", err)
	}
	return nil
}

func (r *PgxAssetRepository) FindAssetByID(ctx context.Context, userID, assetID string) (*domain.Asset, error) {
	query := `
		SELECT ` + assetColumns + `
		FROM assets
		WHERE asset_id = $1 AND user_id = $2;
	`
	m, err := scanAsset(r.Pool.QueryRow(ctx, query, assetID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find asset by ID %s: %w", assetID, err)
	}
	d := mapping.ToDomainAsset(m)
	return &d, nil
}

func (r *PgxAssetRepository) ListActiveAssetsByUser(ctx context.Context, userID string) ([]domain.Asset, error) {
	query := `
		SELECT ` + assetColumns + `
		FROM assets
		WHERE user_id = $1 AND is_active = TRUE
		ORDER BY created_at ASC;
	`
	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query assets: %w", err)
	}
	defer rows.Close()

	modelAssets := []models.Asset{}
	for rows.Next() {
		m, err := scanAsset(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan asset row: %w", err)
		}
		modelAssets = append(modelAssets, m)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating asset rows: %w", rows.Err())
	}

	return mapping.ToDomainAssetSlice(modelAssets), nil
}

func (r *PgxAssetRepository) UpdateAsset(ctx context.Context, asset domain.Asset) error {
	m := mapping.ToModelAsset(asset)
	query := `
		UPDATE assets
		SET name = $1, category = $2, sub_category = $3, value = $4, currency_code = $5,
			acquisition_date = $6, zakat_eligible = $7, is_eligibility_manual = $8,
			treatment_kind = $9, retirement_method = $10, withdrawal_penalty = $11,
			estimated_tax_rate = $12, calculation_modifier = $13,
			last_updated_at = $14, last_updated_by = $15
		WHERE asset_id = $16 AND user_id = $17 AND is_active = TRUE;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.Name, m.Category, m.SubCategory, m.Value, m.CurrencyCode,
		m.AcquisitionDate, m.ZakatEligible, m.IsEligibilityManual,
		m.TreatmentKind, m.RetirementMethod, m.WithdrawalPenalty,
		m.EstimatedTaxRate, m.CalculationModifier,
		m.LastUpdatedAt, m.LastUpdatedBy,
		m.AssetID, m.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to execute update asset query: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("asset not found or inactive: %w", apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxAssetRepository) DeactivateAsset(ctx context.Context, userID, assetID, updaterUserID string) error {
	query := `
		UPDATE assets
		SET is_active = FALSE, last_updated_at = NOW(), last_updated_by = $1
		WHERE asset_id = $2 AND user_id = $3 AND is_active = TRUE;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, updaterUserID, assetID, userID)
	if err != nil {
		return fmt.Errorf("failed to deactivate asset: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("asset not found or already inactive: %w", apperrors.ErrNotFound)
	}
	return nil
}
