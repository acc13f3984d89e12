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

type PgxMethodologyRepository struct {
	BaseRepository
}

func newPgxMethodologyRepository(db *pgxpool.Pool) *PgxMethodologyRepository {
	return &PgxMethodologyRepository{BaseRepository{Pool: db}}
}

// Ensure PgxMethodologyRepository implements portsrepo.MethodologyConfigRepository
var _ portsrepo.MethodologyConfigRepository = (*PgxMethodologyRepository)(nil)

const methodologyConfigColumns = `config_id, user_id, name, nisab_basis, zakat_rate, jewelry_exempt,
	created_at, created_by, last_updated_at, last_updated_by`

func scanMethodologyConfig(row pgx.Row) (models.MethodologyConfig, error) {
	var m models.MethodologyConfig
	err := row.Scan(
		&m.ConfigID,
		&m.UserID,
		&m.Name,
		&m.NisabBasis,
		&m.ZakatRate,
		&m.JewelryExempt,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxMethodologyRepository) SaveMethodologyConfig(ctx context.Context, config domain.MethodologyConfig) error {
	m := mapping.ToModelMethodologyConfig(config)
	query := `
		INSERT INTO methodology_configs (` + methodologyConfigColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.ConfigID, m.UserID, m.Name, m.NisabBasis, m.ZakatRate, m.JewelryExempt,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save methodology config: %w", err)
	}
	return nil
}

func (r *PgxMethodologyRepository) FindMethodologyConfigByID(ctx context.Context, userID, configID string) (*domain.MethodologyConfig, error) {
	query := `
		SELECT ` + methodologyConfigColumns + `
		FROM methodology_configs
		WHERE config_id = $1 AND user_id = $2;
	`
	m, err := scanMethodologyConfig(r.Pool.QueryRow(ctx, query, configID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find methodology config by ID %s: %w", configID, err)
	}
	d := mapping.ToDomainMethodologyConfig(m)
	return &d, nil
}

func (r *PgxMethodologyRepository) ListMethodologyConfigsByUser(ctx context.Context, userID string) ([]domain.MethodologyConfig, error) {
	query := `
		SELECT ` + methodologyConfigColumns + `
		FROM methodology_configs
		WHERE user_id = $1
		ORDER BY created_at ASC;
	`
	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query methodology configs: %w", err)
	}
	defer rows.Close()

	modelConfigs := []models.MethodologyConfig{}
	for rows.Next() {
		m, err := scanMethodologyConfig(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan methodology config row: %w", err)
		}
		modelConfigs = append(modelConfigs, m)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating methodology config rows: %w", rows.Err())
	}

	return mapping.ToDomainMethodologyConfigSlice(modelConfigs), nil
}

func (r *PgxMethodologyRepository) UpdateMethodologyConfig(ctx context.Context, config domain.MethodologyConfig) error {
	m := mapping.ToModelMethodologyConfig(config)
	query := `
		UPDATE methodology_configs
		SET name = $1, nisab_basis = $2, zakat_rate = $3, jewelry_exempt = $4,
			last_updated_at = $5, last_updated_by = $6
		WHERE config_id = $7 AND user_id = $8;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.Name, m.NisabBasis, m.ZakatRate, m.JewelryExempt,
		m.LastUpdatedAt, m.LastUpdatedBy,
		m.ConfigID, m.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to execute update methodology config query: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("methodology config not found: %w", apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxMethodologyRepository) DeleteMethodologyConfig(ctx context.Context, userID, configID string) error {
	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM methodology_configs WHERE config_id = $1 AND user_id = $2;`, configID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete methodology config: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("methodology config not found: %w", apperrors.ErrNotFound)
	}
	return nil
}
