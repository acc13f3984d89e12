package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/slimatic/zakapp-sub006/internal/apperrors"
	"github.com/slimatic/zakapp-sub006/internal/core/domain"
	portsrepo "github.com/slimatic/zakapp-sub006/internal/core/ports/repositories"
	"github.com/slimatic/zakapp-sub006/internal/models"
	"github.com/slimatic/zakapp-sub006/internal/platform/crypto"
	"github.com/slimatic/zakapp-sub006/internal/utils/mapping"
	"github.com/slimatic/zakapp-sub006/internal/utils/pagination"
)

// PgxSnapshotRepository persists snapshots with their monetary fields
// encrypted at rest. Encryption happens here, below the mapping layer, so
// services and handlers only ever see plaintext decimals.
type PgxSnapshotRepository struct {
	BaseRepository
	cipher *crypto.FieldCipher
}

func newPgxSnapshotRepository(db *pgxpool.Pool, cipher *crypto.FieldCipher) *PgxSnapshotRepository {
	return &PgxSnapshotRepository{BaseRepository: BaseRepository{Pool: db}, cipher: cipher}
}

// Ensure PgxSnapshotRepository implements portsrepo.SnapshotRepository
var _ portsrepo.SnapshotRepository = (*PgxSnapshotRepository)(nil)

const snapshotColumns = `snapshot_id, user_id, calculation_date, methodology, methodology_config_id,
	calendar_type, zakat_year_start, zakat_year_end,
	total_wealth_enc, zakat_due_enc, nisab_threshold_enc,
	is_locked, unlock_reason, unlocked_at,
	created_at, created_by, last_updated_at, last_updated_by`

func scanSnapshot(row pgx.Row) (models.CalculationSnapshot, error) {
	var m models.CalculationSnapshot
	err := row.Scan(
		&m.SnapshotID,
		&m.UserID,
		&m.CalculationDate,
		&m.Methodology,
		&m.MethodologyConfigID,
		&m.CalendarType,
		&m.ZakatYearStart,
		&m.ZakatYearEnd,
		&m.TotalWealthEnc,
		&m.ZakatDueEnc,
		&m.NisabThresholdEnc,
		&m.IsLocked,
		&m.UnlockReason,
		&m.UnlockedAt,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// decryptSnapshot converts a persisted snapshot back to domain form. A decrypt
// failure is fatal for the read; a monetary value is never substituted.
func (r *PgxSnapshotRepository) decryptSnapshot(m models.CalculationSnapshot) (domain.CalculationSnapshot, error) {
	totalWealth, err := r.cipher.DecryptDecimal(m.TotalWealthEnc)
	if err != nil {
		return domain.CalculationSnapshot{}, fmt.Errorf("snapshot %s total wealth: %w", m.SnapshotID, err)
	}
	zakatDue, err := r.cipher.DecryptDecimal(m.ZakatDueEnc)
	if err != nil {
		return domain.CalculationSnapshot{}, fmt.Errorf("snapshot %s zakat due: %w", m.SnapshotID, err)
	}
	nisabThreshold, err := r.cipher.DecryptDecimal(m.NisabThresholdEnc)
	if err != nil {
		return domain.CalculationSnapshot{}, fmt.Errorf("snapshot %s nisab threshold: %w", m.SnapshotID, err)
	}
	return mapping.ToDomainSnapshot(m, totalWealth, zakatDue, nisabThreshold), nil
}

func (r *PgxSnapshotRepository) SaveSnapshotWithValues(ctx context.Context, snapshot domain.CalculationSnapshot, values []domain.SnapshotAssetValue) error {
	totalWealthEnc, err := r.cipher.EncryptDecimal(snapshot.TotalWealth)
	if err != nil {
		return fmt.Errorf("failed to encrypt total wealth: %w", err)
	}
	zakatDueEnc, err := r.cipher.EncryptDecimal(snapshot.ZakatDue)
	if err != nil {
		return fmt.Errorf("failed to encrypt zakat due: %w", err)
	}
	nisabThresholdEnc, err := r.cipher.EncryptDecimal(snapshot.NisabThreshold)
	if err != nil {
		return fmt.Errorf("failed to encrypt nisab threshold: %w", err)
	}
	m := mapping.ToModelSnapshot(snapshot, totalWealthEnc, zakatDueEnc, nisabThresholdEnc)

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	snapshotQuery := `
		INSERT INTO calculation_snapshots (` + snapshotColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18);
	`
	_, err = tx.Exec(ctx, snapshotQuery,
		m.SnapshotID, m.UserID, m.CalculationDate, m.Methodology, m.MethodologyConfigID,
		m.CalendarType, m.ZakatYearStart, m.ZakatYearEnd,
		m.TotalWealthEnc, m.ZakatDueEnc, m.NisabThresholdEnc,
		m.IsLocked, m.UnlockReason, m.UnlockedAt,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert snapshot: %w", err)
	}

	valueQuery := `
		INSERT INTO snapshot_asset_values (snapshot_asset_value_id, snapshot_id, asset_id,
			asset_name, asset_category, captured_value_enc, captured_at, is_zakatable)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	for _, v := range values {
		capturedValueEnc, err := r.cipher.EncryptDecimal(v.CapturedValue)
		if err != nil {
			return fmt.Errorf("failed to encrypt captured value for asset %s: %w", v.AssetID, err)
		}
		mv := mapping.ToModelSnapshotAssetValue(v, capturedValueEnc)
		_, err = tx.Exec(ctx, valueQuery,
			mv.SnapshotAssetValueID, mv.SnapshotID, mv.AssetID,
			mv.AssetName, mv.AssetCategory, mv.CapturedValueEnc, mv.CapturedAt, mv.IsZakatable,
		)
		if err != nil {
			return fmt.Errorf("failed to insert snapshot asset value: %w", err)
		}
	}

	return r.Commit(ctx, tx)
}

func (r *PgxSnapshotRepository) FindSnapshotByID(ctx context.Context, userID, snapshotID string) (*domain.CalculationSnapshot, error) {
	query := `
		SELECT ` + snapshotColumns + `
		FROM calculation_snapshots
		WHERE snapshot_id = $1 AND user_id = $2;
	`
	m, err := scanSnapshot(r.Pool.QueryRow(ctx, query, snapshotID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find snapshot by ID %s: %w", snapshotID, err)
	}
	d, err := r.decryptSnapshot(m)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *PgxSnapshotRepository) ListSnapshotsByUser(ctx context.Context, userID string, limit int, nextToken *string) ([]domain.CalculationSnapshot, *string, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `
		SELECT ` + snapshotColumns + `
		FROM calculation_snapshots
		WHERE user_id = $1
	`
	args := []any{userID}
	if nextToken != nil && *nextToken != "" {
		calculationDate, createdAt, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		query += ` AND (calculation_date, created_at) < ($2, $3)`
		args = append(args, calculationDate, createdAt)
	}
	// Fetch one extra row to know whether another page exists.
	query += fmt.Sprintf(` ORDER BY calculation_date DESC, created_at DESC LIMIT %d;`, limit+1)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query snapshots: %w", err)
	}
	defer rows.Close()

	modelSnapshots := []models.CalculationSnapshot{}
	for rows.Next() {
		m, err := scanSnapshot(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan snapshot row: %w", err)
		}
		modelSnapshots = append(modelSnapshots, m)
	}
	if rows.Err() != nil {
		return nil, nil, fmt.Errorf("error iterating snapshot rows: %w", rows.Err())
	}

	var token *string
	if len(modelSnapshots) > limit {
		modelSnapshots = modelSnapshots[:limit]
		last := modelSnapshots[limit-1]
		t := pagination.EncodeToken(last.CalculationDate, last.CreatedAt)
		token = &t
	}

	snapshots := make([]domain.CalculationSnapshot, len(modelSnapshots))
	for i, m := range modelSnapshots {
		d, err := r.decryptSnapshot(m)
		if err != nil {
			return nil, nil, err
		}
		snapshots[i] = d
	}
	return snapshots, token, nil
}

func (r *PgxSnapshotRepository) FindSnapshotAssetValues(ctx context.Context, userID, snapshotID string) ([]domain.SnapshotAssetValue, error) {
	// Join through the snapshot so another user's snapshot id yields no rows.
	query := `
		SELECT v.snapshot_asset_value_id, v.snapshot_id, v.asset_id, v.asset_name,
			v.asset_category, v.captured_value_enc, v.captured_at, v.is_zakatable
		FROM snapshot_asset_values v
		JOIN calculation_snapshots s ON s.snapshot_id = v.snapshot_id
		WHERE v.snapshot_id = $1 AND s.user_id = $2
		ORDER BY v.asset_name ASC;
	`
	rows, err := r.Pool.Query(ctx, query, snapshotID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshot asset values: %w", err)
	}
	defer rows.Close()

	values := []domain.SnapshotAssetValue{}
	for rows.Next() {
		var m models.SnapshotAssetValue
		err := rows.Scan(
			&m.SnapshotAssetValueID,
			&m.SnapshotID,
			&m.AssetID,
			&m.AssetName,
			&m.AssetCategory,
			&m.CapturedValueEnc,
			&m.CapturedAt,
			&m.IsZakatable,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan snapshot asset value row: %w", err)
		}
		capturedValue, err := r.cipher.DecryptDecimal(m.CapturedValueEnc)
		if err != nil {
			return nil, fmt.Errorf("snapshot asset value %s: %w", m.SnapshotAssetValueID, err)
		}
		values = append(values, mapping.ToDomainSnapshotAssetValue(m, capturedValue))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating snapshot asset value rows: %w", rows.Err())
	}
	return values, nil
}

func (r *PgxSnapshotRepository) UpdateSnapshotLockState(ctx context.Context, userID, snapshotID string, isLocked bool, unlockReason *string, unlockedAt *time.Time, updaterUserID string) error {
	query := `
		UPDATE calculation_snapshots
		SET is_locked = $1, unlock_reason = $2, unlocked_at = $3,
			last_updated_at = NOW(), last_updated_by = $4
		WHERE snapshot_id = $5 AND user_id = $6;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, isLocked, unlockReason, unlockedAt, updaterUserID, snapshotID, userID)
	if err != nil {
		return fmt.Errorf("failed to update snapshot lock state: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("snapshot not found: %w", apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxSnapshotRepository) DeleteSnapshot(ctx context.Context, userID, snapshotID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	// Value rows first; the FK also cascades but an explicit delete keeps the
	// intent visible and works without relying on the schema.
	valuesQuery := `
		DELETE FROM snapshot_asset_values
		WHERE snapshot_id IN (
			SELECT snapshot_id FROM calculation_snapshots
			WHERE snapshot_id = $1 AND user_id = $2
		);
	`
	if _, err := tx.Exec(ctx, valuesQuery, snapshotID, userID); err != nil {
		return fmt.Errorf("failed to delete snapshot asset values: %w", err)
	}

	cmdTag, err := tx.Exec(ctx, `DELETE FROM calculation_snapshots WHERE snapshot_id = $1 AND user_id = $2;`, snapshotID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete snapshot: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("snapshot not found: %w", apperrors.ErrNotFound)
	}

	return r.Commit(ctx, tx)
}
