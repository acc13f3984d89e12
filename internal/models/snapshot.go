package models

import (
	"time"
)

// CalculationSnapshot is the persisted form of a calculation snapshot.
// Monetary fields are stored encrypted (see platform/crypto.FieldCipher); the
// repository encrypts on write and decrypts on every read.
type CalculationSnapshot struct {
	SnapshotID          string     `db:"snapshot_id"`
	UserID              string     `db:"user_id"`
	CalculationDate     time.Time  `db:"calculation_date"`
	Methodology         string     `db:"methodology"`
	MethodologyConfigID *string    `db:"methodology_config_id"`
	CalendarType        string     `db:"calendar_type"`
	ZakatYearStart      time.Time  `db:"zakat_year_start"`
	ZakatYearEnd        time.Time  `db:"zakat_year_end"`
	TotalWealthEnc      string     `db:"total_wealth_enc"`
	ZakatDueEnc         string     `db:"zakat_due_enc"`
	NisabThresholdEnc   string     `db:"nisab_threshold_enc"`
	IsLocked            bool       `db:"is_locked"`
	UnlockReason        *string    `db:"unlock_reason"`
	UnlockedAt          *time.Time `db:"unlocked_at"`
	AuditFields
}

// SnapshotAssetValue is the persisted per-asset capture belonging to a snapshot.
type SnapshotAssetValue struct {
	SnapshotAssetValueID string    `db:"snapshot_asset_value_id"`
	SnapshotID           string    `db:"snapshot_id"`
	AssetID              string    `db:"asset_id"`
	AssetName            string    `db:"asset_name"`
	AssetCategory        string    `db:"asset_category"`
	CapturedValueEnc     string    `db:"captured_value_enc"`
	CapturedAt           time.Time `db:"captured_at"`
	IsZakatable          bool      `db:"is_zakatable"`
}
