package models

import (
	"github.com/shopspring/decimal"
)

// MethodologyConfig is the persisted form of a user-defined CUSTOM ruleset.
type MethodologyConfig struct {
	ConfigID      string          `db:"config_id"`
	UserID        string          `db:"user_id"`
	Name          string          `db:"name"`
	NisabBasis    string          `db:"nisab_basis"`
	ZakatRate     decimal.Decimal `db:"zakat_rate"`
	JewelryExempt bool            `db:"jewelry_exempt"`
	AuditFields
}
