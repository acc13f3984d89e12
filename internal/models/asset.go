package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Asset represents a user-owned holding as persisted.
// TreatmentKind plus the nullable retirement columns flatten the domain's
// tagged treatment variant into one row.
type Asset struct {
	AssetID             string           `db:"asset_id"`
	UserID              string           `db:"user_id"`
	Name                string           `db:"name"`
	Category            string           `db:"category"`
	SubCategory         string           `db:"sub_category"`
	Value               decimal.Decimal  `db:"value"`
	CurrencyCode        string           `db:"currency_code"`
	AcquisitionDate     time.Time        `db:"acquisition_date"`
	ZakatEligible       bool             `db:"zakat_eligible"`
	IsEligibilityManual bool             `db:"is_eligibility_manual"`
	TreatmentKind       string           `db:"treatment_kind"`
	RetirementMethod    *string          `db:"retirement_method"`
	WithdrawalPenalty   *decimal.Decimal `db:"withdrawal_penalty"`
	EstimatedTaxRate    *decimal.Decimal `db:"estimated_tax_rate"`
	CalculationModifier decimal.Decimal  `db:"calculation_modifier"`
	IsActive            bool             `db:"is_active"`
	AuditFields
}
