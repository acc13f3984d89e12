package domain

import (
	"github.com/shopspring/decimal"
)

// Methodology names an Islamic jurisprudential ruleset governing nisab basis
// and special-case treatment.
type Methodology string

const (
	MethodologyStandard Methodology = "STANDARD"
	MethodologyHanafi   Methodology = "HANAFI"
	MethodologyShafii   Methodology = "SHAFII"
	MethodologyMaliki   Methodology = "MALIKI"
	MethodologyHanbali  Methodology = "HANBALI"
	MethodologyCustom   Methodology = "CUSTOM"
)

// IsValidForCalculation reports whether the methodology may be used for a
// zakat calculation or snapshot. MALIKI and HANBALI are recognised for nisab
// basis resolution but are not selectable calculation methodologies.
func (m Methodology) IsValidForCalculation() bool {
	switch m {
	case MethodologyStandard, MethodologyHanafi, MethodologyShafii, MethodologyCustom:
		return true
	}
	return false
}

// JewelryExemptByDefault reports whether the methodology exempts personal-use
// jewelry without a custom config. Only the Shafi'i ruleset does.
func (m Methodology) JewelryExemptByDefault() bool {
	return m == MethodologyShafii
}

// StandardZakatRate is the default zakat rate of 2.5%.
var StandardZakatRate = decimal.NewFromFloat(0.025)

// MethodologyConfig is a user-defined ruleset backing the CUSTOM methodology.
type MethodologyConfig struct {
	ConfigID      string          `json:"configID"`
	UserID        string          `json:"userID"`
	Name          string          `json:"name"`
	NisabBasis    NisabBasis      `json:"nisabBasis"`
	ZakatRate     decimal.Decimal `json:"zakatRate"`
	JewelryExempt bool            `json:"jewelryExempt"`
	AuditFields
}

// EffectiveZakatRate returns the config's rate, falling back to the standard
// 2.5% when unset.
func (c *MethodologyConfig) EffectiveZakatRate() decimal.Decimal {
	if c == nil || c.ZakatRate.IsZero() {
		return StandardZakatRate
	}
	return c.ZakatRate
}
