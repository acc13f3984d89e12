package domain

import (
	"github.com/shopspring/decimal"
)

// Nisab weight equivalents in grams of pure metal.
var (
	GoldNisabGrams   = decimal.NewFromFloat(87.48)
	SilverNisabGrams = decimal.NewFromFloat(612.36)
)

// NisabBasis records which metal threshold the effective nisab was taken from.
type NisabBasis string

const (
	NisabBasisGold   NisabBasis = "gold"
	NisabBasisSilver NisabBasis = "silver"
	// Dual-minimum bases record that the lower of the two thresholds was used
	// and which metal happened to be lower.
	NisabBasisDualMinimumGold   NisabBasis = "dual_minimum_gold"
	NisabBasisDualMinimumSilver NisabBasis = "dual_minimum_silver"
)

// NisabInfo is an internally consistent nisab threshold resolution.
// Recomputed on demand; persisted only as part of a snapshot.
type NisabInfo struct {
	GoldNisab         decimal.Decimal `json:"goldNisab"`
	SilverNisab       decimal.Decimal `json:"silverNisab"`
	EffectiveNisab    decimal.Decimal `json:"effectiveNisab"`
	NisabBasis        NisabBasis      `json:"nisabBasis"`
	CalculationMethod Methodology     `json:"calculationMethod"`
}
