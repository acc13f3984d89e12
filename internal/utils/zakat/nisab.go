package zakat

import (
	"github.com/shopspring/decimal"

	"github.com/slimatic/zakapp-sub006/internal/core/domain"
)

// CalculateNisab converts metal prices per gram into gold and silver nisab
// thresholds and resolves the effective nisab for the methodology. It never
// fails: price validation (positive, finite) is the caller's responsibility at
// the oracle boundary.
func CalculateNisab(goldPricePerGram, silverPricePerGram decimal.Decimal, methodology domain.Methodology) domain.NisabInfo {
	goldNisab := domain.GoldNisabGrams.Mul(goldPricePerGram)
	silverNisab := domain.SilverNisabGrams.Mul(silverPricePerGram)

	info := domain.NisabInfo{
		GoldNisab:         goldNisab,
		SilverNisab:       silverNisab,
		CalculationMethod: methodology,
	}

	switch methodology {
	case domain.MethodologyHanafi:
		info.EffectiveNisab = silverNisab
		info.NisabBasis = domain.NisabBasisSilver
	case domain.MethodologyHanbali:
		info.EffectiveNisab = goldNisab
		info.NisabBasis = domain.NisabBasisGold
	default:
		// SHAFII, MALIKI, STANDARD and anything else use the dual minimum;
		// the basis label records which metal was lower.
		if goldNisab.LessThan(silverNisab) {
			info.EffectiveNisab = goldNisab
			info.NisabBasis = domain.NisabBasisDualMinimumGold
		} else {
			info.EffectiveNisab = silverNisab
			info.NisabBasis = domain.NisabBasisDualMinimumSilver
		}
	}

	return info
}

// ApplyNisabBasisOverride re-resolves the effective nisab when a custom config
// pins the basis to a single metal. A dual_minimum basis keeps the resolution
// already made.
func ApplyNisabBasisOverride(info domain.NisabInfo, basis domain.NisabBasis) domain.NisabInfo {
	switch basis {
	case domain.NisabBasisGold:
		info.EffectiveNisab = info.GoldNisab
		info.NisabBasis = domain.NisabBasisGold
	case domain.NisabBasisSilver:
		info.EffectiveNisab = info.SilverNisab
		info.NisabBasis = domain.NisabBasisSilver
	}
	return info
}
