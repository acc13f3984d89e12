package zakat

import (
	"github.com/shopspring/decimal"

	"github.com/slimatic/zakapp-sub006/internal/core/domain"
)

var (
	// PassiveInvestmentModifier is the "30% rule" applied to passive investments.
	PassiveInvestmentModifier = decimal.NewFromFloat(0.3)
	// PreservedGrowthModifier taxes 20% of a retirement account's value at the
	// standard 2.5% rate: 0.5% is equivalent to 2.5% on 20%.
	PreservedGrowthModifier = decimal.NewFromFloat(0.2)

	one = decimal.NewFromInt(1)
)

// ResolveModifier derives the calculation modifier (0.0-1.0) for the asset's
// current state. Pure over already-validated input; invalid combinations fall
// through to the safe full-value modifier of 1.0.
func ResolveModifier(a domain.Asset) decimal.Decimal {
	if a.IsRetirement() {
		return retirementModifier(*a.Treatment.Retirement)
	}
	if a.Treatment.IsRestricted() {
		// Fully deferred/exempt.
		return decimal.Zero
	}
	if a.Treatment.IsPassive() {
		return PassiveInvestmentModifier
	}
	if a.Category == domain.CategoryProperty {
		switch a.SubCategory {
		case domain.SubCategoryPersonalResidence, domain.SubCategoryRentalProperty, domain.SubCategoryVacantLand:
			return decimal.Zero
		}
	}
	return one
}

func retirementModifier(cfg domain.RetirementConfig) decimal.Decimal {
	switch cfg.Methodology {
	case domain.RetirementPreservedGrowth:
		return PreservedGrowthModifier
	case domain.RetirementCollectible:
		m := one.Sub(cfg.WithdrawalPenalty).Sub(cfg.EstimatedTaxRate)
		if m.IsNegative() {
			return decimal.Zero
		}
		return m
	default:
		// manual or unset
		return one
	}
}

// NormalizeTreatment re-derives the asset's treatment after a category or
// sub-category change: passive is cleared when the category is not
// passive-eligible or the sub-category denotes retirement; restricted is
// cleared when the category is not restricted-eligible; a retirement treatment
// without a retirement sub-category reverts to full.
func NormalizeTreatment(a domain.Asset) domain.Asset {
	switch a.Treatment.Kind {
	case domain.TreatmentPassive:
		if !a.Category.IsPassiveEligible() || domain.IsRetirementSubCategory(a.SubCategory) {
			a.Treatment = domain.FullTreatment()
		}
	case domain.TreatmentRestricted:
		if !a.Category.IsRestrictedEligible() {
			a.Treatment = domain.FullTreatment()
		}
	case domain.TreatmentRetirement:
		if !domain.IsRetirementSubCategory(a.SubCategory) || a.Treatment.Retirement == nil {
			a.Treatment = domain.FullTreatment()
		}
	case domain.TreatmentFull:
	default:
		a.Treatment = domain.FullTreatment()
	}
	// A non-eligible asset cannot carry a passive modifier.
	if !a.ZakatEligible && a.Treatment.IsPassive() {
		a.Treatment = domain.FullTreatment()
	}
	return a
}

// ApplyJewelryExemption forces ZakatEligible to false for jewelry assets when
// the active methodology config marks jewelry as exempt and the user has not
// manually overridden eligibility. A manual toggle (IsEligibilityManual)
// permanently disables the auto-exemption for that asset until reset.
func ApplyJewelryExemption(a domain.Asset, cfg *domain.MethodologyConfig) domain.Asset {
	if cfg == nil || !cfg.JewelryExempt {
		return a
	}
	if a.SubCategory == domain.SubCategoryJewelry && !a.IsEligibilityManual {
		a.ZakatEligible = false
	}
	return a
}

// Classify runs the full classification pipeline for an asset: treatment
// normalization, jewelry exemption, then modifier resolution. It is invoked
// after every asset state transition so the stored modifier never drifts from
// its inputs.
func Classify(a domain.Asset, cfg *domain.MethodologyConfig) domain.Asset {
	a = ApplyJewelryExemption(a, cfg)
	a = NormalizeTreatment(a)
	a.CalculationModifier = ResolveModifier(a)
	return a
}
