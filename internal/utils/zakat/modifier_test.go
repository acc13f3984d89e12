package zakat

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/slimatic/zakapp-sub006/internal/core/domain"
)

func TestResolveModifier(t *testing.T) {
	tests := []struct {
		name     string
		asset    domain.Asset
		expected decimal.Decimal
	}{
		{
			name: "Full treatment cash",
			asset: domain.Asset{
				Category:  domain.CategoryCash,
				Treatment: domain.FullTreatment(),
			},
			expected: decimal.NewFromInt(1),
		},
		{
			name: "Passive stocks get the 30 percent rule",
			asset: domain.Asset{
				Category:  domain.CategoryStocks,
				Treatment: domain.ZakatTreatment{Kind: domain.TreatmentPassive},
			},
			expected: decimal.NewFromFloat(0.3),
		},
		{
			name: "Restricted trust is fully deferred",
			asset: domain.Asset{
				Category:  domain.CategoryTrust,
				Treatment: domain.ZakatTreatment{Kind: domain.TreatmentRestricted},
			},
			expected: decimal.Zero,
		},
		{
			name: "Retirement preserved growth",
			asset: domain.Asset{
				Category:    domain.CategoryRetirement,
				SubCategory: "retirement_401k",
				Treatment: domain.ZakatTreatment{
					Kind: domain.TreatmentRetirement,
					Retirement: &domain.RetirementConfig{
						Methodology: domain.RetirementPreservedGrowth,
					},
				},
			},
			expected: decimal.NewFromFloat(0.2),
		},
		{
			name: "Retirement collectible subtracts penalty and tax",
			asset: domain.Asset{
				Category:    domain.CategoryRetirement,
				SubCategory: "retirement_ira",
				Treatment: domain.ZakatTreatment{
					Kind: domain.TreatmentRetirement,
					Retirement: &domain.RetirementConfig{
						Methodology:       domain.RetirementCollectible,
						WithdrawalPenalty: decimal.NewFromFloat(0.10),
						EstimatedTaxRate:  decimal.NewFromFloat(0.25),
					},
				},
			},
			expected: decimal.NewFromFloat(0.65),
		},
		{
			name: "Retirement collectible clamps at zero",
			asset: domain.Asset{
				Category:    domain.CategoryRetirement,
				SubCategory: "retirement_ira",
				Treatment: domain.ZakatTreatment{
					Kind: domain.TreatmentRetirement,
					Retirement: &domain.RetirementConfig{
						Methodology:       domain.RetirementCollectible,
						WithdrawalPenalty: decimal.NewFromFloat(0.60),
						EstimatedTaxRate:  decimal.NewFromFloat(0.55),
					},
				},
			},
			expected: decimal.Zero,
		},
		{
			name: "Retirement manual keeps full value",
			asset: domain.Asset{
				Category:    domain.CategoryRetirement,
				SubCategory: "retirement_403b",
				Treatment: domain.ZakatTreatment{
					Kind: domain.TreatmentRetirement,
					Retirement: &domain.RetirementConfig{
						Methodology: domain.RetirementManual,
					},
				},
			},
			expected: decimal.NewFromInt(1),
		},
		{
			name: "Personal residence is exempt",
			asset: domain.Asset{
				Category:    domain.CategoryProperty,
				SubCategory: domain.SubCategoryPersonalResidence,
				Treatment:   domain.FullTreatment(),
			},
			expected: decimal.Zero,
		},
		{
			name: "Rental property is exempt",
			asset: domain.Asset{
				Category:    domain.CategoryProperty,
				SubCategory: domain.SubCategoryRentalProperty,
				Treatment:   domain.FullTreatment(),
			},
			expected: decimal.Zero,
		},
		{
			name: "Vacant land is exempt",
			asset: domain.Asset{
				Category:    domain.CategoryProperty,
				SubCategory: domain.SubCategoryVacantLand,
				Treatment:   domain.FullTreatment(),
			},
			expected: decimal.Zero,
		},
		{
			name: "Property held for trade keeps full value",
			asset: domain.Asset{
				Category:    domain.CategoryProperty,
				SubCategory: "trade_inventory",
				Treatment:   domain.FullTreatment(),
			},
			expected: decimal.NewFromInt(1),
		},
		{
			name: "Retirement treatment wins over passive category",
			asset: domain.Asset{
				Category:    domain.CategoryRothIRA,
				SubCategory: "retirement_roth",
				Treatment: domain.ZakatTreatment{
					Kind: domain.TreatmentRetirement,
					Retirement: &domain.RetirementConfig{
						Methodology: domain.RetirementPreservedGrowth,
					},
				},
			},
			expected: decimal.NewFromFloat(0.2),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveModifier(tt.asset)
			assert.True(t, tt.expected.Equal(got), "expected %s, got %s", tt.expected, got)
		})
	}
}

func TestNormalizeTreatment(t *testing.T) {
	t.Run("passive cleared on non-eligible category", func(t *testing.T) {
		a := domain.Asset{
			Category:      domain.CategoryCash,
			ZakatEligible: true,
			Treatment:     domain.ZakatTreatment{Kind: domain.TreatmentPassive},
		}
		got := NormalizeTreatment(a)
		assert.Equal(t, domain.TreatmentFull, got.Treatment.Kind)
	})

	t.Run("passive cleared on retirement sub-category", func(t *testing.T) {
		a := domain.Asset{
			Category:      domain.CategoryStocks,
			SubCategory:   "retirement_401k",
			ZakatEligible: true,
			Treatment:     domain.ZakatTreatment{Kind: domain.TreatmentPassive},
		}
		got := NormalizeTreatment(a)
		assert.Equal(t, domain.TreatmentFull, got.Treatment.Kind)
	})

	t.Run("passive kept on eligible category", func(t *testing.T) {
		a := domain.Asset{
			Category:      domain.CategoryETF,
			ZakatEligible: true,
			Treatment:     domain.ZakatTreatment{Kind: domain.TreatmentPassive},
		}
		got := NormalizeTreatment(a)
		assert.Equal(t, domain.TreatmentPassive, got.Treatment.Kind)
	})

	t.Run("restricted cleared on non-eligible category", func(t *testing.T) {
		a := domain.Asset{
			Category:      domain.CategoryCash,
			ZakatEligible: true,
			Treatment:     domain.ZakatTreatment{Kind: domain.TreatmentRestricted},
		}
		got := NormalizeTreatment(a)
		assert.Equal(t, domain.TreatmentFull, got.Treatment.Kind)
	})

	t.Run("restricted kept on escrow", func(t *testing.T) {
		a := domain.Asset{
			Category:      domain.CategoryEscrow,
			ZakatEligible: true,
			Treatment:     domain.ZakatTreatment{Kind: domain.TreatmentRestricted},
		}
		got := NormalizeTreatment(a)
		assert.Equal(t, domain.TreatmentRestricted, got.Treatment.Kind)
	})

	t.Run("retirement treatment without retirement sub-category reverts", func(t *testing.T) {
		a := domain.Asset{
			Category:      domain.CategoryStocks,
			SubCategory:   "growth",
			ZakatEligible: true,
			Treatment: domain.ZakatTreatment{
				Kind:       domain.TreatmentRetirement,
				Retirement: &domain.RetirementConfig{Methodology: domain.RetirementManual},
			},
		}
		got := NormalizeTreatment(a)
		assert.Equal(t, domain.TreatmentFull, got.Treatment.Kind)
	})

	t.Run("retirement treatment without config reverts", func(t *testing.T) {
		a := domain.Asset{
			Category:      domain.CategoryRetirement,
			SubCategory:   "retirement_401k",
			ZakatEligible: true,
			Treatment:     domain.ZakatTreatment{Kind: domain.TreatmentRetirement},
		}
		got := NormalizeTreatment(a)
		assert.Equal(t, domain.TreatmentFull, got.Treatment.Kind)
	})

	t.Run("ineligible asset cannot keep a passive modifier", func(t *testing.T) {
		a := domain.Asset{
			Category:      domain.CategoryStocks,
			ZakatEligible: false,
			Treatment:     domain.ZakatTreatment{Kind: domain.TreatmentPassive},
		}
		got := NormalizeTreatment(a)
		assert.Equal(t, domain.TreatmentFull, got.Treatment.Kind)
	})

	t.Run("unknown treatment kind defaults to full", func(t *testing.T) {
		a := domain.Asset{
			Category:      domain.CategoryCash,
			ZakatEligible: true,
			Treatment:     domain.ZakatTreatment{Kind: domain.TreatmentKind("WEIRD")},
		}
		got := NormalizeTreatment(a)
		assert.Equal(t, domain.TreatmentFull, got.Treatment.Kind)
	})
}

func TestApplyJewelryExemption(t *testing.T) {
	exemptCfg := &domain.MethodologyConfig{JewelryExempt: true}

	t.Run("jewelry exempted under exempting config", func(t *testing.T) {
		a := domain.Asset{
			Category:      domain.CategoryGold,
			SubCategory:   domain.SubCategoryJewelry,
			ZakatEligible: true,
		}
		got := ApplyJewelryExemption(a, exemptCfg)
		assert.False(t, got.ZakatEligible)
	})

	t.Run("manual eligibility override wins", func(t *testing.T) {
		a := domain.Asset{
			Category:            domain.CategoryGold,
			SubCategory:         domain.SubCategoryJewelry,
			ZakatEligible:       true,
			IsEligibilityManual: true,
		}
		got := ApplyJewelryExemption(a, exemptCfg)
		assert.True(t, got.ZakatEligible)
	})

	t.Run("nil config leaves asset untouched", func(t *testing.T) {
		a := domain.Asset{
			Category:      domain.CategoryGold,
			SubCategory:   domain.SubCategoryJewelry,
			ZakatEligible: true,
		}
		got := ApplyJewelryExemption(a, nil)
		assert.True(t, got.ZakatEligible)
	})

	t.Run("non-jewelry asset untouched", func(t *testing.T) {
		a := domain.Asset{
			Category:      domain.CategoryGold,
			SubCategory:   "bullion",
			ZakatEligible: true,
		}
		got := ApplyJewelryExemption(a, exemptCfg)
		assert.True(t, got.ZakatEligible)
	})
}

func TestClassify(t *testing.T) {
	t.Run("stores resolved modifier", func(t *testing.T) {
		a := domain.Asset{
			Category:      domain.CategoryStocks,
			ZakatEligible: true,
			Treatment:     domain.ZakatTreatment{Kind: domain.TreatmentPassive},
		}
		got := Classify(a, nil)
		assert.True(t, decimal.NewFromFloat(0.3).Equal(got.CalculationModifier))
	})

	t.Run("jewelry exemption runs before modifier resolution", func(t *testing.T) {
		a := domain.Asset{
			Category:      domain.CategoryGold,
			SubCategory:   domain.SubCategoryJewelry,
			ZakatEligible: true,
			Treatment:     domain.FullTreatment(),
		}
		got := Classify(a, &domain.MethodologyConfig{JewelryExempt: true})
		assert.False(t, got.ZakatEligible)
		assert.True(t, decimal.NewFromInt(1).Equal(got.CalculationModifier))
	})
}
