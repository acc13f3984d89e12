package zakat

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/slimatic/zakapp-sub006/internal/core/domain"
)

func TestCalculateNisab(t *testing.T) {
	goldPrice := decimal.NewFromInt(67)       // per gram
	silverPrice := decimal.NewFromFloat(0.85) // per gram

	expectedGoldNisab := decimal.NewFromFloat(5861.16)   // 87.48 * 67
	expectedSilverNisab := decimal.NewFromFloat(520.506) // 612.36 * 0.85

	t.Run("hanafi resolves to silver", func(t *testing.T) {
		info := CalculateNisab(goldPrice, silverPrice, domain.MethodologyHanafi)
		assert.True(t, expectedGoldNisab.Equal(info.GoldNisab))
		assert.True(t, expectedSilverNisab.Equal(info.SilverNisab))
		assert.True(t, expectedSilverNisab.Equal(info.EffectiveNisab))
		assert.Equal(t, domain.NisabBasisSilver, info.NisabBasis)
		assert.Equal(t, domain.MethodologyHanafi, info.CalculationMethod)
	})

	t.Run("hanbali resolves to gold", func(t *testing.T) {
		info := CalculateNisab(goldPrice, silverPrice, domain.MethodologyHanbali)
		assert.True(t, expectedGoldNisab.Equal(info.EffectiveNisab))
		assert.Equal(t, domain.NisabBasisGold, info.NisabBasis)
	})

	t.Run("standard takes the dual minimum", func(t *testing.T) {
		info := CalculateNisab(goldPrice, silverPrice, domain.MethodologyStandard)
		assert.True(t, expectedSilverNisab.Equal(info.EffectiveNisab))
		assert.Equal(t, domain.NisabBasisDualMinimumSilver, info.NisabBasis)
	})

	t.Run("dual minimum picks gold when gold is lower", func(t *testing.T) {
		// Inverted prices so the gold threshold undercuts silver.
		info := CalculateNisab(decimal.NewFromFloat(0.5), decimal.NewFromInt(10), domain.MethodologyShafii)
		assert.True(t, info.GoldNisab.LessThan(info.SilverNisab))
		assert.True(t, info.GoldNisab.Equal(info.EffectiveNisab))
		assert.Equal(t, domain.NisabBasisDualMinimumGold, info.NisabBasis)
	})

	t.Run("custom uses the dual minimum before any override", func(t *testing.T) {
		info := CalculateNisab(goldPrice, silverPrice, domain.MethodologyCustom)
		assert.True(t, expectedSilverNisab.Equal(info.EffectiveNisab))
		assert.Equal(t, domain.NisabBasisDualMinimumSilver, info.NisabBasis)
	})
}

func TestApplyNisabBasisOverride(t *testing.T) {
	base := CalculateNisab(decimal.NewFromInt(67), decimal.NewFromFloat(0.85), domain.MethodologyCustom)

	t.Run("gold override", func(t *testing.T) {
		got := ApplyNisabBasisOverride(base, domain.NisabBasisGold)
		assert.True(t, base.GoldNisab.Equal(got.EffectiveNisab))
		assert.Equal(t, domain.NisabBasisGold, got.NisabBasis)
	})

	t.Run("silver override", func(t *testing.T) {
		got := ApplyNisabBasisOverride(base, domain.NisabBasisSilver)
		assert.True(t, base.SilverNisab.Equal(got.EffectiveNisab))
		assert.Equal(t, domain.NisabBasisSilver, got.NisabBasis)
	})

	t.Run("dual minimum keeps the prior resolution", func(t *testing.T) {
		got := ApplyNisabBasisOverride(base, domain.NisabBasisDualMinimumGold)
		assert.True(t, base.EffectiveNisab.Equal(got.EffectiveNisab))
		assert.Equal(t, base.NisabBasis, got.NisabBasis)
	})
}
