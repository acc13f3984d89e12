package zakat

import (
	"github.com/shopspring/decimal"

	"github.com/slimatic/zakapp-sub006/internal/core/domain"
)

// CalculateZakat combines classified assets and a resolved nisab into a final
// calculation result. All assets contribute to TotalAssets for display;
// only eligible assets contribute to zakatable wealth. The nisab gate is
// all-or-nothing: when the aggregate falls below the effective nisab, zakat
// due is zero for every asset even if an individual value exceeds nisab.
func CalculateZakat(assets []domain.Asset, methodology domain.Methodology, zakatRate decimal.Decimal, nisab domain.NisabInfo) domain.ZakatCalculationResult {
	totalAssets := decimal.Zero
	totalZakatable := decimal.Zero

	for _, a := range assets {
		totalAssets = totalAssets.Add(a.Value)
		if a.ZakatEligible {
			totalZakatable = totalZakatable.Add(a.Value.Mul(a.CalculationModifier))
		}
	}

	meetsNisab := totalZakatable.GreaterThanOrEqual(nisab.EffectiveNisab)

	breakdown := make([]domain.AssetBreakdown, 0, len(assets))
	totalDue := decimal.Zero
	for _, a := range assets {
		line := domain.AssetBreakdown{
			AssetID:         a.AssetID,
			AssetName:       a.Name,
			Category:        a.Category,
			Value:           a.Value,
			Modifier:        a.CalculationModifier,
			ZakatableAmount: decimal.Zero,
			ZakatDue:        decimal.Zero,
		}
		if meetsNisab && a.ZakatEligible {
			line.ZakatableAmount = a.Value.Mul(a.CalculationModifier)
			line.ZakatDue = line.ZakatableAmount.Mul(zakatRate)
			totalDue = totalDue.Add(line.ZakatDue)
		}
		breakdown = append(breakdown, line)
	}

	if !meetsNisab {
		totalDue = decimal.Zero
	}

	return domain.ZakatCalculationResult{
		Methodology:          methodology,
		Nisab:                nisab,
		Breakdown:            breakdown,
		TotalAssets:          totalAssets,
		TotalZakatableAssets: totalZakatable,
		TotalZakatDue:        totalDue,
		MeetsNisab:           meetsNisab,
	}
}

// FilterAssets restricts assets to an explicit subset of IDs. Unknown IDs are
// silently ignored. A nil or empty include list keeps every asset.
func FilterAssets(assets []domain.Asset, includeAssets []string) []domain.Asset {
	if len(includeAssets) == 0 {
		return assets
	}
	include := make(map[string]struct{}, len(includeAssets))
	for _, id := range includeAssets {
		include[id] = struct{}{}
	}
	filtered := make([]domain.Asset, 0, len(assets))
	for _, a := range assets {
		if _, ok := include[a.AssetID]; ok {
			filtered = append(filtered, a)
		}
	}
	return filtered
}
