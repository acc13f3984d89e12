package domain

import (
	"github.com/shopspring/decimal"
)

// AssetBreakdown is a per-asset line of a zakat calculation. ZakatableAmount
// and ZakatDue obey the all-or-nothing nisab gate: when the aggregate does not
// meet nisab, both are zero regardless of the asset's own value.
type AssetBreakdown struct {
	AssetID         string          `json:"assetID"`
	AssetName       string          `json:"assetName"`
	Category        AssetCategory   `json:"category"`
	Value           decimal.Decimal `json:"value"`
	Modifier        decimal.Decimal `json:"modifier"`
	ZakatableAmount decimal.Decimal `json:"zakatableAmount"`
	ZakatDue        decimal.Decimal `json:"zakatDue"`
}

// ZakatCalculationResult is a computed, not-yet-persisted calculation outcome.
type ZakatCalculationResult struct {
	Methodology          Methodology      `json:"methodology"`
	Nisab                NisabInfo        `json:"nisab"`
	Breakdown            []AssetBreakdown `json:"breakdown"`
	TotalAssets          decimal.Decimal  `json:"totalAssets"`
	TotalZakatableAssets decimal.Decimal  `json:"totalZakatableAssets"`
	TotalZakatDue        decimal.Decimal  `json:"totalZakatDue"`
	MeetsNisab           bool             `json:"meetsNisab"`
}
