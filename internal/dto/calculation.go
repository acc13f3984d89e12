package dto

import (
	"github.com/shopspring/decimal"

	"github.com/slimatic/zakapp-sub006/internal/core/domain"
)

// CalculateZakatRequest defines an ad-hoc (non-persisted) zakat calculation.
// IncludeAssets restricts the calculation to the listed asset IDs; unknown IDs
// are ignored.
type CalculateZakatRequest struct {
	Methodology         string   `json:"methodology" binding:"required,methodology"`
	MethodologyConfigID *string  `json:"methodologyConfigID"`
	Currency            string   `json:"currency" binding:"omitempty,uppercase,len=3"`
	IncludeAssets       []string `json:"includeAssets"`
}

// NisabResponse defines the data returned for a nisab threshold resolution.
type NisabResponse struct {
	GoldNisab         decimal.Decimal `json:"goldNisab"`
	SilverNisab       decimal.Decimal `json:"silverNisab"`
	EffectiveNisab    decimal.Decimal `json:"effectiveNisab"`
	NisabBasis        string          `json:"nisabBasis"`
	CalculationMethod string          `json:"calculationMethod"`
	Currency          string          `json:"currency"`
}

// ToNisabResponse converts a domain.NisabInfo to a NisabResponse DTO
func ToNisabResponse(n domain.NisabInfo, currency string) NisabResponse {
	return NisabResponse{
		GoldNisab:         n.GoldNisab,
		SilverNisab:       n.SilverNisab,
		EffectiveNisab:    n.EffectiveNisab,
		NisabBasis:        string(n.NisabBasis),
		CalculationMethod: string(n.CalculationMethod),
		Currency:          currency,
	}
}

// AssetBreakdownResponse is one per-asset line of a calculation response.
type AssetBreakdownResponse struct {
	AssetID         string          `json:"assetID"`
	AssetName       string          `json:"assetName"`
	Category        string          `json:"category"`
	Value           decimal.Decimal `json:"value"`
	Modifier        decimal.Decimal `json:"modifier"`
	ZakatableAmount decimal.Decimal `json:"zakatableAmount"`
	ZakatDue        decimal.Decimal `json:"zakatDue"`
}

// ZakatCalculationResponse defines the data returned for a zakat calculation.
type ZakatCalculationResponse struct {
	Methodology          string                   `json:"methodology"`
	Nisab                NisabResponse            `json:"nisab"`
	Breakdown            []AssetBreakdownResponse `json:"breakdown"`
	TotalAssets          decimal.Decimal          `json:"totalAssets"`
	TotalZakatableAssets decimal.Decimal          `json:"totalZakatableAssets"`
	TotalZakatDue        decimal.Decimal          `json:"totalZakatDue"`
	MeetsNisab           bool                     `json:"meetsNisab"`
}

// ToZakatCalculationResponse converts a domain.ZakatCalculationResult to its DTO
func ToZakatCalculationResponse(r *domain.ZakatCalculationResult, currency string) ZakatCalculationResponse {
	breakdown := make([]AssetBreakdownResponse, len(r.Breakdown))
	for i, line := range r.Breakdown {
		breakdown[i] = AssetBreakdownResponse{
			AssetID:         line.AssetID,
			AssetName:       line.AssetName,
			Category:        string(line.Category),
			Value:           line.Value,
			Modifier:        line.Modifier,
			ZakatableAmount: line.ZakatableAmount,
			ZakatDue:        line.ZakatDue,
		}
	}
	return ZakatCalculationResponse{
		Methodology:          string(r.Methodology),
		Nisab:                ToNisabResponse(r.Nisab, currency),
		Breakdown:            breakdown,
		TotalAssets:          r.TotalAssets,
		TotalZakatableAssets: r.TotalZakatableAssets,
		TotalZakatDue:        r.TotalZakatDue,
		MeetsNisab:           r.MeetsNisab,
	}
}
