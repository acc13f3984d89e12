package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/slimatic/zakapp-sub006/internal/core/domain"
)

// RetirementConfigDTO carries the retirement treatment parameters on the wire.
type RetirementConfigDTO struct {
	Methodology       string          `json:"methodology" binding:"required,oneof=manual preserved_growth collectible_value"`
	WithdrawalPenalty decimal.Decimal `json:"withdrawalPenalty"`
	EstimatedTaxRate  decimal.Decimal `json:"estimatedTaxRate"`
}

// CreateAssetRequest defines the data needed to register a new asset.
type CreateAssetRequest struct {
	Name                string               `json:"name" binding:"required"`
	Category            string               `json:"category" binding:"required"`
	SubCategory         string               `json:"subCategory"`
	Value               decimal.Decimal      `json:"value" binding:"required"`
	CurrencyCode        string               `json:"currencyCode" binding:"required,uppercase,len=3"`
	AcquisitionDate     *time.Time           `json:"acquisitionDate"`
	ZakatEligible       *bool                `json:"zakatEligible"`
	IsPassiveInvestment bool                 `json:"isPassiveInvestment"`
	IsRestrictedAccount bool                 `json:"isRestrictedAccount"`
	RetirementConfig    *RetirementConfigDTO `json:"retirementConfig"`
}

// UpdateAssetRequest defines updatable asset fields. Nil pointers leave the
// corresponding field untouched; category, sub-category or flag changes
// trigger re-classification.
type UpdateAssetRequest struct {
	Name                *string              `json:"name"`
	Category            *string              `json:"category"`
	SubCategory         *string              `json:"subCategory"`
	Value               *decimal.Decimal     `json:"value"`
	AcquisitionDate     *time.Time           `json:"acquisitionDate"`
	ZakatEligible       *bool                `json:"zakatEligible"`
	IsPassiveInvestment *bool                `json:"isPassiveInvestment"`
	IsRestrictedAccount *bool                `json:"isRestrictedAccount"`
	RetirementConfig    *RetirementConfigDTO `json:"retirementConfig"`
}

// AssetResponse defines the data returned for an asset, including the derived
// classification.
type AssetResponse struct {
	AssetID             string               `json:"assetID"`
	Name                string               `json:"name"`
	Category            string               `json:"category"`
	SubCategory         string               `json:"subCategory,omitempty"`
	Value               decimal.Decimal      `json:"value"`
	CurrencyCode        string               `json:"currencyCode"`
	AcquisitionDate     time.Time            `json:"acquisitionDate"`
	ZakatEligible       bool                 `json:"zakatEligible"`
	IsEligibilityManual bool                 `json:"isEligibilityManual"`
	IsPassiveInvestment bool                 `json:"isPassiveInvestment"`
	IsRestrictedAccount bool                 `json:"isRestrictedAccount"`
	RetirementConfig    *RetirementConfigDTO `json:"retirementConfig,omitempty"`
	CalculationModifier decimal.Decimal      `json:"calculationModifier"`
	CreatedAt           time.Time            `json:"createdAt"`
	LastUpdatedAt       time.Time            `json:"lastUpdatedAt"`
}

// ToAssetResponse converts a domain.Asset to an AssetResponse DTO
func ToAssetResponse(a *domain.Asset) AssetResponse {
	resp := AssetResponse{
		AssetID:             a.AssetID,
		Name:                a.Name,
		Category:            string(a.Category),
		SubCategory:         a.SubCategory,
		Value:               a.Value,
		CurrencyCode:        a.CurrencyCode,
		AcquisitionDate:     a.AcquisitionDate,
		ZakatEligible:       a.ZakatEligible,
		IsEligibilityManual: a.IsEligibilityManual,
		IsPassiveInvestment: a.Treatment.IsPassive(),
		IsRestrictedAccount: a.Treatment.IsRestricted(),
		CalculationModifier: a.CalculationModifier,
		CreatedAt:           a.CreatedAt,
		LastUpdatedAt:       a.LastUpdatedAt,
	}
	if a.Treatment.Kind == domain.TreatmentRetirement && a.Treatment.Retirement != nil {
		resp.RetirementConfig = &RetirementConfigDTO{
			Methodology:       string(a.Treatment.Retirement.Methodology),
			WithdrawalPenalty: a.Treatment.Retirement.WithdrawalPenalty,
			EstimatedTaxRate:  a.Treatment.Retirement.EstimatedTaxRate,
		}
	}
	return resp
}

// ToListAssetResponse converts a slice of domain.Asset to AssetResponse DTOs
func ToListAssetResponse(assets []domain.Asset) []AssetResponse {
	res := make([]AssetResponse, len(assets))
	for i := range assets {
		res[i] = ToAssetResponse(&assets[i])
	}
	return res
}
