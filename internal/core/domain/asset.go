package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// AssetCategory is the canonical category of a user-owned holding.
type AssetCategory string

const (
	CategoryCash              AssetCategory = "CASH"
	CategoryBankAccount       AssetCategory = "BANK_ACCOUNT"
	CategoryGold              AssetCategory = "GOLD"
	CategorySilver            AssetCategory = "SILVER"
	CategoryBusiness          AssetCategory = "BUSINESS"
	CategoryProperty          AssetCategory = "PROPERTY"
	CategoryStocks            AssetCategory = "STOCKS"
	CategoryETF               AssetCategory = "ETF"
	CategoryMutualFund        AssetCategory = "MUTUAL_FUND"
	CategoryRothIRA           AssetCategory = "ROTH_IRA"
	CategoryRetirement        AssetCategory = "RETIREMENT"
	CategoryCrypto            AssetCategory = "CRYPTO"
	CategoryDebts             AssetCategory = "DEBTS"
	CategoryExpenses          AssetCategory = "EXPENSES"
	CategoryTrust             AssetCategory = "TRUST"
	CategoryEscrow            AssetCategory = "ESCROW"
	CategoryRestrictedAccount AssetCategory = "RESTRICTED_ACCOUNT"
	CategoryOther             AssetCategory = "OTHER"
)

// CategoryCapabilities describes which special zakat treatments a category may carry.
type CategoryCapabilities struct {
	PassiveEligible    bool
	RestrictedEligible bool
}

// categoryCapabilities is the single lookup table for category capabilities.
// Resolved at compile time; no runtime string matching against allow-lists.
var categoryCapabilities = map[AssetCategory]CategoryCapabilities{
	CategoryCash:              {},
	CategoryBankAccount:       {},
	CategoryGold:              {},
	CategorySilver:            {},
	CategoryBusiness:          {},
	CategoryProperty:          {},
	CategoryStocks:            {PassiveEligible: true},
	CategoryETF:               {PassiveEligible: true},
	CategoryMutualFund:        {PassiveEligible: true},
	CategoryRothIRA:           {PassiveEligible: true},
	CategoryRetirement:        {},
	CategoryCrypto:            {},
	CategoryDebts:             {},
	CategoryExpenses:          {},
	CategoryTrust:             {RestrictedEligible: true},
	CategoryEscrow:            {RestrictedEligible: true},
	CategoryRestrictedAccount: {RestrictedEligible: true},
	CategoryOther:             {},
}

// Capabilities returns the capability entry for the category. Unknown
// categories have no special capabilities.
func (c AssetCategory) Capabilities() CategoryCapabilities {
	return categoryCapabilities[c]
}

// IsPassiveEligible reports whether assets of this category may carry the
// passive-investment treatment.
func (c AssetCategory) IsPassiveEligible() bool {
	return categoryCapabilities[c].PassiveEligible
}

// IsRestrictedEligible reports whether assets of this category may carry the
// restricted-account treatment.
func (c AssetCategory) IsRestrictedEligible() bool {
	return categoryCapabilities[c].RestrictedEligible
}

// IsValid reports whether the category is one of the canonical values.
func (c AssetCategory) IsValid() bool {
	_, ok := categoryCapabilities[c]
	return ok
}

// RetirementMethodology selects how a retirement account's zakatable portion is derived.
type RetirementMethodology string

const (
	RetirementManual          RetirementMethodology = "manual"
	RetirementPreservedGrowth RetirementMethodology = "preserved_growth"
	RetirementCollectible     RetirementMethodology = "collectible_value"
)

// RetirementConfig carries the per-asset retirement treatment parameters.
// Penalty and tax rate are ratios in [0,1].
type RetirementConfig struct {
	Methodology       RetirementMethodology `json:"methodology"`
	WithdrawalPenalty decimal.Decimal       `json:"withdrawalPenalty"`
	EstimatedTaxRate  decimal.Decimal       `json:"estimatedTaxRate"`
}

// TreatmentKind tags the zakat treatment variant of an asset.
type TreatmentKind string

const (
	TreatmentFull       TreatmentKind = "FULL"
	TreatmentPassive    TreatmentKind = "PASSIVE"
	TreatmentRestricted TreatmentKind = "RESTRICTED"
	TreatmentRetirement TreatmentKind = "RETIREMENT"
)

// ZakatTreatment is a tagged variant: exactly one treatment applies to an asset
// at any time, which rules out the passive+restricted combination entirely.
// Retirement carries its config; the other variants carry nothing.
type ZakatTreatment struct {
	Kind       TreatmentKind     `json:"kind"`
	Retirement *RetirementConfig `json:"retirement,omitempty"`
}

// FullTreatment is the default treatment for a newly classified asset.
func FullTreatment() ZakatTreatment {
	return ZakatTreatment{Kind: TreatmentFull}
}

// IsPassive reports whether the asset carries the passive-investment treatment.
func (t ZakatTreatment) IsPassive() bool { return t.Kind == TreatmentPassive }

// IsRestricted reports whether the asset carries the restricted-account treatment.
func (t ZakatTreatment) IsRestricted() bool { return t.Kind == TreatmentRestricted }

// retirementSubCategoryPrefix marks sub-categories denoting retirement accounts
// (retirement_401k, retirement_ira, ...).
const retirementSubCategoryPrefix = "retirement"

// IsRetirementSubCategory reports whether the sub-category denotes a retirement account.
func IsRetirementSubCategory(subCategory string) bool {
	return strings.HasPrefix(strings.ToLower(subCategory), retirementSubCategoryPrefix)
}

// Property sub-categories exempt from zakat (held for use, not trade).
const (
	SubCategoryPersonalResidence = "personal_residence"
	SubCategoryRentalProperty    = "rental_property"
	SubCategoryVacantLand        = "vacant_land"
	SubCategoryJewelry           = "jewelry"
)

// Asset represents a user-owned holding within the core domain.
// This is the primary representation used by services. CalculationModifier is
// derived from Treatment/category/sub-category and re-resolved on every state
// transition; it is never trusted independently of its inputs.
type Asset struct {
	AssetID             string          `json:"assetID"`
	UserID              string          `json:"userID"`
	Name                string          `json:"name"`
	Category            AssetCategory   `json:"category"`
	SubCategory         string          `json:"subCategory"`
	Value               decimal.Decimal `json:"value"`
	CurrencyCode        string          `json:"currencyCode"`
	AcquisitionDate     time.Time       `json:"acquisitionDate"`
	ZakatEligible       bool            `json:"zakatEligible"`
	IsEligibilityManual bool            `json:"isEligibilityManual"`
	Treatment           ZakatTreatment  `json:"treatment"`
	CalculationModifier decimal.Decimal `json:"calculationModifier"`
	IsActive            bool            `json:"isActive"`
	AuditFields
}

// IsRetirement reports whether the asset is treated as a retirement account,
// i.e. its sub-category denotes retirement and a config is attached.
func (a *Asset) IsRetirement() bool {
	return IsRetirementSubCategory(a.SubCategory) && a.Treatment.Kind == TreatmentRetirement && a.Treatment.Retirement != nil
}
