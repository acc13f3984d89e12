package services

import (
	"context"

	"github.com/shopspring/decimal"
)

// PriceOracle supplies current metal prices per gram in a target currency.
// Implementations must recover fetch failures internally (cached or fallback
// price); a returned error means no usable price exists at all.
type PriceOracle interface {
	// GetGoldPricePerGram returns the gold price per gram in the currency.
	GetGoldPricePerGram(ctx context.Context, currency string) (decimal.Decimal, error)

	// GetSilverPricePerGram returns the silver price per gram in the currency.
	GetSilverPricePerGram(ctx context.Context, currency string) (decimal.Decimal, error)
}
