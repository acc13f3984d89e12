package services

import (
	"context"

	"github.com/slimatic/zakapp-sub006/internal/core/domain"
	"github.com/slimatic/zakapp-sub006/internal/dto"
)

// ZakatSvcFacade exposes nisab resolution and ad-hoc zakat calculation.
type ZakatSvcFacade interface {
	// CalculateNisab resolves the nisab thresholds for a methodology in the
	// given currency, consulting the price oracle.
	CalculateNisab(ctx context.Context, methodology domain.Methodology, currency string) (*domain.NisabInfo, error)

	// CalculateZakat runs a full (non-persisted) calculation over the user's
	// active assets.
	CalculateZakat(ctx context.Context, userID string, req dto.CalculateZakatRequest) (*domain.ZakatCalculationResult, error)
}
