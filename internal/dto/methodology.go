package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/slimatic/zakapp-sub006/internal/core/domain"
)

// CreateMethodologyConfigRequest defines the data for a user-defined CUSTOM ruleset.
type CreateMethodologyConfigRequest struct {
	Name          string           `json:"name" binding:"required"`
	NisabBasis    string           `json:"nisabBasis" binding:"required,oneof=gold silver dual_minimum"`
	ZakatRate     *decimal.Decimal `json:"zakatRate"`
	JewelryExempt bool             `json:"jewelryExempt"`
}

// UpdateMethodologyConfigRequest defines updatable config fields.
type UpdateMethodologyConfigRequest struct {
	Name          *string          `json:"name"`
	NisabBasis    *string          `json:"nisabBasis" binding:"omitempty,oneof=gold silver dual_minimum"`
	ZakatRate     *decimal.Decimal `json:"zakatRate"`
	JewelryExempt *bool            `json:"jewelryExempt"`
}

// MethodologyConfigResponse defines the data returned for a methodology config.
type MethodologyConfigResponse struct {
	ConfigID      string          `json:"configID"`
	Name          string          `json:"name"`
	NisabBasis    string          `json:"nisabBasis"`
	ZakatRate     decimal.Decimal `json:"zakatRate"`
	JewelryExempt bool            `json:"jewelryExempt"`
	CreatedAt     time.Time       `json:"createdAt"`
	LastUpdatedAt time.Time       `json:"lastUpdatedAt"`
}

// ToMethodologyConfigResponse converts a domain.MethodologyConfig to its DTO
func ToMethodologyConfigResponse(c *domain.MethodologyConfig) MethodologyConfigResponse {
	return MethodologyConfigResponse{
		ConfigID:      c.ConfigID,
		Name:          c.Name,
		NisabBasis:    string(c.NisabBasis),
		ZakatRate:     c.EffectiveZakatRate(),
		JewelryExempt: c.JewelryExempt,
		CreatedAt:     c.CreatedAt,
		LastUpdatedAt: c.LastUpdatedAt,
	}
}

// ToListMethodologyConfigResponse converts a slice of configs to DTOs
func ToListMethodologyConfigResponse(configs []domain.MethodologyConfig) []MethodologyConfigResponse {
	res := make([]MethodologyConfigResponse, len(configs))
	for i := range configs {
		res[i] = ToMethodologyConfigResponse(&configs[i])
	}
	return res
}
