package mapping

import (
	"github.com/slimatic/zakapp-sub006/internal/core/domain"
	"github.com/slimatic/zakapp-sub006/internal/models"
)

// ToModelMethodologyConfig converts a domain MethodologyConfig to a model MethodologyConfig
func ToModelMethodologyConfig(d domain.MethodologyConfig) models.MethodologyConfig {
	return models.MethodologyConfig{
		ConfigID:      d.ConfigID,
		UserID:        d.UserID,
		Name:          d.Name,
		NisabBasis:    string(d.NisabBasis),
		ZakatRate:     d.ZakatRate,
		JewelryExempt: d.JewelryExempt,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainMethodologyConfig converts a model MethodologyConfig to a domain MethodologyConfig
func ToDomainMethodologyConfig(m models.MethodologyConfig) domain.MethodologyConfig {
	return domain.MethodologyConfig{
		ConfigID:      m.ConfigID,
		UserID:        m.UserID,
		Name:          m.Name,
		NisabBasis:    domain.NisabBasis(m.NisabBasis),
		ZakatRate:     m.ZakatRate,
		JewelryExempt: m.JewelryExempt,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainMethodologyConfigSlice converts model MethodologyConfigs to domain form
func ToDomainMethodologyConfigSlice(ms []models.MethodologyConfig) []domain.MethodologyConfig {
	ds := make([]domain.MethodologyConfig, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainMethodologyConfig(m)
	}
	return ds
}
