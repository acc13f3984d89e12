package mapping

import (
	"github.com/slimatic/zakapp-sub006/internal/core/domain"
	"github.com/slimatic/zakapp-sub006/internal/models"
)

// ToModelAsset converts a domain Asset to a model Asset, flattening the
// treatment variant into the treatment_kind plus retirement columns.
func ToModelAsset(d domain.Asset) models.Asset {
	m := models.Asset{
		AssetID:             d.AssetID,
		UserID:              d.UserID,
		Name:                d.Name,
		Category:            string(d.Category),
		SubCategory:         d.SubCategory,
		Value:               d.Value,
		CurrencyCode:        d.CurrencyCode,
		AcquisitionDate:     d.AcquisitionDate,
		ZakatEligible:       d.ZakatEligible,
		IsEligibilityManual: d.IsEligibilityManual,
		TreatmentKind:       string(d.Treatment.Kind),
		CalculationModifier: d.CalculationModifier,
		IsActive:            d.IsActive,
		AuditFields:         ToModelAuditFields(d.AuditFields),
	}
	if d.Treatment.Kind == domain.TreatmentRetirement && d.Treatment.Retirement != nil {
		method := string(d.Treatment.Retirement.Methodology)
		penalty := d.Treatment.Retirement.WithdrawalPenalty
		taxRate := d.Treatment.Retirement.EstimatedTaxRate
		m.RetirementMethod = &method
		m.WithdrawalPenalty = &penalty
		m.EstimatedTaxRate = &taxRate
	}
	return m
}

// ToDomainAsset converts a model Asset to a domain Asset, rebuilding the
// treatment variant. A RETIREMENT row without retirement columns degrades to
// the full treatment rather than an invalid state.
func ToDomainAsset(m models.Asset) domain.Asset {
	d := domain.Asset{
		AssetID:             m.AssetID,
		UserID:              m.UserID,
		Name:                m.Name,
		Category:            domain.AssetCategory(m.Category),
		SubCategory:         m.SubCategory,
		Value:               m.Value,
		CurrencyCode:        m.CurrencyCode,
		AcquisitionDate:     m.AcquisitionDate,
		ZakatEligible:       m.ZakatEligible,
		IsEligibilityManual: m.IsEligibilityManual,
		Treatment:           domain.FullTreatment(),
		CalculationModifier: m.CalculationModifier,
		IsActive:            m.IsActive,
		AuditFields:         ToDomainAuditFields(m.AuditFields),
	}
	switch domain.TreatmentKind(m.TreatmentKind) {
	case domain.TreatmentPassive:
		d.Treatment = domain.ZakatTreatment{Kind: domain.TreatmentPassive}
	case domain.TreatmentRestricted:
		d.Treatment = domain.ZakatTreatment{Kind: domain.TreatmentRestricted}
	case domain.TreatmentRetirement:
		if m.RetirementMethod != nil && m.WithdrawalPenalty != nil && m.EstimatedTaxRate != nil {
			d.Treatment = domain.ZakatTreatment{
				Kind: domain.TreatmentRetirement,
				Retirement: &domain.RetirementConfig{
					Methodology:       domain.RetirementMethodology(*m.RetirementMethod),
					WithdrawalPenalty: *m.WithdrawalPenalty,
					EstimatedTaxRate:  *m.EstimatedTaxRate,
				},
			}
		}
	}
	return d
}

// ToDomainAssetSlice converts a slice of model Assets to domain Assets
func ToDomainAssetSlice(ms []models.Asset) []domain.Asset {
	ds := make([]domain.Asset, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAsset(m)
	}
	return ds
}
