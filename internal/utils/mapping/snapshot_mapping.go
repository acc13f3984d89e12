package mapping

import (
	"github.com/shopspring/decimal"

	"github.com/slimatic/zakapp-sub006/internal/core/domain"
	"github.com/slimatic/zakapp-sub006/internal/models"
)

// ToModelSnapshot converts a domain CalculationSnapshot to its persisted form.
// The monetary ciphertexts are produced by the repository's field cipher; the
// mapping layer never sees the key.
func ToModelSnapshot(d domain.CalculationSnapshot, totalWealthEnc, zakatDueEnc, nisabThresholdEnc string) models.CalculationSnapshot {
	return models.CalculationSnapshot{
		SnapshotID:          d.SnapshotID,
		UserID:              d.UserID,
		CalculationDate:     d.CalculationDate,
		Methodology:         string(d.Methodology),
		MethodologyConfigID: d.MethodologyConfigID,
		CalendarType:        string(d.CalendarType),
		ZakatYearStart:      d.ZakatYearStart,
		ZakatYearEnd:        d.ZakatYearEnd,
		TotalWealthEnc:      totalWealthEnc,
		ZakatDueEnc:         zakatDueEnc,
		NisabThresholdEnc:   nisabThresholdEnc,
		IsLocked:            d.IsLocked,
		UnlockReason:        d.UnlockReason,
		UnlockedAt:          d.UnlockedAt,
		AuditFields:         ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainSnapshot converts a persisted snapshot plus its decrypted monetary
// values back to the domain form.
func ToDomainSnapshot(m models.CalculationSnapshot, totalWealth, zakatDue, nisabThreshold decimal.Decimal) domain.CalculationSnapshot {
	return domain.CalculationSnapshot{
		SnapshotID:          m.SnapshotID,
		UserID:              m.UserID,
		CalculationDate:     m.CalculationDate,
		Methodology:         domain.Methodology(m.Methodology),
		MethodologyConfigID: m.MethodologyConfigID,
		CalendarType:        domain.CalendarType(m.CalendarType),
		ZakatYearStart:      m.ZakatYearStart,
		ZakatYearEnd:        m.ZakatYearEnd,
		TotalWealth:         totalWealth,
		ZakatDue:            zakatDue,
		NisabThreshold:      nisabThreshold,
		IsLocked:            m.IsLocked,
		UnlockReason:        m.UnlockReason,
		UnlockedAt:          m.UnlockedAt,
		AuditFields:         ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelSnapshotAssetValue converts a domain SnapshotAssetValue to its
// persisted form with the captured value already encrypted.
func ToModelSnapshotAssetValue(d domain.SnapshotAssetValue, capturedValueEnc string) models.SnapshotAssetValue {
	return models.SnapshotAssetValue{
		SnapshotAssetValueID: d.SnapshotAssetValueID,
		SnapshotID:           d.SnapshotID,
		AssetID:              d.AssetID,
		AssetName:            d.AssetName,
		AssetCategory:        string(d.AssetCategory),
		CapturedValueEnc:     capturedValueEnc,
		CapturedAt:           d.CapturedAt,
		IsZakatable:          d.IsZakatable,
	}
}

// ToDomainSnapshotAssetValue converts a persisted asset value plus its
// decrypted captured value back to the domain form.
func ToDomainSnapshotAssetValue(m models.SnapshotAssetValue, capturedValue decimal.Decimal) domain.SnapshotAssetValue {
	return domain.SnapshotAssetValue{
		SnapshotAssetValueID: m.SnapshotAssetValueID,
		SnapshotID:           m.SnapshotID,
		AssetID:              m.AssetID,
		AssetName:            m.AssetName,
		AssetCategory:        domain.AssetCategory(m.AssetCategory),
		CapturedValue:        capturedValue,
		CapturedAt:           m.CapturedAt,
		IsZakatable:          m.IsZakatable,
	}
}
