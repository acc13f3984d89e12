package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/slimatic/zakapp-sub006/internal/core/domain"
)

// CreateSnapshotRequest defines the data needed to create a calculation snapshot.
type CreateSnapshotRequest struct {
	Methodology         string     `json:"methodology" binding:"required,methodology"`
	MethodologyConfigID *string    `json:"methodologyConfigID"`
	CalendarType        string     `json:"calendarType" binding:"omitempty,oneof=GREGORIAN HIJRI"`
	ReferenceDate       *time.Time `json:"referenceDate"`
	Currency            string     `json:"currency" binding:"omitempty,uppercase,len=3"`
}

// UnlockSnapshotRequest carries the mandatory audit reason for unlocking.
type UnlockSnapshotRequest struct {
	Reason string `json:"reason" binding:"required,max=500"`
}

// SnapshotResponse defines the data returned for a snapshot without its asset values.
type SnapshotResponse struct {
	SnapshotID          string          `json:"snapshotID"`
	CalculationDate     time.Time       `json:"calculationDate"`
	Methodology         string          `json:"methodology"`
	MethodologyConfigID *string         `json:"methodologyConfigID,omitempty"`
	CalendarType        string          `json:"calendarType"`
	ZakatYearStart      time.Time       `json:"zakatYearStart"`
	ZakatYearEnd        time.Time       `json:"zakatYearEnd"`
	TotalWealth         decimal.Decimal `json:"totalWealth"`
	ZakatDue            decimal.Decimal `json:"zakatDue"`
	NisabThreshold      decimal.Decimal `json:"nisabThreshold"`
	IsLocked            bool            `json:"isLocked"`
	UnlockReason        *string         `json:"unlockReason,omitempty"`
	UnlockedAt          *time.Time      `json:"unlockedAt,omitempty"`
	CreatedAt           time.Time       `json:"createdAt"`
}

// SnapshotAssetValueResponse is one captured asset row of a snapshot detail.
type SnapshotAssetValueResponse struct {
	AssetID       string          `json:"assetID"`
	AssetName     string          `json:"assetName"`
	AssetCategory string          `json:"assetCategory"`
	CapturedValue decimal.Decimal `json:"capturedValue"`
	CapturedAt    time.Time       `json:"capturedAt"`
	IsZakatable   bool            `json:"isZakatable"`
}

// SnapshotDetailResponse is a snapshot together with its captured asset values.
type SnapshotDetailResponse struct {
	SnapshotResponse
	AssetValues []SnapshotAssetValueResponse `json:"assetValues"`
}

// ListSnapshotsResponse is a page of snapshots plus the cursor for the next page.
type ListSnapshotsResponse struct {
	Snapshots []SnapshotResponse `json:"snapshots"`
	NextToken *string            `json:"nextToken,omitempty"`
}

// ChangeMetricResponse is an absolute and percentage change.
type ChangeMetricResponse struct {
	Absolute   decimal.Decimal `json:"absolute"`
	Percentage decimal.Decimal `json:"percentage"`
}

// SnapshotComparisonResponse defines the data returned when comparing two snapshots.
type SnapshotComparisonResponse struct {
	FromSnapshotID    string               `json:"fromSnapshotID"`
	ToSnapshotID      string               `json:"toSnapshotID"`
	WealthChange      ChangeMetricResponse `json:"wealthChange"`
	ZakatDueChange    ChangeMetricResponse `json:"zakatDueChange"`
	MethodologyChange bool                 `json:"methodologyChange"`
	DaysElapsed       int                  `json:"daysElapsed"`
}

// ToSnapshotResponse converts a domain.CalculationSnapshot to a SnapshotResponse DTO
func ToSnapshotResponse(s *domain.CalculationSnapshot) SnapshotResponse {
	return SnapshotResponse{
		SnapshotID:          s.SnapshotID,
		CalculationDate:     s.CalculationDate,
		Methodology:         string(s.Methodology),
		MethodologyConfigID: s.MethodologyConfigID,
		CalendarType:        string(s.CalendarType),
		ZakatYearStart:      s.ZakatYearStart,
		ZakatYearEnd:        s.ZakatYearEnd,
		TotalWealth:         s.TotalWealth,
		ZakatDue:            s.ZakatDue,
		NisabThreshold:      s.NisabThreshold,
		IsLocked:            s.IsLocked,
		UnlockReason:        s.UnlockReason,
		UnlockedAt:          s.UnlockedAt,
		CreatedAt:           s.CreatedAt,
	}
}

// ToSnapshotDetailResponse converts a snapshot and its asset values to a detail DTO
func ToSnapshotDetailResponse(s *domain.CalculationSnapshot, values []domain.SnapshotAssetValue) SnapshotDetailResponse {
	assetValues := make([]SnapshotAssetValueResponse, len(values))
	for i, v := range values {
		assetValues[i] = SnapshotAssetValueResponse{
			AssetID:       v.AssetID,
			AssetName:     v.AssetName,
			AssetCategory: string(v.AssetCategory),
			CapturedValue: v.CapturedValue,
			CapturedAt:    v.CapturedAt,
			IsZakatable:   v.IsZakatable,
		}
	}
	return SnapshotDetailResponse{
		SnapshotResponse: ToSnapshotResponse(s),
		AssetValues:      assetValues,
	}
}

// ToSnapshotComparisonResponse converts a domain.SnapshotComparison to its DTO
func ToSnapshotComparisonResponse(c *domain.SnapshotComparison) SnapshotComparisonResponse {
	return SnapshotComparisonResponse{
		FromSnapshotID: c.FromSnapshotID,
		ToSnapshotID:   c.ToSnapshotID,
		WealthChange: ChangeMetricResponse{
			Absolute:   c.WealthChange.Absolute,
			Percentage: c.WealthChange.Percentage,
		},
		ZakatDueChange: ChangeMetricResponse{
			Absolute:   c.ZakatDueChange.Absolute,
			Percentage: c.ZakatDueChange.Percentage,
		},
		MethodologyChange: c.MethodologyChange,
		DaysElapsed:       c.DaysElapsed,
	}
}
