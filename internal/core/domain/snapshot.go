package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CalendarType selects how zakat year boundaries are derived.
type CalendarType string

const (
	CalendarGregorian CalendarType = "GREGORIAN"
	CalendarHijri     CalendarType = "HIJRI"
)

// IsValid reports whether the calendar type is recognised.
func (c CalendarType) IsValid() bool {
	return c == CalendarGregorian || c == CalendarHijri
}

// MaxUnlockReasonLength bounds the unlock reason recorded for audit.
const MaxUnlockReasonLength = 500

// CalculationSnapshot is a point-in-time record of a completed zakat
// calculation. Snapshots are born locked; while locked, financial fields and
// asset-value rows never change. Only the unlock workflow (with a mandatory
// reason) transitions a snapshot to editable, and re-locking keeps the reason
// for audit.
type CalculationSnapshot struct {
	SnapshotID          string          `json:"snapshotID"`
	UserID              string          `json:"userID"`
	CalculationDate     time.Time       `json:"calculationDate"`
	Methodology         Methodology     `json:"methodology"`
	MethodologyConfigID *string         `json:"methodologyConfigID,omitempty"`
	CalendarType        CalendarType    `json:"calendarType"`
	ZakatYearStart      time.Time       `json:"zakatYearStart"`
	ZakatYearEnd        time.Time       `json:"zakatYearEnd"`
	TotalWealth         decimal.Decimal `json:"totalWealth"`
	ZakatDue            decimal.Decimal `json:"zakatDue"`
	NisabThreshold      decimal.Decimal `json:"nisabThreshold"`
	IsLocked            bool            `json:"isLocked"`
	UnlockReason        *string         `json:"unlockReason,omitempty"`
	UnlockedAt          *time.Time      `json:"unlockedAt,omitempty"`
	AuditFields
}

// SnapshotAssetValue captures one asset's state at snapshot time.
type SnapshotAssetValue struct {
	SnapshotAssetValueID string          `json:"snapshotAssetValueID"`
	SnapshotID           string          `json:"snapshotID"`
	AssetID              string          `json:"assetID"`
	AssetName            string          `json:"assetName"`
	AssetCategory        AssetCategory   `json:"assetCategory"`
	CapturedValue        decimal.Decimal `json:"capturedValue"`
	CapturedAt           time.Time       `json:"capturedAt"`
	IsZakatable          bool            `json:"isZakatable"`
}

// ChangeMetric is an absolute and percentage change between two snapshots.
type ChangeMetric struct {
	Absolute   decimal.Decimal `json:"absolute"`
	Percentage decimal.Decimal `json:"percentage"`
}

// SnapshotComparison is the result of comparing two snapshots owned by the
// same user. DaysElapsed follows the chronological order of the two dates as
// given; comparing (A, B) and (B, A) yields additive-inverse absolutes.
type SnapshotComparison struct {
	FromSnapshotID    string       `json:"fromSnapshotID"`
	ToSnapshotID      string       `json:"toSnapshotID"`
	WealthChange      ChangeMetric `json:"wealthChange"`
	ZakatDueChange    ChangeMetric `json:"zakatDueChange"`
	MethodologyChange bool         `json:"methodologyChange"`
	DaysElapsed       int          `json:"daysElapsed"`
}
