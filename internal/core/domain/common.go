package domain

import "time"

// AuditFields holds the creation/update audit trail shared by all persisted
// entities. CreatedBy/LastUpdatedBy reference a user ID.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"`
}
