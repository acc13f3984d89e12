package repositories

import (
	"context"
	"time"

	"github.com/slimatic/zakapp-sub006/internal/core/domain"
)

// SnapshotRepository defines persistence operations for calculation snapshots
// and their captured asset values. Every operation is scoped by user so that a
// snapshot owned by someone else is indistinguishable from a missing one.
type SnapshotRepository interface {
	// SaveSnapshotWithValues persists a snapshot together with its asset value
	// rows atomically. The snapshot arrives already locked.
	SaveSnapshotWithValues(ctx context.Context, snapshot domain.CalculationSnapshot, values []domain.SnapshotAssetValue) error

	// FindSnapshotByID retrieves a snapshot owned by the user.
	FindSnapshotByID(ctx context.Context, userID, snapshotID string) (*domain.CalculationSnapshot, error)

	// ListSnapshotsByUser retrieves the user's snapshots ordered by calculation
	// date descending, using cursor pagination.
	ListSnapshotsByUser(ctx context.Context, userID string, limit int, nextToken *string) ([]domain.CalculationSnapshot, *string, error)

	// FindSnapshotAssetValues retrieves the captured asset values of a snapshot
	// owned by the user.
	FindSnapshotAssetValues(ctx context.Context, userID, snapshotID string) ([]domain.SnapshotAssetValue, error)

	// UpdateSnapshotLockState atomically updates the lock state of a snapshot
	// owned by the user. unlockReason/unlockedAt are written as given; re-locking
	// keeps the previous reason for audit.
	UpdateSnapshotLockState(ctx context.Context, userID, snapshotID string, isLocked bool, unlockReason *string, unlockedAt *time.Time, updaterUserID string) error

	// DeleteSnapshot removes a snapshot owned by the user, cascading deletion of
	// its asset value rows in the same transaction.
	DeleteSnapshot(ctx context.Context, userID, snapshotID string) error
}

// SnapshotRepositoryWithTx combines snapshot persistence with transaction management
type SnapshotRepositoryWithTx interface {
	SnapshotRepository
	TransactionManager
}
