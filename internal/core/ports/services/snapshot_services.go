package services

import (
	"context"

	"github.com/slimatic/zakapp-sub006/internal/core/domain"
	"github.com/slimatic/zakapp-sub006/internal/dto"
)

// SnapshotReaderSvc defines read operations for calculation snapshots
type SnapshotReaderSvc interface {
	// ListSnapshots retrieves a page of the user's snapshots.
	ListSnapshots(ctx context.Context, userID string, limit int, nextToken *string) ([]domain.CalculationSnapshot, *string, error)

	// GetSnapshot retrieves one snapshot with its captured asset values.
	GetSnapshot(ctx context.Context, userID, snapshotID string) (*domain.CalculationSnapshot, []domain.SnapshotAssetValue, error)

	// CompareSnapshots compares two snapshots owned by the user.
	CompareSnapshots(ctx context.Context, userID, fromID, toID string) (*domain.SnapshotComparison, error)
}

// SnapshotWriterSvc defines the snapshot lifecycle operations
type SnapshotWriterSvc interface {
	// CreateSnapshot runs a calculation over the user's active assets and
	// persists it, already locked, with one captured value row per asset.
	CreateSnapshot(ctx context.Context, userID string, req dto.CreateSnapshotRequest) (*domain.CalculationSnapshot, []domain.SnapshotAssetValue, error)

	// UnlockSnapshot transitions a locked snapshot to editable, recording the
	// mandatory reason. Unlocking an unlocked snapshot is a no-op.
	UnlockSnapshot(ctx context.Context, userID, snapshotID, reason string) (*domain.CalculationSnapshot, error)

	// LockSnapshot re-freezes an unlocked snapshot. Locking a locked snapshot
	// is a no-op.
	LockSnapshot(ctx context.Context, userID, snapshotID string) (*domain.CalculationSnapshot, error)

	// DeleteSnapshot removes a snapshot and its asset values. Irreversible.
	DeleteSnapshot(ctx context.Context, userID, snapshotID string) error
}

// SnapshotSvcFacade combines all snapshot-related service interfaces
type SnapshotSvcFacade interface {
	SnapshotReaderSvc
	SnapshotWriterSvc
}
