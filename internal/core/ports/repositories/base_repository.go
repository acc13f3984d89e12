package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// TransactionManager is implemented by repositories whose multi-row writes
// (snapshot plus asset values, snapshot deletion) must be atomic.
type TransactionManager interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) (pgx.Tx, error)

	// Commit commits a transaction.
	Commit(ctx context.Context, tx pgx.Tx) error

	// Rollback rolls back a transaction. Rolling back an already-finished
	// transaction is a no-op.
	Rollback(ctx context.Context, tx pgx.Tx) error
}
