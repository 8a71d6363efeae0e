package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// TransactionManager exposes explicit transaction control for repositories
// whose multi-row writes must land atomically.
type TransactionManager interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Commit(ctx context.Context, tx pgx.Tx) error

	// Rollback tolerates an already-finished transaction, so callers can
	// defer it unconditionally.
	Rollback(ctx context.Context, tx pgx.Tx) error
}
