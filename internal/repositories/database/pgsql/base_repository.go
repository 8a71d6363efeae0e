package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/hudumabill/ledger_backend/internal/apperrors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// BaseRepository carries the shared pgx pool, the mutation timeout and
// the transaction plumbing embedded by every repository in this package.
type BaseRepository struct {
	Pool *pgxpool.Pool

	// MutationTimeout bounds each balance-affecting write so a lock race
	// cannot hang the request indefinitely. Zero disables the bound.
	MutationTimeout time.Duration
}

// rowScanner abstracts pgx.Row and pgx.Rows so the per-entity scan helpers
// serve both single-row and multi-row queries.
type rowScanner interface {
	Scan(dest ...any) error
}

// mutationContext derives a deadline-bounded context for a mutation.
// The returned cancel func must always be deferred.
func (r *BaseRepository) mutationContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.MutationTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, r.MutationTimeout)
}

// mutationErr classifies a failed mutation: hitting the mutation deadline
// means the row lock never came free, which callers may retry, so it
// surfaces as a conflict rather than an internal error.
func mutationErr(msg string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %s: timed out waiting for a row lock, retry", apperrors.ErrConflict, msg)
	}
	return apperrors.NewAppError(500, msg, err)
}

func (r *BaseRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.Pool.Begin(ctx)
	if err != nil {
		return nil, mutationErr("failed to begin transaction", err)
	}
	return tx, nil
}

func (r *BaseRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Commit(ctx); err != nil {
		return mutationErr("failed to commit transaction", err)
	}
	return nil
}

// Rollback is a no-op once the transaction has committed, so it is safe
// to defer unconditionally.
func (r *BaseRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, sql.ErrTxDone) && !errors.Is(err, pgx.ErrTxClosed) {
		return apperrors.NewAppError(500, "failed to rollback transaction", err)
	}
	return nil
}
