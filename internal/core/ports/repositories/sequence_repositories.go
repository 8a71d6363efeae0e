package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// SequenceRepository hands out gapless-enough daily sequence numbers per
// reference prefix. Concurrent callers never receive the same value; the
// counter resets implicitly with each new date key.
type SequenceRepository interface {
	// NextSequence returns the next value for (prefix, dateKey).
	NextSequence(ctx context.Context, prefix string, dateKey string) (int64, error)

	// NextSequenceInTx does the same inside an existing transaction.
	NextSequenceInTx(ctx context.Context, tx pgx.Tx, prefix string, dateKey string) (int64, error)
}
