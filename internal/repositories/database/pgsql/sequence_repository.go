package pgsql

import (
	"context"

	"github.com/hudumabill/ledger_backend/internal/apperrors"
	portsrepo "github.com/hudumabill/ledger_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
)

type PgxSequenceRepository struct {
	BaseRepository
}

// newPgxSequenceRepository creates a new repository for daily reference sequences.
func newPgxSequenceRepository(base BaseRepository) portsrepo.SequenceRepository {
	return &PgxSequenceRepository{BaseRepository: base}
}

var _ portsrepo.SequenceRepository = (*PgxSequenceRepository)(nil)

// The upsert is a single atomic statement, so concurrent callers for the
// same (prefix, date) never observe the same value.
const nextSequenceQuery = `
	INSERT INTO reference_sequences (prefix, seq_date, last_value)
	VALUES ($1, $2, 1)
	ON CONFLICT (prefix, seq_date)
	DO UPDATE SET last_value = reference_sequences.last_value + 1
	RETURNING last_value;
`

// NextSequence returns the next daily sequence value for a prefix.
func (r *PgxSequenceRepository) NextSequence(ctx context.Context, prefix string, dateKey string) (int64, error) {
	ctx, cancel := r.mutationContext(ctx)
	defer cancel()
	var value int64
	if err := r.Pool.QueryRow(ctx, nextSequenceQuery, prefix, dateKey).Scan(&value); err != nil {
		return 0, apperrors.NewAppError(500, "failed to advance sequence for prefix "+prefix, err)
	}
	return value, nil
}

// NextSequenceInTx advances the sequence inside an existing transaction.
func (r *PgxSequenceRepository) NextSequenceInTx(ctx context.Context, tx pgx.Tx, prefix string, dateKey string) (int64, error) {
	var value int64
	if err := tx.QueryRow(ctx, nextSequenceQuery, prefix, dateKey).Scan(&value); err != nil {
		return 0, apperrors.NewAppError(500, "failed to advance sequence for prefix "+prefix, err)
	}
	return value, nil
}
