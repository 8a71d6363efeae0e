package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/hudumabill/ledger_backend/internal/apperrors"
	"github.com/hudumabill/ledger_backend/internal/core/domain"
	portsrepo "github.com/hudumabill/ledger_backend/internal/core/ports/repositories"
	"github.com/hudumabill/ledger_backend/internal/models"
	"github.com/hudumabill/ledger_backend/internal/utils/mapping"
	"github.com/hudumabill/ledger_backend/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type PgxTransactionRepository struct {
	BaseRepository
}

// newPgxTransactionRepository creates a new repository for external transaction data.
func newPgxTransactionRepository(base BaseRepository) portsrepo.TransactionRepositoryFacade {
	return &PgxTransactionRepository{BaseRepository: base}
}

var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

const transactionColumns = `transaction_id, transaction_code, party_a, party_b, transaction_channel,
	transaction_aggregator, transaction_amount, currency_code, status, external_reference,
	response_payload, completed_at, created_at, created_by, last_updated_at, last_updated_by`

func scanTransactionRow(row rowScanner) (models.Transaction, error) {
	var m models.Transaction
	var externalRef, responsePayload sql.NullString
	err := row.Scan(
		&m.TransactionID,
		&m.TransactionCode,
		&m.PartyA,
		&m.PartyB,
		&m.Channel,
		&m.Aggregator,
		&m.Amount,
		&m.CurrencyCode,
		&m.Status,
		&externalRef,
		&responsePayload,
		&m.CompletedAt,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return models.Transaction{}, err
	}
	if externalRef.Valid {
		m.ExternalReference = externalRef.String
	}
	if responsePayload.Valid {
		m.ResponsePayload = responsePayload.String
	}
	return m, nil
}

// SaveTransaction inserts a new external transaction.
func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	ctx, cancel := r.mutationContext(ctx)
	defer cancel()
	m := mapping.ToModelTransaction(txn)

	query := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.TransactionID,
		m.TransactionCode,
		m.PartyA,
		m.PartyB,
		m.Channel,
		m.Aggregator,
		m.Amount,
		m.CurrencyCode,
		m.Status,
		m.ExternalReference,
		m.ResponsePayload,
		m.CompletedAt,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: transaction %s already exists", apperrors.ErrDuplicate, m.TransactionID)
		}
		return fmt.Errorf("failed to save transaction %s: %w", m.TransactionID, err)
	}
	return nil
}

// FindTransactionByID retrieves a transaction by its ID.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE transaction_id = $1;`

	m, err := scanTransactionRow(r.Pool.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find transaction "+transactionID, err)
	}

	domainTxn := mapping.ToDomainTransaction(m)
	return &domainTxn, nil
}

// ListTransactions retrieves a paginated list of transactions using
// token-based pagination, optionally filtered by status.
func (r *PgxTransactionRepository) ListTransactions(ctx context.Context, limit int, nextToken *string, status *domain.TransactionStatus) ([]domain.Transaction, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	baseQuery := `SELECT ` + transactionColumns + ` FROM transactions WHERE 1=1`
	orderByClause := `ORDER BY created_at DESC, transaction_id DESC`
	args := []interface{}{}

	if status != nil {
		args = append(args, int(*status))
		baseQuery += ` AND status = $` + strconv.Itoa(len(args))
	}
	if nextToken != nil && *nextToken != "" {
		lastCreatedAt, lastID, decodeErr := pagination.DecodeCursor(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		args = append(args, lastCreatedAt, lastID)
		baseQuery += ` AND (created_at, transaction_id) < ($` + strconv.Itoa(len(args)-1) + `, $` + strconv.Itoa(len(args)) + `)`
	}
	args = append(args, fetchLimit)
	query := baseQuery + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)) + ";"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query transactions", err)
	}
	defer rows.Close()

	modelTxns := make([]models.Transaction, 0, fetchLimit)
	for rows.Next() {
		m, err := scanTransactionRow(rows)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan transaction row", err)
		}
		modelTxns = append(modelTxns, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating transaction rows", err)
	}

	var nextTokenVal *string
	if len(modelTxns) > limit {
		modelTxns = modelTxns[:limit]
		last := modelTxns[len(modelTxns)-1]
		token := pagination.EncodeCursor(last.CreatedAt, last.TransactionID)
		nextTokenVal = &token
	}

	return mapping.ToDomainTransactionSlice(modelTxns), nextTokenVal, nil
}

// UpdateTransactionStatus moves a transaction along its lifecycle. The
// state machine itself is enforced by the service before calling here.
func (r *PgxTransactionRepository) UpdateTransactionStatus(ctx context.Context, transactionID string, status domain.TransactionStatus, responsePayload string, completedAt *time.Time, actorID string, now time.Time) error {
	ctx, cancel := r.mutationContext(ctx)
	defer cancel()
	query := `
		UPDATE transactions
		SET status = $2,
		    response_payload = CASE WHEN $3 = '' THEN response_payload ELSE $3 END,
		    completed_at = COALESCE($4, completed_at),
		    last_updated_at = $5,
		    last_updated_by = $6
		WHERE transaction_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, transactionID, int(status), responsePayload, completedAt, now, actorID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update status of transaction "+transactionID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
