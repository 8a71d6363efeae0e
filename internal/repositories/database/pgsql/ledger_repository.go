package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"time"

	"github.com/hudumabill/ledger_backend/internal/apperrors"
	"github.com/hudumabill/ledger_backend/internal/core/domain"
	portsrepo "github.com/hudumabill/ledger_backend/internal/core/ports/repositories"
	"github.com/hudumabill/ledger_backend/internal/models"
	"github.com/hudumabill/ledger_backend/internal/utils/mapping"
	"github.com/hudumabill/ledger_backend/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type PgxLedgerRepository struct {
	BaseRepository
}

// newPgxLedgerRepository creates a new repository for ledger entry data.
func newPgxLedgerRepository(base BaseRepository) portsrepo.LedgerRepositoryFacade {
	return &PgxLedgerRepository{BaseRepository: base}
}

var _ portsrepo.LedgerRepositoryFacade = (*PgxLedgerRepository)(nil)

const ledgerColumns = `entry_id, reference_number, journal_id, transaction_id, account_id,
	entry_type, entry_category, amount, balance, is_reconciled, posting_date,
	created_at, created_by, last_updated_at, last_updated_by`

func scanLedgerRow(row rowScanner) (models.LedgerEntry, error) {
	var m models.LedgerEntry
	var transactionID sql.NullString
	err := row.Scan(
		&m.EntryID,
		&m.ReferenceNumber,
		&m.JournalID,
		&transactionID,
		&m.AccountID,
		&m.EntryType,
		&m.EntryCategory,
		&m.Amount,
		&m.Balance,
		&m.IsReconciled,
		&m.PostingDate,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return models.LedgerEntry{}, err
	}
	if transactionID.Valid {
		m.TransactionID = transactionID.String
	}
	return m, nil
}

// FindEntryByID retrieves a ledger entry by its ID.
func (r *PgxLedgerRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.LedgerEntry, error) {
	query := `SELECT ` + ledgerColumns + ` FROM ledger_entries WHERE entry_id = $1;`

	m, err := scanLedgerRow(r.Pool.QueryRow(ctx, query, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find ledger entry "+entryID, err)
	}

	domainEntry := mapping.ToDomainLedgerEntry(m)
	return &domainEntry, nil
}

// FindEntriesByJournalID retrieves the entry pair belonging to one journal,
// debit row first.
func (r *PgxLedgerRepository) FindEntriesByJournalID(ctx context.Context, journalID string) ([]domain.LedgerEntry, error) {
	query := `SELECT ` + ledgerColumns + ` FROM ledger_entries WHERE journal_id = $1 ORDER BY entry_type DESC;`

	rows, err := r.Pool.Query(ctx, query, journalID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query entries for journal "+journalID, err)
	}
	defer rows.Close()

	entries := []models.LedgerEntry{}
	for rows.Next() {
		m, err := scanLedgerRow(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan ledger entry row", err)
		}
		entries = append(entries, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating ledger entry rows", err)
	}
	return mapping.ToDomainLedgerEntrySlice(entries), nil
}

// ListEntriesByAccountID retrieves a paginated account statement using
// token-based pagination, newest first.
func (r *PgxLedgerRepository) ListEntriesByAccountID(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	baseQuery := `SELECT ` + ledgerColumns + ` FROM ledger_entries WHERE account_id = $1`
	orderByClause := `ORDER BY posting_date DESC, created_at DESC`
	args := []interface{}{accountID}

	if nextToken != nil && *nextToken != "" {
		lastPostingDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		args = append(args, lastPostingDate, lastCreatedAt)
		baseQuery += ` AND (posting_date, created_at) < ($2, $3)`
	}
	args = append(args, fetchLimit)
	query := baseQuery + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)) + ";"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query entries for account "+accountID, err)
	}
	defer rows.Close()

	modelEntries := make([]models.LedgerEntry, 0, fetchLimit)
	for rows.Next() {
		m, err := scanLedgerRow(rows)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan ledger entry row", err)
		}
		modelEntries = append(modelEntries, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating ledger entry rows", err)
	}

	var nextTokenVal *string
	if len(modelEntries) > limit {
		modelEntries = modelEntries[:limit]
		last := modelEntries[len(modelEntries)-1]
		token := pagination.EncodeToken(last.PostingDate, last.CreatedAt)
		nextTokenVal = &token
	}

	return mapping.ToDomainLedgerEntrySlice(modelEntries), nextTokenVal, nil
}

// AggregateAccountBalance sums posted debit/credit amounts for an account,
// optionally up to a point in time, and derives the signed balance using
// the account's normal-balance convention.
func (r *PgxLedgerRepository) AggregateAccountBalance(ctx context.Context, accountID string, asOf *time.Time) (*domain.AccountBalance, error) {
	accountQuery := `SELECT account_type, opening_balance FROM accounts WHERE account_id = $1 AND deleted_at IS NULL;`
	var accountType string
	var openingBalance decimal.Decimal
	if err := r.Pool.QueryRow(ctx, accountQuery, accountID).Scan(&accountType, &openingBalance); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find account "+accountID, err)
	}

	aggregateQuery := `
		SELECT COALESCE(SUM(amount) FILTER (WHERE entry_type = 'DEBIT'), 0),
		       COALESCE(SUM(amount) FILTER (WHERE entry_type = 'CREDIT'), 0)
		FROM ledger_entries
		WHERE account_id = $1 AND ($2::timestamptz IS NULL OR posting_date <= $2);
	`
	var debits, credits decimal.Decimal
	if err := r.Pool.QueryRow(ctx, aggregateQuery, accountID, asOf).Scan(&debits, &credits); err != nil {
		return nil, apperrors.NewAppError(500, "failed to aggregate balance for account "+accountID, err)
	}

	var balance decimal.Decimal
	if domain.AccountType(accountType) == domain.Asset || domain.AccountType(accountType) == domain.Expense {
		balance = openingBalance.Add(debits).Sub(credits)
	} else {
		balance = openingBalance.Add(credits).Sub(debits)
	}

	return &domain.AccountBalance{
		AccountID: accountID,
		Debits:    debits,
		Credits:   credits,
		Balance:   balance,
		AsOf:      asOf,
	}, nil
}

// MarkEntriesReconciled flags a batch of entries as reconciled and returns
// how many rows actually changed. Already-reconciled entries are untouched.
func (r *PgxLedgerRepository) MarkEntriesReconciled(ctx context.Context, entryIDs []string, actorID string, now time.Time) (int64, error) {
	if len(entryIDs) == 0 {
		return 0, nil
	}
	ctx, cancel := r.mutationContext(ctx)
	defer cancel()
	query := `
		UPDATE ledger_entries
		SET is_reconciled = TRUE, last_updated_at = $2, last_updated_by = $3
		WHERE entry_id = ANY($1) AND NOT is_reconciled;
	`
	tag, err := r.Pool.Exec(ctx, query, entryIDs, now, actorID)
	if err != nil {
		return 0, apperrors.NewAppError(500, "failed to mark ledger entries reconciled", err)
	}
	return tag.RowsAffected(), nil
}
