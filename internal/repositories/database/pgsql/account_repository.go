package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/hudumabill/ledger_backend/internal/apperrors"
	"github.com/hudumabill/ledger_backend/internal/core/domain"
	portsrepo "github.com/hudumabill/ledger_backend/internal/core/ports/repositories"
	"github.com/hudumabill/ledger_backend/internal/models"
	"github.com/hudumabill/ledger_backend/internal/utils/accounting"
	"github.com/hudumabill/ledger_backend/internal/utils/mapping"
	"github.com/hudumabill/ledger_backend/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
)

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for account data.
func newPgxAccountRepository(base BaseRepository) portsrepo.AccountRepositoryFacade {
	return &PgxAccountRepository{BaseRepository: base}
}

// Ensure PgxAccountRepository implements portsrepo.AccountRepositoryFacade
var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

const accountColumns = `account_id, account_number, name, account_type, account_subtype, currency_code,
	parent_account_id, description, opening_balance, current_balance, credit_limit, status,
	closed_at, closure_reason, last_reconciled_at, deleted_at,
	created_at, created_by, last_updated_at, last_updated_by`

func scanAccountRow(row rowScanner) (models.Account, error) {
	var m models.Account
	var parentID, closureReason sql.NullString
	err := row.Scan(
		&m.AccountID,
		&m.AccountNumber,
		&m.Name,
		&m.AccountType,
		&m.AccountSubtype,
		&m.CurrencyCode,
		&parentID,
		&m.Description,
		&m.OpeningBalance,
		&m.CurrentBalance,
		&m.CreditLimit,
		&m.Status,
		&m.ClosedAt,
		&closureReason,
		&m.LastReconciledAt,
		&m.DeletedAt,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return models.Account{}, err
	}
	if parentID.Valid {
		m.ParentAccountID = parentID.String
	}
	if closureReason.Valid {
		m.ClosureReason = closureReason.String
	}
	return m, nil
}

// SaveAccount inserts a new account.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	ctx, cancel := r.mutationContext(ctx)
	defer cancel()
	modelAcc := mapping.ToModelAccount(account)

	query := `
		INSERT INTO accounts (account_id, account_number, name, account_type, account_subtype, currency_code,
			parent_account_id, description, opening_balance, current_balance, credit_limit, status,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
	`
	var parentID sql.NullString
	if modelAcc.ParentAccountID != "" {
		parentID = sql.NullString{String: modelAcc.ParentAccountID, Valid: true}
	}

	_, err := r.Pool.Exec(ctx, query,
		modelAcc.AccountID,
		modelAcc.AccountNumber,
		modelAcc.Name,
		modelAcc.AccountType,
		modelAcc.AccountSubtype,
		modelAcc.CurrencyCode,
		parentID,
		modelAcc.Description,
		modelAcc.OpeningBalance,
		modelAcc.CurrentBalance,
		modelAcc.CreditLimit,
		modelAcc.Status,
		modelAcc.CreatedAt,
		modelAcc.CreatedBy,
		modelAcc.LastUpdatedAt,
		modelAcc.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: account with ID %s already exists", apperrors.ErrDuplicate, modelAcc.AccountID)
		}
		return fmt.Errorf("failed to save account %s: %w", modelAcc.AccountID, err)
	}
	return nil
}

// FindAccountByID retrieves an account by its ID. Soft-deleted rows are invisible.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = $1 AND deleted_at IS NULL;`

	m, err := scanAccountRow(r.Pool.QueryRow(ctx, query, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find account by ID "+accountID, err)
	}

	domainAcc := mapping.ToDomainAccount(m)
	return &domainAcc, nil
}

// FindAccountsByIDs retrieves multiple accounts keyed by ID.
func (r *PgxAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	if len(accountIDs) == 0 {
		return map[string]domain.Account{}, nil
	}
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = ANY($1) AND deleted_at IS NULL;`

	rows, err := r.Pool.Query(ctx, query, accountIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query accounts by IDs", err)
	}
	defer rows.Close()

	accounts := make(map[string]domain.Account, len(accountIDs))
	for rows.Next() {
		m, err := scanAccountRow(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan account row", err)
		}
		accounts[m.AccountID] = mapping.ToDomainAccount(m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating account rows", err)
	}
	if len(accounts) != len(accountIDs) {
		for _, id := range accountIDs {
			if _, ok := accounts[id]; !ok {
				return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, id)
			}
		}
	}
	return accounts, nil
}

// ListAccounts retrieves a paginated list of accounts using token-based pagination.
func (r *PgxAccountRepository) ListAccounts(ctx context.Context, limit int, nextToken *string) ([]domain.Account, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	baseQuery := `SELECT ` + accountColumns + ` FROM accounts WHERE deleted_at IS NULL`
	orderByClause := `ORDER BY created_at DESC, account_id DESC`

	var rows pgx.Rows
	var err error
	args := []interface{}{}

	if nextToken != nil && *nextToken != "" {
		lastCreatedAt, lastID, decodeErr := pagination.DecodeCursor(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		// Tuple comparison keeps rows that share the boundary timestamp.
		cursorClause := `AND (created_at, account_id) < ($1, $2)`
		args = append(args, lastCreatedAt, lastID)
		query := baseQuery + " " + cursorClause + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
		args = append(args, fetchLimit)
		rows, err = r.Pool.Query(ctx, query, args...)
	} else {
		query := baseQuery + " " + orderByClause + " LIMIT $1;"
		rows, err = r.Pool.Query(ctx, query, fetchLimit)
	}
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query accounts", err)
	}
	defer rows.Close()

	modelAccounts := make([]models.Account, 0, fetchLimit)
	for rows.Next() {
		m, err := scanAccountRow(rows)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan account row", err)
		}
		modelAccounts = append(modelAccounts, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating account rows", err)
	}

	var nextTokenVal *string
	if len(modelAccounts) > limit {
		modelAccounts = modelAccounts[:limit]
		last := modelAccounts[len(modelAccounts)-1]
		token := pagination.EncodeCursor(last.CreatedAt, last.AccountID)
		nextTokenVal = &token
	}

	accounts := make([]domain.Account, len(modelAccounts))
	for i, m := range modelAccounts {
		accounts[i] = mapping.ToDomainAccount(m)
	}
	return accounts, nextTokenVal, nil
}

// UpdateAccount updates an existing account's mutable details.
func (r *PgxAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	ctx, cancel := r.mutationContext(ctx)
	defer cancel()
	modelAcc := mapping.ToModelAccount(account)

	query := `
		UPDATE accounts
		SET name = $2, description = $3, credit_limit = $4, status = $5, last_updated_at = $6, last_updated_by = $7
		WHERE account_id = $1 AND deleted_at IS NULL;
	`
	tag, err := r.Pool.Exec(ctx, query,
		modelAcc.AccountID,
		modelAcc.Name,
		modelAcc.Description,
		modelAcc.CreditLimit,
		modelAcc.Status,
		modelAcc.LastUpdatedAt,
		modelAcc.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update account %s: %w", modelAcc.AccountID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// CloseAccount marks an account CLOSED with a reason.
func (r *PgxAccountRepository) CloseAccount(ctx context.Context, accountID string, reason string, actorID string, now time.Time) error {
	ctx, cancel := r.mutationContext(ctx)
	defer cancel()
	query := `
		UPDATE accounts
		SET status = $2, closed_at = $3, closure_reason = $4, last_updated_at = $3, last_updated_by = $5
		WHERE account_id = $1 AND deleted_at IS NULL;
	`
	tag, err := r.Pool.Exec(ctx, query, accountID, string(domain.AccountClosed), now, reason, actorID)
	if err != nil {
		return fmt.Errorf("failed to close account %s: %w", accountID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// SoftDeleteAccount stamps deleted_at without removing the row.
func (r *PgxAccountRepository) SoftDeleteAccount(ctx context.Context, accountID string, actorID string, now time.Time) error {
	ctx, cancel := r.mutationContext(ctx)
	defer cancel()
	query := `
		UPDATE accounts
		SET deleted_at = $2, last_updated_at = $2, last_updated_by = $3
		WHERE account_id = $1 AND deleted_at IS NULL;
	`
	tag, err := r.Pool.Exec(ctx, query, accountID, now, actorID)
	if err != nil {
		return fmt.Errorf("failed to delete account %s: %w", accountID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindAccountsByIDsForUpdate selects accounts and locks them for update within a transaction.
// IDs are locked in sorted order so concurrent postings cannot deadlock on each other.
func (r *PgxAccountRepository) FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.Account, error) {
	if len(accountIDs) == 0 {
		return map[string]domain.Account{}, nil
	}
	sorted := make([]string, len(accountIDs))
	copy(sorted, accountIDs)
	sort.Strings(sorted)

	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = ANY($1) AND deleted_at IS NULL ORDER BY account_id FOR UPDATE;`

	rows, err := tx.Query(ctx, query, sorted)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to lock accounts for update", err)
	}
	defer rows.Close()

	accounts := make(map[string]domain.Account, len(sorted))
	for rows.Next() {
		m, err := scanAccountRow(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan locked account row", err)
		}
		accounts[m.AccountID] = mapping.ToDomainAccount(m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating locked account rows", err)
	}
	for _, id := range sorted {
		if _, ok := accounts[id]; !ok {
			return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, id)
		}
	}
	return accounts, nil
}

// UpdateAccountBalancesInTx applies signed balance deltas within a given transaction.
// The caller must already hold row locks on the affected accounts.
func (r *PgxAccountRepository) UpdateAccountBalancesInTx(ctx context.Context, tx pgx.Tx, balanceChanges map[string]decimal.Decimal, actorID string, now time.Time) error {
	query := `
		UPDATE accounts
		SET current_balance = current_balance + $2, last_updated_at = $3, last_updated_by = $4
		WHERE account_id = $1;
	`
	batch := &pgx.Batch{}
	for accountID, delta := range balanceChanges {
		batch.Queue(query, accountID, delta, now, actorID)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to update account balances", err)
	}
	return nil
}

// ReconcileAccount replays the full ledger history against the opening
// balance inside one transaction. The account row stays locked for the
// duration so no posting can slip between the aggregate and the correction.
// Running it twice in a row reports zero newly processed entries.
func (r *PgxAccountRepository) ReconcileAccount(ctx context.Context, accountID string, actorID string, now time.Time) (*domain.ReconciliationResult, error) {
	ctx, cancel := r.mutationContext(ctx)
	defer cancel()
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	lockQuery := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = $1 AND deleted_at IS NULL FOR UPDATE;`
	m, err := scanAccountRow(tx.QueryRow(ctx, lockQuery, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to lock account "+accountID+" for reconciliation", err)
	}
	account := mapping.ToDomainAccount(m)

	aggregateQuery := `
		SELECT COALESCE(SUM(amount) FILTER (WHERE entry_type = 'DEBIT'), 0),
		       COALESCE(SUM(amount) FILTER (WHERE entry_type = 'CREDIT'), 0),
		       COUNT(*) FILTER (WHERE NOT is_reconciled)
		FROM ledger_entries
		WHERE account_id = $1;
	`
	var debits, credits decimal.Decimal
	var unreconciled int
	if err := tx.QueryRow(ctx, aggregateQuery, accountID).Scan(&debits, &credits, &unreconciled); err != nil {
		return nil, apperrors.NewAppError(500, "failed to aggregate ledger for account "+accountID, err)
	}

	var calculated decimal.Decimal
	if account.IsDebitNormal() {
		calculated = account.OpeningBalance.Add(debits).Sub(credits)
	} else {
		calculated = account.OpeningBalance.Add(credits).Sub(debits)
	}

	markQuery := `
		UPDATE ledger_entries
		SET is_reconciled = TRUE, last_updated_at = $2, last_updated_by = $3
		WHERE account_id = $1 AND NOT is_reconciled;
	`
	if _, err := tx.Exec(ctx, markQuery, accountID, now, actorID); err != nil {
		return nil, apperrors.NewAppError(500, "failed to mark entries reconciled for account "+accountID, err)
	}

	correctQuery := `
		UPDATE accounts
		SET current_balance = $2, last_reconciled_at = $3, last_updated_at = $3, last_updated_by = $4
		WHERE account_id = $1;
	`
	if _, err := tx.Exec(ctx, correctQuery, accountID, calculated, now, actorID); err != nil {
		return nil, apperrors.NewAppError(500, "failed to correct balance for account "+accountID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}

	return &domain.ReconciliationResult{
		AccountID:             accountID,
		PreviousBalance:       account.CurrentBalance,
		CalculatedBalance:     calculated,
		Discrepancy:           accounting.Discrepancy(account.CurrentBalance, calculated),
		TransactionsProcessed: unreconciled,
		ReconciledAt:          now,
	}, nil
}
