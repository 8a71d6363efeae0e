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
	"github.com/hudumabill/ledger_backend/internal/utils/accounting"
	"github.com/hudumabill/ledger_backend/internal/utils/mapping"
	"github.com/hudumabill/ledger_backend/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
)

type PgxJournalRepository struct {
	BaseRepository
	accountRepo portsrepo.AccountRepositoryFacade
}

// newPgxJournalRepository creates a new repository for journal data.
func newPgxJournalRepository(base BaseRepository, accountRepo portsrepo.AccountRepositoryFacade) portsrepo.JournalRepositoryWithTx {
	return &PgxJournalRepository{
		BaseRepository: base,
		accountRepo:    accountRepo,
	}
}

// Ensure PgxJournalRepository implements portsrepo.JournalRepositoryWithTx
var _ portsrepo.JournalRepositoryWithTx = (*PgxJournalRepository)(nil)

const journalColumns = `journal_id, reference_number, account_debited, account_credited, amount, currency_code,
	exchange_rate, journal_type, status, description, posting_date, value_date,
	approved_by, approved_at, rejection_reason,
	created_at, created_by, last_updated_at, last_updated_by`

func scanJournalRow(row rowScanner) (models.Journal, error) {
	var m models.Journal
	var approvedBy, rejectionReason sql.NullString
	err := row.Scan(
		&m.JournalID,
		&m.ReferenceNumber,
		&m.AccountDebited,
		&m.AccountCredited,
		&m.Amount,
		&m.CurrencyCode,
		&m.ExchangeRate,
		&m.JournalType,
		&m.Status,
		&m.Description,
		&m.PostingDate,
		&m.ValueDate,
		&approvedBy,
		&m.ApprovedAt,
		&rejectionReason,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return models.Journal{}, err
	}
	if approvedBy.Valid {
		m.ApprovedBy = &approvedBy.String
	}
	if rejectionReason.Valid {
		m.RejectionReason = rejectionReason.String
	}
	return m, nil
}

// SaveJournal persists a journal, its two ledger entries and the account
// balance updates within a single database transaction. Affected account
// rows are locked before any balance moves, and each entry stores the
// account balance after its own effect.
func (r *PgxJournalRepository) SaveJournal(ctx context.Context, journal domain.Journal, entries []domain.LedgerEntry, balanceChanges map[string]decimal.Decimal) error {
	if err := accounting.ValidateEntryPair(entries); err != nil {
		return err
	}
	ctx, cancel := r.mutationContext(ctx)
	defer cancel()

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	now := journal.CreatedAt
	actorID := journal.CreatedBy

	// 1. Insert the journal row
	modelJournal := mapping.ToModelJournal(journal)
	journalQuery := `
		INSERT INTO journals (` + journalColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19);
	`
	_, err = tx.Exec(ctx, journalQuery,
		modelJournal.JournalID,
		modelJournal.ReferenceNumber,
		modelJournal.AccountDebited,
		modelJournal.AccountCredited,
		modelJournal.Amount,
		modelJournal.CurrencyCode,
		modelJournal.ExchangeRate,
		modelJournal.JournalType,
		modelJournal.Status,
		modelJournal.Description,
		modelJournal.PostingDate,
		modelJournal.ValueDate,
		modelJournal.ApprovedBy,
		modelJournal.ApprovedAt,
		modelJournal.RejectionReason,
		modelJournal.CreatedAt,
		modelJournal.CreatedBy,
		modelJournal.LastUpdatedAt,
		modelJournal.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: journal %s already exists", apperrors.ErrDuplicate, modelJournal.JournalID)
		}
		return apperrors.NewAppError(500, "failed to insert journal "+modelJournal.JournalID, err)
	}

	// 2. Lock the affected accounts and get pre-posting balances
	accountIDs := make([]string, 0, len(balanceChanges))
	for accID := range balanceChanges {
		accountIDs = append(accountIDs, accID)
	}
	lockedAccounts, err := r.accountRepo.FindAccountsByIDsForUpdate(ctx, tx, accountIDs)
	if err != nil {
		return err
	}

	// 3. Apply the balance deltas under the locks
	if err := r.accountRepo.UpdateAccountBalancesInTx(ctx, tx, balanceChanges, actorID, now); err != nil {
		return err
	}

	// 4. Insert the entry pair with balance snapshots
	batch := &pgx.Batch{}
	entryQuery := `
		INSERT INTO ledger_entries (entry_id, reference_number, journal_id, transaction_id, account_id,
			entry_type, entry_category, amount, balance, is_reconciled, posting_date,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	runningBalances := make(map[string]decimal.Decimal, len(lockedAccounts))
	for accID, acc := range lockedAccounts {
		runningBalances[accID] = acc.CurrentBalance
	}

	for _, entry := range entries {
		account, ok := lockedAccounts[entry.AccountID]
		if !ok {
			return apperrors.NewAppError(500, "locked account "+entry.AccountID+" missing during entry processing", nil)
		}
		signedAmount, err := accounting.CalculateSignedAmount(entry, account.AccountType)
		if err != nil {
			return apperrors.NewAppError(500, "failed to calculate signed amount for entry "+entry.EntryID, err)
		}
		newBalance := runningBalances[entry.AccountID].Add(signedAmount)
		runningBalances[entry.AccountID] = newBalance

		modelEntry := mapping.ToModelLedgerEntry(entry)
		modelEntry.Balance = newBalance
		modelEntry.CreatedAt = now
		modelEntry.CreatedBy = actorID
		modelEntry.LastUpdatedAt = now
		modelEntry.LastUpdatedBy = actorID

		var transactionID sql.NullString
		if modelEntry.TransactionID != "" {
			transactionID = sql.NullString{String: modelEntry.TransactionID, Valid: true}
		}

		batch.Queue(entryQuery,
			modelEntry.EntryID,
			modelEntry.ReferenceNumber,
			modelEntry.JournalID,
			transactionID,
			modelEntry.AccountID,
			modelEntry.EntryType,
			modelEntry.EntryCategory,
			modelEntry.Amount,
			modelEntry.Balance,
			modelEntry.IsReconciled,
			modelEntry.PostingDate,
			modelEntry.CreatedAt,
			modelEntry.CreatedBy,
			modelEntry.LastUpdatedAt,
			modelEntry.LastUpdatedBy,
		)
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to insert ledger entries for journal "+modelJournal.JournalID, err)
	}

	return r.Commit(ctx, tx)
}

// FindJournalByID retrieves a journal by its ID.
func (r *PgxJournalRepository) FindJournalByID(ctx context.Context, journalID string) (*domain.Journal, error) {
	query := `SELECT ` + journalColumns + ` FROM journals WHERE journal_id = $1;`

	m, err := scanJournalRow(r.Pool.QueryRow(ctx, query, journalID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find journal by ID "+journalID, err)
	}

	domainJournal := mapping.ToDomainJournal(m)
	return &domainJournal, nil
}

// ListJournals retrieves a paginated list of journals using token-based pagination.
func (r *PgxJournalRepository) ListJournals(ctx context.Context, limit int, nextToken *string, status *domain.JournalStatus, journalType *domain.JournalType) ([]domain.Journal, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	baseQuery := `SELECT ` + journalColumns + ` FROM journals WHERE 1=1`
	orderByClause := `ORDER BY posting_date DESC, created_at DESC`
	args := []interface{}{}

	if status != nil {
		args = append(args, string(*status))
		baseQuery += ` AND status = $` + strconv.Itoa(len(args))
	}
	if journalType != nil {
		args = append(args, string(*journalType))
		baseQuery += ` AND journal_type = $` + strconv.Itoa(len(args))
	}
	if nextToken != nil && *nextToken != "" {
		lastPostingDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		args = append(args, lastPostingDate, lastCreatedAt)
		baseQuery += ` AND (posting_date, created_at) < ($` + strconv.Itoa(len(args)-1) + `, $` + strconv.Itoa(len(args)) + `)`
	}
	args = append(args, fetchLimit)
	query := baseQuery + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)) + ";"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query journals", err)
	}
	defer rows.Close()

	modelJournals := make([]models.Journal, 0, fetchLimit)
	for rows.Next() {
		m, err := scanJournalRow(rows)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan journal row", err)
		}
		modelJournals = append(modelJournals, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating journal rows", err)
	}

	var nextTokenVal *string
	if len(modelJournals) > limit {
		modelJournals = modelJournals[:limit]
		last := modelJournals[len(modelJournals)-1]
		token := pagination.EncodeToken(last.PostingDate, last.CreatedAt)
		nextTokenVal = &token
	}

	journals := make([]domain.Journal, len(modelJournals))
	for i, m := range modelJournals {
		journals[i] = mapping.ToDomainJournal(m)
	}
	return journals, nextTokenVal, nil
}

// UpdateJournalStatus moves a journal along its state machine. Approval
// metadata and rejection reason are only overwritten when provided.
func (r *PgxJournalRepository) UpdateJournalStatus(ctx context.Context, journalID string, status domain.JournalStatus, approvedBy *string, approvedAt *time.Time, rejectionReason string, actorID string, now time.Time) error {
	ctx, cancel := r.mutationContext(ctx)
	defer cancel()
	query := `
		UPDATE journals
		SET status = $2,
		    approved_by = COALESCE($3, approved_by),
		    approved_at = COALESCE($4, approved_at),
		    rejection_reason = CASE WHEN $5 = '' THEN rejection_reason ELSE $5 END,
		    last_updated_at = $6,
		    last_updated_by = $7
		WHERE journal_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, journalID, string(status), approvedBy, approvedAt, rejectionReason, now, actorID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update status of journal "+journalID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
