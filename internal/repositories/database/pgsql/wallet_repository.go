package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

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

type PgxWalletRepository struct {
	BaseRepository
}

// newPgxWalletRepository creates a new repository for wallet data.
func newPgxWalletRepository(base BaseRepository) portsrepo.WalletRepositoryFacade {
	return &PgxWalletRepository{BaseRepository: base}
}

var _ portsrepo.WalletRepositoryFacade = (*PgxWalletRepository)(nil)

const walletColumns = `wallet_id, wallet_number, user_id, currency_code,
	available_balance, pending_balance, hold_balance, total_credit, total_debit,
	daily_limit, transaction_limit, monthly_limit, status,
	is_locked, lock_reason, locked_until, last_transaction_at,
	created_at, created_by, last_updated_at, last_updated_by`

const walletTxnColumns = `wallet_transaction_id, wallet_id, type, amount, balance_after, status, is_held,
	description, metadata, counterparty_wallet_id, related_transaction_id,
	created_at, created_by, last_updated_at, last_updated_by`

func scanWalletRow(row rowScanner) (models.Wallet, error) {
	var m models.Wallet
	var dailyLimit, transactionLimit, monthlyLimit decimal.NullDecimal
	var lockReason sql.NullString
	err := row.Scan(
		&m.WalletID,
		&m.WalletNumber,
		&m.UserID,
		&m.CurrencyCode,
		&m.AvailableBalance,
		&m.PendingBalance,
		&m.HoldBalance,
		&m.TotalCredit,
		&m.TotalDebit,
		&dailyLimit,
		&transactionLimit,
		&monthlyLimit,
		&m.Status,
		&m.IsLocked,
		&lockReason,
		&m.LockedUntil,
		&m.LastTransactionAt,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return models.Wallet{}, err
	}
	if dailyLimit.Valid {
		m.DailyLimit = &dailyLimit.Decimal
	}
	if transactionLimit.Valid {
		m.TransactionLimit = &transactionLimit.Decimal
	}
	if monthlyLimit.Valid {
		m.MonthlyLimit = &monthlyLimit.Decimal
	}
	if lockReason.Valid {
		m.LockReason = lockReason.String
	}
	return m, nil
}

func scanWalletTxnRow(row rowScanner) (models.WalletTransaction, error) {
	var m models.WalletTransaction
	var counterpartyID, relatedID sql.NullString
	err := row.Scan(
		&m.WalletTransactionID,
		&m.WalletID,
		&m.Type,
		&m.Amount,
		&m.BalanceAfter,
		&m.Status,
		&m.IsHeld,
		&m.Description,
		&m.Metadata,
		&counterpartyID,
		&relatedID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return models.WalletTransaction{}, err
	}
	if counterpartyID.Valid {
		m.CounterpartyWalletID = counterpartyID.String
	}
	if relatedID.Valid {
		m.RelatedTransactionID = relatedID.String
	}
	return m, nil
}

func (r *PgxWalletRepository) lockWallet(ctx context.Context, tx pgx.Tx, walletID string) (*domain.Wallet, error) {
	query := `SELECT ` + walletColumns + ` FROM wallets WHERE wallet_id = $1 FOR UPDATE;`
	m, err := scanWalletRow(tx.QueryRow(ctx, query, walletID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: wallet %s", apperrors.ErrNotFound, walletID)
		}
		return nil, mutationErr("failed to lock wallet "+walletID, err)
	}
	wallet := mapping.ToDomainWallet(m)
	return &wallet, nil
}

func (r *PgxWalletRepository) insertWalletTxn(ctx context.Context, tx pgx.Tx, txn domain.WalletTransaction) error {
	m, err := mapping.ToModelWalletTransaction(txn)
	if err != nil {
		return apperrors.NewAppError(500, "failed to encode wallet transaction metadata", err)
	}

	var counterpartyID, relatedID sql.NullString
	if m.CounterpartyWalletID != "" {
		counterpartyID = sql.NullString{String: m.CounterpartyWalletID, Valid: true}
	}
	if m.RelatedTransactionID != "" {
		relatedID = sql.NullString{String: m.RelatedTransactionID, Valid: true}
	}

	query := `
		INSERT INTO wallet_transactions (` + walletTxnColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	_, err = tx.Exec(ctx, query,
		m.WalletTransactionID,
		m.WalletID,
		m.Type,
		m.Amount,
		m.BalanceAfter,
		m.Status,
		m.IsHeld,
		m.Description,
		m.Metadata,
		counterpartyID,
		relatedID,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: wallet transaction %s already exists", apperrors.ErrDuplicate, m.WalletTransactionID)
		}
		return apperrors.NewAppError(500, "failed to insert wallet transaction "+m.WalletTransactionID, err)
	}
	return nil
}

// SaveWallet inserts a new wallet.
func (r *PgxWalletRepository) SaveWallet(ctx context.Context, wallet domain.Wallet) error {
	ctx, cancel := r.mutationContext(ctx)
	defer cancel()
	m := mapping.ToModelWallet(wallet)

	var lockReason sql.NullString
	if m.LockReason != "" {
		lockReason = sql.NullString{String: m.LockReason, Valid: true}
	}

	query := `
		INSERT INTO wallets (` + walletColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.WalletID,
		m.WalletNumber,
		m.UserID,
		m.CurrencyCode,
		m.AvailableBalance,
		m.PendingBalance,
		m.HoldBalance,
		m.TotalCredit,
		m.TotalDebit,
		m.DailyLimit,
		m.TransactionLimit,
		m.MonthlyLimit,
		m.Status,
		m.IsLocked,
		lockReason,
		m.LockedUntil,
		m.LastTransactionAt,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: wallet for user %s in %s already exists", apperrors.ErrDuplicate, m.UserID, m.CurrencyCode)
		}
		return fmt.Errorf("failed to save wallet %s: %w", m.WalletID, err)
	}
	return nil
}

// FindWalletByID retrieves a wallet by its ID.
func (r *PgxWalletRepository) FindWalletByID(ctx context.Context, walletID string) (*domain.Wallet, error) {
	query := `SELECT ` + walletColumns + ` FROM wallets WHERE wallet_id = $1;`

	m, err := scanWalletRow(r.Pool.QueryRow(ctx, query, walletID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find wallet "+walletID, err)
	}

	wallet := mapping.ToDomainWallet(m)
	return &wallet, nil
}

// FindWalletByUserAndCurrency retrieves the wallet a user holds in a currency.
func (r *PgxWalletRepository) FindWalletByUserAndCurrency(ctx context.Context, userID string, currencyCode string) (*domain.Wallet, error) {
	query := `SELECT ` + walletColumns + ` FROM wallets WHERE user_id = $1 AND currency_code = $2;`

	m, err := scanWalletRow(r.Pool.QueryRow(ctx, query, userID, currencyCode))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find wallet for user "+userID, err)
	}

	wallet := mapping.ToDomainWallet(m)
	return &wallet, nil
}

// ListWalletsByUserID retrieves all wallets belonging to one user.
func (r *PgxWalletRepository) ListWalletsByUserID(ctx context.Context, userID string) ([]domain.Wallet, error) {
	query := `SELECT ` + walletColumns + ` FROM wallets WHERE user_id = $1 ORDER BY created_at;`

	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query wallets for user "+userID, err)
	}
	defer rows.Close()

	wallets := []domain.Wallet{}
	for rows.Next() {
		m, err := scanWalletRow(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan wallet row", err)
		}
		wallets = append(wallets, mapping.ToDomainWallet(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating wallet rows", err)
	}
	return wallets, nil
}

// ListWalletTransactions retrieves a paginated audit trail for a wallet.
func (r *PgxWalletRepository) ListWalletTransactions(ctx context.Context, walletID string, limit int, nextToken *string) ([]domain.WalletTransaction, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	baseQuery := `SELECT ` + walletTxnColumns + ` FROM wallet_transactions WHERE wallet_id = $1`
	orderByClause := `ORDER BY created_at DESC, wallet_transaction_id DESC`
	args := []interface{}{walletID}

	if nextToken != nil && *nextToken != "" {
		lastCreatedAt, lastID, decodeErr := pagination.DecodeCursor(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		args = append(args, lastCreatedAt, lastID)
		baseQuery += ` AND (created_at, wallet_transaction_id) < ($2, $3)`
	}
	args = append(args, fetchLimit)
	query := baseQuery + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)) + ";"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query wallet transactions for "+walletID, err)
	}
	defer rows.Close()

	modelTxns := make([]models.WalletTransaction, 0, fetchLimit)
	for rows.Next() {
		m, err := scanWalletTxnRow(rows)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan wallet transaction row", err)
		}
		modelTxns = append(modelTxns, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating wallet transaction rows", err)
	}

	var nextTokenVal *string
	if len(modelTxns) > limit {
		modelTxns = modelTxns[:limit]
		last := modelTxns[len(modelTxns)-1]
		token := pagination.EncodeCursor(last.CreatedAt, last.WalletTransactionID)
		nextTokenVal = &token
	}

	txns := make([]domain.WalletTransaction, len(modelTxns))
	for i, m := range modelTxns {
		txn, err := mapping.ToDomainWalletTransaction(m)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to decode wallet transaction metadata", err)
		}
		txns[i] = txn
	}
	return txns, nextTokenVal, nil
}

// SumCompletedDebitsBetween totals completed debit amounts in [from, to).
func (r *PgxWalletRepository) SumCompletedDebitsBetween(ctx context.Context, walletID string, from time.Time, to time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM wallet_transactions
		WHERE wallet_id = $1 AND type = 'DEBIT' AND status = 'COMPLETED'
		  AND created_at >= $2 AND created_at < $3;
	`
	var total decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query, walletID, from, to).Scan(&total); err != nil {
		return decimal.Zero, apperrors.NewAppError(500, "failed to sum debits for wallet "+walletID, err)
	}
	return total, nil
}

// UpdateWalletStatus changes the wallet lifecycle status.
func (r *PgxWalletRepository) UpdateWalletStatus(ctx context.Context, walletID string, status domain.WalletStatus, actorID string, now time.Time) error {
	ctx, cancel := r.mutationContext(ctx)
	defer cancel()
	query := `
		UPDATE wallets
		SET status = $2, last_updated_at = $3, last_updated_by = $4
		WHERE wallet_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, walletID, string(status), now, actorID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update status of wallet "+walletID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// UpdateWalletLimits adjusts per-transaction, daily and monthly limits.
func (r *PgxWalletRepository) UpdateWalletLimits(ctx context.Context, walletID string, transactionLimit, dailyLimit, monthlyLimit *decimal.Decimal, actorID string, now time.Time) error {
	ctx, cancel := r.mutationContext(ctx)
	defer cancel()
	query := `
		UPDATE wallets
		SET transaction_limit = $2, daily_limit = $3, monthly_limit = $4, last_updated_at = $5, last_updated_by = $6
		WHERE wallet_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, walletID, transactionLimit, dailyLimit, monthlyLimit, now, actorID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update limits of wallet "+walletID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// UpdateWalletLock sets or clears the lock flag, reason and deadline.
func (r *PgxWalletRepository) UpdateWalletLock(ctx context.Context, walletID string, locked bool, reason string, lockedUntil *time.Time, actorID string, now time.Time) error {
	ctx, cancel := r.mutationContext(ctx)
	defer cancel()
	query := `
		UPDATE wallets
		SET is_locked = $2, lock_reason = $3, locked_until = $4, last_updated_at = $5, last_updated_by = $6
		WHERE wallet_id = $1;
	`
	var lockReason sql.NullString
	if reason != "" {
		lockReason = sql.NullString{String: reason, Valid: true}
	}
	tag, err := r.Pool.Exec(ctx, query, walletID, locked, lockReason, lockedUntil, now, actorID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update lock of wallet "+walletID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// CreditWallet adds funds to the available balance, writing the audit row
// and the balance update in one transaction. A PENDING wallet is switched
// to ACTIVE alongside the balance update.
func (r *PgxWalletRepository) CreditWallet(ctx context.Context, walletID string, txn domain.WalletTransaction) (*domain.Wallet, *domain.WalletTransaction, error) {
	ctx, cancel := r.mutationContext(ctx)
	defer cancel()

	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, nil, err
	}
	defer r.Rollback(ctx, tx)

	wallet, err := r.lockWallet(ctx, tx, walletID)
	if err != nil {
		return nil, nil, err
	}

	now := txn.CreatedAt
	wallet.AvailableBalance = wallet.AvailableBalance.Add(txn.Amount)
	wallet.TotalCredit = wallet.TotalCredit.Add(txn.Amount)
	wallet.LastTransactionAt = &now
	if wallet.Status == domain.WalletPending {
		wallet.Status = domain.WalletActive
	}

	txn.Status = domain.WalletTxnCompleted
	txn.BalanceAfter = wallet.AvailableBalance

	if err := r.insertWalletTxn(ctx, tx, txn); err != nil {
		return nil, nil, err
	}
	if err := r.updateWalletBalances(ctx, tx, wallet, txn.CreatedBy, now); err != nil {
		return nil, nil, err
	}
	if err := r.Commit(ctx, tx); err != nil {
		return nil, nil, err
	}
	return wallet, &txn, nil
}

// DebitWallet removes funds from the available balance, or moves them to
// the hold balance when hold is set. The balance check happens under the
// row lock so concurrent debits can never overdraw.
func (r *PgxWalletRepository) DebitWallet(ctx context.Context, walletID string, txn domain.WalletTransaction, hold bool) (*domain.Wallet, *domain.WalletTransaction, error) {
	ctx, cancel := r.mutationContext(ctx)
	defer cancel()

	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, nil, err
	}
	defer r.Rollback(ctx, tx)

	wallet, err := r.lockWallet(ctx, tx, walletID)
	if err != nil {
		return nil, nil, err
	}
	if wallet.AvailableBalance.LessThan(txn.Amount) {
		return nil, nil, apperrors.ErrInsufficientFunds
	}

	now := txn.CreatedAt
	wallet.AvailableBalance = wallet.AvailableBalance.Sub(txn.Amount)
	wallet.LastTransactionAt = &now
	if hold {
		wallet.HoldBalance = wallet.HoldBalance.Add(txn.Amount)
		txn.Status = domain.WalletTxnPending
		txn.IsHeld = true
	} else {
		wallet.TotalDebit = wallet.TotalDebit.Add(txn.Amount)
		txn.Status = domain.WalletTxnCompleted
	}
	txn.BalanceAfter = wallet.AvailableBalance

	if err := r.insertWalletTxn(ctx, tx, txn); err != nil {
		return nil, nil, err
	}
	if err := r.updateWalletBalances(ctx, tx, wallet, txn.CreatedBy, now); err != nil {
		return nil, nil, err
	}
	if err := r.Commit(ctx, tx); err != nil {
		return nil, nil, err
	}
	return wallet, &txn, nil
}

// ReleaseHold returns part of the held balance to available. Held audit
// rows are cancelled oldest-first; a partially consumed row keeps its
// remainder on hold.
func (r *PgxWalletRepository) ReleaseHold(ctx context.Context, walletID string, amount decimal.Decimal, actorID string, now time.Time) (*domain.Wallet, error) {
	return r.settleHold(ctx, walletID, amount, actorID, now, false)
}

// CompleteHold captures part of the held balance as spent.
func (r *PgxWalletRepository) CompleteHold(ctx context.Context, walletID string, amount decimal.Decimal, actorID string, now time.Time) (*domain.Wallet, error) {
	return r.settleHold(ctx, walletID, amount, actorID, now, true)
}

func (r *PgxWalletRepository) settleHold(ctx context.Context, walletID string, amount decimal.Decimal, actorID string, now time.Time, capture bool) (*domain.Wallet, error) {
	ctx, cancel := r.mutationContext(ctx)
	defer cancel()

	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	wallet, err := r.lockWallet(ctx, tx, walletID)
	if err != nil {
		return nil, err
	}

	available, hold, totalDebit, err := accounting.SettleHoldBalances(wallet.AvailableBalance, wallet.HoldBalance, wallet.TotalDebit, amount, capture)
	if err != nil {
		return nil, err
	}
	wallet.AvailableBalance = available
	wallet.HoldBalance = hold
	wallet.TotalDebit = totalDebit
	wallet.LastTransactionAt = &now

	if err := r.clearHeldTransactions(ctx, tx, walletID, amount, wallet.AvailableBalance, actorID, now, capture); err != nil {
		return nil, err
	}
	if err := r.updateWalletBalances(ctx, tx, wallet, actorID, now); err != nil {
		return nil, err
	}
	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return wallet, nil
}

// clearHeldTransactions consumes held PENDING rows oldest-first until the
// settled amount is covered. The last row may be split: its amount shrinks
// by the settled slice and it stays held, while the slice itself is written
// as a new settled row so the completed trail carries every captured amount.
func (r *PgxWalletRepository) clearHeldTransactions(ctx context.Context, tx pgx.Tx, walletID string, amount decimal.Decimal, balanceAfter decimal.Decimal, actorID string, now time.Time, capture bool) error {
	query := `
		SELECT wallet_transaction_id, amount
		FROM wallet_transactions
		WHERE wallet_id = $1 AND is_held AND status = 'PENDING'
		ORDER BY created_at ASC
		FOR UPDATE;
	`
	rows, err := tx.Query(ctx, query, walletID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to query held transactions for wallet "+walletID, err)
	}

	type heldRow struct {
		id     string
		amount decimal.Decimal
	}
	held := []heldRow{}
	for rows.Next() {
		var h heldRow
		if err := rows.Scan(&h.id, &h.amount); err != nil {
			rows.Close()
			return apperrors.NewAppError(500, "failed to scan held transaction row", err)
		}
		held = append(held, h)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return apperrors.NewAppError(500, "error iterating held transaction rows", err)
	}

	settledStatus := string(domain.WalletTxnCancelled)
	if capture {
		settledStatus = string(domain.WalletTxnCompleted)
	}

	remaining := amount
	for _, h := range held {
		if remaining.IsZero() {
			break
		}
		if h.amount.LessThanOrEqual(remaining) {
			settleQuery := `
				UPDATE wallet_transactions
				SET status = $2, is_held = FALSE, last_updated_at = $3, last_updated_by = $4
				WHERE wallet_transaction_id = $1;
			`
			if _, err := tx.Exec(ctx, settleQuery, h.id, settledStatus, now, actorID); err != nil {
				return apperrors.NewAppError(500, "failed to settle held transaction "+h.id, err)
			}
			remaining = remaining.Sub(h.amount)
		} else {
			splitQuery := `
				UPDATE wallet_transactions
				SET amount = amount - $2, last_updated_at = $3, last_updated_by = $4
				WHERE wallet_transaction_id = $1;
			`
			if _, err := tx.Exec(ctx, splitQuery, h.id, remaining, now, actorID); err != nil {
				return apperrors.NewAppError(500, "failed to split held transaction "+h.id, err)
			}
			// The settled slice gets its own row, copied from the held
			// parent and linked back to it. Without this, a partial
			// capture would never appear among completed debits and
			// reconciliation would re-inflate the available balance.
			sliceQuery := `
				INSERT INTO wallet_transactions (` + walletTxnColumns + `)
				SELECT $2, wallet_id, type, $3, $4, $5, FALSE, description, metadata,
				       counterparty_wallet_id, wallet_transaction_id, $6, $7, $6, $7
				FROM wallet_transactions
				WHERE wallet_transaction_id = $1;
			`
			if _, err := tx.Exec(ctx, sliceQuery, h.id, uuid.NewString(), remaining, balanceAfter, settledStatus, now, actorID); err != nil {
				return apperrors.NewAppError(500, "failed to record settled slice of held transaction "+h.id, err)
			}
			remaining = decimal.Zero
		}
	}
	return nil
}

// Transfer debits the sender and credits the recipient atomically. Wallet
// rows are locked in wallet-ID order so two opposing transfers cannot
// deadlock each other.
func (r *PgxWalletRepository) Transfer(ctx context.Context, senderTxn domain.WalletTransaction, recipientTxn domain.WalletTransaction) (*domain.WalletTransaction, *domain.WalletTransaction, error) {
	senderID := senderTxn.WalletID
	recipientID := recipientTxn.WalletID
	if senderID == recipientID {
		return nil, nil, apperrors.ErrIdenticalAccounts
	}

	ctx, cancel := r.mutationContext(ctx)
	defer cancel()

	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, nil, err
	}
	defer r.Rollback(ctx, tx)

	lockOrder := []string{senderID, recipientID}
	if recipientID < senderID {
		lockOrder = []string{recipientID, senderID}
	}
	locked := make(map[string]*domain.Wallet, 2)
	for _, id := range lockOrder {
		w, err := r.lockWallet(ctx, tx, id)
		if err != nil {
			return nil, nil, err
		}
		locked[id] = w
	}
	sender := locked[senderID]
	recipient := locked[recipientID]

	amount := senderTxn.Amount
	if sender.AvailableBalance.LessThan(amount) {
		return nil, nil, apperrors.ErrInsufficientFunds
	}

	now := senderTxn.CreatedAt
	sender.AvailableBalance = sender.AvailableBalance.Sub(amount)
	sender.TotalDebit = sender.TotalDebit.Add(amount)
	sender.LastTransactionAt = &now
	recipient.AvailableBalance = recipient.AvailableBalance.Add(amount)
	recipient.TotalCredit = recipient.TotalCredit.Add(amount)
	recipient.LastTransactionAt = &now
	// A pending recipient is activated by its first incoming transfer.
	if recipient.Status == domain.WalletPending {
		recipient.Status = domain.WalletActive
	}

	senderTxn.Status = domain.WalletTxnCompleted
	senderTxn.BalanceAfter = sender.AvailableBalance
	recipientTxn.Status = domain.WalletTxnCompleted
	recipientTxn.BalanceAfter = recipient.AvailableBalance

	if err := r.insertWalletTxn(ctx, tx, senderTxn); err != nil {
		return nil, nil, err
	}
	if err := r.insertWalletTxn(ctx, tx, recipientTxn); err != nil {
		return nil, nil, err
	}
	if err := r.updateWalletBalances(ctx, tx, sender, senderTxn.CreatedBy, now); err != nil {
		return nil, nil, err
	}
	if err := r.updateWalletBalances(ctx, tx, recipient, senderTxn.CreatedBy, now); err != nil {
		return nil, nil, err
	}
	if err := r.Commit(ctx, tx); err != nil {
		return nil, nil, err
	}
	return &senderTxn, &recipientTxn, nil
}

// ReconcileWallet replays the completed audit trail against a zero opening
// balance under the row lock and corrects the available balance. Running
// it twice in a row reports a zero discrepancy.
func (r *PgxWalletRepository) ReconcileWallet(ctx context.Context, walletID string, actorID string, now time.Time) (*domain.WalletReconciliationResult, error) {
	ctx, cancel := r.mutationContext(ctx)
	defer cancel()

	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	wallet, err := r.lockWallet(ctx, tx, walletID)
	if err != nil {
		return nil, err
	}

	aggregateQuery := `
		SELECT COALESCE(SUM(amount) FILTER (WHERE type = 'CREDIT' AND status = 'COMPLETED'), 0),
		       COALESCE(SUM(amount) FILTER (WHERE type = 'DEBIT' AND status = 'COMPLETED'), 0),
		       COUNT(*) FILTER (WHERE status = 'COMPLETED')
		FROM wallet_transactions
		WHERE wallet_id = $1;
	`
	var credits, debits decimal.Decimal
	var processed int
	if err := tx.QueryRow(ctx, aggregateQuery, walletID).Scan(&credits, &debits, &processed); err != nil {
		return nil, apperrors.NewAppError(500, "failed to aggregate transactions for wallet "+walletID, err)
	}

	// Held amounts left the available balance but are not completed debits.
	calculated := accounting.RecomputeWalletAvailable(credits, debits, wallet.HoldBalance)
	previous := wallet.AvailableBalance
	wallet.AvailableBalance = calculated

	if err := r.updateWalletBalances(ctx, tx, wallet, actorID, now); err != nil {
		return nil, err
	}
	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}

	return &domain.WalletReconciliationResult{
		WalletID:              walletID,
		PreviousAvailable:     previous,
		CalculatedAvailable:   calculated,
		Discrepancy:           accounting.Discrepancy(previous, calculated),
		TransactionsProcessed: processed,
		ReconciledAt:          now,
	}, nil
}

func (r *PgxWalletRepository) updateWalletBalances(ctx context.Context, tx pgx.Tx, wallet *domain.Wallet, actorID string, now time.Time) error {
	query := `
		UPDATE wallets
		SET available_balance = $2, pending_balance = $3, hold_balance = $4,
		    total_credit = $5, total_debit = $6, status = $7, last_transaction_at = $8,
		    last_updated_at = $9, last_updated_by = $10
		WHERE wallet_id = $1;
	`
	_, err := tx.Exec(ctx, query,
		wallet.WalletID,
		wallet.AvailableBalance,
		wallet.PendingBalance,
		wallet.HoldBalance,
		wallet.TotalCredit,
		wallet.TotalDebit,
		string(wallet.Status),
		wallet.LastTransactionAt,
		now,
		actorID,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update balances of wallet "+wallet.WalletID, err)
	}
	return nil
}
