package repositories

import (
	"context"
	"time"

	"github.com/hudumabill/ledger_backend/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// AccountReader defines read operations for account data
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// FindAccountsByIDs retrieves multiple accounts by their IDs.
	FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)

	// ListAccounts retrieves a paginated list of accounts using token-based pagination.
	ListAccounts(ctx context.Context, limit int, nextToken *string) ([]domain.Account, *string, error)
}

// AccountWriter defines write operations for account data
type AccountWriter interface {
	// SaveAccount persists a new account.
	SaveAccount(ctx context.Context, account domain.Account) error

	// UpdateAccount updates an existing account's details.
	UpdateAccount(ctx context.Context, account domain.Account) error

	// CloseAccount marks an account CLOSED with a reason. The caller must
	// have verified the zero-balance precondition under lock.
	CloseAccount(ctx context.Context, accountID string, reason string, actorID string, now time.Time) error

	// SoftDeleteAccount stamps deleted_at without removing the row.
	SoftDeleteAccount(ctx context.Context, accountID string, actorID string, now time.Time) error
}

// AccountTransactionSupport defines operations that support account postings
type AccountTransactionSupport interface {
	// FindAccountsByIDsForUpdate selects accounts and locks them for update within a transaction.
	FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.Account, error)

	// UpdateAccountBalancesInTx applies signed balance deltas for multiple accounts within a given transaction.
	UpdateAccountBalancesInTx(ctx context.Context, tx pgx.Tx, balanceChanges map[string]decimal.Decimal, actorID string, now time.Time) error
}

// AccountReconciler defines the balance reconciliation operation.
type AccountReconciler interface {
	// ReconcileAccount replays the account's full ledger history against the
	// opening balance inside one transaction, marks unreconciled entries,
	// corrects current_balance and reports any discrepancy as data.
	ReconcileAccount(ctx context.Context, accountID string, actorID string, now time.Time) (*domain.ReconciliationResult, error)
}

// AccountRepositoryFacade combines all account-related repository interfaces
// This is a facade for clients that need access to all operations
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
	AccountTransactionSupport
	AccountReconciler
}

// AccountRepositoryWithTx extends AccountRepositoryFacade with transaction capabilities
type AccountRepositoryWithTx interface {
	AccountRepositoryFacade
	TransactionManager
}
