package repositories

import (
	"context"
	"time"

	"github.com/hudumabill/ledger_backend/internal/core/domain"
)

// LedgerReader defines read operations for ledger entry data
type LedgerReader interface {
	// FindEntryByID retrieves a specific ledger entry by its unique identifier.
	FindEntryByID(ctx context.Context, entryID string) (*domain.LedgerEntry, error)

	// FindEntriesByJournalID retrieves the entry pair belonging to one journal.
	FindEntriesByJournalID(ctx context.Context, journalID string) ([]domain.LedgerEntry, error)

	// ListEntriesByAccountID retrieves a paginated list of entries for a
	// specific account using token-based pagination.
	ListEntriesByAccountID(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error)

	// AggregateAccountBalance sums posted debit/credit amounts for an account,
	// optionally up to a point in time, and derives the signed balance.
	AggregateAccountBalance(ctx context.Context, accountID string, asOf *time.Time) (*domain.AccountBalance, error)
}

// LedgerWriter defines write operations for ledger entry data
type LedgerWriter interface {
	// MarkEntriesReconciled flags a batch of entries as reconciled and
	// returns how many rows actually changed.
	MarkEntriesReconciled(ctx context.Context, entryIDs []string, actorID string, now time.Time) (int64, error)
}

// LedgerRepositoryFacade combines all ledger-related repository interfaces
type LedgerRepositoryFacade interface {
	LedgerReader
	LedgerWriter
}

// LedgerRepositoryWithTx extends LedgerRepositoryFacade with transaction capabilities
type LedgerRepositoryWithTx interface {
	LedgerRepositoryFacade
	TransactionManager
}
