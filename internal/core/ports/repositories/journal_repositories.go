package repositories

import (
	"context"
	"time"

	"github.com/hudumabill/ledger_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// JournalReader defines read operations for journal data
type JournalReader interface {
	// FindJournalByID retrieves a specific journal by its unique identifier.
	FindJournalByID(ctx context.Context, journalID string) (*domain.Journal, error)

	// ListJournals retrieves a paginated list of journals using token-based
	// pagination, optionally filtered by status and type.
	ListJournals(ctx context.Context, limit int, nextToken *string, status *domain.JournalStatus, journalType *domain.JournalType) ([]domain.Journal, *string, error)
}

// JournalWriter defines write operations for journal data
type JournalWriter interface {
	// SaveJournal persists a journal, its two ledger entries and the
	// corresponding account balance updates within a single transaction.
	// Affected account rows are locked before balances move.
	SaveJournal(ctx context.Context, journal domain.Journal, entries []domain.LedgerEntry, balanceChanges map[string]decimal.Decimal) error

	// UpdateJournalStatus moves a journal along its state machine, stamping
	// approval metadata or a rejection reason as appropriate.
	UpdateJournalStatus(ctx context.Context, journalID string, status domain.JournalStatus, approvedBy *string, approvedAt *time.Time, rejectionReason string, actorID string, now time.Time) error
}

// JournalRepositoryFacade combines all journal-related repository interfaces
// This is a facade for clients that need access to all operations
type JournalRepositoryFacade interface {
	JournalReader
	JournalWriter
}

// JournalRepositoryWithTx extends JournalRepositoryFacade with transaction capabilities
type JournalRepositoryWithTx interface {
	JournalRepositoryFacade
	TransactionManager
}
