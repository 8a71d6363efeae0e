package repositories

import (
	"context"
	"time"

	"github.com/hudumabill/ledger_backend/internal/core/domain"
)

// TransactionReader defines read operations for external transaction data
type TransactionReader interface {
	// FindTransactionByID retrieves a specific transaction by its unique identifier.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// ListTransactions retrieves a paginated list of transactions using
	// token-based pagination, optionally filtered by status.
	ListTransactions(ctx context.Context, limit int, nextToken *string, status *domain.TransactionStatus) ([]domain.Transaction, *string, error)
}

// TransactionWriter defines write operations for external transaction data
type TransactionWriter interface {
	// SaveTransaction persists a new transaction.
	SaveTransaction(ctx context.Context, txn domain.Transaction) error

	// UpdateTransactionStatus moves a transaction along its lifecycle,
	// recording the aggregator response and the completion timestamp when
	// a terminal status is reached.
	UpdateTransactionStatus(ctx context.Context, transactionID string, status domain.TransactionStatus, responsePayload string, completedAt *time.Time, actorID string, now time.Time) error
}

// TransactionRepositoryFacade combines all transaction-related repository interfaces
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}

// TransactionRepositoryWithTx extends TransactionRepositoryFacade with transaction capabilities
type TransactionRepositoryWithTx interface {
	TransactionRepositoryFacade
	TransactionManager
}
