package services

import (
	"context"

	"github.com/hudumabill/ledger_backend/internal/core/domain"
	"github.com/hudumabill/ledger_backend/internal/dto"
)

// TransactionReaderSvc defines read operations for external transactions
type TransactionReaderSvc interface {
	// GetTransactionByID retrieves a specific transaction.
	GetTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// ListTransactions retrieves a paginated list of transactions.
	ListTransactions(ctx context.Context, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error)
}

// TransactionWriterSvc defines write operations for external transactions
type TransactionWriterSvc interface {
	// RecordTransaction registers an external payment event in PENDING
	// status with a generated transaction code.
	RecordTransaction(ctx context.Context, req dto.RecordTransactionRequest, actorID string) (*domain.Transaction, error)

	// TransitionTransaction moves a transaction along its status lifecycle,
	// enforcing the forward-only state machine.
	TransitionTransaction(ctx context.Context, transactionID string, req dto.TransitionTransactionRequest, actorID string) (*domain.Transaction, error)
}

// TransactionSvcFacade combines all transaction-related service interfaces
type TransactionSvcFacade interface {
	TransactionReaderSvc
	TransactionWriterSvc
}
