package services

import (
	"context"
	"time"

	"github.com/hudumabill/ledger_backend/internal/core/domain"
	"github.com/hudumabill/ledger_backend/internal/dto"
)

// AccountReaderSvc defines read operations for account data
type AccountReaderSvc interface {
	// GetAccountByID retrieves a specific account by its ID.
	GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// ListAccounts retrieves a paginated list of accounts.
	ListAccounts(ctx context.Context, params dto.ListAccountsParams) (*dto.ListAccountsResponse, error)

	// GetAccountBalance aggregates posted ledger activity for an account,
	// optionally as of a point in time.
	GetAccountBalance(ctx context.Context, accountID string, asOf *time.Time) (*domain.AccountBalance, error)
}

// AccountWriterSvc defines write operations for account data
type AccountWriterSvc interface {
	// CreateAccount persists a new account with a generated account number.
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest, creatorID string) (*domain.Account, error)

	// UpdateAccount updates an account's mutable details.
	UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, actorID string) (*domain.Account, error)

	// CloseAccount closes an account; the balance must be zero.
	CloseAccount(ctx context.Context, accountID string, reason string, actorID string) (*domain.Account, error)

	// DeleteAccount soft-deletes an account.
	DeleteAccount(ctx context.Context, accountID string, actorID string) error
}

// AccountReconcilerSvc defines the reconciliation operation.
type AccountReconcilerSvc interface {
	// ReconcileAccount replays the ledger against the opening balance and
	// reports the outcome; discrepancies are returned, never raised.
	ReconcileAccount(ctx context.Context, accountID string, actorID string) (*domain.ReconciliationResult, error)
}

// AccountSvcFacade combines all account-related service interfaces
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
	AccountReconcilerSvc
}
