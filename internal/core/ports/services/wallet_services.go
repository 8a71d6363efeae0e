package services

import (
	"context"

	"github.com/hudumabill/ledger_backend/internal/core/domain"
	"github.com/hudumabill/ledger_backend/internal/dto"
	"github.com/shopspring/decimal"
)

// WalletReaderSvc defines read operations for wallet data
type WalletReaderSvc interface {
	// GetWalletByID retrieves a specific wallet.
	GetWalletByID(ctx context.Context, walletID string) (*domain.Wallet, error)

	// ListWalletsByUser retrieves all wallets a user holds.
	ListWalletsByUser(ctx context.Context, userID string) ([]domain.Wallet, error)

	// ListWalletTransactions retrieves the paginated audit trail of a wallet.
	ListWalletTransactions(ctx context.Context, walletID string, params dto.ListWalletTransactionsParams) (*dto.ListWalletTransactionsResponse, error)

	// CanTransact checks amount positivity, wallet operability, available
	// balance and the per-transaction/daily/monthly limits for a debit.
	CanTransact(ctx context.Context, walletID string, amount decimal.Decimal) error
}

// WalletWriterSvc defines write operations for wallet configuration
type WalletWriterSvc interface {
	// CreateWallet opens a wallet for a user in a currency.
	CreateWallet(ctx context.Context, req dto.CreateWalletRequest, creatorID string) (*domain.Wallet, error)

	// ActivateWallet moves a PENDING wallet to ACTIVE.
	ActivateWallet(ctx context.Context, walletID string, actorID string) (*domain.Wallet, error)

	// UpdateWalletLimits adjusts the spend controls.
	UpdateWalletLimits(ctx context.Context, walletID string, req dto.UpdateWalletLimitsRequest, actorID string) (*domain.Wallet, error)

	// LockWallet suspends activity, optionally until a deadline.
	LockWallet(ctx context.Context, walletID string, req dto.LockWalletRequest, actorID string) (*domain.Wallet, error)

	// UnlockWallet clears the lock.
	UnlockWallet(ctx context.Context, walletID string, actorID string) (*domain.Wallet, error)
}

// WalletMutatorSvc defines the balance-moving operations.
type WalletMutatorSvc interface {
	// Credit adds funds to the wallet.
	Credit(ctx context.Context, walletID string, req dto.WalletMutationRequest, actorID string) (*domain.Wallet, *domain.WalletTransaction, error)

	// Debit removes funds, or places them on hold when req.Hold is set.
	Debit(ctx context.Context, walletID string, req dto.WalletMutationRequest, actorID string) (*domain.Wallet, *domain.WalletTransaction, error)

	// ReleaseHold returns held funds to the available balance.
	ReleaseHold(ctx context.Context, walletID string, amount decimal.Decimal, actorID string) (*domain.Wallet, error)

	// CompleteHold captures held funds as spent.
	CompleteHold(ctx context.Context, walletID string, amount decimal.Decimal, actorID string) (*domain.Wallet, error)

	// Transfer moves funds between two wallets atomically.
	Transfer(ctx context.Context, senderWalletID string, req dto.TransferRequest, actorID string) (*dto.TransferResponse, error)
}

// WalletReconcilerSvc defines the wallet balance replay.
type WalletReconcilerSvc interface {
	// ReconcileWallet replays the audit trail and corrects the available balance.
	ReconcileWallet(ctx context.Context, walletID string, actorID string) (*domain.WalletReconciliationResult, error)
}

// WalletSvcFacade combines all wallet-related service interfaces
type WalletSvcFacade interface {
	WalletReaderSvc
	WalletWriterSvc
	WalletMutatorSvc
	WalletReconcilerSvc
}
