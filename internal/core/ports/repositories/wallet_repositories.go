package repositories

import (
	"context"
	"time"

	"github.com/hudumabill/ledger_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// WalletReader defines read operations for wallet data
type WalletReader interface {
	// FindWalletByID retrieves a specific wallet by its unique identifier.
	FindWalletByID(ctx context.Context, walletID string) (*domain.Wallet, error)

	// FindWalletByUserAndCurrency retrieves the wallet a user holds in a currency.
	FindWalletByUserAndCurrency(ctx context.Context, userID string, currencyCode string) (*domain.Wallet, error)

	// ListWalletsByUserID retrieves all wallets belonging to one user.
	ListWalletsByUserID(ctx context.Context, userID string) ([]domain.Wallet, error)

	// ListWalletTransactions retrieves a paginated audit trail for a wallet
	// using token-based pagination.
	ListWalletTransactions(ctx context.Context, walletID string, limit int, nextToken *string) ([]domain.WalletTransaction, *string, error)

	// SumCompletedDebitsBetween totals completed (non-cancelled) debit
	// amounts in [from, to), used for daily and monthly limit checks.
	SumCompletedDebitsBetween(ctx context.Context, walletID string, from time.Time, to time.Time) (decimal.Decimal, error)
}

// WalletWriter defines write operations for wallet configuration
type WalletWriter interface {
	// SaveWallet persists a new wallet.
	SaveWallet(ctx context.Context, wallet domain.Wallet) error

	// UpdateWalletStatus changes the wallet lifecycle status.
	UpdateWalletStatus(ctx context.Context, walletID string, status domain.WalletStatus, actorID string, now time.Time) error

	// UpdateWalletLimits adjusts per-transaction, daily and monthly limits.
	UpdateWalletLimits(ctx context.Context, walletID string, transactionLimit, dailyLimit, monthlyLimit *decimal.Decimal, actorID string, now time.Time) error

	// UpdateWalletLock sets or clears the lock flag, reason and deadline.
	UpdateWalletLock(ctx context.Context, walletID string, locked bool, reason string, lockedUntil *time.Time, actorID string, now time.Time) error
}

// WalletMutator defines the atomic balance mutations. Each call locks the
// wallet row(s), re-validates balances under the lock, writes the audit
// trail rows and updates the balances in one transaction.
type WalletMutator interface {
	// CreditWallet adds funds to the available balance.
	CreditWallet(ctx context.Context, walletID string, txn domain.WalletTransaction) (*domain.Wallet, *domain.WalletTransaction, error)

	// DebitWallet removes funds from the available balance. When hold is
	// set, the amount moves to the hold balance and the audit row stays
	// PENDING until released or captured.
	DebitWallet(ctx context.Context, walletID string, txn domain.WalletTransaction, hold bool) (*domain.Wallet, *domain.WalletTransaction, error)

	// ReleaseHold returns part of the held balance to available, cancelling
	// held audit rows oldest-first.
	ReleaseHold(ctx context.Context, walletID string, amount decimal.Decimal, actorID string, now time.Time) (*domain.Wallet, error)

	// CompleteHold captures part of the held balance as spent, completing
	// held audit rows oldest-first.
	CompleteHold(ctx context.Context, walletID string, amount decimal.Decimal, actorID string, now time.Time) (*domain.Wallet, error)

	// Transfer debits the sender and credits the recipient atomically,
	// cross-referencing the two audit rows. Wallet rows are locked in
	// wallet-ID order to avoid deadlocks between concurrent transfers.
	Transfer(ctx context.Context, senderTxn domain.WalletTransaction, recipientTxn domain.WalletTransaction) (*domain.WalletTransaction, *domain.WalletTransaction, error)
}

// WalletReconciler defines the wallet-side balance replay.
type WalletReconciler interface {
	// ReconcileWallet replays the completed audit trail against a zero
	// opening balance inside one transaction, corrects the available
	// balance and reports any discrepancy as data.
	ReconcileWallet(ctx context.Context, walletID string, actorID string, now time.Time) (*domain.WalletReconciliationResult, error)
}

// WalletRepositoryFacade combines all wallet-related repository interfaces
type WalletRepositoryFacade interface {
	WalletReader
	WalletWriter
	WalletMutator
	WalletReconciler
}

// WalletRepositoryWithTx extends WalletRepositoryFacade with transaction capabilities
type WalletRepositoryWithTx interface {
	WalletRepositoryFacade
	TransactionManager
}
