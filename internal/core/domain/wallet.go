package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// WalletStatus is the lifecycle state of a wallet.
type WalletStatus string

const (
	WalletPending   WalletStatus = "PENDING"
	WalletActive    WalletStatus = "ACTIVE"
	WalletInactive  WalletStatus = "INACTIVE"
	WalletSuspended WalletStatus = "SUSPENDED"
)

// Wallet is a per-user/currency spendable balance store with
// available/pending/hold sub-balances and transaction limits. It keeps
// its own transaction audit trail, parallel to the double-entry ledger.
// Invariant: AvailableBalance never goes negative.
type Wallet struct {
	WalletID          string           `json:"walletID"` // Primary Key (UUID)
	WalletNumber      string           `json:"walletNumber"` // WLT{YYYYMMDD}{6-digit seq}
	UserID            string           `json:"userID"`
	CurrencyCode      string           `json:"currencyCode"`
	AvailableBalance  decimal.Decimal  `json:"availableBalance"`
	PendingBalance    decimal.Decimal  `json:"pendingBalance"`
	HoldBalance       decimal.Decimal  `json:"holdBalance"`
	TotalCredit       decimal.Decimal  `json:"totalCredit"`
	TotalDebit        decimal.Decimal  `json:"totalDebit"`
	DailyLimit        *decimal.Decimal `json:"dailyLimit,omitempty"`       // nil = unlimited
	TransactionLimit  *decimal.Decimal `json:"transactionLimit,omitempty"` // nil = unlimited
	MonthlyLimit      *decimal.Decimal `json:"monthlyLimit,omitempty"`     // nil = unlimited
	Status            WalletStatus     `json:"status"`
	IsLocked          bool             `json:"isLocked"`
	LockReason        string           `json:"lockReason,omitempty"`
	LockedUntil       *time.Time       `json:"lockedUntil,omitempty"`
	LastTransactionAt *time.Time       `json:"lastTransactionAt,omitempty"`
	AuditFields
}

// IsOperational reports whether the wallet may transact: active status,
// not locked, and any temporary lock has expired.
func (w *Wallet) IsOperational(now time.Time) bool {
	if w.Status != WalletActive {
		return false
	}
	if w.IsLocked {
		return w.LockedUntil != nil && w.LockedUntil.Before(now)
	}
	return true
}

// IsCreditable reports whether the wallet may receive funds. A PENDING
// wallet is creditable; its first credit activates it. Lock state is
// honored the same way as for debits.
func (w *Wallet) IsCreditable(now time.Time) bool {
	if w.IsLocked && !(w.LockedUntil != nil && w.LockedUntil.Before(now)) {
		return false
	}
	return w.Status == WalletActive || w.Status == WalletPending
}

// WalletTransactionType indicates the direction of a wallet transaction.
type WalletTransactionType string

const (
	WalletCredit WalletTransactionType = "CREDIT"
	WalletDebit  WalletTransactionType = "DEBIT"
)

// WalletTransactionStatus is the state of one wallet transaction row.
type WalletTransactionStatus string

const (
	WalletTxnPending   WalletTransactionStatus = "PENDING"
	WalletTxnCompleted WalletTransactionStatus = "COMPLETED"
	WalletTxnCancelled WalletTransactionStatus = "CANCELLED"
)

// WalletTransaction is one audit-trail row for a wallet mutation.
// BalanceAfter snapshots the available balance after the mutation.
// Held debits stay PENDING with IsHeld set until released or captured.
type WalletTransaction struct {
	WalletTransactionID  string                  `json:"walletTransactionID"` // Primary Key (UUID)
	WalletID             string                  `json:"walletID"`
	Type                 WalletTransactionType   `json:"type"`
	Amount               decimal.Decimal         `json:"amount"`
	BalanceAfter         decimal.Decimal         `json:"balanceAfter"`
	Status               WalletTransactionStatus `json:"status"`
	IsHeld               bool                    `json:"isHeld"`
	Description          string                  `json:"description"`
	Metadata             map[string]string       `json:"metadata,omitempty"`
	CounterpartyWalletID string                  `json:"counterpartyWalletID,omitempty"`
	// RelatedTransactionID cross-references the paired row of a transfer.
	RelatedTransactionID string `json:"relatedTransactionID,omitempty"`
	AuditFields
}

// WalletReconciliationResult reports the wallet-side balance replay used
// as the explicit sync contract with the double-entry ledger.
type WalletReconciliationResult struct {
	WalletID              string          `json:"walletID"`
	PreviousAvailable     decimal.Decimal `json:"previousAvailable"`
	CalculatedAvailable   decimal.Decimal `json:"calculatedAvailable"`
	Discrepancy           decimal.Decimal `json:"discrepancy"`
	TransactionsProcessed int             `json:"transactionsProcessed"`
	ReconciledAt          time.Time       `json:"reconciledAt"`
}
