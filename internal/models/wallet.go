package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Wallet is the persistence shape of a spendable balance store.
// Balance columns use 8dp NUMERIC for internal precision.
type Wallet struct {
	WalletID          string           `db:"wallet_id"`
	WalletNumber      string           `db:"wallet_number"`
	UserID            string           `db:"user_id"`
	CurrencyCode      string           `db:"currency_code"`
	AvailableBalance  decimal.Decimal  `db:"available_balance"`
	PendingBalance    decimal.Decimal  `db:"pending_balance"`
	HoldBalance       decimal.Decimal  `db:"hold_balance"`
	TotalCredit       decimal.Decimal  `db:"total_credit"`
	TotalDebit        decimal.Decimal  `db:"total_debit"`
	DailyLimit        *decimal.Decimal `db:"daily_limit"`
	TransactionLimit  *decimal.Decimal `db:"transaction_limit"`
	MonthlyLimit      *decimal.Decimal `db:"monthly_limit"`
	Status            string           `db:"status"`
	IsLocked          bool             `db:"is_locked"`
	LockReason        string           `db:"lock_reason"`
	LockedUntil       *time.Time       `db:"locked_until"`
	LastTransactionAt *time.Time       `db:"last_transaction_at"`
	AuditFields
}

// WalletTransaction is the persistence shape of one wallet audit row.
// Metadata is stored as JSONB.
type WalletTransaction struct {
	WalletTransactionID  string          `db:"wallet_transaction_id"`
	WalletID             string          `db:"wallet_id"`
	Type                 string          `db:"type"`
	Amount               decimal.Decimal `db:"amount"`
	BalanceAfter         decimal.Decimal `db:"balance_after"`
	Status               string          `db:"status"`
	IsHeld               bool            `db:"is_held"`
	Description          string          `db:"description"`
	Metadata             []byte          `db:"metadata"`
	CounterpartyWalletID string          `db:"counterparty_wallet_id"` // Nullable
	RelatedTransactionID string          `db:"related_transaction_id"` // Nullable
	AuditFields
}
