package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Income    AccountType = "INCOME"
	Expense   AccountType = "EXPENSE"
)

// Account is the persistence shape of a chart-of-accounts node.
// ParentAccountID uses string for the nullable self-referencing FK.
type Account struct {
	AccountID        string          `db:"account_id"`
	AccountNumber    string          `db:"account_number"`
	Name             string          `db:"name"`
	AccountType      AccountType     `db:"account_type"`
	AccountSubtype   string          `db:"account_subtype"`
	CurrencyCode     string          `db:"currency_code"`
	ParentAccountID  string          `db:"parent_account_id"` // Nullable
	Description      string          `db:"description"`
	OpeningBalance   decimal.Decimal `db:"opening_balance"`
	CurrentBalance   decimal.Decimal `db:"current_balance"`
	CreditLimit      decimal.Decimal `db:"credit_limit"`
	Status           string          `db:"status"`
	ClosedAt         *time.Time      `db:"closed_at"`
	ClosureReason    string          `db:"closure_reason"`
	LastReconciledAt *time.Time      `db:"last_reconciled_at"`
	DeletedAt        *time.Time      `db:"deleted_at"`
	AuditFields
}
