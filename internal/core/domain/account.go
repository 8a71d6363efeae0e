package domain

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

// AccountSubtype refines the account type for reporting purposes.
type AccountSubtype string

const (
	SubtypeCash       AccountSubtype = "CASH"
	SubtypeBank       AccountSubtype = "BANK"
	SubtypeReceivable AccountSubtype = "RECEIVABLE"
	SubtypePayable    AccountSubtype = "PAYABLE"
	SubtypeTax        AccountSubtype = "TAX"
	SubtypeSalary     AccountSubtype = "SALARY"
	SubtypeUtility    AccountSubtype = "UTILITY"
)

// AccountStatus is the lifecycle state of an account.
type AccountStatus string

const (
	AccountActive    AccountStatus = "ACTIVE"
	AccountInactive  AccountStatus = "INACTIVE"
	AccountSuspended AccountStatus = "SUSPENDED"
	AccountClosed    AccountStatus = "CLOSED"
)

// Account represents a chart-of-accounts node with a running balance.
// CurrentBalance starts at OpeningBalance and is moved only by ledger
// postings and by reconciliation.
type Account struct {
	AccountID       string          `json:"accountID"`     // Primary Key (UUID)
	AccountNumber   string          `json:"accountNumber"` // ACC{YYYYMMDD}{6-digit seq}
	Name            string          `json:"name"`
	AccountType     AccountType     `json:"accountType"`
	AccountSubtype  AccountSubtype  `json:"accountSubtype"`
	CurrencyCode    string          `json:"currencyCode"`
	ParentAccountID string          `json:"parentAccountID"` // Nullable, self-referencing
	Description     string          `json:"description"`
	OpeningBalance  decimal.Decimal `json:"openingBalance"`
	CurrentBalance  decimal.Decimal `json:"currentBalance"`
	CreditLimit     decimal.Decimal `json:"creditLimit"`
	Status          AccountStatus   `json:"status"`
	ClosedAt        *time.Time      `json:"closedAt,omitempty"`
	ClosureReason   string          `json:"closureReason,omitempty"`
	LastReconciledAt *time.Time     `json:"lastReconciledAt,omitempty"`
	DeletedAt       *time.Time      `json:"deletedAt,omitempty"` // Soft delete only
	AuditFields
}

// IsDebitNormal reports whether debits increase this account's balance.
func (a *Account) IsDebitNormal() bool {
	return a.AccountType == Asset || a.AccountType == Expense
}

// IsPostable reports whether ledger entries may be posted against the account.
func (a *Account) IsPostable() bool {
	return a.Status == AccountActive && a.DeletedAt == nil
}

// ReconciliationResult is the outcome of a balance reconciliation run.
// A non-zero discrepancy is reported as data for manual review, never
// raised as an error.
type ReconciliationResult struct {
	AccountID             string          `json:"accountID"`
	PreviousBalance       decimal.Decimal `json:"previousBalance"`
	CalculatedBalance     decimal.Decimal `json:"calculatedBalance"`
	Discrepancy           decimal.Decimal `json:"discrepancy"`
	TransactionsProcessed int             `json:"transactionsProcessed"`
	ReconciledAt          time.Time       `json:"reconciledAt"`
}

// AccountBalance aggregates posted ledger activity for one account.
type AccountBalance struct {
	AccountID string          `json:"accountID"`
	Debits    decimal.Decimal `json:"debits"`
	Credits   decimal.Decimal `json:"credits"`
	Balance   decimal.Decimal `json:"balance"`
	AsOf      *time.Time      `json:"asOf,omitempty"`
}
