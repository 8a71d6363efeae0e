package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryType indicates whether a ledger entry is a Debit or a Credit.
type EntryType string

const (
	Debit  EntryType = "DEBIT"
	Credit EntryType = "CREDIT"
)

// EntryCategory classifies a ledger entry for reporting.
type EntryCategory string

const (
	CategoryOperational    EntryCategory = "OPERATIONAL"
	CategoryNonOperational EntryCategory = "NON_OPERATIONAL"
	CategoryAdjustment     EntryCategory = "ADJUSTMENT"
	CategoryAccrual        EntryCategory = "ACCRUAL"
	CategoryReversal       EntryCategory = "REVERSAL"
)

// LedgerEntry is one physical single-sided posting derived from a Journal.
// Amount is immutable once written; the entry updates exactly one account's
// balance at creation time and may later be flagged reconciled.
type LedgerEntry struct {
	EntryID         string          `json:"entryID"`         // Primary Key (UUID)
	ReferenceNumber string          `json:"referenceNumber"` // {journal ref}-D or -C
	JournalID       string          `json:"journalID"`
	TransactionID   string          `json:"transactionID,omitempty"` // Optional external settlement link
	AccountID       string          `json:"accountID"`
	EntryType       EntryType       `json:"entryType"`
	EntryCategory   EntryCategory   `json:"entryCategory"`
	Amount          decimal.Decimal `json:"amount"`
	Balance         decimal.Decimal `json:"balance"` // Account balance snapshot after this entry
	IsReconciled    bool            `json:"isReconciled"`
	PostingDate     time.Time       `json:"postingDate"`
	AuditFields
}
