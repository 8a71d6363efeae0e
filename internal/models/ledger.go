package models

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

// LedgerEntry is the persistence shape of one single-sided posting.
// Amount is immutable after insert; only is_reconciled may flip.
type LedgerEntry struct {
	EntryID         string          `db:"entry_id"`
	ReferenceNumber string          `db:"reference_number"`
	JournalID       string          `db:"journal_id"`
	TransactionID   string          `db:"transaction_id"` // Nullable
	AccountID       string          `db:"account_id"`
	EntryType       EntryType       `db:"entry_type"`
	EntryCategory   string          `db:"entry_category"`
	Amount          decimal.Decimal `db:"amount"`
	Balance         decimal.Decimal `db:"balance"`
	IsReconciled    bool            `db:"is_reconciled"`
	PostingDate     time.Time       `db:"posting_date"`
	AuditFields
}
