package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalStatus indicates the state of a journal entry.
type JournalStatus string

const (
	JournalPending  JournalStatus = "PENDING"
	JournalApproved JournalStatus = "APPROVED"
	JournalRejected JournalStatus = "REJECTED"
	JournalPosted   JournalStatus = "POSTED"
)

// Journal is the persistence shape of a double-entry journal record.
type Journal struct {
	JournalID       string          `db:"journal_id"`
	ReferenceNumber string          `db:"reference_number"`
	AccountDebited  string          `db:"account_debited"`
	AccountCredited string          `db:"account_credited"`
	Amount          decimal.Decimal `db:"amount"`
	CurrencyCode    string          `db:"currency_code"`
	ExchangeRate    decimal.Decimal `db:"exchange_rate"`
	JournalType     string          `db:"journal_type"`
	Status          JournalStatus   `db:"status"`
	Description     string          `db:"description"`
	PostingDate     time.Time       `db:"posting_date"`
	ValueDate       time.Time       `db:"value_date"`
	ApprovedBy      *string         `db:"approved_by"`
	ApprovedAt      *time.Time      `db:"approved_at"`
	RejectionReason string          `db:"rejection_reason"`
	AuditFields
}
