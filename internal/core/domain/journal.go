package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalStatus indicates the state of a journal entry.
type JournalStatus string

const (
	JournalPending  JournalStatus = "PENDING"
	JournalApproved JournalStatus = "APPROVED"
	JournalRejected JournalStatus = "REJECTED" // Terminal, no ledger reversal
	JournalPosted   JournalStatus = "POSTED"   // Terminal forward state
)

// JournalType classifies the economic event behind a journal.
type JournalType string

const (
	JournalOperational JournalType = "OPERATIONAL"
	JournalAdjustment  JournalType = "ADJUSTMENT"
	JournalAccrual     JournalType = "ACCRUAL"
	JournalReversal    JournalType = "REVERSAL"
	JournalClosing     JournalType = "CLOSING"
	JournalOpening     JournalType = "OPENING"
	JournalTransfer    JournalType = "TRANSFER"
	JournalTax         JournalType = "TAX"
)

// Journal is the logical double-entry record for one economic event:
// exactly one debited account and one credited account, equal amount.
// Creating a journal fans out into two ledger entries.
type Journal struct {
	JournalID       string          `json:"journalID"`       // Primary Key (UUID)
	ReferenceNumber string          `json:"referenceNumber"` // JRN{YYYYMMDD}{6-digit seq}
	AccountDebited  string          `json:"accountDebited"`
	AccountCredited string          `json:"accountCredited"` // Must differ from AccountDebited
	Amount          decimal.Decimal `json:"amount"`          // Positive; identical on both ledger rows
	CurrencyCode    string          `json:"currencyCode"`
	ExchangeRate    decimal.Decimal `json:"exchangeRate"` // 6dp, 1 for base currency
	JournalType     JournalType     `json:"journalType"`
	Status          JournalStatus   `json:"status"`
	Description     string          `json:"description"`
	PostingDate     time.Time       `json:"postingDate"`
	ValueDate       time.Time       `json:"valueDate"`
	ApprovedBy      *string         `json:"approvedBy,omitempty"`
	ApprovedAt      *time.Time      `json:"approvedAt,omitempty"`
	RejectionReason string          `json:"rejectionReason,omitempty"`
	AuditFields
	// Entries holds the two ledger rows when loaded; often fetched separately.
	Entries []LedgerEntry `json:"entries,omitempty"`
}

// CanTransitionTo enforces the journal state machine:
// PENDING -> {APPROVED -> POSTED | REJECTED}.
func (j *Journal) CanTransitionTo(next JournalStatus) bool {
	switch j.Status {
	case JournalPending:
		return next == JournalApproved || next == JournalRejected
	case JournalApproved:
		return next == JournalPosted
	default:
		return false
	}
}
