package dto

import (
	"time"

	"github.com/hudumabill/ledger_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LedgerEntryResponse defines the data returned for a ledger entry.
type LedgerEntryResponse struct {
	EntryID         string          `json:"entryID"`
	ReferenceNumber string          `json:"referenceNumber"`
	JournalID       string          `json:"journalID"`
	TransactionID   string          `json:"transactionID,omitempty"`
	AccountID       string          `json:"accountID"`
	EntryType       string          `json:"entryType"`
	EntryCategory   string          `json:"entryCategory"`
	Amount          decimal.Decimal `json:"amount"`
	Balance         decimal.Decimal `json:"balance"`
	IsReconciled    bool            `json:"isReconciled"`
	PostingDate     time.Time       `json:"postingDate"`
}

// ListLedgerEntriesParams holds pagination for ledger entry listing.
type ListLedgerEntriesParams struct {
	Limit     int     `form:"limit"`
	NextToken *string `form:"nextToken"`
}

// ListLedgerEntriesResponse is the paginated ledger entry listing.
type ListLedgerEntriesResponse struct {
	Entries   []LedgerEntryResponse `json:"entries"`
	NextToken *string               `json:"nextToken,omitempty"`
}

// MarkReconciledRequest flags a batch of ledger entries as reconciled.
type MarkReconciledRequest struct {
	EntryIDs []string `json:"entryIDs" binding:"required,min=1"`
}

// ToLedgerEntryResponse converts a domain.LedgerEntry to its response DTO.
func ToLedgerEntryResponse(e *domain.LedgerEntry) LedgerEntryResponse {
	return LedgerEntryResponse{
		EntryID:         e.EntryID,
		ReferenceNumber: e.ReferenceNumber,
		JournalID:       e.JournalID,
		TransactionID:   e.TransactionID,
		AccountID:       e.AccountID,
		EntryType:       string(e.EntryType),
		EntryCategory:   string(e.EntryCategory),
		Amount:          e.Amount,
		Balance:         e.Balance,
		IsReconciled:    e.IsReconciled,
		PostingDate:     e.PostingDate,
	}
}

// ToLedgerEntryResponses converts a slice of ledger entries.
func ToLedgerEntryResponses(entries []domain.LedgerEntry) []LedgerEntryResponse {
	responses := make([]LedgerEntryResponse, len(entries))
	for i := range entries {
		responses[i] = ToLedgerEntryResponse(&entries[i])
	}
	return responses
}
