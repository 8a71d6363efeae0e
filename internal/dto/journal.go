package dto

import (
	"time"

	"github.com/hudumabill/ledger_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateJournalRequest defines the payload for posting a journal.
// AccountDebited and AccountCredited must differ; the service rejects
// identical accounts before any row is written.
type CreateJournalRequest struct {
	AccountDebited  string          `json:"accountDebited" binding:"required"`
	AccountCredited string          `json:"accountCredited" binding:"required"`
	Amount          decimal.Decimal `json:"amount" binding:"required,dpositive"`
	CurrencyCode    string          `json:"currencyCode" binding:"required,len=3"`
	ExchangeRate    decimal.Decimal `json:"exchangeRate"`
	JournalType     string          `json:"journalType" binding:"required,oneof=OPERATIONAL ADJUSTMENT ACCRUAL REVERSAL CLOSING OPENING TRANSFER TAX"`
	Description     string          `json:"description" binding:"required"`
	PostingDate     time.Time       `json:"postingDate" binding:"required"`
	ValueDate       *time.Time      `json:"valueDate,omitempty"`
	TransactionID   string          `json:"transactionID,omitempty"` // Optional external settlement link
}

// RejectJournalRequest carries the rejection reason.
type RejectJournalRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// JournalResponse defines the data returned for a journal.
type JournalResponse struct {
	JournalID       string                `json:"journalID"`
	ReferenceNumber string                `json:"referenceNumber"`
	AccountDebited  string                `json:"accountDebited"`
	AccountCredited string                `json:"accountCredited"`
	Amount          decimal.Decimal       `json:"amount"`
	CurrencyCode    string                `json:"currencyCode"`
	ExchangeRate    decimal.Decimal       `json:"exchangeRate"`
	JournalType     string                `json:"journalType"`
	Status          string                `json:"status"`
	Description     string                `json:"description"`
	PostingDate     time.Time             `json:"postingDate"`
	ValueDate       time.Time             `json:"valueDate"`
	ApprovedBy      *string               `json:"approvedBy,omitempty"`
	ApprovedAt      *time.Time            `json:"approvedAt,omitempty"`
	CreatedAt       time.Time             `json:"createdAt"`
	CreatedBy       string                `json:"createdBy"`
	Entries         []LedgerEntryResponse `json:"entries,omitempty"`
}

// ListJournalsParams holds filtering and pagination for journal listing.
type ListJournalsParams struct {
	Limit          int     `form:"limit"`
	NextToken      *string `form:"nextToken"`
	Status         *string `form:"status"`
	JournalType    *string `form:"journalType"`
	IncludeEntries bool    `form:"includeEntries"`
}

// ListJournalsResponse is the paginated journal listing.
type ListJournalsResponse struct {
	Journals  []JournalResponse `json:"journals"`
	NextToken *string           `json:"nextToken,omitempty"`
}

// ToJournalResponse converts a domain.Journal to its response DTO.
func ToJournalResponse(j *domain.Journal) JournalResponse {
	resp := JournalResponse{
		JournalID:       j.JournalID,
		ReferenceNumber: j.ReferenceNumber,
		AccountDebited:  j.AccountDebited,
		AccountCredited: j.AccountCredited,
		Amount:          j.Amount,
		CurrencyCode:    j.CurrencyCode,
		ExchangeRate:    j.ExchangeRate,
		JournalType:     string(j.JournalType),
		Status:          string(j.Status),
		Description:     j.Description,
		PostingDate:     j.PostingDate,
		ValueDate:       j.ValueDate,
		ApprovedBy:      j.ApprovedBy,
		ApprovedAt:      j.ApprovedAt,
		CreatedAt:       j.CreatedAt,
		CreatedBy:       j.CreatedBy,
	}
	if len(j.Entries) > 0 {
		resp.Entries = ToLedgerEntryResponses(j.Entries)
	}
	return resp
}
