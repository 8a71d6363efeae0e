package dto

import (
	"time"

	"github.com/hudumabill/ledger_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RecordTransactionRequest defines the payload for recording an external
// payment/settlement event.
type RecordTransactionRequest struct {
	PartyA            string          `json:"partyA" binding:"required"`
	PartyB            string          `json:"partyB" binding:"required"`
	Channel           string          `json:"channel" binding:"required,oneof=C2B B2C B2B"`
	Aggregator        string          `json:"aggregator" binding:"required,oneof=MPESA TIGOPESA AIRTEL_MONEY HALOPESA BANK CASH CRYPTO"`
	Amount            decimal.Decimal `json:"amount" binding:"required"`
	CurrencyCode      string          `json:"currencyCode" binding:"required,len=3"`
	ExternalReference string          `json:"externalReference"`
}

// TransitionTransactionRequest moves a transaction along its lifecycle.
type TransitionTransactionRequest struct {
	Status          int    `json:"status" binding:"required"`
	ResponsePayload string `json:"responsePayload"`
}

// TransactionResponse defines the data returned for a transaction.
type TransactionResponse struct {
	TransactionID     string          `json:"transactionID"`
	TransactionCode   string          `json:"transactionCode"`
	PartyA            string          `json:"partyA"`
	PartyB            string          `json:"partyB"`
	Channel           string          `json:"channel"`
	Aggregator        string          `json:"aggregator"`
	Amount            decimal.Decimal `json:"amount"`
	CurrencyCode      string          `json:"currencyCode"`
	Status            int             `json:"status"`
	StatusLabel       string          `json:"statusLabel"`
	ExternalReference string          `json:"externalReference,omitempty"`
	CompletedAt       *time.Time      `json:"completedAt,omitempty"`
	CreatedAt         time.Time       `json:"createdAt"`
}

// ListTransactionsParams holds filtering and pagination for transaction listing.
type ListTransactionsParams struct {
	Limit     int     `form:"limit"`
	NextToken *string `form:"nextToken"`
	Status    *int    `form:"status"`
}

// ListTransactionsResponse is the paginated transaction listing.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    *string               `json:"nextToken,omitempty"`
}

// ToTransactionResponse converts a domain.Transaction to its response DTO.
func ToTransactionResponse(t *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID:     t.TransactionID,
		TransactionCode:   t.TransactionCode,
		PartyA:            t.PartyA,
		PartyB:            t.PartyB,
		Channel:           string(t.Channel),
		Aggregator:        string(t.Aggregator),
		Amount:            t.Amount,
		CurrencyCode:      t.CurrencyCode,
		Status:            int(t.Status),
		StatusLabel:       t.Status.Label(),
		ExternalReference: t.ExternalReference,
		CompletedAt:       t.CompletedAt,
		CreatedAt:         t.CreatedAt,
	}
}

// ToTransactionResponses converts a slice of domain transactions.
func ToTransactionResponses(txns []domain.Transaction) []TransactionResponse {
	responses := make([]TransactionResponse, len(txns))
	for i := range txns {
		responses[i] = ToTransactionResponse(&txns[i])
	}
	return responses
}
