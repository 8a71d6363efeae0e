package dto

import (
	"time"

	"github.com/hudumabill/ledger_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateBillingDocumentRequest defines the payload for issuing an
// invoice or receipt.
type CreateBillingDocumentRequest struct {
	Kind         string          `json:"kind" binding:"required,oneof=INVOICE RECEIPT"`
	CustomerRef  string          `json:"customerRef" binding:"required"`
	Description  string          `json:"description" binding:"required"`
	CurrencyCode string          `json:"currencyCode" binding:"required,len=3"`
	Payable      decimal.Decimal `json:"payable" binding:"required"`
	Discount     decimal.Decimal `json:"discount"`
	TaxRate      decimal.Decimal `json:"taxRate"`
	DueAt        *time.Time      `json:"dueAt,omitempty"`
}

// ApplyPaymentRequest records a payment against a billing document.
type ApplyPaymentRequest struct {
	Amount            decimal.Decimal `json:"amount" binding:"required,dpositive"`
	Aggregator        string          `json:"aggregator" binding:"required,oneof=MPESA TIGOPESA AIRTEL_MONEY HALOPESA BANK CASH CRYPTO"`
	ExternalReference string          `json:"externalReference"`
}

// PayFromWalletRequest settles a billing document from a wallet balance.
type PayFromWalletRequest struct {
	WalletID string           `json:"walletID" binding:"required"`
	Amount   *decimal.Decimal `json:"amount,omitempty"` // nil pays the full outstanding balance
}

// BillingDocumentResponse defines the data returned for an invoice/receipt.
type BillingDocumentResponse struct {
	DocumentID     string          `json:"documentID"`
	DocumentNumber string          `json:"documentNumber"`
	Kind           string          `json:"kind"`
	CustomerRef    string          `json:"customerRef"`
	Description    string          `json:"description"`
	CurrencyCode   string          `json:"currencyCode"`
	Payable        decimal.Decimal `json:"payable"`
	Discount       decimal.Decimal `json:"discount"`
	TaxRate        decimal.Decimal `json:"taxRate"`
	TotalWithTax   decimal.Decimal `json:"totalWithTax"`
	Paid           decimal.Decimal `json:"paid"`
	Balance        decimal.Decimal `json:"balance"`
	Status         string          `json:"status"`
	DueAt          *time.Time      `json:"dueAt,omitempty"`
	PaidAt         *time.Time      `json:"paidAt,omitempty"`
	CreatedAt      time.Time       `json:"createdAt"`
}

// ListBillingDocumentsParams holds filtering and pagination for documents.
type ListBillingDocumentsParams struct {
	Limit       int     `form:"limit"`
	NextToken   *string `form:"nextToken"`
	Kind        *string `form:"kind"`
	Status      *string `form:"status"`
	CustomerRef *string `form:"customerRef"`
}

// ListBillingDocumentsResponse is the paginated document listing.
type ListBillingDocumentsResponse struct {
	Documents []BillingDocumentResponse `json:"documents"`
	NextToken *string                   `json:"nextToken,omitempty"`
}

// OverdueSweepResponse reports the result of an overdue escalation sweep.
type OverdueSweepResponse struct {
	DocumentsEscalated int64     `json:"documentsEscalated"`
	SweptAt            time.Time `json:"sweptAt"`
}

// ToBillingDocumentResponse converts a domain.BillingDocument to its DTO.
func ToBillingDocumentResponse(d *domain.BillingDocument) BillingDocumentResponse {
	return BillingDocumentResponse{
		DocumentID:     d.DocumentID,
		DocumentNumber: d.DocumentNumber,
		Kind:           string(d.Kind),
		CustomerRef:    d.CustomerRef,
		Description:    d.Description,
		CurrencyCode:   d.CurrencyCode,
		Payable:        d.Payable,
		Discount:       d.Discount,
		TaxRate:        d.TaxRate,
		TotalWithTax:   d.TotalWithTax,
		Paid:           d.Paid,
		Balance:        d.Balance,
		Status:         string(d.Status),
		DueAt:          d.DueAt,
		PaidAt:         d.PaidAt,
		CreatedAt:      d.CreatedAt,
	}
}
