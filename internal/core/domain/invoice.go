package domain

import (
	"time"

	"github.com/hudumabill/ledger_backend/internal/apperrors"
	"github.com/shopspring/decimal"
)

// DocumentKind distinguishes the two billable document flavours, which
// share all payment-application mechanics.
type DocumentKind string

const (
	KindInvoice DocumentKind = "INVOICE"
	KindReceipt DocumentKind = "RECEIPT"
)

// DocumentStatus is the billing document lifecycle.
type DocumentStatus string

const (
	DocPending    DocumentStatus = "PENDING"
	DocSent       DocumentStatus = "SENT"
	DocViewed     DocumentStatus = "VIEWED"
	DocProcessing DocumentStatus = "PROCESSING"
	DocProcessed  DocumentStatus = "PROCESSED"
	DocPartial    DocumentStatus = "PARTIAL"
	DocSettled    DocumentStatus = "SETTLED"
	DocOverdue    DocumentStatus = "OVERDUE"
	DocDisputed   DocumentStatus = "DISPUTED"
	DocCancelled  DocumentStatus = "CANCELLED"
	DocRefunded   DocumentStatus = "REFUNDED"
)

// terminalDocumentStatuses are exempt from overdue escalation.
var terminalDocumentStatuses = map[DocumentStatus]struct{}{
	DocSettled:   {},
	DocCancelled: {},
	DocRefunded:  {},
}

// BillingDocument is an invoice or receipt tracking payable amount, tax,
// discount, paid amount and the derived balance/status.
type BillingDocument struct {
	DocumentID      string          `json:"documentID"` // Primary Key (UUID)
	DocumentNumber  string          `json:"documentNumber"` // INV…/RCT…{YYYYMMDD}{6-digit seq}
	Kind            DocumentKind    `json:"kind"`
	CustomerRef     string          `json:"customerRef"` // External citizen/resident reference
	Description     string          `json:"description"`
	CurrencyCode    string          `json:"currencyCode"`
	Payable         decimal.Decimal `json:"payable"`
	Discount        decimal.Decimal `json:"discount"`
	TaxRate         decimal.Decimal `json:"taxRate"` // Percentage, e.g. 18 for 18%
	TotalWithTax    decimal.Decimal `json:"totalWithTax"`
	Paid            decimal.Decimal `json:"paid"`
	Balance         decimal.Decimal `json:"balance"`
	Status          DocumentStatus  `json:"status"`
	DueAt           *time.Time      `json:"dueAt,omitempty"`
	PaidAt          *time.Time      `json:"paidAt,omitempty"`
	AuditFields
}

var oneHundred = decimal.NewFromInt(100)

// CalculateTotalWithTax derives the tax-inclusive total:
// round((payable - discount) * (1 + taxRate/100), 2). Must run whenever
// payable/discount/taxRate change and before any balance derivation.
func (d *BillingDocument) CalculateTotalWithTax() decimal.Decimal {
	net := d.Payable.Sub(d.Discount)
	d.TotalWithTax = net.Mul(decimal.NewFromInt(1).Add(d.TaxRate.Div(oneHundred))).Round(2)
	return d.TotalWithTax
}

// RecalculateBalance refreshes the outstanding balance, floored at zero.
func (d *BillingDocument) RecalculateBalance() decimal.Decimal {
	balance := d.TotalWithTax.Sub(d.Paid)
	if balance.IsNegative() {
		balance = decimal.Zero
	}
	d.Balance = balance
	return d.Balance
}

// ApplyPayment records a payment against the document: increments paid,
// recomputes the balance and escalates status to SETTLED (stamping PaidAt)
// or PARTIAL. The caller persists the mutation and the transaction record
// atomically.
func (d *BillingDocument) ApplyPayment(amount decimal.Decimal, now time.Time) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return apperrors.ErrInvalidAmount
	}
	d.Paid = d.Paid.Add(amount)
	d.RecalculateBalance()
	if d.Balance.IsZero() {
		d.Status = DocSettled
		paidAt := now
		d.PaidAt = &paidAt
	} else if d.Paid.IsPositive() {
		d.Status = DocPartial
	}
	return nil
}

// IsTerminal reports whether the document has reached a terminal status.
func (d *BillingDocument) IsTerminal() bool {
	_, ok := terminalDocumentStatuses[d.Status]
	return ok
}

// EscalateIfOverdue sets status to OVERDUE when the due date has passed
// and the document is not terminal. Returns true if the status changed.
func (d *BillingDocument) EscalateIfOverdue(now time.Time) bool {
	if d.DueAt == nil || d.IsTerminal() || d.Status == DocOverdue {
		return false
	}
	if d.DueAt.Before(now) {
		d.Status = DocOverdue
		return true
	}
	return false
}
