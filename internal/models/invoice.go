package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// BillingDocument is the persistence shape of an invoice or receipt.
type BillingDocument struct {
	DocumentID     string          `db:"document_id"`
	DocumentNumber string          `db:"document_number"`
	Kind           string          `db:"kind"`
	CustomerRef    string          `db:"customer_ref"`
	Description    string          `db:"description"`
	CurrencyCode   string          `db:"currency_code"`
	Payable        decimal.Decimal `db:"payable"`
	Discount       decimal.Decimal `db:"discount"`
	TaxRate        decimal.Decimal `db:"tax_rate"`
	TotalWithTax   decimal.Decimal `db:"total_with_tax"`
	Paid           decimal.Decimal `db:"paid"`
	Balance        decimal.Decimal `db:"balance"`
	Status         string          `db:"status"`
	DueAt          *time.Time      `db:"due_at"`
	PaidAt         *time.Time      `db:"paid_at"`
	AuditFields
}
