package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is the persistence shape of an external payment/settlement
// event. Status values mirror domain.TransactionStatus.
type Transaction struct {
	TransactionID     string          `db:"transaction_id"`
	TransactionCode   string          `db:"transaction_code"`
	PartyA            string          `db:"party_a"`
	PartyB            string          `db:"party_b"`
	Channel           string          `db:"transaction_channel"`
	Aggregator        string          `db:"transaction_aggregator"`
	Amount            decimal.Decimal `db:"transaction_amount"`
	CurrencyCode      string          `db:"currency_code"`
	Status            int             `db:"status"`
	ExternalReference string          `db:"external_reference"`
	ResponsePayload   string          `db:"response_payload"`
	CompletedAt       *time.Time      `db:"completed_at"`
	AuditFields
}
