package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionChannel is the direction of an external payment event.
type TransactionChannel string

const (
	ChannelC2B TransactionChannel = "C2B"
	ChannelB2C TransactionChannel = "B2C"
	ChannelB2B TransactionChannel = "B2B"
)

// TransactionAggregator identifies the settlement rail.
type TransactionAggregator string

const (
	AggregatorMpesa       TransactionAggregator = "MPESA"
	AggregatorTigoPesa    TransactionAggregator = "TIGOPESA"
	AggregatorAirtelMoney TransactionAggregator = "AIRTEL_MONEY"
	AggregatorHaloPesa    TransactionAggregator = "HALOPESA"
	AggregatorBank        TransactionAggregator = "BANK"
	AggregatorCash        TransactionAggregator = "CASH"
	AggregatorCrypto      TransactionAggregator = "CRYPTO"
)

// TransactionStatus is the numeric lifecycle of an external transaction.
// Transitions only move forward; RESOLVED is reachable only from DISPUTED.
type TransactionStatus int

const (
	TxnPending    TransactionStatus = 100
	TxnProcessing TransactionStatus = 200
	TxnProcessed  TransactionStatus = 300
	TxnRejected   TransactionStatus = 400
	TxnAccepted   TransactionStatus = 500
	TxnFailed     TransactionStatus = 600
	TxnCancelled  TransactionStatus = 700
	TxnRefunded   TransactionStatus = 800
	TxnDisputed   TransactionStatus = 900
	TxnResolved   TransactionStatus = 1000
)

// transactionStatusLabels is an exhaustive exact-match map. Labels are
// resolved by equality only; fuzzy/substring matching is a correctness bug.
var transactionStatusLabels = map[TransactionStatus]string{
	TxnPending:    "pending",
	TxnProcessing: "processing",
	TxnProcessed:  "processed",
	TxnRejected:   "rejected",
	TxnAccepted:   "accepted",
	TxnFailed:     "failed",
	TxnCancelled:  "cancelled",
	TxnRefunded:   "refunded",
	TxnDisputed:   "disputed",
	TxnResolved:   "resolved",
}

// transactionStatusTransitions enumerates the allowed forward edges.
var transactionStatusTransitions = map[TransactionStatus][]TransactionStatus{
	TxnPending:    {TxnProcessing, TxnCancelled},
	TxnProcessing: {TxnProcessed, TxnFailed},
	TxnProcessed:  {TxnRejected, TxnAccepted},
	TxnRejected:   {TxnFailed, TxnCancelled},
	TxnAccepted:   {TxnRefunded, TxnDisputed},
	TxnDisputed:   {TxnResolved},
}

// Label returns the human-readable status name, or "unknown".
func (s TransactionStatus) Label() string {
	if label, ok := transactionStatusLabels[s]; ok {
		return label
	}
	return "unknown"
}

// IsTerminal reports whether no further transitions are allowed from s.
func (s TransactionStatus) IsTerminal() bool {
	return len(transactionStatusTransitions[s]) == 0
}

// CanTransitionTo reports whether the status may move to next.
func (s TransactionStatus) CanTransitionTo(next TransactionStatus) bool {
	if next <= s {
		return false
	}
	for _, allowed := range transactionStatusTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Transaction is the external payment/settlement event referenced by
// journals, invoices and wallets. It carries channel/aggregator metadata
// and is immutable once accepted except for status and response metadata.
type Transaction struct {
	TransactionID     string                `json:"transactionID"` // Primary Key (UUID)
	TransactionCode   string                `json:"transactionCode"` // TXN{YYYYMMDD}{6-digit seq}
	PartyA            string                `json:"partyA"`
	PartyB            string                `json:"partyB"`
	Channel           TransactionChannel    `json:"channel"`
	Aggregator        TransactionAggregator `json:"aggregator"`
	Amount            decimal.Decimal       `json:"amount"`
	CurrencyCode      string                `json:"currencyCode"`
	Status            TransactionStatus     `json:"status"`
	ExternalReference string                `json:"externalReference,omitempty"`
	ResponsePayload   string                `json:"responsePayload,omitempty"` // Raw aggregator response
	CompletedAt       *time.Time            `json:"completedAt,omitempty"`
	AuditFields
}

// IsMutable reports whether non-status fields may still change.
// Once accepted, only status and response metadata move.
func (t *Transaction) IsMutable() bool {
	return t.Status < TxnAccepted
}
