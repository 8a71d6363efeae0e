package mapping

import (
	"github.com/hudumabill/ledger_backend/internal/core/domain"
	"github.com/hudumabill/ledger_backend/internal/models"
)

// ToModelTransaction converts a domain.Transaction to its persistence shape.
func ToModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID:     d.TransactionID,
		TransactionCode:   d.TransactionCode,
		PartyA:            d.PartyA,
		PartyB:            d.PartyB,
		Channel:           string(d.Channel),
		Aggregator:        string(d.Aggregator),
		Amount:            d.Amount,
		CurrencyCode:      d.CurrencyCode,
		Status:            int(d.Status),
		ExternalReference: d.ExternalReference,
		ResponsePayload:   d.ResponsePayload,
		CompletedAt:       d.CompletedAt,
		AuditFields:       ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTransaction converts a models.Transaction back to the domain shape.
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID:     m.TransactionID,
		TransactionCode:   m.TransactionCode,
		PartyA:            m.PartyA,
		PartyB:            m.PartyB,
		Channel:           domain.TransactionChannel(m.Channel),
		Aggregator:        domain.TransactionAggregator(m.Aggregator),
		Amount:            m.Amount,
		CurrencyCode:      m.CurrencyCode,
		Status:            domain.TransactionStatus(m.Status),
		ExternalReference: m.ExternalReference,
		ResponsePayload:   m.ResponsePayload,
		CompletedAt:       m.CompletedAt,
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainTransactionSlice converts a slice of transaction models.
func ToDomainTransactionSlice(ms []models.Transaction) []domain.Transaction {
	txns := make([]domain.Transaction, len(ms))
	for i, m := range ms {
		txns[i] = ToDomainTransaction(m)
	}
	return txns
}
