package mapping

import (
	"github.com/hudumabill/ledger_backend/internal/core/domain"
	"github.com/hudumabill/ledger_backend/internal/models"
)

// ToModelJournal converts a domain.Journal to its persistence shape.
func ToModelJournal(d domain.Journal) models.Journal {
	return models.Journal{
		JournalID:       d.JournalID,
		ReferenceNumber: d.ReferenceNumber,
		AccountDebited:  d.AccountDebited,
		AccountCredited: d.AccountCredited,
		Amount:          d.Amount,
		CurrencyCode:    d.CurrencyCode,
		ExchangeRate:    d.ExchangeRate,
		JournalType:     string(d.JournalType),
		Status:          models.JournalStatus(d.Status),
		Description:     d.Description,
		PostingDate:     d.PostingDate,
		ValueDate:       d.ValueDate,
		ApprovedBy:      d.ApprovedBy,
		ApprovedAt:      d.ApprovedAt,
		RejectionReason: d.RejectionReason,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournal converts a models.Journal back to the domain shape.
func ToDomainJournal(m models.Journal) domain.Journal {
	return domain.Journal{
		JournalID:       m.JournalID,
		ReferenceNumber: m.ReferenceNumber,
		AccountDebited:  m.AccountDebited,
		AccountCredited: m.AccountCredited,
		Amount:          m.Amount,
		CurrencyCode:    m.CurrencyCode,
		ExchangeRate:    m.ExchangeRate,
		JournalType:     domain.JournalType(m.JournalType),
		Status:          domain.JournalStatus(m.Status),
		Description:     m.Description,
		PostingDate:     m.PostingDate,
		ValueDate:       m.ValueDate,
		ApprovedBy:      m.ApprovedBy,
		ApprovedAt:      m.ApprovedAt,
		RejectionReason: m.RejectionReason,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}
