package mapping

import (
	"github.com/hudumabill/ledger_backend/internal/core/domain"
	"github.com/hudumabill/ledger_backend/internal/models"
)

// ToModelLedgerEntry converts a domain.LedgerEntry to its persistence shape.
func ToModelLedgerEntry(d domain.LedgerEntry) models.LedgerEntry {
	return models.LedgerEntry{
		EntryID:         d.EntryID,
		ReferenceNumber: d.ReferenceNumber,
		JournalID:       d.JournalID,
		TransactionID:   d.TransactionID,
		AccountID:       d.AccountID,
		EntryType:       models.EntryType(d.EntryType),
		EntryCategory:   string(d.EntryCategory),
		Amount:          d.Amount,
		Balance:         d.Balance,
		IsReconciled:    d.IsReconciled,
		PostingDate:     d.PostingDate,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainLedgerEntry converts a models.LedgerEntry back to the domain shape.
func ToDomainLedgerEntry(m models.LedgerEntry) domain.LedgerEntry {
	return domain.LedgerEntry{
		EntryID:         m.EntryID,
		ReferenceNumber: m.ReferenceNumber,
		JournalID:       m.JournalID,
		TransactionID:   m.TransactionID,
		AccountID:       m.AccountID,
		EntryType:       domain.EntryType(m.EntryType),
		EntryCategory:   domain.EntryCategory(m.EntryCategory),
		Amount:          m.Amount,
		Balance:         m.Balance,
		IsReconciled:    m.IsReconciled,
		PostingDate:     m.PostingDate,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainLedgerEntrySlice converts a slice of ledger entry models.
func ToDomainLedgerEntrySlice(ms []models.LedgerEntry) []domain.LedgerEntry {
	entries := make([]domain.LedgerEntry, len(ms))
	for i, m := range ms {
		entries[i] = ToDomainLedgerEntry(m)
	}
	return entries
}
