package mapping

import (
	"github.com/hudumabill/ledger_backend/internal/core/domain"
	"github.com/hudumabill/ledger_backend/internal/models"
)

// ToModelAccount converts a domain.Account to its persistence shape.
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountID:        d.AccountID,
		AccountNumber:    d.AccountNumber,
		Name:             d.Name,
		AccountType:      models.AccountType(d.AccountType),
		AccountSubtype:   string(d.AccountSubtype),
		CurrencyCode:     d.CurrencyCode,
		ParentAccountID:  d.ParentAccountID,
		Description:      d.Description,
		OpeningBalance:   d.OpeningBalance,
		CurrentBalance:   d.CurrentBalance,
		CreditLimit:      d.CreditLimit,
		Status:           string(d.Status),
		ClosedAt:         d.ClosedAt,
		ClosureReason:    d.ClosureReason,
		LastReconciledAt: d.LastReconciledAt,
		DeletedAt:        d.DeletedAt,
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAccount converts a models.Account back to the domain shape.
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:        m.AccountID,
		AccountNumber:    m.AccountNumber,
		Name:             m.Name,
		AccountType:      domain.AccountType(m.AccountType),
		AccountSubtype:   domain.AccountSubtype(m.AccountSubtype),
		CurrencyCode:     m.CurrencyCode,
		ParentAccountID:  m.ParentAccountID,
		Description:      m.Description,
		OpeningBalance:   m.OpeningBalance,
		CurrentBalance:   m.CurrentBalance,
		CreditLimit:      m.CreditLimit,
		Status:           domain.AccountStatus(m.Status),
		ClosedAt:         m.ClosedAt,
		ClosureReason:    m.ClosureReason,
		LastReconciledAt: m.LastReconciledAt,
		DeletedAt:        m.DeletedAt,
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
}
