package mapping

import (
	"github.com/hudumabill/ledger_backend/internal/core/domain"
	"github.com/hudumabill/ledger_backend/internal/models"
)

// ToModelBillingDocument converts a domain.BillingDocument to its persistence shape.
func ToModelBillingDocument(d domain.BillingDocument) models.BillingDocument {
	return models.BillingDocument{
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
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainBillingDocument converts a models.BillingDocument back to the domain shape.
func ToDomainBillingDocument(m models.BillingDocument) domain.BillingDocument {
	return domain.BillingDocument{
		DocumentID:     m.DocumentID,
		DocumentNumber: m.DocumentNumber,
		Kind:           domain.DocumentKind(m.Kind),
		CustomerRef:    m.CustomerRef,
		Description:    m.Description,
		CurrencyCode:   m.CurrencyCode,
		Payable:        m.Payable,
		Discount:       m.Discount,
		TaxRate:        m.TaxRate,
		TotalWithTax:   m.TotalWithTax,
		Paid:           m.Paid,
		Balance:        m.Balance,
		Status:         domain.DocumentStatus(m.Status),
		DueAt:          m.DueAt,
		PaidAt:         m.PaidAt,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}
