package mapping

import (
	"github.com/hudumabill/ledger_backend/internal/core/domain"
	"github.com/hudumabill/ledger_backend/internal/models"
)

// ToModelCurrency converts a domain.Currency to its persistence shape.
func ToModelCurrency(d domain.Currency) models.Currency {
	return models.Currency{
		CurrencyCode:  d.CurrencyCode,
		Symbol:        d.Symbol,
		Name:          d.Name,
		DecimalPlaces: d.DecimalPlaces,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainCurrency converts a models.Currency back to the domain shape.
func ToDomainCurrency(m models.Currency) domain.Currency {
	return domain.Currency{
		CurrencyCode:  m.CurrencyCode,
		Symbol:        m.Symbol,
		Name:          m.Name,
		DecimalPlaces: m.DecimalPlaces,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}
