package repositories

import (
	"context"

	"github.com/hudumabill/ledger_backend/internal/core/domain"
)

// CurrencyReader defines read operations against the currency reference table.
type CurrencyReader interface {
	// FindCurrencyByCode retrieves one currency by its uppercase ISO code.
	FindCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error)

	ListCurrencies(ctx context.Context) ([]domain.Currency, error)
}

// CurrencyWriter defines write operations against the currency reference table.
type CurrencyWriter interface {
	SaveCurrency(ctx context.Context, currency domain.Currency) error
}

// CurrencyRepositoryFacade combines all currency repository interfaces.
type CurrencyRepositoryFacade interface {
	CurrencyReader
	CurrencyWriter
}
