package dto

import "github.com/hudumabill/ledger_backend/internal/core/domain"

// CreateCurrencyRequest registers a currency for use on accounts and wallets.
type CreateCurrencyRequest struct {
	CurrencyCode  string `json:"currencyCode" binding:"required,len=3"`
	Symbol        string `json:"symbol" binding:"required"`
	Name          string `json:"name" binding:"required"`
	DecimalPlaces int32  `json:"decimalPlaces" binding:"gte=0,lte=8"`
}

// CurrencyResponse defines the data returned for a currency.
type CurrencyResponse struct {
	CurrencyCode  string `json:"currencyCode"`
	Symbol        string `json:"symbol"`
	Name          string `json:"name"`
	DecimalPlaces int32  `json:"decimalPlaces"`
}

// ToCurrencyResponse converts a domain.Currency to its response DTO.
func ToCurrencyResponse(c *domain.Currency) CurrencyResponse {
	return CurrencyResponse{
		CurrencyCode:  c.CurrencyCode,
		Symbol:        c.Symbol,
		Name:          c.Name,
		DecimalPlaces: c.DecimalPlaces,
	}
}
