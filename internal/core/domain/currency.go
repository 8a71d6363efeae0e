package domain

// Currency represents a supported currency in the domain.
type Currency struct {
	CurrencyCode  string `json:"currencyCode"` // Primary Key (e.g., "KES")
	Symbol        string `json:"symbol"`       // e.g., "KSh"
	Name          string `json:"name"`         // e.g., "Kenyan Shilling"
	DecimalPlaces int32  `json:"decimalPlaces"`
	AuditFields
}
