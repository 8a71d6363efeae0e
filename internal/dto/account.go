package dto

import (
	"time"

	"github.com/hudumabill/ledger_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest defines the payload for creating an account.
type CreateAccountRequest struct {
	Name            string          `json:"name" binding:"required"`
	AccountType     string          `json:"accountType" binding:"required,oneof=ASSET LIABILITY EQUITY INCOME EXPENSE"`
	AccountSubtype  string          `json:"accountSubtype" binding:"omitempty,oneof=CASH BANK RECEIVABLE PAYABLE TAX SALARY UTILITY"`
	CurrencyCode    string          `json:"currencyCode" binding:"required,len=3"`
	OpeningBalance  decimal.Decimal `json:"openingBalance"`
	CreditLimit     decimal.Decimal `json:"creditLimit"`
	ParentAccountID *string         `json:"parentAccountID,omitempty"`
	Description     string          `json:"description"`
}

// UpdateAccountRequest defines the mutable fields of an account.
type UpdateAccountRequest struct {
	Name        *string          `json:"name,omitempty"`
	Description *string          `json:"description,omitempty"`
	CreditLimit *decimal.Decimal `json:"creditLimit,omitempty"`
	Status      *string          `json:"status,omitempty" binding:"omitempty,oneof=ACTIVE INACTIVE SUSPENDED"`
}

// CloseAccountRequest carries the closure reason.
type CloseAccountRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID        string          `json:"accountID"`
	AccountNumber    string          `json:"accountNumber"`
	Name             string          `json:"name"`
	AccountType      string          `json:"accountType"`
	AccountSubtype   string          `json:"accountSubtype,omitempty"`
	CurrencyCode     string          `json:"currencyCode"`
	ParentAccountID  string          `json:"parentAccountID,omitempty"`
	Description      string          `json:"description,omitempty"`
	OpeningBalance   decimal.Decimal `json:"openingBalance"`
	CurrentBalance   decimal.Decimal `json:"currentBalance"`
	CreditLimit      decimal.Decimal `json:"creditLimit"`
	Status           string          `json:"status"`
	LastReconciledAt *time.Time      `json:"lastReconciledAt,omitempty"`
	CreatedAt        time.Time       `json:"createdAt"`
}

// ListAccountsParams holds cursor pagination parameters for account listing.
type ListAccountsParams struct {
	Limit     int     `form:"limit"`
	NextToken *string `form:"nextToken"`
}

// ListAccountsResponse is the paginated account listing.
type ListAccountsResponse struct {
	Accounts  []AccountResponse `json:"accounts"`
	NextToken *string           `json:"nextToken,omitempty"`
}

// ReconciliationResponse is the outcome of a reconciliation run.
type ReconciliationResponse struct {
	AccountID             string          `json:"accountID"`
	PreviousBalance       decimal.Decimal `json:"previousBalance"`
	CalculatedBalance     decimal.Decimal `json:"calculatedBalance"`
	Discrepancy           decimal.Decimal `json:"discrepancy"`
	TransactionsProcessed int             `json:"transactionsProcessed"`
	ReconciledAt          time.Time       `json:"reconciledAt"`
}

// AccountBalanceResponse aggregates posted ledger activity for an account.
type AccountBalanceResponse struct {
	AccountID string          `json:"accountID"`
	Debits    decimal.Decimal `json:"debits"`
	Credits   decimal.Decimal `json:"credits"`
	Balance   decimal.Decimal `json:"balance"`
	AsOf      *time.Time      `json:"asOf,omitempty"`
}

// ToAccountResponse converts a domain.Account to its response DTO.
func ToAccountResponse(a *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:        a.AccountID,
		AccountNumber:    a.AccountNumber,
		Name:             a.Name,
		AccountType:      string(a.AccountType),
		AccountSubtype:   string(a.AccountSubtype),
		CurrencyCode:     a.CurrencyCode,
		ParentAccountID:  a.ParentAccountID,
		Description:      a.Description,
		OpeningBalance:   a.OpeningBalance,
		CurrentBalance:   a.CurrentBalance,
		CreditLimit:      a.CreditLimit,
		Status:           string(a.Status),
		LastReconciledAt: a.LastReconciledAt,
		CreatedAt:        a.CreatedAt,
	}
}

// ToAccountBalanceResponse converts an aggregated balance to its DTO.
func ToAccountBalanceResponse(b *domain.AccountBalance) AccountBalanceResponse {
	return AccountBalanceResponse{
		AccountID: b.AccountID,
		Debits:    b.Debits,
		Credits:   b.Credits,
		Balance:   b.Balance,
		AsOf:      b.AsOf,
	}
}

// ToReconciliationResponse converts a reconciliation result to its DTO.
func ToReconciliationResponse(r *domain.ReconciliationResult) ReconciliationResponse {
	return ReconciliationResponse{
		AccountID:             r.AccountID,
		PreviousBalance:       r.PreviousBalance,
		CalculatedBalance:     r.CalculatedBalance,
		Discrepancy:           r.Discrepancy,
		TransactionsProcessed: r.TransactionsProcessed,
		ReconciledAt:          r.ReconciledAt,
	}
}
