package dto

import (
	"time"

	"github.com/hudumabill/ledger_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateWalletRequest defines the payload for opening a wallet.
type CreateWalletRequest struct {
	UserID           string           `json:"userID" binding:"required"`
	CurrencyCode     string           `json:"currencyCode" binding:"required,len=3"`
	DailyLimit       *decimal.Decimal `json:"dailyLimit,omitempty"`
	TransactionLimit *decimal.Decimal `json:"transactionLimit,omitempty"`
	MonthlyLimit     *decimal.Decimal `json:"monthlyLimit,omitempty"`
}

// WalletMutationRequest is the shared payload for credits and debits.
type WalletMutationRequest struct {
	Amount      decimal.Decimal   `json:"amount" binding:"required,dpositive"`
	Description string            `json:"description" binding:"required"`
	Metadata    map[string]string `json:"metadata,omitempty"`
	Hold        bool              `json:"hold"` // Debit only: reserve instead of spending
}

// HoldAmountRequest releases or captures part of the held balance.
type HoldAmountRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required,dpositive"`
}

// TransferRequest moves funds between two wallets atomically.
type TransferRequest struct {
	RecipientWalletID string            `json:"recipientWalletID" binding:"required"`
	Amount            decimal.Decimal   `json:"amount" binding:"required,dpositive"`
	Description       string            `json:"description" binding:"required"`
	Metadata          map[string]string `json:"metadata,omitempty"`
}

// LockWalletRequest suspends wallet activity, optionally until a deadline.
type LockWalletRequest struct {
	Reason      string     `json:"reason" binding:"required"`
	LockedUntil *time.Time `json:"lockedUntil,omitempty"`
}

// UpdateWalletLimitsRequest adjusts the spend controls on a wallet.
type UpdateWalletLimitsRequest struct {
	DailyLimit       *decimal.Decimal `json:"dailyLimit,omitempty"`
	TransactionLimit *decimal.Decimal `json:"transactionLimit,omitempty"`
	MonthlyLimit     *decimal.Decimal `json:"monthlyLimit,omitempty"`
}

// WalletResponse defines the data returned for a wallet.
type WalletResponse struct {
	WalletID          string           `json:"walletID"`
	WalletNumber      string           `json:"walletNumber"`
	UserID            string           `json:"userID"`
	CurrencyCode      string           `json:"currencyCode"`
	AvailableBalance  decimal.Decimal  `json:"availableBalance"`
	PendingBalance    decimal.Decimal  `json:"pendingBalance"`
	HoldBalance       decimal.Decimal  `json:"holdBalance"`
	TotalCredit       decimal.Decimal  `json:"totalCredit"`
	TotalDebit        decimal.Decimal  `json:"totalDebit"`
	DailyLimit        *decimal.Decimal `json:"dailyLimit,omitempty"`
	TransactionLimit  *decimal.Decimal `json:"transactionLimit,omitempty"`
	MonthlyLimit      *decimal.Decimal `json:"monthlyLimit,omitempty"`
	Status            string           `json:"status"`
	IsLocked          bool             `json:"isLocked"`
	LockReason        string           `json:"lockReason,omitempty"`
	LockedUntil       *time.Time       `json:"lockedUntil,omitempty"`
	LastTransactionAt *time.Time       `json:"lastTransactionAt,omitempty"`
	CreatedAt         time.Time        `json:"createdAt"`
}

// WalletTransactionResponse defines one wallet audit-trail row.
type WalletTransactionResponse struct {
	WalletTransactionID  string            `json:"walletTransactionID"`
	WalletID             string            `json:"walletID"`
	Type                 string            `json:"type"`
	Amount               decimal.Decimal   `json:"amount"`
	BalanceAfter         decimal.Decimal   `json:"balanceAfter"`
	Status               string            `json:"status"`
	IsHeld               bool              `json:"isHeld"`
	Description          string            `json:"description"`
	Metadata             map[string]string `json:"metadata,omitempty"`
	CounterpartyWalletID string            `json:"counterpartyWalletID,omitempty"`
	RelatedTransactionID string            `json:"relatedTransactionID,omitempty"`
	CreatedAt            time.Time         `json:"createdAt"`
}

// TransferResponse returns both legs of a completed transfer.
type TransferResponse struct {
	SenderTransaction    WalletTransactionResponse `json:"senderTransaction"`
	RecipientTransaction WalletTransactionResponse `json:"recipientTransaction"`
}

// ListWalletTransactionsParams holds pagination for the wallet trail.
type ListWalletTransactionsParams struct {
	Limit     int     `form:"limit"`
	NextToken *string `form:"nextToken"`
}

// ListWalletTransactionsResponse is the paginated wallet trail.
type ListWalletTransactionsResponse struct {
	Transactions []WalletTransactionResponse `json:"transactions"`
	NextToken    *string                     `json:"nextToken,omitempty"`
}

// WalletReconciliationResponse reports the wallet balance replay outcome.
type WalletReconciliationResponse struct {
	WalletID              string          `json:"walletID"`
	PreviousAvailable     decimal.Decimal `json:"previousAvailable"`
	CalculatedAvailable   decimal.Decimal `json:"calculatedAvailable"`
	Discrepancy           decimal.Decimal `json:"discrepancy"`
	TransactionsProcessed int             `json:"transactionsProcessed"`
	ReconciledAt          time.Time       `json:"reconciledAt"`
}

// ToWalletResponse converts a domain.Wallet to its response DTO.
func ToWalletResponse(w *domain.Wallet) WalletResponse {
	return WalletResponse{
		WalletID:          w.WalletID,
		WalletNumber:      w.WalletNumber,
		UserID:            w.UserID,
		CurrencyCode:      w.CurrencyCode,
		AvailableBalance:  w.AvailableBalance,
		PendingBalance:    w.PendingBalance,
		HoldBalance:       w.HoldBalance,
		TotalCredit:       w.TotalCredit,
		TotalDebit:        w.TotalDebit,
		DailyLimit:        w.DailyLimit,
		TransactionLimit:  w.TransactionLimit,
		MonthlyLimit:      w.MonthlyLimit,
		Status:            string(w.Status),
		IsLocked:          w.IsLocked,
		LockReason:        w.LockReason,
		LockedUntil:       w.LockedUntil,
		LastTransactionAt: w.LastTransactionAt,
		CreatedAt:         w.CreatedAt,
	}
}

// ToWalletTransactionResponse converts a domain.WalletTransaction to its DTO.
func ToWalletTransactionResponse(t *domain.WalletTransaction) WalletTransactionResponse {
	return WalletTransactionResponse{
		WalletTransactionID:  t.WalletTransactionID,
		WalletID:             t.WalletID,
		Type:                 string(t.Type),
		Amount:               t.Amount,
		BalanceAfter:         t.BalanceAfter,
		Status:               string(t.Status),
		IsHeld:               t.IsHeld,
		Description:          t.Description,
		Metadata:             t.Metadata,
		CounterpartyWalletID: t.CounterpartyWalletID,
		RelatedTransactionID: t.RelatedTransactionID,
		CreatedAt:            t.CreatedAt,
	}
}

// ToWalletTransactionResponses converts a slice of wallet transactions.
func ToWalletTransactionResponses(txns []domain.WalletTransaction) []WalletTransactionResponse {
	responses := make([]WalletTransactionResponse, len(txns))
	for i := range txns {
		responses[i] = ToWalletTransactionResponse(&txns[i])
	}
	return responses
}

// ToWalletReconciliationResponse converts a wallet replay result to its DTO.
func ToWalletReconciliationResponse(r *domain.WalletReconciliationResult) WalletReconciliationResponse {
	return WalletReconciliationResponse{
		WalletID:              r.WalletID,
		PreviousAvailable:     r.PreviousAvailable,
		CalculatedAvailable:   r.CalculatedAvailable,
		Discrepancy:           r.Discrepancy,
		TransactionsProcessed: r.TransactionsProcessed,
		ReconciledAt:          r.ReconciledAt,
	}
}
