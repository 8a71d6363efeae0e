package mapping

import (
	"encoding/json"

	"github.com/hudumabill/ledger_backend/internal/core/domain"
	"github.com/hudumabill/ledger_backend/internal/models"
)

// ToModelWallet converts a domain.Wallet to its persistence shape.
func ToModelWallet(d domain.Wallet) models.Wallet {
	return models.Wallet{
		WalletID:          d.WalletID,
		WalletNumber:      d.WalletNumber,
		UserID:            d.UserID,
		CurrencyCode:      d.CurrencyCode,
		AvailableBalance:  d.AvailableBalance,
		PendingBalance:    d.PendingBalance,
		HoldBalance:       d.HoldBalance,
		TotalCredit:       d.TotalCredit,
		TotalDebit:        d.TotalDebit,
		DailyLimit:        d.DailyLimit,
		TransactionLimit:  d.TransactionLimit,
		MonthlyLimit:      d.MonthlyLimit,
		Status:            string(d.Status),
		IsLocked:          d.IsLocked,
		LockReason:        d.LockReason,
		LockedUntil:       d.LockedUntil,
		LastTransactionAt: d.LastTransactionAt,
		AuditFields:       ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainWallet converts a models.Wallet back to the domain shape.
func ToDomainWallet(m models.Wallet) domain.Wallet {
	return domain.Wallet{
		WalletID:          m.WalletID,
		WalletNumber:      m.WalletNumber,
		UserID:            m.UserID,
		CurrencyCode:      m.CurrencyCode,
		AvailableBalance:  m.AvailableBalance,
		PendingBalance:    m.PendingBalance,
		HoldBalance:       m.HoldBalance,
		TotalCredit:       m.TotalCredit,
		TotalDebit:        m.TotalDebit,
		DailyLimit:        m.DailyLimit,
		TransactionLimit:  m.TransactionLimit,
		MonthlyLimit:      m.MonthlyLimit,
		Status:            domain.WalletStatus(m.Status),
		IsLocked:          m.IsLocked,
		LockReason:        m.LockReason,
		LockedUntil:       m.LockedUntil,
		LastTransactionAt: m.LastTransactionAt,
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelWalletTransaction converts a domain wallet transaction, encoding
// metadata as JSON for the JSONB column.
func ToModelWalletTransaction(d domain.WalletTransaction) (models.WalletTransaction, error) {
	var metadata []byte
	if len(d.Metadata) > 0 {
		var err error
		metadata, err = json.Marshal(d.Metadata)
		if err != nil {
			return models.WalletTransaction{}, err
		}
	}
	return models.WalletTransaction{
		WalletTransactionID:  d.WalletTransactionID,
		WalletID:             d.WalletID,
		Type:                 string(d.Type),
		Amount:               d.Amount,
		BalanceAfter:         d.BalanceAfter,
		Status:               string(d.Status),
		IsHeld:               d.IsHeld,
		Description:          d.Description,
		Metadata:             metadata,
		CounterpartyWalletID: d.CounterpartyWalletID,
		RelatedTransactionID: d.RelatedTransactionID,
		AuditFields:          ToModelAuditFields(d.AuditFields),
	}, nil
}

// ToDomainWalletTransaction converts a wallet transaction model back to the
// domain shape, decoding the metadata JSON.
func ToDomainWalletTransaction(m models.WalletTransaction) (domain.WalletTransaction, error) {
	var metadata map[string]string
	if len(m.Metadata) > 0 {
		if err := json.Unmarshal(m.Metadata, &metadata); err != nil {
			return domain.WalletTransaction{}, err
		}
	}
	return domain.WalletTransaction{
		WalletTransactionID:  m.WalletTransactionID,
		WalletID:             m.WalletID,
		Type:                 domain.WalletTransactionType(m.Type),
		Amount:               m.Amount,
		BalanceAfter:         m.BalanceAfter,
		Status:               domain.WalletTransactionStatus(m.Status),
		IsHeld:               m.IsHeld,
		Description:          m.Description,
		Metadata:             metadata,
		CounterpartyWalletID: m.CounterpartyWalletID,
		RelatedTransactionID: m.RelatedTransactionID,
		AuditFields:          ToDomainAuditFields(m.AuditFields),
	}, nil
}
