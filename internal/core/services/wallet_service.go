package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hudumabill/ledger_backend/internal/apperrors"
	"github.com/hudumabill/ledger_backend/internal/core/domain"
	portsrepo "github.com/hudumabill/ledger_backend/internal/core/ports/repositories"
	portssvc "github.com/hudumabill/ledger_backend/internal/core/ports/services"
	"github.com/hudumabill/ledger_backend/internal/dto"
	"github.com/hudumabill/ledger_backend/internal/utils/refnum"
)

// walletService provides wallet lifecycle, spend-control and balance
// mutation operations. The repository performs the actual balance math
// under row locks; this layer owns validation and limit enforcement.
type walletService struct {
	BaseService
	walletRepo   portsrepo.WalletRepositoryFacade
	currencyRepo portsrepo.CurrencyRepositoryFacade
	sequenceRepo portsrepo.SequenceRepository
}

// NewWalletService creates a new wallet service.
func NewWalletService(walletRepo portsrepo.WalletRepositoryFacade, currencyRepo portsrepo.CurrencyRepositoryFacade, sequenceRepo portsrepo.SequenceRepository) portssvc.WalletSvcFacade {
	return &walletService{
		walletRepo:   walletRepo,
		currencyRepo: currencyRepo,
		sequenceRepo: sequenceRepo,
	}
}

var _ portssvc.WalletSvcFacade = (*walletService)(nil)

// GetWalletByID retrieves a specific wallet.
func (s *walletService) GetWalletByID(ctx context.Context, walletID string) (*domain.Wallet, error) {
	wallet, err := s.walletRepo.FindWalletByID(ctx, walletID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find wallet", slog.String("wallet_id", walletID))
		}
		return nil, err
	}
	return wallet, nil
}

// ListWalletsByUser retrieves all wallets a user holds.
func (s *walletService) ListWalletsByUser(ctx context.Context, userID string) ([]domain.Wallet, error) {
	wallets, err := s.walletRepo.ListWalletsByUserID(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list wallets", slog.String("user_id", userID))
		return nil, err
	}
	return wallets, nil
}

// ListWalletTransactions retrieves the paginated audit trail of a wallet.
func (s *walletService) ListWalletTransactions(ctx context.Context, walletID string, params dto.ListWalletTransactionsParams) (*dto.ListWalletTransactionsResponse, error) {
	txns, nextToken, err := s.walletRepo.ListWalletTransactions(ctx, walletID, params.Limit, params.NextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list wallet transactions", slog.String("wallet_id", walletID))
		return nil, err
	}

	return &dto.ListWalletTransactionsResponse{
		Transactions: dto.ToWalletTransactionResponses(txns),
		NextToken:    nextToken,
	}, nil
}

// CanTransact checks whether a debit of amount may proceed: amount
// positivity, wallet operability, available balance, and the
// per-transaction, daily and monthly limits.
func (s *walletService) CanTransact(ctx context.Context, walletID string, amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("%w: debit amount must be positive", apperrors.ErrInvalidAmount)
	}

	wallet, err := s.walletRepo.FindWalletByID(ctx, walletID)
	if err != nil {
		return err
	}

	now := time.Now()
	if !wallet.IsOperational(now) {
		return fmt.Errorf("%w: wallet %s", apperrors.ErrNotOperational, walletID)
	}
	if wallet.AvailableBalance.LessThan(amount) {
		return fmt.Errorf("%w: available %s, requested %s", apperrors.ErrInsufficientFunds, wallet.AvailableBalance.String(), amount.String())
	}
	if wallet.TransactionLimit != nil && amount.GreaterThan(*wallet.TransactionLimit) {
		return fmt.Errorf("%w: amount %s exceeds per-transaction limit %s", apperrors.ErrInsufficientFunds, amount.String(), wallet.TransactionLimit.String())
	}

	if wallet.DailyLimit != nil {
		dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		spent, err := s.walletRepo.SumCompletedDebitsBetween(ctx, walletID, dayStart, now)
		if err != nil {
			return err
		}
		if spent.Add(amount).GreaterThan(*wallet.DailyLimit) {
			return fmt.Errorf("%w: daily limit %s would be exceeded", apperrors.ErrInsufficientFunds, wallet.DailyLimit.String())
		}
	}
	if wallet.MonthlyLimit != nil {
		monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		spent, err := s.walletRepo.SumCompletedDebitsBetween(ctx, walletID, monthStart, now)
		if err != nil {
			return err
		}
		if spent.Add(amount).GreaterThan(*wallet.MonthlyLimit) {
			return fmt.Errorf("%w: monthly limit %s would be exceeded", apperrors.ErrInsufficientFunds, wallet.MonthlyLimit.String())
		}
	}
	return nil
}

// CreateWallet opens a wallet for a user in a currency. A user holds at
// most one wallet per currency.
func (s *walletService) CreateWallet(ctx context.Context, req dto.CreateWalletRequest, creatorID string) (*domain.Wallet, error) {
	if _, err := s.currencyRepo.FindCurrencyByCode(ctx, req.CurrencyCode); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: unknown currency %s", apperrors.ErrValidation, req.CurrencyCode)
		}
		return nil, err
	}
	for _, limit := range []*decimal.Decimal{req.TransactionLimit, req.DailyLimit, req.MonthlyLimit} {
		if limit != nil && limit.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("%w: limits must be positive", apperrors.ErrInvalidAmount)
		}
	}

	now := time.Now()
	seq, err := s.sequenceRepo.NextSequence(ctx, refnum.PrefixWallet, refnum.DateKey(now))
	if err != nil {
		s.LogError(ctx, err, "Failed to generate wallet number")
		return nil, err
	}

	wallet := domain.Wallet{
		WalletID:         uuid.NewString(),
		WalletNumber:     refnum.Format(refnum.PrefixWallet, now, seq),
		UserID:           req.UserID,
		CurrencyCode:     req.CurrencyCode,
		AvailableBalance: decimal.Zero,
		PendingBalance:   decimal.Zero,
		HoldBalance:      decimal.Zero,
		TotalCredit:      decimal.Zero,
		TotalDebit:       decimal.Zero,
		DailyLimit:       req.DailyLimit,
		TransactionLimit: req.TransactionLimit,
		MonthlyLimit:     req.MonthlyLimit,
		Status:           domain.WalletPending,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorID,
		},
	}

	if err := s.walletRepo.SaveWallet(ctx, wallet); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "Failed to save wallet", slog.String("wallet_id", wallet.WalletID))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Wallet created",
		slog.String("wallet_id", wallet.WalletID),
		slog.String("wallet_number", wallet.WalletNumber),
		slog.String("user_id", req.UserID),
	)
	return &wallet, nil
}

// ActivateWallet moves a PENDING wallet to ACTIVE.
func (s *walletService) ActivateWallet(ctx context.Context, walletID string, actorID string) (*domain.Wallet, error) {
	wallet, err := s.walletRepo.FindWalletByID(ctx, walletID)
	if err != nil {
		return nil, err
	}
	if wallet.Status == domain.WalletActive {
		return nil, fmt.Errorf("%w: wallet %s is already active", apperrors.ErrConflict, walletID)
	}

	now := time.Now()
	if err := s.walletRepo.UpdateWalletStatus(ctx, walletID, domain.WalletActive, actorID, now); err != nil {
		s.LogError(ctx, err, "Failed to activate wallet", slog.String("wallet_id", walletID))
		return nil, err
	}

	wallet.Status = domain.WalletActive
	wallet.LastUpdatedAt = now
	wallet.LastUpdatedBy = actorID

	s.LogInfo(ctx, "Wallet activated", slog.String("wallet_id", walletID))
	return wallet, nil
}

// UpdateWalletLimits adjusts the spend controls.
func (s *walletService) UpdateWalletLimits(ctx context.Context, walletID string, req dto.UpdateWalletLimitsRequest, actorID string) (*domain.Wallet, error) {
	for _, limit := range []*decimal.Decimal{req.TransactionLimit, req.DailyLimit, req.MonthlyLimit} {
		if limit != nil && limit.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("%w: limits must be positive", apperrors.ErrInvalidAmount)
		}
	}

	wallet, err := s.walletRepo.FindWalletByID(ctx, walletID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if err := s.walletRepo.UpdateWalletLimits(ctx, walletID, req.TransactionLimit, req.DailyLimit, req.MonthlyLimit, actorID, now); err != nil {
		s.LogError(ctx, err, "Failed to update wallet limits", slog.String("wallet_id", walletID))
		return nil, err
	}

	wallet.TransactionLimit = req.TransactionLimit
	wallet.DailyLimit = req.DailyLimit
	wallet.MonthlyLimit = req.MonthlyLimit
	wallet.LastUpdatedAt = now
	wallet.LastUpdatedBy = actorID

	s.LogInfo(ctx, "Wallet limits updated", slog.String("wallet_id", walletID))
	return wallet, nil
}

// LockWallet suspends activity, optionally until a deadline.
func (s *walletService) LockWallet(ctx context.Context, walletID string, req dto.LockWalletRequest, actorID string) (*domain.Wallet, error) {
	wallet, err := s.walletRepo.FindWalletByID(ctx, walletID)
	if err != nil {
		return nil, err
	}
	if wallet.IsLocked {
		return nil, fmt.Errorf("%w: wallet %s is already locked", apperrors.ErrConflict, walletID)
	}

	now := time.Now()
	if err := s.walletRepo.UpdateWalletLock(ctx, walletID, true, req.Reason, req.LockedUntil, actorID, now); err != nil {
		s.LogError(ctx, err, "Failed to lock wallet", slog.String("wallet_id", walletID))
		return nil, err
	}

	wallet.IsLocked = true
	wallet.LockReason = req.Reason
	wallet.LockedUntil = req.LockedUntil
	wallet.LastUpdatedAt = now
	wallet.LastUpdatedBy = actorID

	s.LogInfo(ctx, "Wallet locked", slog.String("wallet_id", walletID), slog.String("reason", req.Reason))
	return wallet, nil
}

// UnlockWallet clears the lock.
func (s *walletService) UnlockWallet(ctx context.Context, walletID string, actorID string) (*domain.Wallet, error) {
	wallet, err := s.walletRepo.FindWalletByID(ctx, walletID)
	if err != nil {
		return nil, err
	}
	if !wallet.IsLocked {
		return nil, fmt.Errorf("%w: wallet %s is not locked", apperrors.ErrConflict, walletID)
	}

	now := time.Now()
	if err := s.walletRepo.UpdateWalletLock(ctx, walletID, false, "", nil, actorID, now); err != nil {
		s.LogError(ctx, err, "Failed to unlock wallet", slog.String("wallet_id", walletID))
		return nil, err
	}

	wallet.IsLocked = false
	wallet.LockReason = ""
	wallet.LockedUntil = nil
	wallet.LastUpdatedAt = now
	wallet.LastUpdatedBy = actorID

	s.LogInfo(ctx, "Wallet unlocked", slog.String("wallet_id", walletID))
	return wallet, nil
}

// Credit adds funds to the wallet. A PENDING wallet is activated by its
// first credit.
func (s *walletService) Credit(ctx context.Context, walletID string, req dto.WalletMutationRequest, actorID string) (*domain.Wallet, *domain.WalletTransaction, error) {
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, nil, fmt.Errorf("%w: credit amount must be positive", apperrors.ErrInvalidAmount)
	}

	wallet, err := s.walletRepo.FindWalletByID(ctx, walletID)
	if err != nil {
		return nil, nil, err
	}
	now := time.Now()
	if !wallet.IsCreditable(now) {
		return nil, nil, fmt.Errorf("%w: wallet %s", apperrors.ErrNotOperational, walletID)
	}

	txn := s.newWalletTxn(walletID, domain.WalletCredit, req.Amount, req.Description, req.Metadata, actorID, now)
	updated, savedTxn, err := s.walletRepo.CreditWallet(ctx, walletID, txn)
	if err != nil {
		s.LogError(ctx, err, "Failed to credit wallet", slog.String("wallet_id", walletID))
		return nil, nil, err
	}

	s.LogInfo(ctx, "Wallet credited",
		slog.String("wallet_id", walletID),
		slog.String("amount", req.Amount.String()),
	)
	return updated, savedTxn, nil
}

// Debit removes funds, or places them on hold when req.Hold is set.
func (s *walletService) Debit(ctx context.Context, walletID string, req dto.WalletMutationRequest, actorID string) (*domain.Wallet, *domain.WalletTransaction, error) {
	if err := s.CanTransact(ctx, walletID, req.Amount); err != nil {
		return nil, nil, err
	}

	now := time.Now()
	txn := s.newWalletTxn(walletID, domain.WalletDebit, req.Amount, req.Description, req.Metadata, actorID, now)
	updated, savedTxn, err := s.walletRepo.DebitWallet(ctx, walletID, txn, req.Hold)
	if err != nil {
		if !errors.Is(err, apperrors.ErrInsufficientFunds) {
			s.LogError(ctx, err, "Failed to debit wallet", slog.String("wallet_id", walletID))
		}
		return nil, nil, err
	}

	s.LogInfo(ctx, "Wallet debited",
		slog.String("wallet_id", walletID),
		slog.String("amount", req.Amount.String()),
		slog.Bool("hold", req.Hold),
	)
	return updated, savedTxn, nil
}

// ReleaseHold returns held funds to the available balance.
func (s *walletService) ReleaseHold(ctx context.Context, walletID string, amount decimal.Decimal, actorID string) (*domain.Wallet, error) {
	wallet, err := s.walletRepo.ReleaseHold(ctx, walletID, amount, actorID, time.Now())
	if err != nil {
		if !errors.Is(err, apperrors.ErrInvalidHoldAmount) && !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to release hold", slog.String("wallet_id", walletID))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Hold released",
		slog.String("wallet_id", walletID),
		slog.String("amount", amount.String()),
	)
	return wallet, nil
}

// CompleteHold captures held funds as spent.
func (s *walletService) CompleteHold(ctx context.Context, walletID string, amount decimal.Decimal, actorID string) (*domain.Wallet, error) {
	wallet, err := s.walletRepo.CompleteHold(ctx, walletID, amount, actorID, time.Now())
	if err != nil {
		if !errors.Is(err, apperrors.ErrInvalidHoldAmount) && !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to complete hold", slog.String("wallet_id", walletID))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Hold captured",
		slog.String("wallet_id", walletID),
		slog.String("amount", amount.String()),
	)
	return wallet, nil
}

// Transfer moves funds between two wallets atomically. Both wallets must
// be operational and hold the same currency.
func (s *walletService) Transfer(ctx context.Context, senderWalletID string, req dto.TransferRequest, actorID string) (*dto.TransferResponse, error) {
	if senderWalletID == req.RecipientWalletID {
		return nil, fmt.Errorf("%w: cannot transfer to the same wallet", apperrors.ErrIdenticalAccounts)
	}
	if err := s.CanTransact(ctx, senderWalletID, req.Amount); err != nil {
		return nil, err
	}

	recipient, err := s.walletRepo.FindWalletByID(ctx, req.RecipientWalletID)
	if err != nil {
		return nil, err
	}
	sender, err := s.walletRepo.FindWalletByID(ctx, senderWalletID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if !recipient.IsCreditable(now) {
		return nil, fmt.Errorf("%w: recipient wallet %s", apperrors.ErrNotOperational, req.RecipientWalletID)
	}
	if sender.CurrencyCode != recipient.CurrencyCode {
		return nil, fmt.Errorf("%w: wallets hold different currencies (%s, %s)", ErrCurrencyMismatch, sender.CurrencyCode, recipient.CurrencyCode)
	}

	senderTxn := s.newWalletTxn(senderWalletID, domain.WalletDebit, req.Amount, req.Description, req.Metadata, actorID, now)
	recipientTxn := s.newWalletTxn(req.RecipientWalletID, domain.WalletCredit, req.Amount, req.Description, req.Metadata, actorID, now)
	senderTxn.CounterpartyWalletID = req.RecipientWalletID
	recipientTxn.CounterpartyWalletID = senderWalletID
	senderTxn.RelatedTransactionID = recipientTxn.WalletTransactionID
	recipientTxn.RelatedTransactionID = senderTxn.WalletTransactionID

	savedSender, savedRecipient, err := s.walletRepo.Transfer(ctx, senderTxn, recipientTxn)
	if err != nil {
		if !errors.Is(err, apperrors.ErrInsufficientFunds) {
			s.LogError(ctx, err, "Failed to transfer",
				slog.String("sender_wallet_id", senderWalletID),
				slog.String("recipient_wallet_id", req.RecipientWalletID),
			)
		}
		return nil, err
	}

	s.LogInfo(ctx, "Transfer completed",
		slog.String("sender_wallet_id", senderWalletID),
		slog.String("recipient_wallet_id", req.RecipientWalletID),
		slog.String("amount", req.Amount.String()),
	)
	return &dto.TransferResponse{
		SenderTransaction:    dto.ToWalletTransactionResponse(savedSender),
		RecipientTransaction: dto.ToWalletTransactionResponse(savedRecipient),
	}, nil
}

// ReconcileWallet replays the audit trail and corrects the available balance.
func (s *walletService) ReconcileWallet(ctx context.Context, walletID string, actorID string) (*domain.WalletReconciliationResult, error) {
	result, err := s.walletRepo.ReconcileWallet(ctx, walletID, actorID, time.Now())
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to reconcile wallet", slog.String("wallet_id", walletID))
		}
		return nil, err
	}

	if !result.Discrepancy.IsZero() {
		s.LogInfo(ctx, "Wallet reconciliation found discrepancy",
			slog.String("wallet_id", walletID),
			slog.String("discrepancy", result.Discrepancy.String()),
		)
	}
	return result, nil
}

// newWalletTxn builds an audit-trail row for a wallet mutation. The
// repository fills Status, IsHeld and BalanceAfter under the row lock.
func (s *walletService) newWalletTxn(walletID string, txnType domain.WalletTransactionType, amount decimal.Decimal, description string, metadata map[string]string, actorID string, now time.Time) domain.WalletTransaction {
	return domain.WalletTransaction{
		WalletTransactionID: uuid.NewString(),
		WalletID:            walletID,
		Type:                txnType,
		Amount:              amount,
		Description:         description,
		Metadata:            metadata,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		},
	}
}
