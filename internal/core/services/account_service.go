package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/hudumabill/ledger_backend/internal/apperrors"
	"github.com/hudumabill/ledger_backend/internal/core/domain"
	portsrepo "github.com/hudumabill/ledger_backend/internal/core/ports/repositories"
	portssvc "github.com/hudumabill/ledger_backend/internal/core/ports/services"
	"github.com/hudumabill/ledger_backend/internal/dto"
	"github.com/hudumabill/ledger_backend/internal/utils/refnum"
)

var (
	ErrAccountNotPostable = errors.New("account does not accept postings")
	ErrCurrencyMismatch   = errors.New("currency does not match")
)

// accountService provides chart-of-accounts operations.
type accountService struct {
	BaseService
	accountRepo  portsrepo.AccountRepositoryFacade
	ledgerRepo   portsrepo.LedgerRepositoryFacade
	currencyRepo portsrepo.CurrencyRepositoryFacade
	sequenceRepo portsrepo.SequenceRepository
}

// NewAccountService creates a new account service.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade, ledgerRepo portsrepo.LedgerRepositoryFacade, currencyRepo portsrepo.CurrencyRepositoryFacade, sequenceRepo portsrepo.SequenceRepository) portssvc.AccountSvcFacade {
	return &accountService{
		accountRepo:  accountRepo,
		ledgerRepo:   ledgerRepo,
		currencyRepo: currencyRepo,
		sequenceRepo: sequenceRepo,
	}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// CreateAccount persists a new account with a generated account number.
func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, creatorID string) (*domain.Account, error) {
	if req.OpeningBalance.IsNegative() {
		return nil, fmt.Errorf("%w: opening balance cannot be negative", apperrors.ErrInvalidAmount)
	}
	if req.CreditLimit.IsNegative() {
		return nil, fmt.Errorf("%w: credit limit cannot be negative", apperrors.ErrInvalidAmount)
	}
	if _, err := s.currencyRepo.FindCurrencyByCode(ctx, req.CurrencyCode); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: unknown currency %s", apperrors.ErrValidation, req.CurrencyCode)
		}
		return nil, err
	}

	parentID := ""
	if req.ParentAccountID != nil && *req.ParentAccountID != "" {
		parent, err := s.accountRepo.FindAccountByID(ctx, *req.ParentAccountID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: parent account %s not found", apperrors.ErrValidation, *req.ParentAccountID)
			}
			return nil, err
		}
		parentID = parent.AccountID
	}

	now := time.Now()
	seq, err := s.sequenceRepo.NextSequence(ctx, refnum.PrefixAccount, refnum.DateKey(now))
	if err != nil {
		s.LogError(ctx, err, "Failed to generate account number")
		return nil, err
	}

	account := domain.Account{
		AccountID:       uuid.NewString(),
		AccountNumber:   refnum.Format(refnum.PrefixAccount, now, seq),
		Name:            req.Name,
		AccountType:     domain.AccountType(req.AccountType),
		AccountSubtype:  domain.AccountSubtype(req.AccountSubtype),
		CurrencyCode:    req.CurrencyCode,
		ParentAccountID: parentID,
		Description:     req.Description,
		OpeningBalance:  req.OpeningBalance,
		CurrentBalance:  req.OpeningBalance,
		CreditLimit:     req.CreditLimit,
		Status:          domain.AccountActive,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		s.LogError(ctx, err, "Failed to save account", slog.String("account_id", account.AccountID))
		return nil, err
	}

	s.LogInfo(ctx, "Account created", slog.String("account_id", account.AccountID), slog.String("account_number", account.AccountNumber))
	return &account, nil
}

// GetAccountByID retrieves a specific account by its ID.
func (s *accountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find account", slog.String("account_id", accountID))
		}
		return nil, err
	}
	return account, nil
}

// ListAccounts retrieves a paginated list of accounts.
func (s *accountService) ListAccounts(ctx context.Context, params dto.ListAccountsParams) (*dto.ListAccountsResponse, error) {
	accounts, nextToken, err := s.accountRepo.ListAccounts(ctx, params.Limit, params.NextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts")
		return nil, err
	}

	resp := &dto.ListAccountsResponse{
		Accounts:  make([]dto.AccountResponse, len(accounts)),
		NextToken: nextToken,
	}
	for i := range accounts {
		resp.Accounts[i] = dto.ToAccountResponse(&accounts[i])
	}
	return resp, nil
}

// GetAccountBalance aggregates posted ledger activity for an account.
func (s *accountService) GetAccountBalance(ctx context.Context, accountID string, asOf *time.Time) (*domain.AccountBalance, error) {
	balance, err := s.ledgerRepo.AggregateAccountBalance(ctx, accountID, asOf)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to aggregate account balance", slog.String("account_id", accountID))
		}
		return nil, err
	}
	return balance, nil
}

// UpdateAccount updates an account's mutable details. Closed accounts are immutable.
func (s *accountService) UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, actorID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if account.Status == domain.AccountClosed {
		return nil, fmt.Errorf("%w: account %s is closed", apperrors.ErrConflict, accountID)
	}

	if req.Name != nil {
		account.Name = *req.Name
	}
	if req.Description != nil {
		account.Description = *req.Description
	}
	if req.CreditLimit != nil {
		if req.CreditLimit.IsNegative() {
			return nil, fmt.Errorf("%w: credit limit cannot be negative", apperrors.ErrInvalidAmount)
		}
		account.CreditLimit = *req.CreditLimit
	}
	if req.Status != nil {
		account.Status = domain.AccountStatus(*req.Status)
	}
	account.LastUpdatedAt = time.Now()
	account.LastUpdatedBy = actorID

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		s.LogError(ctx, err, "Failed to update account", slog.String("account_id", accountID))
		return nil, err
	}

	s.LogInfo(ctx, "Account updated", slog.String("account_id", accountID))
	return account, nil
}

// CloseAccount closes an account. The current balance must be exactly zero.
func (s *accountService) CloseAccount(ctx context.Context, accountID string, reason string, actorID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if account.Status == domain.AccountClosed {
		return nil, fmt.Errorf("%w: account %s is already closed", apperrors.ErrConflict, accountID)
	}
	if !account.CurrentBalance.IsZero() {
		return nil, fmt.Errorf("%w: account %s has balance %s", apperrors.ErrCannotCloseAccount, accountID, account.CurrentBalance.String())
	}

	now := time.Now()
	if err := s.accountRepo.CloseAccount(ctx, accountID, reason, actorID, now); err != nil {
		s.LogError(ctx, err, "Failed to close account", slog.String("account_id", accountID))
		return nil, err
	}

	account.Status = domain.AccountClosed
	account.ClosedAt = &now
	account.ClosureReason = reason
	account.LastUpdatedAt = now
	account.LastUpdatedBy = actorID

	s.LogInfo(ctx, "Account closed", slog.String("account_id", accountID))
	return account, nil
}

// DeleteAccount soft-deletes an account. The row stays for audit purposes.
func (s *accountService) DeleteAccount(ctx context.Context, accountID string, actorID string) error {
	if err := s.accountRepo.SoftDeleteAccount(ctx, accountID, actorID, time.Now()); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to delete account", slog.String("account_id", accountID))
		}
		return err
	}
	s.LogInfo(ctx, "Account deleted", slog.String("account_id", accountID))
	return nil
}

// ReconcileAccount replays the ledger against the opening balance. A
// discrepancy is reported in the result, never raised as an error.
func (s *accountService) ReconcileAccount(ctx context.Context, accountID string, actorID string) (*domain.ReconciliationResult, error) {
	result, err := s.accountRepo.ReconcileAccount(ctx, accountID, actorID, time.Now())
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to reconcile account", slog.String("account_id", accountID))
		}
		return nil, err
	}

	if !result.Discrepancy.IsZero() {
		s.LogInfo(ctx, "Reconciliation found discrepancy",
			slog.String("account_id", accountID),
			slog.String("discrepancy", result.Discrepancy.String()),
		)
	}
	return result, nil
}
