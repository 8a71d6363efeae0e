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

// transactionService records external payment events and drives their
// forward-only status lifecycle.
type transactionService struct {
	BaseService
	transactionRepo portsrepo.TransactionRepositoryFacade
	currencyRepo    portsrepo.CurrencyRepositoryFacade
	sequenceRepo    portsrepo.SequenceRepository
}

// NewTransactionService creates a new transaction service.
func NewTransactionService(transactionRepo portsrepo.TransactionRepositoryFacade, currencyRepo portsrepo.CurrencyRepositoryFacade, sequenceRepo portsrepo.SequenceRepository) portssvc.TransactionSvcFacade {
	return &transactionService{
		transactionRepo: transactionRepo,
		currencyRepo:    currencyRepo,
		sequenceRepo:    sequenceRepo,
	}
}

var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

// GetTransactionByID retrieves a specific transaction.
func (s *transactionService) GetTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	txn, err := s.transactionRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find transaction", slog.String("transaction_id", transactionID))
		}
		return nil, err
	}
	return txn, nil
}

// ListTransactions retrieves a paginated list of transactions.
func (s *transactionService) ListTransactions(ctx context.Context, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	var status *domain.TransactionStatus
	if params.Status != nil {
		st := domain.TransactionStatus(*params.Status)
		status = &st
	}

	txns, nextToken, err := s.transactionRepo.ListTransactions(ctx, params.Limit, params.NextToken, status)
	if err != nil {
		s.LogError(ctx, err, "Failed to list transactions")
		return nil, err
	}

	return &dto.ListTransactionsResponse{
		Transactions: dto.ToTransactionResponses(txns),
		NextToken:    nextToken,
	}, nil
}

// RecordTransaction registers an external payment event in PENDING status.
func (s *transactionService) RecordTransaction(ctx context.Context, req dto.RecordTransactionRequest, actorID string) (*domain.Transaction, error) {
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: transaction amount must be positive", apperrors.ErrInvalidAmount)
	}
	if _, err := s.currencyRepo.FindCurrencyByCode(ctx, req.CurrencyCode); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: unknown currency %s", apperrors.ErrValidation, req.CurrencyCode)
		}
		return nil, err
	}

	now := time.Now()
	seq, err := s.sequenceRepo.NextSequence(ctx, refnum.PrefixTransaction, refnum.DateKey(now))
	if err != nil {
		s.LogError(ctx, err, "Failed to generate transaction code")
		return nil, err
	}

	txn := domain.Transaction{
		TransactionID:     uuid.NewString(),
		TransactionCode:   refnum.Format(refnum.PrefixTransaction, now, seq),
		PartyA:            req.PartyA,
		PartyB:            req.PartyB,
		Channel:           domain.TransactionChannel(req.Channel),
		Aggregator:        domain.TransactionAggregator(req.Aggregator),
		Amount:            req.Amount,
		CurrencyCode:      req.CurrencyCode,
		Status:            domain.TxnPending,
		ExternalReference: req.ExternalReference,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		},
	}

	if err := s.transactionRepo.SaveTransaction(ctx, txn); err != nil {
		s.LogError(ctx, err, "Failed to save transaction", slog.String("transaction_id", txn.TransactionID))
		return nil, err
	}

	s.LogInfo(ctx, "Transaction recorded",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("transaction_code", txn.TransactionCode),
	)
	return &txn, nil
}

// TransitionTransaction moves a transaction along its status lifecycle.
func (s *transactionService) TransitionTransaction(ctx context.Context, transactionID string, req dto.TransitionTransactionRequest, actorID string) (*domain.Transaction, error) {
	txn, err := s.transactionRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}

	next := domain.TransactionStatus(req.Status)
	if next.Label() == "unknown" {
		return nil, fmt.Errorf("%w: unknown transaction status %d", apperrors.ErrValidation, req.Status)
	}
	if !txn.Status.CanTransitionTo(next) {
		return nil, fmt.Errorf("%w: transaction %s cannot move from %s to %s", apperrors.ErrConflict, transactionID, txn.Status.Label(), next.Label())
	}

	now := time.Now()
	var completedAt *time.Time
	if next.IsTerminal() {
		completedAt = &now
	}

	if err := s.transactionRepo.UpdateTransactionStatus(ctx, transactionID, next, req.ResponsePayload, completedAt, actorID, now); err != nil {
		s.LogError(ctx, err, "Failed to transition transaction", slog.String("transaction_id", transactionID))
		return nil, err
	}

	txn.Status = next
	if req.ResponsePayload != "" {
		txn.ResponsePayload = req.ResponsePayload
	}
	txn.CompletedAt = completedAt
	txn.LastUpdatedAt = now
	txn.LastUpdatedBy = actorID

	s.LogInfo(ctx, "Transaction transitioned",
		slog.String("transaction_id", transactionID),
		slog.String("status", next.Label()),
	)
	return txn, nil
}
