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
	"github.com/hudumabill/ledger_backend/internal/utils/accounting"
	"github.com/hudumabill/ledger_backend/internal/utils/refnum"
)

// journalService provides double-entry journal operations. Every journal
// fans out into exactly two ledger entries; the pair, the journal row and
// the account balance updates are persisted in one database transaction.
type journalService struct {
	BaseService
	journalRepo  portsrepo.JournalRepositoryFacade
	ledgerRepo   portsrepo.LedgerRepositoryFacade
	accountRepo  portsrepo.AccountRepositoryFacade
	currencyRepo portsrepo.CurrencyRepositoryFacade
	sequenceRepo portsrepo.SequenceRepository
}

// NewJournalService creates a new journal service.
func NewJournalService(journalRepo portsrepo.JournalRepositoryFacade, ledgerRepo portsrepo.LedgerRepositoryFacade, accountRepo portsrepo.AccountRepositoryFacade, currencyRepo portsrepo.CurrencyRepositoryFacade, sequenceRepo portsrepo.SequenceRepository) portssvc.JournalSvcFacade {
	return &journalService{
		journalRepo:  journalRepo,
		ledgerRepo:   ledgerRepo,
		accountRepo:  accountRepo,
		currencyRepo: currencyRepo,
		sequenceRepo: sequenceRepo,
	}
}

var _ portssvc.JournalSvcFacade = (*journalService)(nil)

// entryCategoryFor maps a journal type to the category stamped on its entries.
func entryCategoryFor(journalType domain.JournalType) domain.EntryCategory {
	switch journalType {
	case domain.JournalAdjustment:
		return domain.CategoryAdjustment
	case domain.JournalAccrual:
		return domain.CategoryAccrual
	case domain.JournalReversal:
		return domain.CategoryReversal
	default:
		return domain.CategoryOperational
	}
}

// CreateJournal validates the double-entry pair and persists the journal,
// its two ledger entries and the balance updates atomically.
func (s *journalService) CreateJournal(ctx context.Context, req dto.CreateJournalRequest, creatorID string) (*domain.Journal, error) {
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: journal amount must be positive", apperrors.ErrInvalidAmount)
	}
	if req.AccountDebited == req.AccountCredited {
		return nil, fmt.Errorf("%w: debited and credited accounts are the same", apperrors.ErrIdenticalAccounts)
	}
	if _, err := s.currencyRepo.FindCurrencyByCode(ctx, req.CurrencyCode); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: unknown currency %s", apperrors.ErrValidation, req.CurrencyCode)
		}
		return nil, err
	}

	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, []string{req.AccountDebited, req.AccountCredited})
	if err != nil {
		return nil, err
	}
	for _, id := range []string{req.AccountDebited, req.AccountCredited} {
		account := accounts[id]
		if !account.IsPostable() {
			return nil, fmt.Errorf("%w: account %s", ErrAccountNotPostable, id)
		}
		if account.CurrencyCode != req.CurrencyCode {
			return nil, fmt.Errorf("%w: account %s holds %s, journal is %s", ErrCurrencyMismatch, id, account.CurrencyCode, req.CurrencyCode)
		}
	}

	now := time.Now()
	seq, err := s.sequenceRepo.NextSequence(ctx, refnum.PrefixJournal, refnum.DateKey(now))
	if err != nil {
		s.LogError(ctx, err, "Failed to generate journal reference number")
		return nil, err
	}
	reference := refnum.Format(refnum.PrefixJournal, now, seq)
	// Ledger rows share the journal's date and sequence under their own prefix.
	entryReference := refnum.Format(refnum.PrefixLedger, now, seq)

	exchangeRate := req.ExchangeRate
	if exchangeRate.IsZero() {
		exchangeRate = decimal.NewFromInt(1)
	}
	valueDate := req.PostingDate
	if req.ValueDate != nil {
		valueDate = *req.ValueDate
	}

	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     creatorID,
		LastUpdatedAt: now,
		LastUpdatedBy: creatorID,
	}
	journal := domain.Journal{
		JournalID:       uuid.NewString(),
		ReferenceNumber: reference,
		AccountDebited:  req.AccountDebited,
		AccountCredited: req.AccountCredited,
		Amount:          req.Amount,
		CurrencyCode:    req.CurrencyCode,
		ExchangeRate:    exchangeRate,
		JournalType:     domain.JournalType(req.JournalType),
		Status:          domain.JournalPending,
		Description:     req.Description,
		PostingDate:     req.PostingDate,
		ValueDate:       valueDate,
		AuditFields:     audit,
	}

	category := entryCategoryFor(journal.JournalType)
	entries := []domain.LedgerEntry{
		{
			EntryID:         uuid.NewString(),
			ReferenceNumber: entryReference + refnum.SuffixDebit,
			JournalID:       journal.JournalID,
			TransactionID:   req.TransactionID,
			AccountID:       req.AccountDebited,
			EntryType:       domain.Debit,
			EntryCategory:   category,
			Amount:          req.Amount,
			PostingDate:     req.PostingDate,
			AuditFields:     audit,
		},
		{
			EntryID:         uuid.NewString(),
			ReferenceNumber: entryReference + refnum.SuffixCredit,
			JournalID:       journal.JournalID,
			TransactionID:   req.TransactionID,
			AccountID:       req.AccountCredited,
			EntryType:       domain.Credit,
			EntryCategory:   category,
			Amount:          req.Amount,
			PostingDate:     req.PostingDate,
			AuditFields:     audit,
		},
	}

	balanceChanges := make(map[string]decimal.Decimal, 2)
	for _, entry := range entries {
		account := accounts[entry.AccountID]
		signed, err := accounting.CalculateSignedAmount(entry, account.AccountType)
		if err != nil {
			return nil, err
		}
		balanceChanges[entry.AccountID] = balanceChanges[entry.AccountID].Add(signed)
	}

	if err := s.journalRepo.SaveJournal(ctx, journal, entries, balanceChanges); err != nil {
		s.LogError(ctx, err, "Failed to save journal", slog.String("journal_id", journal.JournalID))
		return nil, err
	}

	journal.Entries = entries
	s.LogInfo(ctx, "Journal created",
		slog.String("journal_id", journal.JournalID),
		slog.String("reference_number", reference),
		slog.String("amount", req.Amount.String()),
	)
	return &journal, nil
}

// GetJournalByID retrieves a journal together with its ledger entry pair.
func (s *journalService) GetJournalByID(ctx context.Context, journalID string) (*domain.Journal, error) {
	journal, err := s.journalRepo.FindJournalByID(ctx, journalID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find journal", slog.String("journal_id", journalID))
		}
		return nil, err
	}

	entries, err := s.ledgerRepo.FindEntriesByJournalID(ctx, journalID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load entries for journal", slog.String("journal_id", journalID))
		return nil, err
	}
	journal.Entries = entries
	return journal, nil
}

// ListJournals retrieves a paginated list of journals.
func (s *journalService) ListJournals(ctx context.Context, params dto.ListJournalsParams) (*dto.ListJournalsResponse, error) {
	var status *domain.JournalStatus
	if params.Status != nil && *params.Status != "" {
		st := domain.JournalStatus(*params.Status)
		status = &st
	}
	var journalType *domain.JournalType
	if params.JournalType != nil && *params.JournalType != "" {
		jt := domain.JournalType(*params.JournalType)
		journalType = &jt
	}

	journals, nextToken, err := s.journalRepo.ListJournals(ctx, params.Limit, params.NextToken, status, journalType)
	if err != nil {
		s.LogError(ctx, err, "Failed to list journals")
		return nil, err
	}

	resp := &dto.ListJournalsResponse{
		Journals:  make([]dto.JournalResponse, len(journals)),
		NextToken: nextToken,
	}
	for i := range journals {
		if params.IncludeEntries {
			entries, err := s.ledgerRepo.FindEntriesByJournalID(ctx, journals[i].JournalID)
			if err != nil {
				return nil, err
			}
			journals[i].Entries = entries
		}
		resp.Journals[i] = dto.ToJournalResponse(&journals[i])
	}
	return resp, nil
}

// ApproveJournal moves a PENDING journal to APPROVED.
func (s *journalService) ApproveJournal(ctx context.Context, journalID string, approverID string) (*domain.Journal, error) {
	journal, err := s.journalRepo.FindJournalByID(ctx, journalID)
	if err != nil {
		return nil, err
	}
	if !journal.CanTransitionTo(domain.JournalApproved) {
		return nil, fmt.Errorf("%w: journal %s is %s, cannot approve", apperrors.ErrConflict, journalID, journal.Status)
	}

	now := time.Now()
	if err := s.journalRepo.UpdateJournalStatus(ctx, journalID, domain.JournalApproved, &approverID, &now, "", approverID, now); err != nil {
		s.LogError(ctx, err, "Failed to approve journal", slog.String("journal_id", journalID))
		return nil, err
	}

	journal.Status = domain.JournalApproved
	journal.ApprovedBy = &approverID
	journal.ApprovedAt = &now
	journal.LastUpdatedAt = now
	journal.LastUpdatedBy = approverID

	s.LogInfo(ctx, "Journal approved", slog.String("journal_id", journalID))
	return journal, nil
}

// RejectJournal moves a PENDING journal to REJECTED with a reason.
// Rejection is terminal and never reverses the posted ledger rows; a
// correcting REVERSAL journal is the way to undo the economic effect.
func (s *journalService) RejectJournal(ctx context.Context, journalID string, reason string, actorID string) (*domain.Journal, error) {
	if reason == "" {
		return nil, fmt.Errorf("%w: rejection reason is required", apperrors.ErrValidation)
	}
	journal, err := s.journalRepo.FindJournalByID(ctx, journalID)
	if err != nil {
		return nil, err
	}
	if !journal.CanTransitionTo(domain.JournalRejected) {
		return nil, fmt.Errorf("%w: journal %s is %s, cannot reject", apperrors.ErrConflict, journalID, journal.Status)
	}

	now := time.Now()
	if err := s.journalRepo.UpdateJournalStatus(ctx, journalID, domain.JournalRejected, nil, nil, reason, actorID, now); err != nil {
		s.LogError(ctx, err, "Failed to reject journal", slog.String("journal_id", journalID))
		return nil, err
	}

	journal.Status = domain.JournalRejected
	journal.RejectionReason = reason
	journal.LastUpdatedAt = now
	journal.LastUpdatedBy = actorID

	s.LogInfo(ctx, "Journal rejected", slog.String("journal_id", journalID))
	return journal, nil
}

// PostJournal moves an APPROVED journal to POSTED.
func (s *journalService) PostJournal(ctx context.Context, journalID string, actorID string) (*domain.Journal, error) {
	journal, err := s.journalRepo.FindJournalByID(ctx, journalID)
	if err != nil {
		return nil, err
	}
	if !journal.CanTransitionTo(domain.JournalPosted) {
		return nil, fmt.Errorf("%w: journal %s is %s, cannot post", apperrors.ErrConflict, journalID, journal.Status)
	}

	now := time.Now()
	if err := s.journalRepo.UpdateJournalStatus(ctx, journalID, domain.JournalPosted, nil, nil, "", actorID, now); err != nil {
		s.LogError(ctx, err, "Failed to post journal", slog.String("journal_id", journalID))
		return nil, err
	}

	journal.Status = domain.JournalPosted
	journal.LastUpdatedAt = now
	journal.LastUpdatedBy = actorID

	s.LogInfo(ctx, "Journal posted", slog.String("journal_id", journalID))
	return journal, nil
}
