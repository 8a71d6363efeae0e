package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/hudumabill/ledger_backend/internal/apperrors"
	"github.com/hudumabill/ledger_backend/internal/core/domain"
	portsrepo "github.com/hudumabill/ledger_backend/internal/core/ports/repositories"
	portssvc "github.com/hudumabill/ledger_backend/internal/core/ports/services"
	"github.com/hudumabill/ledger_backend/internal/dto"
)

// ledgerService provides read and reconciliation-flag operations over
// ledger entries. Entries are written only through the journal service.
type ledgerService struct {
	BaseService
	ledgerRepo portsrepo.LedgerRepositoryFacade
}

// NewLedgerService creates a new ledger service.
func NewLedgerService(ledgerRepo portsrepo.LedgerRepositoryFacade) portssvc.LedgerSvcFacade {
	return &ledgerService{ledgerRepo: ledgerRepo}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// GetEntryByID retrieves a specific ledger entry.
func (s *ledgerService) GetEntryByID(ctx context.Context, entryID string) (*domain.LedgerEntry, error) {
	entry, err := s.ledgerRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find ledger entry", slog.String("entry_id", entryID))
		}
		return nil, err
	}
	return entry, nil
}

// ListEntriesByAccount retrieves a paginated statement for one account.
func (s *ledgerService) ListEntriesByAccount(ctx context.Context, accountID string, params dto.ListLedgerEntriesParams) (*dto.ListLedgerEntriesResponse, error) {
	entries, nextToken, err := s.ledgerRepo.ListEntriesByAccountID(ctx, accountID, params.Limit, params.NextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list ledger entries", slog.String("account_id", accountID))
		return nil, err
	}

	return &dto.ListLedgerEntriesResponse{
		Entries:   dto.ToLedgerEntryResponses(entries),
		NextToken: nextToken,
	}, nil
}

// MarkEntriesReconciled flags a batch of entries as reconciled.
func (s *ledgerService) MarkEntriesReconciled(ctx context.Context, entryIDs []string, actorID string) (int64, error) {
	updated, err := s.ledgerRepo.MarkEntriesReconciled(ctx, entryIDs, actorID, time.Now())
	if err != nil {
		s.LogError(ctx, err, "Failed to mark entries reconciled", slog.Int("entry_count", len(entryIDs)))
		return 0, err
	}

	s.LogInfo(ctx, "Ledger entries marked reconciled",
		slog.Int("requested", len(entryIDs)),
		slog.Int64("updated", updated),
	)
	return updated, nil
}
