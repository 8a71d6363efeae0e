package services

import (
	"context"

	"github.com/hudumabill/ledger_backend/internal/core/domain"
	"github.com/hudumabill/ledger_backend/internal/dto"
)

// LedgerReaderSvc defines read operations for ledger entries
type LedgerReaderSvc interface {
	// GetEntryByID retrieves a specific ledger entry.
	GetEntryByID(ctx context.Context, entryID string) (*domain.LedgerEntry, error)

	// ListEntriesByAccount retrieves a paginated statement for one account.
	ListEntriesByAccount(ctx context.Context, accountID string, params dto.ListLedgerEntriesParams) (*dto.ListLedgerEntriesResponse, error)
}

// LedgerWriterSvc defines write operations for ledger entries
type LedgerWriterSvc interface {
	// MarkEntriesReconciled flags a batch of entries as reconciled.
	MarkEntriesReconciled(ctx context.Context, entryIDs []string, actorID string) (int64, error)
}

// LedgerSvcFacade combines all ledger-related service interfaces
type LedgerSvcFacade interface {
	LedgerReaderSvc
	LedgerWriterSvc
}
