package services

import (
	"context"

	"github.com/hudumabill/ledger_backend/internal/core/domain"
	"github.com/hudumabill/ledger_backend/internal/dto"
)

// JournalReaderSvc defines read operations for journal data
type JournalReaderSvc interface {
	// GetJournalByID retrieves a specific journal with its ledger entries.
	GetJournalByID(ctx context.Context, journalID string) (*domain.Journal, error)

	// ListJournals retrieves a paginated list of journals.
	ListJournals(ctx context.Context, params dto.ListJournalsParams) (*dto.ListJournalsResponse, error)
}

// JournalWriterSvc defines write operations for journal data
type JournalWriterSvc interface {
	// CreateJournal validates the double-entry pair, generates reference
	// numbers and persists the journal, its two ledger entries and the
	// account balance updates atomically.
	CreateJournal(ctx context.Context, req dto.CreateJournalRequest, creatorID string) (*domain.Journal, error)

	// ApproveJournal moves a PENDING journal to APPROVED.
	ApproveJournal(ctx context.Context, journalID string, approverID string) (*domain.Journal, error)

	// RejectJournal moves a PENDING journal to REJECTED with a reason.
	// Rejection never reverses posted ledger rows.
	RejectJournal(ctx context.Context, journalID string, reason string, actorID string) (*domain.Journal, error)

	// PostJournal moves an APPROVED journal to POSTED.
	PostJournal(ctx context.Context, journalID string, actorID string) (*domain.Journal, error)
}

// JournalSvcFacade combines all journal-related service interfaces
type JournalSvcFacade interface {
	JournalReaderSvc
	JournalWriterSvc
}
