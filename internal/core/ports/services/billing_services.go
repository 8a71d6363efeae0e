package services

import (
	"context"

	"github.com/hudumabill/ledger_backend/internal/core/domain"
	"github.com/hudumabill/ledger_backend/internal/dto"
)

// BillingReaderSvc defines read operations for billing documents
type BillingReaderSvc interface {
	// GetDocumentByID retrieves a specific billing document.
	GetDocumentByID(ctx context.Context, documentID string) (*domain.BillingDocument, error)

	// ListDocuments retrieves a paginated list of billing documents.
	ListDocuments(ctx context.Context, params dto.ListBillingDocumentsParams) (*dto.ListBillingDocumentsResponse, error)
}

// BillingWriterSvc defines write operations for billing documents
type BillingWriterSvc interface {
	// CreateDocument issues an invoice or receipt with a generated document
	// number and a derived tax-inclusive total.
	CreateDocument(ctx context.Context, req dto.CreateBillingDocumentRequest, creatorID string) (*domain.BillingDocument, error)

	// ApplyPayment records an external payment against a document together
	// with its settlement transaction.
	ApplyPayment(ctx context.Context, documentID string, req dto.ApplyPaymentRequest, actorID string) (*domain.BillingDocument, error)

	// PayFromWallet settles a document from a wallet's available balance.
	PayFromWallet(ctx context.Context, documentID string, req dto.PayFromWalletRequest, actorID string) (*domain.BillingDocument, error)

	// CancelDocument cancels a non-terminal document.
	CancelDocument(ctx context.Context, documentID string, actorID string) (*domain.BillingDocument, error)

	// SweepOverdue escalates every past-due non-terminal document.
	SweepOverdue(ctx context.Context, actorID string) (*dto.OverdueSweepResponse, error)
}

// BillingSvcFacade combines all billing-related service interfaces
type BillingSvcFacade interface {
	BillingReaderSvc
	BillingWriterSvc
}
