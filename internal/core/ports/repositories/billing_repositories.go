package repositories

import (
	"context"
	"time"

	"github.com/hudumabill/ledger_backend/internal/core/domain"
)

// BillingReader defines read operations for billing document data
type BillingReader interface {
	// FindDocumentByID retrieves a specific billing document by its unique identifier.
	FindDocumentByID(ctx context.Context, documentID string) (*domain.BillingDocument, error)

	// ListDocuments retrieves a paginated list of billing documents using
	// token-based pagination, with optional kind/status/customer filters.
	ListDocuments(ctx context.Context, limit int, nextToken *string, kind *domain.DocumentKind, status *domain.DocumentStatus, customerRef *string) ([]domain.BillingDocument, *string, error)
}

// BillingWriter defines write operations for billing document data
type BillingWriter interface {
	// SaveDocument persists a new billing document.
	SaveDocument(ctx context.Context, doc domain.BillingDocument) error

	// UpdateDocument updates a document's payment and status fields.
	UpdateDocument(ctx context.Context, doc domain.BillingDocument) error

	// UpdateDocumentWithTransaction persists the payment mutation on the
	// document together with the settlement transaction in one database
	// transaction, so a partial write can never separate the two.
	UpdateDocumentWithTransaction(ctx context.Context, doc domain.BillingDocument, txn domain.Transaction) error

	// MarkOverdueDocuments escalates every non-terminal document whose due
	// date has passed and returns the number of rows changed.
	MarkOverdueDocuments(ctx context.Context, now time.Time, actorID string) (int64, error)
}

// BillingRepositoryFacade combines all billing-related repository interfaces
type BillingRepositoryFacade interface {
	BillingReader
	BillingWriter
}

// BillingRepositoryWithTx extends BillingRepositoryFacade with transaction capabilities
type BillingRepositoryWithTx interface {
	BillingRepositoryFacade
	TransactionManager
}
