package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/hudumabill/ledger_backend/internal/apperrors"
	"github.com/hudumabill/ledger_backend/internal/core/domain"
	portsrepo "github.com/hudumabill/ledger_backend/internal/core/ports/repositories"
	"github.com/hudumabill/ledger_backend/internal/models"
	"github.com/hudumabill/ledger_backend/internal/utils/mapping"
	"github.com/hudumabill/ledger_backend/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type PgxBillingRepository struct {
	BaseRepository
}

// newPgxBillingRepository creates a new repository for billing documents.
func newPgxBillingRepository(base BaseRepository) portsrepo.BillingRepositoryFacade {
	return &PgxBillingRepository{BaseRepository: base}
}

var _ portsrepo.BillingRepositoryFacade = (*PgxBillingRepository)(nil)

const billingColumns = `document_id, document_number, kind, customer_ref, description, currency_code,
	payable, discount, tax_rate, total_with_tax, paid, balance, status, due_at, paid_at,
	created_at, created_by, last_updated_at, last_updated_by`

func scanBillingRow(row rowScanner) (models.BillingDocument, error) {
	var m models.BillingDocument
	err := row.Scan(
		&m.DocumentID,
		&m.DocumentNumber,
		&m.Kind,
		&m.CustomerRef,
		&m.Description,
		&m.CurrencyCode,
		&m.Payable,
		&m.Discount,
		&m.TaxRate,
		&m.TotalWithTax,
		&m.Paid,
		&m.Balance,
		&m.Status,
		&m.DueAt,
		&m.PaidAt,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveDocument inserts a new billing document.
func (r *PgxBillingRepository) SaveDocument(ctx context.Context, doc domain.BillingDocument) error {
	ctx, cancel := r.mutationContext(ctx)
	defer cancel()
	m := mapping.ToModelBillingDocument(doc)

	query := `
		INSERT INTO billing_documents (` + billingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.DocumentID,
		m.DocumentNumber,
		m.Kind,
		m.CustomerRef,
		m.Description,
		m.CurrencyCode,
		m.Payable,
		m.Discount,
		m.TaxRate,
		m.TotalWithTax,
		m.Paid,
		m.Balance,
		m.Status,
		m.DueAt,
		m.PaidAt,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: document %s already exists", apperrors.ErrDuplicate, m.DocumentID)
		}
		return fmt.Errorf("failed to save document %s: %w", m.DocumentID, err)
	}
	return nil
}

// FindDocumentByID retrieves a billing document by its ID.
func (r *PgxBillingRepository) FindDocumentByID(ctx context.Context, documentID string) (*domain.BillingDocument, error) {
	query := `SELECT ` + billingColumns + ` FROM billing_documents WHERE document_id = $1;`

	m, err := scanBillingRow(r.Pool.QueryRow(ctx, query, documentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find document "+documentID, err)
	}

	doc := mapping.ToDomainBillingDocument(m)
	return &doc, nil
}

// ListDocuments retrieves a paginated list of billing documents.
func (r *PgxBillingRepository) ListDocuments(ctx context.Context, limit int, nextToken *string, kind *domain.DocumentKind, status *domain.DocumentStatus, customerRef *string) ([]domain.BillingDocument, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	baseQuery := `SELECT ` + billingColumns + ` FROM billing_documents WHERE 1=1`
	orderByClause := `ORDER BY created_at DESC, document_id DESC`
	args := []interface{}{}

	if kind != nil {
		args = append(args, string(*kind))
		baseQuery += ` AND kind = $` + strconv.Itoa(len(args))
	}
	if status != nil {
		args = append(args, string(*status))
		baseQuery += ` AND status = $` + strconv.Itoa(len(args))
	}
	if customerRef != nil && *customerRef != "" {
		args = append(args, *customerRef)
		baseQuery += ` AND customer_ref = $` + strconv.Itoa(len(args))
	}
	if nextToken != nil && *nextToken != "" {
		lastCreatedAt, lastID, decodeErr := pagination.DecodeCursor(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		args = append(args, lastCreatedAt, lastID)
		baseQuery += ` AND (created_at, document_id) < ($` + strconv.Itoa(len(args)-1) + `, $` + strconv.Itoa(len(args)) + `)`
	}
	args = append(args, fetchLimit)
	query := baseQuery + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)) + ";"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query billing documents", err)
	}
	defer rows.Close()

	modelDocs := make([]models.BillingDocument, 0, fetchLimit)
	for rows.Next() {
		m, err := scanBillingRow(rows)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan billing document row", err)
		}
		modelDocs = append(modelDocs, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating billing document rows", err)
	}

	var nextTokenVal *string
	if len(modelDocs) > limit {
		modelDocs = modelDocs[:limit]
		last := modelDocs[len(modelDocs)-1]
		token := pagination.EncodeCursor(last.CreatedAt, last.DocumentID)
		nextTokenVal = &token
	}

	docs := make([]domain.BillingDocument, len(modelDocs))
	for i, m := range modelDocs {
		docs[i] = mapping.ToDomainBillingDocument(m)
	}
	return docs, nextTokenVal, nil
}

const updateDocumentQuery = `
	UPDATE billing_documents
	SET payable = $2, discount = $3, tax_rate = $4, total_with_tax = $5,
	    paid = $6, balance = $7, status = $8, due_at = $9, paid_at = $10,
	    last_updated_at = $11, last_updated_by = $12
	WHERE document_id = $1;
`

// UpdateDocument updates a document's payment and status fields.
func (r *PgxBillingRepository) UpdateDocument(ctx context.Context, doc domain.BillingDocument) error {
	ctx, cancel := r.mutationContext(ctx)
	defer cancel()
	m := mapping.ToModelBillingDocument(doc)

	tag, err := r.Pool.Exec(ctx, updateDocumentQuery,
		m.DocumentID,
		m.Payable,
		m.Discount,
		m.TaxRate,
		m.TotalWithTax,
		m.Paid,
		m.Balance,
		m.Status,
		m.DueAt,
		m.PaidAt,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update document "+m.DocumentID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// UpdateDocumentWithTransaction persists the payment mutation on the
// document together with its settlement transaction atomically.
func (r *PgxBillingRepository) UpdateDocumentWithTransaction(ctx context.Context, doc domain.BillingDocument, txn domain.Transaction) error {
	ctx, cancel := r.mutationContext(ctx)
	defer cancel()
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelBillingDocument(doc)
	tag, err := tx.Exec(ctx, updateDocumentQuery,
		m.DocumentID,
		m.Payable,
		m.Discount,
		m.TaxRate,
		m.TotalWithTax,
		m.Paid,
		m.Balance,
		m.Status,
		m.DueAt,
		m.PaidAt,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update document "+m.DocumentID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	modelTxn := mapping.ToModelTransaction(txn)
	txnQuery := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
	`
	_, err = tx.Exec(ctx, txnQuery,
		modelTxn.TransactionID,
		modelTxn.TransactionCode,
		modelTxn.PartyA,
		modelTxn.PartyB,
		modelTxn.Channel,
		modelTxn.Aggregator,
		modelTxn.Amount,
		modelTxn.CurrencyCode,
		modelTxn.Status,
		modelTxn.ExternalReference,
		modelTxn.ResponsePayload,
		modelTxn.CompletedAt,
		modelTxn.CreatedAt,
		modelTxn.CreatedBy,
		modelTxn.LastUpdatedAt,
		modelTxn.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert settlement transaction for document "+m.DocumentID, err)
	}

	return r.Commit(ctx, tx)
}

// MarkOverdueDocuments escalates every non-terminal document whose due
// date has passed and returns the number of rows changed.
func (r *PgxBillingRepository) MarkOverdueDocuments(ctx context.Context, now time.Time, actorID string) (int64, error) {
	ctx, cancel := r.mutationContext(ctx)
	defer cancel()
	query := `
		UPDATE billing_documents
		SET status = $3, last_updated_at = $1, last_updated_by = $2
		WHERE due_at IS NOT NULL AND due_at < $1
		  AND status NOT IN ('SETTLED', 'CANCELLED', 'REFUNDED', 'OVERDUE');
	`
	tag, err := r.Pool.Exec(ctx, query, now, actorID, string(domain.DocOverdue))
	if err != nil {
		return 0, apperrors.NewAppError(500, "failed to mark overdue documents", err)
	}
	return tag.RowsAffected(), nil
}
