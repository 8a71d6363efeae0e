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

// billingService issues invoices and receipts and applies payments
// against them. Payment mutations persist together with their settlement
// transaction record so neither can exist without the other.
type billingService struct {
	BaseService
	billingRepo  portsrepo.BillingRepositoryFacade
	currencyRepo portsrepo.CurrencyRepositoryFacade
	sequenceRepo portsrepo.SequenceRepository
	walletSvc    portssvc.WalletSvcFacade
}

// NewBillingService creates a new billing service.
func NewBillingService(billingRepo portsrepo.BillingRepositoryFacade, currencyRepo portsrepo.CurrencyRepositoryFacade, sequenceRepo portsrepo.SequenceRepository, walletSvc portssvc.WalletSvcFacade) portssvc.BillingSvcFacade {
	return &billingService{
		billingRepo:  billingRepo,
		currencyRepo: currencyRepo,
		sequenceRepo: sequenceRepo,
		walletSvc:    walletSvc,
	}
}

var _ portssvc.BillingSvcFacade = (*billingService)(nil)

// GetDocumentByID retrieves a specific billing document.
func (s *billingService) GetDocumentByID(ctx context.Context, documentID string) (*domain.BillingDocument, error) {
	doc, err := s.billingRepo.FindDocumentByID(ctx, documentID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find billing document", slog.String("document_id", documentID))
		}
		return nil, err
	}
	return doc, nil
}

// ListDocuments retrieves a paginated list of billing documents.
func (s *billingService) ListDocuments(ctx context.Context, params dto.ListBillingDocumentsParams) (*dto.ListBillingDocumentsResponse, error) {
	var kind *domain.DocumentKind
	if params.Kind != nil && *params.Kind != "" {
		k := domain.DocumentKind(*params.Kind)
		kind = &k
	}
	var status *domain.DocumentStatus
	if params.Status != nil && *params.Status != "" {
		st := domain.DocumentStatus(*params.Status)
		status = &st
	}

	docs, nextToken, err := s.billingRepo.ListDocuments(ctx, params.Limit, params.NextToken, kind, status, params.CustomerRef)
	if err != nil {
		s.LogError(ctx, err, "Failed to list billing documents")
		return nil, err
	}

	resp := &dto.ListBillingDocumentsResponse{
		Documents: make([]dto.BillingDocumentResponse, len(docs)),
		NextToken: nextToken,
	}
	for i := range docs {
		resp.Documents[i] = dto.ToBillingDocumentResponse(&docs[i])
	}
	return resp, nil
}

// CreateDocument issues an invoice or receipt with a generated document
// number and a derived tax-inclusive total.
func (s *billingService) CreateDocument(ctx context.Context, req dto.CreateBillingDocumentRequest, creatorID string) (*domain.BillingDocument, error) {
	if req.Payable.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: payable amount must be positive", apperrors.ErrInvalidAmount)
	}
	if req.Discount.IsNegative() || req.Discount.GreaterThan(req.Payable) {
		return nil, fmt.Errorf("%w: discount must be between zero and the payable amount", apperrors.ErrValidation)
	}
	if req.TaxRate.IsNegative() {
		return nil, fmt.Errorf("%w: tax rate cannot be negative", apperrors.ErrValidation)
	}
	if _, err := s.currencyRepo.FindCurrencyByCode(ctx, req.CurrencyCode); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: unknown currency %s", apperrors.ErrValidation, req.CurrencyCode)
		}
		return nil, err
	}

	kind := domain.DocumentKind(req.Kind)
	prefix := refnum.PrefixInvoice
	if kind == domain.KindReceipt {
		prefix = refnum.PrefixReceipt
	}

	now := time.Now()
	seq, err := s.sequenceRepo.NextSequence(ctx, prefix, refnum.DateKey(now))
	if err != nil {
		s.LogError(ctx, err, "Failed to generate document number")
		return nil, err
	}

	doc := domain.BillingDocument{
		DocumentID:     uuid.NewString(),
		DocumentNumber: refnum.Format(prefix, now, seq),
		Kind:           kind,
		CustomerRef:    req.CustomerRef,
		Description:    req.Description,
		CurrencyCode:   req.CurrencyCode,
		Payable:        req.Payable,
		Discount:       req.Discount,
		TaxRate:        req.TaxRate,
		Paid:           decimal.Zero,
		Status:         domain.DocPending,
		DueAt:          req.DueAt,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorID,
		},
	}
	doc.CalculateTotalWithTax()
	doc.RecalculateBalance()

	if err := s.billingRepo.SaveDocument(ctx, doc); err != nil {
		s.LogError(ctx, err, "Failed to save billing document", slog.String("document_id", doc.DocumentID))
		return nil, err
	}

	s.LogInfo(ctx, "Billing document created",
		slog.String("document_id", doc.DocumentID),
		slog.String("document_number", doc.DocumentNumber),
		slog.String("kind", string(kind)),
	)
	return &doc, nil
}

// ApplyPayment records an external payment against a document together
// with its settlement transaction.
func (s *billingService) ApplyPayment(ctx context.Context, documentID string, req dto.ApplyPaymentRequest, actorID string) (*domain.BillingDocument, error) {
	doc, err := s.billingRepo.FindDocumentByID(ctx, documentID)
	if err != nil {
		return nil, err
	}
	if doc.IsTerminal() {
		return nil, fmt.Errorf("%w: document %s is %s", apperrors.ErrConflict, documentID, doc.Status)
	}

	now := time.Now()
	if err := doc.ApplyPayment(req.Amount, now); err != nil {
		return nil, fmt.Errorf("%w: payment amount must be positive", err)
	}
	doc.LastUpdatedAt = now
	doc.LastUpdatedBy = actorID

	txn, err := s.settlementTransaction(ctx, doc, req.Amount, domain.TransactionAggregator(req.Aggregator), req.ExternalReference, actorID, now)
	if err != nil {
		return nil, err
	}

	if err := s.billingRepo.UpdateDocumentWithTransaction(ctx, *doc, *txn); err != nil {
		s.LogError(ctx, err, "Failed to apply payment", slog.String("document_id", documentID))
		return nil, err
	}

	s.LogInfo(ctx, "Payment applied",
		slog.String("document_id", documentID),
		slog.String("amount", req.Amount.String()),
		slog.String("status", string(doc.Status)),
	)
	return doc, nil
}

// PayFromWallet settles a document from a wallet's available balance.
// The wallet debit happens first; if persisting the document payment
// fails afterwards, the debit is compensated with a credit.
func (s *billingService) PayFromWallet(ctx context.Context, documentID string, req dto.PayFromWalletRequest, actorID string) (*domain.BillingDocument, error) {
	doc, err := s.billingRepo.FindDocumentByID(ctx, documentID)
	if err != nil {
		return nil, err
	}
	if doc.IsTerminal() {
		return nil, fmt.Errorf("%w: document %s is %s", apperrors.ErrConflict, documentID, doc.Status)
	}
	if doc.Balance.IsZero() {
		return nil, fmt.Errorf("%w: document %s has no outstanding balance", apperrors.ErrConflict, documentID)
	}

	amount := doc.Balance
	if req.Amount != nil {
		amount = *req.Amount
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: payment amount must be positive", apperrors.ErrInvalidAmount)
	}
	if amount.GreaterThan(doc.Balance) {
		return nil, fmt.Errorf("%w: payment %s exceeds outstanding balance %s", apperrors.ErrValidation, amount.String(), doc.Balance.String())
	}

	wallet, err := s.walletSvc.GetWalletByID(ctx, req.WalletID)
	if err != nil {
		return nil, err
	}
	if wallet.CurrencyCode != doc.CurrencyCode {
		return nil, fmt.Errorf("%w: wallet holds %s, document is %s", ErrCurrencyMismatch, wallet.CurrencyCode, doc.CurrencyCode)
	}

	debitReq := dto.WalletMutationRequest{
		Amount:      amount,
		Description: fmt.Sprintf("Payment for %s", doc.DocumentNumber),
		Metadata:    map[string]string{"documentID": doc.DocumentID},
	}
	_, walletTxn, err := s.walletSvc.Debit(ctx, req.WalletID, debitReq, actorID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if err := doc.ApplyPayment(amount, now); err != nil {
		s.compensateWalletDebit(ctx, req.WalletID, amount, doc.DocumentNumber, actorID)
		return nil, err
	}
	doc.LastUpdatedAt = now
	doc.LastUpdatedBy = actorID

	txn, err := s.settlementTransaction(ctx, doc, amount, domain.AggregatorCash, walletTxn.WalletTransactionID, actorID, now)
	if err != nil {
		s.compensateWalletDebit(ctx, req.WalletID, amount, doc.DocumentNumber, actorID)
		return nil, err
	}

	if err := s.billingRepo.UpdateDocumentWithTransaction(ctx, *doc, *txn); err != nil {
		s.LogError(ctx, err, "Failed to persist wallet payment, compensating debit", slog.String("document_id", documentID))
		s.compensateWalletDebit(ctx, req.WalletID, amount, doc.DocumentNumber, actorID)
		return nil, err
	}

	s.LogInfo(ctx, "Document paid from wallet",
		slog.String("document_id", documentID),
		slog.String("wallet_id", req.WalletID),
		slog.String("amount", amount.String()),
	)
	return doc, nil
}

// CancelDocument cancels a non-terminal, unpaid document.
func (s *billingService) CancelDocument(ctx context.Context, documentID string, actorID string) (*domain.BillingDocument, error) {
	doc, err := s.billingRepo.FindDocumentByID(ctx, documentID)
	if err != nil {
		return nil, err
	}
	if doc.IsTerminal() {
		return nil, fmt.Errorf("%w: document %s is %s", apperrors.ErrConflict, documentID, doc.Status)
	}
	if doc.Paid.IsPositive() {
		return nil, fmt.Errorf("%w: document %s has payments applied", apperrors.ErrConflict, documentID)
	}

	doc.Status = domain.DocCancelled
	doc.LastUpdatedAt = time.Now()
	doc.LastUpdatedBy = actorID

	if err := s.billingRepo.UpdateDocument(ctx, *doc); err != nil {
		s.LogError(ctx, err, "Failed to cancel billing document", slog.String("document_id", documentID))
		return nil, err
	}

	s.LogInfo(ctx, "Billing document cancelled", slog.String("document_id", documentID))
	return doc, nil
}

// SweepOverdue escalates every past-due non-terminal document.
func (s *billingService) SweepOverdue(ctx context.Context, actorID string) (*dto.OverdueSweepResponse, error) {
	now := time.Now()
	escalated, err := s.billingRepo.MarkOverdueDocuments(ctx, now, actorID)
	if err != nil {
		s.LogError(ctx, err, "Failed to sweep overdue documents")
		return nil, err
	}

	s.LogInfo(ctx, "Overdue sweep completed", slog.Int64("documents_escalated", escalated))
	return &dto.OverdueSweepResponse{
		DocumentsEscalated: escalated,
		SweptAt:            now,
	}, nil
}

// settlementTransaction builds the accepted transaction record paired
// with a document payment.
func (s *billingService) settlementTransaction(ctx context.Context, doc *domain.BillingDocument, amount decimal.Decimal, aggregator domain.TransactionAggregator, externalRef string, actorID string, now time.Time) (*domain.Transaction, error) {
	seq, err := s.sequenceRepo.NextSequence(ctx, refnum.PrefixTransaction, refnum.DateKey(now))
	if err != nil {
		s.LogError(ctx, err, "Failed to generate transaction code")
		return nil, err
	}

	completedAt := now
	return &domain.Transaction{
		TransactionID:     uuid.NewString(),
		TransactionCode:   refnum.Format(refnum.PrefixTransaction, now, seq),
		PartyA:            doc.CustomerRef,
		PartyB:            doc.DocumentNumber,
		Channel:           domain.ChannelC2B,
		Aggregator:        aggregator,
		Amount:            amount,
		CurrencyCode:      doc.CurrencyCode,
		Status:            domain.TxnAccepted,
		ExternalReference: externalRef,
		CompletedAt:       &completedAt,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		},
	}, nil
}

// compensateWalletDebit refunds a debit whose document payment could not
// be persisted. A failed refund is logged loudly for manual follow-up.
func (s *billingService) compensateWalletDebit(ctx context.Context, walletID string, amount decimal.Decimal, documentNumber string, actorID string) {
	creditReq := dto.WalletMutationRequest{
		Amount:      amount,
		Description: fmt.Sprintf("Refund of failed payment for %s", documentNumber),
	}
	if _, _, err := s.walletSvc.Credit(ctx, walletID, creditReq, actorID); err != nil {
		s.LogError(ctx, err, "Failed to compensate wallet debit",
			slog.String("wallet_id", walletID),
			slog.String("amount", amount.String()),
			slog.String("document_number", documentNumber),
		)
	}
}
