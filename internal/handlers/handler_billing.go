package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hudumabill/ledger_backend/internal/apperrors"
	portssvc "github.com/hudumabill/ledger_backend/internal/core/ports/services"
	"github.com/hudumabill/ledger_backend/internal/core/services"
	"github.com/hudumabill/ledger_backend/internal/dto"
	"github.com/hudumabill/ledger_backend/internal/middleware"
)

// billingHandler handles HTTP requests related to invoices and receipts.
type billingHandler struct {
	billingService portssvc.BillingSvcFacade
}

// newBillingHandler creates a new billingHandler.
func newBillingHandler(bs portssvc.BillingSvcFacade) *billingHandler {
	return &billingHandler{billingService: bs}
}

// registerBillingRoutes registers routes related to billing documents.
func registerBillingRoutes(rg *gin.RouterGroup, billingService portssvc.BillingSvcFacade) {
	h := newBillingHandler(billingService)

	documents := rg.Group("/documents")
	{
		documents.POST("", h.createDocument)
		documents.GET("", h.listDocuments)
		documents.GET("/:id", h.getDocument)
		documents.POST("/:id/payments", h.applyPayment)
		documents.POST("/:id/pay-from-wallet", h.payFromWallet)
		documents.POST("/:id/cancel", h.cancelDocument)
		documents.POST("/sweep-overdue", h.sweepOverdue)
	}
}

// billingErrorResponse maps billing service errors onto HTTP status codes.
func billingErrorResponse(c *gin.Context, logger *slog.Logger, err error, action string) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Document not found"})
	case errors.Is(err, apperrors.ErrValidation),
		errors.Is(err, apperrors.ErrInvalidAmount),
		errors.Is(err, services.ErrCurrencyMismatch):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrInsufficientFunds):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrConflict), errors.Is(err, apperrors.ErrNotOperational):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		logger.Error("Failed to "+action, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to " + action})
	}
}

func (h *billingHandler) createDocument(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateBillingDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateDocument", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	doc, err := h.billingService.CreateDocument(c.Request.Context(), req, actorID)
	if err != nil {
		billingErrorResponse(c, logger, err, "create document")
		return
	}

	c.JSON(http.StatusCreated, dto.ToBillingDocumentResponse(doc))
}

func (h *billingHandler) getDocument(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	doc, err := h.billingService.GetDocumentByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		billingErrorResponse(c, logger, err, "retrieve document")
		return
	}

	c.JSON(http.StatusOK, dto.ToBillingDocumentResponse(doc))
}

func (h *billingHandler) listDocuments(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListBillingDocumentsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.billingService.ListDocuments(c.Request.Context(), params)
	if err != nil {
		billingErrorResponse(c, logger, err, "list documents")
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *billingHandler) applyPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.ApplyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	doc, err := h.billingService.ApplyPayment(c.Request.Context(), c.Param("id"), req, actorID)
	if err != nil {
		billingErrorResponse(c, logger, err, "apply payment")
		return
	}

	c.JSON(http.StatusOK, dto.ToBillingDocumentResponse(doc))
}

func (h *billingHandler) payFromWallet(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.PayFromWalletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	doc, err := h.billingService.PayFromWallet(c.Request.Context(), c.Param("id"), req, actorID)
	if err != nil {
		billingErrorResponse(c, logger, err, "pay from wallet")
		return
	}

	c.JSON(http.StatusOK, dto.ToBillingDocumentResponse(doc))
}

func (h *billingHandler) cancelDocument(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	actorID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	doc, err := h.billingService.CancelDocument(c.Request.Context(), c.Param("id"), actorID)
	if err != nil {
		billingErrorResponse(c, logger, err, "cancel document")
		return
	}

	c.JSON(http.StatusOK, dto.ToBillingDocumentResponse(doc))
}

func (h *billingHandler) sweepOverdue(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	actorID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	resp, err := h.billingService.SweepOverdue(c.Request.Context(), actorID)
	if err != nil {
		billingErrorResponse(c, logger, err, "sweep overdue documents")
		return
	}

	c.JSON(http.StatusOK, resp)
}
