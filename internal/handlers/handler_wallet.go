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

// walletHandler handles HTTP requests related to wallets.
type walletHandler struct {
	walletService portssvc.WalletSvcFacade
}

// newWalletHandler creates a new walletHandler.
func newWalletHandler(ws portssvc.WalletSvcFacade) *walletHandler {
	return &walletHandler{walletService: ws}
}

// registerWalletRoutes registers routes related to wallets.
func registerWalletRoutes(rg *gin.RouterGroup, walletService portssvc.WalletSvcFacade) {
	h := newWalletHandler(walletService)

	wallets := rg.Group("/wallets")
	{
		wallets.POST("", h.createWallet)
		wallets.GET("/:id", h.getWallet)
		wallets.GET("/user/:userID", h.listWalletsByUser)
		wallets.GET("/:id/transactions", h.listWalletTransactions)
		wallets.POST("/:id/activate", h.activateWallet)
		wallets.PUT("/:id/limits", h.updateWalletLimits)
		wallets.POST("/:id/lock", h.lockWallet)
		wallets.POST("/:id/unlock", h.unlockWallet)
		wallets.POST("/:id/credit", h.creditWallet)
		wallets.POST("/:id/debit", h.debitWallet)
		wallets.POST("/:id/holds/release", h.releaseHold)
		wallets.POST("/:id/holds/complete", h.completeHold)
		wallets.POST("/:id/transfer", h.transfer)
		wallets.POST("/:id/reconcile", h.reconcileWallet)
	}
}

// walletErrorResponse maps wallet service errors onto HTTP status codes.
func walletErrorResponse(c *gin.Context, logger *slog.Logger, err error, action string) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Wallet not found"})
	case errors.Is(err, apperrors.ErrInvalidAmount),
		errors.Is(err, apperrors.ErrValidation),
		errors.Is(err, apperrors.ErrInvalidHoldAmount),
		errors.Is(err, apperrors.ErrIdenticalAccounts),
		errors.Is(err, services.ErrCurrencyMismatch):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrInsufficientFunds):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrNotOperational), errors.Is(err, apperrors.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrDuplicate):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		logger.Error("Failed to "+action, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to " + action})
	}
}

func (h *walletHandler) createWallet(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateWalletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateWallet", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	wallet, err := h.walletService.CreateWallet(c.Request.Context(), req, actorID)
	if err != nil {
		walletErrorResponse(c, logger, err, "create wallet")
		return
	}

	c.JSON(http.StatusCreated, dto.ToWalletResponse(wallet))
}

func (h *walletHandler) getWallet(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	wallet, err := h.walletService.GetWalletByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		walletErrorResponse(c, logger, err, "retrieve wallet")
		return
	}

	c.JSON(http.StatusOK, dto.ToWalletResponse(wallet))
}

func (h *walletHandler) listWalletsByUser(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	wallets, err := h.walletService.ListWalletsByUser(c.Request.Context(), c.Param("userID"))
	if err != nil {
		walletErrorResponse(c, logger, err, "list wallets")
		return
	}

	responses := make([]dto.WalletResponse, len(wallets))
	for i := range wallets {
		responses[i] = dto.ToWalletResponse(&wallets[i])
	}
	c.JSON(http.StatusOK, gin.H{"wallets": responses})
}

func (h *walletHandler) listWalletTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListWalletTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.walletService.ListWalletTransactions(c.Request.Context(), c.Param("id"), params)
	if err != nil {
		walletErrorResponse(c, logger, err, "list wallet transactions")
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *walletHandler) activateWallet(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	actorID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	wallet, err := h.walletService.ActivateWallet(c.Request.Context(), c.Param("id"), actorID)
	if err != nil {
		walletErrorResponse(c, logger, err, "activate wallet")
		return
	}

	c.JSON(http.StatusOK, dto.ToWalletResponse(wallet))
}

func (h *walletHandler) updateWalletLimits(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.UpdateWalletLimitsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	wallet, err := h.walletService.UpdateWalletLimits(c.Request.Context(), c.Param("id"), req, actorID)
	if err != nil {
		walletErrorResponse(c, logger, err, "update wallet limits")
		return
	}

	c.JSON(http.StatusOK, dto.ToWalletResponse(wallet))
}

func (h *walletHandler) lockWallet(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.LockWalletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	wallet, err := h.walletService.LockWallet(c.Request.Context(), c.Param("id"), req, actorID)
	if err != nil {
		walletErrorResponse(c, logger, err, "lock wallet")
		return
	}

	c.JSON(http.StatusOK, dto.ToWalletResponse(wallet))
}

func (h *walletHandler) unlockWallet(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	actorID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	wallet, err := h.walletService.UnlockWallet(c.Request.Context(), c.Param("id"), actorID)
	if err != nil {
		walletErrorResponse(c, logger, err, "unlock wallet")
		return
	}

	c.JSON(http.StatusOK, dto.ToWalletResponse(wallet))
}

func (h *walletHandler) creditWallet(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.WalletMutationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	wallet, txn, err := h.walletService.Credit(c.Request.Context(), c.Param("id"), req, actorID)
	if err != nil {
		walletErrorResponse(c, logger, err, "credit wallet")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"wallet":      dto.ToWalletResponse(wallet),
		"transaction": dto.ToWalletTransactionResponse(txn),
	})
}

func (h *walletHandler) debitWallet(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.WalletMutationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	wallet, txn, err := h.walletService.Debit(c.Request.Context(), c.Param("id"), req, actorID)
	if err != nil {
		walletErrorResponse(c, logger, err, "debit wallet")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"wallet":      dto.ToWalletResponse(wallet),
		"transaction": dto.ToWalletTransactionResponse(txn),
	})
}

func (h *walletHandler) releaseHold(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.HoldAmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	wallet, err := h.walletService.ReleaseHold(c.Request.Context(), c.Param("id"), req.Amount, actorID)
	if err != nil {
		walletErrorResponse(c, logger, err, "release hold")
		return
	}

	c.JSON(http.StatusOK, dto.ToWalletResponse(wallet))
}

func (h *walletHandler) completeHold(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.HoldAmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	wallet, err := h.walletService.CompleteHold(c.Request.Context(), c.Param("id"), req.Amount, actorID)
	if err != nil {
		walletErrorResponse(c, logger, err, "complete hold")
		return
	}

	c.JSON(http.StatusOK, dto.ToWalletResponse(wallet))
}

func (h *walletHandler) transfer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	resp, err := h.walletService.Transfer(c.Request.Context(), c.Param("id"), req, actorID)
	if err != nil {
		walletErrorResponse(c, logger, err, "transfer")
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *walletHandler) reconcileWallet(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	actorID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	result, err := h.walletService.ReconcileWallet(c.Request.Context(), c.Param("id"), actorID)
	if err != nil {
		walletErrorResponse(c, logger, err, "reconcile wallet")
		return
	}

	c.JSON(http.StatusOK, dto.ToWalletReconciliationResponse(result))
}
