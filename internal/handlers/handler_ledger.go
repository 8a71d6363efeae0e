package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hudumabill/ledger_backend/internal/apperrors"
	portssvc "github.com/hudumabill/ledger_backend/internal/core/ports/services"
	"github.com/hudumabill/ledger_backend/internal/dto"
	"github.com/hudumabill/ledger_backend/internal/middleware"
)

// ledgerHandler handles HTTP requests related to ledger entries.
type ledgerHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

// newLedgerHandler creates a new ledgerHandler.
func newLedgerHandler(ls portssvc.LedgerSvcFacade) *ledgerHandler {
	return &ledgerHandler{ledgerService: ls}
}

// registerLedgerRoutes registers routes related to ledger entries.
func registerLedgerRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade) {
	h := newLedgerHandler(ledgerService)

	ledger := rg.Group("/ledger")
	{
		ledger.GET("/entries/:id", h.getEntry)
		ledger.GET("/accounts/:accountID/entries", h.listEntriesByAccount)
		ledger.POST("/entries/reconcile", h.markEntriesReconciled)
	}
}

func (h *ledgerHandler) getEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("id")

	entry, err := h.ledgerService.GetEntryByID(c.Request.Context(), entryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Ledger entry not found"})
		} else {
			logger.Error("Failed to get ledger entry from service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve ledger entry"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToLedgerEntryResponse(entry))
}

func (h *ledgerHandler) listEntriesByAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("accountID")

	var params dto.ListLedgerEntriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.ledgerService.ListEntriesByAccount(c.Request.Context(), accountID, params)
	if err != nil {
		logger.Error("Failed to list ledger entries from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list ledger entries"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *ledgerHandler) markEntriesReconciled(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.MarkReconciledRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	updated, err := h.ledgerService.MarkEntriesReconciled(c.Request.Context(), req.EntryIDs, actorID)
	if err != nil {
		logger.Error("Failed to mark entries reconciled in service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to mark entries reconciled"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"requested": len(req.EntryIDs), "updated": updated})
}
