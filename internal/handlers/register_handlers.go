package handlers

import (
	"github.com/gin-gonic/gin"

	portssvc "github.com/hudumabill/ledger_backend/internal/core/ports/services"
	"github.com/hudumabill/ledger_backend/internal/middleware"
	"github.com/hudumabill/ledger_backend/internal/platform/config"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	setupAPIV1Routes(r, cfg, services)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	service *portssvc.ServiceContainer,
) {
	// Every v1 route requires the actor identity the API gateway injects.
	v1 := r.Group("/api/v1", middleware.ActorIdentity())

	registerCurrencyRoutes(v1, service.Currency)
	registerAccountRoutes(v1, service.Account)
	registerJournalRoutes(v1, service.Journal)
	registerLedgerRoutes(v1, service.Ledger)
	registerTransactionRoutes(v1, service.Transaction)
	registerWalletRoutes(v1, service.Wallet)
	registerBillingRoutes(v1, service.Billing)
}
