package handlers

import (
	portssvc "github.com/cashg/cashg-ledger/internal/core/ports/services"
	"github.com/cashg/cashg-ledger/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
)

// RegisterRoutes sets up the internal RPC surface the web layer calls into.
// Every /api/v1 route requires the pre-authenticated caller identity header
// except account opening, which receives the new identity in its body.
func RegisterRoutes(r *gin.Engine, services *portssvc.ServiceContainer, limiterInstance *limiter.Limiter) {
	RegisterCustomValidators()

	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	v1 := r.Group("/api/v1")
	if limiterInstance != nil {
		v1.Use(middleware.RateLimit(limiterInstance))
	}

	registerAccountRoutes(v1, services.Account)
	registerLedgerRoutes(v1, services.Ledger)
	registerTransferRoutes(v1, services.Transfer)
}
