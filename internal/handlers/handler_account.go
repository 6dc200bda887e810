package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/cashg/cashg-ledger/internal/core/ports/services"
	"github.com/cashg/cashg-ledger/internal/dto"
	"github.com/cashg/cashg-ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// accountHandler handles requests related to account lifecycle.
type accountHandler struct {
	accountService portssvc.AccountSvcFacade
}

// registerAccountRoutes registers routes related to accounts.
func registerAccountRoutes(rg *gin.RouterGroup, accountService portssvc.AccountSvcFacade) {
	h := &accountHandler{accountService: accountService}

	accounts := rg.Group("/accounts")
	{
		accounts.POST("", h.openAccount)
		accounts.GET("/me", middleware.CallerIdentity(), h.getMyAccount)
		accounts.DELETE("/me", middleware.CallerIdentity(), h.deactivateMyAccount)
	}
}

// openAccount creates a new user identity and their account with a zero
// balance. The identity arrives in the body because the caller does not
// exist yet.
func (h *accountHandler) openAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.OpenAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for OpenAccount", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	account, err := h.accountService.OpenAccount(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToAccountResponse(account))
}

// getMyAccount returns the caller's account snapshot.
func (h *accountHandler) getMyAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	callerID, ok := middleware.GetCallerIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing caller identity"})
		return
	}

	account, err := h.accountService.GetAccountForUser(c.Request.Context(), callerID)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// deactivateMyAccount blocks further debits on the caller's account.
func (h *accountHandler) deactivateMyAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	callerID, ok := middleware.GetCallerIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing caller identity"})
		return
	}

	if err := h.accountService.DeactivateAccount(c.Request.Context(), callerID); err != nil {
		respondServiceError(c, logger, err)
		return
	}

	c.Status(http.StatusNoContent)
}
