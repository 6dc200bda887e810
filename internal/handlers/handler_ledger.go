package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/cashg/cashg-ledger/internal/core/domain"
	portssvc "github.com/cashg/cashg-ledger/internal/core/ports/services"
	"github.com/cashg/cashg-ledger/internal/dto"
	"github.com/cashg/cashg-ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// ledgerHandler handles deposits, withdrawals and history.
type ledgerHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

// registerLedgerRoutes registers the single-account ledger routes.
func registerLedgerRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade) {
	h := &ledgerHandler{ledgerService: ledgerService}

	accounts := rg.Group("/accounts", middleware.CallerIdentity())
	{
		accounts.POST("/deposit", h.deposit)
		accounts.POST("/withdraw", h.withdraw)
	}
	rg.GET("/transactions", middleware.CallerIdentity(), h.history)
}

func (h *ledgerHandler) deposit(c *gin.Context) {
	h.applyMovement(c, h.ledgerService.Deposit)
}

func (h *ledgerHandler) withdraw(c *gin.Context) {
	h.applyMovement(c, h.ledgerService.Withdraw)
}

// applyMovement is the shared request flow of deposit and withdraw: bind
// the amount string, resolve the caller, invoke the operation and return
// the updated account.
func (h *ledgerHandler) applyMovement(c *gin.Context, op func(ctx context.Context, userID, amount string) (*domain.Account, error)) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.AmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for balance movement", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	callerID, ok := middleware.GetCallerIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing caller identity"})
		return
	}

	account, err := op(c.Request.Context(), callerID, req.Amount)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// history returns the caller's ledger entries, newest first.
func (h *ledgerHandler) history(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	callerID, ok := middleware.GetCallerIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing caller identity"})
		return
	}

	transactions, err := h.ledgerService.History(c.Request.Context(), callerID, params.Limit)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToListTransactionsResponse(transactions))
}
