package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/cashg/cashg-ledger/internal/core/ports/services"
	"github.com/cashg/cashg-ledger/internal/dto"
	"github.com/cashg/cashg-ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// transferHandler handles two-account transfers.
type transferHandler struct {
	transferService portssvc.TransferSvcFacade
}

// registerTransferRoutes registers the transfer routes.
func registerTransferRoutes(rg *gin.RouterGroup, transferService portssvc.TransferSvcFacade) {
	h := &transferHandler{transferService: transferService}

	transfers := rg.Group("/transfers", middleware.CallerIdentity())
	{
		transfers.POST("", h.createTransfer)
	}
}

// createTransfer moves money from the caller's account to the recipient
// resolved by username.
func (h *transferHandler) createTransfer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateTransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateTransfer", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	callerID, ok := middleware.GetCallerIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing caller identity"})
		return
	}

	transfer, sender, err := h.transferService.Transfer(c.Request.Context(), callerID, req)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTransferResponse(transfer, sender))
}
