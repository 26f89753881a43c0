package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yoddle/coins_backend/internal/apperrors"
	"github.com/yoddle/coins_backend/internal/core/domain"
	portssvc "github.com/yoddle/coins_backend/internal/core/ports/services"
	"github.com/yoddle/coins_backend/internal/dto"
	"github.com/yoddle/coins_backend/internal/middleware"
)

// ledgerHandler handles HTTP requests that mutate or read single accounts.
type ledgerHandler struct {
	ledgerService    portssvc.LedgerSvc
	reportingService portssvc.ReportingSvc
}

func newLedgerHandler(ledgerService portssvc.LedgerSvc, reportingService portssvc.ReportingSvc) *ledgerHandler {
	return &ledgerHandler{
		ledgerService:    ledgerService,
		reportingService: reportingService,
	}
}

// registerLedgerRoutes registers the self-service account routes.
func registerLedgerRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvc, reportingService portssvc.ReportingSvc) {
	h := newLedgerHandler(ledgerService, reportingService)

	rg.GET("/balance", h.getBalance)
	rg.GET("/transactions", h.listTransactions)
	rg.POST("/purchase", h.purchase)
}

// registerAdminLedgerRoutes registers the admin-only mutation routes.
func registerAdminLedgerRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvc) {
	h := newLedgerHandler(ledgerService, nil)

	coins := rg.Group("/coins")
	{
		coins.POST("/credit", h.credit)
		coins.POST("/debit", h.debit)
	}
}

// getBalance returns the caller's own ledger, enriched with user and company
// details.
func (h *ledgerHandler) getBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	resp, err := h.reportingService.BalanceDetails(c.Request.Context(), userID)
	if err != nil {
		logger.Error("Failed to get balance", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve balance"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// listTransactions returns one page of the caller's own history.
func (h *ledgerHandler) listTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Invalid transaction list params", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	var period *domain.Period
	if params.Period != nil {
		p := domain.Period(*params.Period)
		period = &p
	}

	resp, err := h.reportingService.ListTransactions(c.Request.Context(), userID, period, params.Limit, params.Offset)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to list transactions", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve transactions"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// purchase debits the caller's own account for a benefit purchase.
func (h *ledgerHandler) purchase(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.PurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for Purchase", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	account, err := h.ledgerService.Debit(c.Request.Context(), userID, req.Amount, req.Description, req.ReferenceID, nil)
	if err != nil {
		h.writeMutationError(c, logger, err, "Failed to complete purchase")
		return
	}

	c.JSON(http.StatusOK, dto.MutationResponse{AccountID: account.AccountID, NewBalance: account.Balance})
}

// credit adds coins to any account on behalf of the admin.
func (h *ledgerHandler) credit(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.CreditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for Credit", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	account, err := h.ledgerService.Credit(c.Request.Context(), req.AccountID, req.Amount, domain.TransactionType(req.Type), req.Description, &actorID)
	if err != nil {
		h.writeMutationError(c, logger, err, "Failed to credit account")
		return
	}

	logger.Info("Account credited", slog.String("account_id", account.AccountID))
	c.JSON(http.StatusOK, dto.MutationResponse{AccountID: account.AccountID, NewBalance: account.Balance})
}

// debit removes coins from any account on behalf of the admin.
func (h *ledgerHandler) debit(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.DebitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for Debit", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	account, err := h.ledgerService.Debit(c.Request.Context(), req.AccountID, req.Amount, req.Description, req.ReferenceID, &actorID)
	if err != nil {
		h.writeMutationError(c, logger, err, "Failed to debit account")
		return
	}

	logger.Info("Account debited", slog.String("account_id", account.AccountID))
	c.JSON(http.StatusOK, dto.MutationResponse{AccountID: account.AccountID, NewBalance: account.Balance})
}

// writeMutationError maps mutation engine errors onto HTTP statuses.
func (h *ledgerHandler) writeMutationError(c *gin.Context, logger *slog.Logger, err error, fallback string) {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrInsufficientFunds):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Insufficient balance"})
	case errors.Is(err, apperrors.ErrConcurrencyConflict):
		// Retries are exhausted at this point; the client may try again.
		c.JSON(http.StatusConflict, gin.H{"error": "Account is being updated concurrently, please retry"})
	default:
		logger.Error(fallback, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}
