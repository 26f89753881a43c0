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

// reportingHandler handles the admin report routes.
type reportingHandler struct {
	reportingService portssvc.ReportingSvc
}

func newReportingHandler(reportingService portssvc.ReportingSvc) *reportingHandler {
	return &reportingHandler{reportingService: reportingService}
}

// registerReportingRoutes registers the admin-only report routes.
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingSvc) {
	h := newReportingHandler(reportingService)

	reports := rg.Group("/reports")
	{
		reports.GET("/balances", h.getBalanceReport)
		reports.GET("/transactions", h.getTransactionReport)
		reports.GET("/companies", h.getCompanyStatistics)
	}
}

func (h *reportingHandler) getBalanceReport(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.BalanceReportParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	rows, err := h.reportingService.BalanceReport(c.Request.Context(), params.CompanyID)
	if err != nil {
		logger.Error("Failed to build balance report", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate report"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"balances": rows, "total": len(rows)})
}

func (h *reportingHandler) getTransactionReport(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.TransactionReportParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	var period *domain.Period
	if params.Period != nil {
		p := domain.Period(*params.Period)
		period = &p
	}

	resp, err := h.reportingService.TransactionReport(c.Request.Context(), period, params.Limit, params.Offset)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to build transaction report", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate report"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *reportingHandler) getCompanyStatistics(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	rows, err := h.reportingService.CompanyStatistics(c.Request.Context())
	if err != nil {
		logger.Error("Failed to build company statistics", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate report"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"companies": rows, "total": len(rows)})
}
