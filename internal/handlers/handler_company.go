package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yoddle/coins_backend/internal/apperrors"
	portssvc "github.com/yoddle/coins_backend/internal/core/ports/services"
	"github.com/yoddle/coins_backend/internal/dto"
	"github.com/yoddle/coins_backend/internal/middleware"
)

// companyHandler handles company plan management.
type companyHandler struct {
	companyService portssvc.CompanySvc
}

func newCompanyHandler(companyService portssvc.CompanySvc) *companyHandler {
	return &companyHandler{companyService: companyService}
}

// registerCompanyRoutes registers the admin-only company plan routes.
func registerCompanyRoutes(rg *gin.RouterGroup, companyService portssvc.CompanySvc) {
	h := newCompanyHandler(companyService)

	companies := rg.Group("/companies")
	{
		companies.POST("", h.createCompanyPlan)
		companies.GET("", h.listCompanyPlans)
	}
}

func (h *companyHandler) createCompanyPlan(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateCompanyPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateCompanyPlan", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	plan, err := h.companyService.CreateCompanyPlan(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			c.JSON(http.StatusConflict, gin.H{"error": "Company plan already exists"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to create company plan", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create company plan"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToCompanyPlanResponse(plan))
}

func (h *companyHandler) listCompanyPlans(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	plans, err := h.companyService.ListCompanyPlans(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list company plans", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list company plans"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"companies": dto.ToListCompanyPlanResponse(plans), "total": len(plans)})
}
