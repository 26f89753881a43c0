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

// allocationHandler handles HTTP requests for batch coin allocations.
type allocationHandler struct {
	allocationService portssvc.AllocationSvc
}

func newAllocationHandler(allocationService portssvc.AllocationSvc) *allocationHandler {
	return &allocationHandler{allocationService: allocationService}
}

// registerAllocationRoutes registers the admin-only allocation routes.
func registerAllocationRoutes(rg *gin.RouterGroup, allocationService portssvc.AllocationSvc) {
	h := newAllocationHandler(allocationService)

	allocations := rg.Group("/allocations")
	{
		allocations.POST("/monthly", h.runMonthlyAllocation)
		allocations.POST("/bulk", h.bulkAllocate)
	}
}

// runMonthlyAllocation triggers the monthly allowance run across every
// company with an active plan.
func (h *allocationHandler) runMonthlyAllocation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	result, err := h.allocationService.RunMonthlyAllocation(c.Request.Context())
	if err != nil {
		logger.Error("Monthly allocation failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to run monthly allocation"})
		return
	}

	c.JSON(http.StatusOK, result)
}

// bulkAllocate credits every employee of one company.
func (h *allocationHandler) bulkAllocate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.BulkAllocateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for BulkAllocate", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	result, err := h.allocationService.BulkAllocate(c.Request.Context(), req.CompanyID, req.AmountPerUser, req.Description, actorID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Company plan not found"})
		} else {
			logger.Error("Bulk allocation failed", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to run bulk allocation"})
		}
		return
	}

	c.JSON(http.StatusOK, result)
}
