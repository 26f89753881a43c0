package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	portssvc "github.com/yoddle/coins_backend/internal/core/ports/services"
	"github.com/yoddle/coins_backend/internal/middleware"
	"github.com/yoddle/coins_backend/internal/platform/config"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	r.GET("/", getHome)
	r.GET("/health", getHealth)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Register public authentication routes
	registerAuthRoutes(r, services.Auth)

	// Setup API v1 routes with Auth Middleware, passing service interfaces
	setupAPIV1Routes(r, cfg, services)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	// Apply AuthMiddleware to the entire v1 group
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret))

	// Self-service routes for the authenticated employee
	registerLedgerRoutes(v1, services.Ledger, services.Reporting)

	// Admin surfaces sit behind the admin gate
	admin := v1.Group("/admin", middleware.AdminRequired(services.Auth))
	registerAdminLedgerRoutes(admin, services.Ledger)
	registerAllocationRoutes(admin, services.Allocation)
	registerReportingRoutes(admin, services.Reporting)
	registerCompanyRoutes(admin, services.Company)
}
