package services

import (
	"github.com/redis/go-redis/v9"
	"github.com/yoddle/coins_backend/internal/core/ports"
	portssvc "github.com/yoddle/coins_backend/internal/core/ports/services"
	"github.com/yoddle/coins_backend/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies.
// cache may be nil to run without report caching.
func NewServiceContainer(cfg *config.Config, repos ports.RepositoryProvider, cache *redis.Client) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// The ledger service first since the allocator fans out through it.
	container.Ledger = NewLedgerService(repos.BalanceRepo)

	container.Allocation = NewAllocationService(repos.CompanyRepo, repos.UserRepo, container.Ledger)
	container.Reporting = NewReportingService(repos.BalanceRepo, repos.TxnRepo, repos.UserRepo, repos.CompanyRepo, repos.ReportingRepo, cache)
	container.Company = NewCompanyService(repos.CompanyRepo)
	container.Auth = NewAuthService(cfg, repos.UserRepo)

	return container
}
