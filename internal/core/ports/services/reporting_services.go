package services

import (
	"context"

	"github.com/yoddle/coins_backend/internal/core/domain"
	"github.com/yoddle/coins_backend/internal/dto"
)

// ReportingSvc serves the read-only ledger views. It never mutates state and
// may serve data momentarily stale relative to in-flight mutations.
type ReportingSvc interface {
	// BalanceDetails returns the account snapshot enriched with the owner's
	// name and company plan, lazily creating the zero row for a never-seen
	// account.
	BalanceDetails(ctx context.Context, accountID string) (*dto.BalanceDetailsResponse, error)
	ListTransactions(ctx context.Context, accountID string, period *domain.Period, limit, offset int) (*dto.TransactionListResponse, error)
	BalanceReport(ctx context.Context, companyID *string) ([]domain.BalanceReportRow, error)
	TransactionReport(ctx context.Context, period *domain.Period, limit, offset int) (*dto.TransactionReportResponse, error)
	CompanyStatistics(ctx context.Context) ([]domain.CompanyStatisticsRow, error)
}

// CompanySvc manages company benefit plans.
type CompanySvc interface {
	CreateCompanyPlan(ctx context.Context, req dto.CreateCompanyPlanRequest) (*domain.CompanyPlan, error)
	ListCompanyPlans(ctx context.Context) ([]domain.CompanyPlan, error)
}
