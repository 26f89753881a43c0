package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/yoddle/coins_backend/internal/core/domain"
	"github.com/yoddle/coins_backend/internal/core/ports"
	portssvc "github.com/yoddle/coins_backend/internal/core/ports/services"
	"github.com/yoddle/coins_backend/internal/dto"
)

// companyService manages company benefit plans.
type companyService struct {
	BaseService
	companyRepo ports.CompanyRepository
}

// NewCompanyService creates a new CompanySvc.
func NewCompanyService(companyRepo ports.CompanyRepository) portssvc.CompanySvc {
	return &companyService{
		companyRepo: companyRepo,
	}
}

var _ portssvc.CompanySvc = (*companyService)(nil)

func (s *companyService) CreateCompanyPlan(ctx context.Context, req dto.CreateCompanyPlanRequest) (*domain.CompanyPlan, error) {
	now := time.Now().UTC()
	startDate := now
	if req.PlanStartDate != nil {
		startDate = *req.PlanStartDate
	}

	plan := domain.CompanyPlan{
		CompanyID:        uuid.NewString(),
		CompanyName:      req.CompanyName,
		EmployeeCount:    req.EmployeeCount,
		MonthlyRate:      req.MonthlyRate,
		CoinsPerEmployee: req.CoinsPerEmployee,
		PlanStartDate:    startDate,
		IsActive:         true,
		CreatedAt:        now,
	}

	if err := s.companyRepo.SaveCompanyPlan(ctx, plan); err != nil {
		s.LogError(ctx, err, "failed to save company plan", "company_name", req.CompanyName)
		return nil, err
	}

	s.LogInfo(ctx, "company plan created", "company_id", plan.CompanyID, "company_name", plan.CompanyName)
	return &plan, nil
}

func (s *companyService) ListCompanyPlans(ctx context.Context) ([]domain.CompanyPlan, error) {
	plans, err := s.companyRepo.ListCompanyPlans(ctx)
	if err != nil {
		s.LogError(ctx, err, "failed to list company plans")
		return nil, err
	}
	return plans, nil
}
