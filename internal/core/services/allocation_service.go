package services

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/yoddle/coins_backend/internal/apperrors"
	"github.com/yoddle/coins_backend/internal/core/domain"
	"github.com/yoddle/coins_backend/internal/core/ports"
	portssvc "github.com/yoddle/coins_backend/internal/core/ports/services"
	"github.com/yoddle/coins_backend/internal/dto"
)

// allocationService fans company-wide credits out to the mutation engine.
// Each employee's credit is its own atomic unit; one failure is tallied and
// the run continues, so a committed credit is never rolled back by a later
// failure in the same batch.
type allocationService struct {
	BaseService
	companyRepo ports.CompanyRepository
	userRepo    ports.UserRepository
	ledgerSvc   portssvc.LedgerSvc
}

// NewAllocationService creates a new AllocationSvc.
func NewAllocationService(companyRepo ports.CompanyRepository, userRepo ports.UserRepository, ledgerSvc portssvc.LedgerSvc) portssvc.AllocationSvc {
	return &allocationService{
		companyRepo: companyRepo,
		userRepo:    userRepo,
		ledgerSvc:   ledgerSvc,
	}
}

var _ portssvc.AllocationSvc = (*allocationService)(nil)

// RunMonthlyAllocation credits every employee of every company with an active
// plan with that company's per-employee allowance. The calendar period is
// stamped into each transaction description; guarding against duplicate runs
// within a month is the scheduler's contract.
func (s *allocationService) RunMonthlyAllocation(ctx context.Context) (*dto.MonthlyAllocationResult, error) {
	plans, err := s.companyRepo.ListActiveCompanyPlans(ctx)
	if err != nil {
		s.LogError(ctx, err, "monthly allocation failed to list active plans")
		return nil, err
	}

	description := fmt.Sprintf("Monthly allowance %s", time.Now().UTC().Format("2006-01"))
	result := &dto.MonthlyAllocationResult{}

	for _, plan := range plans {
		users, err := s.userRepo.ListUsersByCompany(ctx, plan.CompanyID)
		if err != nil {
			// Skip the whole company but keep the run going for the rest.
			s.LogError(ctx, err, "monthly allocation failed to list employees", "company_id", plan.CompanyID)
			result.Failed++
			result.FailedIDs = append(result.FailedIDs, plan.CompanyID)
			continue
		}

		for _, user := range users {
			_, err := s.ledgerSvc.Credit(ctx, user.UserID, plan.CoinsPerEmployee, domain.CreditMonthlyAllowance, description, nil)
			if err != nil {
				s.LogError(ctx, err, "monthly allocation credit failed", "account_id", user.UserID, "company_id", plan.CompanyID)
				result.Failed++
				result.FailedIDs = append(result.FailedIDs, user.UserID)
				continue
			}
			result.AccountsCredited++
		}
	}

	s.LogInfo(ctx, "monthly allocation finished",
		"companies", len(plans),
		"accounts_credited", result.AccountsCredited,
		"failed", result.Failed,
	)
	return result, nil
}

// BulkAllocate credits amountPerUser to every employee of one company on
// behalf of actorID.
func (s *allocationService) BulkAllocate(ctx context.Context, companyID string, amountPerUser decimal.Decimal, description string, actorID string) (*dto.BulkAllocationResult, error) {
	if companyID == "" {
		return nil, fmt.Errorf("%w: company ID is required", apperrors.ErrValidation)
	}
	if !amountPerUser.IsPositive() {
		return nil, fmt.Errorf("%w: amount per user must be positive, got %s", apperrors.ErrValidation, amountPerUser.String())
	}

	// The plan must exist; a typoed company ID should fail loudly, not
	// credit zero employees and report success.
	if _, err := s.companyRepo.FindCompanyPlanByID(ctx, companyID); err != nil {
		return nil, err
	}

	users, err := s.userRepo.ListUsersByCompany(ctx, companyID)
	if err != nil {
		s.LogError(ctx, err, "bulk allocation failed to list employees", "company_id", companyID)
		return nil, err
	}

	result := &dto.BulkAllocationResult{Total: len(users)}
	for _, user := range users {
		_, err := s.ledgerSvc.Credit(ctx, user.UserID, amountPerUser, domain.CreditAdmin, description, &actorID)
		if err != nil {
			s.LogError(ctx, err, "bulk allocation credit failed", "account_id", user.UserID, "company_id", companyID)
			result.Failed++
			result.FailedIDs = append(result.FailedIDs, user.UserID)
			continue
		}
		result.Succeeded++
	}

	s.LogInfo(ctx, "bulk allocation finished",
		"company_id", companyID,
		"total", result.Total,
		"succeeded", result.Succeeded,
		"failed", result.Failed,
	)
	return result, nil
}
