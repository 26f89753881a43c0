package services

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/yoddle/coins_backend/internal/dto"
)

// AllocationSvc orchestrates multi-account credits. Each account's credit is
// its own atomic unit; a failure on one account is tallied and the batch
// continues, never rolling back already-committed credits.
type AllocationSvc interface {
	// RunMonthlyAllocation credits every employee of every company with an
	// active plan with that company's coins_per_employee allowance. Guarding
	// against duplicate runs within a calendar period is the scheduler's
	// contract, not enforced here.
	RunMonthlyAllocation(ctx context.Context) (*dto.MonthlyAllocationResult, error)

	// BulkAllocate credits amountPerUser to every employee of one company.
	BulkAllocate(ctx context.Context, companyID string, amountPerUser decimal.Decimal, description string, actorID string) (*dto.BulkAllocationResult, error)
}
