package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/yoddle/coins_backend/internal/core/domain"
)

// BalanceDetailsResponse is the account snapshot enriched with the owner's
// name and company plan.
type BalanceDetailsResponse struct {
	AccountID        string           `json:"accountID"`
	Balance          decimal.Decimal  `json:"balance"`
	TotalEarned      decimal.Decimal  `json:"totalEarned"`
	TotalSpent       decimal.Decimal  `json:"totalSpent"`
	UpdatedAt        time.Time        `json:"updatedAt"`
	UserName         string           `json:"userName,omitempty"`
	CompanyName      string           `json:"companyName,omitempty"`
	CoinsPerEmployee *decimal.Decimal `json:"coinsPerEmployee,omitempty"`
}

// BalanceReportParams defines query parameters for the balance report.
type BalanceReportParams struct {
	CompanyID *string `form:"companyID"`
}

// TransactionReportParams defines query parameters for the transaction report.
type TransactionReportParams struct {
	Period *string `form:"period" binding:"omitempty,oneof=week month year"`
	Limit  int     `form:"limit,default=100"`
	Offset int     `form:"offset,default=0"`
}

// TransactionReportResponse is a page of cross-account transactions plus the
// aggregate credit/debit totals for the window.
type TransactionReportResponse struct {
	Transactions []domain.TransactionReportRow  `json:"transactions"`
	Statistics   domain.TransactionReportTotals `json:"statistics"`
}

// CreateCompanyPlanRequest defines the data needed to register a company plan.
type CreateCompanyPlanRequest struct {
	CompanyName      string          `json:"companyName" binding:"required"`
	EmployeeCount    int             `json:"employeeCount" binding:"required,gt=0"`
	MonthlyRate      decimal.Decimal `json:"monthlyRate" binding:"required,posamount"`
	CoinsPerEmployee decimal.Decimal `json:"coinsPerEmployee" binding:"required,posamount"`
	PlanStartDate    *time.Time      `json:"planStartDate"`
}

// CompanyPlanResponse mirrors domain.CompanyPlan for API responses.
type CompanyPlanResponse struct {
	CompanyID        string          `json:"companyID"`
	CompanyName      string          `json:"companyName"`
	EmployeeCount    int             `json:"employeeCount"`
	MonthlyRate      decimal.Decimal `json:"monthlyRate"`
	CoinsPerEmployee decimal.Decimal `json:"coinsPerEmployee"`
	PlanStartDate    time.Time       `json:"planStartDate"`
	IsActive         bool            `json:"isActive"`
}

// ToCompanyPlanResponse converts a domain.CompanyPlan to CompanyPlanResponse
func ToCompanyPlanResponse(p *domain.CompanyPlan) CompanyPlanResponse {
	return CompanyPlanResponse{
		CompanyID:        p.CompanyID,
		CompanyName:      p.CompanyName,
		EmployeeCount:    p.EmployeeCount,
		MonthlyRate:      p.MonthlyRate,
		CoinsPerEmployee: p.CoinsPerEmployee,
		PlanStartDate:    p.PlanStartDate,
		IsActive:         p.IsActive,
	}
}

// ToListCompanyPlanResponse converts a slice of domain.CompanyPlan
func ToListCompanyPlanResponse(plans []domain.CompanyPlan) []CompanyPlanResponse {
	res := make([]CompanyPlanResponse, len(plans))
	for i := range plans {
		res[i] = ToCompanyPlanResponse(&plans[i])
	}
	return res
}
