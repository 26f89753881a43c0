package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CompanyPlan is the benefits plan of one company: how many employees it
// pays for, the monthly rate, and the coin allowance each employee receives
// from the monthly allocation.
type CompanyPlan struct {
	CompanyID        string          `json:"companyID"`
	CompanyName      string          `json:"companyName"`
	EmployeeCount    int             `json:"employeeCount"` // planned headcount
	MonthlyRate      decimal.Decimal `json:"monthlyRate"`
	CoinsPerEmployee decimal.Decimal `json:"coinsPerEmployee"`
	PlanStartDate    time.Time       `json:"planStartDate"`
	IsActive         bool            `json:"isActive"`
	CreatedAt        time.Time       `json:"createdAt"`
}
