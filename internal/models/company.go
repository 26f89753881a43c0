package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CompanyPlan mirrors one company_plans row.
type CompanyPlan struct {
	CompanyID        string          `db:"company_id"`
	CompanyName      string          `db:"company_name"`
	EmployeeCount    int             `db:"employee_count"`
	MonthlyRate      decimal.Decimal `db:"monthly_rate"`
	CoinsPerEmployee decimal.Decimal `db:"coins_per_employee"`
	PlanStartDate    time.Time       `db:"plan_start_date"`
	IsActive         bool            `db:"is_active"`
	CreatedAt        time.Time       `db:"created_at"`
}
