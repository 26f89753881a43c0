package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BalanceReportRow is one user's ledger summary in the admin balance report.
type BalanceReportRow struct {
	UserID      string          `json:"userID"`
	Name        string          `json:"name"`
	Email       string          `json:"email"`
	CompanyName string          `json:"companyName"`
	Balance     decimal.Decimal `json:"balance"`
	TotalEarned decimal.Decimal `json:"totalEarned"`
	TotalSpent  decimal.Decimal `json:"totalSpent"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// TransactionReportRow is one transaction in the cross-account admin report,
// enriched with user and company names.
type TransactionReportRow struct {
	TransactionID int64           `json:"transactionID"`
	UserName      string          `json:"userName"`
	Email         string          `json:"email"`
	CompanyName   string          `json:"companyName"`
	Type          TransactionType `json:"type"`
	Amount        decimal.Decimal `json:"amount"`
	Description   string          `json:"description"`
	ProcessedBy   string          `json:"processedBy"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// TransactionReportTotals aggregates a transaction report window.
type TransactionReportTotals struct {
	TotalTransactions int64           `json:"totalTransactions"`
	TotalCredits      decimal.Decimal `json:"totalCredits"`
	TotalDebits       decimal.Decimal `json:"totalDebits"`
}

// CompanyStatisticsRow aggregates one company's plan against its actual
// employee ledgers.
type CompanyStatisticsRow struct {
	CompanyID        string          `json:"companyID"`
	CompanyName      string          `json:"companyName"`
	PlannedEmployees int             `json:"plannedEmployees"`
	ActualEmployees  int             `json:"actualEmployees"`
	MonthlyRate      decimal.Decimal `json:"monthlyRate"`
	CoinsPerEmployee decimal.Decimal `json:"coinsPerEmployee"`
	TotalBalance     decimal.Decimal `json:"totalBalance"`
	TotalCoinsIssued decimal.Decimal `json:"totalCoinsIssued"`
	TotalCoinsSpent  decimal.Decimal `json:"totalCoinsSpent"`
}
