package dto

import (
	"github.com/shopspring/decimal"
)

// BulkAllocateRequest credits every employee of one company.
type BulkAllocateRequest struct {
	CompanyID     string          `json:"companyID" binding:"required"`
	AmountPerUser decimal.Decimal `json:"amountPerUser" binding:"required,posamount"`
	Description   string          `json:"description"`
}

// BulkAllocationResult tallies one bulk allocation run. Failed credits carry
// enough detail to retry just the failed subset.
type BulkAllocationResult struct {
	Total     int      `json:"total"`
	Succeeded int      `json:"succeeded"`
	Failed    int      `json:"failed"`
	FailedIDs []string `json:"failedIDs,omitempty"`
}

// MonthlyAllocationResult tallies one monthly allowance run across all
// companies with an active plan.
type MonthlyAllocationResult struct {
	AccountsCredited int      `json:"accountsCredited"`
	Failed           int      `json:"failed"`
	FailedIDs        []string `json:"failedIDs,omitempty"`
}
