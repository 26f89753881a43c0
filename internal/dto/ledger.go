package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/yoddle/coins_backend/internal/core/domain"
)

// CreditRequest defines the data needed to credit an account.
type CreditRequest struct {
	AccountID   string          `json:"accountID" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required,posamount"`
	Type        string          `json:"type" binding:"required,oneof=admin_add monthly_allowance"`
	Description string          `json:"description"`
}

// DebitRequest defines the data needed to debit an account.
type DebitRequest struct {
	AccountID   string          `json:"accountID" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required,posamount"`
	Description string          `json:"description"`
	ReferenceID *string         `json:"referenceID"` // e.g. the purchased benefit
}

// PurchaseRequest debits the caller's own account for a benefit purchase.
type PurchaseRequest struct {
	Amount      decimal.Decimal `json:"amount" binding:"required,posamount"`
	Description string          `json:"description"`
	ReferenceID *string         `json:"referenceID"` // the purchased benefit
}

// MutationResponse is returned after a committed credit or debit.
type MutationResponse struct {
	AccountID  string          `json:"accountID"`
	NewBalance decimal.Decimal `json:"newBalance"`
}

// BalanceResponse is the account snapshot returned by the balance endpoint.
type BalanceResponse struct {
	AccountID   string          `json:"accountID"`
	Balance     decimal.Decimal `json:"balance"`
	TotalEarned decimal.Decimal `json:"totalEarned"`
	TotalSpent  decimal.Decimal `json:"totalSpent"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// ToBalanceResponse converts a domain.Account to BalanceResponse
func ToBalanceResponse(acc *domain.Account) BalanceResponse {
	return BalanceResponse{
		AccountID:   acc.AccountID,
		Balance:     acc.Balance,
		TotalEarned: acc.TotalEarned,
		TotalSpent:  acc.TotalSpent,
		UpdatedAt:   acc.UpdatedAt,
	}
}

// TransactionResponse is one row of an account's transaction history.
type TransactionResponse struct {
	TransactionID int64                  `json:"transactionID"`
	Type          domain.TransactionType `json:"type"`
	Amount        decimal.Decimal        `json:"amount"`
	BalanceBefore decimal.Decimal        `json:"balanceBefore"`
	BalanceAfter  decimal.Decimal        `json:"balanceAfter"`
	Description   string                 `json:"description"`
	ActorID       *string                `json:"actorID,omitempty"`
	ReferenceID   *string                `json:"referenceID,omitempty"`
	CreatedAt     time.Time              `json:"createdAt"`
}

// ToTransactionResponse converts a domain.Transaction to TransactionResponse
func ToTransactionResponse(t domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID: t.TransactionID,
		Type:          t.Type,
		Amount:        t.Amount,
		BalanceBefore: t.BalanceBefore,
		BalanceAfter:  t.BalanceAfter,
		Description:   t.Description,
		ActorID:       t.ActorID,
		ReferenceID:   t.ReferenceID,
		CreatedAt:     t.CreatedAt,
	}
}

// TransactionListResponse is a page of an account's history, newest first.
type TransactionListResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	Total        int64                 `json:"total"`
	HasMore      bool                  `json:"hasMore"`
}

// ListTransactionsParams defines query parameters for the history endpoint.
type ListTransactionsParams struct {
	Period *string `form:"period" binding:"omitempty,oneof=week month year"`
	Limit  int     `form:"limit,default=50"`
	Offset int     `form:"offset,default=0"`
}
