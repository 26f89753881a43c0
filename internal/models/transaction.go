package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType is the persisted transaction kind; values match the
// coin_transactions check constraint.
type TransactionType string

// Transaction mirrors one coin_transactions row. Rows are append-only.
type Transaction struct {
	TransactionID int64           `db:"transaction_id"`
	AccountID     string          `db:"user_id"`
	Type          TransactionType `db:"transaction_type"`
	Amount        decimal.Decimal `db:"amount"`
	BalanceBefore decimal.Decimal `db:"balance_before"`
	BalanceAfter  decimal.Decimal `db:"balance_after"`
	Description   string          `db:"description"`
	ActorID       *string         `db:"processed_by"`
	ReferenceID   *string         `db:"reference_id"`
	CreatedAt     time.Time       `db:"created_at"`
}
