package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account mirrors one user_balance row.
type Account struct {
	AccountID   string          `db:"user_id"`
	Balance     decimal.Decimal `db:"balance"`
	TotalEarned decimal.Decimal `db:"total_earned"`
	TotalSpent  decimal.Decimal `db:"total_spent"`
	Version     int64           `db:"version"`
	UpdatedAt   time.Time       `db:"updated_at"`
}
