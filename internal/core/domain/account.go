package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account holds the coin balance for a single user. One row exists per user;
// it is created lazily, zeroed, the first time any operation touches the
// account ID, and is never deleted.
//
// Version is a monotonically increasing counter used for optimistic
// concurrency: every committed mutation increments it, and a mutation only
// commits if the stored version still equals the one it read.
//
// Invariant: Balance == TotalEarned - TotalSpent, and Balance is never negative.
type Account struct {
	AccountID   string          `json:"accountID"`
	Balance     decimal.Decimal `json:"balance"`
	TotalEarned decimal.Decimal `json:"totalEarned"`
	TotalSpent  decimal.Decimal `json:"totalSpent"`
	Version     int64           `json:"version"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}
