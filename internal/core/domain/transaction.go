package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType identifies the kind of balance mutation. The set is closed:
// constructing or reporting on a transaction switches exhaustively over these
// values, so a new kind cannot silently bypass the credit/debit sign convention.
// The string values match the persisted coin_transactions rows.
type TransactionType string

const (
	CreditAdmin            TransactionType = "admin_add"
	CreditMonthlyAllowance TransactionType = "monthly_allowance"
	DebitPurchase          TransactionType = "benefit_purchase"
	DebitAdmin             TransactionType = "admin_remove"
)

// Direction is the sign a TransactionType applies to the balance.
type Direction int

const (
	DirectionCredit Direction = 1
	DirectionDebit  Direction = -1
)

// Direction returns whether the type earns or spends coins. Unknown types are
// rejected rather than defaulted, so a bad wire value can never move a balance.
func (t TransactionType) Direction() (Direction, error) {
	switch t {
	case CreditAdmin, CreditMonthlyAllowance:
		return DirectionCredit, nil
	case DebitPurchase, DebitAdmin:
		return DirectionDebit, nil
	default:
		return 0, fmt.Errorf("unknown transaction type %q", string(t))
	}
}

// IsCredit reports whether the type increases the balance.
func (t TransactionType) IsCredit() bool {
	d, err := t.Direction()
	return err == nil && d == DirectionCredit
}

// IsDebit reports whether the type decreases the balance.
func (t TransactionType) IsDebit() bool {
	d, err := t.Direction()
	return err == nil && d == DirectionDebit
}

// Transaction is one committed balance change. Rows are immutable and
// append-only: once written they are never updated or deleted, and together
// they form the audit trail from which TotalEarned/TotalSpent could be
// independently recomputed.
//
// Invariant: BalanceAfter = BalanceBefore + Amount for credit types and
// BalanceBefore - Amount for debit types, and BalanceAfter equals the
// account's balance as observed immediately after the commit.
type Transaction struct {
	// TransactionID is assigned by the store on commit and is monotonic
	// within the log.
	TransactionID int64           `json:"transactionID"`
	AccountID     string          `json:"accountID"`
	Type          TransactionType `json:"type"`
	Amount        decimal.Decimal `json:"amount"` // positive magnitude
	BalanceBefore decimal.Decimal `json:"balanceBefore"`
	BalanceAfter  decimal.Decimal `json:"balanceAfter"`
	Description   string          `json:"description"`
	ActorID       *string         `json:"actorID,omitempty"`     // admin or process that initiated the mutation
	ReferenceID   *string         `json:"referenceID,omitempty"` // external thing being paid for
	CreatedAt     time.Time       `json:"createdAt"`
}
