package services

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/yoddle/coins_backend/internal/core/domain"
)

// LedgerSvc is the mutation engine: the only path that changes balances.
// Every call commits a balance change together with its transaction record,
// or commits nothing.
type LedgerSvc interface {
	// Credit adds amount to the account, creating it if unseen. creditType
	// must be one of the credit kinds; actorID identifies the admin or
	// process behind the mutation.
	Credit(ctx context.Context, accountID string, amount decimal.Decimal, creditType domain.TransactionType, description string, actorID *string) (*domain.Account, error)

	// Debit removes amount from the account. Returns
	// apperrors.ErrInsufficientFunds, with no state change, when the balance
	// cannot cover the amount. An actorID marks an admin removal; a nil
	// actorID with a referenceID is a self-service purchase.
	Debit(ctx context.Context, accountID string, amount decimal.Decimal, description string, referenceID *string, actorID *string) (*domain.Account, error)

	// GetBalance returns the account snapshot, lazily creating the zero row
	// for a never-seen account. No transaction record is produced.
	GetBalance(ctx context.Context, accountID string) (*domain.Account, error)
}
