package services

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/yoddle/coins_backend/internal/apperrors"
	"github.com/yoddle/coins_backend/internal/core/domain"
	"github.com/yoddle/coins_backend/internal/core/ports"
	portssvc "github.com/yoddle/coins_backend/internal/core/ports/services"
	"github.com/yoddle/coins_backend/internal/utils/retry"
)

// ledgerService is the mutation engine. Every balance change goes through
// here: it reloads the account, derives the new state, and hands both the
// state and the paired transaction record to the store as one atomic unit.
// Version conflicts are retried a bounded number of times with a fresh
// reload each attempt.
type ledgerService struct {
	BaseService
	balanceRepo ports.BalanceRepository
	maxAttempts int
}

// NewLedgerService creates a new LedgerSvc.
func NewLedgerService(balanceRepo ports.BalanceRepository) portssvc.LedgerSvc {
	return &ledgerService{
		balanceRepo: balanceRepo,
		maxAttempts: retry.DefaultMaxAttempts,
	}
}

var _ portssvc.LedgerSvc = (*ledgerService)(nil)

// Credit adds amount to the account, creating the zero row for a never-seen
// account first.
func (s *ledgerService) Credit(ctx context.Context, accountID string, amount decimal.Decimal, creditType domain.TransactionType, description string, actorID *string) (*domain.Account, error) {
	if accountID == "" {
		return nil, fmt.Errorf("%w: account ID is required", apperrors.ErrValidation)
	}
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: credit amount must be positive, got %s", apperrors.ErrValidation, amount.String())
	}
	dir, err := creditType.Direction()
	if err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}
	if dir != domain.DirectionCredit {
		return nil, fmt.Errorf("%w: transaction type %s is not a credit", apperrors.ErrValidation, creditType)
	}

	var result *domain.Account
	err = retry.OnConflict(ctx, s.maxAttempts, func(ctx context.Context, attempt int) error {
		account, err := s.balanceRepo.GetOrCreate(ctx, accountID)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		updated := domain.Account{
			AccountID:   account.AccountID,
			Balance:     account.Balance.Add(amount),
			TotalEarned: account.TotalEarned.Add(amount),
			TotalSpent:  account.TotalSpent,
			Version:     account.Version + 1,
			UpdatedAt:   now,
		}
		txn := domain.Transaction{
			AccountID:     accountID,
			Type:          creditType,
			Amount:        amount,
			BalanceBefore: account.Balance,
			BalanceAfter:  updated.Balance,
			Description:   description,
			ActorID:       actorID,
			CreatedAt:     now,
		}

		if err := s.balanceRepo.ApplyMutation(ctx, updated, account.Version, txn); err != nil {
			return err
		}
		result = &updated
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "credit failed", "account_id", accountID, "type", string(creditType))
		return nil, err
	}

	s.LogInfo(ctx, "account credited", "account_id", accountID, "amount", amount.String(), "type", string(creditType))
	return result, nil
}

// Debit removes amount from the account. The funds check runs inside the
// retry loop against the freshly loaded balance, so a concurrent spend that
// drains the account surfaces as ErrInsufficientFunds rather than an
// overdraft.
func (s *ledgerService) Debit(ctx context.Context, accountID string, amount decimal.Decimal, description string, referenceID *string, actorID *string) (*domain.Account, error) {
	if accountID == "" {
		return nil, fmt.Errorf("%w: account ID is required", apperrors.ErrValidation)
	}
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: debit amount must be positive, got %s", apperrors.ErrValidation, amount.String())
	}

	// An admin removal and a self-service purchase are the two debit kinds.
	debitType := domain.DebitPurchase
	if actorID != nil {
		debitType = domain.DebitAdmin
	}

	var result *domain.Account
	err := retry.OnConflict(ctx, s.maxAttempts, func(ctx context.Context, attempt int) error {
		account, err := s.balanceRepo.GetOrCreate(ctx, accountID)
		if err != nil {
			return err
		}

		if account.Balance.LessThan(amount) {
			return fmt.Errorf("%w: account %s has %s, needs %s", apperrors.ErrInsufficientFunds, accountID, account.Balance.String(), amount.String())
		}

		now := time.Now().UTC()
		updated := domain.Account{
			AccountID:   account.AccountID,
			Balance:     account.Balance.Sub(amount),
			TotalEarned: account.TotalEarned,
			TotalSpent:  account.TotalSpent.Add(amount),
			Version:     account.Version + 1,
			UpdatedAt:   now,
		}
		txn := domain.Transaction{
			AccountID:     accountID,
			Type:          debitType,
			Amount:        amount,
			BalanceBefore: account.Balance,
			BalanceAfter:  updated.Balance,
			Description:   description,
			ActorID:       actorID,
			ReferenceID:   referenceID,
			CreatedAt:     now,
		}

		if err := s.balanceRepo.ApplyMutation(ctx, updated, account.Version, txn); err != nil {
			return err
		}
		result = &updated
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "debit failed", "account_id", accountID, "type", string(debitType))
		return nil, err
	}

	s.LogInfo(ctx, "account debited", "account_id", accountID, "amount", amount.String(), "type", string(debitType))
	return result, nil
}

// GetBalance returns the account snapshot, lazily creating the zero row for
// a never-seen account.
func (s *ledgerService) GetBalance(ctx context.Context, accountID string) (*domain.Account, error) {
	if accountID == "" {
		return nil, fmt.Errorf("%w: account ID is required", apperrors.ErrValidation)
	}

	account, err := s.balanceRepo.GetOrCreate(ctx, accountID)
	if err != nil {
		s.LogError(ctx, err, "failed to get balance", "account_id", accountID)
		return nil, err
	}
	return account, nil
}
