package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yoddle/coins_backend/internal/apperrors"
	"github.com/yoddle/coins_backend/internal/core/domain"
	"github.com/yoddle/coins_backend/internal/core/ports"
	"github.com/yoddle/coins_backend/internal/models"
	"github.com/yoddle/coins_backend/internal/utils/mapping"
)

type PgxBalanceRepository struct {
	BaseRepository
}

// NewBalanceRepository creates a new repository for account balance data.
func NewBalanceRepository(pool *pgxpool.Pool) ports.BalanceRepository {
	return &PgxBalanceRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxBalanceRepository implements ports.BalanceRepository
var _ ports.BalanceRepository = (*PgxBalanceRepository)(nil)

const accountColumns = `user_id, balance, total_earned, total_spent, version, updated_at`

// GetOrCreate returns the account for accountID, inserting a zeroed row first
// if none exists. The insert is conditioned on non-existence (ON CONFLICT DO
// NOTHING), so two callers racing on a never-seen account cannot create
// conflicting rows; both observe the same zero account.
func (r *PgxBalanceRepository) GetOrCreate(ctx context.Context, accountID string) (*domain.Account, error) {
	insertQuery := `
		INSERT INTO user_balance (user_id, balance, total_earned, total_spent, version, updated_at)
		VALUES ($1, 0, 0, 0, 0, NOW())
		ON CONFLICT (user_id) DO NOTHING;
	`
	if _, err := r.Pool.Exec(ctx, insertQuery, accountID); err != nil {
		return nil, apperrors.NewAppError(500, "failed to ensure balance row for account "+accountID, err)
	}

	selectQuery := `SELECT ` + accountColumns + ` FROM user_balance WHERE user_id = $1;`

	var m models.Account
	err := r.Pool.QueryRow(ctx, selectQuery, accountID).Scan(
		&m.AccountID,
		&m.Balance,
		&m.TotalEarned,
		&m.TotalSpent,
		&m.Version,
		&m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// The row was just ensured; its absence means the store is broken.
			return nil, apperrors.NewAppError(500, "balance row missing after ensure for account "+accountID, err)
		}
		return nil, apperrors.NewAppError(500, "failed to load balance for account "+accountID, err)
	}

	acc := mapping.ToDomainAccount(m)
	return &acc, nil
}

// ApplyMutation applies the new account state and appends the paired
// transaction record within a single database transaction. The account update
// is conditioned on the stored version still matching expectedVersion; a
// mismatch commits nothing and returns apperrors.ErrConcurrencyConflict so
// the caller can reload and retry. Either both writes become durable or
// neither does.
func (r *PgxBalanceRepository) ApplyMutation(ctx context.Context, account domain.Account, expectedVersion int64, txn domain.Transaction) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	// Ignored if the transaction commits.
	defer r.Rollback(ctx, tx)

	updateQuery := `
		UPDATE user_balance
		SET balance = $2,
		    total_earned = $3,
		    total_spent = $4,
		    version = version + 1,
		    updated_at = $5
		WHERE user_id = $1 AND version = $6;
	`
	m := mapping.ToModelAccount(account)
	cmdTag, err := tx.Exec(ctx, updateQuery,
		m.AccountID,
		m.Balance,
		m.TotalEarned,
		m.TotalSpent,
		m.UpdatedAt,
		expectedVersion,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update balance for account "+m.AccountID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		// Row exists (GetOrCreate precedes every mutation) but the version
		// moved underneath us.
		return fmt.Errorf("%w: account %s expected version %d", apperrors.ErrConcurrencyConflict, m.AccountID, expectedVersion)
	}

	txnQuery := `
		INSERT INTO coin_transactions (user_id, transaction_type, amount, balance_before, balance_after, description, processed_by, reference_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING transaction_id;
	`
	modelTxn := mapping.ToModelTransaction(txn)
	var transactionID int64
	err = tx.QueryRow(ctx, txnQuery,
		modelTxn.AccountID,
		modelTxn.Type,
		modelTxn.Amount,
		modelTxn.BalanceBefore,
		modelTxn.BalanceAfter,
		modelTxn.Description,
		modelTxn.ActorID,
		modelTxn.ReferenceID,
		modelTxn.CreatedAt,
	).Scan(&transactionID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to append transaction for account "+m.AccountID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return err
	}
	return nil
}
