package pgsql

import (
	"context"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yoddle/coins_backend/internal/apperrors"
	"github.com/yoddle/coins_backend/internal/core/domain"
	"github.com/yoddle/coins_backend/internal/core/ports"
	"github.com/yoddle/coins_backend/internal/models"
	"github.com/yoddle/coins_backend/internal/utils/mapping"
)

type PgxTransactionRepository struct {
	BaseRepository
}

// NewTransactionRepository creates a new repository over the append-only
// transaction log. It only reads; writes happen exclusively through
// PgxBalanceRepository.ApplyMutation.
func NewTransactionRepository(pool *pgxpool.Pool) ports.TransactionRepository {
	return &PgxTransactionRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ ports.TransactionRepository = (*PgxTransactionRepository)(nil)

// ListByAccount retrieves a page of the account's transactions ordered newest
// first, plus the total count matching the filter. A zero since disables the
// time filter.
func (r *PgxTransactionRepository) ListByAccount(ctx context.Context, accountID string, since time.Time, limit, offset int) ([]domain.Transaction, int64, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	baseQuery := `
		SELECT transaction_id, user_id, transaction_type, amount, balance_before, balance_after, description, processed_by, reference_id, created_at
		FROM coin_transactions
	`
	countQuery := `SELECT COUNT(*) FROM coin_transactions`
	filterClause := ` WHERE user_id = $1`
	args := []interface{}{accountID}

	if !since.IsZero() {
		filterClause += ` AND created_at >= $2`
		args = append(args, since)
	}

	var total int64
	if err := r.Pool.QueryRow(ctx, countQuery+filterClause, args...).Scan(&total); err != nil {
		return nil, 0, apperrors.NewAppError(500, "failed to count transactions for account "+accountID, err)
	}

	// created_at is the sort key; transaction_id breaks ties deterministically.
	orderClause := ` ORDER BY created_at DESC, transaction_id DESC`
	query := baseQuery + filterClause + orderClause +
		` LIMIT $` + strconv.Itoa(len(args)+1) + ` OFFSET $` + strconv.Itoa(len(args)+2) + `;`
	args = append(args, limit, offset)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, apperrors.NewAppError(500, "failed to query transactions for account "+accountID, err)
	}
	defer rows.Close()

	transactions, err := scanTransactions(rows)
	if err != nil {
		return nil, 0, apperrors.NewAppError(500, "failed to scan transaction rows for account "+accountID, err)
	}

	return mapping.ToDomainTransactionSlice(transactions), total, nil
}

func scanTransactions(rows pgx.Rows) ([]models.Transaction, error) {
	transactions := []models.Transaction{}
	for rows.Next() {
		var t models.Transaction
		if err := rows.Scan(
			&t.TransactionID,
			&t.AccountID,
			&t.Type,
			&t.Amount,
			&t.BalanceBefore,
			&t.BalanceAfter,
			&t.Description,
			&t.ActorID,
			&t.ReferenceID,
			&t.CreatedAt,
		); err != nil {
			return nil, err
		}
		transactions = append(transactions, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return transactions, nil
}
