package pgsql

import (
	"context"
	"database/sql"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/yoddle/coins_backend/internal/apperrors"
	"github.com/yoddle/coins_backend/internal/core/domain"
	"github.com/yoddle/coins_backend/internal/core/ports"
)

// reportingRepository implements the read-only admin reports. Every query
// joins the ledger with the employee directory and company plans; none of
// them writes.
type reportingRepository struct {
	BaseRepository
}

// NewReportingRepository creates a new reporting repository
func NewReportingRepository(pool *pgxpool.Pool) ports.ReportingRepository {
	return &reportingRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ ports.ReportingRepository = (*reportingRepository)(nil)

// GetBalanceReport returns one row per user ledger, optionally filtered to a
// single company, ordered by company then user name.
func (r *reportingRepository) GetBalanceReport(ctx context.Context, companyID *string) ([]domain.BalanceReportRow, error) {
	query := `
		SELECT u.user_id, u.name, u.email, COALESCE(cp.company_name, ''),
		       ub.balance, ub.total_earned, ub.total_spent, ub.updated_at
		FROM user_balance ub
		JOIN users u ON ub.user_id = u.user_id
		LEFT JOIN company_plans cp ON u.company_id = cp.company_id
	`
	args := []interface{}{}
	if companyID != nil {
		query += ` WHERE u.company_id = $1`
		args = append(args, *companyID)
	}
	query += ` ORDER BY cp.company_name, u.name;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query balance report", err)
	}
	defer rows.Close()

	report := []domain.BalanceReportRow{}
	for rows.Next() {
		var row domain.BalanceReportRow
		if err := rows.Scan(
			&row.UserID,
			&row.Name,
			&row.Email,
			&row.CompanyName,
			&row.Balance,
			&row.TotalEarned,
			&row.TotalSpent,
			&row.UpdatedAt,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan balance report row", err)
		}
		report = append(report, row)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating balance report rows", err)
	}

	return report, nil
}

// GetTransactionReport returns a page of transactions across all accounts,
// newest first, plus the aggregate credit/debit totals for the same window.
// A zero since disables the time filter.
func (r *reportingRepository) GetTransactionReport(ctx context.Context, since time.Time, limit, offset int) ([]domain.TransactionReportRow, domain.TransactionReportTotals, error) {
	if limit <= 0 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	var totals domain.TransactionReportTotals

	baseQuery := `
		SELECT ct.transaction_id, COALESCE(u.name, ''), COALESCE(u.email, ''), COALESCE(cp.company_name, ''),
		       ct.transaction_type, ct.amount, COALESCE(ct.description, ''), COALESCE(admin_user.name, ''), ct.created_at
		FROM coin_transactions ct
		LEFT JOIN users u ON ct.user_id = u.user_id
		LEFT JOIN company_plans cp ON u.company_id = cp.company_id
		LEFT JOIN users admin_user ON ct.processed_by = admin_user.user_id
	`
	filterClause := ``
	args := []interface{}{}
	if !since.IsZero() {
		filterClause = ` WHERE ct.created_at >= $1`
		args = append(args, since)
	}

	query := baseQuery + filterClause + ` ORDER BY ct.created_at DESC, ct.transaction_id DESC` +
		` LIMIT $` + strconv.Itoa(len(args)+1) + ` OFFSET $` + strconv.Itoa(len(args)+2) + `;`
	pageArgs := append(append([]interface{}{}, args...), limit, offset)

	rows, err := r.Pool.Query(ctx, query, pageArgs...)
	if err != nil {
		return nil, totals, apperrors.NewAppError(500, "failed to query transaction report", err)
	}
	defer rows.Close()

	report := []domain.TransactionReportRow{}
	for rows.Next() {
		var row domain.TransactionReportRow
		var txnType string
		if err := rows.Scan(
			&row.TransactionID,
			&row.UserName,
			&row.Email,
			&row.CompanyName,
			&txnType,
			&row.Amount,
			&row.Description,
			&row.ProcessedBy,
			&row.CreatedAt,
		); err != nil {
			return nil, totals, apperrors.NewAppError(500, "failed to scan transaction report row", err)
		}
		row.Type = domain.TransactionType(txnType)
		report = append(report, row)
	}
	if err := rows.Err(); err != nil {
		return nil, totals, apperrors.NewAppError(500, "error iterating transaction report rows", err)
	}

	statsQuery := `
		SELECT COUNT(*),
		       COALESCE(SUM(CASE WHEN transaction_type IN ('admin_add', 'monthly_allowance') THEN amount ELSE 0 END), 0),
		       COALESCE(SUM(CASE WHEN transaction_type IN ('benefit_purchase', 'admin_remove') THEN amount ELSE 0 END), 0)
		FROM coin_transactions ct
	` + filterClause + `;`

	if err := r.Pool.QueryRow(ctx, statsQuery, args...).Scan(
		&totals.TotalTransactions,
		&totals.TotalCredits,
		&totals.TotalDebits,
	); err != nil {
		return nil, totals, apperrors.NewAppError(500, "failed to aggregate transaction report totals", err)
	}

	return report, totals, nil
}

// GetCompanyStatistics aggregates every company plan against its employees'
// ledgers: planned vs actual headcount, plan rates, and summed balances.
func (r *reportingRepository) GetCompanyStatistics(ctx context.Context) ([]domain.CompanyStatisticsRow, error) {
	query := `
		SELECT cp.company_id, cp.company_name, cp.employee_count,
		       COUNT(DISTINCT u.user_id),
		       cp.monthly_rate, cp.coins_per_employee,
		       SUM(ub.balance), SUM(ub.total_earned), SUM(ub.total_spent)
		FROM company_plans cp
		LEFT JOIN users u ON u.company_id = cp.company_id
		LEFT JOIN user_balance ub ON ub.user_id = u.user_id
		GROUP BY cp.company_id, cp.company_name, cp.employee_count, cp.monthly_rate, cp.coins_per_employee
		ORDER BY cp.company_name;
	`

	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query company statistics", err)
	}
	defer rows.Close()

	stats := []domain.CompanyStatisticsRow{}
	for rows.Next() {
		var row domain.CompanyStatisticsRow
		// The sums are NULL for companies with no employee ledgers yet.
		var totalBalance, totalIssued, totalSpent sql.NullString
		if err := rows.Scan(
			&row.CompanyID,
			&row.CompanyName,
			&row.PlannedEmployees,
			&row.ActualEmployees,
			&row.MonthlyRate,
			&row.CoinsPerEmployee,
			&totalBalance,
			&totalIssued,
			&totalSpent,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan company statistics row", err)
		}

		row.TotalBalance = nullDecimal(totalBalance)
		row.TotalCoinsIssued = nullDecimal(totalIssued)
		row.TotalCoinsSpent = nullDecimal(totalSpent)
		stats = append(stats, row)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating company statistics rows", err)
	}

	return stats, nil
}

func nullDecimal(v sql.NullString) decimal.Decimal {
	if !v.Valid {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(v.String)
	if err != nil {
		return decimal.Zero
	}
	return d
}
