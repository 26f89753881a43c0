package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yoddle/coins_backend/internal/apperrors"
	"github.com/yoddle/coins_backend/internal/core/domain"
	"github.com/yoddle/coins_backend/internal/core/ports"
	"github.com/yoddle/coins_backend/internal/models"
	"github.com/yoddle/coins_backend/internal/utils/mapping"
)

type PgxCompanyRepository struct {
	BaseRepository
}

// NewCompanyRepository creates a new repository for company plan data.
func NewCompanyRepository(pool *pgxpool.Pool) ports.CompanyRepository {
	return &PgxCompanyRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ ports.CompanyRepository = (*PgxCompanyRepository)(nil)

const companyPlanColumns = `company_id, company_name, employee_count, monthly_rate, coins_per_employee, plan_start_date, is_active, created_at`

// SaveCompanyPlan inserts a new company plan.
func (r *PgxCompanyRepository) SaveCompanyPlan(ctx context.Context, plan domain.CompanyPlan) error {
	query := `
		INSERT INTO company_plans (company_id, company_name, employee_count, monthly_rate, coins_per_employee, plan_start_date, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.Pool.Exec(ctx, query,
		plan.CompanyID,
		plan.CompanyName,
		plan.EmployeeCount,
		plan.MonthlyRate,
		plan.CoinsPerEmployee,
		plan.PlanStartDate,
		plan.IsActive,
		plan.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: company plan %s already exists", apperrors.ErrDuplicate, plan.CompanyName)
		}
		return apperrors.NewAppError(500, "failed to save company plan "+plan.CompanyID, err)
	}
	return nil
}

// FindCompanyPlanByID retrieves a company plan by its ID.
func (r *PgxCompanyRepository) FindCompanyPlanByID(ctx context.Context, companyID string) (*domain.CompanyPlan, error) {
	query := `SELECT ` + companyPlanColumns + ` FROM company_plans WHERE company_id = $1;`

	var m models.CompanyPlan
	err := r.Pool.QueryRow(ctx, query, companyID).Scan(
		&m.CompanyID,
		&m.CompanyName,
		&m.EmployeeCount,
		&m.MonthlyRate,
		&m.CoinsPerEmployee,
		&m.PlanStartDate,
		&m.IsActive,
		&m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find company plan "+companyID, err)
	}

	plan := mapping.ToDomainCompanyPlan(m)
	return &plan, nil
}

// ListCompanyPlans retrieves all company plans ordered by name.
func (r *PgxCompanyRepository) ListCompanyPlans(ctx context.Context) ([]domain.CompanyPlan, error) {
	return r.listPlans(ctx, false)
}

// ListActiveCompanyPlans retrieves the plans eligible for the monthly allocation.
func (r *PgxCompanyRepository) ListActiveCompanyPlans(ctx context.Context) ([]domain.CompanyPlan, error) {
	return r.listPlans(ctx, true)
}

func (r *PgxCompanyRepository) listPlans(ctx context.Context, activeOnly bool) ([]domain.CompanyPlan, error) {
	query := `SELECT ` + companyPlanColumns + ` FROM company_plans`
	if activeOnly {
		query += ` WHERE is_active = TRUE`
	}
	query += ` ORDER BY company_name;`

	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query company plans", err)
	}
	defer rows.Close()

	plans := []domain.CompanyPlan{}
	for rows.Next() {
		var m models.CompanyPlan
		if err := rows.Scan(
			&m.CompanyID,
			&m.CompanyName,
			&m.EmployeeCount,
			&m.MonthlyRate,
			&m.CoinsPerEmployee,
			&m.PlanStartDate,
			&m.IsActive,
			&m.CreatedAt,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan company plan row", err)
		}
		plans = append(plans, mapping.ToDomainCompanyPlan(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating company plan rows", err)
	}

	return plans, nil
}
