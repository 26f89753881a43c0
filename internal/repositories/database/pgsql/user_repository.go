package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yoddle/coins_backend/internal/apperrors"
	"github.com/yoddle/coins_backend/internal/core/domain"
	"github.com/yoddle/coins_backend/internal/core/ports"
	"github.com/yoddle/coins_backend/internal/models"
	"github.com/yoddle/coins_backend/internal/utils/mapping"
)

type PgxUserRepository struct {
	BaseRepository
}

// NewUserRepository creates a read-only repository over the employee
// directory. User records are owned by the surrounding platform; the ledger
// only needs the user->company mapping and the admin login fields.
func NewUserRepository(pool *pgxpool.Pool) ports.UserRepository {
	return &PgxUserRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ ports.UserRepository = (*PgxUserRepository)(nil)

const userColumns = `user_id, name, email, company_id, is_admin, password_hash, created_at`

// FindUserByID retrieves a user by their ID.
func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE user_id = $1;`, userID)
}

// FindUserByEmail retrieves a user by their email address.
func (r *PgxUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1;`, email)
}

func (r *PgxUserRepository) findOne(ctx context.Context, query string, arg interface{}) (*domain.User, error) {
	var m models.User
	err := r.Pool.QueryRow(ctx, query, arg).Scan(
		&m.UserID,
		&m.Name,
		&m.Email,
		&m.CompanyID,
		&m.IsAdmin,
		&m.PasswordHash,
		&m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find user", err)
	}

	user := mapping.ToDomainUser(m)
	return &user, nil
}

// ListUsersByCompany retrieves every employee of one company.
func (r *PgxUserRepository) ListUsersByCompany(ctx context.Context, companyID string) ([]domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE company_id = $1 ORDER BY name;`

	rows, err := r.Pool.Query(ctx, query, companyID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query users for company "+companyID, err)
	}
	defer rows.Close()

	users := []domain.User{}
	for rows.Next() {
		var m models.User
		if err := rows.Scan(
			&m.UserID,
			&m.Name,
			&m.Email,
			&m.CompanyID,
			&m.IsAdmin,
			&m.PasswordHash,
			&m.CreatedAt,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan user row for company "+companyID, err)
		}
		users = append(users, mapping.ToDomainUser(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating user rows for company "+companyID, err)
	}

	return users, nil
}
