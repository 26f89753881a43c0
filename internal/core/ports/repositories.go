package ports

import (
	"context"
	"time"

	"github.com/yoddle/coins_backend/internal/core/domain"
)

// BalanceRepository is the Ledger Store: durable access to Account rows with
// optimistic concurrency.
type BalanceRepository interface {
	// GetOrCreate returns the account, inserting a zeroed row first if the
	// account ID has never been seen. The insert is conditioned on
	// non-existence, so two racing first touches cannot create conflicting rows.
	GetOrCreate(ctx context.Context, accountID string) (*domain.Account, error)

	// ApplyMutation atomically applies the new account state and appends the
	// paired transaction record in one database transaction, but only if the
	// stored version still equals expectedVersion. On a version mismatch it
	// returns apperrors.ErrConcurrencyConflict and commits nothing: either
	// both the balance change and its audit record become durable, or neither
	// does.
	ApplyMutation(ctx context.Context, account domain.Account, expectedVersion int64, txn domain.Transaction) error
}

// TransactionRepository reads the append-only transaction log.
type TransactionRepository interface {
	// ListByAccount returns a page of the account's transactions ordered
	// newest-first, plus the total count for pagination. A zero since means
	// no time filter.
	ListByAccount(ctx context.Context, accountID string, since time.Time, limit, offset int) ([]domain.Transaction, int64, error)
}

// CompanyRepository reads and writes company benefit plans.
type CompanyRepository interface {
	SaveCompanyPlan(ctx context.Context, plan domain.CompanyPlan) error
	FindCompanyPlanByID(ctx context.Context, companyID string) (*domain.CompanyPlan, error)
	ListCompanyPlans(ctx context.Context) ([]domain.CompanyPlan, error)
	ListActiveCompanyPlans(ctx context.Context) ([]domain.CompanyPlan, error)
}

// UserRepository reads the employee directory. The ledger never writes users.
type UserRepository interface {
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)
	ListUsersByCompany(ctx context.Context, companyID string) ([]domain.User, error)
}

// RepositoryProvider bundles every repository implementation for wiring.
type RepositoryProvider struct {
	BalanceRepo   BalanceRepository
	TxnRepo       TransactionRepository
	CompanyRepo   CompanyRepository
	UserRepo      UserRepository
	ReportingRepo ReportingRepository
}

// ReportingRepository serves the read-only admin reports joining the ledger
// with the employee directory and company plans. Implementations must never
// mutate state.
type ReportingRepository interface {
	GetBalanceReport(ctx context.Context, companyID *string) ([]domain.BalanceReportRow, error)
	GetTransactionReport(ctx context.Context, since time.Time, limit, offset int) ([]domain.TransactionReportRow, domain.TransactionReportTotals, error)
	GetCompanyStatistics(ctx context.Context) ([]domain.CompanyStatisticsRow, error)
}
