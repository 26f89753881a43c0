package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/yoddle/coins_backend/internal/apperrors"
	"github.com/yoddle/coins_backend/internal/core/domain"
	"github.com/yoddle/coins_backend/internal/core/ports"
	portssvc "github.com/yoddle/coins_backend/internal/core/ports/services"
	"github.com/yoddle/coins_backend/internal/dto"
)

const (
	companyStatsCacheKey = "coins:reports:company_statistics"
	companyStatsCacheTTL = 60 * time.Second
)

// reportingService serves the read-only ledger views. Reads never touch the
// mutation path; the company statistics aggregation is cached briefly in
// Redis because it scans every ledger row. A nil cache client disables
// caching.
type reportingService struct {
	BaseService
	balanceRepo   ports.BalanceRepository
	txnRepo       ports.TransactionRepository
	userRepo      ports.UserRepository
	companyRepo   ports.CompanyRepository
	reportingRepo ports.ReportingRepository
	cache         *redis.Client
}

// NewReportingService creates a new ReportingSvc. cache may be nil.
func NewReportingService(
	balanceRepo ports.BalanceRepository,
	txnRepo ports.TransactionRepository,
	userRepo ports.UserRepository,
	companyRepo ports.CompanyRepository,
	reportingRepo ports.ReportingRepository,
	cache *redis.Client,
) portssvc.ReportingSvc {
	return &reportingService{
		balanceRepo:   balanceRepo,
		txnRepo:       txnRepo,
		userRepo:      userRepo,
		companyRepo:   companyRepo,
		reportingRepo: reportingRepo,
		cache:         cache,
	}
}

var _ portssvc.ReportingSvc = (*reportingService)(nil)

// BalanceDetails returns the account snapshot enriched with the owner's name
// and company plan. Unknown users still get their ledger back; the extra
// fields are best effort.
func (s *reportingService) BalanceDetails(ctx context.Context, accountID string) (*dto.BalanceDetailsResponse, error) {
	if accountID == "" {
		return nil, fmt.Errorf("%w: account ID is required", apperrors.ErrValidation)
	}

	account, err := s.balanceRepo.GetOrCreate(ctx, accountID)
	if err != nil {
		s.LogError(ctx, err, "failed to load balance", "account_id", accountID)
		return nil, err
	}

	resp := &dto.BalanceDetailsResponse{
		AccountID:   account.AccountID,
		Balance:     account.Balance,
		TotalEarned: account.TotalEarned,
		TotalSpent:  account.TotalSpent,
		UpdatedAt:   account.UpdatedAt,
	}

	user, err := s.userRepo.FindUserByID(ctx, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "failed to load user for balance", "account_id", accountID)
		}
		return resp, nil
	}
	resp.UserName = user.Name

	if user.CompanyID != nil {
		plan, err := s.companyRepo.FindCompanyPlanByID(ctx, *user.CompanyID)
		if err != nil {
			if !errors.Is(err, apperrors.ErrNotFound) {
				s.LogError(ctx, err, "failed to load company plan for balance", "account_id", accountID)
			}
			return resp, nil
		}
		resp.CompanyName = plan.CompanyName
		coins := plan.CoinsPerEmployee
		resp.CoinsPerEmployee = &coins
	}

	return resp, nil
}

// ListTransactions returns one page of an account's history, newest first.
func (s *reportingService) ListTransactions(ctx context.Context, accountID string, period *domain.Period, limit, offset int) (*dto.TransactionListResponse, error) {
	if accountID == "" {
		return nil, fmt.Errorf("%w: account ID is required", apperrors.ErrValidation)
	}
	since, err := sinceFromPeriod(period)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	txns, total, err := s.txnRepo.ListByAccount(ctx, accountID, since, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "failed to list transactions", "account_id", accountID)
		return nil, err
	}

	resp := &dto.TransactionListResponse{
		Transactions: make([]dto.TransactionResponse, 0, len(txns)),
		Total:        total,
		HasMore:      int64(offset+len(txns)) < total,
	}
	for _, t := range txns {
		resp.Transactions = append(resp.Transactions, dto.ToTransactionResponse(t))
	}
	return resp, nil
}

// BalanceReport returns one row per ledger, optionally scoped to a company.
func (s *reportingService) BalanceReport(ctx context.Context, companyID *string) ([]domain.BalanceReportRow, error) {
	rows, err := s.reportingRepo.GetBalanceReport(ctx, companyID)
	if err != nil {
		s.LogError(ctx, err, "failed to build balance report")
		return nil, err
	}
	return rows, nil
}

// TransactionReport returns a page of cross-account transactions plus the
// credit/debit totals for the same window.
func (s *reportingService) TransactionReport(ctx context.Context, period *domain.Period, limit, offset int) (*dto.TransactionReportResponse, error) {
	since, err := sinceFromPeriod(period)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	rows, totals, err := s.reportingRepo.GetTransactionReport(ctx, since, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "failed to build transaction report")
		return nil, err
	}

	return &dto.TransactionReportResponse{
		Transactions: rows,
		Statistics:   totals,
	}, nil
}

// CompanyStatistics aggregates every company plan against its employee
// ledgers. Results may be up to a minute stale when the cache is enabled.
func (s *reportingService) CompanyStatistics(ctx context.Context) ([]domain.CompanyStatisticsRow, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, companyStatsCacheKey).Result()
		if err == nil {
			var rows []domain.CompanyStatisticsRow
			if err := json.Unmarshal([]byte(cached), &rows); err == nil {
				return rows, nil
			}
			// Unreadable cache entry, fall through to the database.
			s.LogDebug(ctx, "discarding unreadable company statistics cache entry")
		} else if !errors.Is(err, redis.Nil) {
			s.LogError(ctx, err, "company statistics cache read failed")
		}
	}

	rows, err := s.reportingRepo.GetCompanyStatistics(ctx)
	if err != nil {
		s.LogError(ctx, err, "failed to build company statistics")
		return nil, err
	}

	if s.cache != nil {
		if payload, err := json.Marshal(rows); err == nil {
			if err := s.cache.Set(ctx, companyStatsCacheKey, payload, companyStatsCacheTTL).Err(); err != nil {
				s.LogError(ctx, err, "company statistics cache write failed")
			}
		}
	}

	return rows, nil
}

// sinceFromPeriod turns an optional period into a lower bound for created_at.
// A nil period means no time filter, reported as the zero time.
func sinceFromPeriod(period *domain.Period) (time.Time, error) {
	if period == nil {
		return time.Time{}, nil
	}
	since, err := period.Since(time.Now().UTC())
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}
	return since, nil
}
