package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/yoddle/coins_backend/internal/apperrors"
	"github.com/yoddle/coins_backend/internal/core/domain"
	"github.com/yoddle/coins_backend/internal/core/ports"
	portssvc "github.com/yoddle/coins_backend/internal/core/ports/services"
	"github.com/yoddle/coins_backend/internal/core/services"
)

// --- Mock TransactionRepository ---
type MockTransactionRepository struct {
	mock.Mock
}

var _ ports.TransactionRepository = (*MockTransactionRepository)(nil)

func (m *MockTransactionRepository) ListByAccount(ctx context.Context, accountID string, since time.Time, limit, offset int) ([]domain.Transaction, int64, error) {
	args := m.Called(ctx, accountID, since, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Transaction), args.Get(1).(int64), args.Error(2)
}

// --- Mock ReportingRepository ---
type MockReportingRepository struct {
	mock.Mock
}

var _ ports.ReportingRepository = (*MockReportingRepository)(nil)

func (m *MockReportingRepository) GetBalanceReport(ctx context.Context, companyID *string) ([]domain.BalanceReportRow, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BalanceReportRow), args.Error(1)
}

func (m *MockReportingRepository) GetTransactionReport(ctx context.Context, since time.Time, limit, offset int) ([]domain.TransactionReportRow, domain.TransactionReportTotals, error) {
	args := m.Called(ctx, since, limit, offset)
	if args.Get(0) == nil {
		return nil, domain.TransactionReportTotals{}, args.Error(2)
	}
	return args.Get(0).([]domain.TransactionReportRow), args.Get(1).(domain.TransactionReportTotals), args.Error(2)
}

func (m *MockReportingRepository) GetCompanyStatistics(ctx context.Context) ([]domain.CompanyStatisticsRow, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CompanyStatisticsRow), args.Error(1)
}

// --- Test Suite ---
type ReportingServiceTestSuite struct {
	suite.Suite
	mockBalanceRepo   *MockBalanceRepository
	mockTxnRepo       *MockTransactionRepository
	mockUserRepo      *MockUserRepository
	mockCompanyRepo   *MockCompanyRepository
	mockReportingRepo *MockReportingRepository
	service           portssvc.ReportingSvc
	ctx               context.Context
}

func (s *ReportingServiceTestSuite) SetupTest() {
	s.mockBalanceRepo = new(MockBalanceRepository)
	s.mockTxnRepo = new(MockTransactionRepository)
	s.mockUserRepo = new(MockUserRepository)
	s.mockCompanyRepo = new(MockCompanyRepository)
	s.mockReportingRepo = new(MockReportingRepository)
	// nil cache client disables caching
	s.service = services.NewReportingService(s.mockBalanceRepo, s.mockTxnRepo, s.mockUserRepo, s.mockCompanyRepo, s.mockReportingRepo, nil)
	s.ctx = context.Background()
}

func (s *ReportingServiceTestSuite) TestListTransactions_Pagination() {
	accountID := "user-1"
	txns := []domain.Transaction{
		{TransactionID: 12, AccountID: accountID, Type: domain.CreditAdmin, Amount: decimal.NewFromInt(5)},
		{TransactionID: 11, AccountID: accountID, Type: domain.DebitPurchase, Amount: decimal.NewFromInt(3)},
	}

	s.mockTxnRepo.On("ListByAccount", s.ctx, accountID, time.Time{}, 2, 0).
		Return(txns, int64(5), nil).Once()

	resp, err := s.service.ListTransactions(s.ctx, accountID, nil, 2, 0)

	s.Require().NoError(err)
	s.Len(resp.Transactions, 2)
	s.Equal(int64(5), resp.Total)
	s.True(resp.HasMore)
	s.Equal(int64(12), resp.Transactions[0].TransactionID)
}

func (s *ReportingServiceTestSuite) TestListTransactions_LastPage() {
	accountID := "user-1"
	txns := []domain.Transaction{{TransactionID: 1, AccountID: accountID}}

	s.mockTxnRepo.On("ListByAccount", s.ctx, accountID, time.Time{}, 50, 4).
		Return(txns, int64(5), nil).Once()

	resp, err := s.service.ListTransactions(s.ctx, accountID, nil, 0, 4)

	s.Require().NoError(err)
	s.False(resp.HasMore)
}

func (s *ReportingServiceTestSuite) TestListTransactions_PeriodWindow() {
	accountID := "user-1"
	period := domain.PeriodWeek

	s.mockTxnRepo.On("ListByAccount", s.ctx, accountID, mock.MatchedBy(func(since time.Time) bool {
		// Roughly seven days back from now.
		return time.Since(since) > 6*24*time.Hour && time.Since(since) < 8*24*time.Hour
	}), 50, 0).Return([]domain.Transaction{}, int64(0), nil).Once()

	_, err := s.service.ListTransactions(s.ctx, accountID, &period, 50, 0)
	s.Require().NoError(err)
	s.mockTxnRepo.AssertExpectations(s.T())
}

func (s *ReportingServiceTestSuite) TestListTransactions_Validation() {
	_, err := s.service.ListTransactions(s.ctx, "", nil, 10, 0)
	s.ErrorIs(err, apperrors.ErrValidation)

	bad := domain.Period("decade")
	_, err = s.service.ListTransactions(s.ctx, "user-1", &bad, 10, 0)
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *ReportingServiceTestSuite) TestBalanceDetails_Enriched() {
	accountID := "user-1"
	companyID := "company-1"
	account := accountWith(accountID, "40", "60", "20", 3)
	coins := decimal.NewFromInt(100)

	s.mockBalanceRepo.On("GetOrCreate", s.ctx, accountID).Return(account, nil).Once()
	s.mockUserRepo.On("FindUserByID", s.ctx, accountID).
		Return(&domain.User{UserID: accountID, Name: "Dana", CompanyID: &companyID}, nil).Once()
	s.mockCompanyRepo.On("FindCompanyPlanByID", s.ctx, companyID).
		Return(&domain.CompanyPlan{CompanyID: companyID, CompanyName: "Acme", CoinsPerEmployee: coins}, nil).Once()

	resp, err := s.service.BalanceDetails(s.ctx, accountID)

	s.Require().NoError(err)
	s.True(resp.Balance.Equal(decimal.NewFromInt(40)))
	s.Equal("Dana", resp.UserName)
	s.Equal("Acme", resp.CompanyName)
	s.Require().NotNil(resp.CoinsPerEmployee)
	s.True(resp.CoinsPerEmployee.Equal(coins))
}

func (s *ReportingServiceTestSuite) TestBalanceDetails_UnknownUserStillGetsLedger() {
	accountID := "contractor-1"
	account := accountWith(accountID, "10", "10", "0", 1)

	s.mockBalanceRepo.On("GetOrCreate", s.ctx, accountID).Return(account, nil).Once()
	s.mockUserRepo.On("FindUserByID", s.ctx, accountID).Return(nil, apperrors.ErrNotFound).Once()

	resp, err := s.service.BalanceDetails(s.ctx, accountID)

	s.Require().NoError(err)
	s.True(resp.Balance.Equal(decimal.NewFromInt(10)))
	s.Empty(resp.UserName)
	s.Nil(resp.CoinsPerEmployee)
}

func (s *ReportingServiceTestSuite) TestTransactionReport() {
	rows := []domain.TransactionReportRow{{TransactionID: 7, Type: domain.CreditMonthlyAllowance}}
	totals := domain.TransactionReportTotals{
		TotalTransactions: 1,
		TotalCredits:      decimal.NewFromInt(100),
		TotalDebits:       decimal.Zero,
	}

	s.mockReportingRepo.On("GetTransactionReport", s.ctx, time.Time{}, 100, 0).
		Return(rows, totals, nil).Once()

	resp, err := s.service.TransactionReport(s.ctx, nil, 0, 0)

	s.Require().NoError(err)
	s.Len(resp.Transactions, 1)
	s.True(resp.Statistics.TotalCredits.Equal(decimal.NewFromInt(100)))
}

func (s *ReportingServiceTestSuite) TestBalanceReport_CompanyFilter() {
	companyID := "company-1"
	rows := []domain.BalanceReportRow{{UserID: "u1", CompanyName: "Acme"}}

	s.mockReportingRepo.On("GetBalanceReport", s.ctx, &companyID).Return(rows, nil).Once()

	got, err := s.service.BalanceReport(s.ctx, &companyID)

	s.Require().NoError(err)
	s.Equal(rows, got)
}

func (s *ReportingServiceTestSuite) TestCompanyStatistics_NoCache() {
	rows := []domain.CompanyStatisticsRow{{CompanyID: "c1", CompanyName: "Acme"}}

	s.mockReportingRepo.On("GetCompanyStatistics", s.ctx).Return(rows, nil).Once()

	got, err := s.service.CompanyStatistics(s.ctx)

	s.Require().NoError(err)
	s.Equal(rows, got)
}

func TestReportingService(t *testing.T) {
	suite.Run(t, new(ReportingServiceTestSuite))
}
