package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/yoddle/coins_backend/internal/apperrors"
	"github.com/yoddle/coins_backend/internal/core/domain"
	"github.com/yoddle/coins_backend/internal/core/ports"
	portssvc "github.com/yoddle/coins_backend/internal/core/ports/services"
	"github.com/yoddle/coins_backend/internal/core/services"
)

// --- Mock CompanyRepository ---
type MockCompanyRepository struct {
	mock.Mock
}

var _ ports.CompanyRepository = (*MockCompanyRepository)(nil)

func (m *MockCompanyRepository) SaveCompanyPlan(ctx context.Context, plan domain.CompanyPlan) error {
	args := m.Called(ctx, plan)
	return args.Error(0)
}

func (m *MockCompanyRepository) FindCompanyPlanByID(ctx context.Context, companyID string) (*domain.CompanyPlan, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CompanyPlan), args.Error(1)
}

func (m *MockCompanyRepository) ListCompanyPlans(ctx context.Context) ([]domain.CompanyPlan, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CompanyPlan), args.Error(1)
}

func (m *MockCompanyRepository) ListActiveCompanyPlans(ctx context.Context) ([]domain.CompanyPlan, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CompanyPlan), args.Error(1)
}

// --- Mock UserRepository ---
type MockUserRepository struct {
	mock.Mock
}

var _ ports.UserRepository = (*MockUserRepository)(nil)

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) ListUsersByCompany(ctx context.Context, companyID string) ([]domain.User, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

// --- Mock LedgerSvc ---
type MockLedgerSvc struct {
	mock.Mock
}

var _ portssvc.LedgerSvc = (*MockLedgerSvc)(nil)

func (m *MockLedgerSvc) Credit(ctx context.Context, accountID string, amount decimal.Decimal, creditType domain.TransactionType, description string, actorID *string) (*domain.Account, error) {
	args := m.Called(ctx, accountID, amount, creditType, description, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockLedgerSvc) Debit(ctx context.Context, accountID string, amount decimal.Decimal, description string, referenceID *string, actorID *string) (*domain.Account, error) {
	args := m.Called(ctx, accountID, amount, description, referenceID, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockLedgerSvc) GetBalance(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

// --- Test Suite ---
type AllocationServiceTestSuite struct {
	suite.Suite
	mockCompanyRepo *MockCompanyRepository
	mockUserRepo    *MockUserRepository
	mockLedger      *MockLedgerSvc
	service         portssvc.AllocationSvc
	ctx             context.Context
}

func (s *AllocationServiceTestSuite) SetupTest() {
	s.mockCompanyRepo = new(MockCompanyRepository)
	s.mockUserRepo = new(MockUserRepository)
	s.mockLedger = new(MockLedgerSvc)
	s.service = services.NewAllocationService(s.mockCompanyRepo, s.mockUserRepo, s.mockLedger)
	s.ctx = context.Background()
}

func employees(companyID string, ids ...string) []domain.User {
	users := make([]domain.User, 0, len(ids))
	for _, id := range ids {
		users = append(users, domain.User{UserID: id, CompanyID: &companyID})
	}
	return users
}

func (s *AllocationServiceTestSuite) TestBulkAllocate_FailureIsolation() {
	companyID := "company-1"
	actorID := "admin-1"
	amount := decimal.NewFromInt(25)
	plan := &domain.CompanyPlan{CompanyID: companyID, CompanyName: "Acme"}

	s.mockCompanyRepo.On("FindCompanyPlanByID", s.ctx, companyID).Return(plan, nil).Once()
	s.mockUserRepo.On("ListUsersByCompany", s.ctx, companyID).
		Return(employees(companyID, "u1", "u2", "u3", "u4", "u5"), nil).Once()

	for _, id := range []string{"u1", "u2", "u4", "u5"} {
		s.mockLedger.On("Credit", s.ctx, id, amount, domain.CreditAdmin, "quarterly thank you", &actorID).
			Return(&domain.Account{AccountID: id}, nil).Once()
	}
	// u3's credit fails; the batch keeps going.
	s.mockLedger.On("Credit", s.ctx, "u3", amount, domain.CreditAdmin, "quarterly thank you", &actorID).
		Return(nil, errors.New("store unavailable")).Once()

	result, err := s.service.BulkAllocate(s.ctx, companyID, amount, "quarterly thank you", actorID)

	s.Require().NoError(err)
	s.Equal(5, result.Total)
	s.Equal(4, result.Succeeded)
	s.Equal(1, result.Failed)
	s.Equal([]string{"u3"}, result.FailedIDs)
	s.mockLedger.AssertExpectations(s.T())
}

func (s *AllocationServiceTestSuite) TestBulkAllocate_Validation() {
	_, err := s.service.BulkAllocate(s.ctx, "", decimal.NewFromInt(10), "", "admin-1")
	s.ErrorIs(err, apperrors.ErrValidation)

	_, err = s.service.BulkAllocate(s.ctx, "company-1", decimal.Zero, "", "admin-1")
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *AllocationServiceTestSuite) TestBulkAllocate_UnknownCompany() {
	s.mockCompanyRepo.On("FindCompanyPlanByID", s.ctx, "ghost").
		Return(nil, apperrors.ErrNotFound).Once()

	_, err := s.service.BulkAllocate(s.ctx, "ghost", decimal.NewFromInt(10), "", "admin-1")
	s.ErrorIs(err, apperrors.ErrNotFound)
	s.mockLedger.AssertNotCalled(s.T(), "Credit", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *AllocationServiceTestSuite) TestRunMonthlyAllocation() {
	acme := domain.CompanyPlan{CompanyID: "c1", CoinsPerEmployee: decimal.NewFromInt(100)}
	globex := domain.CompanyPlan{CompanyID: "c2", CoinsPerEmployee: decimal.NewFromInt(50)}

	s.mockCompanyRepo.On("ListActiveCompanyPlans", s.ctx).
		Return([]domain.CompanyPlan{acme, globex}, nil).Once()
	s.mockUserRepo.On("ListUsersByCompany", s.ctx, "c1").
		Return(employees("c1", "a1", "a2"), nil).Once()
	s.mockUserRepo.On("ListUsersByCompany", s.ctx, "c2").
		Return(employees("c2", "g1"), nil).Once()

	s.mockLedger.On("Credit", s.ctx, "a1", acme.CoinsPerEmployee, domain.CreditMonthlyAllowance, mock.AnythingOfType("string"), (*string)(nil)).
		Return(&domain.Account{AccountID: "a1"}, nil).Once()
	s.mockLedger.On("Credit", s.ctx, "a2", acme.CoinsPerEmployee, domain.CreditMonthlyAllowance, mock.AnythingOfType("string"), (*string)(nil)).
		Return(nil, errors.New("store unavailable")).Once()
	s.mockLedger.On("Credit", s.ctx, "g1", globex.CoinsPerEmployee, domain.CreditMonthlyAllowance, mock.AnythingOfType("string"), (*string)(nil)).
		Return(&domain.Account{AccountID: "g1"}, nil).Once()

	result, err := s.service.RunMonthlyAllocation(s.ctx)

	s.Require().NoError(err)
	s.Equal(2, result.AccountsCredited)
	s.Equal(1, result.Failed)
	s.Equal([]string{"a2"}, result.FailedIDs)
	s.mockLedger.AssertExpectations(s.T())
}

func (s *AllocationServiceTestSuite) TestRunMonthlyAllocation_CompanyListFailureIsIsolated() {
	acme := domain.CompanyPlan{CompanyID: "c1", CoinsPerEmployee: decimal.NewFromInt(100)}
	globex := domain.CompanyPlan{CompanyID: "c2", CoinsPerEmployee: decimal.NewFromInt(50)}

	s.mockCompanyRepo.On("ListActiveCompanyPlans", s.ctx).
		Return([]domain.CompanyPlan{acme, globex}, nil).Once()
	s.mockUserRepo.On("ListUsersByCompany", s.ctx, "c1").
		Return(nil, errors.New("directory down")).Once()
	s.mockUserRepo.On("ListUsersByCompany", s.ctx, "c2").
		Return(employees("c2", "g1"), nil).Once()
	s.mockLedger.On("Credit", s.ctx, "g1", globex.CoinsPerEmployee, domain.CreditMonthlyAllowance, mock.AnythingOfType("string"), (*string)(nil)).
		Return(&domain.Account{AccountID: "g1"}, nil).Once()

	result, err := s.service.RunMonthlyAllocation(s.ctx)

	s.Require().NoError(err)
	s.Equal(1, result.AccountsCredited)
	s.Equal(1, result.Failed)
	s.Equal([]string{"c1"}, result.FailedIDs)
}

func TestAllocationService(t *testing.T) {
	suite.Run(t, new(AllocationServiceTestSuite))
}
