package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/yoddle/coins_backend/internal/apperrors"
	"github.com/yoddle/coins_backend/internal/core/domain"
	portssvc "github.com/yoddle/coins_backend/internal/core/ports/services"
	"github.com/yoddle/coins_backend/internal/dto"
	"github.com/yoddle/coins_backend/internal/handlers"
	"github.com/yoddle/coins_backend/internal/platform/config"
)

// --- Mock LedgerService ---
type MockLedgerService struct {
	mock.Mock
}

var _ portssvc.LedgerSvc = (*MockLedgerService)(nil)

func (m *MockLedgerService) Credit(ctx context.Context, accountID string, amount decimal.Decimal, creditType domain.TransactionType, description string, actorID *string) (*domain.Account, error) {
	args := m.Called(ctx, accountID, amount, creditType, description, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockLedgerService) Debit(ctx context.Context, accountID string, amount decimal.Decimal, description string, referenceID *string, actorID *string) (*domain.Account, error) {
	args := m.Called(ctx, accountID, amount, description, referenceID, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockLedgerService) GetBalance(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

// --- Mock ReportingService ---
type MockReportingService struct {
	mock.Mock
}

var _ portssvc.ReportingSvc = (*MockReportingService)(nil)

func (m *MockReportingService) BalanceDetails(ctx context.Context, accountID string) (*dto.BalanceDetailsResponse, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.BalanceDetailsResponse), args.Error(1)
}

func (m *MockReportingService) ListTransactions(ctx context.Context, accountID string, period *domain.Period, limit, offset int) (*dto.TransactionListResponse, error) {
	args := m.Called(ctx, accountID, period, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.TransactionListResponse), args.Error(1)
}

func (m *MockReportingService) BalanceReport(ctx context.Context, companyID *string) ([]domain.BalanceReportRow, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BalanceReportRow), args.Error(1)
}

func (m *MockReportingService) TransactionReport(ctx context.Context, period *domain.Period, limit, offset int) (*dto.TransactionReportResponse, error) {
	args := m.Called(ctx, period, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.TransactionReportResponse), args.Error(1)
}

func (m *MockReportingService) CompanyStatistics(ctx context.Context) ([]domain.CompanyStatisticsRow, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CompanyStatisticsRow), args.Error(1)
}

// --- Mock AuthService ---
type MockAuthService struct {
	mock.Mock
}

var _ portssvc.AuthSvc = (*MockAuthService)(nil)

func (m *MockAuthService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.LoginResponse), args.Error(1)
}

func (m *MockAuthService) RequireAdmin(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// --- Test Suite ---
type LedgerHandlerTestSuite struct {
	suite.Suite
	router               *gin.Engine
	mockLedgerService    *MockLedgerService
	mockReportingService *MockReportingService
	mockAuthService      *MockAuthService
	jwtSecret            string
}

func (suite *LedgerHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.Require().NoError(handlers.RegisterCustomValidators())

	suite.jwtSecret = "test-secret-key-that-is-long-enough"
	suite.mockLedgerService = new(MockLedgerService)
	suite.mockReportingService = new(MockReportingService)
	suite.mockAuthService = new(MockAuthService)

	services := &portssvc.ServiceContainer{
		Ledger:    suite.mockLedgerService,
		Reporting: suite.mockReportingService,
		Auth:      suite.mockAuthService,
	}
	cfg := &config.Config{JWTSecret: suite.jwtSecret}

	suite.router = gin.New()
	handlers.RegisterRoutes(suite.router, cfg, services)
}

// generateTestToken creates a signed JWT for the given user.
func (suite *LedgerHandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "coins-backend-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *LedgerHandlerTestSuite) doJSON(method, url string, body any, userID string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		suite.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req, _ := http.NewRequest(method, url, &buf)
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID))
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *LedgerHandlerTestSuite) TestGetBalance_Success() {
	userID := "user-1"
	coins := decimal.NewFromInt(100)
	expected := &dto.BalanceDetailsResponse{
		AccountID:        userID,
		Balance:          decimal.NewFromInt(40),
		TotalEarned:      decimal.NewFromInt(60),
		TotalSpent:       decimal.NewFromInt(20),
		UserName:         "Dana",
		CompanyName:      "Acme",
		CoinsPerEmployee: &coins,
	}

	suite.mockReportingService.On("BalanceDetails", mock.Anything, userID).
		Return(expected, nil).Once()

	w := suite.doJSON(http.MethodGet, "/api/v1/balance", nil, userID)

	suite.Equal(http.StatusOK, w.Code)
	var body dto.BalanceDetailsResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal(userID, body.AccountID)
	suite.True(body.Balance.Equal(decimal.NewFromInt(40)))
	suite.Equal("Acme", body.CompanyName)
	suite.mockReportingService.AssertExpectations(suite.T())
}

func (suite *LedgerHandlerTestSuite) TestGetBalance_NoToken() {
	w := suite.doJSON(http.MethodGet, "/api/v1/balance", nil, "")

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockReportingService.AssertNotCalled(suite.T(), "BalanceDetails")
}

func (suite *LedgerHandlerTestSuite) TestPurchase_Success() {
	userID := "user-1"
	refID := "benefit-42"
	reqBody := dto.PurchaseRequest{
		Amount:      decimal.NewFromInt(15),
		Description: "Gym membership",
		ReferenceID: &refID,
	}
	account := &domain.Account{AccountID: userID, Balance: decimal.NewFromInt(25)}

	suite.mockLedgerService.On("Debit",
		mock.Anything,
		userID,
		mock.MatchedBy(func(d decimal.Decimal) bool { return d.Equal(decimal.NewFromInt(15)) }),
		"Gym membership",
		mock.MatchedBy(func(r *string) bool { return r != nil && *r == refID }),
		(*string)(nil),
	).Return(account, nil).Once()

	w := suite.doJSON(http.MethodPost, "/api/v1/purchase", reqBody, userID)

	suite.Equal(http.StatusOK, w.Code)
	var body dto.MutationResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal(userID, body.AccountID)
	suite.True(body.NewBalance.Equal(decimal.NewFromInt(25)))
	suite.mockLedgerService.AssertExpectations(suite.T())
}

func (suite *LedgerHandlerTestSuite) TestPurchase_InsufficientFunds() {
	userID := "user-1"
	reqBody := dto.PurchaseRequest{Amount: decimal.NewFromInt(500), Description: "Spa day"}

	suite.mockLedgerService.On("Debit", mock.Anything, userID, mock.Anything, "Spa day", (*string)(nil), (*string)(nil)).
		Return(nil, apperrors.ErrInsufficientFunds).Once()

	w := suite.doJSON(http.MethodPost, "/api/v1/purchase", reqBody, userID)

	suite.Equal(http.StatusUnprocessableEntity, w.Code)
}

func (suite *LedgerHandlerTestSuite) TestPurchase_NonPositiveAmountRejectedByBinding() {
	userID := "user-1"
	reqBody := dto.PurchaseRequest{Amount: decimal.NewFromInt(-5), Description: "Nope"}

	w := suite.doJSON(http.MethodPost, "/api/v1/purchase", reqBody, userID)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockLedgerService.AssertNotCalled(suite.T(), "Debit")
}

func (suite *LedgerHandlerTestSuite) TestAdminCredit_Success() {
	adminID := "admin-1"
	reqBody := dto.CreditRequest{
		AccountID:   "user-9",
		Amount:      decimal.NewFromInt(50),
		Type:        "admin_add",
		Description: "Spot bonus",
	}
	account := &domain.Account{AccountID: "user-9", Balance: decimal.NewFromInt(50)}

	suite.mockAuthService.On("RequireAdmin", mock.Anything, adminID).Return(nil).Once()
	suite.mockLedgerService.On("Credit",
		mock.Anything,
		"user-9",
		mock.MatchedBy(func(d decimal.Decimal) bool { return d.Equal(decimal.NewFromInt(50)) }),
		domain.CreditAdmin,
		"Spot bonus",
		mock.MatchedBy(func(a *string) bool { return a != nil && *a == adminID }),
	).Return(account, nil).Once()

	w := suite.doJSON(http.MethodPost, "/api/v1/admin/coins/credit", reqBody, adminID)

	suite.Equal(http.StatusOK, w.Code)
	suite.mockAuthService.AssertExpectations(suite.T())
	suite.mockLedgerService.AssertExpectations(suite.T())
}

func (suite *LedgerHandlerTestSuite) TestAdminCredit_ForbiddenForNonAdmin() {
	userID := "user-1"
	reqBody := dto.CreditRequest{
		AccountID: "user-9",
		Amount:    decimal.NewFromInt(50),
		Type:      "admin_add",
	}

	suite.mockAuthService.On("RequireAdmin", mock.Anything, userID).
		Return(apperrors.ErrForbidden).Once()

	w := suite.doJSON(http.MethodPost, "/api/v1/admin/coins/credit", reqBody, userID)

	suite.Equal(http.StatusForbidden, w.Code)
	suite.mockLedgerService.AssertNotCalled(suite.T(), "Credit")
}

func (suite *LedgerHandlerTestSuite) TestAdminDebit_ConflictAfterRetries() {
	adminID := "admin-1"
	reqBody := dto.DebitRequest{
		AccountID:   "user-9",
		Amount:      decimal.NewFromInt(10),
		Description: "Correction",
	}

	suite.mockAuthService.On("RequireAdmin", mock.Anything, adminID).Return(nil).Once()
	suite.mockLedgerService.On("Debit", mock.Anything, "user-9", mock.Anything, "Correction", (*string)(nil),
		mock.MatchedBy(func(a *string) bool { return a != nil && *a == adminID }),
	).Return(nil, apperrors.ErrConcurrencyConflict).Once()

	w := suite.doJSON(http.MethodPost, "/api/v1/admin/coins/debit", reqBody, adminID)

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *LedgerHandlerTestSuite) TestListTransactions_PeriodPassthrough() {
	userID := "user-1"
	week := domain.PeriodWeek
	expected := &dto.TransactionListResponse{
		Transactions: []dto.TransactionResponse{{TransactionID: 3, Type: domain.DebitPurchase, Amount: decimal.NewFromInt(5)}},
		Total:        1,
		HasMore:      false,
	}

	suite.mockReportingService.On("ListTransactions", mock.Anything, userID, &week, 10, 0).
		Return(expected, nil).Once()

	w := suite.doJSON(http.MethodGet, "/api/v1/transactions?period=week&limit=10", nil, userID)

	suite.Equal(http.StatusOK, w.Code)
	var body dto.TransactionListResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Len(body.Transactions, 1)
	suite.Equal(int64(3), body.Transactions[0].TransactionID)
	suite.mockReportingService.AssertExpectations(suite.T())
}

func (suite *LedgerHandlerTestSuite) TestListTransactions_BadPeriodRejectedByBinding() {
	userID := "user-1"

	w := suite.doJSON(http.MethodGet, "/api/v1/transactions?period=decade", nil, userID)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockReportingService.AssertNotCalled(suite.T(), "ListTransactions")
}

// --- Run Test Suite ---
func TestLedgerHandler(t *testing.T) {
	suite.Run(t, new(LedgerHandlerTestSuite))
}
