package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/SscSPs/banking_backoffice_app/internal/apperrors"
	"github.com/SscSPs/banking_backoffice_app/internal/core/domain"
	portssvc "github.com/SscSPs/banking_backoffice_app/internal/core/ports/services"
	"github.com/SscSPs/banking_backoffice_app/internal/dto"
	"github.com/SscSPs/banking_backoffice_app/internal/handlers"
	"github.com/SscSPs/banking_backoffice_app/internal/platform/config"
	"github.com/SscSPs/banking_backoffice_app/internal/platform/metrics"
	"github.com/SscSPs/banking_backoffice_app/internal/utils"
	"github.com/SscSPs/banking_backoffice_app/internal/utils/pagination"
)

// --- Mock LedgerService ---
type MockLedgerService struct {
	mock.Mock
}

func (m *MockLedgerService) account(args mock.Arguments) (*domain.Account, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockLedgerService) GetAccount(ctx context.Context, userID int64) (*domain.Account, error) {
	return m.account(m.Called(ctx, userID))
}
func (m *MockLedgerService) CreateAccount(ctx context.Context, userID int64, openingBalance int64) (*domain.Account, error) {
	return m.account(m.Called(ctx, userID, openingBalance))
}
func (m *MockLedgerService) Deposit(ctx context.Context, userID int64, amount int64) (*domain.Account, error) {
	return m.account(m.Called(ctx, userID, amount))
}
func (m *MockLedgerService) Withdraw(ctx context.Context, userID int64, amount int64) (*domain.Account, error) {
	return m.account(m.Called(ctx, userID, amount))
}
func (m *MockLedgerService) Transfer(ctx context.Context, userID int64, receiverAccountID int64, amount int64) (*domain.Account, *domain.Account, error) {
	args := m.Called(ctx, userID, receiverAccountID, amount)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.Account), args.Get(1).(*domain.Account), args.Error(2)
}
func (m *MockLedgerService) SetupAutomaticPayment(ctx context.Context, userID int64, amount int64, lastPayTime time.Time) (*domain.Bill, error) {
	args := m.Called(ctx, userID, amount, lastPayTime)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Bill), args.Error(1)
}
func (m *MockLedgerService) ExecutePendingRecord(ctx context.Context, recordID int64) (*domain.Account, error) {
	return m.account(m.Called(ctx, recordID))
}

var _ portssvc.LedgerSvcFacade = (*MockLedgerService)(nil)

// --- Mock RecordService ---
type MockRecordService struct {
	mock.Mock
}

func (m *MockRecordService) GetTransactionHistory(ctx context.Context, userID int64) ([]domain.Record, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Record), args.Error(1)
}
func (m *MockRecordService) ListRecords(ctx context.Context, params dto.ListRecordsParams) ([]domain.Record, pagination.Metadata, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, pagination.Metadata{}, args.Error(2)
	}
	return args.Get(0).([]domain.Record), args.Get(1).(pagination.Metadata), args.Error(2)
}

var _ portssvc.RecordSvcFacade = (*MockRecordService)(nil)

// --- Mock UserService ---
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) user(args mock.Arguments) (*domain.User, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) GetUserByID(ctx context.Context, userID int64) (*domain.User, error) {
	return m.user(m.Called(ctx, userID))
}
func (m *MockUserService) RegisterUser(ctx context.Context, req dto.RegisterUserRequest) (*domain.User, error) {
	return m.user(m.Called(ctx, req))
}
func (m *MockUserService) UpdateUserRoles(ctx context.Context, userID int64, roles []string) (*domain.User, error) {
	return m.user(m.Called(ctx, userID, roles))
}
func (m *MockUserService) AuthenticateUser(ctx context.Context, userName, password string) (*domain.User, error) {
	return m.user(m.Called(ctx, userName, password))
}

var _ portssvc.UserSvcFacade = (*MockUserService)(nil)

// --- Mock TokenService ---
type MockTokenService struct {
	mock.Mock
}

func (m *MockTokenService) IssueTokens(ctx context.Context, user *domain.User) (*dto.TokenResponse, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.TokenResponse), args.Error(1)
}
func (m *MockTokenService) RefreshTokens(ctx context.Context, accessToken, refreshToken string) (*dto.TokenResponse, error) {
	args := m.Called(ctx, accessToken, refreshToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.TokenResponse), args.Error(1)
}

var _ portssvc.TokenSvcFacade = (*MockTokenService)(nil)

// --- Test Suite ---
type HandlerTestSuite struct {
	suite.Suite
	router    *gin.Engine
	cfg       *config.Config
	ledger    *MockLedgerService
	records   *MockRecordService
	users     *MockUserService
	tokens    *MockTokenService
	jwtSecret string
}

func TestHandlers(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}

func (suite *HandlerTestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
	v, ok := binding.Validator.Engine().(*validator.Validate)
	suite.Require().True(ok)
	suite.Require().NoError(dto.RegisterValidators(v, time.Now))
}

func (suite *HandlerTestSuite) SetupTest() {
	suite.jwtSecret = "test-secret-key-that-is-long-enough"
	suite.cfg = &config.Config{
		JWTSecret:      suite.jwtSecret,
		IsProduction:   true,
		LoginRateLimit: "2-M",
	}
	suite.ledger = new(MockLedgerService)
	suite.records = new(MockRecordService)
	suite.users = new(MockUserService)
	suite.tokens = new(MockTokenService)

	suite.router = gin.New()
	handlers.RegisterRoutes(suite.router, suite.cfg, &portssvc.ServiceContainer{
		Ledger: suite.ledger,
		Record: suite.records,
		User:   suite.users,
		Token:  suite.tokens,
	}, nil)
}

// token signs an access token for userID with roles.
func (suite *HandlerTestSuite) token(userID int64, roles ...domain.Role) string {
	names := make([]string, len(roles))
	for i, r := range roles {
		names[i] = string(r)
	}
	token, err := utils.GenerateJWT(userID, "12345678901", names, suite.jwtSecret, time.Hour, "test")
	suite.Require().NoError(err)
	return token
}

func (suite *HandlerTestSuite) do(method, url, token string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, url, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *HandlerTestSuite) errorBody(w *httptest.ResponseRecorder) dto.ErrorDetails {
	var body dto.ErrorDetails
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal(w.Code, body.StatusCode)
	return body
}

// --- Accounts ---

func (suite *HandlerTestSuite) TestDeposit_Success() {
	suite.ledger.On("Deposit", mock.Anything, int64(7), int64(150)).
		Return(&domain.Account{ID: 3, UserID: 7, Balance: 400, DailyLimit: 500, OperationLimit: 250}, nil).Once()

	w := suite.do(http.MethodPost, "/api/accounts/deposit", suite.token(7, domain.RoleUser), dto.DepositRequest{Amount: 150})

	suite.Equal(http.StatusOK, w.Code)
	var body dto.AccountResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal(int64(400), body.Balance)
	suite.Equal(int64(250), body.OperationLimit)
	suite.ledger.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestDeposit_NoAccount() {
	suite.ledger.On("Deposit", mock.Anything, int64(7), int64(150)).Return(nil, apperrors.AccountNotFoundForUser(7)).Once()

	w := suite.do(http.MethodPost, "/api/accounts/deposit", suite.token(7, domain.RoleUser), dto.DepositRequest{Amount: 150})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Equal([]string{"Account with user id 7 does not exist in the database"}, suite.errorBody(w).Message)
}

func (suite *HandlerTestSuite) TestWithdraw_OperationLimit() {
	suite.ledger.On("Withdraw", mock.Anything, int64(7), int64(260)).Return(nil, apperrors.OperationLimitExceeded(3)).Once()

	w := suite.do(http.MethodPost, "/api/accounts/withdraw", suite.token(7, domain.RoleUser), dto.WithdrawRequest{Amount: 260})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Equal([]string{"Operation limit exceeded for account with id 3"}, suite.errorBody(w).Message)
}

func (suite *HandlerTestSuite) TestCreateAccount_Validation() {
	w := suite.do(http.MethodPost, "/api/accounts/create-account", suite.token(7, domain.RoleUser), dto.CreateAccountRequest{Balance: 50})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Equal([]string{"Balance must be at least 100"}, suite.errorBody(w).Message)
	suite.ledger.AssertNotCalled(suite.T(), "CreateAccount", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestDeposit_AmountTooLarge() {
	w := suite.do(http.MethodPost, "/api/accounts/deposit", suite.token(7, domain.RoleUser), dto.DepositRequest{Amount: math.MaxInt64})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Equal([]string{"Amount must be at most 1000000000000"}, suite.errorBody(w).Message)
	suite.ledger.AssertNotCalled(suite.T(), "Deposit", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestTransfer_Success() {
	suite.ledger.On("Transfer", mock.Anything, int64(7), int64(4), int64(100)).
		Return(&domain.Account{ID: 3, Balance: 350}, &domain.Account{ID: 4, Balance: 200}, nil).Once()

	w := suite.do(http.MethodPost, "/api/accounts/transfer", suite.token(7, domain.RoleUser),
		dto.TransferRequest{ReceiverAccountID: 4, Amount: 100})

	suite.Equal(http.StatusOK, w.Code)
	var body dto.TransferResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal(int64(350), body.Sender.Balance)
	suite.Equal(int64(200), body.Receiver.Balance)
}

func (suite *HandlerTestSuite) TestSetupBill_RejectsOldDate() {
	w := suite.do(http.MethodPost, "/api/accounts/bills", suite.token(7, domain.RoleUser),
		dto.CreateBillRequest{Amount: 20, LastPayTime: time.Now().AddDate(0, -3, 0)})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Equal([]string{"LastPayTime must be later than two months ago"}, suite.errorBody(w).Message)
}

func (suite *HandlerTestSuite) TestTransactionHistory() {
	suite.records.On("GetTransactionHistory", mock.Anything, int64(7)).
		Return([]domain.Record{{ID: 1, OperationType: domain.OperationDeposit, Amount: 10, IsSuccessfull: true}}, nil).Once()

	w := suite.do(http.MethodGet, "/api/accounts/transaction-history", suite.token(7, domain.RoleUser), nil)

	suite.Equal(http.StatusOK, w.Code)
	var body []dto.RecordResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Require().Len(body, 1)
	suite.Equal(int64(10), body[0].Amount)
}

func (suite *HandlerTestSuite) TestUnexpectedErrorIsHidden() {
	suite.ledger.On("GetAccount", mock.Anything, int64(7)).Return(nil, assert.AnError).Once()

	w := suite.do(http.MethodGet, "/api/accounts", suite.token(7, domain.RoleUser), nil)

	suite.Equal(http.StatusInternalServerError, w.Code)
	suite.Equal([]string{"An unexpected error occurred"}, suite.errorBody(w).Message)
}

// --- Authorization ---

func (suite *HandlerTestSuite) TestAuthorization() {
	w := suite.do(http.MethodGet, "/api/accounts", "", nil)
	suite.Equal(http.StatusUnauthorized, w.Code)

	w = suite.do(http.MethodGet, "/api/accounts", suite.token(7, domain.RoleSupport), nil)
	suite.Equal(http.StatusForbidden, w.Code)

	w = suite.do(http.MethodGet, "/api/support/records", suite.token(7, domain.RoleUser), nil)
	suite.Equal(http.StatusForbidden, w.Code)

	w = suite.do(http.MethodPost, "/api/admins/updaterole/3", suite.token(7, domain.RoleSupport), dto.UpdateRolesRequest{Roles: []string{"User"}})
	suite.Equal(http.StatusForbidden, w.Code)
	suite.Equal([]string{"You are not allowed to perform this action"}, suite.errorBody(w).Message)
}

// --- Support ---

func (suite *HandlerTestSuite) TestListRecords() {
	meta := pagination.NewMetadata(23, 2, 10)
	suite.records.On("ListRecords", mock.Anything, mock.MatchedBy(func(p dto.ListRecordsParams) bool {
		return p.UserID != nil && *p.UserID == 4 && p.IsPending != nil && *p.IsPending &&
			p.OrderBy == "Amount desc" && p.PageNumber == 2 && p.EndingDate == nil
	})).Return([]domain.Record{{ID: 11}}, meta, nil).Once()

	w := suite.do(http.MethodGet, "/api/support/records?userId=4&isPending=true&orderBy=Amount%20desc&pageNumber=2",
		suite.token(9, domain.RoleSupport), nil)

	suite.Equal(http.StatusOK, w.Code)
	var header pagination.Metadata
	suite.Require().NoError(json.Unmarshal([]byte(w.Header().Get(pagination.HeaderName)), &header))
	suite.Equal(meta, header)
	suite.records.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestListRecords_BadQuery() {
	w := suite.do(http.MethodGet, "/api/support/records?pageSize=0&pageNumber=-1", suite.token(9, domain.RoleSupport), nil)
	suite.Equal(http.StatusBadRequest, w.Code)

	w = suite.do(http.MethodGet, "/api/support/records?pageNumber=9223372036854775807", suite.token(9, domain.RoleSupport), nil)
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Equal([]string{"PageNumber must be at most 1000000"}, suite.errorBody(w).Message)
	suite.records.AssertNotCalled(suite.T(), "ListRecords", mock.Anything, mock.Anything)

	suite.records.On("ListRecords", mock.Anything, mock.Anything).
		Return(nil, pagination.Metadata{}, apperrors.ErrValidation).Once()
	w = suite.do(http.MethodGet, "/api/support/records?orderBy=Nope", suite.token(9, domain.RoleSupport), nil)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestExecutePendingRecord() {
	suite.ledger.On("ExecutePendingRecord", mock.Anything, int64(12)).Return(&domain.Account{ID: 3, Balance: 1240}, nil).Once()
	suite.ledger.On("ExecutePendingRecord", mock.Anything, int64(13)).Return(nil, apperrors.ErrNotFound).Once()

	w := suite.do(http.MethodGet, "/api/support/pending-withdrawal/12", suite.token(9, domain.RoleSupport), nil)
	suite.Equal(http.StatusOK, w.Code)

	w = suite.do(http.MethodGet, "/api/support/pending-withdrawal/13", suite.token(9, domain.RoleSupport), nil)
	suite.Equal(http.StatusBadRequest, w.Code)

	w = suite.do(http.MethodGet, "/api/support/pending-withdrawal/abc", suite.token(9, domain.RoleSupport), nil)
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Equal([]string{"Record id must be a positive integer"}, suite.errorBody(w).Message)
}

// --- Users and tokens ---

func (suite *HandlerTestSuite) TestRegister() {
	req := dto.RegisterUserRequest{
		UserName: "12345678901", FirstName: "Ada", LastName: "Byron", Email: "ada@example.com",
		PhoneNumber: "+3612345678", Password: "correcthorse42", Roles: []string{"User"},
	}
	suite.users.On("RegisterUser", mock.Anything, req).Return(&domain.User{ID: 5, UserName: req.UserName, Roles: []domain.Role{domain.RoleUser}}, nil).Once()

	w := suite.do(http.MethodPost, "/api/users", "", req)
	suite.Equal(http.StatusCreated, w.Code)

	bad := req
	bad.UserName = "ada"
	bad.Password = "short"
	w = suite.do(http.MethodPost, "/api/users", "", bad)
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Len(suite.errorBody(w).Message, 2)
}

func (suite *HandlerTestSuite) TestLogin() {
	user := &domain.User{ID: 5}
	suite.users.On("AuthenticateUser", mock.Anything, "12345678901", "correcthorse42").Return(user, nil).Once()
	suite.users.On("AuthenticateUser", mock.Anything, "12345678901", "wrong").Return(nil, apperrors.ErrInvalidCredentials).Once()
	suite.tokens.On("IssueTokens", mock.Anything, user).Return(&dto.TokenResponse{AccessToken: "a", RefreshToken: "r"}, nil).Once()

	w := suite.do(http.MethodPost, "/api/users/login", "", dto.LoginRequest{UserName: "12345678901", Password: "correcthorse42"})
	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("2", w.Header().Get("X-RateLimit-Limit"))

	w = suite.do(http.MethodPost, "/api/users/login", "", dto.LoginRequest{UserName: "12345678901", Password: "wrong"})
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Equal([]string{apperrors.ErrInvalidCredentials.Error()}, suite.errorBody(w).Message)

	w = suite.do(http.MethodPost, "/api/users/login", "", dto.LoginRequest{UserName: "12345678901", Password: "correcthorse42"})
	suite.Equal(http.StatusTooManyRequests, w.Code)
}

func (suite *HandlerTestSuite) TestRefresh() {
	suite.tokens.On("RefreshTokens", mock.Anything, "old-access", "old-refresh").
		Return(nil, apperrors.ErrInvalidRefreshToken).Once()

	w := suite.do(http.MethodPost, "/api/token/refresh", "", dto.TokenRequest{AccessToken: "old-access", RefreshToken: "old-refresh"})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Equal([]string{"Invalid client request. The Token has some invalid values"}, suite.errorBody(w).Message)
}

func (suite *HandlerTestSuite) TestGetUser() {
	suite.users.On("GetUserByID", mock.Anything, int64(7)).Return(&domain.User{ID: 7}, nil)

	w := suite.do(http.MethodGet, "/api/users/7", suite.token(7, domain.RoleUser), nil)
	suite.Equal(http.StatusOK, w.Code)

	w = suite.do(http.MethodGet, "/api/users/7", suite.token(8, domain.RoleUser), nil)
	suite.Equal(http.StatusForbidden, w.Code)

	w = suite.do(http.MethodGet, "/api/admins/getuser/7", suite.token(1, domain.RoleAdministrator), nil)
	suite.Equal(http.StatusOK, w.Code)
}

func (suite *HandlerTestSuite) TestUpdateRoles() {
	suite.users.On("UpdateUserRoles", mock.Anything, int64(3), []string{"Support"}).
		Return(&domain.User{ID: 3, Roles: []domain.Role{domain.RoleSupport}}, nil).Once()
	suite.users.On("UpdateUserRoles", mock.Anything, int64(4), []string{"Auditor"}).
		Return(nil, apperrors.RoleNotFound("Auditor")).Once()

	w := suite.do(http.MethodPost, "/api/admins/updaterole/3", suite.token(1, domain.RoleAdministrator), dto.UpdateRolesRequest{Roles: []string{"Support"}})
	suite.Equal(http.StatusOK, w.Code)

	w = suite.do(http.MethodPost, "/api/admins/updaterole/4", suite.token(1, domain.RoleAdministrator), dto.UpdateRolesRequest{Roles: []string{"Auditor"}})
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Equal([]string{"Role with name: Auditor doesn't exist in the database"}, suite.errorBody(w).Message)
}

func TestMetricsEndpoint(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := metrics.New()
	m.IncJobRun("bill-payment", metrics.OutcomeSuccess)

	r := gin.New()
	handlers.RegisterRoutes(r, &config.Config{JWTSecret: "x", IsProduction: true, LoginRateLimit: "5-M"}, &portssvc.ServiceContainer{}, m)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), `job_runs_total{job="bill-payment",outcome="success"} 1`))
}
