package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/hudumabill/ledger_backend/internal/apperrors"
	"github.com/hudumabill/ledger_backend/internal/core/domain"
	portssvc "github.com/hudumabill/ledger_backend/internal/core/ports/services"
	"github.com/hudumabill/ledger_backend/internal/dto"
	"github.com/hudumabill/ledger_backend/internal/handlers"
	"github.com/hudumabill/ledger_backend/internal/middleware"
	"github.com/hudumabill/ledger_backend/internal/platform/config"
)

// --- Mock AccountService ---

type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, creatorID string) (*domain.Account, error) {
	args := m.Called(ctx, req, creatorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) ListAccounts(ctx context.Context, params dto.ListAccountsParams) (*dto.ListAccountsResponse, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListAccountsResponse), args.Error(1)
}

func (m *MockAccountService) GetAccountBalance(ctx context.Context, accountID string, asOf *time.Time) (*domain.AccountBalance, error) {
	args := m.Called(ctx, accountID, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountBalance), args.Error(1)
}

func (m *MockAccountService) UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, actorID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID, req, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) CloseAccount(ctx context.Context, accountID string, reason string, actorID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID, reason, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) DeleteAccount(ctx context.Context, accountID string, actorID string) error {
	args := m.Called(ctx, accountID, actorID)
	return args.Error(0)
}

func (m *MockAccountService) ReconcileAccount(ctx context.Context, accountID string, actorID string) (*domain.ReconciliationResult, error) {
	args := m.Called(ctx, accountID, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReconciliationResult), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.AccountSvcFacade = (*MockAccountService)(nil)

// --- Test Suite ---

type AccountHandlerTestSuite struct {
	suite.Suite
	router             *gin.Engine
	mockAccountService *MockAccountService
}

func (suite *AccountHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.mockAccountService = new(MockAccountService)

	// Only the account routes are exercised here; the remaining services
	// stay nil and their routes untouched.
	container := &portssvc.ServiceContainer{Account: suite.mockAccountService}
	handlers.RegisterRoutes(suite.router, &config.Config{}, container)
}

// doRequest performs a request carrying the gateway identity header.
func (suite *AccountHandlerTestSuite) doRequest(method, url string, body any, actorID string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, _ := http.NewRequest(method, url, reader)
	req.Header.Set("Content-Type", "application/json")
	if actorID != "" {
		req.Header.Set(middleware.ActorHeader, actorID)
	}

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *AccountHandlerTestSuite) TestCreateAccount_Success() {
	actorID := uuid.NewString()
	req := dto.CreateAccountRequest{
		Name:         "Tax Receivable",
		AccountType:  "ASSET",
		CurrencyCode: "TZS",
	}
	created := &domain.Account{
		AccountID:     uuid.NewString(),
		AccountNumber: "ACC20260831000001",
		Name:          req.Name,
		AccountType:   domain.Asset,
		CurrencyCode:  "TZS",
		Status:        domain.AccountActive,
	}

	suite.mockAccountService.On("CreateAccount",
		mock.Anything,
		mock.MatchedBy(func(r dto.CreateAccountRequest) bool { return r.Name == req.Name }),
		actorID,
	).Return(created, nil).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/accounts", req, actorID)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.AccountResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(created.AccountID, resp.AccountID)
	suite.Equal("ACC20260831000001", resp.AccountNumber)
	suite.mockAccountService.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestCreateAccount_MissingActorHeader() {
	req := dto.CreateAccountRequest{
		Name:         "Tax Receivable",
		AccountType:  "ASSET",
		CurrencyCode: "TZS",
	}

	w := suite.doRequest(http.MethodPost, "/api/v1/accounts", req, "")

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockAccountService.AssertNotCalled(suite.T(), "CreateAccount", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AccountHandlerTestSuite) TestGetAccount_NotFound() {
	actorID := uuid.NewString()
	accountID := uuid.NewString()

	suite.mockAccountService.On("GetAccountByID", mock.Anything, accountID).Return(nil, apperrors.ErrNotFound).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/accounts/"+accountID, nil, actorID)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.mockAccountService.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestCloseAccount_NonZeroBalanceConflict() {
	actorID := uuid.NewString()
	accountID := uuid.NewString()

	suite.mockAccountService.On("CloseAccount", mock.Anything, accountID, "service retired", actorID).
		Return(nil, fmt.Errorf("%w: account has balance", apperrors.ErrCannotCloseAccount)).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/accounts/"+accountID+"/close", dto.CloseAccountRequest{
		Reason: "service retired",
	}, actorID)

	suite.Equal(http.StatusConflict, w.Code)
	suite.mockAccountService.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestGetAccountBalance_Success() {
	actorID := uuid.NewString()
	accountID := uuid.NewString()
	balance := &domain.AccountBalance{
		AccountID: accountID,
		Debits:    decimal.NewFromInt(700),
		Credits:   decimal.NewFromInt(300),
		Balance:   decimal.NewFromInt(400),
	}

	suite.mockAccountService.On("GetAccountBalance", mock.Anything, accountID, (*time.Time)(nil)).Return(balance, nil).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/accounts/"+accountID+"/balance", nil, actorID)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.AccountBalanceResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.True(resp.Balance.Equal(decimal.NewFromInt(400)))
	suite.mockAccountService.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestListAccounts_Success() {
	actorID := uuid.NewString()
	expected := &dto.ListAccountsResponse{
		Accounts: []dto.AccountResponse{
			{AccountID: uuid.NewString(), AccountNumber: "ACC20260831000001", Name: "Cash"},
			{AccountID: uuid.NewString(), AccountNumber: "ACC20260831000002", Name: "Revenue"},
		},
	}

	suite.mockAccountService.On("ListAccounts", mock.Anything, mock.MatchedBy(func(p dto.ListAccountsParams) bool {
		return p.Limit == 10
	})).Return(expected, nil).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/accounts?limit=10", nil, actorID)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ListAccountsResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp.Accounts, 2)
	suite.mockAccountService.AssertExpectations(suite.T())
}

// --- Run Test Suite ---

func TestAccountHandler(t *testing.T) {
	suite.Run(t, new(AccountHandlerTestSuite))
}
