package services_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/hudumabill/ledger_backend/internal/apperrors"
	"github.com/hudumabill/ledger_backend/internal/core/domain"
	portssvc "github.com/hudumabill/ledger_backend/internal/core/ports/services"
	"github.com/hudumabill/ledger_backend/internal/core/services"
	"github.com/hudumabill/ledger_backend/internal/dto"
)

// --- Test Suite Setup ---

type AccountServiceTestSuite struct {
	suite.Suite
	mockAccountRepo  *MockAccountRepository
	mockLedgerRepo   *MockLedgerRepository
	mockCurrencyRepo *MockCurrencyRepository
	mockSequenceRepo *MockSequenceRepository
	service          portssvc.AccountSvcFacade
}

func (suite *AccountServiceTestSuite) SetupTest() {
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockLedgerRepo = new(MockLedgerRepository)
	suite.mockCurrencyRepo = new(MockCurrencyRepository)
	suite.mockSequenceRepo = new(MockSequenceRepository)
	suite.service = services.NewAccountService(suite.mockAccountRepo, suite.mockLedgerRepo, suite.mockCurrencyRepo, suite.mockSequenceRepo)
}

func testCurrency(code string) *domain.Currency {
	return &domain.Currency{
		CurrencyCode:  code,
		Symbol:        "TSh",
		Name:          "Tanzanian Shilling",
		DecimalPlaces: 2,
	}
}

// --- Test Cases ---

func (suite *AccountServiceTestSuite) TestCreateAccount_Success() {
	ctx := context.Background()
	creatorID := uuid.NewString()
	req := dto.CreateAccountRequest{
		Name:           "Revenue Collection",
		AccountType:    "INCOME",
		CurrencyCode:   "TZS",
		OpeningBalance: decimal.Zero,
	}

	suite.mockCurrencyRepo.On("FindCurrencyByCode", ctx, "TZS").Return(testCurrency("TZS"), nil).Once()
	suite.mockSequenceRepo.On("NextSequence", ctx, "ACC", mock.AnythingOfType("string")).Return(int64(1), nil).Once()
	suite.mockAccountRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).Return(nil).Once()

	account, err := suite.service.CreateAccount(ctx, req, creatorID)

	assert.NoError(suite.T(), err)
	assert.NotNil(suite.T(), account)
	assert.True(suite.T(), strings.HasPrefix(account.AccountNumber, "ACC"))
	assert.Equal(suite.T(), domain.AccountActive, account.Status)
	assert.Equal(suite.T(), domain.Income, account.AccountType)
	assert.True(suite.T(), account.CurrentBalance.Equal(account.OpeningBalance))
	assert.Equal(suite.T(), creatorID, account.CreatedBy)
	suite.mockAccountRepo.AssertExpectations(suite.T())
	suite.mockCurrencyRepo.AssertExpectations(suite.T())
	suite.mockSequenceRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestCreateAccount_NegativeOpeningBalance() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{
		Name:           "Bad Account",
		AccountType:    "ASSET",
		CurrencyCode:   "TZS",
		OpeningBalance: decimal.NewFromInt(-10),
	}

	account, err := suite.service.CreateAccount(ctx, req, uuid.NewString())

	assert.Nil(suite.T(), account)
	assert.ErrorIs(suite.T(), err, apperrors.ErrInvalidAmount)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "SaveAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_UnknownCurrency() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{
		Name:         "Orphan Account",
		AccountType:  "ASSET",
		CurrencyCode: "XXX",
	}

	suite.mockCurrencyRepo.On("FindCurrencyByCode", ctx, "XXX").Return(nil, apperrors.ErrNotFound).Once()

	account, err := suite.service.CreateAccount(ctx, req, uuid.NewString())

	assert.Nil(suite.T(), account)
	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)
	suite.mockCurrencyRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestGetAccountByID_NotFound() {
	ctx := context.Background()
	accountID := uuid.NewString()

	suite.mockAccountRepo.On("FindAccountByID", ctx, accountID).Return(nil, apperrors.ErrNotFound).Once()

	account, err := suite.service.GetAccountByID(ctx, accountID)

	assert.Nil(suite.T(), account)
	assert.ErrorIs(suite.T(), err, apperrors.ErrNotFound)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestGetAccountBalance_Success() {
	ctx := context.Background()
	accountID := uuid.NewString()
	expected := &domain.AccountBalance{
		AccountID: accountID,
		Debits:    decimal.NewFromInt(500),
		Credits:   decimal.NewFromInt(200),
		Balance:   decimal.NewFromInt(300),
	}

	suite.mockLedgerRepo.On("AggregateAccountBalance", ctx, accountID, (*time.Time)(nil)).Return(expected, nil).Once()

	balance, err := suite.service.GetAccountBalance(ctx, accountID, nil)

	assert.NoError(suite.T(), err)
	assert.True(suite.T(), balance.Balance.Equal(decimal.NewFromInt(300)))
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_ClosedIsImmutable() {
	ctx := context.Background()
	accountID := uuid.NewString()
	closed := &domain.Account{
		AccountID: accountID,
		Name:      "Old Account",
		Status:    domain.AccountClosed,
	}
	newName := "New Name"

	suite.mockAccountRepo.On("FindAccountByID", ctx, accountID).Return(closed, nil).Once()

	account, err := suite.service.UpdateAccount(ctx, accountID, dto.UpdateAccountRequest{Name: &newName}, uuid.NewString())

	assert.Nil(suite.T(), account)
	assert.ErrorIs(suite.T(), err, apperrors.ErrConflict)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "UpdateAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestCloseAccount_NonZeroBalance() {
	ctx := context.Background()
	accountID := uuid.NewString()
	account := &domain.Account{
		AccountID:      accountID,
		Status:         domain.AccountActive,
		CurrentBalance: decimal.NewFromInt(42),
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, accountID).Return(account, nil).Once()

	closed, err := suite.service.CloseAccount(ctx, accountID, "no longer needed", uuid.NewString())

	assert.Nil(suite.T(), closed)
	assert.ErrorIs(suite.T(), err, apperrors.ErrCannotCloseAccount)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "CloseAccount", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestCloseAccount_Success() {
	ctx := context.Background()
	accountID := uuid.NewString()
	actorID := uuid.NewString()
	account := &domain.Account{
		AccountID:      accountID,
		Status:         domain.AccountActive,
		CurrentBalance: decimal.Zero,
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, accountID).Return(account, nil).Once()
	suite.mockAccountRepo.On("CloseAccount", ctx, accountID, "service retired", actorID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	closed, err := suite.service.CloseAccount(ctx, accountID, "service retired", actorID)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), domain.AccountClosed, closed.Status)
	assert.NotNil(suite.T(), closed.ClosedAt)
	assert.Equal(suite.T(), "service retired", closed.ClosureReason)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestReconcileAccount_ReportsDiscrepancy() {
	ctx := context.Background()
	accountID := uuid.NewString()
	actorID := uuid.NewString()
	result := &domain.ReconciliationResult{
		AccountID:             accountID,
		PreviousBalance:       decimal.NewFromInt(100),
		CalculatedBalance:     decimal.NewFromInt(95),
		Discrepancy:           decimal.NewFromInt(-5),
		TransactionsProcessed: 12,
		ReconciledAt:          time.Now(),
	}

	suite.mockAccountRepo.On("ReconcileAccount", ctx, accountID, actorID, mock.AnythingOfType("time.Time")).Return(result, nil).Once()

	got, err := suite.service.ReconcileAccount(ctx, accountID, actorID)

	// A discrepancy is data for review, never an error.
	assert.NoError(suite.T(), err)
	assert.True(suite.T(), got.Discrepancy.Equal(decimal.NewFromInt(-5)))
	assert.Equal(suite.T(), 12, got.TransactionsProcessed)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

// --- Run Suite ---

func TestAccountServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}
