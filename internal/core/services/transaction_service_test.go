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

type TransactionServiceTestSuite struct {
	suite.Suite
	mockTransactionRepo *MockTransactionRepository
	mockCurrencyRepo    *MockCurrencyRepository
	mockSequenceRepo    *MockSequenceRepository
	service             portssvc.TransactionSvcFacade
}

func (suite *TransactionServiceTestSuite) SetupTest() {
	suite.mockTransactionRepo = new(MockTransactionRepository)
	suite.mockCurrencyRepo = new(MockCurrencyRepository)
	suite.mockSequenceRepo = new(MockSequenceRepository)
	suite.service = services.NewTransactionService(suite.mockTransactionRepo, suite.mockCurrencyRepo, suite.mockSequenceRepo)
}

// --- Test Cases ---

func (suite *TransactionServiceTestSuite) TestRecordTransaction_Success() {
	ctx := context.Background()
	actorID := uuid.NewString()
	req := dto.RecordTransactionRequest{
		PartyA:            "255700111222",
		PartyB:            "HUDUMA-BILL",
		Channel:           "C2B",
		Aggregator:        "MPESA",
		Amount:            decimal.NewFromInt(15000),
		CurrencyCode:      "TZS",
		ExternalReference: "MP998877",
	}

	suite.mockCurrencyRepo.On("FindCurrencyByCode", ctx, "TZS").Return(testCurrency("TZS"), nil).Once()
	suite.mockSequenceRepo.On("NextSequence", ctx, "TXN", mock.AnythingOfType("string")).Return(int64(21), nil).Once()
	suite.mockTransactionRepo.On("SaveTransaction", ctx, mock.AnythingOfType("domain.Transaction")).Return(nil).Once()

	txn, err := suite.service.RecordTransaction(ctx, req, actorID)

	assert.NoError(suite.T(), err)
	assert.True(suite.T(), strings.HasPrefix(txn.TransactionCode, "TXN"))
	assert.Equal(suite.T(), domain.TxnPending, txn.Status)
	assert.Equal(suite.T(), domain.AggregatorMpesa, txn.Aggregator)
	assert.Nil(suite.T(), txn.CompletedAt)
	suite.mockTransactionRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestRecordTransaction_NonPositiveAmount() {
	ctx := context.Background()
	req := dto.RecordTransactionRequest{
		PartyA:       "255700111222",
		PartyB:       "HUDUMA-BILL",
		Channel:      "C2B",
		Aggregator:   "MPESA",
		Amount:       decimal.Zero,
		CurrencyCode: "TZS",
	}

	txn, err := suite.service.RecordTransaction(ctx, req, uuid.NewString())

	assert.Nil(suite.T(), txn)
	assert.ErrorIs(suite.T(), err, apperrors.ErrInvalidAmount)
	suite.mockTransactionRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestTransitionTransaction_Forward() {
	ctx := context.Background()
	transactionID := uuid.NewString()
	actorID := uuid.NewString()
	txn := &domain.Transaction{TransactionID: transactionID, Status: domain.TxnPending}

	suite.mockTransactionRepo.On("FindTransactionByID", ctx, transactionID).Return(txn, nil).Once()
	suite.mockTransactionRepo.On("UpdateTransactionStatus", ctx, transactionID, domain.TxnProcessing, "", (*time.Time)(nil), actorID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	updated, err := suite.service.TransitionTransaction(ctx, transactionID, dto.TransitionTransactionRequest{
		Status: int(domain.TxnProcessing),
	}, actorID)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), domain.TxnProcessing, updated.Status)
	assert.Nil(suite.T(), updated.CompletedAt)
	suite.mockTransactionRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestTransitionTransaction_TerminalStampsCompletedAt() {
	ctx := context.Background()
	transactionID := uuid.NewString()
	actorID := uuid.NewString()
	txn := &domain.Transaction{TransactionID: transactionID, Status: domain.TxnAccepted}

	suite.mockTransactionRepo.On("FindTransactionByID", ctx, transactionID).Return(txn, nil).Once()
	suite.mockTransactionRepo.On("UpdateTransactionStatus", ctx, transactionID, domain.TxnRefunded, "refund issued", mock.AnythingOfType("*time.Time"), actorID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	updated, err := suite.service.TransitionTransaction(ctx, transactionID, dto.TransitionTransactionRequest{
		Status:          int(domain.TxnRefunded),
		ResponsePayload: "refund issued",
	}, actorID)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), domain.TxnRefunded, updated.Status)
	assert.NotNil(suite.T(), updated.CompletedAt)
	assert.Equal(suite.T(), "refund issued", updated.ResponsePayload)
	suite.mockTransactionRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestTransitionTransaction_UnknownStatus() {
	ctx := context.Background()
	transactionID := uuid.NewString()
	txn := &domain.Transaction{TransactionID: transactionID, Status: domain.TxnPending}

	suite.mockTransactionRepo.On("FindTransactionByID", ctx, transactionID).Return(txn, nil).Once()

	updated, err := suite.service.TransitionTransaction(ctx, transactionID, dto.TransitionTransactionRequest{
		Status: 150,
	}, uuid.NewString())

	assert.Nil(suite.T(), updated)
	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)
	suite.mockTransactionRepo.AssertNotCalled(suite.T(), "UpdateTransactionStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestTransitionTransaction_BackwardRejected() {
	ctx := context.Background()
	transactionID := uuid.NewString()
	txn := &domain.Transaction{TransactionID: transactionID, Status: domain.TxnAccepted}

	suite.mockTransactionRepo.On("FindTransactionByID", ctx, transactionID).Return(txn, nil).Once()

	updated, err := suite.service.TransitionTransaction(ctx, transactionID, dto.TransitionTransactionRequest{
		Status: int(domain.TxnProcessing),
	}, uuid.NewString())

	assert.Nil(suite.T(), updated)
	assert.ErrorIs(suite.T(), err, apperrors.ErrConflict)
}

func (suite *TransactionServiceTestSuite) TestListTransactions_StatusFilter() {
	ctx := context.Background()
	status := int(domain.TxnAccepted)
	domainStatus := domain.TxnAccepted
	txns := []domain.Transaction{
		{TransactionID: uuid.NewString(), Status: domain.TxnAccepted, Amount: decimal.NewFromInt(100)},
	}

	suite.mockTransactionRepo.On("ListTransactions", ctx, 20, (*string)(nil), &domainStatus).Return(txns, nil, nil).Once()

	resp, err := suite.service.ListTransactions(ctx, dto.ListTransactionsParams{Limit: 20, Status: &status})

	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), resp.Transactions, 1)
	assert.Equal(suite.T(), "accepted", resp.Transactions[0].StatusLabel)
	suite.mockTransactionRepo.AssertExpectations(suite.T())
}

// --- Run Suite ---

func TestTransactionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TransactionServiceTestSuite))
}
