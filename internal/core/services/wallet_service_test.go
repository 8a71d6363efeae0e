package services_test

import (
	"context"
	"strings"
	"testing"

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

type WalletServiceTestSuite struct {
	suite.Suite
	mockWalletRepo   *MockWalletRepository
	mockCurrencyRepo *MockCurrencyRepository
	mockSequenceRepo *MockSequenceRepository
	service          portssvc.WalletSvcFacade
}

func (suite *WalletServiceTestSuite) SetupTest() {
	suite.mockWalletRepo = new(MockWalletRepository)
	suite.mockCurrencyRepo = new(MockCurrencyRepository)
	suite.mockSequenceRepo = new(MockSequenceRepository)
	suite.service = services.NewWalletService(suite.mockWalletRepo, suite.mockCurrencyRepo, suite.mockSequenceRepo)
}

func activeWallet(id string, available int64) *domain.Wallet {
	return &domain.Wallet{
		WalletID:         id,
		UserID:           uuid.NewString(),
		CurrencyCode:     "TZS",
		AvailableBalance: decimal.NewFromInt(available),
		Status:           domain.WalletActive,
	}
}

// --- Test Cases ---

func (suite *WalletServiceTestSuite) TestCreateWallet_Success() {
	ctx := context.Background()
	creatorID := uuid.NewString()
	req := dto.CreateWalletRequest{
		UserID:       uuid.NewString(),
		CurrencyCode: "TZS",
	}

	suite.mockCurrencyRepo.On("FindCurrencyByCode", ctx, "TZS").Return(testCurrency("TZS"), nil).Once()
	suite.mockSequenceRepo.On("NextSequence", ctx, "WLT", mock.AnythingOfType("string")).Return(int64(3), nil).Once()
	suite.mockWalletRepo.On("SaveWallet", ctx, mock.AnythingOfType("domain.Wallet")).Return(nil).Once()

	wallet, err := suite.service.CreateWallet(ctx, req, creatorID)

	assert.NoError(suite.T(), err)
	assert.True(suite.T(), strings.HasPrefix(wallet.WalletNumber, "WLT"))
	assert.Equal(suite.T(), domain.WalletPending, wallet.Status)
	assert.True(suite.T(), wallet.AvailableBalance.IsZero())
	assert.True(suite.T(), wallet.HoldBalance.IsZero())
	suite.mockWalletRepo.AssertExpectations(suite.T())
}

func (suite *WalletServiceTestSuite) TestCreateWallet_NonPositiveLimit() {
	ctx := context.Background()
	badLimit := decimal.Zero
	req := dto.CreateWalletRequest{
		UserID:       uuid.NewString(),
		CurrencyCode: "TZS",
		DailyLimit:   &badLimit,
	}

	suite.mockCurrencyRepo.On("FindCurrencyByCode", ctx, "TZS").Return(testCurrency("TZS"), nil).Once()

	wallet, err := suite.service.CreateWallet(ctx, req, uuid.NewString())

	assert.Nil(suite.T(), wallet)
	assert.ErrorIs(suite.T(), err, apperrors.ErrInvalidAmount)
	suite.mockWalletRepo.AssertNotCalled(suite.T(), "SaveWallet", mock.Anything, mock.Anything)
}

func (suite *WalletServiceTestSuite) TestCanTransact_InsufficientFunds() {
	ctx := context.Background()
	walletID := uuid.NewString()
	wallet := activeWallet(walletID, 50)

	suite.mockWalletRepo.On("FindWalletByID", ctx, walletID).Return(wallet, nil).Once()

	err := suite.service.CanTransact(ctx, walletID, decimal.NewFromInt(100))

	assert.ErrorIs(suite.T(), err, apperrors.ErrInsufficientFunds)
}

func (suite *WalletServiceTestSuite) TestCanTransact_DailyLimitExceeded() {
	ctx := context.Background()
	walletID := uuid.NewString()
	wallet := activeWallet(walletID, 10000)
	dailyLimit := decimal.NewFromInt(500)
	wallet.DailyLimit = &dailyLimit

	suite.mockWalletRepo.On("FindWalletByID", ctx, walletID).Return(wallet, nil).Once()
	suite.mockWalletRepo.On("SumCompletedDebitsBetween", ctx, walletID, mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time")).Return(decimal.NewFromInt(450), nil).Once()

	err := suite.service.CanTransact(ctx, walletID, decimal.NewFromInt(100))

	assert.ErrorIs(suite.T(), err, apperrors.ErrInsufficientFunds)
	suite.mockWalletRepo.AssertExpectations(suite.T())
}

func (suite *WalletServiceTestSuite) TestCanTransact_TransactionLimitExceeded() {
	ctx := context.Background()
	walletID := uuid.NewString()
	wallet := activeWallet(walletID, 10000)
	txnLimit := decimal.NewFromInt(200)
	wallet.TransactionLimit = &txnLimit

	suite.mockWalletRepo.On("FindWalletByID", ctx, walletID).Return(wallet, nil).Once()

	err := suite.service.CanTransact(ctx, walletID, decimal.NewFromInt(300))

	assert.ErrorIs(suite.T(), err, apperrors.ErrInsufficientFunds)
	suite.mockWalletRepo.AssertNotCalled(suite.T(), "SumCompletedDebitsBetween", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *WalletServiceTestSuite) TestDebit_NotOperational() {
	ctx := context.Background()
	walletID := uuid.NewString()
	wallet := activeWallet(walletID, 1000)
	wallet.Status = domain.WalletSuspended

	suite.mockWalletRepo.On("FindWalletByID", ctx, walletID).Return(wallet, nil).Once()

	_, _, err := suite.service.Debit(ctx, walletID, dto.WalletMutationRequest{
		Amount:      decimal.NewFromInt(100),
		Description: "Service fee",
	}, uuid.NewString())

	assert.ErrorIs(suite.T(), err, apperrors.ErrNotOperational)
	suite.mockWalletRepo.AssertNotCalled(suite.T(), "DebitWallet", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *WalletServiceTestSuite) TestCredit_Success() {
	ctx := context.Background()
	walletID := uuid.NewString()
	actorID := uuid.NewString()
	wallet := activeWallet(walletID, 100)
	updated := activeWallet(walletID, 350)
	savedTxn := &domain.WalletTransaction{
		WalletTransactionID: uuid.NewString(),
		WalletID:            walletID,
		Type:                domain.WalletCredit,
		Amount:              decimal.NewFromInt(250),
		BalanceAfter:        decimal.NewFromInt(350),
		Status:              domain.WalletTxnCompleted,
	}

	suite.mockWalletRepo.On("FindWalletByID", ctx, walletID).Return(wallet, nil).Once()
	suite.mockWalletRepo.On("CreditWallet", ctx, walletID, mock.MatchedBy(func(txn domain.WalletTransaction) bool {
		return txn.Type == domain.WalletCredit && txn.Amount.Equal(decimal.NewFromInt(250))
	})).Return(updated, savedTxn, nil).Once()

	gotWallet, gotTxn, err := suite.service.Credit(ctx, walletID, dto.WalletMutationRequest{
		Amount:      decimal.NewFromInt(250),
		Description: "Top up",
	}, actorID)

	assert.NoError(suite.T(), err)
	assert.True(suite.T(), gotWallet.AvailableBalance.Equal(decimal.NewFromInt(350)))
	assert.Equal(suite.T(), domain.WalletTxnCompleted, gotTxn.Status)
	suite.mockWalletRepo.AssertExpectations(suite.T())
}

func (suite *WalletServiceTestSuite) TestCredit_ActivatesPendingWallet() {
	ctx := context.Background()
	walletID := uuid.NewString()
	wallet := activeWallet(walletID, 0)
	wallet.Status = domain.WalletPending
	updated := activeWallet(walletID, 500)
	savedTxn := &domain.WalletTransaction{
		WalletTransactionID: uuid.NewString(),
		WalletID:            walletID,
		Type:                domain.WalletCredit,
		Amount:              decimal.NewFromInt(500),
		BalanceAfter:        decimal.NewFromInt(500),
		Status:              domain.WalletTxnCompleted,
	}

	suite.mockWalletRepo.On("FindWalletByID", ctx, walletID).Return(wallet, nil).Once()
	suite.mockWalletRepo.On("CreditWallet", ctx, walletID, mock.AnythingOfType("domain.WalletTransaction")).Return(updated, savedTxn, nil).Once()

	gotWallet, gotTxn, err := suite.service.Credit(ctx, walletID, dto.WalletMutationRequest{
		Amount:      decimal.NewFromInt(500),
		Description: "First top up",
	}, uuid.NewString())

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), domain.WalletActive, gotWallet.Status)
	assert.Equal(suite.T(), domain.WalletTxnCompleted, gotTxn.Status)
	suite.mockWalletRepo.AssertExpectations(suite.T())
}

func (suite *WalletServiceTestSuite) TestCredit_SuspendedWalletRejected() {
	ctx := context.Background()
	walletID := uuid.NewString()
	wallet := activeWallet(walletID, 0)
	wallet.Status = domain.WalletSuspended

	suite.mockWalletRepo.On("FindWalletByID", ctx, walletID).Return(wallet, nil).Once()

	_, _, err := suite.service.Credit(ctx, walletID, dto.WalletMutationRequest{
		Amount:      decimal.NewFromInt(100),
		Description: "Top up",
	}, uuid.NewString())

	assert.ErrorIs(suite.T(), err, apperrors.ErrNotOperational)
	suite.mockWalletRepo.AssertNotCalled(suite.T(), "CreditWallet", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *WalletServiceTestSuite) TestDebit_WithHold() {
	ctx := context.Background()
	walletID := uuid.NewString()
	wallet := activeWallet(walletID, 1000)
	updated := activeWallet(walletID, 800)
	updated.HoldBalance = decimal.NewFromInt(200)
	savedTxn := &domain.WalletTransaction{
		WalletTransactionID: uuid.NewString(),
		WalletID:            walletID,
		Type:                domain.WalletDebit,
		Amount:              decimal.NewFromInt(200),
		Status:              domain.WalletTxnPending,
		IsHeld:              true,
	}

	suite.mockWalletRepo.On("FindWalletByID", ctx, walletID).Return(wallet, nil).Once()
	suite.mockWalletRepo.On("DebitWallet", ctx, walletID, mock.AnythingOfType("domain.WalletTransaction"), true).Return(updated, savedTxn, nil).Once()

	gotWallet, gotTxn, err := suite.service.Debit(ctx, walletID, dto.WalletMutationRequest{
		Amount:      decimal.NewFromInt(200),
		Description: "Reserve for pending invoice",
		Hold:        true,
	}, uuid.NewString())

	assert.NoError(suite.T(), err)
	assert.True(suite.T(), gotWallet.HoldBalance.Equal(decimal.NewFromInt(200)))
	assert.True(suite.T(), gotTxn.IsHeld)
	assert.Equal(suite.T(), domain.WalletTxnPending, gotTxn.Status)
	suite.mockWalletRepo.AssertExpectations(suite.T())
}

func (suite *WalletServiceTestSuite) TestTransfer_SameWallet() {
	ctx := context.Background()
	walletID := uuid.NewString()

	resp, err := suite.service.Transfer(ctx, walletID, dto.TransferRequest{
		RecipientWalletID: walletID,
		Amount:            decimal.NewFromInt(100),
		Description:       "Loop",
	}, uuid.NewString())

	assert.Nil(suite.T(), resp)
	assert.ErrorIs(suite.T(), err, apperrors.ErrIdenticalAccounts)
	suite.mockWalletRepo.AssertNotCalled(suite.T(), "Transfer", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *WalletServiceTestSuite) TestTransfer_CurrencyMismatch() {
	ctx := context.Background()
	senderID := uuid.NewString()
	recipientID := uuid.NewString()
	sender := activeWallet(senderID, 1000)
	recipient := activeWallet(recipientID, 0)
	recipient.CurrencyCode = "KES"

	suite.mockWalletRepo.On("FindWalletByID", ctx, senderID).Return(sender, nil)
	suite.mockWalletRepo.On("FindWalletByID", ctx, recipientID).Return(recipient, nil).Once()

	resp, err := suite.service.Transfer(ctx, senderID, dto.TransferRequest{
		RecipientWalletID: recipientID,
		Amount:            decimal.NewFromInt(100),
		Description:       "Cross-currency",
	}, uuid.NewString())

	assert.Nil(suite.T(), resp)
	assert.ErrorIs(suite.T(), err, services.ErrCurrencyMismatch)
	suite.mockWalletRepo.AssertNotCalled(suite.T(), "Transfer", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *WalletServiceTestSuite) TestTransfer_Success() {
	ctx := context.Background()
	senderID := uuid.NewString()
	recipientID := uuid.NewString()
	actorID := uuid.NewString()
	sender := activeWallet(senderID, 1000)
	recipient := activeWallet(recipientID, 50)

	suite.mockWalletRepo.On("FindWalletByID", ctx, senderID).Return(sender, nil)
	suite.mockWalletRepo.On("FindWalletByID", ctx, recipientID).Return(recipient, nil).Once()
	suite.mockWalletRepo.On("Transfer", ctx,
		mock.MatchedBy(func(txn domain.WalletTransaction) bool {
			return txn.WalletID == senderID &&
				txn.Type == domain.WalletDebit &&
				txn.CounterpartyWalletID == recipientID &&
				txn.RelatedTransactionID != ""
		}),
		mock.MatchedBy(func(txn domain.WalletTransaction) bool {
			return txn.WalletID == recipientID &&
				txn.Type == domain.WalletCredit &&
				txn.CounterpartyWalletID == senderID &&
				txn.RelatedTransactionID != ""
		}),
	).Run(func(args mock.Arguments) {
		senderTxn := args.Get(1).(domain.WalletTransaction)
		recipientTxn := args.Get(2).(domain.WalletTransaction)
		// The two audit rows must reference each other.
		suite.Equal(senderTxn.RelatedTransactionID, recipientTxn.WalletTransactionID)
		suite.Equal(recipientTxn.RelatedTransactionID, senderTxn.WalletTransactionID)
	}).Return(
		&domain.WalletTransaction{WalletID: senderID, Type: domain.WalletDebit, Amount: decimal.NewFromInt(100), Status: domain.WalletTxnCompleted},
		&domain.WalletTransaction{WalletID: recipientID, Type: domain.WalletCredit, Amount: decimal.NewFromInt(100), Status: domain.WalletTxnCompleted},
		nil,
	).Once()

	resp, err := suite.service.Transfer(ctx, senderID, dto.TransferRequest{
		RecipientWalletID: recipientID,
		Amount:            decimal.NewFromInt(100),
		Description:       "Shared utility bill",
	}, actorID)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), senderID, resp.SenderTransaction.WalletID)
	assert.Equal(suite.T(), recipientID, resp.RecipientTransaction.WalletID)
	suite.mockWalletRepo.AssertExpectations(suite.T())
}

func (suite *WalletServiceTestSuite) TestTransfer_PendingRecipientAccepted() {
	ctx := context.Background()
	senderID := uuid.NewString()
	recipientID := uuid.NewString()
	sender := activeWallet(senderID, 1000)
	recipient := activeWallet(recipientID, 0)
	recipient.Status = domain.WalletPending

	suite.mockWalletRepo.On("FindWalletByID", ctx, senderID).Return(sender, nil)
	suite.mockWalletRepo.On("FindWalletByID", ctx, recipientID).Return(recipient, nil).Once()
	suite.mockWalletRepo.On("Transfer", ctx, mock.AnythingOfType("domain.WalletTransaction"), mock.AnythingOfType("domain.WalletTransaction")).Return(
		&domain.WalletTransaction{WalletID: senderID, Type: domain.WalletDebit, Amount: decimal.NewFromInt(100), Status: domain.WalletTxnCompleted},
		&domain.WalletTransaction{WalletID: recipientID, Type: domain.WalletCredit, Amount: decimal.NewFromInt(100), Status: domain.WalletTxnCompleted},
		nil,
	).Once()

	resp, err := suite.service.Transfer(ctx, senderID, dto.TransferRequest{
		RecipientWalletID: recipientID,
		Amount:            decimal.NewFromInt(100),
		Description:       "Opening transfer",
	}, uuid.NewString())

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), recipientID, resp.RecipientTransaction.WalletID)
	suite.mockWalletRepo.AssertExpectations(suite.T())
}

func (suite *WalletServiceTestSuite) TestLockWallet_AlreadyLocked() {
	ctx := context.Background()
	walletID := uuid.NewString()
	wallet := activeWallet(walletID, 0)
	wallet.IsLocked = true

	suite.mockWalletRepo.On("FindWalletByID", ctx, walletID).Return(wallet, nil).Once()

	locked, err := suite.service.LockWallet(ctx, walletID, dto.LockWalletRequest{Reason: "fraud review"}, uuid.NewString())

	assert.Nil(suite.T(), locked)
	assert.ErrorIs(suite.T(), err, apperrors.ErrConflict)
	suite.mockWalletRepo.AssertNotCalled(suite.T(), "UpdateWalletLock", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *WalletServiceTestSuite) TestReleaseHold_InvalidAmountPassesThrough() {
	ctx := context.Background()
	walletID := uuid.NewString()

	suite.mockWalletRepo.On("ReleaseHold", ctx, walletID, decimal.NewFromInt(500), mock.AnythingOfType("string"), mock.AnythingOfType("time.Time")).Return(nil, apperrors.ErrInvalidHoldAmount).Once()

	wallet, err := suite.service.ReleaseHold(ctx, walletID, decimal.NewFromInt(500), uuid.NewString())

	assert.Nil(suite.T(), wallet)
	assert.ErrorIs(suite.T(), err, apperrors.ErrInvalidHoldAmount)
	suite.mockWalletRepo.AssertExpectations(suite.T())
}

func (suite *WalletServiceTestSuite) TestReconcileWallet_ReportsDiscrepancy() {
	ctx := context.Background()
	walletID := uuid.NewString()
	actorID := uuid.NewString()
	// Stored 600 vs replayed 580: the stored balance overstated by 20.
	result := &domain.WalletReconciliationResult{
		WalletID:              walletID,
		PreviousAvailable:     decimal.NewFromInt(600),
		CalculatedAvailable:   decimal.NewFromInt(580),
		Discrepancy:           decimal.NewFromInt(20),
		TransactionsProcessed: 9,
	}

	suite.mockWalletRepo.On("ReconcileWallet", ctx, walletID, actorID, mock.AnythingOfType("time.Time")).Return(result, nil).Once()

	got, err := suite.service.ReconcileWallet(ctx, walletID, actorID)

	assert.NoError(suite.T(), err)
	assert.True(suite.T(), got.Discrepancy.Equal(decimal.NewFromInt(20)))
	suite.mockWalletRepo.AssertExpectations(suite.T())
}

// --- Run Suite ---

func TestWalletServiceTestSuite(t *testing.T) {
	suite.Run(t, new(WalletServiceTestSuite))
}
