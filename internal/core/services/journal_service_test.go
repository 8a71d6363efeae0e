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

type JournalServiceTestSuite struct {
	suite.Suite
	mockJournalRepo  *MockJournalRepository
	mockLedgerRepo   *MockLedgerRepository
	mockAccountRepo  *MockAccountRepository
	mockCurrencyRepo *MockCurrencyRepository
	mockSequenceRepo *MockSequenceRepository
	service          portssvc.JournalSvcFacade
}

func (suite *JournalServiceTestSuite) SetupTest() {
	suite.mockJournalRepo = new(MockJournalRepository)
	suite.mockLedgerRepo = new(MockLedgerRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockCurrencyRepo = new(MockCurrencyRepository)
	suite.mockSequenceRepo = new(MockSequenceRepository)
	suite.service = services.NewJournalService(suite.mockJournalRepo, suite.mockLedgerRepo, suite.mockAccountRepo, suite.mockCurrencyRepo, suite.mockSequenceRepo)
}

func postableAccount(id string, accountType domain.AccountType, currencyCode string) domain.Account {
	return domain.Account{
		AccountID:    id,
		AccountType:  accountType,
		CurrencyCode: currencyCode,
		Status:       domain.AccountActive,
	}
}

func validJournalRequest(debited, credited string) dto.CreateJournalRequest {
	return dto.CreateJournalRequest{
		AccountDebited:  debited,
		AccountCredited: credited,
		Amount:          decimal.NewFromInt(100),
		CurrencyCode:    "TZS",
		JournalType:     "OPERATIONAL",
		Description:     "Permit fee collection",
		PostingDate:     time.Now(),
	}
}

// --- Test Cases ---

func (suite *JournalServiceTestSuite) TestCreateJournal_Success() {
	ctx := context.Background()
	creatorID := uuid.NewString()
	cashAccountID := uuid.NewString()
	revenueAccountID := uuid.NewString()
	req := validJournalRequest(cashAccountID, revenueAccountID)

	accounts := map[string]domain.Account{
		cashAccountID:    postableAccount(cashAccountID, domain.Asset, "TZS"),
		revenueAccountID: postableAccount(revenueAccountID, domain.Income, "TZS"),
	}

	suite.mockCurrencyRepo.On("FindCurrencyByCode", ctx, "TZS").Return(testCurrency("TZS"), nil).Once()
	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, []string{cashAccountID, revenueAccountID}).Return(accounts, nil).Once()
	suite.mockSequenceRepo.On("NextSequence", ctx, "JRN", mock.AnythingOfType("string")).Return(int64(7), nil).Once()
	suite.mockJournalRepo.On("SaveJournal", ctx,
		mock.AnythingOfType("domain.Journal"),
		mock.MatchedBy(func(entries []domain.LedgerEntry) bool {
			if len(entries) != 2 {
				return false
			}
			debit, credit := entries[0], entries[1]
			return debit.EntryType == domain.Debit &&
				credit.EntryType == domain.Credit &&
				debit.AccountID == cashAccountID &&
				credit.AccountID == revenueAccountID &&
				debit.Amount.Equal(credit.Amount) &&
				strings.HasPrefix(debit.ReferenceNumber, "LED") &&
				strings.HasSuffix(debit.ReferenceNumber, "-D") &&
				strings.HasSuffix(credit.ReferenceNumber, "-C")
		}),
		mock.MatchedBy(func(changes map[string]decimal.Decimal) bool {
			// Debit grows the asset, credit grows the income account.
			return changes[cashAccountID].Equal(decimal.NewFromInt(100)) &&
				changes[revenueAccountID].Equal(decimal.NewFromInt(100))
		}),
	).Return(nil).Once()

	journal, err := suite.service.CreateJournal(ctx, req, creatorID)

	assert.NoError(suite.T(), err)
	assert.NotNil(suite.T(), journal)
	assert.True(suite.T(), strings.HasPrefix(journal.ReferenceNumber, "JRN"))
	assert.Equal(suite.T(), domain.JournalPending, journal.Status)
	assert.True(suite.T(), journal.ExchangeRate.Equal(decimal.NewFromInt(1)))
	assert.Len(suite.T(), journal.Entries, 2)
	suite.mockJournalRepo.AssertExpectations(suite.T())
	suite.mockSequenceRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestCreateJournal_IdenticalAccounts() {
	ctx := context.Background()
	accountID := uuid.NewString()
	req := validJournalRequest(accountID, accountID)

	journal, err := suite.service.CreateJournal(ctx, req, uuid.NewString())

	assert.Nil(suite.T(), journal)
	assert.ErrorIs(suite.T(), err, apperrors.ErrIdenticalAccounts)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveJournal", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestCreateJournal_NonPositiveAmount() {
	ctx := context.Background()
	req := validJournalRequest(uuid.NewString(), uuid.NewString())
	req.Amount = decimal.Zero

	journal, err := suite.service.CreateJournal(ctx, req, uuid.NewString())

	assert.Nil(suite.T(), journal)
	assert.ErrorIs(suite.T(), err, apperrors.ErrInvalidAmount)
}

func (suite *JournalServiceTestSuite) TestCreateJournal_AccountNotPostable() {
	ctx := context.Background()
	cashAccountID := uuid.NewString()
	revenueAccountID := uuid.NewString()
	req := validJournalRequest(cashAccountID, revenueAccountID)

	suspended := postableAccount(cashAccountID, domain.Asset, "TZS")
	suspended.Status = domain.AccountSuspended
	accounts := map[string]domain.Account{
		cashAccountID:    suspended,
		revenueAccountID: postableAccount(revenueAccountID, domain.Income, "TZS"),
	}

	suite.mockCurrencyRepo.On("FindCurrencyByCode", ctx, "TZS").Return(testCurrency("TZS"), nil).Once()
	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, mock.Anything).Return(accounts, nil).Once()

	journal, err := suite.service.CreateJournal(ctx, req, uuid.NewString())

	assert.Nil(suite.T(), journal)
	assert.ErrorIs(suite.T(), err, services.ErrAccountNotPostable)
}

func (suite *JournalServiceTestSuite) TestCreateJournal_CurrencyMismatch() {
	ctx := context.Background()
	cashAccountID := uuid.NewString()
	revenueAccountID := uuid.NewString()
	req := validJournalRequest(cashAccountID, revenueAccountID)

	accounts := map[string]domain.Account{
		cashAccountID:    postableAccount(cashAccountID, domain.Asset, "KES"),
		revenueAccountID: postableAccount(revenueAccountID, domain.Income, "TZS"),
	}

	suite.mockCurrencyRepo.On("FindCurrencyByCode", ctx, "TZS").Return(testCurrency("TZS"), nil).Once()
	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, mock.Anything).Return(accounts, nil).Once()

	journal, err := suite.service.CreateJournal(ctx, req, uuid.NewString())

	assert.Nil(suite.T(), journal)
	assert.ErrorIs(suite.T(), err, services.ErrCurrencyMismatch)
}

func (suite *JournalServiceTestSuite) TestApproveJournal_Success() {
	ctx := context.Background()
	journalID := uuid.NewString()
	approverID := uuid.NewString()
	journal := &domain.Journal{JournalID: journalID, Status: domain.JournalPending}

	suite.mockJournalRepo.On("FindJournalByID", ctx, journalID).Return(journal, nil).Once()
	suite.mockJournalRepo.On("UpdateJournalStatus", ctx, journalID, domain.JournalApproved, &approverID, mock.AnythingOfType("*time.Time"), "", approverID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	approved, err := suite.service.ApproveJournal(ctx, journalID, approverID)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), domain.JournalApproved, approved.Status)
	assert.NotNil(suite.T(), approved.ApprovedAt)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestApproveJournal_AlreadyPosted() {
	ctx := context.Background()
	journalID := uuid.NewString()
	journal := &domain.Journal{JournalID: journalID, Status: domain.JournalPosted}

	suite.mockJournalRepo.On("FindJournalByID", ctx, journalID).Return(journal, nil).Once()

	approved, err := suite.service.ApproveJournal(ctx, journalID, uuid.NewString())

	assert.Nil(suite.T(), approved)
	assert.ErrorIs(suite.T(), err, apperrors.ErrConflict)
}

func (suite *JournalServiceTestSuite) TestRejectJournal_RequiresReason() {
	ctx := context.Background()

	rejected, err := suite.service.RejectJournal(ctx, uuid.NewString(), "", uuid.NewString())

	assert.Nil(suite.T(), rejected)
	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "FindJournalByID", mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestRejectJournal_Success() {
	ctx := context.Background()
	journalID := uuid.NewString()
	actorID := uuid.NewString()
	journal := &domain.Journal{JournalID: journalID, Status: domain.JournalPending}

	suite.mockJournalRepo.On("FindJournalByID", ctx, journalID).Return(journal, nil).Once()
	suite.mockJournalRepo.On("UpdateJournalStatus", ctx, journalID, domain.JournalRejected, (*string)(nil), (*time.Time)(nil), "duplicate entry", actorID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	rejected, err := suite.service.RejectJournal(ctx, journalID, "duplicate entry", actorID)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), domain.JournalRejected, rejected.Status)
	assert.Equal(suite.T(), "duplicate entry", rejected.RejectionReason)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestPostJournal_PendingCannotPost() {
	ctx := context.Background()
	journalID := uuid.NewString()
	journal := &domain.Journal{JournalID: journalID, Status: domain.JournalPending}

	suite.mockJournalRepo.On("FindJournalByID", ctx, journalID).Return(journal, nil).Once()

	posted, err := suite.service.PostJournal(ctx, journalID, uuid.NewString())

	assert.Nil(suite.T(), posted)
	assert.ErrorIs(suite.T(), err, apperrors.ErrConflict)
}

func (suite *JournalServiceTestSuite) TestGetJournalByID_LoadsEntries() {
	ctx := context.Background()
	journalID := uuid.NewString()
	journal := &domain.Journal{JournalID: journalID, Status: domain.JournalPending}
	entries := []domain.LedgerEntry{
		{EntryID: uuid.NewString(), JournalID: journalID, EntryType: domain.Debit},
		{EntryID: uuid.NewString(), JournalID: journalID, EntryType: domain.Credit},
	}

	suite.mockJournalRepo.On("FindJournalByID", ctx, journalID).Return(journal, nil).Once()
	suite.mockLedgerRepo.On("FindEntriesByJournalID", ctx, journalID).Return(entries, nil).Once()

	got, err := suite.service.GetJournalByID(ctx, journalID)

	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), got.Entries, 2)
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

// --- Run Suite ---

func TestJournalServiceTestSuite(t *testing.T) {
	suite.Run(t, new(JournalServiceTestSuite))
}
