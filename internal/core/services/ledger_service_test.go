package services_test

import (
	"context"
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

type LedgerServiceTestSuite struct {
	suite.Suite
	mockLedgerRepo *MockLedgerRepository
	service        portssvc.LedgerSvcFacade
}

func (suite *LedgerServiceTestSuite) SetupTest() {
	suite.mockLedgerRepo = new(MockLedgerRepository)
	suite.service = services.NewLedgerService(suite.mockLedgerRepo)
}

// --- Test Cases ---

func (suite *LedgerServiceTestSuite) TestGetEntryByID_NotFound() {
	ctx := context.Background()
	entryID := uuid.NewString()

	suite.mockLedgerRepo.On("FindEntryByID", ctx, entryID).Return(nil, apperrors.ErrNotFound).Once()

	entry, err := suite.service.GetEntryByID(ctx, entryID)

	assert.Nil(suite.T(), entry)
	assert.ErrorIs(suite.T(), err, apperrors.ErrNotFound)
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestListEntriesByAccount_Success() {
	ctx := context.Background()
	accountID := uuid.NewString()
	entries := []domain.LedgerEntry{
		{EntryID: uuid.NewString(), AccountID: accountID, EntryType: domain.Debit, Amount: decimal.NewFromInt(100)},
		{EntryID: uuid.NewString(), AccountID: accountID, EntryType: domain.Credit, Amount: decimal.NewFromInt(40)},
	}
	token := "next-page"

	suite.mockLedgerRepo.On("ListEntriesByAccountID", ctx, accountID, 50, (*string)(nil)).Return(entries, &token, nil).Once()

	resp, err := suite.service.ListEntriesByAccount(ctx, accountID, dto.ListLedgerEntriesParams{Limit: 50})

	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), resp.Entries, 2)
	assert.Equal(suite.T(), &token, resp.NextToken)
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestMarkEntriesReconciled_ReportsUpdatedCount() {
	ctx := context.Background()
	actorID := uuid.NewString()
	entryIDs := []string{uuid.NewString(), uuid.NewString(), uuid.NewString()}

	suite.mockLedgerRepo.On("MarkEntriesReconciled", ctx, entryIDs, actorID, mock.AnythingOfType("time.Time")).Return(int64(2), nil).Once()

	updated, err := suite.service.MarkEntriesReconciled(ctx, entryIDs, actorID)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(2), updated)
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

// --- Run Suite ---

func TestLedgerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerServiceTestSuite))
}
