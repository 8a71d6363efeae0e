package services_test

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/hudumabill/ledger_backend/internal/core/domain"
)

// MockAccountRepository is a mock type for the AccountRepositoryFacade interface
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, limit int, nextToken *string) ([]domain.Account, *string, error) {
	args := m.Called(ctx, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return args.Get(0).([]domain.Account), token, args.Error(2)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) CloseAccount(ctx context.Context, accountID string, reason string, actorID string, now time.Time) error {
	args := m.Called(ctx, accountID, reason, actorID, now)
	return args.Error(0)
}

func (m *MockAccountRepository) SoftDeleteAccount(ctx context.Context, accountID string, actorID string, now time.Time) error {
	args := m.Called(ctx, accountID, actorID, now)
	return args.Error(0)
}

func (m *MockAccountRepository) FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, tx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) UpdateAccountBalancesInTx(ctx context.Context, tx pgx.Tx, balanceChanges map[string]decimal.Decimal, actorID string, now time.Time) error {
	args := m.Called(ctx, tx, balanceChanges, actorID, now)
	return args.Error(0)
}

func (m *MockAccountRepository) ReconcileAccount(ctx context.Context, accountID string, actorID string, now time.Time) (*domain.ReconciliationResult, error) {
	args := m.Called(ctx, accountID, actorID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReconciliationResult), args.Error(1)
}

// MockJournalRepository is a mock type for the JournalRepositoryFacade interface
type MockJournalRepository struct {
	mock.Mock
}

func (m *MockJournalRepository) FindJournalByID(ctx context.Context, journalID string) (*domain.Journal, error) {
	args := m.Called(ctx, journalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Journal), args.Error(1)
}

func (m *MockJournalRepository) ListJournals(ctx context.Context, limit int, nextToken *string, status *domain.JournalStatus, journalType *domain.JournalType) ([]domain.Journal, *string, error) {
	args := m.Called(ctx, limit, nextToken, status, journalType)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return args.Get(0).([]domain.Journal), token, args.Error(2)
}

func (m *MockJournalRepository) SaveJournal(ctx context.Context, journal domain.Journal, entries []domain.LedgerEntry, balanceChanges map[string]decimal.Decimal) error {
	args := m.Called(ctx, journal, entries, balanceChanges)
	return args.Error(0)
}

func (m *MockJournalRepository) UpdateJournalStatus(ctx context.Context, journalID string, status domain.JournalStatus, approvedBy *string, approvedAt *time.Time, rejectionReason string, actorID string, now time.Time) error {
	args := m.Called(ctx, journalID, status, approvedBy, approvedAt, rejectionReason, actorID, now)
	return args.Error(0)
}

// MockLedgerRepository is a mock type for the LedgerRepositoryFacade interface
type MockLedgerRepository struct {
	mock.Mock
}

func (m *MockLedgerRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerRepository) FindEntriesByJournalID(ctx context.Context, journalID string) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx, journalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerRepository) ListEntriesByAccountID(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error) {
	args := m.Called(ctx, accountID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return args.Get(0).([]domain.LedgerEntry), token, args.Error(2)
}

func (m *MockLedgerRepository) AggregateAccountBalance(ctx context.Context, accountID string, asOf *time.Time) (*domain.AccountBalance, error) {
	args := m.Called(ctx, accountID, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountBalance), args.Error(1)
}

func (m *MockLedgerRepository) MarkEntriesReconciled(ctx context.Context, entryIDs []string, actorID string, now time.Time) (int64, error) {
	args := m.Called(ctx, entryIDs, actorID, now)
	return args.Get(0).(int64), args.Error(1)
}

// MockTransactionRepository is a mock type for the TransactionRepositoryFacade interface
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) ListTransactions(ctx context.Context, limit int, nextToken *string, status *domain.TransactionStatus) ([]domain.Transaction, *string, error) {
	args := m.Called(ctx, limit, nextToken, status)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return args.Get(0).([]domain.Transaction), token, args.Error(2)
}

func (m *MockTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

func (m *MockTransactionRepository) UpdateTransactionStatus(ctx context.Context, transactionID string, status domain.TransactionStatus, responsePayload string, completedAt *time.Time, actorID string, now time.Time) error {
	args := m.Called(ctx, transactionID, status, responsePayload, completedAt, actorID, now)
	return args.Error(0)
}

// MockWalletRepository is a mock type for the WalletRepositoryFacade interface
type MockWalletRepository struct {
	mock.Mock
}

func (m *MockWalletRepository) FindWalletByID(ctx context.Context, walletID string) (*domain.Wallet, error) {
	args := m.Called(ctx, walletID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Wallet), args.Error(1)
}

func (m *MockWalletRepository) FindWalletByUserAndCurrency(ctx context.Context, userID string, currencyCode string) (*domain.Wallet, error) {
	args := m.Called(ctx, userID, currencyCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Wallet), args.Error(1)
}

func (m *MockWalletRepository) ListWalletsByUserID(ctx context.Context, userID string) ([]domain.Wallet, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Wallet), args.Error(1)
}

func (m *MockWalletRepository) ListWalletTransactions(ctx context.Context, walletID string, limit int, nextToken *string) ([]domain.WalletTransaction, *string, error) {
	args := m.Called(ctx, walletID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return args.Get(0).([]domain.WalletTransaction), token, args.Error(2)
}

func (m *MockWalletRepository) SumCompletedDebitsBetween(ctx context.Context, walletID string, from time.Time, to time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, walletID, from, to)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockWalletRepository) SaveWallet(ctx context.Context, wallet domain.Wallet) error {
	args := m.Called(ctx, wallet)
	return args.Error(0)
}

func (m *MockWalletRepository) UpdateWalletStatus(ctx context.Context, walletID string, status domain.WalletStatus, actorID string, now time.Time) error {
	args := m.Called(ctx, walletID, status, actorID, now)
	return args.Error(0)
}

func (m *MockWalletRepository) UpdateWalletLimits(ctx context.Context, walletID string, transactionLimit, dailyLimit, monthlyLimit *decimal.Decimal, actorID string, now time.Time) error {
	args := m.Called(ctx, walletID, transactionLimit, dailyLimit, monthlyLimit, actorID, now)
	return args.Error(0)
}

func (m *MockWalletRepository) UpdateWalletLock(ctx context.Context, walletID string, locked bool, reason string, lockedUntil *time.Time, actorID string, now time.Time) error {
	args := m.Called(ctx, walletID, locked, reason, lockedUntil, actorID, now)
	return args.Error(0)
}

func (m *MockWalletRepository) CreditWallet(ctx context.Context, walletID string, txn domain.WalletTransaction) (*domain.Wallet, *domain.WalletTransaction, error) {
	args := m.Called(ctx, walletID, txn)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.Wallet), args.Get(1).(*domain.WalletTransaction), args.Error(2)
}

func (m *MockWalletRepository) DebitWallet(ctx context.Context, walletID string, txn domain.WalletTransaction, hold bool) (*domain.Wallet, *domain.WalletTransaction, error) {
	args := m.Called(ctx, walletID, txn, hold)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.Wallet), args.Get(1).(*domain.WalletTransaction), args.Error(2)
}

func (m *MockWalletRepository) ReleaseHold(ctx context.Context, walletID string, amount decimal.Decimal, actorID string, now time.Time) (*domain.Wallet, error) {
	args := m.Called(ctx, walletID, amount, actorID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Wallet), args.Error(1)
}

func (m *MockWalletRepository) CompleteHold(ctx context.Context, walletID string, amount decimal.Decimal, actorID string, now time.Time) (*domain.Wallet, error) {
	args := m.Called(ctx, walletID, amount, actorID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Wallet), args.Error(1)
}

func (m *MockWalletRepository) Transfer(ctx context.Context, senderTxn domain.WalletTransaction, recipientTxn domain.WalletTransaction) (*domain.WalletTransaction, *domain.WalletTransaction, error) {
	args := m.Called(ctx, senderTxn, recipientTxn)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.WalletTransaction), args.Get(1).(*domain.WalletTransaction), args.Error(2)
}

func (m *MockWalletRepository) ReconcileWallet(ctx context.Context, walletID string, actorID string, now time.Time) (*domain.WalletReconciliationResult, error) {
	args := m.Called(ctx, walletID, actorID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WalletReconciliationResult), args.Error(1)
}

// MockBillingRepository is a mock type for the BillingRepositoryFacade interface
type MockBillingRepository struct {
	mock.Mock
}

func (m *MockBillingRepository) FindDocumentByID(ctx context.Context, documentID string) (*domain.BillingDocument, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BillingDocument), args.Error(1)
}

func (m *MockBillingRepository) ListDocuments(ctx context.Context, limit int, nextToken *string, kind *domain.DocumentKind, status *domain.DocumentStatus, customerRef *string) ([]domain.BillingDocument, *string, error) {
	args := m.Called(ctx, limit, nextToken, kind, status, customerRef)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return args.Get(0).([]domain.BillingDocument), token, args.Error(2)
}

func (m *MockBillingRepository) SaveDocument(ctx context.Context, doc domain.BillingDocument) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}

func (m *MockBillingRepository) UpdateDocument(ctx context.Context, doc domain.BillingDocument) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}

func (m *MockBillingRepository) UpdateDocumentWithTransaction(ctx context.Context, doc domain.BillingDocument, txn domain.Transaction) error {
	args := m.Called(ctx, doc, txn)
	return args.Error(0)
}

func (m *MockBillingRepository) MarkOverdueDocuments(ctx context.Context, now time.Time, actorID string) (int64, error) {
	args := m.Called(ctx, now, actorID)
	return args.Get(0).(int64), args.Error(1)
}

// MockCurrencyRepository is a mock type for the CurrencyRepositoryFacade interface
type MockCurrencyRepository struct {
	mock.Mock
}

func (m *MockCurrencyRepository) FindCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error) {
	args := m.Called(ctx, currencyCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}

func (m *MockCurrencyRepository) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Currency), args.Error(1)
}

func (m *MockCurrencyRepository) SaveCurrency(ctx context.Context, currency domain.Currency) error {
	args := m.Called(ctx, currency)
	return args.Error(0)
}

// MockSequenceRepository is a mock type for the SequenceRepository interface
type MockSequenceRepository struct {
	mock.Mock
}

func (m *MockSequenceRepository) NextSequence(ctx context.Context, prefix string, dateKey string) (int64, error) {
	args := m.Called(ctx, prefix, dateKey)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSequenceRepository) NextSequenceInTx(ctx context.Context, tx pgx.Tx, prefix string, dateKey string) (int64, error) {
	args := m.Called(ctx, tx, prefix, dateKey)
	return args.Get(0).(int64), args.Error(1)
}
