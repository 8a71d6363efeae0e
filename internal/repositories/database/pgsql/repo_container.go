package pgsql

import (
	"time"

	portsrepo "github.com/hudumabill/ledger_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool, txnTimeout time.Duration) portsrepo.RepositoryProvider {
	base := BaseRepository{Pool: dbPool, MutationTimeout: txnTimeout}

	accountRepo := newPgxAccountRepository(base)
	currencyRepo := newPgxCurrencyRepository(base)
	sequenceRepo := newPgxSequenceRepository(base)
	journalRepo := newPgxJournalRepository(base, accountRepo)
	ledgerRepo := newPgxLedgerRepository(base)
	transactionRepo := newPgxTransactionRepository(base)
	walletRepo := newPgxWalletRepository(base)
	billingRepo := newPgxBillingRepository(base)

	return portsrepo.RepositoryProvider{
		AccountRepo:     accountRepo,
		JournalRepo:     journalRepo,
		LedgerRepo:      ledgerRepo,
		TransactionRepo: transactionRepo,
		WalletRepo:      walletRepo,
		BillingRepo:     billingRepo,
		CurrencyRepo:    currencyRepo,
		SequenceRepo:    sequenceRepo,
	}
}
