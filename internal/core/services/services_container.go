package services

import (
	portsrepo "github.com/hudumabill/ledger_backend/internal/core/ports/repositories"
	portssvc "github.com/hudumabill/ledger_backend/internal/core/ports/services"
)

// NewServiceContainer wires every service against the repository provider.
// The billing service depends on the wallet service for wallet-settled
// payments, so wallet is constructed first.
func NewServiceContainer(repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	walletSvc := NewWalletService(repos.WalletRepo, repos.CurrencyRepo, repos.SequenceRepo)

	return &portssvc.ServiceContainer{
		Account:     NewAccountService(repos.AccountRepo, repos.LedgerRepo, repos.CurrencyRepo, repos.SequenceRepo),
		Journal:     NewJournalService(repos.JournalRepo, repos.LedgerRepo, repos.AccountRepo, repos.CurrencyRepo, repos.SequenceRepo),
		Ledger:      NewLedgerService(repos.LedgerRepo),
		Transaction: NewTransactionService(repos.TransactionRepo, repos.CurrencyRepo, repos.SequenceRepo),
		Wallet:      walletSvc,
		Billing:     NewBillingService(repos.BillingRepo, repos.CurrencyRepo, repos.SequenceRepo, walletSvc),
		Currency:    NewCurrencyService(repos.CurrencyRepo),
	}
}
