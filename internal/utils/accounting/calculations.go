package accounting

import (
	"fmt"

	"github.com/hudumabill/ledger_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CalculateSignedAmount applies the correct sign to a ledger entry amount
// based on the account's normal-balance convention. Used by both services
// and repositories so posting and reconciliation replay agree.
//
// DEBIT to ASSET/EXPENSE -> Positive (+)
// CREDIT to ASSET/EXPENSE -> Negative (-)
// DEBIT to LIABILITY/EQUITY/INCOME -> Negative (-)
// CREDIT to LIABILITY/EQUITY/INCOME -> Positive (+)
func CalculateSignedAmount(entry domain.LedgerEntry, accountType domain.AccountType) (decimal.Decimal, error) {
	signedAmount := entry.Amount
	isDebit := entry.EntryType == domain.Debit

	switch accountType {
	case domain.Asset, domain.Expense:
		if !isDebit {
			signedAmount = signedAmount.Neg()
		}
	case domain.Liability, domain.Equity, domain.Income:
		if isDebit {
			signedAmount = signedAmount.Neg()
		}
	default:
		return decimal.Zero, fmt.Errorf("unknown account type '%s' encountered for account ID %s", accountType, entry.AccountID)
	}
	return signedAmount, nil
}

// ReplayBalance folds a sequence of ledger entries over an opening balance
// using the account's sign convention. Entries must already be ordered by
// posting date.
func ReplayBalance(opening decimal.Decimal, entries []domain.LedgerEntry, accountType domain.AccountType) (decimal.Decimal, error) {
	balance := opening
	for _, entry := range entries {
		signed, err := CalculateSignedAmount(entry, accountType)
		if err != nil {
			return decimal.Zero, err
		}
		balance = balance.Add(signed)
	}
	return balance, nil
}

// ValidateEntryPair checks the double-entry invariant for the two ledger
// rows derived from one journal: exactly one debit and one credit, equal
// positive amounts, different accounts.
func ValidateEntryPair(entries []domain.LedgerEntry) error {
	if len(entries) != 2 {
		return fmt.Errorf("journal must produce exactly two ledger entries, got %d", len(entries))
	}
	debit, credit := entries[0], entries[1]
	if debit.EntryType != domain.Debit {
		debit, credit = credit, debit
	}
	if debit.EntryType != domain.Debit || credit.EntryType != domain.Credit {
		return fmt.Errorf("journal entries must be one debit and one credit")
	}
	if debit.AccountID == credit.AccountID {
		return fmt.Errorf("debit and credit entries must reference different accounts")
	}
	if debit.Amount.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("entry amount must be positive, got %s", debit.Amount.String())
	}
	if !debit.Amount.Equal(credit.Amount) {
		return fmt.Errorf("debit amount %s does not match credit amount %s", debit.Amount.String(), credit.Amount.String())
	}
	return nil
}
