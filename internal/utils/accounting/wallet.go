package accounting

import (
	"github.com/shopspring/decimal"

	"github.com/hudumabill/ledger_backend/internal/apperrors"
)

// RecomputeWalletAvailable derives the available balance a wallet should
// hold given its completed audit trail: completed credits minus completed
// debits, minus whatever is still on hold (held funds left the available
// balance but have not completed yet).
func RecomputeWalletAvailable(completedCredits, completedDebits, holdBalance decimal.Decimal) decimal.Decimal {
	return completedCredits.Sub(completedDebits).Sub(holdBalance)
}

// SettleHoldBalances computes the sub-balance movements of capturing or
// releasing part of the held balance. Capture turns the held slice into a
// permanent debit; release returns it to the available balance. The
// available balance was already reduced when the hold was placed, so a
// capture leaves it untouched.
func SettleHoldBalances(available, holdBalance, totalDebit, amount decimal.Decimal, capture bool) (newAvailable, newHold, newTotalDebit decimal.Decimal, err error) {
	if amount.LessThanOrEqual(decimal.Zero) || amount.GreaterThan(holdBalance) {
		return decimal.Zero, decimal.Zero, decimal.Zero, apperrors.ErrInvalidHoldAmount
	}
	newHold = holdBalance.Sub(amount)
	if capture {
		return available, newHold, totalDebit.Add(amount), nil
	}
	return available.Add(amount), newHold, totalDebit, nil
}

// Discrepancy reports how far a stored balance has drifted from the
// recomputed one: storedBalance − recomputedBalance. Positive means the
// stored balance overstated the replayed position.
func Discrepancy(stored, recomputed decimal.Decimal) decimal.Decimal {
	return stored.Sub(recomputed)
}
