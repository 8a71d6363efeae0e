package accounting_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/hudumabill/ledger_backend/internal/apperrors"
	"github.com/hudumabill/ledger_backend/internal/utils/accounting"
)

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func TestSettleHoldBalances_Capture(t *testing.T) {
	// Hold of 100 already left the available balance; capturing 40 keeps
	// available untouched, shrinks the hold and grows the debit total.
	available, hold, totalDebit, err := accounting.SettleHoldBalances(d(900), d(100), d(0), d(40), true)

	assert.NoError(t, err)
	assert.True(t, available.Equal(d(900)))
	assert.True(t, hold.Equal(d(60)))
	assert.True(t, totalDebit.Equal(d(40)))
}

func TestSettleHoldBalances_Release(t *testing.T) {
	available, hold, totalDebit, err := accounting.SettleHoldBalances(d(900), d(100), d(0), d(40), false)

	assert.NoError(t, err)
	assert.True(t, available.Equal(d(940)))
	assert.True(t, hold.Equal(d(60)))
	assert.True(t, totalDebit.Equal(d(0)))
}

func TestSettleHoldBalances_InvalidAmounts(t *testing.T) {
	tests := []struct {
		name   string
		amount decimal.Decimal
	}{
		{"zero", d(0)},
		{"negative", d(-10)},
		{"exceeds held balance", d(101)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, _, err := accounting.SettleHoldBalances(d(900), d(100), d(0), tt.amount, true)
			assert.ErrorIs(t, err, apperrors.ErrInvalidHoldAmount)
		})
	}
}

func TestSettleHoldBalances_FullSettlement(t *testing.T) {
	// Splitting a hold across a capture and a release must return the
	// wallet to a consistent position: captured slice becomes a debit,
	// released slice returns to available, nothing stays held.
	available, hold, totalDebit, err := accounting.SettleHoldBalances(d(900), d(100), d(0), d(40), true)
	assert.NoError(t, err)

	available, hold, totalDebit, err = accounting.SettleHoldBalances(available, hold, totalDebit, d(60), false)
	assert.NoError(t, err)

	assert.True(t, available.Equal(d(960)))
	assert.True(t, hold.IsZero())
	assert.True(t, totalDebit.Equal(d(40)))
}

func TestRecomputeWalletAvailable_PartialCapture(t *testing.T) {
	// Credit 1000, hold 100, capture 40 of it. The captured slice must
	// show up among completed debits so the replay agrees with the
	// stored position: 1000 − 40 − 60 = 900.
	recomputed := accounting.RecomputeWalletAvailable(d(1000), d(40), d(60))

	assert.True(t, recomputed.Equal(d(900)))
	assert.True(t, accounting.Discrepancy(d(900), recomputed).IsZero())
}

func TestRecomputeWalletAvailable_Idempotent(t *testing.T) {
	// Replaying an already-reconciled trail reports zero drift again.
	first := accounting.RecomputeWalletAvailable(d(1000), d(250), d(50))
	second := accounting.RecomputeWalletAvailable(d(1000), d(250), d(50))

	assert.True(t, first.Equal(second))
	assert.True(t, accounting.Discrepancy(first, second).IsZero())
}

func TestDiscrepancy_Sign(t *testing.T) {
	// discrepancy = stored − recomputed: a stored balance of 900 against
	// a replayed 940 means the wallet understated by 40.
	assert.True(t, accounting.Discrepancy(d(900), d(940)).Equal(d(-40)))
	assert.True(t, accounting.Discrepancy(d(940), d(900)).Equal(d(40)))
}
