package domain_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/hudumabill/ledger_backend/internal/apperrors"
	"github.com/hudumabill/ledger_backend/internal/core/domain"
)

func newInvoice(payable, discount, taxRate string) *domain.BillingDocument {
	doc := &domain.BillingDocument{
		Kind:     domain.KindInvoice,
		Payable:  decimal.RequireFromString(payable),
		Discount: decimal.RequireFromString(discount),
		TaxRate:  decimal.RequireFromString(taxRate),
		Paid:     decimal.Zero,
		Status:   domain.DocPending,
	}
	doc.CalculateTotalWithTax()
	doc.RecalculateBalance()
	return doc
}

func TestCalculateTotalWithTax(t *testing.T) {
	tests := []struct {
		name     string
		payable  string
		discount string
		taxRate  string
		expected string
	}{
		{"no tax no discount", "100", "0", "0", "100"},
		{"standard VAT", "100", "0", "18", "118"},
		{"discount before tax", "100", "20", "18", "94.4"},
		{"rounds to two places", "33.33", "0", "18", "39.33"},
		{"zero-rated", "250000", "0", "0", "250000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := newInvoice(tt.payable, tt.discount, tt.taxRate)
			assert.True(t, doc.TotalWithTax.Equal(decimal.RequireFromString(tt.expected)),
				"got %s, want %s", doc.TotalWithTax, tt.expected)
		})
	}
}

func TestRecalculateBalance_FlooredAtZero(t *testing.T) {
	doc := newInvoice("100", "0", "0")
	doc.Paid = decimal.NewFromInt(130)
	doc.RecalculateBalance()

	assert.True(t, doc.Balance.IsZero())
}

func TestApplyPayment_PartialThenSettled(t *testing.T) {
	now := time.Now()
	doc := newInvoice("100", "0", "18")

	err := doc.ApplyPayment(decimal.NewFromInt(50), now)
	assert.NoError(t, err)
	assert.Equal(t, domain.DocPartial, doc.Status)
	assert.True(t, doc.Balance.Equal(decimal.NewFromInt(68)))
	assert.Nil(t, doc.PaidAt)

	err = doc.ApplyPayment(decimal.NewFromInt(68), now)
	assert.NoError(t, err)
	assert.Equal(t, domain.DocSettled, doc.Status)
	assert.True(t, doc.Balance.IsZero())
	assert.NotNil(t, doc.PaidAt)
}

func TestApplyPayment_RejectsNonPositiveAmount(t *testing.T) {
	doc := newInvoice("100", "0", "0")

	err := doc.ApplyPayment(decimal.Zero, time.Now())
	assert.ErrorIs(t, err, apperrors.ErrInvalidAmount)

	err = doc.ApplyPayment(decimal.NewFromInt(-5), time.Now())
	assert.ErrorIs(t, err, apperrors.ErrInvalidAmount)
	assert.True(t, doc.Paid.IsZero())
}

func TestIsTerminal(t *testing.T) {
	doc := newInvoice("100", "0", "0")

	for _, status := range []domain.DocumentStatus{domain.DocSettled, domain.DocCancelled, domain.DocRefunded} {
		doc.Status = status
		assert.True(t, doc.IsTerminal(), "status %s", status)
	}
	for _, status := range []domain.DocumentStatus{domain.DocPending, domain.DocPartial, domain.DocOverdue, domain.DocDisputed} {
		doc.Status = status
		assert.False(t, doc.IsTerminal(), "status %s", status)
	}
}

func TestEscalateIfOverdue(t *testing.T) {
	now := time.Now()
	past := now.Add(-24 * time.Hour)
	future := now.Add(24 * time.Hour)

	doc := newInvoice("100", "0", "0")
	doc.DueAt = &past
	assert.True(t, doc.EscalateIfOverdue(now))
	assert.Equal(t, domain.DocOverdue, doc.Status)

	// Already overdue: no repeat escalation.
	assert.False(t, doc.EscalateIfOverdue(now))

	doc = newInvoice("100", "0", "0")
	doc.DueAt = &future
	assert.False(t, doc.EscalateIfOverdue(now))
	assert.Equal(t, domain.DocPending, doc.Status)

	// No due date means nothing to escalate.
	doc = newInvoice("100", "0", "0")
	assert.False(t, doc.EscalateIfOverdue(now))

	// Terminal documents are exempt.
	doc = newInvoice("100", "0", "0")
	doc.DueAt = &past
	doc.Status = domain.DocSettled
	assert.False(t, doc.EscalateIfOverdue(now))
	assert.Equal(t, domain.DocSettled, doc.Status)
}
