package refnum_test

import (
	"testing"
	"time"

	"github.com/hudumabill/ledger_backend/internal/utils/refnum"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormat(t *testing.T) {
	date := time.Date(2025, 7, 14, 10, 30, 0, 0, time.UTC)

	assert.Equal(t, "JRN20250714000001", refnum.Format(refnum.PrefixJournal, date, 1))
	assert.Equal(t, "ACC20250714000042", refnum.Format(refnum.PrefixAccount, date, 42))
	assert.Equal(t, "LED20250714123456", refnum.Format(refnum.PrefixLedger, date, 123456))
}

func TestFormatSequentialSameDay(t *testing.T) {
	date := time.Date(2025, 7, 14, 0, 0, 0, 0, time.UTC)

	first := refnum.Format(refnum.PrefixJournal, date, 1)
	second := refnum.Format(refnum.PrefixJournal, date, 2)

	assert.Equal(t, "JRN20250714000001", first)
	assert.Equal(t, "JRN20250714000002", second)
}

func TestParseRoundTrip(t *testing.T) {
	date := time.Date(2025, 1, 3, 0, 0, 0, 0, time.UTC)
	ref := refnum.Format(refnum.PrefixInvoice, date, 7)

	prefix, parsedDate, seq, err := refnum.Parse(ref)
	require.NoError(t, err)
	assert.Equal(t, refnum.PrefixInvoice, prefix)
	assert.True(t, date.Equal(parsedDate))
	assert.Equal(t, int64(7), seq)
}

func TestParseRejectsMalformed(t *testing.T) {
	_, _, _, err := refnum.Parse("JRN")
	assert.Error(t, err)

	_, _, _, err = refnum.Parse("JRN2025XX14000001")
	assert.Error(t, err)
}

func TestStripSuffix(t *testing.T) {
	assert.Equal(t, "LED20250714000001", refnum.StripSuffix("LED20250714000001-D"))
	assert.Equal(t, "LED20250714000001", refnum.StripSuffix("LED20250714000001-C"))
	assert.Equal(t, "LED20250714000001", refnum.StripSuffix("LED20250714000001"))
}
