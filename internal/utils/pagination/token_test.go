package pagination_test

import (
	"testing"
	"time"

	"github.com/hudumabill/ledger_backend/internal/utils/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	postingDate := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	createdAt := time.Date(2025, 6, 1, 9, 15, 30, 123456789, time.UTC)

	token := pagination.EncodeToken(postingDate, createdAt)
	gotDate, gotCreated, err := pagination.DecodeToken(token)

	require.NoError(t, err)
	assert.True(t, postingDate.Equal(gotDate))
	assert.True(t, createdAt.Equal(gotCreated))
}

func TestDecodeTokenRejectsGarbage(t *testing.T) {
	_, _, err := pagination.DecodeToken("not-base64!!!")
	assert.Error(t, err)

	_, _, err = pagination.DecodeToken("bm8tc2VwYXJhdG9y") // "no-separator"
	assert.Error(t, err)
}

func TestCursorRoundTrip(t *testing.T) {
	createdAt := time.Date(2025, 6, 1, 9, 15, 30, 123456789, time.UTC)
	id := "1f1aa6f0-43a5-4f54-9a5e-1f0c9be2a771"

	cursor := pagination.EncodeCursor(createdAt, id)
	gotCreated, gotID, err := pagination.DecodeCursor(cursor)

	require.NoError(t, err)
	assert.True(t, createdAt.Equal(gotCreated))
	assert.Equal(t, id, gotID)
}

func TestDecodeCursorRejectsGarbage(t *testing.T) {
	_, _, err := pagination.DecodeCursor("not-base64!!!")
	assert.Error(t, err)

	_, _, err = pagination.DecodeCursor("bm8tc2VwYXJhdG9y") // "no-separator"
	assert.Error(t, err)

	// A cursor without a tie-breaker ID cannot page safely.
	_, _, err = pagination.DecodeCursor(pagination.EncodeCursor(time.Now(), ""))
	assert.Error(t, err)
}
