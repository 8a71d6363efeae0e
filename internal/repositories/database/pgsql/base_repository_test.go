package pgsql

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hudumabill/ledger_backend/internal/apperrors"
)

func TestMutationContext_AppliesDeadline(t *testing.T) {
	r := &BaseRepository{MutationTimeout: 5 * time.Second}

	ctx, cancel := r.mutationContext(context.Background())
	defer cancel()

	deadline, ok := ctx.Deadline()
	require.True(t, ok)
	assert.WithinDuration(t, time.Now().Add(5*time.Second), deadline, time.Second)
}

func TestMutationContext_ZeroTimeoutPassesThrough(t *testing.T) {
	r := &BaseRepository{}

	ctx, cancel := r.mutationContext(context.Background())
	defer cancel()

	_, ok := ctx.Deadline()
	assert.False(t, ok)
}

func TestMutationErr_DeadlineBecomesRetryableConflict(t *testing.T) {
	err := mutationErr("failed to credit wallet", context.DeadlineExceeded)

	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestMutationErr_OtherFailuresStayInternal(t *testing.T) {
	err := mutationErr("failed to credit wallet", errors.New("connection reset"))

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 500, appErr.Code)
	assert.NotErrorIs(t, err, apperrors.ErrConflict)
}
