package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/hudumabill/ledger_backend/internal/core/domain"
)

func TestWalletIsOperational(t *testing.T) {
	now := time.Now()
	expired := now.Add(-time.Hour)
	active := now.Add(time.Hour)

	tests := []struct {
		name        string
		status      domain.WalletStatus
		isLocked    bool
		lockedUntil *time.Time
		expected    bool
	}{
		{"active unlocked", domain.WalletActive, false, nil, true},
		{"pending", domain.WalletPending, false, nil, false},
		{"suspended", domain.WalletSuspended, false, nil, false},
		{"inactive", domain.WalletInactive, false, nil, false},
		{"locked indefinitely", domain.WalletActive, true, nil, false},
		{"locked with future deadline", domain.WalletActive, true, &active, false},
		{"lock expired", domain.WalletActive, true, &expired, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wallet := &domain.Wallet{
				Status:      tt.status,
				IsLocked:    tt.isLocked,
				LockedUntil: tt.lockedUntil,
			}
			assert.Equal(t, tt.expected, wallet.IsOperational(now))
		})
	}
}

func TestWalletIsCreditable(t *testing.T) {
	now := time.Now()
	expired := now.Add(-time.Hour)
	active := now.Add(time.Hour)

	tests := []struct {
		name        string
		status      domain.WalletStatus
		isLocked    bool
		lockedUntil *time.Time
		expected    bool
	}{
		{"active unlocked", domain.WalletActive, false, nil, true},
		{"pending awaiting first credit", domain.WalletPending, false, nil, true},
		{"suspended", domain.WalletSuspended, false, nil, false},
		{"inactive", domain.WalletInactive, false, nil, false},
		{"pending but locked", domain.WalletPending, true, nil, false},
		{"active locked with future deadline", domain.WalletActive, true, &active, false},
		{"pending with expired lock", domain.WalletPending, true, &expired, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wallet := &domain.Wallet{
				Status:      tt.status,
				IsLocked:    tt.isLocked,
				LockedUntil: tt.lockedUntil,
			}
			assert.Equal(t, tt.expected, wallet.IsCreditable(now))
		})
	}
}
