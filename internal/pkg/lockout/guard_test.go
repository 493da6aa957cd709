package lockout

import (
	"context"
	"testing"
	"time"

	"github.com/hasinesrak/Time-Track-Hub-TTH/internal/pkg/keyvalue"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGuard(maxAttempts int, lockout time.Duration, now *time.Time) *Guard {
	g := NewGuard(keyvalue.NewMemoryStore(), maxAttempts, lockout)
	g.now = func() time.Time { return *now }
	return g
}

func TestGuard_StaysOpenBelowMaxAttempts(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	guard := newTestGuard(15, 15*time.Minute, &now)

	for i := 1; i <= 14; i++ {
		status, err := guard.RecordFailure(ctx, "alice@example.com")
		require.NoError(t, err)
		assert.False(t, status.Locked, "attempt %d should not lock", i)
		assert.Equal(t, i, status.Attempts)
		assert.Equal(t, 15-i, status.RemainingAttempts)
	}

	locked, err := guard.IsLocked(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.False(t, locked)
}

func TestGuard_LocksOnMaxAttempt(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	guard := newTestGuard(15, 15*time.Minute, &now)

	var status Status
	var err error
	for i := 0; i < 15; i++ {
		status, err = guard.RecordFailure(ctx, "alice@example.com")
		require.NoError(t, err)
	}

	assert.True(t, status.Locked)
	assert.Equal(t, now.Add(15*time.Minute), status.LockedUntil)
	assert.Equal(t, 0, status.RemainingAttempts)

	locked, err := guard.IsLocked(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.True(t, locked)
}

func TestGuard_UnlocksAfterWindowAndResetsCounter(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	guard := newTestGuard(3, 15*time.Minute, &now)

	for i := 0; i < 3; i++ {
		_, err := guard.RecordFailure(ctx, "bob@example.com")
		require.NoError(t, err)
	}

	locked, err := guard.IsLocked(ctx, "bob@example.com")
	require.NoError(t, err)
	assert.True(t, locked)

	// One second before expiry: still locked
	now = now.Add(15*time.Minute - time.Second)
	locked, err = guard.IsLocked(ctx, "bob@example.com")
	require.NoError(t, err)
	assert.True(t, locked)

	// At expiry: open again with a fresh counter
	now = now.Add(time.Second)
	locked, err = guard.IsLocked(ctx, "bob@example.com")
	require.NoError(t, err)
	assert.False(t, locked)

	status, err := guard.Inspect(ctx, "bob@example.com")
	require.NoError(t, err)
	assert.Equal(t, 0, status.Attempts)
}

func TestGuard_SuccessResetsCounter(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	guard := newTestGuard(3, 15*time.Minute, &now)

	_, err := guard.RecordFailure(ctx, "carol@example.com")
	require.NoError(t, err)
	_, err = guard.RecordFailure(ctx, "carol@example.com")
	require.NoError(t, err)

	require.NoError(t, guard.RecordSuccess(ctx, "carol@example.com"))

	status, err := guard.Inspect(ctx, "carol@example.com")
	require.NoError(t, err)
	assert.Equal(t, 0, status.Attempts)
	assert.Equal(t, 3, status.RemainingAttempts)
}

func TestGuard_ClientsAreIndependent(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	guard := newTestGuard(2, 15*time.Minute, &now)

	_, err := guard.RecordFailure(ctx, "dave@example.com")
	require.NoError(t, err)
	_, err = guard.RecordFailure(ctx, "dave@example.com")
	require.NoError(t, err)

	locked, err := guard.IsLocked(ctx, "dave@example.com")
	require.NoError(t, err)
	assert.True(t, locked)

	locked, err = guard.IsLocked(ctx, "erin@example.com")
	require.NoError(t, err)
	assert.False(t, locked)
}

func TestGuard_LockSurvivesGuardRestart(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	store := keyvalue.NewMemoryStore()

	first := NewGuard(store, 2, 15*time.Minute)
	first.now = func() time.Time { return now }
	_, err := first.RecordFailure(ctx, "frank@example.com")
	require.NoError(t, err)
	_, err = first.RecordFailure(ctx, "frank@example.com")
	require.NoError(t, err)

	// A new guard over the same store sees the lock
	second := NewGuard(store, 2, 15*time.Minute)
	second.now = func() time.Time { return now.Add(time.Minute) }
	locked, err := second.IsLocked(ctx, "frank@example.com")
	require.NoError(t, err)
	assert.True(t, locked)
}
