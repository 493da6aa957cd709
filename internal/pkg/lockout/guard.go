// Package lockout throttles repeated authentication failures per
// client. After maxAttempts consecutive failures the client is locked
// out for a fixed window; a success resets the counter. State lives in
// a durable key-value store so a lock survives process restarts, and
// an expired lock resets to open on first inspection.
package lockout

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/hasinesrak/Time-Track-Hub-TTH/internal/pkg/keyvalue"
)

const keyPrefix = "login:attempts"

// Status describes the guard's view of one client.
type Status struct {
	Locked            bool
	LockedUntil       time.Time
	Attempts          int
	RemainingAttempts int
}

type state struct {
	Attempts    int        `json:"attempts"`
	LockedUntil *time.Time `json:"locked_until,omitempty"`
}

type Guard struct {
	store       keyvalue.Store
	maxAttempts int
	lockout     time.Duration
	now         func() time.Time
}

func NewGuard(store keyvalue.Store, maxAttempts int, lockout time.Duration) *Guard {
	return &Guard{
		store:       store,
		maxAttempts: maxAttempts,
		lockout:     lockout,
		now:         time.Now,
	}
}

func storeKey(key string) string {
	return fmt.Sprintf("%s:%s", keyPrefix, key)
}

// load reads the persisted state, clearing it when a lock has expired
// so a stale lockout timestamp never outlives its window.
func (g *Guard) load(ctx context.Context, key string) (state, error) {
	raw, err := g.store.Get(ctx, storeKey(key))
	if err != nil {
		if errors.Is(err, keyvalue.ErrNotFound) {
			return state{}, nil
		}
		return state{}, fmt.Errorf("failed to load lockout state: %w", err)
	}

	var st state
	if err := json.Unmarshal([]byte(raw), &st); err != nil {
		// Unreadable state is treated as open rather than locking the
		// client out on a decode bug.
		return state{}, nil
	}

	if st.LockedUntil != nil && !g.now().Before(*st.LockedUntil) {
		if err := g.store.Delete(ctx, storeKey(key)); err != nil {
			return state{}, fmt.Errorf("failed to clear expired lockout: %w", err)
		}
		return state{}, nil
	}

	return st, nil
}

func (g *Guard) save(ctx context.Context, key string, st state) error {
	raw, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("failed to encode lockout state: %w", err)
	}
	// The TTL bounds how long a stale failure counter can linger; for a
	// locked client it coincides with the unlock time.
	if err := g.store.Set(ctx, storeKey(key), string(raw), g.lockout); err != nil {
		return fmt.Errorf("failed to save lockout state: %w", err)
	}
	return nil
}

// IsLocked reports whether the client is currently locked out.
func (g *Guard) IsLocked(ctx context.Context, key string) (bool, error) {
	st, err := g.load(ctx, key)
	if err != nil {
		return false, err
	}
	return st.LockedUntil != nil && g.now().Before(*st.LockedUntil), nil
}

// Inspect returns the full status for the client.
func (g *Guard) Inspect(ctx context.Context, key string) (Status, error) {
	st, err := g.load(ctx, key)
	if err != nil {
		return Status{}, err
	}
	return g.status(st), nil
}

// RecordFailure counts one failed attempt and returns the resulting
// status. The attempt that reaches the configured maximum locks the
// client until now + lockout duration.
func (g *Guard) RecordFailure(ctx context.Context, key string) (Status, error) {
	st, err := g.load(ctx, key)
	if err != nil {
		return Status{}, err
	}

	if st.LockedUntil != nil && g.now().Before(*st.LockedUntil) {
		return g.status(st), nil
	}

	st.Attempts++
	if st.Attempts >= g.maxAttempts {
		lockedUntil := g.now().Add(g.lockout)
		st.LockedUntil = &lockedUntil
	}

	if err := g.save(ctx, key, st); err != nil {
		return Status{}, err
	}
	return g.status(st), nil
}

// RecordSuccess resets the counter regardless of prior state.
func (g *Guard) RecordSuccess(ctx context.Context, key string) error {
	if err := g.store.Delete(ctx, storeKey(key)); err != nil {
		return fmt.Errorf("failed to reset lockout state: %w", err)
	}
	return nil
}

func (g *Guard) status(st state) Status {
	s := Status{
		Attempts:          st.Attempts,
		RemainingAttempts: g.maxAttempts - st.Attempts,
	}
	if s.RemainingAttempts < 0 {
		s.RemainingAttempts = 0
	}
	if st.LockedUntil != nil && g.now().Before(*st.LockedUntil) {
		s.Locked = true
		s.LockedUntil = *st.LockedUntil
	}
	return s
}
