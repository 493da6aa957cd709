package task

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from Status
		to   Status
		want error
	}{
		// Allowed assignee transitions
		{StatusPending, StatusRunning, nil},
		{StatusRunning, StatusPaused, nil},
		{StatusRunning, StatusCompleted, nil},
		{StatusPaused, StatusRunning, nil},
		{StatusPaused, StatusCompleted, nil},

		// Terminal states refuse everything
		{StatusCompleted, StatusRunning, ErrTaskTerminal},
		{StatusCompleted, StatusPending, ErrTaskTerminal},
		{StatusCancelled, StatusRunning, ErrTaskTerminal},
		{StatusCancelled, StatusCompleted, ErrTaskTerminal},

		// Pairs outside the table
		{StatusPending, StatusCompleted, ErrInvalidTransition},
		{StatusPending, StatusPaused, ErrInvalidTransition},
		{StatusPending, StatusCancelled, ErrInvalidTransition},
		{StatusRunning, StatusPending, ErrInvalidTransition},
		{StatusRunning, StatusCancelled, ErrInvalidTransition},
		{StatusPaused, StatusPending, ErrInvalidTransition},
		{StatusPaused, StatusCancelled, ErrInvalidTransition},

		// Self transitions are not in the table either
		{StatusRunning, StatusRunning, ErrInvalidTransition},
		{StatusPending, StatusPending, ErrInvalidTransition},
	}

	for _, c := range cases {
		got := CanTransition(c.from, c.to)
		if c.want == nil {
			assert.NoError(t, got, "%s -> %s", c.from, c.to)
		} else {
			assert.ErrorIs(t, got, c.want, "%s -> %s", c.from, c.to)
		}
	}
}

func TestIsTerminal(t *testing.T) {
	assert.True(t, StatusCompleted.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())
	assert.False(t, StatusPending.IsTerminal())
	assert.False(t, StatusRunning.IsTerminal())
	assert.False(t, StatusPaused.IsTerminal())
}

func TestValidStatus(t *testing.T) {
	for _, s := range []string{"pending", "running", "paused", "completed", "cancelled"} {
		assert.True(t, ValidStatus(s), s)
	}
	for _, s := range []string{"", "done", "PENDING", "archived"} {
		assert.False(t, ValidStatus(s), s)
	}
}
