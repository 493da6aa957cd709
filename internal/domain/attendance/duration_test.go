package attendance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func timePtr(t time.Time) *time.Time {
	return &t
}

func TestDuration(t *testing.T) {
	checkIn := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)

	cases := []struct {
		name     string
		checkIn  *time.Time
		checkOut *time.Time
		want     WorkDuration
		known    bool
	}{
		{
			name:     "full workday",
			checkIn:  timePtr(checkIn),
			checkOut: timePtr(checkIn.Add(8*time.Hour + 30*time.Minute)),
			want:     WorkDuration{Hours: 8, Minutes: 30},
			known:    true,
		},
		{
			name:     "seconds floored to whole minutes",
			checkIn:  timePtr(checkIn),
			checkOut: timePtr(checkIn.Add(1*time.Hour + 59*time.Minute + 59*time.Second)),
			want:     WorkDuration{Hours: 1, Minutes: 59},
			known:    true,
		},
		{
			name:     "zero elapsed",
			checkIn:  timePtr(checkIn),
			checkOut: timePtr(checkIn),
			want:     WorkDuration{Hours: 0, Minutes: 0},
			known:    true,
		},
		{
			name:     "spans more than a day",
			checkIn:  timePtr(checkIn),
			checkOut: timePtr(checkIn.Add(25*time.Hour + 5*time.Minute)),
			want:     WorkDuration{Hours: 25, Minutes: 5},
			known:    true,
		},
		{
			name:     "check-out before check-in clamps to zero",
			checkIn:  timePtr(checkIn),
			checkOut: timePtr(checkIn.Add(-2 * time.Hour)),
			want:     WorkDuration{Hours: 0, Minutes: 0},
			known:    true,
		},
		{
			name:     "missing check-out",
			checkIn:  timePtr(checkIn),
			checkOut: nil,
			known:    false,
		},
		{
			name:     "missing check-in",
			checkIn:  nil,
			checkOut: timePtr(checkIn),
			known:    false,
		},
		{
			name:     "both missing",
			checkIn:  nil,
			checkOut: nil,
			known:    false,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, known := Duration(c.checkIn, c.checkOut)
			assert.Equal(t, c.known, known)
			if c.known {
				assert.Equal(t, c.want, got)
			}
		})
	}
}

func TestDuration_MinutesDecomposition(t *testing.T) {
	// hours*60+minutes must equal the floored elapsed minutes, with
	// minutes staying within [0,59]
	checkIn := time.Date(2025, 6, 2, 8, 15, 0, 0, time.UTC)
	for elapsed := 0; elapsed <= 24*60; elapsed += 7 {
		checkOut := checkIn.Add(time.Duration(elapsed) * time.Minute)
		d, known := Duration(&checkIn, &checkOut)
		assert.True(t, known)
		assert.Equal(t, elapsed, d.TotalMinutes())
		assert.GreaterOrEqual(t, d.Minutes, 0)
		assert.LessOrEqual(t, d.Minutes, 59)
		assert.GreaterOrEqual(t, d.Hours, 0)
	}
}

func TestWorkDurationString(t *testing.T) {
	assert.Equal(t, "8:30", WorkDuration{Hours: 8, Minutes: 30}.String())
	assert.Equal(t, "0:05", WorkDuration{Hours: 0, Minutes: 5}.String())
	assert.Equal(t, "12:00", WorkDuration{Hours: 12, Minutes: 0}.String())
}

func TestFormatDuration(t *testing.T) {
	checkIn := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	checkOut := checkIn.Add(8*time.Hour + 30*time.Minute)

	assert.Equal(t, "8:30", FormatDuration(&checkIn, &checkOut))
	assert.Equal(t, "-", FormatDuration(&checkIn, nil))
	assert.Equal(t, "-", FormatDuration(nil, nil))
}

func TestStateOf(t *testing.T) {
	checkIn := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	checkOut := checkIn.Add(8 * time.Hour)

	assert.Equal(t, StateAbsent, StateOf(nil))
	assert.Equal(t, StateAbsent, StateOf(&Attendance{}))
	assert.Equal(t, StateCheckedIn, StateOf(&Attendance{CheckIn: &checkIn}))
	assert.Equal(t, StateCheckedOut, StateOf(&Attendance{CheckIn: &checkIn, CheckOut: &checkOut}))
}
