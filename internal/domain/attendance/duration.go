package attendance

import (
	"fmt"
	"time"
)

// WorkDuration is an elapsed attendance span decomposed into whole
// hours and minutes, minutes in [0,59].
type WorkDuration struct {
	Hours   int
	Minutes int
}

// String renders "H:MM", matching the dashboard display format.
func (d WorkDuration) String() string {
	return fmt.Sprintf("%d:%02d", d.Hours, d.Minutes)
}

// TotalMinutes returns the span as whole minutes.
func (d WorkDuration) TotalMinutes() int {
	return d.Hours*60 + d.Minutes
}

// Duration computes the wall-clock time between check-in and
// check-out, floored to whole minutes. The second return is false when
// either timestamp is absent; callers render that as "-". A check-out
// earlier than check-in (possible only through admin edits of
// historical rows) clamps to zero rather than going negative.
func Duration(checkIn, checkOut *time.Time) (WorkDuration, bool) {
	if checkIn == nil || checkOut == nil {
		return WorkDuration{}, false
	}

	elapsed := checkOut.Sub(*checkIn)
	if elapsed < 0 {
		elapsed = 0
	}

	totalMinutes := int(elapsed / time.Minute)
	return WorkDuration{
		Hours:   totalMinutes / 60,
		Minutes: totalMinutes % 60,
	}, true
}

// FormatDuration renders a span for display, "-" when unknown.
func FormatDuration(checkIn, checkOut *time.Time) string {
	d, ok := Duration(checkIn, checkOut)
	if !ok {
		return "-"
	}
	return d.String()
}
