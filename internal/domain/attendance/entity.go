package attendance

import (
	"time"
)

// Attendance is one user's record for one calendar date. CheckOut is
// only ever set when CheckIn is, and never precedes it.
type Attendance struct {
	ID          string
	UserID      string
	Date        time.Time
	CheckIn     *time.Time
	CheckOut    *time.Time
	WorkMinutes *int
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// DTO
	UserName *string
}

// State is the lifecycle position of a (user, date) pair.
type State string

const (
	StateAbsent     State = "absent"
	StateCheckedIn  State = "checked_in"
	StateCheckedOut State = "checked_out" // terminal for the date
)

// StateOf derives the lifecycle state from a record; a nil record
// means the user has not checked in for that date.
func StateOf(att *Attendance) State {
	switch {
	case att == nil || att.CheckIn == nil:
		return StateAbsent
	case att.CheckOut == nil:
		return StateCheckedIn
	default:
		return StateCheckedOut
	}
}
