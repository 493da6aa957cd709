package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access methods for attendance records.
type AttendanceRepository interface {
	// Create creates a new attendance record; the table's unique
	// (user_id, date) constraint backs the append-once-per-day rule
	Create(ctx context.Context, att Attendance) (Attendance, error)

	// GetByID retrieves attendance by ID
	GetByID(ctx context.Context, id string) (Attendance, error)

	// GetByUserAndDate retrieves the record for one user on one date.
	// Returns nil (not an error) when none exists; used to prevent
	// double check-in and to build the today projection
	GetByUserAndDate(ctx context.Context, userID string, date time.Time) (*Attendance, error)

	// SetCheckOut closes the day's record
	SetCheckOut(ctx context.Context, id string, checkOut time.Time, workMinutes int) (Attendance, error)

	// Update overwrites clock times on an existing record (admin fix-ups)
	Update(ctx context.Context, att Attendance) (Attendance, error)

	// List retrieves attendance records with filters and pagination
	List(ctx context.Context, filter AttendanceFilter) ([]Attendance, int64, error)

	// GetMyAttendance retrieves one user's records for a month
	GetMyAttendance(ctx context.Context, userID string, filter MyAttendanceFilter) ([]Attendance, int64, error)
}
