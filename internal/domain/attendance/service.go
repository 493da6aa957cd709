package attendance

import (
	"context"
)

// AttendanceService defines business logic for attendance operations
type AttendanceService interface {
	// CheckIn opens today's record for the authenticated user
	CheckIn(ctx context.Context) (TodayResponse, error)

	// CheckOut closes today's open record
	CheckOut(ctx context.Context) (TodayResponse, error)

	// GetToday returns the today projection for the authenticated user
	GetToday(ctx context.Context) (TodayResponse, error)

	// GetMyAttendance retrieves records for the authenticated user
	GetMyAttendance(ctx context.Context, filter MyAttendanceFilter) (ListAttendanceResponse, error)

	// ListAttendance retrieves attendance records with filters (admin)
	ListAttendance(ctx context.Context, filter AttendanceFilter) (ListAttendanceResponse, error)

	// UpdateAttendance fixes clock times on a record (admin)
	UpdateAttendance(ctx context.Context, req UpdateAttendanceRequest) (AttendanceResponse, error)
}
