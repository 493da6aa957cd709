package attendance

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/hasinesrak/Time-Track-Hub-TTH/internal/domain/attendance"
	"github.com/hasinesrak/Time-Track-Hub-TTH/internal/pkg/validator"
)

type AttendanceServiceImpl struct {
	attendance.AttendanceRepository
	now func() time.Time
}

func NewAttendanceService(attendanceRepository attendance.AttendanceRepository) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		AttendanceRepository: attendanceRepository,
		now:                  time.Now,
	}
}

func userIDFromContext(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}
	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", fmt.Errorf("user_id claim is missing or invalid")
	}
	return userID, nil
}

// dateOf truncates a timestamp to its UTC calendar date. Attendance
// days roll over at UTC midnight everywhere.
func dateOf(t time.Time) time.Time {
	utc := t.UTC()
	return time.Date(utc.Year(), utc.Month(), utc.Day(), 0, 0, 0, 0, time.UTC)
}

func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	format := t.UTC().Format(time.RFC3339)
	return &format
}

func toResponse(att attendance.Attendance) attendance.AttendanceResponse {
	resp := attendance.AttendanceResponse{
		ID:        att.ID,
		UserID:    att.UserID,
		Date:      att.Date.Format("2006-01-02"),
		CheckIn:   timePtrToString(att.CheckIn),
		CheckOut:  timePtrToString(att.CheckOut),
		Duration:  attendance.FormatDuration(att.CheckIn, att.CheckOut),
		State:     string(attendance.StateOf(&att)),
		CreatedAt: att.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt: att.UpdatedAt.UTC().Format(time.RFC3339),
	}
	if att.UserName != nil {
		resp.UserName = *att.UserName
	}
	return resp
}

func todayResponse(date time.Time, att *attendance.Attendance) attendance.TodayResponse {
	resp := attendance.TodayResponse{
		Date:  date.Format("2006-01-02"),
		State: string(attendance.StateOf(att)),
	}
	if att != nil {
		r := toResponse(*att)
		resp.Attendance = &r
	}
	return resp
}

// CheckIn implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CheckIn(ctx context.Context) (attendance.TodayResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return attendance.TodayResponse{}, err
	}

	nowUTC := a.now().UTC()
	today := dateOf(nowUTC)

	existing, err := a.AttendanceRepository.GetByUserAndDate(ctx, userID, today)
	if err != nil {
		return attendance.TodayResponse{}, err
	}
	if existing != nil {
		return attendance.TodayResponse{}, attendance.ErrAlreadyCheckedIn
	}

	created, err := a.AttendanceRepository.Create(ctx, attendance.Attendance{
		UserID:  userID,
		Date:    today,
		CheckIn: &nowUTC,
	})
	if err != nil {
		return attendance.TodayResponse{}, err
	}

	return todayResponse(today, &created), nil
}

// CheckOut implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CheckOut(ctx context.Context) (attendance.TodayResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return attendance.TodayResponse{}, err
	}

	nowUTC := a.now().UTC()
	today := dateOf(nowUTC)

	existing, err := a.AttendanceRepository.GetByUserAndDate(ctx, userID, today)
	if err != nil {
		return attendance.TodayResponse{}, err
	}

	switch attendance.StateOf(existing) {
	case attendance.StateAbsent:
		return attendance.TodayResponse{}, attendance.ErrNotCheckedIn
	case attendance.StateCheckedOut:
		return attendance.TodayResponse{}, attendance.ErrAlreadyCheckedOut
	}

	if nowUTC.Before(*existing.CheckIn) {
		return attendance.TodayResponse{}, attendance.ErrInvalidClockOrder
	}

	d, _ := attendance.Duration(existing.CheckIn, &nowUTC)
	updated, err := a.AttendanceRepository.SetCheckOut(ctx, existing.ID, nowUTC, d.TotalMinutes())
	if err != nil {
		return attendance.TodayResponse{}, err
	}

	return todayResponse(today, &updated), nil
}

// GetToday implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetToday(ctx context.Context) (attendance.TodayResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return attendance.TodayResponse{}, err
	}

	today := dateOf(a.now())

	existing, err := a.AttendanceRepository.GetByUserAndDate(ctx, userID, today)
	if err != nil {
		return attendance.TodayResponse{}, err
	}

	return todayResponse(today, existing), nil
}

// GetMyAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetMyAttendance(ctx context.Context, filter attendance.MyAttendanceFilter) (attendance.ListAttendanceResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	filter.Normalize(a.now().UTC())

	records, total, err := a.AttendanceRepository.GetMyAttendance(ctx, userID, filter)
	if err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	return listResponse(records, total, filter.Page, filter.Limit), nil
}

// ListAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ListAttendance(ctx context.Context, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListAttendanceResponse{}, err
	}
	filter.Normalize()

	records, total, err := a.AttendanceRepository.List(ctx, filter)
	if err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	return listResponse(records, total, filter.Page, filter.Limit), nil
}

// UpdateAttendance implements attendance.AttendanceService. Admin
// fix-ups overwrite clock times directly and recompute the stored
// work minutes from the new pair.
func (a *AttendanceServiceImpl) UpdateAttendance(ctx context.Context, req attendance.UpdateAttendanceRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	existing, err := a.AttendanceRepository.GetByID(ctx, req.ID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	checkIn, err := applyClockEdit(existing.CheckIn, req.CheckIn)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	checkOut, err := applyClockEdit(existing.CheckOut, req.CheckOut)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	if checkIn != nil && checkOut != nil && checkOut.Before(*checkIn) {
		return attendance.AttendanceResponse{}, attendance.ErrInvalidClockOrder
	}
	// A check-out may never be stored without its check-in
	if checkIn == nil && checkOut != nil {
		return attendance.AttendanceResponse{}, validator.ValidationErrors{{
			Field:   "check_in",
			Message: "check_in is required while check_out is set",
		}}
	}

	existing.CheckIn = checkIn
	existing.CheckOut = checkOut
	existing.WorkMinutes = nil
	if d, ok := attendance.Duration(checkIn, checkOut); ok {
		minutes := d.TotalMinutes()
		existing.WorkMinutes = &minutes
	}

	updated, err := a.AttendanceRepository.Update(ctx, existing)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	return toResponse(updated), nil
}

// applyClockEdit merges one edited clock field: nil leaves the stored
// value, an empty string clears it, a timestamp replaces it.
func applyClockEdit(current *time.Time, edit *string) (*time.Time, error) {
	if edit == nil {
		return current, nil
	}
	if *edit == "" {
		return nil, nil
	}
	parsed, err := time.Parse(time.RFC3339, *edit)
	if err != nil {
		return nil, fmt.Errorf("failed to parse clock time: %w", err)
	}
	utc := parsed.UTC()
	return &utc, nil
}

func listResponse(records []attendance.Attendance, total int64, page, limit int) attendance.ListAttendanceResponse {
	responses := make([]attendance.AttendanceResponse, 0, len(records))
	for _, att := range records {
		responses = append(responses, toResponse(att))
	}
	return attendance.ListAttendanceResponse{
		TotalCount:  total,
		Page:        page,
		Limit:       limit,
		TotalPages:  int(math.Ceil(float64(total) / float64(limit))),
		Attendances: responses,
	}
}
