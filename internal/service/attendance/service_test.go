package attendance

import (
	"context"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/hasinesrak/Time-Track-Hub-TTH/internal/domain/attendance"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testUserID   = "0190b000-0000-7000-8000-000000000001"
	testRecordID = "0190b000-0000-7000-8000-00000000000a"
)

type fakeAttendanceRepo struct {
	records map[string]attendance.Attendance
}

func newFakeAttendanceRepo() *fakeAttendanceRepo {
	return &fakeAttendanceRepo{records: make(map[string]attendance.Attendance)}
}

func (f *fakeAttendanceRepo) Create(ctx context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	att.ID = testRecordID
	f.records[att.ID] = att
	return att, nil
}

func (f *fakeAttendanceRepo) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	att, ok := f.records[id]
	if !ok {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}
	return att, nil
}

func (f *fakeAttendanceRepo) GetByUserAndDate(ctx context.Context, userID string, date time.Time) (*attendance.Attendance, error) {
	for _, att := range f.records {
		if att.UserID == userID && att.Date.Equal(date) {
			found := att
			return &found, nil
		}
	}
	return nil, nil
}

func (f *fakeAttendanceRepo) SetCheckOut(ctx context.Context, id string, checkOut time.Time, workMinutes int) (attendance.Attendance, error) {
	att, ok := f.records[id]
	if !ok {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}
	att.CheckOut = &checkOut
	att.WorkMinutes = &workMinutes
	f.records[id] = att
	return att, nil
}

func (f *fakeAttendanceRepo) Update(ctx context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	if _, ok := f.records[att.ID]; !ok {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}
	f.records[att.ID] = att
	return att, nil
}

func (f *fakeAttendanceRepo) List(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.Attendance, int64, error) {
	out := []attendance.Attendance{}
	for _, att := range f.records {
		out = append(out, att)
	}
	return out, int64(len(out)), nil
}

func (f *fakeAttendanceRepo) GetMyAttendance(ctx context.Context, userID string, filter attendance.MyAttendanceFilter) ([]attendance.Attendance, int64, error) {
	out := []attendance.Attendance{}
	for _, att := range f.records {
		if att.UserID == userID {
			out = append(out, att)
		}
	}
	return out, int64(len(out)), nil
}

func authedContext(t *testing.T, userID string) context.Context {
	t.Helper()
	ja := jwtauth.New("HS256", []byte("test-secret-key-for-jwt"), nil)
	token, _, err := ja.Encode(map[string]interface{}{
		"user_id": userID,
		"role":    "employee",
		"type":    "access",
	})
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

func newTestService(repo *fakeAttendanceRepo, now time.Time) *AttendanceServiceImpl {
	return &AttendanceServiceImpl{
		AttendanceRepository: repo,
		now:                  func() time.Time { return now },
	}
}

func TestCheckIn_OpensTodayRecord(t *testing.T) {
	repo := newFakeAttendanceRepo()
	now := time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC)
	svc := newTestService(repo, now)
	ctx := authedContext(t, testUserID)

	resp, err := svc.CheckIn(ctx)
	require.NoError(t, err)
	assert.Equal(t, "2026-03-10", resp.Date)
	assert.Equal(t, "checked_in", resp.State)
	require.NotNil(t, resp.Attendance)
	require.NotNil(t, resp.Attendance.CheckIn)
	assert.Equal(t, "2026-03-10T09:30:00Z", *resp.Attendance.CheckIn)
	assert.Nil(t, resp.Attendance.CheckOut)
	assert.Equal(t, "-", resp.Attendance.Duration)
}

func TestCheckIn_TwiceSameDayRejected(t *testing.T) {
	repo := newFakeAttendanceRepo()
	now := time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC)
	svc := newTestService(repo, now)
	ctx := authedContext(t, testUserID)

	_, err := svc.CheckIn(ctx)
	require.NoError(t, err)

	_, err = svc.CheckIn(ctx)
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedIn)
}

func TestCheckOut_ClosesRecordWithDuration(t *testing.T) {
	repo := newFakeAttendanceRepo()
	checkIn := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	svc := newTestService(repo, checkIn)
	ctx := authedContext(t, testUserID)

	_, err := svc.CheckIn(ctx)
	require.NoError(t, err)

	// Clock forward to the afternoon
	svc.now = func() time.Time { return time.Date(2026, 3, 10, 17, 45, 0, 0, time.UTC) }

	resp, err := svc.CheckOut(ctx)
	require.NoError(t, err)
	assert.Equal(t, "checked_out", resp.State)
	require.NotNil(t, resp.Attendance)
	assert.Equal(t, "8:45", resp.Attendance.Duration)
}

func TestCheckOut_WithoutCheckIn(t *testing.T) {
	repo := newFakeAttendanceRepo()
	now := time.Date(2026, 3, 10, 17, 0, 0, 0, time.UTC)
	svc := newTestService(repo, now)
	ctx := authedContext(t, testUserID)

	_, err := svc.CheckOut(ctx)
	assert.ErrorIs(t, err, attendance.ErrNotCheckedIn)
}

func TestCheckOut_TwiceRejected(t *testing.T) {
	repo := newFakeAttendanceRepo()
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	svc := newTestService(repo, now)
	ctx := authedContext(t, testUserID)

	_, err := svc.CheckIn(ctx)
	require.NoError(t, err)

	svc.now = func() time.Time { return time.Date(2026, 3, 10, 17, 0, 0, 0, time.UTC) }
	_, err = svc.CheckOut(ctx)
	require.NoError(t, err)

	_, err = svc.CheckOut(ctx)
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedOut)
}

func TestCheckIn_NextDayAllowedAgain(t *testing.T) {
	repo := newFakeAttendanceRepo()
	svc := newTestService(repo, time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC))
	ctx := authedContext(t, testUserID)

	_, err := svc.CheckIn(ctx)
	require.NoError(t, err)

	// The day rolls over at UTC midnight
	svc.now = func() time.Time { return time.Date(2026, 3, 11, 0, 5, 0, 0, time.UTC) }

	resp, err := svc.GetToday(ctx)
	require.NoError(t, err)
	assert.Equal(t, "absent", resp.State)
	assert.Nil(t, resp.Attendance)
}

func TestGetToday_ReflectsState(t *testing.T) {
	repo := newFakeAttendanceRepo()
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	svc := newTestService(repo, now)
	ctx := authedContext(t, testUserID)

	resp, err := svc.GetToday(ctx)
	require.NoError(t, err)
	assert.Equal(t, "absent", resp.State)

	_, err = svc.CheckIn(ctx)
	require.NoError(t, err)

	resp, err = svc.GetToday(ctx)
	require.NoError(t, err)
	assert.Equal(t, "checked_in", resp.State)
}

func TestUpdateAttendance_RecomputesWorkMinutes(t *testing.T) {
	repo := newFakeAttendanceRepo()
	checkIn := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	checkOut := time.Date(2026, 3, 10, 17, 0, 0, 0, time.UTC)
	minutes := 480
	repo.records[testRecordID] = attendance.Attendance{
		ID:          testRecordID,
		UserID:      testUserID,
		Date:        time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		CheckIn:     &checkIn,
		CheckOut:    &checkOut,
		WorkMinutes: &minutes,
	}
	svc := newTestService(repo, checkOut)

	edited := "2026-03-10T18:30:00Z"
	resp, err := svc.UpdateAttendance(context.Background(), attendance.UpdateAttendanceRequest{
		ID:       testRecordID,
		CheckOut: &edited,
	})
	require.NoError(t, err)
	assert.Equal(t, "9:30", resp.Duration)

	stored := repo.records[testRecordID]
	require.NotNil(t, stored.WorkMinutes)
	assert.Equal(t, 570, *stored.WorkMinutes)
}

func TestUpdateAttendance_RejectsReversedClocks(t *testing.T) {
	repo := newFakeAttendanceRepo()
	checkIn := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	repo.records[testRecordID] = attendance.Attendance{
		ID:      testRecordID,
		UserID:  testUserID,
		Date:    time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		CheckIn: &checkIn,
	}
	svc := newTestService(repo, checkIn)

	edited := "2026-03-10T08:00:00Z"
	_, err := svc.UpdateAttendance(context.Background(), attendance.UpdateAttendanceRequest{
		ID:       testRecordID,
		CheckOut: &edited,
	})
	assert.ErrorIs(t, err, attendance.ErrInvalidClockOrder)
}

func TestUpdateAttendance_CannotClearCheckInAlone(t *testing.T) {
	repo := newFakeAttendanceRepo()
	checkIn := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	checkOut := time.Date(2026, 3, 10, 17, 0, 0, 0, time.UTC)
	minutes := 480
	repo.records[testRecordID] = attendance.Attendance{
		ID:          testRecordID,
		UserID:      testUserID,
		Date:        time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		CheckIn:     &checkIn,
		CheckOut:    &checkOut,
		WorkMinutes: &minutes,
	}
	svc := newTestService(repo, checkOut)

	cleared := ""
	_, err := svc.UpdateAttendance(context.Background(), attendance.UpdateAttendanceRequest{
		ID:      testRecordID,
		CheckIn: &cleared,
	})
	assert.Error(t, err)

	// A check-out must never be stored without its check-in
	stored := repo.records[testRecordID]
	require.NotNil(t, stored.CheckIn)
	require.NotNil(t, stored.CheckOut)
	assert.Equal(t, attendance.StateCheckedOut, attendance.StateOf(&stored))
}

func TestUpdateAttendance_ClearingCheckOutDropsMinutes(t *testing.T) {
	repo := newFakeAttendanceRepo()
	checkIn := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	checkOut := time.Date(2026, 3, 10, 17, 0, 0, 0, time.UTC)
	minutes := 480
	repo.records[testRecordID] = attendance.Attendance{
		ID:          testRecordID,
		UserID:      testUserID,
		Date:        time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		CheckIn:     &checkIn,
		CheckOut:    &checkOut,
		WorkMinutes: &minutes,
	}
	svc := newTestService(repo, checkOut)

	cleared := ""
	resp, err := svc.UpdateAttendance(context.Background(), attendance.UpdateAttendanceRequest{
		ID:       testRecordID,
		CheckOut: &cleared,
	})
	require.NoError(t, err)
	assert.Equal(t, "checked_in", resp.State)
	assert.Equal(t, "-", resp.Duration)
	assert.Nil(t, repo.records[testRecordID].WorkMinutes)
}
