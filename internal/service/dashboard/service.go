package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/hasinesrak/Time-Track-Hub-TTH/internal/domain/dashboard"
)

// trendDays is the trailing window the admin chart renders.
const trendDays = 7

type DashboardServiceImpl struct {
	dashboard.DashboardRepository
	now func() time.Time
}

func NewDashboardService(dashboardRepository dashboard.DashboardRepository) dashboard.DashboardService {
	return &DashboardServiceImpl{
		DashboardRepository: dashboardRepository,
		now:                 time.Now,
	}
}

func dateOf(t time.Time) time.Time {
	utc := t.UTC()
	return time.Date(utc.Year(), utc.Month(), utc.Day(), 0, 0, 0, 0, time.UTC)
}

// GetAdminOverview implements dashboard.DashboardService.
func (s *DashboardServiceImpl) GetAdminOverview(ctx context.Context) (dashboard.AdminOverviewResponse, error) {
	today := dateOf(s.now())

	summary, err := s.DashboardRepository.GetEmployeeSummary(ctx)
	if err != nil {
		return dashboard.AdminOverviewResponse{}, err
	}

	stats, err := s.DashboardRepository.GetTaskStats(ctx)
	if err != nil {
		return dashboard.AdminOverviewResponse{}, err
	}

	attendanceToday, err := s.DashboardRepository.GetAttendanceToday(ctx, today)
	if err != nil {
		return dashboard.AdminOverviewResponse{}, err
	}

	trend, err := s.DashboardRepository.GetAttendanceTrend(ctx, today.AddDate(0, 0, -(trendDays-1)), today)
	if err != nil {
		return dashboard.AdminOverviewResponse{}, err
	}

	return dashboard.AdminOverviewResponse{
		EmployeeSummary: summary,
		TaskStats:       stats,
		AttendanceToday: attendanceToday,
		AttendanceTrend: trend,
	}, nil
}

// GetEmployeeOverview implements dashboard.DashboardService.
func (s *DashboardServiceImpl) GetEmployeeOverview(ctx context.Context) (dashboard.EmployeeOverviewResponse, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return dashboard.EmployeeOverviewResponse{}, fmt.Errorf("failed to extract claims from context: %w", err)
	}
	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return dashboard.EmployeeOverviewResponse{}, fmt.Errorf("user_id claim is missing or invalid")
	}

	nowUTC := s.now().UTC()

	active, pending, completed, err := s.DashboardRepository.GetEmployeeTaskCounts(ctx, userID)
	if err != nil {
		return dashboard.EmployeeOverviewResponse{}, err
	}

	daysPresent, workedMinutes, err := s.DashboardRepository.GetEmployeeMonthAttendance(ctx, userID, nowUTC.Year(), nowUTC.Month())
	if err != nil {
		return dashboard.EmployeeOverviewResponse{}, err
	}

	return dashboard.EmployeeOverviewResponse{
		ActiveTasks:      active,
		PendingTasks:     pending,
		CompletedTasks:   completed,
		DaysPresent:      daysPresent,
		TotalWorkedHours: float64(workedMinutes) / 60,
		Month:            nowUTC.Format("2006-01"),
	}, nil
}
