package dashboard

import (
	"context"
	"time"
)

// DashboardRepository aggregates counts straight from the database;
// the dashboards never page through raw rows.
type DashboardRepository interface {
	GetEmployeeSummary(ctx context.Context) (EmployeeSummary, error)
	GetTaskStats(ctx context.Context) (TaskStats, error)
	GetAttendanceToday(ctx context.Context, date time.Time) (AttendanceToday, error)
	GetAttendanceTrend(ctx context.Context, from, to time.Time) ([]AttendanceTrend, error)

	GetEmployeeTaskCounts(ctx context.Context, userID string) (active, pending, completed int64, err error)
	GetEmployeeMonthAttendance(ctx context.Context, userID string, year int, month time.Month) (daysPresent int64, workedMinutes int64, err error)
}

// DashboardService assembles the dashboard overviews
type DashboardService interface {
	GetAdminOverview(ctx context.Context) (AdminOverviewResponse, error)
	GetEmployeeOverview(ctx context.Context) (EmployeeOverviewResponse, error)
}
