package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/hasinesrak/Time-Track-Hub-TTH/internal/domain/dashboard"
	"github.com/hasinesrak/Time-Track-Hub-TTH/internal/pkg/database"
)

type dashboardRepositoryImpl struct {
	db *database.DB
}

func NewDashboardRepository(db *database.DB) dashboard.DashboardRepository {
	return &dashboardRepositoryImpl{db: db}
}

// GetEmployeeSummary implements dashboard.DashboardRepository.
func (d *dashboardRepositoryImpl) GetEmployeeSummary(ctx context.Context) (dashboard.EmployeeSummary, error) {
	q := GetQuerier(ctx, d.db)

	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status = 'active'),
			COUNT(*) FILTER (WHERE status = 'inactive'),
			COUNT(*) FILTER (WHERE status = 'suspended')
		FROM users
		WHERE role = 'employee'
	`

	var summary dashboard.EmployeeSummary
	err := q.QueryRow(ctx, query).Scan(
		&summary.TotalEmployees,
		&summary.ActiveEmployees,
		&summary.InactiveEmployees,
		&summary.SuspendedEmployees,
	)
	if err != nil {
		return dashboard.EmployeeSummary{}, fmt.Errorf("failed to get employee summary: %w", err)
	}
	return summary, nil
}

// GetTaskStats implements dashboard.DashboardRepository.
func (d *dashboardRepositoryImpl) GetTaskStats(ctx context.Context) (dashboard.TaskStats, error) {
	q := GetQuerier(ctx, d.db)

	query := `
		SELECT
			COUNT(*) FILTER (WHERE status = 'pending'),
			COUNT(*) FILTER (WHERE status = 'running'),
			COUNT(*) FILTER (WHERE status = 'paused'),
			COUNT(*) FILTER (WHERE status = 'completed'),
			COUNT(*) FILTER (WHERE status = 'cancelled'),
			COUNT(*)
		FROM tasks
	`

	var stats dashboard.TaskStats
	err := q.QueryRow(ctx, query).Scan(
		&stats.Pending,
		&stats.Running,
		&stats.Paused,
		&stats.Completed,
		&stats.Cancelled,
		&stats.Total,
	)
	if err != nil {
		return dashboard.TaskStats{}, fmt.Errorf("failed to get task stats: %w", err)
	}
	return stats, nil
}

// GetAttendanceToday implements dashboard.DashboardRepository. Absent
// counts active employees with no attendance row for the date.
func (d *dashboardRepositoryImpl) GetAttendanceToday(ctx context.Context, date time.Time) (dashboard.AttendanceToday, error) {
	q := GetQuerier(ctx, d.db)

	query := `
		SELECT
			COUNT(*) FILTER (WHERE a.check_in IS NOT NULL AND a.check_out IS NULL),
			COUNT(*) FILTER (WHERE a.check_out IS NOT NULL),
			(SELECT COUNT(*) FROM users u
			 WHERE u.role = 'employee' AND u.status = 'active'
			   AND NOT EXISTS (SELECT 1 FROM attendance x WHERE x.user_id = u.id AND x.date = $1))
		FROM attendance a
		WHERE a.date = $1
	`

	today := dashboard.AttendanceToday{Date: date.Format("2006-01-02")}
	err := q.QueryRow(ctx, query, date).Scan(
		&today.CheckedIn,
		&today.CheckedOut,
		&today.Absent,
	)
	if err != nil {
		return dashboard.AttendanceToday{}, fmt.Errorf("failed to get attendance today: %w", err)
	}
	return today, nil
}

// GetAttendanceTrend implements dashboard.DashboardRepository. Days
// with no attendance at all still appear with a zero count.
func (d *dashboardRepositoryImpl) GetAttendanceTrend(ctx context.Context, from, to time.Time) ([]dashboard.AttendanceTrend, error) {
	q := GetQuerier(ctx, d.db)

	query := `
		SELECT gs.day::date, COUNT(a.id)
		FROM generate_series($1::date, $2::date, '1 day') AS gs(day)
		LEFT JOIN attendance a ON a.date = gs.day AND a.check_in IS NOT NULL
		GROUP BY gs.day
		ORDER BY gs.day
	`

	rows, err := q.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to get attendance trend: %w", err)
	}
	defer rows.Close()

	trend := []dashboard.AttendanceTrend{}
	for rows.Next() {
		var day time.Time
		var present int64
		if err := rows.Scan(&day, &present); err != nil {
			return nil, fmt.Errorf("failed to scan attendance trend: %w", err)
		}
		trend = append(trend, dashboard.AttendanceTrend{
			Date:    day.Format("2006-01-02"),
			Present: present,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return trend, nil
}

// GetEmployeeTaskCounts implements dashboard.DashboardRepository.
func (d *dashboardRepositoryImpl) GetEmployeeTaskCounts(ctx context.Context, userID string) (active, pending, completed int64, err error) {
	q := GetQuerier(ctx, d.db)

	query := `
		SELECT
			COUNT(*) FILTER (WHERE status IN ('running', 'paused')),
			COUNT(*) FILTER (WHERE status = 'pending'),
			COUNT(*) FILTER (WHERE status = 'completed')
		FROM tasks
		WHERE assigned_to = $1
	`

	if err = q.QueryRow(ctx, query, userID).Scan(&active, &pending, &completed); err != nil {
		return 0, 0, 0, fmt.Errorf("failed to get employee task counts: %w", err)
	}
	return active, pending, completed, nil
}

// GetEmployeeMonthAttendance implements dashboard.DashboardRepository.
func (d *dashboardRepositoryImpl) GetEmployeeMonthAttendance(ctx context.Context, userID string, year int, month time.Month) (daysPresent int64, workedMinutes int64, err error) {
	q := GetQuerier(ctx, d.db)

	query := `
		SELECT
			COUNT(*) FILTER (WHERE check_in IS NOT NULL),
			COALESCE(SUM(work_minutes), 0)
		FROM attendance
		WHERE user_id = $1
		  AND EXTRACT(YEAR FROM date) = $2
		  AND EXTRACT(MONTH FROM date) = $3
	`

	if err = q.QueryRow(ctx, query, userID, year, int(month)).Scan(&daysPresent, &workedMinutes); err != nil {
		return 0, 0, fmt.Errorf("failed to get employee month attendance: %w", err)
	}
	return daysPresent, workedMinutes, nil
}
