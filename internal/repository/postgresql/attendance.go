package postgresql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/hasinesrak/Time-Track-Hub-TTH/internal/domain/attendance"
	"github.com/hasinesrak/Time-Track-Hub-TTH/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

const attendanceColumns = `a.id, a.user_id, a.date, a.check_in, a.check_out, a.work_minutes,
		a.created_at, a.updated_at, u.full_name`

func scanAttendance(row pgx.Row) (attendance.Attendance, error) {
	var att attendance.Attendance
	err := row.Scan(
		&att.ID,
		&att.UserID,
		&att.Date,
		&att.CheckIn,
		&att.CheckOut,
		&att.WorkMinutes,
		&att.CreatedAt,
		&att.UpdatedAt,
		&att.UserName,
	)
	return att, err
}

// Create implements attendance.AttendanceRepository.
func (a *attendanceRepository) Create(ctx context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		WITH inserted AS (
			INSERT INTO attendance (user_id, date, check_in)
			VALUES ($1, $2, $3)
			RETURNING id, user_id, date, check_in, check_out, work_minutes, created_at, updated_at
		)
		SELECT a.id, a.user_id, a.date, a.check_in, a.check_out, a.work_minutes,
			   a.created_at, a.updated_at, u.full_name
		FROM inserted a
		JOIN users u ON u.id = a.user_id
	`

	created, err := scanAttendance(q.QueryRow(ctx, query, att.UserID, att.Date, att.CheckIn))
	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to create attendance: %w", err)
	}
	return created, nil
}

// GetByID implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance a
		JOIN users u ON u.id = a.user_id
		WHERE a.id = $1
	`

	found, err := scanAttendance(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get attendance: %w", err)
	}
	return found, nil
}

// GetByUserAndDate implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByUserAndDate(ctx context.Context, userID string, date time.Time) (*attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance a
		JOIN users u ON u.id = a.user_id
		WHERE a.user_id = $1 AND a.date = $2
	`

	found, err := scanAttendance(q.QueryRow(ctx, query, userID, date))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get attendance by user and date: %w", err)
	}
	return &found, nil
}

// SetCheckOut implements attendance.AttendanceRepository.
func (a *attendanceRepository) SetCheckOut(ctx context.Context, id string, checkOut time.Time, workMinutes int) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		WITH updated AS (
			UPDATE attendance
			SET check_out = $1, work_minutes = $2, updated_at = NOW()
			WHERE id = $3
			RETURNING id, user_id, date, check_in, check_out, work_minutes, created_at, updated_at
		)
		SELECT a.id, a.user_id, a.date, a.check_in, a.check_out, a.work_minutes,
			   a.created_at, a.updated_at, u.full_name
		FROM updated a
		JOIN users u ON u.id = a.user_id
	`

	updated, err := scanAttendance(q.QueryRow(ctx, query, checkOut, workMinutes, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to set check out: %w", err)
	}
	return updated, nil
}

// Update implements attendance.AttendanceRepository.
func (a *attendanceRepository) Update(ctx context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		WITH updated AS (
			UPDATE attendance
			SET check_in = $1, check_out = $2, work_minutes = $3, updated_at = NOW()
			WHERE id = $4
			RETURNING id, user_id, date, check_in, check_out, work_minutes, created_at, updated_at
		)
		SELECT a.id, a.user_id, a.date, a.check_in, a.check_out, a.work_minutes,
			   a.created_at, a.updated_at, u.full_name
		FROM updated a
		JOIN users u ON u.id = a.user_id
	`

	updated, err := scanAttendance(q.QueryRow(ctx, query, att.CheckIn, att.CheckOut, att.WorkMinutes, att.ID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to update attendance: %w", err)
	}
	return updated, nil
}

// List implements attendance.AttendanceRepository.
func (a *attendanceRepository) List(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.Attendance, int64, error) {
	q := GetQuerier(ctx, a.db)

	conditions := []string{"1=1"}
	args := []interface{}{}
	argPos := 1

	if filter.UserID != "" {
		conditions = append(conditions, fmt.Sprintf("a.user_id = $%d", argPos))
		args = append(args, filter.UserID)
		argPos++
	}
	if filter.DateFrom != "" {
		conditions = append(conditions, fmt.Sprintf("a.date >= $%d", argPos))
		args = append(args, filter.DateFrom)
		argPos++
	}
	if filter.DateTo != "" {
		conditions = append(conditions, fmt.Sprintf("a.date <= $%d", argPos))
		args = append(args, filter.DateTo)
		argPos++
	}

	where := strings.Join(conditions, " AND ")

	var total int64
	countQuery := `SELECT COUNT(*) FROM attendance a WHERE ` + where
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendance: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT `+attendanceColumns+`
		FROM attendance a
		JOIN users u ON u.id = a.user_id
		WHERE %s
		ORDER BY a.date DESC, u.full_name ASC
		LIMIT $%d OFFSET $%d
	`, where, argPos, argPos+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list attendance: %w", err)
	}
	defer rows.Close()

	records := []attendance.Attendance{}
	for rows.Next() {
		att, err := scanAttendance(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan attendance: %w", err)
		}
		records = append(records, att)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return records, total, nil
}

// GetMyAttendance implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetMyAttendance(ctx context.Context, userID string, filter attendance.MyAttendanceFilter) ([]attendance.Attendance, int64, error) {
	q := GetQuerier(ctx, a.db)

	var total int64
	countQuery := `
		SELECT COUNT(*)
		FROM attendance a
		WHERE a.user_id = $1
		  AND EXTRACT(YEAR FROM a.date) = $2
		  AND EXTRACT(MONTH FROM a.date) = $3
	`
	if err := q.QueryRow(ctx, countQuery, userID, filter.Year, filter.Month).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendance: %w", err)
	}

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance a
		JOIN users u ON u.id = a.user_id
		WHERE a.user_id = $1
		  AND EXTRACT(YEAR FROM a.date) = $2
		  AND EXTRACT(MONTH FROM a.date) = $3
		ORDER BY a.date DESC
		LIMIT $4 OFFSET $5
	`

	rows, err := q.Query(ctx, query, userID, filter.Year, filter.Month, filter.Limit, (filter.Page-1)*filter.Limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get my attendance: %w", err)
	}
	defer rows.Close()

	records := []attendance.Attendance{}
	for rows.Next() {
		att, err := scanAttendance(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan attendance: %w", err)
		}
		records = append(records, att)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return records, total, nil
}
