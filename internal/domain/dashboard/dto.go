package dashboard

// ========== ADMIN DASHBOARD ==========

// AdminOverviewResponse is the combined response for the admin
// dashboard: headline counts plus chart-ready aggregates.
type AdminOverviewResponse struct {
	EmployeeSummary EmployeeSummary   `json:"employee_summary"`
	TaskStats       TaskStats         `json:"task_stats"`
	AttendanceToday AttendanceToday   `json:"attendance_today"`
	AttendanceTrend []AttendanceTrend `json:"attendance_trend"`
}

// EmployeeSummary contains account counts by status
type EmployeeSummary struct {
	TotalEmployees     int64 `json:"total_employees"`
	ActiveEmployees    int64 `json:"active_employees"`
	InactiveEmployees  int64 `json:"inactive_employees"`
	SuspendedEmployees int64 `json:"suspended_employees"`
}

// TaskStats represents the task status distribution for the pie chart
type TaskStats struct {
	Pending   int64 `json:"pending"`
	Running   int64 `json:"running"`
	Paused    int64 `json:"paused"`
	Completed int64 `json:"completed"`
	Cancelled int64 `json:"cancelled"`
	Total     int64 `json:"total"`
}

// AttendanceToday represents today's check-in picture
type AttendanceToday struct {
	CheckedIn  int64  `json:"checked_in"`
	CheckedOut int64  `json:"checked_out"`
	Absent     int64  `json:"absent"`
	Date       string `json:"date"` // Format: "YYYY-MM-DD"
}

// AttendanceTrend is one day of the trailing trend line
type AttendanceTrend struct {
	Date    string `json:"date"` // Format: "YYYY-MM-DD"
	Present int64  `json:"present"`
}

// ========== EMPLOYEE DASHBOARD ==========

// EmployeeOverviewResponse is the employee's personal summary
type EmployeeOverviewResponse struct {
	ActiveTasks      int64   `json:"active_tasks"`
	PendingTasks     int64   `json:"pending_tasks"`
	CompletedTasks   int64   `json:"completed_tasks"`
	DaysPresent      int64   `json:"days_present"`       // this month
	TotalWorkedHours float64 `json:"total_worked_hours"` // this month
	Month            string  `json:"month"`              // Format: "YYYY-MM"
}
