package report

import "time"

// Report is an employee's submitted daily summary. Immutable once
// created; only admins may delete one.
type Report struct {
	ID         string
	UserID     string
	Summary    string
	ReportDate time.Time
	CreatedAt  time.Time

	// DTO
	UserName *string
}
