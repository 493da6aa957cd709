package report

import "context"

// ReportRepository defines data access methods for reports.
type ReportRepository interface {
	// Create inserts a submitted report
	Create(ctx context.Context, r Report) (Report, error)

	// GetByID retrieves a report by ID
	GetByID(ctx context.Context, id string) (Report, error)

	// List retrieves reports with filters and pagination
	List(ctx context.Context, filter ReportFilter) ([]Report, int64, error)

	// Delete removes a report (admin only)
	Delete(ctx context.Context, id string) error
}
