package report

import "context"

// ReportService defines business logic for report operations
type ReportService interface {
	// SubmitReport records the authenticated employee's summary
	SubmitReport(ctx context.Context, req SubmitReportRequest) (ReportResponse, error)

	// GetMyReports retrieves the authenticated user's reports
	GetMyReports(ctx context.Context, filter ReportFilter) (ListReportsResponse, error)

	// ListReports retrieves reports with filters (admin)
	ListReports(ctx context.Context, filter ReportFilter) (ListReportsResponse, error)

	// DeleteReport removes a report (admin)
	DeleteReport(ctx context.Context, id string) error

	// ExportMyReportsPDF renders the authenticated user's reports and
	// monthly attendance into a downloadable PDF
	ExportMyReportsPDF(ctx context.Context) ([]byte, error)

	// ExportAllReportsPDF renders every submitted report into a
	// downloadable PDF (admin)
	ExportAllReportsPDF(ctx context.Context, filter ReportFilter) ([]byte, error)
}
