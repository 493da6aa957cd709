package report

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/hasinesrak/Time-Track-Hub-TTH/internal/domain/report"
	"github.com/hasinesrak/Time-Track-Hub-TTH/internal/pkg/export"
)

type ReportServiceImpl struct {
	report.ReportRepository
	now func() time.Time
}

func NewReportService(reportRepository report.ReportRepository) report.ReportService {
	return &ReportServiceImpl{
		ReportRepository: reportRepository,
		now:              time.Now,
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

func toResponse(rep report.Report) report.ReportResponse {
	resp := report.ReportResponse{
		ID:         rep.ID,
		UserID:     rep.UserID,
		Summary:    rep.Summary,
		ReportDate: rep.ReportDate.Format("2006-01-02"),
		CreatedAt:  rep.CreatedAt.UTC().Format(time.RFC3339),
	}
	if rep.UserName != nil {
		resp.UserName = *rep.UserName
	}
	return resp
}

func listResponse(reports []report.Report, total int64, page, limit int) report.ListReportsResponse {
	responses := make([]report.ReportResponse, 0, len(reports))
	for _, rep := range reports {
		responses = append(responses, toResponse(rep))
	}
	return report.ListReportsResponse{
		TotalCount: total,
		Page:       page,
		Limit:      limit,
		TotalPages: int(math.Ceil(float64(total) / float64(limit))),
		Reports:    responses,
	}
}

// SubmitReport implements report.ReportService.
func (s *ReportServiceImpl) SubmitReport(ctx context.Context, req report.SubmitReportRequest) (report.ReportResponse, error) {
	if err := req.Validate(); err != nil {
		return report.ReportResponse{}, err
	}

	userID, err := userIDFromContext(ctx)
	if err != nil {
		return report.ReportResponse{}, err
	}

	reportDate, err := time.Parse("2006-01-02", req.ReportDate)
	if err != nil {
		return report.ReportResponse{}, fmt.Errorf("failed to parse report date: %w", err)
	}

	created, err := s.ReportRepository.Create(ctx, report.Report{
		UserID:     userID,
		Summary:    req.Summary,
		ReportDate: reportDate,
	})
	if err != nil {
		return report.ReportResponse{}, err
	}

	return toResponse(created), nil
}

// GetMyReports implements report.ReportService.
func (s *ReportServiceImpl) GetMyReports(ctx context.Context, filter report.ReportFilter) (report.ListReportsResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return report.ListReportsResponse{}, err
	}

	filter.UserID = userID
	if err := filter.Validate(); err != nil {
		return report.ListReportsResponse{}, err
	}
	filter.Normalize()

	reports, total, err := s.ReportRepository.List(ctx, filter)
	if err != nil {
		return report.ListReportsResponse{}, err
	}

	return listResponse(reports, total, filter.Page, filter.Limit), nil
}

// ListReports implements report.ReportService.
func (s *ReportServiceImpl) ListReports(ctx context.Context, filter report.ReportFilter) (report.ListReportsResponse, error) {
	if err := filter.Validate(); err != nil {
		return report.ListReportsResponse{}, err
	}
	filter.Normalize()

	reports, total, err := s.ReportRepository.List(ctx, filter)
	if err != nil {
		return report.ListReportsResponse{}, err
	}

	return listResponse(reports, total, filter.Page, filter.Limit), nil
}

// DeleteReport implements report.ReportService.
func (s *ReportServiceImpl) DeleteReport(ctx context.Context, id string) error {
	return s.ReportRepository.Delete(ctx, id)
}

// exportLimit caps how many rows one PDF carries.
const exportLimit = 100

// ExportMyReportsPDF implements report.ReportService.
func (s *ReportServiceImpl) ExportMyReportsPDF(ctx context.Context) ([]byte, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	filter := report.ReportFilter{UserID: userID, Page: 1, Limit: exportLimit}
	reports, _, err := s.ReportRepository.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	return export.ReportsPDF("My Daily Reports", s.now().UTC(), toRows(reports))
}

// ExportAllReportsPDF implements report.ReportService.
func (s *ReportServiceImpl) ExportAllReportsPDF(ctx context.Context, filter report.ReportFilter) ([]byte, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	filter.Page = 1
	filter.Limit = exportLimit

	reports, _, err := s.ReportRepository.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	return export.ReportsPDF("Daily Reports", s.now().UTC(), toRows(reports))
}

func toRows(reports []report.Report) []export.ReportRow {
	rows := make([]export.ReportRow, 0, len(reports))
	for _, rep := range reports {
		row := export.ReportRow{
			ReportDate: rep.ReportDate,
			Summary:    rep.Summary,
		}
		if rep.UserName != nil {
			row.EmployeeName = *rep.UserName
		}
		rows = append(rows, row)
	}
	return rows
}
