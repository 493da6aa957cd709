package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/hasinesrak/Time-Track-Hub-TTH/internal/domain/report"
	"github.com/hasinesrak/Time-Track-Hub-TTH/internal/handler/http/response"
)

type ReportHandler interface {
	Submit(w http.ResponseWriter, r *http.Request)
	GetMyReports(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	ExportMyReports(w http.ResponseWriter, r *http.Request)
	ExportAllReports(w http.ResponseWriter, r *http.Request)
}

type ReportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &ReportHandlerImpl{reportService: reportService}
}

func reportFilterFromQuery(r *http.Request) report.ReportFilter {
	return report.ReportFilter{
		UserID:   r.URL.Query().Get("user_id"),
		DateFrom: r.URL.Query().Get("date_from"),
		DateTo:   r.URL.Query().Get("date_to"),
		Page:     queryInt(r, "page"),
		Limit:    queryInt(r, "limit"),
	}
}

// Submit implements ReportHandler.
func (h *ReportHandlerImpl) Submit(w http.ResponseWriter, r *http.Request) {
	var req report.SubmitReportRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("SubmitReport decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := h.reportService.SubmitReport(r.Context(), req)
	if err != nil {
		slog.Error("SubmitReport service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Report submitted")
	response.Created(w, "Report submitted successfully", created)
}

// GetMyReports implements ReportHandler.
func (h *ReportHandlerImpl) GetMyReports(w http.ResponseWriter, r *http.Request) {
	list, err := h.reportService.GetMyReports(r.Context(), reportFilterFromQuery(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, list.Reports, &response.Meta{
		Page:       list.Page,
		Limit:      list.Limit,
		TotalItems: list.TotalCount,
		TotalPages: list.TotalPages,
	})
}

// List implements ReportHandler.
func (h *ReportHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.reportService.ListReports(r.Context(), reportFilterFromQuery(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, list.Reports, &response.Meta{
		Page:       list.Page,
		Limit:      list.Limit,
		TotalItems: list.TotalCount,
		TotalPages: list.TotalPages,
	})
}

// Delete implements ReportHandler.
func (h *ReportHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.reportService.DeleteReport(r.Context(), id); err != nil {
		slog.Error("DeleteReport service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Report deleted", "report_id", id)
	response.SuccessWithMessage(w, "Report deleted successfully", nil)
}

// ExportMyReports implements ReportHandler.
func (h *ReportHandlerImpl) ExportMyReports(w http.ResponseWriter, r *http.Request) {
	content, err := h.reportService.ExportMyReportsPDF(r.Context())
	if err != nil {
		slog.Error("ExportMyReports service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.PDF(w, "my-reports.pdf", content)
}

// ExportAllReports implements ReportHandler.
func (h *ReportHandlerImpl) ExportAllReports(w http.ResponseWriter, r *http.Request) {
	content, err := h.reportService.ExportAllReportsPDF(r.Context(), reportFilterFromQuery(r))
	if err != nil {
		slog.Error("ExportAllReports service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.PDF(w, "reports.pdf", content)
}
