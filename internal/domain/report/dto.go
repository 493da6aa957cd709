package report

import (
	"github.com/hasinesrak/Time-Track-Hub-TTH/internal/pkg/validator"
)

type SubmitReportRequest struct {
	Summary    string `json:"summary"`
	ReportDate string `json:"report_date"`
}

func (r *SubmitReportRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Summary) {
		errs = append(errs, validator.ValidationError{
			Field:   "summary",
			Message: "summary is required",
		})
	}
	if len(r.Summary) > 5000 {
		errs = append(errs, validator.ValidationError{
			Field:   "summary",
			Message: "summary must not exceed 5000 characters",
		})
	}
	if validator.IsEmpty(r.ReportDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "report_date",
			Message: "report_date is required",
		})
	} else if _, ok := validator.IsValidDate(r.ReportDate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "report_date",
			Message: "report_date must be in YYYY-MM-DD format",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ReportFilter struct {
	UserID   string `json:"user_id"`
	DateFrom string `json:"date_from"`
	DateTo   string `json:"date_to"`
	Page     int    `json:"page"`
	Limit    int    `json:"limit"`
}

func (f *ReportFilter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 || f.Limit > 100 {
		f.Limit = 20
	}
}

func (f *ReportFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.UserID != "" && !validator.IsValidUUID(f.UserID) {
		errs = append(errs, validator.ValidationError{
			Field:   "user_id",
			Message: "user_id must be a valid UUID",
		})
	}
	if f.DateFrom != "" {
		if _, ok := validator.IsValidDate(f.DateFrom); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "date_from",
				Message: "date_from must be in YYYY-MM-DD format",
			})
		}
	}
	if f.DateTo != "" {
		if _, ok := validator.IsValidDate(f.DateTo); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "date_to",
				Message: "date_to must be in YYYY-MM-DD format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ReportResponse struct {
	ID         string `json:"id"`
	UserID     string `json:"user_id"`
	UserName   string `json:"user_name,omitempty"`
	Summary    string `json:"summary"`
	ReportDate string `json:"report_date"`
	CreatedAt  string `json:"created_at"`
}

type ListReportsResponse struct {
	TotalCount int64            `json:"total_count"`
	Page       int              `json:"page"`
	Limit      int              `json:"limit"`
	TotalPages int              `json:"total_pages"`
	Reports    []ReportResponse `json:"reports"`
}
