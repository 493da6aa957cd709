package http

import (
	"net/http"

	"github.com/hasinesrak/Time-Track-Hub-TTH/internal/domain/dashboard"
	"github.com/hasinesrak/Time-Track-Hub-TTH/internal/handler/http/response"
)

type DashboardHandler interface {
	AdminOverview(w http.ResponseWriter, r *http.Request)
	EmployeeOverview(w http.ResponseWriter, r *http.Request)
}

type DashboardHandlerImpl struct {
	dashboardService dashboard.DashboardService
}

func NewDashboardHandler(dashboardService dashboard.DashboardService) DashboardHandler {
	return &DashboardHandlerImpl{dashboardService: dashboardService}
}

// AdminOverview implements DashboardHandler.
func (h *DashboardHandlerImpl) AdminOverview(w http.ResponseWriter, r *http.Request) {
	overview, err := h.dashboardService.GetAdminOverview(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, overview)
}

// EmployeeOverview implements DashboardHandler.
func (h *DashboardHandlerImpl) EmployeeOverview(w http.ResponseWriter, r *http.Request) {
	overview, err := h.dashboardService.GetEmployeeOverview(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, overview)
}
