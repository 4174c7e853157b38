package http

import (
	"log/slog"
	"net/http"

	"github.com/attendancepro/attendance-backend-go/internal/domain/dashboard"
	"github.com/attendancepro/attendance-backend-go/internal/handler/http/response"
)

type DashboardHandler interface {
	GetAdminDashboard(w http.ResponseWriter, r *http.Request)
	GetEmployeeDashboard(w http.ResponseWriter, r *http.Request)
}

type DashboardHandlerImpl struct {
	dashboardService dashboard.DashboardService
}

func NewDashboardHandler(dashboardService dashboard.DashboardService) DashboardHandler {
	return &DashboardHandlerImpl{dashboardService: dashboardService}
}

// GetAdminDashboard implements DashboardHandler.
func (h *DashboardHandlerImpl) GetAdminDashboard(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")

	dashboardResponse, err := h.dashboardService.GetAdminDashboard(r.Context(), date)
	if err != nil {
		slog.Error("GetAdminDashboard service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, dashboardResponse)
}

// GetEmployeeDashboard implements DashboardHandler.
func (h *DashboardHandlerImpl) GetEmployeeDashboard(w http.ResponseWriter, r *http.Request) {
	dashboardResponse, err := h.dashboardService.GetEmployeeDashboard(r.Context())
	if err != nil {
		slog.Error("GetEmployeeDashboard service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, dashboardResponse)
}
