package dashboard

import "context"

type DashboardService interface {
	// GetAdminDashboard returns today's company-wide stats and the latest
	// raw events. An empty date means today in the company zone.
	GetAdminDashboard(ctx context.Context, date string) (*AdminDashboardResponse, error)
	// GetEmployeeDashboard returns the caller's current-month summary and
	// their most recent events.
	GetEmployeeDashboard(ctx context.Context) (*EmployeeDashboardResponse, error)
}
