package dashboard

import (
	"github.com/attendancepro/attendance-backend-go/internal/domain/attendance"
)

// TodayStatsResponse feeds the admin console header cards: how much of the
// workforce has shown up today and with what status.
type TodayStatsResponse struct {
	Date           string `json:"date"` // YYYY-MM-DD in company time
	TotalEmployees int    `json:"total_employees"`
	CheckedIn      int    `json:"checked_in"`
	Present        int    `json:"present"`
	Late           int    `json:"late"`
	NotCheckedIn   int    `json:"not_checked_in"`
}

// AdminDashboardResponse is the combined admin landing payload.
type AdminDashboardResponse struct {
	Today        TodayStatsResponse         `json:"today"`
	DeviceCount  int                        `json:"device_count"`
	RecentEvents []attendance.EventResponse `json:"recent_events"`
}

// EmployeeDashboardResponse is the employee landing payload: the running
// month-to-date summary plus the caller's latest raw events.
type EmployeeDashboardResponse struct {
	Summary      attendance.MonthlySummaryResponse `json:"summary"`
	RecentEvents []attendance.EventResponse        `json:"recent_events"`
}
