package attendance

import (
	"context"
)

// Service defines business logic for attendance operations.
type Service interface {
	// CheckIn admits a check-in event after the geofence gate and classifies
	// it Present or Late against the company schedule.
	CheckIn(ctx context.Context, req CheckInRequest) (EventResponse, error)

	// CheckOut admits a check-out event after the geofence gate.
	CheckOut(ctx context.Context, req CheckOutRequest) (EventResponse, error)

	// History returns the canonical one-record-per-day log for a month.
	History(ctx context.Context, filter HistoryFilter) ([]DailyRecordResponse, error)

	// MonthlySummary rolls the per-day log into counts, working days, the
	// attendance rate and a per-day status lookup for the calendar.
	MonthlySummary(ctx context.Context, filter HistoryFilter) (MonthlySummaryResponse, error)

	// RecordManualEntry records an event on behalf of an employee (admin).
	RecordManualEntry(ctx context.Context, req ManualEntryRequest) (EventResponse, error)

	// ListCompanyDay returns all raw events for the caller's company on one
	// local date (admin day view).
	ListCompanyDay(ctx context.Context, dateKey string) ([]EventResponse, error)
}
