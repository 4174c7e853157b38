package attendance

import (
	"context"
	"time"
)

// EventRepository defines data access for the append-only event log.
// All methods take companyID to prevent cross-company data access.
type EventRepository interface {
	// Create appends a new event to the log.
	Create(ctx context.Context, event Event) (Event, error)

	// GetByID retrieves a single event with company isolation.
	GetByID(ctx context.Context, id string, companyID string) (Event, error)

	// ListByEmployeeBetween returns an employee's events with timestamps in
	// [from, to), newest first.
	ListByEmployeeBetween(ctx context.Context, employeeID string, from, to time.Time, companyID string) ([]Event, error)

	// ListByCompanyOn returns all events for a company on a local date key,
	// newest first. Used by the admin day view and the company dashboard.
	ListByCompanyOn(ctx context.Context, companyID string, dateKey string) ([]Event, error)

	// HasCheckedInOn reports whether the employee already has a check-in
	// event on the given local date key.
	HasCheckedInOn(ctx context.Context, employeeID string, dateKey string, companyID string) (bool, error)
}
