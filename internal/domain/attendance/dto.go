package attendance

import (
	"github.com/attendancepro/attendance-backend-go/internal/pkg/validator"
)

// ========================================
// ATTENDANCE DTOs
// ========================================

// CheckInRequest carries a live geolocation sample. Latitude and longitude
// are pointers: the browser may fail to resolve a position, and the service
// must reject that case before any geofence math runs.
type CheckInRequest struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

func (r *CheckInRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Latitude == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude is required",
		})
	}

	if r.Longitude == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type CheckOutRequest struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

func (r *CheckOutRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Latitude == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude is required",
		})
	}

	if r.Longitude == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ManualEntryRequest lets an admin record an event for an employee, for
// example when a badge reader was down. No geofence gate applies.
type ManualEntryRequest struct {
	EmployeeID string `json:"employee_id"`
	Type       string `json:"type"` // check_in, check_out
	Date       string `json:"date"` // YYYY-MM-DD
	Time       string `json:"time"` // HH:MM
}

func (r *ManualEntryRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if !validator.IsInSlice(r.Type, EventTypeValues) {
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: "type must be one of: check_in, check_out",
		})
	}

	if _, valid := validator.IsValidDate(r.Date); !valid {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	if !validator.IsValidTimeOfDay(r.Time) {
		errs = append(errs, validator.ValidationError{
			Field:   "time",
			Message: "time must be in HH:MM format",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type EventResponse struct {
	ID         string   `json:"id"`
	EmployeeID string   `json:"employee_id"`
	Type       string   `json:"type"`
	Timestamp  string   `json:"timestamp"`
	Latitude   *float64 `json:"latitude,omitempty"`
	Longitude  *float64 `json:"longitude,omitempty"`
	Status     string   `json:"status,omitempty"`
	Source     string   `json:"source"`
}

// DailyRecordResponse is one canonical per-day row of an employee's history.
type DailyRecordResponse struct {
	Date  string        `json:"date"`
	Event EventResponse `json:"event"`
}

// MonthlySummaryResponse feeds the stat cards and the calendar overlay.
type MonthlySummaryResponse struct {
	Month       string               `json:"month"` // YYYY-MM
	Stats       MonthlyStats         `json:"stats"`
	WorkingDays int                  `json:"working_days"`
	Rate        int                  `json:"attendance_rate"` // percent
	Days        map[string]DayStatus `json:"days"`            // date key -> status
}

type HistoryFilter struct {
	EmployeeID string `json:"employee_id"`
	Month      string `json:"month"` // YYYY-MM, empty means current month
}

func (f *HistoryFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Month != "" && !validator.IsValidMonth(f.Month) {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month must be in YYYY-MM format",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}
