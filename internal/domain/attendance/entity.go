package attendance

import (
	"time"
)

type EventType string

const (
	EventCheckIn  EventType = "check_in"
	EventCheckOut EventType = "check_out"
)

var EventTypeValues = []string{
	string(EventCheckIn),
	string(EventCheckOut),
}

// DayStatus is the classification of a calendar day for one employee.
type DayStatus string

const (
	StatusPresent DayStatus = "Present"
	StatusLate    DayStatus = "Late"

	// StatusNone means the day carries no classification at this layer.
	// A day with no check-in is counted as absent only by the monthly
	// residual rule, never by the classifier.
	StatusNone DayStatus = ""
)

// Event is a single recorded check-in or check-out. Events are immutable
// once admitted to the log; admins correct mistakes by recording manual
// entries, not by mutating history.
type Event struct {
	ID         string
	EmployeeID string
	CompanyID  string
	Type       EventType
	Timestamp  time.Time // UTC
	LocalDate  string    // YYYY-MM-DD in the company zone at admission
	Latitude   *float64
	Longitude  *float64
	Status     DayStatus // label computed at admission, empty for manual entries
	Source     string    // "device" or "manual"
	CreatedAt  time.Time
}

// DailyRecord is the canonical single record representing a calendar day
// for one employee, produced by deduplication.
type DailyRecord struct {
	DateKey string
	Event   Event
}

// MonthlyStats holds the per-month attendance counts. Absent is a derived
// residual (working days minus attended days), never a recorded event.
type MonthlyStats struct {
	Present int `json:"present"`
	Late    int `json:"late"`
	Absent  int `json:"absent"`
}

// WorkSchedule is the company clock-in window the classifier consumes.
// Times are local "HH:MM" strings as configured in the admin console.
type WorkSchedule struct {
	Start string
	End   string
}
