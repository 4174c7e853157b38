package company

import "time"

type Status string

const (
	StatusActive    Status = "active"
	StatusSuspended Status = "suspended"
)

type Company struct {
	ID        string
	Name      string
	Status    Status
	Settings  Settings
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Settings are the office configuration the attendance engine consumes:
// the geofence circle, the clock-in window and the grace tolerance.
// Read-only to the engine; mutated only through the admin console.
type Settings struct {
	Latitude      float64
	Longitude     float64
	RadiusMeters  float64
	ScheduleStart string // "HH:MM" local
	ScheduleEnd   string // "HH:MM" local
	GraceMinutes  int
	Timezone      string // IANA name, e.g. "Asia/Jakarta"
}
