package attendance

import (
	"time"

	"github.com/attendancepro/attendance-backend-go/internal/domain/attendance"
)

// DateKey normalizes an instant to its calendar-day key ("YYYY-MM-DD") in
// the given zone. Two timestamps on the same local date always produce the
// same key; this is what deduplication and calendar lookups match on.
func DateKey(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format("2006-01-02")
}

// ClassifyDay derives the status of one calendar day from its raw events.
// The earliest check-in of the day is compared against the schedule start
// plus the grace window; arriving exactly on the boundary counts as Present.
// A day with no check-in returns StatusNone: it is not "classified" here,
// the monthly residual rule decides whether it counts as absent.
func ClassifyDay(dayEvents []attendance.Event, schedule attendance.WorkSchedule, graceMinutes int, loc *time.Location) (attendance.DayStatus, error) {
	start, err := time.Parse("15:04", schedule.Start)
	if err != nil {
		return attendance.StatusNone, attendance.ErrInvalidSchedule
	}
	if loc == nil {
		loc = time.UTC
	}

	var earliest *time.Time
	for i := range dayEvents {
		if dayEvents[i].Type != attendance.EventCheckIn {
			continue
		}
		ts := dayEvents[i].Timestamp
		if earliest == nil || ts.Before(*earliest) {
			earliest = &ts
		}
	}
	if earliest == nil {
		return attendance.StatusNone, nil
	}

	arrived := earliest.In(loc)
	deadline := time.Date(
		arrived.Year(), arrived.Month(), arrived.Day(),
		start.Hour(), start.Minute(), 0, 0,
		loc,
	).Add(time.Duration(graceMinutes) * time.Minute)

	if arrived.After(deadline) {
		return attendance.StatusLate, nil
	}
	return attendance.StatusPresent, nil
}
