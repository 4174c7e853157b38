package attendance

import (
	"sort"
	"time"

	"github.com/attendancepro/attendance-backend-go/internal/domain/attendance"
)

// Dedupe collapses a raw event history into one representative record per
// calendar day, keeping the first-encountered event for each date key.
// Output follows the first-appearance order of each distinct date key.
//
// The result depends on caller-supplied ordering: the API returns events
// newest first, and whichever event appears first in the input wins its day.
// Use DedupeByTimestamp when the input order cannot be trusted.
func Dedupe(events []attendance.Event, loc *time.Location) []attendance.DailyRecord {
	seen := make(map[string]struct{}, len(events))
	records := make([]attendance.DailyRecord, 0, len(events))

	for _, ev := range events {
		key := DateKey(ev.Timestamp, loc)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		records = append(records, attendance.DailyRecord{DateKey: key, Event: ev})
	}

	return records
}

// DedupeByTimestamp sorts a copy of the input newest-first before collapsing,
// so the retained record per day is the chronologically latest event no
// matter how the caller ordered the slice.
func DedupeByTimestamp(events []attendance.Event, loc *time.Location) []attendance.DailyRecord {
	sorted := make([]attendance.Event, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.After(sorted[j].Timestamp)
	})
	return Dedupe(sorted, loc)
}
