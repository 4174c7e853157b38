package attendance

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/attendancepro/attendance-backend-go/internal/domain/attendance"
)

// MonthResult is the rollup of one employee-month: the stat counts, the
// per-day status lookup the calendar tiles read, and the working-day
// denominator the absent residual was derived from.
type MonthResult struct {
	Stats       attendance.MonthlyStats
	Days        map[string]attendance.DayStatus
	WorkingDays int
}

// AggregateMonth rolls a deduplicated per-day log into monthly counts.
//
// Working days are the Mon-Fri days in 1..N, where N is today's day of
// month when the evaluated month is the current one, and the full month
// length otherwise. Absence is the residual working - (present + late),
// floored at zero; it is never a recorded event. An isWorkingDay predicate
// can replace the weekday rule (holiday calendars); nil means Mon-Fri.
//
// Callers must only pass a today that actually falls inside month when they
// mean "month to date": with an inconsistent pair the full month length is
// silently used and the residual is computed against it.
func AggregateMonth(
	records []attendance.DailyRecord,
	year int,
	month time.Month,
	today time.Time,
	schedule attendance.WorkSchedule,
	graceMinutes int,
	loc *time.Location,
	isWorkingDay func(time.Time) bool,
) (MonthResult, error) {
	if loc == nil {
		loc = time.UTC
	}

	result := MonthResult{
		Days: make(map[string]attendance.DayStatus),
	}

	prefix := fmt.Sprintf("%04d-%02d-", year, int(month))
	for _, rec := range records {
		if !strings.HasPrefix(rec.DateKey, prefix) {
			continue
		}

		status, err := ClassifyDay([]attendance.Event{rec.Event}, schedule, graceMinutes, loc)
		if err != nil {
			return MonthResult{}, err
		}

		switch status {
		case attendance.StatusPresent:
			result.Stats.Present++
		case attendance.StatusLate:
			result.Stats.Late++
		default:
			// A day whose retained event is not a check-in stays
			// unclassified and falls through to the absent residual.
			continue
		}
		result.Days[rec.DateKey] = status
	}

	todayLocal := today.In(loc)
	lastDay := daysInMonth(year, month)
	if todayLocal.Year() == year && todayLocal.Month() == month {
		lastDay = todayLocal.Day()
	}

	for d := 1; d <= lastDay; d++ {
		date := time.Date(year, month, d, 0, 0, 0, 0, loc)
		if isWorkingDay != nil {
			if isWorkingDay(date) {
				result.WorkingDays++
			}
			continue
		}
		if wd := date.Weekday(); wd != time.Saturday && wd != time.Sunday {
			result.WorkingDays++
		}
	}

	absent := result.WorkingDays - result.Stats.Present - result.Stats.Late
	if absent < 0 {
		absent = 0
	}
	result.Stats.Absent = absent

	return result, nil
}

// Rate is the standardized attendance percentage: present over the whole
// evaluated window (present + late + absent), rounded to the nearest
// integer. Returns 0 when the window is empty.
func Rate(stats attendance.MonthlyStats) int {
	den := stats.Present + stats.Late + stats.Absent
	if den == 0 {
		return 0
	}
	return int(math.Round(100 * float64(stats.Present) / float64(den)))
}

func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
