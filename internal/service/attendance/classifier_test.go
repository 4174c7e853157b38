package attendance

import (
	"testing"
	"time"

	"github.com/attendancepro/attendance-backend-go/internal/domain/attendance"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func checkInAt(t *testing.T, value string) attendance.Event {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, value)
	require.NoError(t, err)
	return attendance.Event{
		EmployeeID: "EMP01",
		Type:       attendance.EventCheckIn,
		Timestamp:  ts.UTC(),
	}
}

func checkOutAt(t *testing.T, value string) attendance.Event {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, value)
	require.NoError(t, err)
	return attendance.Event{
		EmployeeID: "EMP01",
		Type:       attendance.EventCheckOut,
		Timestamp:  ts.UTC(),
	}
}

func TestDateKey_SameLocalDate(t *testing.T) {
	t.Parallel()

	early, _ := time.Parse(time.RFC3339, "2024-03-05T00:01:00Z")
	late, _ := time.Parse(time.RFC3339, "2024-03-05T23:59:00Z")

	assert.Equal(t, "2024-03-05", DateKey(early, time.UTC))
	assert.Equal(t, "2024-03-05", DateKey(late, time.UTC))
}

func TestDateKey_TimezoneShiftsCalendarDay(t *testing.T) {
	t.Parallel()

	jakarta, err := time.LoadLocation("Asia/Jakarta")
	require.NoError(t, err)

	// 23:30 UTC is already the next day in UTC+7.
	ts, _ := time.Parse(time.RFC3339, "2024-03-05T23:30:00Z")
	assert.Equal(t, "2024-03-05", DateKey(ts, time.UTC))
	assert.Equal(t, "2024-03-06", DateKey(ts, jakarta))
}

func TestDateKey_Stable(t *testing.T) {
	t.Parallel()

	ts, _ := time.Parse(time.RFC3339, "2024-07-19T08:15:00Z")
	assert.Equal(t, DateKey(ts, time.UTC), DateKey(ts, time.UTC))
}

func TestClassifyDay_GraceBoundaryInclusive(t *testing.T) {
	t.Parallel()

	schedule := attendance.WorkSchedule{Start: "09:00", End: "17:00"}

	onTime := []attendance.Event{checkInAt(t, "2024-03-05T09:00:00Z")}
	status, err := ClassifyDay(onTime, schedule, 0, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusPresent, status, "arriving exactly at start is Present")

	oneSecondLate := []attendance.Event{checkInAt(t, "2024-03-05T09:00:01Z")}
	status, err = ClassifyDay(oneSecondLate, schedule, 0, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusLate, status)
}

func TestClassifyDay_GraceWindow(t *testing.T) {
	t.Parallel()

	schedule := attendance.WorkSchedule{Start: "09:00", End: "17:00"}

	cases := []struct {
		name    string
		arrived string
		grace   int
		want    attendance.DayStatus
	}{
		{"within grace", "2024-03-05T09:10:00Z", 15, attendance.StatusPresent},
		{"at grace boundary", "2024-03-05T09:15:00Z", 15, attendance.StatusPresent},
		{"past grace", "2024-03-05T09:15:01Z", 15, attendance.StatusLate},
		{"early arrival", "2024-03-05T07:45:00Z", 0, attendance.StatusPresent},
	}

	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()
			events := []attendance.Event{checkInAt(t, c.arrived)}
			status, err := ClassifyDay(events, schedule, c.grace, time.UTC)
			require.NoError(t, err)
			assert.Equal(t, c.want, status)
		})
	}
}

func TestClassifyDay_UsesEarliestCheckIn(t *testing.T) {
	t.Parallel()

	schedule := attendance.WorkSchedule{Start: "09:00", End: "17:00"}

	// A late duplicate must not override the on-time arrival.
	events := []attendance.Event{
		checkInAt(t, "2024-03-05T14:00:00Z"),
		checkInAt(t, "2024-03-05T08:55:00Z"),
	}

	status, err := ClassifyDay(events, schedule, 0, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusPresent, status)
}

func TestClassifyDay_IgnoresCheckOuts(t *testing.T) {
	t.Parallel()

	schedule := attendance.WorkSchedule{Start: "09:00", End: "17:00"}

	events := []attendance.Event{checkOutAt(t, "2024-03-05T17:05:00Z")}
	status, err := ClassifyDay(events, schedule, 0, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusNone, status, "a day with no check-in is not classified here")
}

func TestClassifyDay_NoEvents(t *testing.T) {
	t.Parallel()

	schedule := attendance.WorkSchedule{Start: "09:00", End: "17:00"}
	status, err := ClassifyDay(nil, schedule, 0, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusNone, status)
}

func TestClassifyDay_MalformedSchedule(t *testing.T) {
	t.Parallel()

	events := []attendance.Event{checkInAt(t, "2024-03-05T09:00:00Z")}
	_, err := ClassifyDay(events, attendance.WorkSchedule{Start: "9 o'clock"}, 0, time.UTC)
	assert.ErrorIs(t, err, attendance.ErrInvalidSchedule)
}

func TestClassifyDay_LocalTimezone(t *testing.T) {
	t.Parallel()

	jakarta, err := time.LoadLocation("Asia/Jakarta")
	require.NoError(t, err)

	schedule := attendance.WorkSchedule{Start: "09:00", End: "17:00"}

	// 01:59 UTC is 08:59 in Jakarta: present there, but this employee would
	// be absurdly early against a UTC schedule.
	events := []attendance.Event{checkInAt(t, "2024-03-05T01:59:00Z")}
	status, err := ClassifyDay(events, schedule, 0, jakarta)
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusPresent, status)

	lateLocal := []attendance.Event{checkInAt(t, "2024-03-05T02:01:00Z")}
	status, err = ClassifyDay(lateLocal, schedule, 0, jakarta)
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusLate, status)
}
