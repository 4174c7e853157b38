package attendance

import (
	"testing"
	"time"

	"github.com/attendancepro/attendance-backend-go/internal/domain/attendance"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDedupe_FirstSeenWins(t *testing.T) {
	t.Parallel()

	// The API returns most-relevant-first: a 14:00 duplicate listed before
	// the real 09:10 arrival wins its day. This is the documented ordering
	// dependency; DedupeByTimestamp removes it.
	afternoon := checkInAt(t, "2024-03-05T14:00:00Z")
	morning := checkInAt(t, "2024-03-05T09:10:00Z")
	nextDay := checkInAt(t, "2024-03-06T08:50:00Z")

	records := Dedupe([]attendance.Event{afternoon, morning, nextDay}, time.UTC)

	require.Len(t, records, 2)
	assert.Equal(t, "2024-03-05", records[0].DateKey)
	assert.Equal(t, afternoon.Timestamp, records[0].Event.Timestamp)
	assert.Equal(t, "2024-03-06", records[1].DateKey)
}

func TestDedupe_OutputFollowsFirstAppearance(t *testing.T) {
	t.Parallel()

	events := []attendance.Event{
		checkInAt(t, "2024-03-07T09:00:00Z"),
		checkInAt(t, "2024-03-05T09:00:00Z"),
		checkInAt(t, "2024-03-06T09:00:00Z"),
		checkInAt(t, "2024-03-05T10:00:00Z"),
	}

	records := Dedupe(events, time.UTC)

	require.Len(t, records, 3)
	assert.Equal(t, "2024-03-07", records[0].DateKey)
	assert.Equal(t, "2024-03-05", records[1].DateKey)
	assert.Equal(t, "2024-03-06", records[2].DateKey)
}

func TestDedupe_Idempotent(t *testing.T) {
	t.Parallel()

	events := []attendance.Event{
		checkInAt(t, "2024-03-05T14:00:00Z"),
		checkInAt(t, "2024-03-05T09:10:00Z"),
		checkOutAt(t, "2024-03-05T17:00:00Z"),
		checkInAt(t, "2024-03-06T08:50:00Z"),
	}

	once := Dedupe(events, time.UTC)

	again := make([]attendance.Event, 0, len(once))
	for _, rec := range once {
		again = append(again, rec.Event)
	}

	assert.Equal(t, once, Dedupe(again, time.UTC))
}

func TestDedupe_Empty(t *testing.T) {
	t.Parallel()

	assert.Empty(t, Dedupe(nil, time.UTC))
}

func TestDedupe_TimezoneSplitsDays(t *testing.T) {
	t.Parallel()

	jakarta, err := time.LoadLocation("Asia/Jakarta")
	require.NoError(t, err)

	// Same UTC date, different local dates in UTC+7.
	a := checkInAt(t, "2024-03-05T02:00:00Z") // Mar 5 09:00 local
	b := checkInAt(t, "2024-03-05T23:30:00Z") // Mar 6 06:30 local

	assert.Len(t, Dedupe([]attendance.Event{a, b}, time.UTC), 1)
	assert.Len(t, Dedupe([]attendance.Event{a, b}, jakarta), 2)
}

func TestDedupeByTimestamp_OrderIndependent(t *testing.T) {
	t.Parallel()

	morning := checkInAt(t, "2024-03-05T09:10:00Z")
	afternoon := checkInAt(t, "2024-03-05T14:00:00Z")

	shuffled := [][]attendance.Event{
		{morning, afternoon},
		{afternoon, morning},
	}

	for _, events := range shuffled {
		records := DedupeByTimestamp(events, time.UTC)
		require.Len(t, records, 1)
		assert.Equal(t, afternoon.Timestamp, records[0].Event.Timestamp,
			"the chronologically latest event wins regardless of input order")
	}
}

func TestDedupeByTimestamp_DoesNotMutateInput(t *testing.T) {
	t.Parallel()

	first := checkInAt(t, "2024-03-05T09:10:00Z")
	second := checkInAt(t, "2024-03-06T09:10:00Z")
	events := []attendance.Event{first, second}

	DedupeByTimestamp(events, time.UTC)

	assert.Equal(t, first.Timestamp, events[0].Timestamp)
	assert.Equal(t, second.Timestamp, events[1].Timestamp)
}
