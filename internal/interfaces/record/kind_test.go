package record

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func flight(flight, status string) Record {
	return Record{ID: flight, Fields: Fields{"flight": flight, "status": status}}
}

func TestSortLiveFlightsByStatusRank(t *testing.T) {
	records := []Record{
		flight("RO101", "Cancelled"),
		flight("RO102", "En Route"),
		flight("RO103", "Scheduled"),
		flight("RO104", "Arrived"),
	}
	LiveFlights.SortRecords(records)

	got := make([]string, len(records))
	for i, r := range records {
		got[i] = r.ID
	}
	assert.Equal(t, []string{"RO102", "RO103", "RO104", "RO101"}, got)
}

func TestDelayedFlightsSortLast(t *testing.T) {
	records := []Record{
		flight("RO201", "Delayed"),
		flight("RO202", "Departed"),
	}
	LiveFlights.SortRecords(records)
	assert.Equal(t, "RO202", records[0].ID)
	assert.Equal(t, "RO201", records[1].ID)
}

func TestSortIsIdempotent(t *testing.T) {
	records := []Record{
		flight("RO301", "Arrived"),
		flight("RO302", "En Route"),
		flight("RO303", "En Route"),
	}
	LiveFlights.SortRecords(records)
	once := make([]string, len(records))
	for i, r := range records {
		once[i] = r.ID
	}
	LiveFlights.SortRecords(records)
	twice := make([]string, len(records))
	for i, r := range records {
		twice[i] = r.ID
	}
	assert.Equal(t, once, twice)
}

func TestExplicitOrderMissingSortsLast(t *testing.T) {
	records := []Record{
		{ID: "no-order", Fields: Fields{"type": "Cargo 747"}},
		{ID: "second", Fields: Fields{"type": "A350", "order": "2"}},
		{ID: "first", Fields: Fields{"type": "A320neo", "order": "1"}},
		{ID: "bad-order", Fields: Fields{"type": "ATR72", "order": "soon"}},
	}
	Fleet.SortRecords(records)

	assert.Equal(t, "first", records[0].ID)
	assert.Equal(t, "second", records[1].ID)
	// Missing and unparseable order values share the bottom rank and
	// keep their relative order.
	assert.Equal(t, "no-order", records[2].ID)
	assert.Equal(t, "bad-order", records[3].ID)
}

func TestSortByNewestPutsRecentFirst(t *testing.T) {
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	records := []Record{
		{ID: "old", Timestamp: base},
		{ID: "new", Timestamp: base.Add(time.Hour)},
	}
	Announcements.SortRecords(records)
	assert.Equal(t, "new", records[0].ID)
}

func TestValidateReportsAllMissingFields(t *testing.T) {
	err := SupportRequests.Validate(Fields{"discordUser": "pilot#0001", "subject": "  "})
	require.ErrorIs(t, err, ErrMissingField)
	assert.Contains(t, err.Error(), "robloxUser")
	assert.Contains(t, err.Error(), "subject")
	assert.Contains(t, err.Error(), "message")
	assert.NotContains(t, err.Error(), "discordUser")
}

func TestValidateAcceptsCompleteFields(t *testing.T) {
	assert.NoError(t, Announcements.Validate(Fields{"title": "Ops", "message": "Runway change"}))
}

func TestPruneDropsUndeclaredFields(t *testing.T) {
	pruned := Announcements.Prune(Fields{"title": "Ops", "message": "x", "imageUrl": "u", "role": "admin"})
	assert.Equal(t, Fields{"title": "Ops", "message": "x", "imageUrl": "u"}, pruned)
}

func TestKindByCollection(t *testing.T) {
	kind, ok := KindByCollection("staffTeam")
	require.True(t, ok)
	assert.Equal(t, "staffMember", kind.Name)

	_, ok = KindByCollection("users")
	assert.False(t, ok)
}

func TestValidateRejectsUnknownFlightStatus(t *testing.T) {
	fields := Fields{"flight": "RO101", "origin": "EGKK", "destination": "LEPA", "status": "Diverted"}
	err := LiveFlights.Validate(fields)
	require.ErrorIs(t, err, ErrInvalidFieldValue)
	assert.Contains(t, err.Error(), "status")

	fields["status"] = "Delayed"
	assert.NoError(t, LiveFlights.Validate(fields))
}
