package service

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ro-aviation/skyhub/internal/interfaces/config"
	"github.com/ro-aviation/skyhub/internal/interfaces/log"
	"github.com/ro-aviation/skyhub/internal/interfaces/record"
	"github.com/ro-aviation/skyhub/internal/interfaces/service"
	storeInterface "github.com/ro-aviation/skyhub/internal/interfaces/store"
	"github.com/ro-aviation/skyhub/internal/notify"
	"github.com/ro-aviation/skyhub/internal/store"
)

func newTestService(t *testing.T, recordStore storeInterface.RecordStore) *RecordService {
	t.Helper()
	logger := log.NewNopLogger()
	validator := NewFieldValidator(&config.HttpServerLimit{FieldLengthMax: 200, MessageLengthMax: 2000})
	email := NewEmailService(logger, &config.EmailConfig{Enabled: false})
	recordService := NewRecordService(logger, recordStore, notify.NewNotifierWithDelay(time.Hour), email, validator)
	t.Cleanup(recordService.Shutdown)
	return recordService
}

func TestGetRecordsUnknownCollection(t *testing.T) {
	recordService := newTestService(t, store.NewMemory())
	res := recordService.GetRecords(&service.RequestGetRecords{Collection: "users"})
	assert.Equal(t, service.ErrUnknownCollection.StatusName, res.Code)
	assert.Equal(t, 404, res.HttpCode)
}

func TestCreateRecordRejectsOversizedField(t *testing.T) {
	memory := store.NewMemory()
	recordService := newTestService(t, memory)

	res := recordService.CreateRecord(&service.RequestCreateRecord{
		Collection: "announcements",
		Fields:     record.Fields{"title": strings.Repeat("x", 300), "message": "ok"},
		Actor:      "staff:a",
	})
	assert.Equal(t, service.ErrIllegalParam.StatusName, res.Code)
	assert.Zero(t, memory.Mutations())
}

func TestCreateRecordRejectsUnknownFlightStatus(t *testing.T) {
	memory := store.NewMemory()
	recordService := newTestService(t, memory)

	res := recordService.CreateRecord(&service.RequestCreateRecord{
		Collection: "liveFlights",
		Fields:     record.Fields{"flight": "RO101", "origin": "EGKK", "destination": "LEPA", "status": "Diverted"},
		Actor:      "staff:a",
	})
	assert.Equal(t, service.ErrValidationFail.StatusName, res.Code)
	assert.Equal(t, 400, res.HttpCode)
	assert.Zero(t, memory.Mutations())
}

func TestCreateRecordUsesKindSuccessMessage(t *testing.T) {
	recordService := newTestService(t, store.NewMemory())

	res := recordService.CreateRecord(&service.RequestCreateRecord{
		Collection: "photos",
		Fields:     record.Fields{"src": "https://img.example/1.png", "title": "t", "description": "d"},
		Actor:      "staff:a",
	})
	require.Equal(t, 200, res.HttpCode)
	assert.Equal(t, record.Photos.CreatedMessage, res.Message)
	require.NotNil(t, res.Data)
	assert.NotEmpty(t, res.Data.Id)
}

func TestSubmitBookingLandsInList(t *testing.T) {
	recordService := newTestService(t, store.NewMemory())

	res := recordService.SubmitBooking(&service.RequestSubmitBooking{
		DiscordUser: "pilot#0001",
		RobloxUser:  "pilot01",
		From:        "EGKK",
		To:          "LEPA",
		Date:        "2026-09-01",
		Actor:       "visitor:1",
	})
	require.Equal(t, 200, res.HttpCode)
	assert.Equal(t, record.BookingRequests.CreatedMessage, res.Message)

	items := recordService.Records("bookingRequests")
	require.Len(t, items, 1)
	assert.Equal(t, "EGKK", items[0].Fields["from"])
	assert.Equal(t, "visitor:1", items[0].UpdatedBy)
}

func TestSubmitSupportValidationFails(t *testing.T) {
	memory := store.NewMemory()
	recordService := newTestService(t, memory)

	res := recordService.SubmitSupport(&service.RequestSubmitSupport{DiscordUser: "pilot#0001"})
	assert.Equal(t, service.ErrValidationFail.StatusName, res.Code)
	assert.Equal(t, 400, res.HttpCode)
	assert.Zero(t, memory.Mutations())
}

func TestDisabledStoreReportsUnavailable(t *testing.T) {
	recordService := newTestService(t, store.NewDisabled())

	res := recordService.SubmitSupport(&service.RequestSubmitSupport{
		DiscordUser: "pilot#0001",
		RobloxUser:  "pilot01",
		Subject:     "Lost badge",
		Message:     "Help",
	})
	assert.Equal(t, service.ErrStoreUnavailable.StatusName, res.Code)
	assert.Equal(t, 503, res.HttpCode)

	assert.Empty(t, recordService.Records("supportRequests"))
}

func TestUpdateMissingRecord(t *testing.T) {
	recordService := newTestService(t, store.NewMemory())

	res := recordService.UpdateRecord(&service.RequestUpdateRecord{
		Collection: "fleet",
		Id:         "missing",
		Fields:     record.Fields{"type": "A320neo", "description": "d"},
		Actor:      "staff:a",
	})
	assert.Equal(t, service.ErrRecordNotFound.StatusName, res.Code)
}

func TestDraftRoundTrip(t *testing.T) {
	recordService := newTestService(t, store.NewMemory())

	set := recordService.SetDraft(&service.RequestSetDraft{
		Collection: "announcements",
		Fields:     record.Fields{"title": "half-typed"},
	})
	require.Equal(t, 200, set.HttpCode)

	got := recordService.GetDraft(&service.RequestGetDraft{Collection: "announcements"})
	require.NotNil(t, got.Data)
	assert.Equal(t, "half-typed", got.Data.Fields["title"])

	cancelled := recordService.CancelEdit(&service.RequestGetDraft{Collection: "announcements"})
	require.NotNil(t, cancelled.Data)
	assert.Empty(t, cancelled.Data.Fields)
}

func TestWatchDeliversSortedUpdates(t *testing.T) {
	memory := store.NewMemory()
	recordService := newTestService(t, memory)

	watcher, errStatus := recordService.Watch("fleet")
	require.Nil(t, errStatus)
	defer watcher.Close()

	// Initial snapshot of the empty collection.
	initial := <-watcher.Updates()
	assert.Empty(t, initial)

	res := recordService.CreateRecord(&service.RequestCreateRecord{
		Collection: "fleet",
		Fields:     record.Fields{"type": "A320neo", "description": "d", "order": "1"},
		Actor:      "staff:a",
	})
	require.Equal(t, 200, res.HttpCode)

	select {
	case update := <-watcher.Updates():
		require.Len(t, update, 1)
		assert.Equal(t, "A320neo", update[0].Fields["type"])
	case <-time.After(time.Second):
		t.Fatal("no update delivered")
	}
}

func TestWatchUnknownCollection(t *testing.T) {
	recordService := newTestService(t, store.NewMemory())
	_, errStatus := recordService.Watch("users")
	require.NotNil(t, errStatus)
	assert.Equal(t, service.ErrUnknownCollection.StatusName, errStatus.StatusName)
}
