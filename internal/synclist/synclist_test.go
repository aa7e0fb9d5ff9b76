package synclist

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ro-aviation/skyhub/internal/interfaces/log"
	storeInterface "github.com/ro-aviation/skyhub/internal/interfaces/store"
	"github.com/ro-aviation/skyhub/internal/interfaces/record"
	"github.com/ro-aviation/skyhub/internal/notify"
	"github.com/ro-aviation/skyhub/internal/store"
)

func newTestList(t *testing.T, kind *record.Kind) (*SyncList, *store.Memory, *notify.Notifier) {
	t.Helper()
	memory := store.NewMemory()
	notifier := notify.NewNotifierWithDelay(time.Hour)
	list := NewSyncList(kind, memory, notifier, log.NewNopLogger())
	require.NoError(t, list.Open())
	t.Cleanup(list.Close)
	return list, memory, notifier
}

func TestCreateValidationNeverReachesStore(t *testing.T) {
	list, memory, notifier := newTestList(t, &record.Announcements)

	draft := record.Fields{"title": "Fleet expansion", "message": "   "}
	list.SetDraft(draft)

	_, err := list.Create(context.Background(), draft, "visitor:1")
	require.ErrorIs(t, err, record.ErrMissingField)

	assert.Zero(t, memory.Mutations())
	assert.Equal(t, draft, list.Draft(), "failed submit must keep the visitor's input")

	notice := notifier.Current()
	require.True(t, notice.Visible)
	assert.Equal(t, notify.LevelError, notice.Level)
	assert.Contains(t, notice.Text, "message")
}

func TestCreateSuccessResetsFormAndNotifiesOnce(t *testing.T) {
	list, _, notifier := newTestList(t, &record.BookingRequests)

	fields := record.Fields{
		"discordUser": "pilot#0001",
		"robloxUser":  "pilot01",
		"from":        "EGKK",
		"to":          "LEPA",
		"date":        "2026-09-01",
	}
	list.SetDraft(fields)

	id, err := list.Create(context.Background(), fields, "visitor:1")
	require.NoError(t, err)
	require.NotEmpty(t, id)

	assert.Empty(t, list.Draft())
	records := list.Records()
	require.Len(t, records, 1)
	assert.Equal(t, id, records[0].ID)

	notice := notifier.Current()
	require.True(t, notice.Visible)
	assert.Equal(t, notify.LevelSuccess, notice.Level)
	assert.Equal(t, record.BookingRequests.CreatedMessage, notice.Text)
}

func TestCreateStoreFailureKeepsDraft(t *testing.T) {
	list, memory, notifier := newTestList(t, &record.Photos)

	fields := record.Fields{"src": "https://img.example/1.png", "title": "Sunset", "description": "Final approach"}
	list.SetDraft(fields)
	memory.FailNext(errors.New("connection reset"))

	_, err := list.Create(context.Background(), fields, "visitor:1")
	require.Error(t, err)

	assert.Equal(t, fields, list.Draft())
	assert.Empty(t, list.Records())
	assert.Equal(t, notify.LevelError, notifier.Current().Level)
}

func TestCreatePrunesUndeclaredFields(t *testing.T) {
	list, _, _ := newTestList(t, &record.Announcements)

	_, err := list.Create(context.Background(), record.Fields{
		"title":   "Ops notice",
		"message": "Runway change",
		"isAdmin": "true",
	}, "visitor:1")
	require.NoError(t, err)

	records := list.Records()
	require.Len(t, records, 1)
	assert.NotContains(t, records[0].Fields, "isAdmin")
}

func TestBeginEditLoadsRecordIntoForm(t *testing.T) {
	list, _, _ := newTestList(t, &record.Fleet)

	id, err := list.Create(context.Background(), record.Fields{"type": "A320neo", "description": "Short haul workhorse"}, "staff:a")
	require.NoError(t, err)

	require.NoError(t, list.BeginEdit(id))
	assert.Equal(t, id, list.EditingID())
	assert.Equal(t, "A320neo", list.Draft()["type"])

	assert.ErrorIs(t, list.BeginEdit("no-such-id"), storeInterface.ErrRecordNotFound)
}

func TestUpdateSuccessExitsEditMode(t *testing.T) {
	list, _, notifier := newTestList(t, &record.StaffTeam)

	id, err := list.Create(context.Background(), record.Fields{"name": "Ana", "role": "Dispatcher"}, "staff:a")
	require.NoError(t, err)
	require.NoError(t, list.BeginEdit(id))

	err = list.Update(context.Background(), id, record.Fields{"name": "Ana", "role": "Chief Dispatcher"}, "staff:a")
	require.NoError(t, err)

	assert.Empty(t, list.EditingID())
	assert.Empty(t, list.Draft())
	assert.Equal(t, "Chief Dispatcher", list.Records()[0].Fields["role"])
	assert.Equal(t, notify.LevelSuccess, notifier.Current().Level)
}

func TestUpdateFailureStaysInEditMode(t *testing.T) {
	list, memory, _ := newTestList(t, &record.StaffTeam)

	id, err := list.Create(context.Background(), record.Fields{"name": "Ana", "role": "Dispatcher"}, "staff:a")
	require.NoError(t, err)
	require.NoError(t, list.BeginEdit(id))

	memory.FailNext(errors.New("database locked"))
	changed := record.Fields{"name": "Ana", "role": "Chief Dispatcher"}
	list.SetDraft(changed)
	require.Error(t, list.Update(context.Background(), id, changed, "staff:a"))

	assert.Equal(t, id, list.EditingID())
	assert.Equal(t, changed, list.Draft())
	assert.Equal(t, "Dispatcher", list.Records()[0].Fields["role"])
}

func TestDeleteClearsEditOfDeletedRecord(t *testing.T) {
	list, _, _ := newTestList(t, &record.Fleet)

	id, err := list.Create(context.Background(), record.Fields{"type": "B738", "description": "Charter"}, "staff:a")
	require.NoError(t, err)
	require.NoError(t, list.BeginEdit(id))

	require.NoError(t, list.Delete(context.Background(), id))
	assert.Empty(t, list.EditingID())
	assert.Empty(t, list.Records())
}

func TestSnapshotsArriveInDisplayOrder(t *testing.T) {
	list, _, _ := newTestList(t, &record.Fleet)

	ctx := context.Background()
	_, err := list.Create(ctx, record.Fields{"type": "Cargo 747", "description": "Freight"}, "staff:a")
	require.NoError(t, err)
	_, err = list.Create(ctx, record.Fields{"type": "A320neo", "description": "Short haul", "order": "1"}, "staff:a")
	require.NoError(t, err)
	_, err = list.Create(ctx, record.Fields{"type": "A350", "description": "Long haul", "order": "2"}, "staff:a")
	require.NoError(t, err)

	records := list.Records()
	require.Len(t, records, 3)
	assert.Equal(t, "A320neo", records[0].Fields["type"])
	assert.Equal(t, "A350", records[1].Fields["type"])
	assert.Equal(t, "Cargo 747", records[2].Fields["type"], "records without an order field sort last")
}
