package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ro-aviation/skyhub/internal/interfaces/record"
	"github.com/ro-aviation/skyhub/internal/interfaces/store"
)

func TestSubscribeDeliversInitialSnapshot(t *testing.T) {
	memory := NewMemory()
	_, err := memory.Create(context.Background(), "announcements", record.Fields{"title": "a", "message": "b"}, "visitor:1")
	require.NoError(t, err)

	var delivered []store.Snapshot
	sub, err := memory.Subscribe("announcements", func(s store.Snapshot) {
		delivered = append(delivered, s)
	})
	require.NoError(t, err)
	defer sub.Close()

	require.Len(t, delivered, 1)
	assert.Len(t, delivered[0].Records, 1)
}

func TestMutationsBroadcastToSubscribers(t *testing.T) {
	memory := NewMemory()
	var delivered []store.Snapshot
	sub, err := memory.Subscribe("fleet", func(s store.Snapshot) {
		delivered = append(delivered, s)
	})
	require.NoError(t, err)
	defer sub.Close()

	ctx := context.Background()
	id, err := memory.Create(ctx, "fleet", record.Fields{"type": "A320neo", "description": "d"}, "staff:a")
	require.NoError(t, err)
	require.NoError(t, memory.Update(ctx, "fleet", id, record.Fields{"type": "A321neo", "description": "d"}, "staff:a"))
	require.NoError(t, memory.Delete(ctx, "fleet", id))

	// Initial snapshot plus one per mutation.
	require.Len(t, delivered, 4)
	assert.Equal(t, "A321neo", delivered[2].Records[0].Fields["type"])
	assert.Empty(t, delivered[3].Records)
}

func TestSubscribeRejectsUnknownCollection(t *testing.T) {
	memory := NewMemory()
	_, err := memory.Subscribe("users", func(store.Snapshot) {})
	assert.ErrorIs(t, err, store.ErrUnknownKind)
}

func TestUpdateMissingRecord(t *testing.T) {
	memory := NewMemory()
	err := memory.Update(context.Background(), "photos", "missing", record.Fields{"src": "s", "title": "t", "description": "d"}, "staff:a")
	assert.ErrorIs(t, err, store.ErrRecordNotFound)
}

func TestDeleteMissingRecordIsNotAnError(t *testing.T) {
	memory := NewMemory()
	assert.NoError(t, memory.Delete(context.Background(), "photos", "missing"))
}

func TestClosedSubscriptionStopsReceiving(t *testing.T) {
	memory := NewMemory()
	count := 0
	sub, err := memory.Subscribe("photos", func(store.Snapshot) { count++ })
	require.NoError(t, err)
	sub.Close()
	sub.Close()

	_, err = memory.Create(context.Background(), "photos", record.Fields{"src": "s", "title": "t", "description": "d"}, "visitor:1")
	require.NoError(t, err)
	assert.Equal(t, 1, count, "only the initial snapshot arrives")
}

func TestUpdateStampsNewTimestampKeepsCreatedAt(t *testing.T) {
	memory := NewMemory()
	ctx := context.Background()
	id, err := memory.Create(ctx, "announcements", record.Fields{"title": "a", "message": "b"}, "visitor:1")
	require.NoError(t, err)

	var snapshot store.Snapshot
	sub, err := memory.Subscribe("announcements", func(s store.Snapshot) { snapshot = s })
	require.NoError(t, err)
	defer sub.Close()

	created := snapshot.Records[0].CreatedAt
	require.NoError(t, memory.Update(ctx, "announcements", id, record.Fields{"title": "a2", "message": "b"}, "staff:a"))

	updated := snapshot.Records[0]
	assert.Equal(t, created, updated.CreatedAt)
	assert.False(t, updated.Timestamp.Before(created))
	assert.Equal(t, "staff:a", updated.UpdatedBy)
}

func TestDisabledStoreRefusesEverything(t *testing.T) {
	disabled := NewDisabled()
	ctx := context.Background()

	_, err := disabled.Subscribe("announcements", func(store.Snapshot) {})
	assert.ErrorIs(t, err, store.ErrStoreDisabled)
	_, err = disabled.Create(ctx, "announcements", record.Fields{"title": "a", "message": "b"}, "visitor:1")
	assert.ErrorIs(t, err, store.ErrStoreDisabled)
	assert.ErrorIs(t, disabled.Update(ctx, "announcements", "id", nil, "staff:a"), store.ErrStoreDisabled)
	assert.ErrorIs(t, disabled.Delete(ctx, "announcements", "id"), store.ErrStoreDisabled)
}
