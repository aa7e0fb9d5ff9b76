package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSequencerDropsStaleSnapshot(t *testing.T) {
	sequencer := newSnapshotSequencer()

	// Two rapid mutations: the first rebuild reads before the second
	// mutation committed, but finishes last. Its stale snapshot must
	// not overwrite the newer one.
	first := sequencer.begin("announcements")
	second := sequencer.begin("announcements")

	var published []string
	require.True(t, sequencer.deliver("announcements", second, func() {
		published = append(published, "second")
	}))
	require.False(t, sequencer.deliver("announcements", first, func() {
		published = append(published, "first")
	}))

	assert.Equal(t, []string{"second"}, published)
}

func TestSequencerDeliversInOrder(t *testing.T) {
	sequencer := newSnapshotSequencer()

	first := sequencer.begin("photos")
	second := sequencer.begin("photos")

	count := 0
	assert.True(t, sequencer.deliver("photos", first, func() { count++ }))
	assert.True(t, sequencer.deliver("photos", second, func() { count++ }))
	assert.Equal(t, 2, count)
}

func TestSequencerTracksCollectionsIndependently(t *testing.T) {
	sequencer := newSnapshotSequencer()

	photos := sequencer.begin("photos")
	fleet := sequencer.begin("fleet")
	fleetNext := sequencer.begin("fleet")

	assert.True(t, sequencer.deliver("fleet", fleetNext, func() {}))
	assert.False(t, sequencer.deliver("fleet", fleet, func() {}))
	assert.True(t, sequencer.deliver("photos", photos, func() {}))
}
