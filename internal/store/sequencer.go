// Package store
package store

import "sync"

// snapshotSequencer orders snapshot deliveries per collection. Every
// mutation takes a version before its rebuild goroutine starts; a
// rebuild that finishes after a newer version has already been
// delivered is dropped, so subscribers always end on the newest state.
// Delivery runs under the sequencer lock, which also keeps concurrent
// publishes from interleaving out of order.
type snapshotSequencer struct {
	mu        sync.Mutex
	next      map[string]uint64
	delivered map[string]uint64
}

func newSnapshotSequencer() *snapshotSequencer {
	return &snapshotSequencer{
		next:      make(map[string]uint64),
		delivered: make(map[string]uint64),
	}
}

// begin reserves the next version of a collection.
func (sequencer *snapshotSequencer) begin(collection string) uint64 {
	sequencer.mu.Lock()
	defer sequencer.mu.Unlock()
	sequencer.next[collection]++
	return sequencer.next[collection]
}

// deliver runs publish unless a newer version already went out.
// Reports whether the snapshot was delivered.
func (sequencer *snapshotSequencer) deliver(collection string, version uint64, publish func()) bool {
	sequencer.mu.Lock()
	defer sequencer.mu.Unlock()
	if version <= sequencer.delivered[collection] {
		return false
	}
	sequencer.delivered[collection] = version
	publish()
	return true
}
