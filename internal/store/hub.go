// Package store
package store

import (
	"sync"

	"github.com/ro-aviation/skyhub/internal/interfaces/store"
)

// hub fans collection snapshots out to the live subscribers of this
// process. Delivery happens on the publisher's goroutine, one
// subscriber after another.
type hub struct {
	mu     sync.Mutex
	nextId uint64
	subs   map[string]map[uint64]store.SnapshotFunc
}

func newHub() *hub {
	return &hub{subs: make(map[string]map[uint64]store.SnapshotFunc)}
}

func (h *hub) subscribe(collection string, fn store.SnapshotFunc) *hubSubscription {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.subs[collection] == nil {
		h.subs[collection] = make(map[uint64]store.SnapshotFunc)
	}
	h.nextId++
	h.subs[collection][h.nextId] = fn
	return &hubSubscription{hub: h, collection: collection, id: h.nextId}
}

func (h *hub) publish(snapshot store.Snapshot) {
	h.mu.Lock()
	listeners := make([]store.SnapshotFunc, 0, len(h.subs[snapshot.Collection]))
	for _, fn := range h.subs[snapshot.Collection] {
		listeners = append(listeners, fn)
	}
	h.mu.Unlock()

	for _, fn := range listeners {
		fn(snapshot)
	}
}

func (h *hub) remove(collection string, id uint64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.subs[collection], id)
}

type hubSubscription struct {
	hub        *hub
	collection string
	id         uint64
	once       sync.Once
}

func (s *hubSubscription) Close() {
	s.once.Do(func() {
		s.hub.remove(s.collection, s.id)
	})
}
