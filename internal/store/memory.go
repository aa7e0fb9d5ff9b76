// Package store
package store

import (
	"context"
	"sync"
	"time"

	"github.com/ro-aviation/skyhub/internal/interfaces/global"
	"github.com/ro-aviation/skyhub/internal/interfaces/record"
	"github.com/ro-aviation/skyhub/internal/interfaces/store"
	"github.com/thanhpk/randstr"
)

// Memory is an in-process record store with the same observable
// behavior as the database-backed one. It backs the service and
// synclist tests as the swappable test double.
type Memory struct {
	mu      sync.Mutex
	records map[string][]record.Record
	hub     *hub
	nextErr error
	creates int
	updates int
	deletes int
}

func NewMemory() *Memory {
	return &Memory{
		records: make(map[string][]record.Record),
		hub:     newHub(),
	}
}

// FailNext makes the next mutation return err instead of applying.
func (m *Memory) FailNext(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextErr = err
}

// Mutations reports how many create/update/delete calls reached the
// store, failed or not.
func (m *Memory) Mutations() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.creates + m.updates + m.deletes
}

func (m *Memory) takeErr() error {
	err := m.nextErr
	m.nextErr = nil
	return err
}

func (m *Memory) snapshotLocked(collection string) store.Snapshot {
	records := make([]record.Record, len(m.records[collection]))
	copy(records, m.records[collection])
	return store.Snapshot{Collection: collection, Records: records}
}

func (m *Memory) broadcast(collection string) {
	m.mu.Lock()
	snapshot := m.snapshotLocked(collection)
	m.mu.Unlock()
	m.hub.publish(snapshot)
}

func (m *Memory) Subscribe(collection string, fn store.SnapshotFunc) (store.Subscription, error) {
	if _, ok := record.KindByCollection(collection); !ok {
		return nil, store.ErrUnknownKind
	}
	m.mu.Lock()
	snapshot := m.snapshotLocked(collection)
	subscription := m.hub.subscribe(collection, fn)
	m.mu.Unlock()
	fn(snapshot)
	return subscription, nil
}

func (m *Memory) Create(_ context.Context, collection string, fields record.Fields, actor string) (string, error) {
	m.mu.Lock()
	m.creates++
	if err := m.takeErr(); err != nil {
		m.mu.Unlock()
		return "", err
	}
	now := time.Now().UTC()
	rec := record.Record{
		ID:        randstr.String(global.DocumentIdLength),
		Fields:    fields.Clone(),
		Timestamp: now,
		CreatedAt: now,
		UpdatedBy: actor,
	}
	m.records[collection] = append(m.records[collection], rec)
	m.mu.Unlock()

	m.broadcast(collection)
	return rec.ID, nil
}

func (m *Memory) Update(_ context.Context, collection string, id string, fields record.Fields, actor string) error {
	m.mu.Lock()
	m.updates++
	if err := m.takeErr(); err != nil {
		m.mu.Unlock()
		return err
	}
	found := false
	for i := range m.records[collection] {
		if m.records[collection][i].ID == id {
			m.records[collection][i].Fields = fields.Clone()
			m.records[collection][i].Timestamp = time.Now().UTC()
			m.records[collection][i].UpdatedBy = actor
			found = true
			break
		}
	}
	m.mu.Unlock()

	if !found {
		return store.ErrRecordNotFound
	}
	m.broadcast(collection)
	return nil
}

func (m *Memory) Delete(_ context.Context, collection string, id string) error {
	m.mu.Lock()
	m.deletes++
	if err := m.takeErr(); err != nil {
		m.mu.Unlock()
		return err
	}
	records := m.records[collection]
	for i := range records {
		if records[i].ID == id {
			m.records[collection] = append(records[:i:i], records[i+1:]...)
			break
		}
	}
	m.mu.Unlock()

	m.broadcast(collection)
	return nil
}

var _ store.RecordStore = (*Memory)(nil)
