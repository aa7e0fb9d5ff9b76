// Package store
package store

import (
	"context"
	"errors"

	"github.com/ro-aviation/skyhub/internal/interfaces/record"
)

var (
	ErrStoreDisabled  = errors.New("record store disabled")
	ErrRecordNotFound = errors.New("record not found")
	ErrUnknownKind    = errors.New("unknown collection")
)

// Snapshot is the full contents of one collection at a point in time,
// in store insertion order. Display ordering is the subscriber's job.
type Snapshot struct {
	Collection string
	Records    []record.Record
}

type SnapshotFunc func(snapshot Snapshot)

// Subscription is a live listener on one collection. Close must be
// called exactly once when the listener is no longer needed; a leaked
// subscription keeps receiving snapshots for the rest of the process.
type Subscription interface {
	Close()
}

// RecordStore is the client contract of the document store backing all
// seven collections. Identifiers and timestamps are assigned by the
// store, never by callers. Every successful mutation is followed by a
// snapshot delivery to all subscribers of the touched collection.
type RecordStore interface {
	Subscribe(collection string, fn SnapshotFunc) (Subscription, error)
	Create(ctx context.Context, collection string, fields record.Fields, actor string) (string, error)
	Update(ctx context.Context, collection string, id string, fields record.Fields, actor string) error
	Delete(ctx context.Context, collection string, id string) error
}
