// Package store
package store

import (
	"context"

	"github.com/ro-aviation/skyhub/internal/interfaces/record"
	"github.com/ro-aviation/skyhub/internal/interfaces/store"
)

// Disabled is the record store used when no database is configured.
// Every operation reports the store as unavailable; nothing crashes.
type Disabled struct{}

func NewDisabled() *Disabled { return &Disabled{} }

func (d *Disabled) Subscribe(string, store.SnapshotFunc) (store.Subscription, error) {
	return nil, store.ErrStoreDisabled
}

func (d *Disabled) Create(context.Context, string, record.Fields, string) (string, error) {
	return "", store.ErrStoreDisabled
}

func (d *Disabled) Update(context.Context, string, string, record.Fields, string) error {
	return store.ErrStoreDisabled
}

func (d *Disabled) Delete(context.Context, string, string) error {
	return store.ErrStoreDisabled
}

var _ store.RecordStore = (*Disabled)(nil)
