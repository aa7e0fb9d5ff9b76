// Package synclist keeps one record collection mirrored from the store,
// sorted for display, together with the form state used to mutate it.
package synclist

import (
	"context"
	"fmt"
	"sync"

	"github.com/ro-aviation/skyhub/internal/interfaces/log"
	"github.com/ro-aviation/skyhub/internal/interfaces/record"
	"github.com/ro-aviation/skyhub/internal/interfaces/store"
	"github.com/ro-aviation/skyhub/internal/notify"
)

// SyncList is a live mirror of one collection. Every snapshot delivered
// by the store replaces the local list wholesale and is re-sorted by the
// kind's display order, so local state never drifts from the store.
//
// The list also owns the draft fields of its create/edit form. A failed
// mutation keeps the draft so the visitor does not lose their input; the
// draft is cleared only after the store accepts the write.
type SyncList struct {
	kind     *record.Kind
	store    store.RecordStore
	notifier *notify.Notifier
	logger   log.LoggerInterface

	mu      sync.Mutex
	records []record.Record
	draft   record.Fields
	editing string
	sub     store.Subscription
	closed  sync.Once
}

func NewSyncList(
	kind *record.Kind,
	recordStore store.RecordStore,
	notifier *notify.Notifier,
	logger log.LoggerInterface,
) *SyncList {
	return &SyncList{
		kind:     kind,
		store:    recordStore,
		notifier: notifier,
		logger:   logger,
		draft:    record.Fields{},
	}
}

func (list *SyncList) Kind() *record.Kind { return list.kind }

// Open subscribes the list to its collection. The store delivers the
// current snapshot synchronously, so the list is populated on return.
func (list *SyncList) Open() error {
	sub, err := list.store.Subscribe(list.kind.Collection, list.apply)
	if err != nil {
		return fmt.Errorf("open %s list: %w", list.kind.Collection, err)
	}
	list.mu.Lock()
	list.sub = sub
	list.mu.Unlock()
	return nil
}

// Close detaches the list from the store. Safe to call more than once.
func (list *SyncList) Close() {
	list.closed.Do(func() {
		list.mu.Lock()
		sub := list.sub
		list.sub = nil
		list.mu.Unlock()
		if sub != nil {
			sub.Close()
		}
	})
}

func (list *SyncList) apply(snapshot store.Snapshot) {
	records := make([]record.Record, len(snapshot.Records))
	copy(records, snapshot.Records)
	list.kind.SortRecords(records)
	list.mu.Lock()
	list.records = records
	list.mu.Unlock()
}

// Records returns a copy of the list in display order.
func (list *SyncList) Records() []record.Record {
	list.mu.Lock()
	defer list.mu.Unlock()
	records := make([]record.Record, len(list.records))
	copy(records, list.records)
	return records
}

// SetDraft replaces the form draft, for example when the visitor types.
func (list *SyncList) SetDraft(fields record.Fields) {
	list.mu.Lock()
	defer list.mu.Unlock()
	list.draft = fields.Clone()
}

func (list *SyncList) Draft() record.Fields {
	list.mu.Lock()
	defer list.mu.Unlock()
	return list.draft.Clone()
}

// BeginEdit loads a record into the form and switches it to edit mode.
func (list *SyncList) BeginEdit(id string) error {
	list.mu.Lock()
	defer list.mu.Unlock()
	for _, r := range list.records {
		if r.ID == id {
			list.editing = id
			list.draft = r.Fields.Clone()
			return nil
		}
	}
	return store.ErrRecordNotFound
}

// CancelEdit leaves edit mode and empties the form.
func (list *SyncList) CancelEdit() {
	list.mu.Lock()
	defer list.mu.Unlock()
	list.editing = ""
	list.draft = record.Fields{}
}

// EditingID is the id being edited, or empty in create mode.
func (list *SyncList) EditingID() string {
	list.mu.Lock()
	defer list.mu.Unlock()
	return list.editing
}

func (list *SyncList) resetForm() {
	list.mu.Lock()
	list.editing = ""
	list.draft = record.Fields{}
	list.mu.Unlock()
}

// Create validates and submits a new record. Validation failures never
// reach the store. Exactly one notification is emitted per call: the
// kind's success message, or the error. The form resets only on success.
func (list *SyncList) Create(ctx context.Context, fields record.Fields, actor string) (string, error) {
	if err := list.kind.Validate(fields); err != nil {
		list.notifier.Error(err.Error())
		return "", err
	}
	id, err := list.store.Create(ctx, list.kind.Collection, list.kind.Prune(fields), actor)
	if err != nil {
		list.logger.ErrorF("create %s record failed: %v", list.kind.Name, err)
		list.notifier.Error(fmt.Sprintf("Failed to save %s: %v", list.kind.Display, err))
		return "", err
	}
	list.resetForm()
	list.notifier.Success(list.kind.CreatedMessage)
	return id, nil
}

// Update overwrites an existing record. Success leaves edit mode and
// clears the form; failure keeps both so the visitor can retry.
func (list *SyncList) Update(ctx context.Context, id string, fields record.Fields, actor string) error {
	if err := list.kind.Validate(fields); err != nil {
		list.notifier.Error(err.Error())
		return err
	}
	if err := list.store.Update(ctx, list.kind.Collection, id, list.kind.Prune(fields), actor); err != nil {
		list.logger.ErrorF("update %s record %s failed: %v", list.kind.Name, id, err)
		list.notifier.Error(fmt.Sprintf("Failed to update %s: %v", list.kind.Display, err))
		return err
	}
	list.resetForm()
	list.notifier.Success(fmt.Sprintf("%s updated successfully!", list.kind.Display))
	return nil
}

// Delete removes a record without confirmation, matching the dashboard.
func (list *SyncList) Delete(ctx context.Context, id string) error {
	if err := list.store.Delete(ctx, list.kind.Collection, id); err != nil {
		list.logger.ErrorF("delete %s record %s failed: %v", list.kind.Name, id, err)
		list.notifier.Error(fmt.Sprintf("Failed to delete %s: %v", list.kind.Display, err))
		return err
	}
	list.mu.Lock()
	if list.editing == id {
		list.editing = ""
		list.draft = record.Fields{}
	}
	list.mu.Unlock()
	list.notifier.Success(fmt.Sprintf("%s deleted.", list.kind.Display))
	return nil
}
