// Package store
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ro-aviation/skyhub/internal/interfaces/config"
	"github.com/ro-aviation/skyhub/internal/interfaces/global"
	"github.com/ro-aviation/skyhub/internal/interfaces/log"
	"github.com/ro-aviation/skyhub/internal/interfaces/record"
	"github.com/ro-aviation/skyhub/internal/interfaces/store"
	"github.com/thanhpk/randstr"
	"gorm.io/gorm"
)

// ChangeRelay carries collection-changed events between SkyHub
// instances so every process re-delivers fresh snapshots to its own
// subscribers.
type ChangeRelay interface {
	Publish(collection string) error
}

// DocumentStore implements the record store contract on a relational
// database. Every collection lives in one documents table, namespaced
// by the site's application identifier.
type DocumentStore struct {
	db           *gorm.DB
	logger       log.LoggerInterface
	appId        string
	queryTimeout time.Duration
	hub          *hub
	sequencer    *snapshotSequencer
	relay        ChangeRelay
}

func ConnectDatabase(logger log.LoggerInterface, cfg *config.Config, debug bool) (global.Callable, *DocumentStore, error) {
	databaseConfig := cfg.Database

	connectionConfig := &gorm.Config{PrepareStmt: true}
	db, err := gorm.Open(databaseConfig.GetConnection(logger), connectionConfig)
	if err != nil {
		return nil, nil, fmt.Errorf("error occurred while connecting to database: %w", err)
	}

	if err := db.AutoMigrate(&Document{}); err != nil {
		return nil, nil, fmt.Errorf("error occurred while migrating database: %w", err)
	}

	dbPool, err := db.DB()
	if err != nil {
		return nil, nil, fmt.Errorf("error occurred while creating database pool: %w", err)
	}
	dbPool.SetMaxOpenConns(databaseConfig.ServerMaxConnections)
	dbPool.SetMaxIdleConns(databaseConfig.ServerMaxConnections / 5)
	if err := dbPool.Ping(); err != nil {
		return nil, nil, fmt.Errorf("error occurred while pinging database: %w", err)
	}

	if debug {
		logger.Debug("Database connected in debug mode")
	}

	documentStore := &DocumentStore{
		db:           db,
		logger:       logger,
		appId:        cfg.Site.AppId,
		queryTimeout: databaseConfig.QueryDuration,
		hub:          newHub(),
		sequencer:    newSnapshotSequencer(),
	}
	return &databaseShutdownCallback{db: db}, documentStore, nil
}

type databaseShutdownCallback struct {
	db *gorm.DB
}

func (dc *databaseShutdownCallback) Invoke(_ context.Context) error {
	dbPool, err := dc.db.DB()
	if err != nil {
		return err
	}
	return dbPool.Close()
}

// SetRelay attaches the inter-instance change relay. Must be called
// before the first mutation, not after subscribers exist.
func (documentStore *DocumentStore) SetRelay(relay ChangeRelay) {
	documentStore.relay = relay
}

func (documentStore *DocumentStore) path(collection string) string {
	return fmt.Sprintf("%s/public/data/%s", documentStore.appId, collection)
}

func (documentStore *DocumentStore) snapshot(collection string) (store.Snapshot, error) {
	documents := make([]Document, 0)
	ctx, cancel := context.WithTimeout(context.Background(), documentStore.queryTimeout)
	defer cancel()
	err := documentStore.db.WithContext(ctx).
		Where("collection = ?", documentStore.path(collection)).
		Order("created_at asc").
		Order("id asc").
		Find(&documents).Error
	if err != nil {
		return store.Snapshot{}, err
	}

	records := make([]record.Record, 0, len(documents))
	for _, document := range documents {
		fields := make(record.Fields)
		if err := json.Unmarshal([]byte(document.Fields), &fields); err != nil {
			documentStore.logger.WarnF("Skipping malformed document %s in %s: %v", document.DocId, collection, err)
			continue
		}
		records = append(records, record.Record{
			ID:        document.DocId,
			Fields:    fields,
			Timestamp: document.Stamped,
			CreatedAt: document.CreatedAt,
			UpdatedBy: document.UpdatedBy,
		})
	}
	return store.Snapshot{Collection: collection, Records: records}, nil
}

// broadcast rebuilds the collection snapshot and hands it to every
// local subscriber, then tells other instances to do the same. The
// version is taken before the rebuild goroutine starts, so a rebuild
// that read the collection before a later mutation committed cannot
// overwrite that mutation's snapshot.
func (documentStore *DocumentStore) broadcast(collection string) {
	version := documentStore.sequencer.begin(collection)
	go func() {
		snapshot, err := documentStore.snapshot(collection)
		if err != nil {
			documentStore.logger.ErrorF("Snapshot rebuild for %s failed: %v", collection, err)
			return
		}
		delivered := documentStore.sequencer.deliver(collection, version, func() {
			documentStore.hub.publish(snapshot)
		})
		if !delivered {
			// A newer snapshot already went out; the newer rebuild
			// covers the relay ping as well.
			return
		}
		if documentStore.relay != nil {
			if err := documentStore.relay.Publish(collection); err != nil {
				documentStore.logger.WarnF("Change relay publish for %s failed: %v", collection, err)
			}
		}
	}()
}

// HandleRemoteChange re-delivers a collection after another instance
// reported a mutation. No relay republish, the event came from there.
func (documentStore *DocumentStore) HandleRemoteChange(collection string) {
	version := documentStore.sequencer.begin(collection)
	snapshot, err := documentStore.snapshot(collection)
	if err != nil {
		documentStore.logger.ErrorF("Snapshot rebuild for remote change of %s failed: %v", collection, err)
		return
	}
	documentStore.sequencer.deliver(collection, version, func() {
		documentStore.hub.publish(snapshot)
	})
}

func (documentStore *DocumentStore) Subscribe(collection string, fn store.SnapshotFunc) (store.Subscription, error) {
	if _, ok := record.KindByCollection(collection); !ok {
		return nil, store.ErrUnknownKind
	}
	snapshot, err := documentStore.snapshot(collection)
	if err != nil {
		return nil, err
	}
	subscription := documentStore.hub.subscribe(collection, fn)
	storeSubscribers.WithLabelValues(collection).Inc()
	fn(snapshot)
	return &countedSubscription{collection: collection, inner: subscription}, nil
}

type countedSubscription struct {
	collection string
	inner      *hubSubscription
	closed     bool
}

func (s *countedSubscription) Close() {
	s.inner.Close()
	if !s.closed {
		s.closed = true
		storeSubscribers.WithLabelValues(s.collection).Dec()
	}
}

func (documentStore *DocumentStore) Create(ctx context.Context, collection string, fields record.Fields, actor string) (id string, err error) {
	defer func() { countOperation(collection, "create", err) }()

	if _, ok := record.KindByCollection(collection); !ok {
		return "", store.ErrUnknownKind
	}
	encoded, err := json.Marshal(fields)
	if err != nil {
		return "", err
	}

	document := &Document{
		Collection: documentStore.path(collection),
		DocId:      randstr.String(global.DocumentIdLength),
		Fields:     string(encoded),
		Stamped:    time.Now().UTC(),
		UpdatedBy:  actor,
	}

	queryCtx, cancel := context.WithTimeout(ctx, documentStore.queryTimeout)
	defer cancel()
	if err = documentStore.db.WithContext(queryCtx).Create(document).Error; err != nil {
		return "", err
	}
	documentStore.broadcast(collection)
	return document.DocId, nil
}

func (documentStore *DocumentStore) Update(ctx context.Context, collection string, id string, fields record.Fields, actor string) (err error) {
	defer func() { countOperation(collection, "update", err) }()

	if _, ok := record.KindByCollection(collection); !ok {
		return store.ErrUnknownKind
	}
	encoded, err := json.Marshal(fields)
	if err != nil {
		return err
	}

	queryCtx, cancel := context.WithTimeout(ctx, documentStore.queryTimeout)
	defer cancel()
	// Full-field overwrite with a fresh stamp: last write wins, there is
	// no optimistic-concurrency check.
	result := documentStore.db.WithContext(queryCtx).
		Model(&Document{}).
		Where("collection = ? AND doc_id = ?", documentStore.path(collection), id).
		Updates(map[string]interface{}{
			"fields":     string(encoded),
			"stamped":    time.Now().UTC(),
			"updated_by": actor,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return store.ErrRecordNotFound
	}
	documentStore.broadcast(collection)
	return nil
}

func (documentStore *DocumentStore) Delete(ctx context.Context, collection string, id string) (err error) {
	defer func() { countOperation(collection, "delete", err) }()

	if _, ok := record.KindByCollection(collection); !ok {
		return store.ErrUnknownKind
	}
	queryCtx, cancel := context.WithTimeout(ctx, documentStore.queryTimeout)
	defer cancel()
	// Deleting an id that is already gone is not an error, matching the
	// remove-by-identifier semantics of the hosted store.
	err = documentStore.db.WithContext(queryCtx).
		Where("collection = ? AND doc_id = ?", documentStore.path(collection), id).
		Delete(&Document{}).Error
	if err != nil {
		return err
	}
	documentStore.broadcast(collection)
	return nil
}

var _ store.RecordStore = (*DocumentStore)(nil)
