// Package store
package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/nats-io/nats.go"
	"github.com/ro-aviation/skyhub/internal/interfaces/config"
	"github.com/ro-aviation/skyhub/internal/interfaces/global"
	"github.com/ro-aviation/skyhub/internal/interfaces/log"
	"github.com/ro-aviation/skyhub/internal/interfaces/record"
	"github.com/thanhpk/randstr"
)

// NatsBridge relays collection-changed events between SkyHub instances
// over one NATS subject per collection. Payload is the publishing
// instance id; a bridge ignores its own events since the local store
// already delivered that snapshot.
type NatsBridge struct {
	logger       log.LoggerInterface
	conn         *nats.Conn
	prefix       string
	instanceId   string
	subscription *nats.Subscription
}

func ConnectNats(logger log.LoggerInterface, natsConfig *config.NatsConfig, documentStore *DocumentStore) (global.Callable, *NatsBridge, error) {
	conn, err := nats.Connect(natsConfig.Url, nats.Name("skyhub"))
	if err != nil {
		return nil, nil, fmt.Errorf("connect to NATS: %w", err)
	}

	bridge := &NatsBridge{
		logger:     logger,
		conn:       conn,
		prefix:     natsConfig.SubjectPrefix,
		instanceId: randstr.Hex(8),
	}

	subscription, err := conn.Subscribe(bridge.prefix+".>", func(msg *nats.Msg) {
		if string(msg.Data) == bridge.instanceId {
			return
		}
		collection := strings.TrimPrefix(msg.Subject, bridge.prefix+".")
		if _, ok := record.KindByCollection(collection); !ok {
			logger.WarnF("Ignoring change event for unknown collection %s", collection)
			return
		}
		documentStore.HandleRemoteChange(collection)
	})
	if err != nil {
		conn.Close()
		return nil, nil, fmt.Errorf("subscribe to NATS subject %s.>: %w", bridge.prefix, err)
	}
	bridge.subscription = subscription

	logger.InfoF("Change relay connected to NATS at %s (instance %s)", natsConfig.Url, bridge.instanceId)
	return &natsShutdownCallback{bridge: bridge}, bridge, nil
}

func (bridge *NatsBridge) Publish(collection string) error {
	return bridge.conn.Publish(fmt.Sprintf("%s.%s", bridge.prefix, collection), []byte(bridge.instanceId))
}

type natsShutdownCallback struct {
	bridge *NatsBridge
}

func (nc *natsShutdownCallback) Invoke(_ context.Context) error {
	if nc.bridge.subscription != nil {
		_ = nc.bridge.subscription.Unsubscribe()
	}
	if err := nc.bridge.conn.Drain(); err != nil {
		nc.bridge.conn.Close()
		return err
	}
	return nil
}
