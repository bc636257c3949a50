// Package listener consumes catalog and store change events. The feed is the
// service's watch primitive: delivery is eventually consistent and no
// ordering is assumed, so the only safe reaction is cache invalidation.
package listener

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/dailycount/stockledger-service/pkg/broker"
	"github.com/dailycount/stockledger-service/pkg/logger"
)

const (
	EventCatalogUpdated = "CatalogUpdated"
	EventStoreUpdated   = "StoreUpdated"
)

type ChangeEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	Timestamp time.Time `json:"timestamp"`
}

// Invalidator drops a cached read model so the next access reloads it.
type Invalidator interface {
	Invalidate(ctx context.Context) error
}

type ChangeListener struct {
	consumer *broker.KafkaConsumer
	catalog  Invalidator
	stores   Invalidator
	logger   logger.ZapLogger
}

func NewChangeListener(consumer *broker.KafkaConsumer, catalog, stores Invalidator, log logger.ZapLogger) *ChangeListener {
	return &ChangeListener{
		consumer: consumer,
		catalog:  catalog,
		stores:   stores,
		logger:   log,
	}
}

func (l *ChangeListener) Start(ctx context.Context) {
	l.logger.Info("starting catalog change listener")
	for {
		select {
		case <-ctx.Done():
			l.logger.Info("stopping catalog change listener")
			return
		default:
			msg, err := l.consumer.ReadMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				l.logger.Error("failed to read change event", zap.Error(err))
				time.Sleep(1 * time.Second)
				continue
			}
			l.processMessage(ctx, msg.Value)
		}
	}
}

func (l *ChangeListener) processMessage(ctx context.Context, value []byte) {
	var event ChangeEvent
	if err := json.Unmarshal(value, &event); err != nil {
		l.logger.Error("failed to unmarshal change event", zap.Error(err))
		return
	}

	switch event.EventType {
	case EventCatalogUpdated:
		if err := l.catalog.Invalidate(ctx); err != nil {
			l.logger.Error("catalog invalidation failed", zap.Error(err))
			return
		}
	case EventStoreUpdated:
		if err := l.stores.Invalidate(ctx); err != nil {
			l.logger.Error("store cache invalidation failed", zap.Error(err))
			return
		}
	default:
		return
	}

	l.logger.Info("processed change event",
		zap.String("event_id", event.EventID),
		zap.String("event_type", event.EventType))
}
