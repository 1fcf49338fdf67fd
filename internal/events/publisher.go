package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"feedbridge/internal/config"
	"feedbridge/internal/logger"
	"feedbridge/internal/syncer"

	"github.com/segmentio/kafka-go"
)

const TypeSyncRequested = "sync.requested"

// Event is the wire shape for asynchronous sync requests.
type Event struct {
	Type      string         `json:"type"`
	Request   syncer.Request `json:"request"`
	Timestamp time.Time      `json:"timestamp"`
}

type Publisher struct {
	writer *kafka.Writer
	logger *logger.Logger
}

func NewPublisher(cfg *config.Config, logger *logger.Logger) *Publisher {
	writer := &kafka.Writer{
		Addr:     kafka.TCP(strings.Split(cfg.KafkaBrokers, ",")...),
		Topic:    cfg.SyncTopic,
		Balancer: &kafka.LeastBytes{},
	}

	return &Publisher{
		writer: writer,
		logger: logger,
	}
}

// PublishSyncRequest enqueues a sync to be run by a worker. Messages are
// keyed by tenant id so one tenant's requests stay ordered.
func (p *Publisher) PublishSyncRequest(req syncer.Request) error {
	event := Event{
		Type:      TypeSyncRequested,
		Request:   req,
		Timestamp: time.Now().UTC(),
	}

	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	err = p.writer.WriteMessages(context.Background(), kafka.Message{
		Key:   []byte(req.TenantID),
		Value: value,
	})
	if err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	p.logger.Debug("Published %s for tenant %s", event.Type, req.TenantID)
	return nil
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}
