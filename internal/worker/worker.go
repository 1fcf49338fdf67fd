package worker

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"feedbridge/internal/config"
	"feedbridge/internal/events"
	"feedbridge/internal/logger"
	"feedbridge/internal/syncer"

	"github.com/segmentio/kafka-go"
)

// Worker consumes sync requests from kafka and drives the orchestrator.
type Worker struct {
	config       *config.Config
	logger       *logger.Logger
	reader       *kafka.Reader
	orchestrator *syncer.Orchestrator
	done         chan struct{}
}

func New(cfg *config.Config, logger *logger.Logger, orchestrator *syncer.Orchestrator) *Worker {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        strings.Split(cfg.KafkaBrokers, ","),
		GroupID:        cfg.WorkerGroupID,
		Topic:          cfg.SyncTopic,
		MinBytes:       10e3, // 10KB
		MaxBytes:       10e6, // 10MB
		CommitInterval: time.Second,
	})

	return &Worker{
		config:       cfg,
		logger:       logger,
		reader:       reader,
		orchestrator: orchestrator,
		done:         make(chan struct{}),
	}
}

func (w *Worker) Start() {
	w.logger.Info("Worker started, listening for sync requests...")

	for {
		select {
		case <-w.done:
			return
		default:
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		message, err := w.reader.ReadMessage(ctx)
		cancel()

		if err != nil {
			// Stop closes the reader, which surfaces as a read error.
			select {
			case <-w.done:
				return
			default:
			}

			if err == context.DeadlineExceeded {
				continue
			}
			w.logger.Error("Failed to read message: %v", err)
			continue
		}

		var event events.Event
		if err := json.Unmarshal(message.Value, &event); err != nil {
			w.logger.Error("Failed to parse event: %v", err)
			continue
		}

		if event.Type != events.TypeSyncRequested {
			w.logger.Debug("Skipping event type %s", event.Type)
			continue
		}

		result := w.orchestrator.Run(event.Request)
		if result.State == syncer.StateFailed {
			w.logger.Error("Sync for tenant %s failed: %v", event.Request.TenantID, result.Err)
			continue
		}

		w.logger.Info("Sync for tenant %s finished: %d line items, tracking id %q",
			event.Request.TenantID, len(result.LineItems), result.TrackingID)
	}
}

func (w *Worker) Stop() {
	w.logger.Info("Stopping worker...")
	close(w.done)
	w.reader.Close()
}
