package events

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/SIS-2025/academic-records-service/internal/repositories"
)

const (
	defaultRelayInterval  = 5 * time.Second
	defaultRelayBatchSize = 100
)

// OutboxRelay drains the users-schema sync outbox and republishes the
// entries through the event publisher. Rows are only marked published
// after the publisher accepts them, so a crash between publish and mark
// results in at-least-once delivery.
type OutboxRelay struct {
	repo      repositories.UserRepository
	publisher EventPublisher
	logger    *slog.Logger
	interval  time.Duration
	batchSize int
	done      chan struct{}
}

// OutboxRelayConfig holds configuration for the relay worker.
type OutboxRelayConfig struct {
	Interval  time.Duration
	BatchSize int
}

func NewOutboxRelay(repo repositories.UserRepository, publisher EventPublisher, logger *slog.Logger, config OutboxRelayConfig) *OutboxRelay {
	if config.Interval <= 0 {
		config.Interval = defaultRelayInterval
	}
	if config.BatchSize <= 0 {
		config.BatchSize = defaultRelayBatchSize
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &OutboxRelay{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
		interval:  config.Interval,
		batchSize: config.BatchSize,
		done:      make(chan struct{}),
	}
}

// Start runs the relay loop until ctx is cancelled.
func (r *OutboxRelay) Start(ctx context.Context) {
	defer close(r.done)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := r.DrainOnce(ctx); err != nil {
				r.logger.Warn("outbox relay pass failed", "error", err)
			}
		}
	}
}

// Wait blocks until the relay loop has exited.
func (r *OutboxRelay) Wait() {
	<-r.done
}

// DrainOnce publishes one batch of pending outbox entries. Entries whose
// payload cannot be decoded are marked published anyway so a poison row
// cannot wedge the relay.
func (r *OutboxRelay) DrainOnce(ctx context.Context) error {
	entries, err := r.repo.PendingOutbox(ctx, r.batchSize)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		return nil
	}

	published := make([]uint, 0, len(entries))
	for _, entry := range entries {
		var data json.RawMessage
		if err := json.Unmarshal(entry.Payload, &data); err != nil {
			r.logger.Error("dropping malformed outbox entry",
				"outbox_id", entry.ID,
				"event_type", entry.EventType,
				"error", err)
			published = append(published, entry.ID)
			continue
		}

		event := NewSyncEvent(EventType(entry.EventType), data)
		if err := r.publisher.PublishSyncEvent(ctx, event); err != nil {
			r.logger.Warn("failed to publish outbox entry, will retry",
				"outbox_id", entry.ID,
				"event_type", entry.EventType,
				"error", err)
			break
		}
		published = append(published, entry.ID)
	}

	if len(published) == 0 {
		return nil
	}
	return r.repo.MarkOutboxPublished(ctx, published)
}
