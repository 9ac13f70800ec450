package producer

import (
	"context"
	"time"

	"github.com/viorizz/swom/internal/messaging/kafka"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const pumpBatchSize = 50

// ProcessOutboxEvents polls the outbox and pushes due events to kafka until
// the context is cancelled. Failures are marked on the row and picked up on
// a later pass; nothing is dropped here.
func ProcessOutboxEvents(
	ctx context.Context,
	repo kafka.OutboxRepository,
	writer *kafkago.Writer,
	logger *zap.Logger,
	pollInterval time.Duration,
) {
	if pollInterval <= 0 {
		pollInterval = 3 * time.Second
	}

	log := logger.Named("kafka.producer.worker")
	log.Info("outbox worker started", zap.Duration("poll_interval", pollInterval))

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info("outbox worker stopped")
			return
		case <-ticker.C:
			drainOutbox(ctx, repo, writer, log)
		}
	}
}

// drainOutbox keeps pulling batches until the backlog is empty, so a burst
// of writes is not throttled to one batch per tick.
func drainOutbox(
	ctx context.Context,
	repo kafka.OutboxRepository,
	writer *kafkago.Writer,
	log *zap.Logger,
) {
	for {
		events, err := repo.ListPending(ctx, pumpBatchSize)
		if err != nil {
			log.Error("list pending outbox events failed", zap.Error(err))
			return
		}
		if len(events) == 0 {
			return
		}

		var sent, failed int
		for _, event := range events {
			if err := publishEvent(ctx, writer, event); err != nil {
				failed++
				log.Warn("publish outbox event failed",
					zap.String("outbox_id", event.ID),
					zap.String("event_type", event.EventType),
					zap.String("topic", event.Topic),
					zap.Error(err),
				)
				_ = repo.MarkFailed(ctx, event.ID, err.Error())
				continue
			}

			if err := repo.MarkSent(ctx, event.ID); err != nil {
				failed++
				log.Error("mark outbox sent failed",
					zap.String("outbox_id", event.ID),
					zap.Error(err),
				)
				continue
			}
			sent++
		}

		log.Info("outbox batch processed", zap.Int("sent", sent), zap.Int("failed", failed))

		// A short batch means the backlog is drained; failures wait for
		// their backoff window instead of being retried in a tight loop.
		if len(events) < pumpBatchSize || failed > 0 {
			return
		}
	}
}
