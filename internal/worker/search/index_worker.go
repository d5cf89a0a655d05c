package search

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/estate-backoffice/internal/domain"
	"github.com/estate-backoffice/internal/domain/repository"
	"github.com/estate-backoffice/internal/worker"
)

// EventHandler applies one index event. Implemented by the indexing use case.
type EventHandler interface {
	HandleEvent(ctx context.Context, event domain.ListingIndexEvent) error
}

const (
	maxBatchSize    = 20
	emptyQueueSleep = 100 * time.Millisecond
	errorSleep      = time.Second
)

// IndexWorker drains the listing index stream and applies each event to the
// search collection. Failed events are re-queued with an incremented attempt
// counter until maxRetries, then dropped with an error log.
type IndexWorker struct {
	*worker.BaseWorker
	streamRepo   repository.StreamRepository
	handler      EventHandler
	consumerName string
	maxRetries   int
}

func NewIndexWorker(
	streamRepo repository.StreamRepository,
	handler EventHandler,
	consumerGroup string,
	maxRetries int,
	logger *zap.Logger,
) *IndexWorker {
	hostname, _ := os.Hostname()
	consumerName := fmt.Sprintf("%s-%d", hostname, os.Getpid())

	return &IndexWorker{
		BaseWorker:   worker.NewBaseWorker("search-index", consumerGroup, logger),
		streamRepo:   streamRepo,
		handler:      handler,
		consumerName: consumerName,
		maxRetries:   maxRetries,
	}
}

func (w *IndexWorker) Start(ctx context.Context) error {
	logger := w.Logger()
	logger.Info("Starting search index worker",
		zap.String("consumer_group", w.ConsumerGroup()),
		zap.String("consumer_name", w.consumerName),
		zap.Int("max_batch_size", maxBatchSize))

	if err := w.streamRepo.CreateConsumerGroup(ctx, domain.StreamListingIndex, w.ConsumerGroup()); err != nil {
		logger.Error("Failed to create consumer group", zap.Error(err))
		return fmt.Errorf("failed to create consumer group: %w", err)
	}

	for {
		select {
		case <-w.StopChan():
			logger.Info("Worker stopped")
			return nil

		case <-ctx.Done():
			logger.Info("Context cancelled")
			return ctx.Err()

		default:
			processed, err := w.processBatch(ctx)
			if err != nil {
				logger.Error("Failed to process batch", zap.Error(err))
				time.Sleep(errorSleep)
				continue
			}
			if processed == 0 {
				time.Sleep(emptyQueueSleep)
			}
		}
	}
}

// processBatch reads and handles up to maxBatchSize messages. Returns the
// number of messages consumed from the stream.
func (w *IndexWorker) processBatch(ctx context.Context) (int, error) {
	logger := w.Logger()

	messages, err := w.streamRepo.ConsumeBatch(
		ctx,
		domain.StreamListingIndex,
		w.ConsumerGroup(),
		w.consumerName,
		maxBatchSize,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to consume batch: %w", err)
	}
	if len(messages) == 0 {
		return 0, nil
	}

	logger.Debug("Processing batch", zap.Int("message_count", len(messages)))

	for _, msg := range messages {
		var event domain.ListingIndexEvent
		if err := json.Unmarshal([]byte(msg.Data), &event); err != nil {
			// A malformed entry can never succeed; ack it so the group does
			// not get stuck.
			logger.Warn("Failed to parse message, skipping",
				zap.String("message_id", msg.ID),
				zap.Error(err))
			w.ack(ctx, msg.ID)
			continue
		}

		if err := w.handler.HandleEvent(ctx, event); err != nil {
			w.retryOrDrop(ctx, event, err)
		}
		w.ack(ctx, msg.ID)
	}

	return len(messages), nil
}

// retryOrDrop re-queues the event with a bumped attempt counter, or gives up
// after maxRetries.
func (w *IndexWorker) retryOrDrop(ctx context.Context, event domain.ListingIndexEvent, cause error) {
	logger := w.Logger()

	if event.Attempt+1 >= w.maxRetries {
		logger.Error("Dropping index event after retries",
			zap.String("kind", string(event.Kind)),
			zap.Int64("listing_id", event.ID),
			zap.String("action", string(event.Action)),
			zap.Int("attempts", event.Attempt+1),
			zap.Error(cause))
		return
	}

	event.Attempt++
	data, err := json.Marshal(event)
	if err != nil {
		logger.Error("Failed to marshal retry event", zap.Error(err))
		return
	}
	if err := w.streamRepo.Publish(ctx, domain.StreamListingIndex, data); err != nil {
		logger.Error("Failed to re-queue index event",
			zap.Int64("listing_id", event.ID),
			zap.Error(err))
		return
	}

	logger.Warn("Index event re-queued",
		zap.Int64("listing_id", event.ID),
		zap.Int("attempt", event.Attempt),
		zap.Error(cause))
}

func (w *IndexWorker) ack(ctx context.Context, messageID string) {
	if err := w.streamRepo.AckMessage(ctx, domain.StreamListingIndex, w.ConsumerGroup(), messageID); err != nil {
		w.Logger().Error("Failed to ack message",
			zap.String("message_id", messageID),
			zap.Error(err))
	}
}
