package repository

import (
	"context"

	"github.com/estate-backoffice/internal/domain"
)

// StreamRepository is the Redis Streams event bus between the API and the
// search index worker.
type StreamRepository interface {
	Publish(ctx context.Context, stream string, data []byte) error
	CreateConsumerGroup(ctx context.Context, stream, group string) error
	ConsumeBatch(ctx context.Context, stream, group, consumer string, count int) ([]domain.StreamMessage, error)
	AckMessage(ctx context.Context, stream, group, messageID string) error
}
