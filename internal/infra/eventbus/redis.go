package eventbus

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"universe-api/internal/pkg/errs"
	"universe-api/internal/usecase/shared"
)

// RedisEventBus publishes domain events on one pub/sub channel. Delivery
// is at-most-once; subscribers that are offline miss the event.
type RedisEventBus struct {
	client  *redis.Client
	channel string
	logger  *slog.Logger
}

func NewRedisEventBus(client *redis.Client, channel string, logger *slog.Logger) *RedisEventBus {
	return &RedisEventBus{client: client, channel: channel, logger: logger}
}

func (b *RedisEventBus) Publish(ctx context.Context, event shared.DomainEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return errs.Wrap(err, "failed to marshal domain event")
	}
	if err := b.client.Publish(ctx, b.channel, data).Err(); err != nil {
		return errs.Wrap(err, "failed to publish domain event")
	}
	return nil
}

// Subscribe delivers every event published on the channel to handler until
// ctx is cancelled. Malformed payloads are logged and skipped.
func (b *RedisEventBus) Subscribe(ctx context.Context, handler func(shared.DomainEvent)) error {
	pubsub := b.client.Subscribe(ctx, b.channel)
	if _, err := pubsub.Receive(ctx); err != nil {
		pubsub.Close()
		return errs.Wrap(err, "failed to subscribe to event channel")
	}

	ch := pubsub.Channel()
	go func() {
		defer pubsub.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				var event shared.DomainEvent
				if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
					b.logger.Warn("dropping malformed domain event", slog.String("error", err.Error()))
					continue
				}
				handler(event)
			}
		}
	}()
	return nil
}

var _ shared.EventBus = (*RedisEventBus)(nil)
