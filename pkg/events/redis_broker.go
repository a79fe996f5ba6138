package events

import (
	"context"
	"encoding/json"
	"fmt"

	"advisor-api/pkg/logger"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type RedisBroker struct {
	client *redis.Client
	logger *logger.Logger
}

// NewRedisBroker publishes and subscribes over an existing client. The caller
// owns the client.
func NewRedisBroker(client *redis.Client, l *logger.Logger) *RedisBroker {
	if l == nil {
		l = logger.NewNop()
	}
	return &RedisBroker{client: client, logger: l}
}

func (b *RedisBroker) Publish(ctx context.Context, channel string, event Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	return b.client.Publish(ctx, channel, data).Err()
}

// Subscribe blocks until the subscription is confirmed, then delivers
// messages to handler on a background goroutine until ctx is done.
func (b *RedisBroker) Subscribe(ctx context.Context, channel string, handler Handler) error {
	pubsub := b.client.Subscribe(ctx, channel)
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return fmt.Errorf("subscribe %s: %w", channel, err)
	}

	go func() {
		defer pubsub.Close()
		ch := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				var event Event
				if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
					b.logger.ErrorCtx(ctx, "malformed event", zap.String("channel", channel), zap.Error(err))
					continue
				}
				if err := handler(ctx, event); err != nil {
					b.logger.ErrorCtx(ctx, "event handler failed", zap.String("type", event.Type), zap.Error(err))
				}
			}
		}
	}()

	return nil
}
