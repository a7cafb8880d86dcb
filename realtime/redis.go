package realtime

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"shopspotlight/utils"
)

const channelPrefix = "changes:"

// RedisHub implements Hub on a Redis pub/sub channel per collection, so every
// running instance sees writes issued by any of them.
type RedisHub struct {
	client *redis.Client
}

// NewRedisHub creates a Hub backed by the given Redis client.
func NewRedisHub(client *redis.Client) *RedisHub {
	return &RedisHub{client: client}
}

func (h *RedisHub) Publish(ctx context.Context, ev Event) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("failed to encode change event: %w", err)
	}
	if err := h.client.Publish(ctx, channelPrefix+ev.Collection, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish change event for %s: %w", ev.Collection, err)
	}
	return nil
}

func (h *RedisHub) Subscribe(ctx context.Context, collection string) (<-chan Event, func(), error) {
	sub := h.client.Subscribe(ctx, channelPrefix+collection)
	// Force the subscription to be established before we hand the channel out.
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, nil, fmt.Errorf("failed to subscribe to %s changes: %w", collection, err)
	}

	out := make(chan Event, 16)
	go func() {
		defer close(out)
		logger := utils.GetLogger()
		for msg := range sub.Channel() {
			var ev Event
			if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
				logger.Warn("Dropping malformed change event",
					zap.String("collection", collection), zap.Error(err))
				continue
			}
			out <- ev
		}
	}()

	cancel := func() { _ = sub.Close() }
	return out, cancel, nil
}
