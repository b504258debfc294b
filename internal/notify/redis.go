package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisNotifier publishes events as JSON on a Redis pub/sub channel.
type RedisNotifier struct {
	rc      redis.UniversalClient
	channel string
}

func NewRedisNotifier(rc redis.UniversalClient, channel string) *RedisNotifier {
	return &RedisNotifier{rc: rc, channel: channel}
}

func (n *RedisNotifier) Notify(ctx context.Context, title, description string, data any) error {
	if n.rc == nil {
		return errors.New("redis client is nil, cannot publish notification")
	}
	payload, err := json.Marshal(newEvent(title, description, data))
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}
	if err := n.rc.Publish(ctx, n.channel, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish notification: %w", err)
	}
	return nil
}

var _ Notifier = (*RedisNotifier)(nil)
