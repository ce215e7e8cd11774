package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mapgrid/tilefetch/internal/source"
	"github.com/mapgrid/tilefetch/pkg/logger"
)

// RedisBus publishes tile lifecycle events to a Redis pub/sub channel
// so observers outside the process can follow fetch activity.
type RedisBus struct {
	client  *redis.Client
	channel string
	log     logger.Logger
}

var _ source.Notifier = (*RedisBus)(nil)

func NewRedisBus(addr, password string, db int, channel string, l logger.Logger) (*RedisBus, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisBus{
		client:  client,
		channel: channel,
		log:     l,
	}, nil
}

func (b *RedisBus) Publish(event string, tileKey uint64) {
	go func() {
		payload := fmt.Sprintf("%s %d", event, tileKey)
		if err := b.client.Publish(context.Background(), b.channel, payload).Err(); err != nil {
			b.log.Warn("failed to publish tile event", "event", event, "error", err)
		}
	}()
}

func (b *RedisBus) Close() error {
	return b.client.Close()
}
