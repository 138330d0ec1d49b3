package queue

import (
	"context"
	"fmt"

	intake_errors "form-intake/pkg/errors"

	"github.com/redis/go-redis/v9"
)

// RedisPublisher treats a Redis list as the queue: producers RPUSH, consumers BLPOP.
type RedisPublisher struct {
	client *redis.Client
}

func NewRedisPublisher(client *redis.Client) *RedisPublisher {
	return &RedisPublisher{client: client}
}

func NewRedisPublisherFromURL(rawURL string) (*RedisPublisher, error) {
	opts, err := redis.ParseURL(rawURL)
	if err != nil {
		return nil, fmt.Errorf("redis url: %w", err)
	}
	return NewRedisPublisher(redis.NewClient(opts)), nil
}

func (p *RedisPublisher) Publish(ctx context.Context, queueName string, payload []byte) error {
	if err := p.client.RPush(ctx, queueName, payload).Err(); err != nil {
		return fmt.Errorf("%w: %w", intake_errors.ErrPublishFailed, err)
	}
	return nil
}

// Ping checks the broker is reachable.
func (p *RedisPublisher) Ping(ctx context.Context) error {
	return p.client.Ping(ctx).Err()
}

func (p *RedisPublisher) Close() error {
	return p.client.Close()
}
