package queue

import (
	"context"
	"fmt"
	"strings"

	intake_errors "form-intake/pkg/errors"
)

// Publisher hands one message to a named queue. A nil error means the broker
// accepted the message, not that anything consumed it.
type Publisher interface {
	Publish(ctx context.Context, queueName string, payload []byte) error
	Close() error
}

// Open picks a broker from a queue connection string: redis:// or rediss:// URLs
// for Redis lists, Endpoint=sb://... for Azure Service Bus.
func Open(connectionString string) (Publisher, error) {
	cs := strings.TrimSpace(connectionString)
	switch {
	case strings.HasPrefix(cs, "redis://"), strings.HasPrefix(cs, "rediss://"):
		return NewRedisPublisherFromURL(cs)
	case strings.Contains(strings.ToLower(cs), "endpoint=sb://"):
		return NewServiceBusPublisher(cs)
	default:
		return nil, fmt.Errorf("%w: queue connection string names no known broker", intake_errors.ErrUnsupportedBackend)
	}
}
