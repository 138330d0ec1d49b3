package queue

import (
	"context"
	"testing"

	intake_errors "form-intake/pkg/errors"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisPublisherPushesInOrder(t *testing.T) {
	mr := miniredis.RunT(t)
	pub, err := NewRedisPublisherFromURL("redis://" + mr.Addr() + "/0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = pub.Close() })

	ctx := context.Background()
	require.NoError(t, pub.Ping(ctx))
	require.NoError(t, pub.Publish(ctx, "form-submission-job", []byte(`{"submission_id":1}`)))
	require.NoError(t, pub.Publish(ctx, "form-submission-job", []byte(`{"submission_id":2}`)))

	items, err := mr.List("form-submission-job")
	require.NoError(t, err)
	assert.Equal(t, []string{`{"submission_id":1}`, `{"submission_id":2}`}, items)
}

func TestRedisPublisherFailure(t *testing.T) {
	pub := NewRedisPublisher(redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", MaxRetries: -1}))
	t.Cleanup(func() { _ = pub.Close() })

	err := pub.Publish(context.Background(), "form-submission-job", []byte("{}"))
	assert.ErrorIs(t, err, intake_errors.ErrPublishFailed)
}

func TestOpenSelectsBroker(t *testing.T) {
	mr := miniredis.RunT(t)

	pub, err := Open("redis://" + mr.Addr())
	require.NoError(t, err)
	assert.IsType(t, &RedisPublisher{}, pub)
	require.NoError(t, pub.Close())

	pub, err = Open("Endpoint=sb://intake.servicebus.windows.net/;SharedAccessKeyName=send;SharedAccessKey=c2VjcmV0")
	require.NoError(t, err)
	assert.IsType(t, &ServiceBusPublisher{}, pub)

	_, err = Open("amqp://localhost")
	assert.ErrorIs(t, err, intake_errors.ErrUnsupportedBackend)

	_, err = Open("redis://:bad url")
	assert.Error(t, err)
}
