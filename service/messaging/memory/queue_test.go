package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testPayload struct {
	ID      string
	Verdict string
}

func TestQueue(t *testing.T) {
	queue := NewQueue[testPayload](DefaultConfig())
	ctx := context.Background()
	payload := testPayload{ID: "evt-1", Verdict: "block"}

	require.NoError(t, queue.Publish(ctx, &payload))
	assert.Equal(t, 1, queue.Size())

	message, err := queue.Consume(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, queue.Size())
	assert.Equal(t, payload, *message.T())

	assert.NoError(t, message.Ack())
	assert.Error(t, message.Ack())
	assert.Error(t, message.Nack(nil))
}

func TestQueueRetries(t *testing.T) {
	config := DefaultConfig()
	config.MaxRetries = 1
	config.RetryDelay = 5 * time.Millisecond
	queue := NewQueue[testPayload](config)
	ctx := context.Background()
	require.NoError(t, queue.Publish(ctx, &testPayload{ID: "retry"}))

	message, err := queue.Consume(ctx)
	require.NoError(t, err)
	require.NoError(t, message.Nack(nil))

	timeoutCtx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()
	message, err = queue.Consume(timeoutCtx)
	require.NoError(t, err)
	assert.Equal(t, "retry", message.T().ID)
	require.NoError(t, message.Nack(nil))

	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, 0, queue.Size())
}

func TestQueueDropOnFull(t *testing.T) {
	queue := NewQueue[testPayload](Config{QueueBuffer: 1, DropOnFull: true})
	ctx := context.Background()
	assert.NoError(t, queue.Publish(ctx, &testPayload{ID: "1"}))
	assert.ErrorIs(t, queue.Publish(ctx, &testPayload{ID: "2"}), ErrQueueFull)
	assert.Equal(t, 1, queue.Size())
}

func TestQueueContextCancellation(t *testing.T) {
	queue := NewQueue[testPayload](DefaultConfig())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.Error(t, queue.Publish(ctx, &testPayload{ID: "x"}))

	timeoutCtx, cancelTimeout := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancelTimeout()
	_, err := queue.Consume(timeoutCtx)
	assert.Error(t, err)

	assert.NoError(t, queue.Publish(context.Background(), &testPayload{ID: "x"}))
	message, err := queue.Consume(context.Background())
	assert.NoError(t, err)
	assert.NotNil(t, message)
}
