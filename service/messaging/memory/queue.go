package memory

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/viant/clawguard/internal/idgen"
	"github.com/viant/clawguard/service/messaging"
)

// ErrQueueFull is returned by Publish when the buffer is full and the queue
// is configured to drop instead of block.
var ErrQueueFull = errors.New("memory queue: full")

// Config for memory queue implementation
type Config struct {
	MaxRetries  int
	RetryDelay  time.Duration
	QueueBuffer int
	// DropOnFull makes Publish fail fast instead of waiting for room.
	DropOnFull bool
}

// DefaultConfig returns a standard configuration for memory queue
func DefaultConfig() Config {
	return Config{
		MaxRetries:  3,
		RetryDelay:  100 * time.Millisecond,
		QueueBuffer: 100,
	}
}

// Message implements messaging.Message for the in-memory queue
type Message[T any] struct {
	id         string
	payload    T
	queue      *Queue[T]
	retryCount int
	mu         sync.Mutex
	processed  bool
}

// ID returns the message identifier
func (m *Message[T]) ID() string { return m.id }

// T returns the message payload
func (m *Message[T]) T() *T {
	return &m.payload
}

// Ack acknowledges the message as processed successfully
func (m *Message[T]) Ack() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.processed {
		return errors.New("message already processed")
	}
	m.processed = true
	return nil
}

// Nack marks the message as failed; it is requeued until MaxRetries is
// exceeded, after which it is dropped.
func (m *Message[T]) Nack(_ error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.processed {
		return errors.New("message already processed")
	}
	m.processed = true
	if m.retryCount >= m.queue.config.MaxRetries {
		return nil
	}
	retry := &Message[T]{id: m.id, payload: m.payload, queue: m.queue, retryCount: m.retryCount + 1}
	time.AfterFunc(m.queue.config.RetryDelay, func() {
		select {
		case m.queue.messages <- retry:
		default:
		}
	})
	return nil
}

// Queue implements an in-memory messaging.Queue
type Queue[T any] struct {
	messages chan *Message[T]
	config   Config
}

// NewQueue creates a new in-memory queue
func NewQueue[T any](config Config) *Queue[T] {
	if config.QueueBuffer <= 0 {
		config.QueueBuffer = DefaultConfig().QueueBuffer
	}
	return &Queue[T]{
		messages: make(chan *Message[T], config.QueueBuffer),
		config:   config,
	}
}

// Publish adds a new item to the queue
func (q *Queue[T]) Publish(ctx context.Context, t *T) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	msg := &Message[T]{id: idgen.New(), payload: *t, queue: q}
	if q.config.DropOnFull {
		select {
		case q.messages <- msg:
			return nil
		default:
			return ErrQueueFull
		}
	}
	select {
	case q.messages <- msg:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Consume retrieves a single item from the queue
func (q *Queue[T]) Consume(ctx context.Context) (messaging.Message[T], error) {
	select {
	case msg := <-q.messages:
		return msg, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Size returns the current number of messages in the queue
func (q *Queue[T]) Size() int {
	return len(q.messages)
}

// ensure Queue implements messaging.Queue interface
var _ messaging.Queue[any] = (*Queue[any])(nil)
