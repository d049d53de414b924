package event

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"
)

// Listener dispatches consumed events to a handler on its own goroutine
type Listener[T any] struct {
	publisher *Publisher[T]
	handler   func(*Event[T])
	logger    *zap.Logger
	cancel    context.CancelFunc
	done      chan struct{}
	once      sync.Once
}

// NewListener creates a listener; a nil logger discards consume errors
func NewListener[T any](publisher *Publisher[T], handler func(*Event[T]), logger *zap.Logger) *Listener[T] {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Listener[T]{
		publisher: publisher,
		handler:   handler,
		logger:    logger,
		done:      make(chan struct{}),
	}
}

// Start begins consuming until Stop is called or ctx is done
func (l *Listener[T]) Start(ctx context.Context) {
	ctx, l.cancel = context.WithCancel(ctx)
	go func() {
		defer close(l.done)
		for {
			event, err := l.publisher.Consume(ctx)
			if err != nil {
				if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
					return
				}
				l.logger.Warn("failed to consume event", zap.Error(err))
				continue
			}
			if event != nil {
				l.handler(event)
			}
		}
	}()
}

// Stop cancels consumption and waits for the goroutine to exit
func (l *Listener[T]) Stop() {
	l.once.Do(func() {
		if l.cancel == nil {
			close(l.done)
			return
		}
		l.cancel()
	})
	<-l.done
}
