package event

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/clawguard/service/messaging/memory"
)

type decision struct {
	Allow  bool
	Reason string
}

func TestListener(t *testing.T) {
	queue := memory.NewQueue[Event[decision]](memory.DefaultConfig())
	publisher := NewPublisher[decision](queue)
	received := make(chan *Event[decision], 2)
	listener := NewListener[decision](publisher, func(e *Event[decision]) { received <- e }, nil)
	listener.Start(context.Background())

	ctx := context.Background()
	require.NoError(t, publisher.Publish(ctx, NewEvent(&Context{RequestID: "r1", Tool: "exec", EventType: TypeDecision}, decision{Reason: "blocked"})))
	require.NoError(t, publisher.Publish(ctx, NewEvent(&Context{RequestID: "r2", Tool: "web_fetch", EventType: TypeDecision}, decision{Allow: true})))

	for _, expected := range []string{"r1", "r2"} {
		select {
		case e := <-received:
			assert.Equal(t, expected, e.Context.RequestID)
			assert.False(t, e.CreatedAt.IsZero())
		case <-time.After(time.Second):
			t.Fatal("event not delivered")
		}
	}
	listener.Stop()
	listener.Stop()
}

func TestListener_StopBeforeStart(t *testing.T) {
	queue := memory.NewQueue[Event[decision]](memory.DefaultConfig())
	listener := NewListener[decision](NewPublisher[decision](queue), func(*Event[decision]) {}, nil)
	assert.NotPanics(t, listener.Stop)
}
