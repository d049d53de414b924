package event

import (
	"time"

	"github.com/viant/clawguard/internal/clock"
)

// Event types
const (
	TypeDecision = "decision"
	TypeApproval = "approval"
)

// Context identifies the action request an event belongs to
type Context struct {
	RequestID   string `json:"requestID"`
	Tool        string `json:"tool"`
	EventType   string `json:"eventType"`
	TimeTakenMs int    `json:"timeTakenMs"`
}

// Event wraps a typed payload with its context
type Event[T any] struct {
	Context   *Context               `json:"context"`
	CreatedAt time.Time              `json:"createdAt"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Data      T                      `json:"data"`
}

// NewEvent creates an event
func NewEvent[T any](context *Context, data T) *Event[T] {
	return &Event[T]{
		Context:   context,
		CreatedAt: clock.Now(),
		Metadata:  make(map[string]interface{}),
		Data:      data,
	}
}
