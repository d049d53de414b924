package messaging

import (
	"context"
)

// Vendor represents the name of a messaging vendor
type Vendor string

const (
	VendorMemory  Vendor = "memory"
	VendorDiscord Vendor = "discord"
)

// Reaction is the state of a single reaction on a message.
type Reaction struct {
	Symbol string `json:"symbol"`
	Users  int    `json:"users"` // humans who reacted, the sender excluded
}

// Messenger is the messaging capability the approval workflow talks to.
// Every method is potentially failing I/O.
type Messenger interface {
	// Send posts text to a channel and returns the message identifier.
	Send(ctx context.Context, channelID, text string) (string, error)

	// React attaches a reaction affordance to a sent message.
	React(ctx context.Context, messageID, symbol string) error

	// Reactions lists the current reactions of a sent message.
	Reactions(ctx context.Context, messageID string) ([]Reaction, error)
}

// Releaser is implemented by messengers that keep per-message state; the
// approval workflow releases every message it sent once it resolves.
type Releaser interface {
	Release(messageID string)
}

// Queue represents an abstract message queue for any payload type
type Queue[T any] interface {
	// Publish adds a new message with payload to the queue
	Publish(ctx context.Context, t *T) error

	// Consume retrieves a single message from the queue
	Consume(ctx context.Context) (Message[T], error)
}

// Message represents a message retrieved from a queue
type Message[T any] interface {
	// T returns the payload of this message
	T() *T

	// Ack acknowledges successful processing of this message
	Ack() error

	// Nack indicates failure in processing this message
	Nack(err error) error
}

// Count returns the user count for symbol, or 0 when it is absent.
func Count(reactions []Reaction, symbol string) int {
	for _, r := range reactions {
		if r.Symbol == symbol {
			return r.Users
		}
	}
	return 0
}
