package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/viant/clawguard/internal/idgen"
	"github.com/viant/clawguard/service/messaging"
)

// Sent is a message posted through the in-memory messenger.
type Sent struct {
	ID        string
	ChannelID string
	Text      string
	Offered   []string            // reactions added by the sender
	Reactions map[string][]string // symbol -> reacting users
}

// Option customises the in-memory messenger
type Option func(m *Messenger)

// WithSendError makes every Send fail with err.
func WithSendError(err error) Option {
	return func(m *Messenger) { m.sendErr = err }
}

// WithReactError makes every React fail with err.
func WithReactError(err error) Option {
	return func(m *Messenger) { m.reactErr = err }
}

// WithReactionsError makes every Reactions call fail with err.
func WithReactionsError(err error) Option {
	return func(m *Messenger) { m.reactionsErr = err }
}

// WithOnSend registers a hook invoked after each successful Send, outside
// the messenger lock. Tests use it to simulate a human reacting.
func WithOnSend(fn func(m *Messenger, sent Sent)) Option {
	return func(m *Messenger) { m.onSend = fn }
}

// Messenger is an in-memory messaging.Messenger. Humans are simulated with
// AddReaction.
type Messenger struct {
	mu           sync.Mutex
	messages     map[string]*Sent
	order        []string
	sendErr      error
	reactErr     error
	reactionsErr error
	onSend       func(m *Messenger, sent Sent)
}

// New creates an in-memory messenger
func New(options ...Option) *Messenger {
	ret := &Messenger{messages: make(map[string]*Sent)}
	for _, option := range options {
		option(ret)
	}
	return ret
}

// Send stores the message and returns its generated identifier
func (m *Messenger) Send(ctx context.Context, channelID, text string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if m.sendErr != nil {
		return "", m.sendErr
	}
	sent := &Sent{ID: idgen.New(), ChannelID: channelID, Text: text, Reactions: map[string][]string{}}
	m.mu.Lock()
	m.messages[sent.ID] = sent
	m.order = append(m.order, sent.ID)
	snapshot := sent.clone()
	m.mu.Unlock()
	if m.onSend != nil {
		m.onSend(m, snapshot)
	}
	return sent.ID, nil
}

// React records a sender reaction affordance
func (m *Messenger) React(ctx context.Context, messageID, symbol string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if m.reactErr != nil {
		return m.reactErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	sent, ok := m.messages[messageID]
	if !ok {
		return fmt.Errorf("message %s not found", messageID)
	}
	sent.Offered = append(sent.Offered, symbol)
	return nil
}

// Reactions returns offered reactions first, then any other symbol humans used
func (m *Messenger) Reactions(ctx context.Context, messageID string) ([]messaging.Reaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if m.reactionsErr != nil {
		return nil, m.reactionsErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	sent, ok := m.messages[messageID]
	if !ok {
		return nil, fmt.Errorf("message %s not found", messageID)
	}
	seen := map[string]bool{}
	var ret []messaging.Reaction
	for _, symbol := range sent.Offered {
		if seen[symbol] {
			continue
		}
		seen[symbol] = true
		ret = append(ret, messaging.Reaction{Symbol: symbol, Users: len(sent.Reactions[symbol])})
	}
	for symbol, users := range sent.Reactions {
		if seen[symbol] {
			continue
		}
		ret = append(ret, messaging.Reaction{Symbol: symbol, Users: len(users)})
	}
	return ret, nil
}

// AddReaction simulates user reacting with symbol on a message
func (m *Messenger) AddReaction(messageID, symbol, user string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	sent, ok := m.messages[messageID]
	if !ok {
		return fmt.Errorf("message %s not found", messageID)
	}
	for _, existing := range sent.Reactions[symbol] {
		if existing == user {
			return nil
		}
	}
	sent.Reactions[symbol] = append(sent.Reactions[symbol], user)
	return nil
}

// Messages returns copies of all sent messages in send order
func (m *Messenger) Messages() []Sent {
	m.mu.Lock()
	defer m.mu.Unlock()
	ret := make([]Sent, 0, len(m.order))
	for _, id := range m.order {
		ret = append(ret, m.messages[id].clone())
	}
	return ret
}

func (s *Sent) clone() Sent {
	ret := Sent{ID: s.ID, ChannelID: s.ChannelID, Text: s.Text}
	ret.Offered = append([]string(nil), s.Offered...)
	ret.Reactions = make(map[string][]string, len(s.Reactions))
	for k, v := range s.Reactions {
		ret.Reactions[k] = append([]string(nil), v...)
	}
	return ret
}

var _ messaging.Messenger = (*Messenger)(nil)
