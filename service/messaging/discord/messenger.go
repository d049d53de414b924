package discord

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/bwmarrin/discordgo"
	"github.com/viant/clawguard/service/messaging"
)

// MaxTracked bounds the number of sent messages remembered for reactions.
const MaxTracked = 1024

// ErrUnknownMessage is returned for a message that was not sent by this messenger.
var ErrUnknownMessage = errors.New("discord: unknown message")

// Session is the subset of *discordgo.Session used by the messenger.
type Session interface {
	ChannelMessageSend(channelID string, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
	MessageReactionAdd(channelID, messageID, emojiID string, options ...discordgo.RequestOption) error
	ChannelMessage(channelID, messageID string, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// Messenger implements messaging.Messenger over the Discord REST API.
type Messenger struct {
	session  Session
	mux      sync.RWMutex
	channels map[string]string // messageID -> channelID
	order    []string          // tracked message ids, oldest first
}

// New creates a bot messenger for token
func New(token string) (*Messenger, error) {
	if token == "" {
		return nil, ErrNoToken
	}
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("failed to create discord session: %w", err)
	}
	return NewWithSession(session), nil
}

// NewWithSession creates a messenger over an existing session
func NewWithSession(session Session) *Messenger {
	return &Messenger{session: session, channels: make(map[string]string)}
}

// Send posts text to channelID
func (m *Messenger) Send(ctx context.Context, channelID, text string) (string, error) {
	msg, err := m.session.ChannelMessageSend(channelID, text, discordgo.WithContext(ctx))
	if err != nil {
		return "", fmt.Errorf("failed to send discord message to channel %s: %w", channelID, err)
	}
	if msg == nil {
		return "", nil
	}
	m.track(msg.ID, channelID)
	return msg.ID, nil
}

func (m *Messenger) track(messageID, channelID string) {
	m.mux.Lock()
	defer m.mux.Unlock()
	m.channels[messageID] = channelID
	m.order = append(m.order, messageID)
	for len(m.order) > MaxTracked {
		delete(m.channels, m.order[0])
		m.order = m.order[1:]
	}
}

// Release forgets a sent message
func (m *Messenger) Release(messageID string) {
	m.mux.Lock()
	defer m.mux.Unlock()
	delete(m.channels, messageID)
	for i, candidate := range m.order {
		if candidate == messageID {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
}

// React adds symbol as the bot's own reaction
func (m *Messenger) React(ctx context.Context, messageID, symbol string) error {
	channelID, err := m.channel(messageID)
	if err != nil {
		return err
	}
	if err = m.session.MessageReactionAdd(channelID, messageID, symbol, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("failed to add reaction %s to %s: %w", symbol, messageID, err)
	}
	return nil
}

// Reactions returns the human reactions of a message
func (m *Messenger) Reactions(ctx context.Context, messageID string) ([]messaging.Reaction, error) {
	channelID, err := m.channel(messageID)
	if err != nil {
		return nil, err
	}
	msg, err := m.session.ChannelMessage(channelID, messageID, discordgo.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch discord message %s: %w", messageID, err)
	}
	if msg == nil {
		return nil, nil
	}
	return reactions(msg.Reactions), nil
}

func (m *Messenger) channel(messageID string) (string, error) {
	m.mux.RLock()
	defer m.mux.RUnlock()
	channelID, ok := m.channels[messageID]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownMessage, messageID)
	}
	return channelID, nil
}

// reactions converts discord reactions, excluding the bot's own reaction
// from each count.
func reactions(source []*discordgo.MessageReactions) []messaging.Reaction {
	var ret []messaging.Reaction
	for _, item := range source {
		if item == nil || item.Emoji == nil {
			continue
		}
		users := item.Count
		if item.Me {
			users--
		}
		if users < 0 {
			users = 0
		}
		ret = append(ret, messaging.Reaction{Symbol: item.Emoji.Name, Users: users})
	}
	return ret
}

var (
	_ messaging.Messenger = (*Messenger)(nil)
	_ messaging.Releaser  = (*Messenger)(nil)
)
