package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/clawguard/service/messaging"
)

func TestMessenger(t *testing.T) {
	ctx := context.Background()
	m := New()

	id, err := m.Send(ctx, "chan-1", "hello")
	require.NoError(t, err)
	require.NotEmpty(t, id)
	require.NoError(t, m.React(ctx, id, "✅"))
	require.NoError(t, m.React(ctx, id, "❌"))

	reactions, err := m.Reactions(ctx, id)
	require.NoError(t, err)
	assert.EqualValues(t, []messaging.Reaction{{Symbol: "✅", Users: 0}, {Symbol: "❌", Users: 0}}, reactions)

	require.NoError(t, m.AddReaction(id, "❌", "alice"))
	require.NoError(t, m.AddReaction(id, "❌", "alice"))
	require.NoError(t, m.AddReaction(id, "👀", "bob"))
	reactions, err = m.Reactions(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 0, messaging.Count(reactions, "✅"))
	assert.Equal(t, 1, messaging.Count(reactions, "❌"))
	assert.Equal(t, 1, messaging.Count(reactions, "👀"))

	sent := m.Messages()
	require.Len(t, sent, 1)
	assert.Equal(t, "chan-1", sent[0].ChannelID)
	assert.Equal(t, "hello", sent[0].Text)
	assert.EqualValues(t, []string{"✅", "❌"}, sent[0].Offered)

	assert.Error(t, m.React(ctx, "missing", "✅"))
	_, err = m.Reactions(ctx, "missing")
	assert.Error(t, err)
	assert.Error(t, m.AddReaction("missing", "✅", "alice"))
}

func TestMessengerFailures(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("boom")

	_, err := New(WithSendError(boom)).Send(ctx, "c", "t")
	assert.ErrorIs(t, err, boom)

	m := New(WithReactError(boom), WithReactionsError(boom))
	id, err := m.Send(ctx, "c", "t")
	require.NoError(t, err)
	assert.ErrorIs(t, m.React(ctx, id, "✅"), boom)
	_, err = m.Reactions(ctx, id)
	assert.ErrorIs(t, err, boom)
}

func TestMessengerOnSend(t *testing.T) {
	ctx := context.Background()
	m := New(WithOnSend(func(m *Messenger, sent Sent) {
		_ = m.AddReaction(sent.ID, "✅", "operator")
	}))
	id, err := m.Send(ctx, "c", "t")
	require.NoError(t, err)
	reactions, err := m.Reactions(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 1, messaging.Count(reactions, "✅"))
}
