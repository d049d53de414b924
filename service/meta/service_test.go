package meta

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_Load(t *testing.T) {
	t.Setenv("CG_CHANNEL", "1234")
	location := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(location, []byte("channelId: \"${env.CG_CHANNEL}\"\ncommand: detect ${value}\n"), 0644))

	var actual struct {
		ChannelID string `yaml:"channelId"`
		Command   string `yaml:"command"`
	}
	require.NoError(t, New(nil).Load(context.Background(), location, &actual))
	assert.Equal(t, "1234", actual.ChannelID)
	assert.Equal(t, "detect ${value}", actual.Command)

	err := New(nil).Load(context.Background(), filepath.Join(t.TempDir(), "missing.yaml"), &actual)
	assert.Error(t, err)
}
