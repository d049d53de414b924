package clawguard

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Setenv("CG_DISCORD_TOKEN", "secret-token")
	testCases := []struct {
		name     string
		document string
		expected func() *Config
		hasError bool
	}{
		{
			name:     "empty document keeps defaults",
			document: "{}",
			expected: DefaultConfig,
		},
		{
			name: "full document",
			document: `discord:
  enabled: true
  channelId: "998877"
  timeout: 30000
  token: ${env.CG_DISCORD_TOKEN}
assessor:
  command: clawguard check --json --type ${kind} ${value}
log:
  level: debug
audit:
  enabled: true
`,
			expected: func() *Config {
				ret := DefaultConfig()
				ret.Discord.Enabled = true
				ret.Discord.ChannelID = "998877"
				ret.Discord.TimeoutMs = 30000
				ret.Discord.Token = "secret-token"
				ret.Assessor.Command = "clawguard check --json --type ${kind} ${value}"
				ret.Log.Level = "debug"
				ret.Audit.Enabled = true
				return ret
			},
		},
		{
			name:     "negative timeout rejected",
			document: "discord:\n  timeout: -1\n",
			hasError: true,
		},
		{
			name:     "unknown log level rejected",
			document: "log:\n  level: loud\n",
			hasError: true,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			location := filepath.Join(t.TempDir(), "clawguard.yaml")
			require.NoError(t, os.WriteFile(location, []byte(tc.document), 0644))
			actual, err := Load(context.Background(), location)
			if tc.hasError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.EqualValues(t, tc.expected(), actual)
		})
	}
}

func TestDiscordConfig(t *testing.T) {
	config := DefaultConfig()
	assert.False(t, config.Discord.Configured())
	assert.Equal(t, time.Minute, config.Discord.Timeout())
	assert.Equal(t, time.Second, config.Discord.PollInterval())
	assert.Equal(t, 10*time.Second, config.Assessor.Timeout())

	config.Discord.Enabled = true
	assert.False(t, config.Discord.Configured())
	config.Discord.ChannelID = "1"
	assert.True(t, config.Discord.Configured())
}
