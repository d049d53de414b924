package clawguard

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/viant/clawguard/service/meta"
	"go.uber.org/zap/zapcore"
)

// Version is the gate release version.
const Version = "1.2.0"

// Config is a serialisable representation of the gate configuration. It is
// loaded from YAML with ${env.KEY} expressions expanded. Missing sections
// keep DefaultConfig values.
type Config struct {
	Discord  DiscordConfig  `json:"discord" yaml:"discord"`
	Assessor AssessorConfig `json:"assessor" yaml:"assessor"`
	Log      LogConfig      `json:"log" yaml:"log"`
	Tracing  TracingConfig  `json:"tracing" yaml:"tracing"`
	Audit    AuditConfig    `json:"audit" yaml:"audit"`
}

// DiscordConfig configures human approval over Discord
type DiscordConfig struct {
	Enabled        bool   `json:"enabled" yaml:"enabled"`
	ChannelID      string `json:"channelId" yaml:"channelId"`
	TimeoutMs      int    `json:"timeout" yaml:"timeout"`
	PollIntervalMs int    `json:"pollInterval" yaml:"pollInterval"`
	Token          string `json:"token,omitempty" yaml:"token,omitempty"`
	TokenURL       string `json:"tokenURL,omitempty" yaml:"tokenURL,omitempty"` // scy secret resource
	TokenKey       string `json:"tokenKey,omitempty" yaml:"tokenKey,omitempty"` // e.g. blowfish://default
}

// Timeout returns the approval timeout
func (d *DiscordConfig) Timeout() time.Duration {
	return time.Duration(d.TimeoutMs) * time.Millisecond
}

// PollInterval returns the reaction polling cadence
func (d *DiscordConfig) PollInterval() time.Duration {
	return time.Duration(d.PollIntervalMs) * time.Millisecond
}

// Configured reports whether warn verdicts go to a human.
func (d *DiscordConfig) Configured() bool {
	return d.Enabled && d.ChannelID != ""
}

// AssessorConfig configures the external risk detector
type AssessorConfig struct {
	Command   string `json:"command,omitempty" yaml:"command,omitempty"` // ${kind} and ${value} are substituted
	TimeoutMs int    `json:"timeoutMs,omitempty" yaml:"timeoutMs,omitempty"`
}

// Timeout returns the detector run timeout
func (a *AssessorConfig) Timeout() time.Duration {
	return time.Duration(a.TimeoutMs) * time.Millisecond
}

// LogConfig configures zap
type LogConfig struct {
	Level       string `json:"level" yaml:"level"`
	Development bool   `json:"development" yaml:"development"`
}

// TracingConfig configures OpenTelemetry
type TracingConfig struct {
	Enabled    bool   `json:"enabled" yaml:"enabled"`
	OutputFile string `json:"outputFile,omitempty" yaml:"outputFile,omitempty"`
}

// AuditConfig configures the decision audit trail
type AuditConfig struct {
	Enabled bool `json:"enabled" yaml:"enabled"`
}

// DefaultConfig returns a Config populated with default values. Callers may
// modify the returned struct before passing it to New.
func DefaultConfig() *Config {
	return &Config{
		Discord: DiscordConfig{
			TimeoutMs:      60000,
			PollIntervalMs: 1000,
		},
		Assessor: AssessorConfig{TimeoutMs: 10000},
		Log:      LogConfig{Level: "info"},
	}
}

// Load reads the configuration at URL (any afs supported location) on top
// of DefaultConfig.
func Load(ctx context.Context, URL string) (*Config, error) {
	ret := DefaultConfig()
	if err := meta.New(nil).Load(ctx, URL, ret); err != nil {
		return nil, err
	}
	ret.Init()
	if err := ret.Validate(); err != nil {
		return nil, err
	}
	return ret, nil
}

// Init restores defaults for zero values
func (c *Config) Init() {
	defaults := DefaultConfig()
	if c.Discord.TimeoutMs == 0 {
		c.Discord.TimeoutMs = defaults.Discord.TimeoutMs
	}
	if c.Discord.PollIntervalMs == 0 {
		c.Discord.PollIntervalMs = defaults.Discord.PollIntervalMs
	}
	if c.Assessor.TimeoutMs == 0 {
		c.Assessor.TimeoutMs = defaults.Assessor.TimeoutMs
	}
	if c.Log.Level == "" {
		c.Log.Level = defaults.Log.Level
	}
}

// Validate returns aggregated error describing invalid settings or nil.
func (c *Config) Validate() error {
	if c == nil {
		return nil
	}
	var errs []error
	if c.Discord.TimeoutMs < 0 {
		errs = append(errs, fmt.Errorf("discord.timeout must be >= 0"))
	}
	if c.Discord.PollIntervalMs < 0 {
		errs = append(errs, fmt.Errorf("discord.pollInterval must be >= 0"))
	}
	if c.Assessor.TimeoutMs < 0 {
		errs = append(errs, fmt.Errorf("assessor.timeoutMs must be >= 0"))
	}
	if c.Log.Level != "" {
		if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
			errs = append(errs, fmt.Errorf("log.level: %w", err))
		}
	}
	return errors.Join(errs...)
}
