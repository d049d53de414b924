package exec

import (
	"errors"
	"fmt"
	"strings"

	"github.com/viant/afs/url"
)

// DefaultHostURL runs commands on the local machine.
const DefaultHostURL = "bash://localhost/"

// shellMeta lists characters a working directory may not contain.
const shellMeta = ";&|$`<>()'\"\\\n\r*?"

// ErrInvalidWorkdir is returned for a working directory carrying shell syntax.
var ErrInvalidWorkdir = errors.New("invalid workdir")

// Host identifies where commands run
type Host struct {
	URL         string `json:"url,omitempty" yaml:"url,omitempty"`
	Credentials string `json:"credentials,omitempty" yaml:"credentials,omitempty"` // scy credentials resource for ssh hosts
}

// IsLocal reports whether the host is the local machine.
func (h *Host) IsLocal() bool {
	return url.Host(h.URL) == "localhost"
}

// Input represents gated command execution parameters
type Input struct {
	Host         *Host             `json:"host,omitempty"`
	Workdir      string            `json:"workdir,omitempty"`
	Env          map[string]string `json:"env,omitempty"`
	Commands     []string          `json:"commands,omitempty"`
	TimeoutMs    int               `json:"timeoutMs,omitempty" yaml:"timeoutMs,omitempty"`
	AbortOnError *bool             `json:"abortOnError,omitempty"` // defaults to true
}

// Init sets defaults
func (i *Input) Init() {
	if i.Host == nil {
		i.Host = &Host{}
	}
	if i.Host.URL == "" {
		i.Host.URL = DefaultHostURL
	}
}

// Validate rejects input that would run shell syntax outside the gated commands
func (i *Input) Validate() error {
	if strings.ContainsAny(i.Workdir, shellMeta) {
		return fmt.Errorf("%w: %q", ErrInvalidWorkdir, i.Workdir)
	}
	return nil
}
