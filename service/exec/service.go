package exec

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/viant/afs/url"
	"github.com/viant/clawguard/model/action"
	"github.com/viant/clawguard/model/verdict"
	"github.com/viant/clawguard/service/assessor/command"
	"github.com/viant/clawguard/service/extractor"
	"github.com/viant/clawguard/service/messaging"
	"github.com/viant/gosh"
	"github.com/viant/gosh/runner"
	"github.com/viant/gosh/runner/local"
	rssh "github.com/viant/gosh/runner/ssh"
	"github.com/viant/scy/cred/secret"
	"go.uber.org/zap"
	"golang.org/x/crypto/ssh"
)

// ErrBlocked is returned when the gate blocked a command.
var ErrBlocked = errors.New("command blocked")

// DefaultTimeout bounds a single command.
const DefaultTimeout = time.Minute

// Gate decides whether an action may run.
type Gate interface {
	Evaluate(ctx context.Context, request *action.Request, messenger messaging.Messenger) *verdict.Gate
}

// Option customises a Service
type Option func(s *Service)

// WithMessenger sets the messaging capability used for approvals
func WithMessenger(messenger messaging.Messenger) Option {
	return func(s *Service) { s.messenger = messenger }
}

// WithLogger sets the service logger
func WithLogger(logger *zap.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Service runs shell commands once the gate allowed every one of them.
type Service struct {
	gate      Gate
	messenger messaging.Messenger
	logger    *zap.Logger
	sessions  map[string]*gosh.Service
	mux       sync.Mutex
}

// New creates a gated executor
func New(gate Gate, options ...Option) *Service {
	ret := &Service{gate: gate, logger: zap.NewNop(), sessions: make(map[string]*gosh.Service)}
	for _, option := range options {
		option(ret)
	}
	return ret
}

// Execute gates every command and, when all are allowed, runs them in order.
// Nothing runs when any command is blocked.
func (s *Service) Execute(ctx context.Context, input *Input, output *Output) error {
	input.Init()
	if err := input.Validate(); err != nil {
		return err
	}
	if reason, blocked := s.check(ctx, input.Commands); blocked {
		output.Blocked = reason
		return fmt.Errorf("%w: %s", ErrBlocked, reason)
	}
	session, err := s.session(ctx, input.Host, input.Env)
	if err != nil {
		return fmt.Errorf("failed to get session: %w", err)
	}
	if input.Workdir != "" {
		if _, status, err := session.Run(ctx, "cd "+command.Quote(input.Workdir)); err != nil || status != 0 {
			return fmt.Errorf("failed to change directory to %s: %w", input.Workdir, errOrStatus(err, status))
		}
	}
	abortOnError := true
	if input.AbortOnError != nil {
		abortOnError = *input.AbortOnError
	}
	timeout := time.Duration(input.TimeoutMs) * time.Millisecond
	if timeout == 0 {
		timeout = DefaultTimeout
	}

	var stdout, stderr strings.Builder
	for _, cmd := range input.Commands {
		result := s.run(ctx, session, cmd, timeout)
		output.Commands = append(output.Commands, result)
		if result.Output = strings.TrimSpace(result.Output); result.Output != "" {
			stdout.WriteString(result.Output)
			stdout.WriteString("\n")
		}
		if result.Stderr = strings.TrimSpace(result.Stderr); result.Stderr != "" {
			stderr.WriteString(result.Stderr)
			stderr.WriteString("\n")
		}
		output.Status = result.Status
		if abortOnError && result.Status != 0 {
			break
		}
	}
	output.Stdout = strings.TrimSpace(stdout.String())
	output.Stderr = strings.TrimSpace(stderr.String())
	return nil
}

func (s *Service) check(ctx context.Context, commands []string) (string, bool) {
	for _, cmd := range commands {
		request := &action.Request{Tool: string(action.ToolExec), Parameters: map[string]interface{}{extractor.ParamCommand: cmd}}
		gate := s.gate.Evaluate(ctx, request, s.messenger)
		if !gate.IsAllowed() {
			s.logger.Warn("command blocked", zap.String("command", cmd), zap.String("reason", gate.Reason))
			return gate.Reason, true
		}
	}
	return "", false
}

func (s *Service) run(ctx context.Context, session *gosh.Service, cmd string, timeout time.Duration) *Command {
	started := time.Now()
	stdout, status, err := session.Run(ctx, cmd, runner.WithTimeout(int(timeout.Milliseconds())))
	if elapsed := time.Since(started); elapsed > timeout && err == nil {
		err = fmt.Errorf("command %v timed out after: %s", cmd, elapsed)
	}
	ret := &Command{Input: cmd, Status: status}
	if status == 0 && err == nil {
		ret.Output = stdout
		return ret
	}
	if stdout == "" && err != nil {
		stdout = err.Error()
	}
	if ret.Status == 0 {
		ret.Status = 1
	}
	ret.Stderr = stdout
	return ret
}

func errOrStatus(err error, status int) error {
	if err != nil {
		return err
	}
	return fmt.Errorf("exit status %d", status)
}

// session returns a cached session for host, creating one on first use
func (s *Service) session(ctx context.Context, host *Host, env map[string]string) (*gosh.Service, error) {
	key := sessionKey(host, env)
	s.mux.Lock()
	defer s.mux.Unlock()
	if session, ok := s.sessions[key]; ok {
		return session, nil
	}
	var options []runner.Option
	if len(env) > 0 {
		options = append(options, runner.WithEnvironment(env))
	}
	var session *gosh.Service
	var err error
	if host.IsLocal() {
		session, err = gosh.New(ctx, local.New(options...))
	} else {
		var config *ssh.ClientConfig
		if config, err = sshConfig(ctx, host); err != nil {
			return nil, fmt.Errorf("failed to get SSH config: %w", err)
		}
		address := url.Host(host.URL)
		if !strings.Contains(address, ":") {
			address += ":22"
		}
		session, err = gosh.New(ctx, rssh.New(address, config, options...))
	}
	if err != nil {
		return nil, err
	}
	s.sessions[key] = session
	return session, nil
}

// sessionKey identifies a session by host and environment; sessions with a
// different environment are never shared.
func sessionKey(host *Host, env map[string]string) string {
	if len(env) == 0 {
		return host.URL
	}
	names := make([]string, 0, len(env))
	for name := range env {
		names = append(names, name)
	}
	sort.Strings(names)
	var b strings.Builder
	b.WriteString(host.URL)
	for _, name := range names {
		b.WriteString("\x00" + name + "=" + env[name])
	}
	return b.String()
}

func sshConfig(ctx context.Context, host *Host) (*ssh.ClientConfig, error) {
	credentials := host.Credentials
	if credentials == "" {
		credentials = "localhost"
	}
	generic, err := secret.New().GetCredentials(ctx, credentials)
	if err != nil {
		return nil, err
	}
	return generic.SSH.Config(ctx)
}

// Close releases all sessions
func (s *Service) Close() error {
	s.mux.Lock()
	defer s.mux.Unlock()
	var errs []string
	for id, session := range s.sessions {
		if err := session.Close(); err != nil {
			errs = append(errs, fmt.Sprintf("failed to close session %s: %v", id, err))
		}
	}
	s.sessions = make(map[string]*gosh.Service)
	if len(errs) > 0 {
		return fmt.Errorf("errors closing sessions: %s", strings.Join(errs, "; "))
	}
	return nil
}
