// Package command assesses items by running an external detector command in
// a local shell session. The detector prints a JSON verdict
// (`{"exitCode":..,"message":..,"primaryThreat":..}`); when it does not, its
// exit status is used as the verdict code.
package command

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/viant/clawguard/model/action"
	"github.com/viant/clawguard/model/verdict"
	"github.com/viant/clawguard/service/assessor"
	"github.com/viant/gosh"
	"github.com/viant/gosh/runner"
	"github.com/viant/gosh/runner/local"
)

// DefaultTimeout bounds a single detector run.
const DefaultTimeout = 10 * time.Second

var (
	// ErrNoCommand is returned when no detector command is configured.
	ErrNoCommand = errors.New("assessor command is not configured")
	// ErrTimeout is returned when the detector did not finish in time.
	ErrTimeout = errors.New("detector timed out")
)

// Option customises the command assessor
type Option func(a *Assessor)

// WithTimeout sets the detector run timeout
func WithTimeout(timeout time.Duration) Option {
	return func(a *Assessor) {
		if timeout > 0 {
			a.timeout = timeout
		}
	}
}

// WithEnv sets environment variables of the detector session
func WithEnv(env map[string]string) Option {
	return func(a *Assessor) { a.env = env }
}

// Assessor runs a detector command template per item. Template variables:
// ${kind} (command or url) and ${value} (shell-quoted content).
type Assessor struct {
	template string
	timeout  time.Duration
	env      map[string]string
	mux      sync.Mutex
	service  *gosh.Service
}

// New creates a command assessor
func New(template string, options ...Option) *Assessor {
	ret := &Assessor{template: strings.TrimSpace(template), timeout: DefaultTimeout}
	for _, option := range options {
		option(ret)
	}
	return ret
}

// Assess runs the detector for item. A shell session is started lazily and
// reused; runs are serialised on it.
func (a *Assessor) Assess(ctx context.Context, item action.Item) (verdict.Verdict, error) {
	if a.template == "" {
		return nil, ErrNoCommand
	}
	command := Expand(a.template, item)

	a.mux.Lock()
	defer a.mux.Unlock()
	service, err := a.session(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to start detector session: %w", err)
	}
	started := time.Now()
	stdout, status, err := service.Run(ctx, command, runner.WithTimeout(int(a.timeout.Milliseconds())))
	if elapsed := time.Since(started); err == nil && elapsed >= a.timeout {
		err = fmt.Errorf("%w after %s", ErrTimeout, elapsed)
	}
	if err != nil {
		// the interrupted run may still own the shell
		a.reset()
		return nil, fmt.Errorf("failed to run detector %q: %w", command, err)
	}
	return Parse(stdout, status), nil
}

func (a *Assessor) reset() {
	if a.service == nil {
		return
	}
	_ = a.service.Close()
	a.service = nil
}

func (a *Assessor) session(ctx context.Context) (*gosh.Service, error) {
	if a.service != nil {
		return a.service, nil
	}
	var options []runner.Option
	if len(a.env) > 0 {
		options = append(options, runner.WithEnvironment(a.env))
	}
	service, err := gosh.New(ctx, local.New(options...))
	if err != nil {
		return nil, err
	}
	a.service = service
	return service, nil
}

// Close releases the shell session
func (a *Assessor) Close() error {
	a.mux.Lock()
	defer a.mux.Unlock()
	if a.service == nil {
		return nil
	}
	err := a.service.Close()
	a.service = nil
	return err
}

// Expand substitutes ${kind} and ${value} in template. Other variables are
// left untouched.
func Expand(template string, item action.Item) string {
	return os.Expand(template, func(name string) string {
		switch name {
		case "kind":
			return string(item.Kind)
		case "value":
			return Quote(item.Value)
		default:
			return "${" + name + "}"
		}
	})
}

// Quote returns text as a single-quoted shell word.
func Quote(text string) string {
	return "'" + strings.ReplaceAll(text, "'", `'"'"'`) + "'"
}

// Parse converts detector output into a verdict. The outermost JSON object
// in stdout wins; otherwise status is the verdict code and stdout the message.
func Parse(stdout string, status int) verdict.Verdict {
	if start, end := strings.Index(stdout, "{"), strings.LastIndex(stdout, "}"); start != -1 && end > start {
		result := &verdict.Result{}
		if err := json.Unmarshal([]byte(stdout[start:end+1]), result); err == nil {
			return result.Verdict()
		}
	}
	result := &verdict.Result{ExitCode: status, Message: strings.TrimSpace(stdout)}
	return result.Verdict()
}

var _ assessor.Assessor = (*Assessor)(nil)
