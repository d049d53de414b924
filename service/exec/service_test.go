package exec

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/clawguard/model/action"
	"github.com/viant/clawguard/model/verdict"
	"github.com/viant/clawguard/service/messaging"
	"github.com/viant/clawguard/service/messaging/memory"
)

type gateFunc func(ctx context.Context, request *action.Request, messenger messaging.Messenger) *verdict.Gate

func (fn gateFunc) Evaluate(ctx context.Context, request *action.Request, messenger messaging.Messenger) *verdict.Gate {
	return fn(ctx, request, messenger)
}

func TestService_ExecuteBlocked(t *testing.T) {
	var checked []string
	messenger := memory.New()
	gate := gateFunc(func(_ context.Context, request *action.Request, actual messaging.Messenger) *verdict.Gate {
		assert.Equal(t, action.ToolExec, request.Kind())
		assert.Same(t, messenger, actual)
		command := request.Param("command")
		checked = append(checked, command)
		if command == "rm -rf /" {
			return verdict.Blocked("Security threat detected: Wipe")
		}
		return verdict.Allowed()
	})
	service := New(gate, WithMessenger(messenger))

	output := &Output{}
	err := service.Execute(context.Background(), &Input{Commands: []string{"ls", "rm -rf /", "pwd"}}, output)
	require.ErrorIs(t, err, ErrBlocked)
	assert.EqualError(t, err, "command blocked: Security threat detected: Wipe")
	assert.Equal(t, "Security threat detected: Wipe", output.Blocked)
	assert.Empty(t, output.Commands)
	assert.EqualValues(t, []string{"ls", "rm -rf /"}, checked)
	assert.Empty(t, service.sessions)
	assert.NoError(t, service.Close())
}

func TestInput_Init(t *testing.T) {
	input := &Input{}
	input.Init()
	require.NotNil(t, input.Host)
	assert.Equal(t, DefaultHostURL, input.Host.URL)
	assert.True(t, input.Host.IsLocal())

	remote := &Input{Host: &Host{URL: "ssh://build-01:2222/"}}
	remote.Init()
	assert.False(t, remote.Host.IsLocal())
}

func gateCommands(checked *[]string) Gate {
	return gateFunc(func(_ context.Context, request *action.Request, _ messaging.Messenger) *verdict.Gate {
		*checked = append(*checked, request.Param("command"))
		if strings.Contains(request.Param("command"), "touch") {
			return verdict.Blocked("Security threat detected: Write")
		}
		return verdict.Allowed()
	})
}

func TestService_Execute(t *testing.T) {
	workdir := t.TempDir()
	continueOnError := false
	testCases := []struct {
		name           string
		input          *Input
		expectedStdout string
		expectedStderr string
		expectedStatus int
		expectedRuns   int
	}{
		{
			name:           "commands run in order",
			input:          &Input{Commands: []string{"echo one", "echo two"}},
			expectedStdout: "one\ntwo",
			expectedRuns:   2,
		},
		{
			name:           "abort on first failure",
			input:          &Input{Commands: []string{"echo before", "(exit 3)", "echo after"}},
			expectedStdout: "before",
			expectedStatus: 3,
			expectedRuns:   2,
		},
		{
			name:           "continue after failure",
			input:          &Input{Commands: []string{"(exit 3)", "echo after"}, AbortOnError: &continueOnError},
			expectedStdout: "after",
			expectedRuns:   2,
		},
		{
			name:           "failed output goes to stderr",
			input:          &Input{Commands: []string{"echo ok", "echo oops; (exit 4)"}},
			expectedStdout: "ok",
			expectedStderr: "oops",
			expectedStatus: 4,
			expectedRuns:   2,
		},
		{
			name:           "workdir",
			input:          &Input{Workdir: workdir, Commands: []string{"pwd"}},
			expectedStdout: workdir,
			expectedRuns:   1,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var checked []string
			service := New(gateCommands(&checked))
			defer func() { _ = service.Close() }()

			output := &Output{}
			require.NoError(t, service.Execute(context.Background(), tc.input, output))
			assert.EqualValues(t, tc.input.Commands, checked)
			assert.Len(t, output.Commands, tc.expectedRuns)
			assert.Equal(t, tc.expectedStdout, output.Stdout)
			assert.Equal(t, tc.expectedStderr, output.Stderr)
			assert.Equal(t, tc.expectedStatus, output.Status)
		})
	}
}

func TestService_ExecuteRejectsWorkdirSyntax(t *testing.T) {
	marker := filepath.Join(t.TempDir(), "injected")
	testCases := []struct {
		name    string
		workdir string
	}{
		{name: "command separator", workdir: "/tmp; touch " + marker},
		{name: "substitution", workdir: "/tmp/$(touch " + marker + ")"},
		{name: "backticks", workdir: "/tmp/`touch " + marker + "`"},
		{name: "newline", workdir: "/tmp\ntouch " + marker},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var checked []string
			service := New(gateCommands(&checked))
			defer func() { _ = service.Close() }()

			err := service.Execute(context.Background(), &Input{Workdir: tc.workdir, Commands: []string{"true"}}, &Output{})
			assert.ErrorIs(t, err, ErrInvalidWorkdir)
			assert.Empty(t, checked)
			assert.Empty(t, service.sessions)
		})
	}
	_, err := os.Stat(marker)
	assert.True(t, os.IsNotExist(err))
}

func TestService_SessionPerEnvironment(t *testing.T) {
	var checked []string
	service := New(gateCommands(&checked))
	defer func() { _ = service.Close() }()

	for _, value := range []string{"first", "second", "first"} {
		output := &Output{}
		input := &Input{Env: map[string]string{"CG_STAGE": value}, Commands: []string{"true"}}
		require.NoError(t, service.Execute(context.Background(), input, output))
	}
	assert.Len(t, service.sessions, 2)
}

func TestSessionKey(t *testing.T) {
	host := &Host{URL: DefaultHostURL}
	assert.Equal(t, DefaultHostURL, sessionKey(host, nil))
	assert.Equal(t, sessionKey(host, map[string]string{"A": "1", "B": "2"}), sessionKey(host, map[string]string{"B": "2", "A": "1"}))
	assert.NotEqual(t, sessionKey(host, map[string]string{"A": "1"}), sessionKey(host, map[string]string{"A": "2"}))
}
