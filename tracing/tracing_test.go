package tracing

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTracingFile(t *testing.T) {
	fname := filepath.Join(t.TempDir(), "span_test.txt")
	require.NoError(t, Init("clawguard", "0.0.1", fname))

	_, span := StartSpan(context.Background(), "policy.evaluate", KindInternal)
	span.WithAttributes(map[string]string{"tool": "exec"})
	EndSpan(span, errors.New("blocked"))

	data, err := os.ReadFile(fname)
	require.NoError(t, err)
	assert.NotEmpty(t, data)
	assert.NoError(t, Shutdown(context.Background()))
}

func TestNilSpan(t *testing.T) {
	var span *Span
	assert.Nil(t, span.WithAttributes(map[string]string{"k": "v"}))
	span.SetStatus(nil)
	EndSpan(span, nil)
}
