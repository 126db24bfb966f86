package rich

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRenderer(t *testing.T) (*Renderer, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	t.Setenv("NO_COLOR", "1")

	stdout := new(bytes.Buffer)
	stderr := new(bytes.Buffer)
	return NewRenderer(newFrontendTo(stdout, stderr)), stdout, stderr
}

func TestRenderer_GateLifecycle(t *testing.T) {
	r, stdout, stderr := newTestRenderer(t)
	require.NoError(t, r.Start(context.Background()))

	r.OnGateStart("fmt", time.Now())
	assert.Contains(t, stderr.String(), "▶ fmt")

	r.OnGateLog("fmt", []byte("checking 3 files\n"))
	assert.Contains(t, stdout.String(), "[fmt] checking 3 files")

	r.OnGateComplete("fmt", time.Now(), nil)
	assert.Contains(t, stderr.String(), "✓ fmt")
	assert.NotContains(t, stderr.String(), "✗")

	require.NoError(t, r.Stop())
}

func TestRenderer_GateFailure(t *testing.T) {
	r, _, stderr := newTestRenderer(t)

	r.OnGateStart("test", time.Now())
	r.OnGateComplete("test", time.Now(), errors.New("2 tests failed"))

	assert.Contains(t, stderr.String(), "✗ test: 2 tests failed")
}

func TestRenderer_CompletionPrintedOnce(t *testing.T) {
	r, _, stderr := newTestRenderer(t)

	r.OnGateStart("check", time.Now())
	r.OnGateComplete("check", time.Now(), nil)

	// Later updates re-send completed vertices; the frontend must not
	// repeat the verdict line.
	r.OnGateStart("doc", time.Now())
	r.OnGateComplete("doc", time.Now(), nil)

	assert.Equal(t, 1, strings.Count(stderr.String(), "✓ check"))
}

func TestRenderer_LogForUnknownGateDropped(t *testing.T) {
	r, stdout, _ := newTestRenderer(t)

	r.OnGateLog("never-started", []byte("orphan\n"))
	assert.Empty(t, stdout.String())
}

func TestRenderer_OnPlanEmit(t *testing.T) {
	r, stdout, stderr := newTestRenderer(t)

	r.OnPlanEmit([]string{"fmt", "test"}, "push", "main")

	assert.Contains(t, stderr.String(), "plan")
	assert.Contains(t, stdout.String(), "fmt")
	assert.Contains(t, stdout.String(), "push on main")
}
