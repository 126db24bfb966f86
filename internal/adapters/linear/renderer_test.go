package linear_test

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/gate/internal/adapters/linear"
)

func newRenderer(t *testing.T) (*linear.Renderer, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	t.Setenv("NO_COLOR", "1")

	stdout := new(bytes.Buffer)
	stderr := new(bytes.Buffer)
	return linear.NewRenderer(stdout, stderr), stdout, stderr
}

func TestRenderer_OnPlanEmit(t *testing.T) {
	r, _, stderr := newRenderer(t)

	r.OnPlanEmit([]string{"fmt", "test"}, "push", "main")

	assert.Contains(t, stderr.String(), `Running 2 gate(s) for push on "main"`)
	assert.Contains(t, stderr.String(), "[fmt test]")
}

func TestRenderer_LineBuffering(t *testing.T) {
	r, stdout, _ := newRenderer(t)

	start := time.Now()
	r.OnGateStart("test", start)

	// Partial writes are held until the line completes.
	r.OnGateLog("test", []byte("compiling"))
	assert.Empty(t, stdout.String())

	r.OnGateLog("test", []byte(" demo v0.1.0\n"))
	assert.Equal(t, "[test] compiling demo v0.1.0\n", stdout.String())

	// Multiple lines in one write are split.
	r.OnGateLog("test", []byte("line one\nline two\n"))
	assert.Contains(t, stdout.String(), "[test] line one\n")
	assert.Contains(t, stdout.String(), "[test] line two\n")
}

func TestRenderer_OnGateComplete_FlushesBuffer(t *testing.T) {
	r, stdout, stderr := newRenderer(t)

	start := time.Now()
	r.OnGateStart("doc", start)
	r.OnGateLog("doc", []byte("no trailing newline"))

	r.OnGateComplete("doc", start.Add(time.Second), nil)

	assert.Contains(t, stdout.String(), "[doc] no trailing newline\n")
	assert.Contains(t, stderr.String(), "Succeeded in 1s")
}

func TestRenderer_OnGateComplete_Failure(t *testing.T) {
	r, _, stderr := newRenderer(t)

	start := time.Now()
	r.OnGateStart("check", start)
	r.OnGateComplete("check", start.Add(2*time.Second), errors.New("exit status 1"))

	assert.Contains(t, stderr.String(), "Failed after 2s")
	assert.Contains(t, stderr.String(), "exit status 1")
}

func TestRenderer_LogForUnknownGateDropped(t *testing.T) {
	r, stdout, _ := newRenderer(t)

	r.OnGateLog("never-started", []byte("orphan output\n"))
	assert.Empty(t, stdout.String())
}

func TestRenderer_InterleavedGates(t *testing.T) {
	r, stdout, _ := newRenderer(t)

	start := time.Now()
	r.OnGateStart("fmt", start)
	r.OnGateStart("test", start)

	r.OnGateLog("fmt", []byte("checking"))
	r.OnGateLog("test", []byte("running\n"))
	r.OnGateLog("fmt", []byte(" style\n"))

	// Each gate's partial output stays in its own buffer.
	assert.Contains(t, stdout.String(), "[test] running\n")
	assert.Contains(t, stdout.String(), "[fmt] checking style\n")
}

func TestRenderer_StopFlushesAll(t *testing.T) {
	r, stdout, _ := newRenderer(t)

	start := time.Now()
	r.OnGateStart("fmt", start)
	r.OnGateLog("fmt", []byte("dangling"))

	require.NoError(t, r.Start(context.Background()))
	require.NoError(t, r.Stop())

	assert.Contains(t, stdout.String(), "[fmt] dangling\n")
}
