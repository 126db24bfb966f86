package logger_test

import (
	"bytes"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/gate/internal/adapters/logger"
	"go.trai.ch/zerr"
)

func newTestLogger(t *testing.T) (*logger.Logger, *bytes.Buffer) {
	t.Helper()
	buf := &bytes.Buffer{}
	lg := logger.New()
	lg.SetOutput(buf)
	return lg, buf
}

func TestLogger_Info(t *testing.T) {
	lg, buf := newTestLogger(t)

	lg.Info("pipeline started", "gates", 4)

	out := buf.String()
	assert.Contains(t, out, "level=INFO")
	assert.Contains(t, out, "pipeline started")
	assert.Contains(t, out, "gates=4")
}

func TestLogger_Warn(t *testing.T) {
	lg, buf := newTestLogger(t)

	lg.Warn("executable not found in PATH", "command", "cargo")

	out := buf.String()
	assert.Contains(t, out, "level=WARN")
	assert.Contains(t, out, "command=cargo")
}

func TestLogger_Error(t *testing.T) {
	lg, buf := newTestLogger(t)

	err := zerr.With(zerr.New("manifest not found"), "path", "gates.yaml")
	lg.Error(err)

	out := buf.String()
	assert.Contains(t, out, "level=ERROR")
	assert.Contains(t, out, "manifest not found")
}

func TestLogger_New(t *testing.T) {
	require.NotNil(t, logger.New())
}

func TestLogger_ConcurrentAccess(t *testing.T) {
	lg, _ := newTestLogger(t)

	var wg sync.WaitGroup
	for range 4 {
		wg.Add(3)
		go func() {
			defer wg.Done()
			lg.Info("concurrent info")
		}()
		go func() {
			defer wg.Done()
			lg.Warn("concurrent warn")
		}()
		go func() {
			defer wg.Done()
			lg.Error(errors.New("concurrent error"))
		}()
	}
	wg.Wait()
}
