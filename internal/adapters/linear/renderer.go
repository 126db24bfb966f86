// Package linear provides a synchronous, line-buffered renderer for CI
// environments.
package linear

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/muesli/termenv"
	"go.trai.ch/gate/internal/core/ports"
)

var _ ports.Renderer = (*Renderer)(nil)

// Renderer implements ports.Renderer for CI and other non-interactive
// environments. It outputs chronological logs with gate name prefixes.
type Renderer struct {
	stdout io.Writer
	stderr io.Writer
	output *termenv.Output

	mu      sync.Mutex
	gates   map[string]*gateState
	buffers map[string]*bytes.Buffer
}

type gateState struct {
	startTime time.Time
}

// NewRenderer creates a new Renderer.
func NewRenderer(stdout, stderr io.Writer) *Renderer {
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}

	output := termenv.NewOutput(stderr, termenv.WithProfile(colorProfile()))

	return &Renderer{
		stdout:  stdout,
		stderr:  stderr,
		output:  output,
		gates:   make(map[string]*gateState),
		buffers: make(map[string]*bytes.Buffer),
	}
}

// colorProfile returns the color profile based on environment.
func colorProfile() termenv.Profile {
	if os.Getenv("NO_COLOR") != "" {
		return termenv.Ascii
	}
	// Basic ANSI colors are enough for CI logs.
	return termenv.ANSI
}

// Start is a no-op for the linear renderer (synchronous).
func (r *Renderer) Start(_ context.Context) error {
	return nil
}

// Stop flushes all remaining buffers.
func (r *Renderer) Stop() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for gate := range r.buffers {
		r.flushBufferLocked(gate)
	}
	return nil
}

// OnPlanEmit prints the gates selected for the run.
func (r *Renderer) OnPlanEmit(gates []string, event, branch string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, _ = fmt.Fprintf(r.stderr, "Running %d gate(s) for %s on %q: %v\n",
		len(gates), event, branch, gates)
}

// OnGateStart prints a gate start message.
func (r *Renderer) OnGateStart(gate string, startTime time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.gates[gate] = &gateState{startTime: startTime}
	r.buffers[gate] = new(bytes.Buffer)

	prefix := r.output.String(fmt.Sprintf("[%s]", gate)).Faint().String()
	_, _ = fmt.Fprintf(r.stderr, "%s Starting...\n", prefix)
}

// OnGateLog buffers output and prints complete lines with the gate prefix.
func (r *Renderer) OnGateLog(gate string, data []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.gates[gate]; !ok {
		return
	}

	buf := r.buffers[gate]
	buf.Write(data)

	for {
		line, err := buf.ReadBytes('\n')
		if err != nil {
			// Incomplete line, put it back.
			if len(line) > 0 {
				newBuf := new(bytes.Buffer)
				newBuf.Write(line)
				r.buffers[gate] = newBuf
			}
			break
		}
		r.printLineLocked(gate, line)
	}
}

// OnGateComplete flushes the remaining buffer and prints the outcome.
func (r *Renderer) OnGateComplete(gate string, endTime time.Time, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	state, ok := r.gates[gate]
	if !ok {
		return
	}

	r.flushBufferLocked(gate)

	duration := endTime.Sub(state.startTime)
	prefix := fmt.Sprintf("[%s]", gate)

	if err != nil {
		symbol := r.output.String("✗").Foreground(termenv.ANSIRed).String()
		_, _ = fmt.Fprintf(r.stderr, "%s %s Failed after %v: %v\n",
			prefix, symbol, duration, err)
	} else {
		symbol := r.output.String("✓").Foreground(termenv.ANSIGreen).String()
		_, _ = fmt.Fprintf(r.stderr, "%s %s Succeeded in %v\n",
			prefix, symbol, duration)
	}

	delete(r.gates, gate)
	delete(r.buffers, gate)
}

// flushBufferLocked flushes any remaining data buffered for a gate.
// Must be called with r.mu held.
func (r *Renderer) flushBufferLocked(gate string) {
	if _, ok := r.gates[gate]; !ok {
		return
	}

	buf := r.buffers[gate]
	if buf.Len() > 0 {
		r.printLineLocked(gate, buf.Bytes())
		buf.Reset()
	}
}

// printLineLocked prints a line with the gate name prefix.
// Must be called with r.mu held.
func (r *Renderer) printLineLocked(gate string, line []byte) {
	line = bytes.TrimSuffix(line, []byte("\n"))
	line = bytes.TrimSuffix(line, []byte("\r"))

	if len(line) == 0 {
		return
	}

	_, _ = fmt.Fprintf(r.stdout, "[%s] %s\n", gate, string(line))
}
