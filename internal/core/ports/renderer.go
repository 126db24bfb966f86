package ports

import (
	"context"
	"time"
)

// Renderer is the abstraction for output rendering. It decouples the
// scheduler's event stream from presentation, allowing the same events to
// drive either linear CI logs or a rich progress display.
//
//go:generate mockgen -source=renderer.go -destination=mocks/mock_renderer.go -package=mocks
type Renderer interface {
	// Start initializes the renderer and begins its lifecycle.
	Start(ctx context.Context) error

	// Stop flushes buffered output and shuts the renderer down.
	Stop() error

	// OnPlanEmit is called once with the names of the gates selected for the
	// run, before any gate starts.
	OnPlanEmit(gates []string, event string, branch string)

	// OnGateStart is called when a gate transitions to Running.
	OnGateStart(gate string, startTime time.Time)

	// OnGateLog is called with raw output from a step of the gate. Data may
	// contain partial lines.
	OnGateLog(gate string, data []byte)

	// OnGateComplete is called when a gate reaches a terminal state.
	// err is nil iff every step exited zero.
	OnGateComplete(gate string, endTime time.Time, err error)
}
