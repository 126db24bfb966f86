// Package rich provides a progrock-backed renderer for interactive runs.
package rich

import (
	"context"
	"sync"
	"time"

	"github.com/opencontainers/go-digest"
	"github.com/vito/progrock"
	"go.trai.ch/gate/internal/core/ports"
)

var _ ports.Renderer = (*Renderer)(nil)

// Renderer implements ports.Renderer by recording gates as progrock vertices.
// Each gate becomes one vertex; step output streams through the vertex's
// stdout, and the terminal frontend consumes the resulting status updates.
type Renderer struct {
	w   progrock.Writer
	rec *progrock.Recorder

	mu       sync.Mutex
	vertices map[string]*progrock.VertexRecorder
}

// New creates a Renderer backed by the default terminal frontend.
func New() *Renderer {
	return NewRenderer(newFrontend())
}

// NewRenderer creates a Renderer writing status updates to w.
func NewRenderer(w progrock.Writer) *Renderer {
	return &Renderer{
		w:        w,
		rec:      progrock.NewRecorder(w),
		vertices: make(map[string]*progrock.VertexRecorder),
	}
}

// Start is a no-op; the recorder is ready as soon as it is constructed.
func (r *Renderer) Start(_ context.Context) error {
	return nil
}

// Stop completes the recording session and closes the underlying writer.
func (r *Renderer) Stop() error {
	return r.w.Close()
}

// OnPlanEmit is recorded as a zero-duration planning vertex so the frontend
// shows what was selected before any gate produces output.
func (r *Renderer) OnPlanEmit(gates []string, event, branch string) {
	v := r.rec.Vertex(digest.FromString("plan"), "plan")
	for _, g := range gates {
		_, _ = v.Stdout().Write([]byte(g + "\n"))
	}
	_, _ = v.Stdout().Write([]byte(event + " on " + branch + "\n"))
	v.Done(nil)
}

// OnGateStart opens a vertex for the gate.
func (r *Renderer) OnGateStart(gate string, _ time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.vertices[gate] = r.rec.Vertex(digest.FromString(gate), gate)
}

// OnGateLog streams step output into the gate's vertex.
func (r *Renderer) OnGateLog(gate string, data []byte) {
	r.mu.Lock()
	v, ok := r.vertices[gate]
	r.mu.Unlock()
	if !ok {
		return
	}
	_, _ = v.Stdout().Write(data)
}

// OnGateComplete marks the gate's vertex done.
func (r *Renderer) OnGateComplete(gate string, _ time.Time, err error) {
	r.mu.Lock()
	v, ok := r.vertices[gate]
	delete(r.vertices, gate)
	r.mu.Unlock()
	if !ok {
		return
	}
	v.Done(err)
}
