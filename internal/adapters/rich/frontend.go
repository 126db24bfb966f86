package rich

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/muesli/termenv"
	"github.com/vito/progrock"
)

// frontend implements progrock.Writer by printing vertex transitions and log
// streams to the terminal as they arrive.
type frontend struct {
	stdout io.Writer
	stderr io.Writer
	output *termenv.Output

	mu       sync.Mutex
	started  map[string]string // vertex id -> name
	finished map[string]bool
}

func newFrontend() *frontend {
	return newFrontendTo(os.Stdout, os.Stderr)
}

func newFrontendTo(stdout, stderr io.Writer) *frontend {
	return &frontend{
		stdout:   stdout,
		stderr:   stderr,
		output:   termenv.NewOutput(stderr),
		started:  make(map[string]string),
		finished: make(map[string]bool),
	}
}

// WriteStatus consumes a status update from the recorder.
func (f *frontend) WriteStatus(update *progrock.StatusUpdate) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, v := range update.Vertexes {
		f.writeVertex(v)
	}
	for _, l := range update.Logs {
		name, ok := f.started[l.Vertex]
		if !ok {
			continue
		}
		prefix := f.output.String(fmt.Sprintf("[%s]", name)).Faint().String()
		_, _ = fmt.Fprintf(f.stdout, "%s %s", prefix, string(l.Data))
	}
	return nil
}

func (f *frontend) writeVertex(v *progrock.Vertex) {
	if _, seen := f.started[v.Id]; !seen {
		f.started[v.Id] = v.Name
		marker := f.output.String("▶").Foreground(termenv.ANSIBlue).String()
		_, _ = fmt.Fprintf(f.stderr, "%s %s\n", marker, v.Name)
	}

	if v.Completed == nil || f.finished[v.Id] {
		return
	}
	f.finished[v.Id] = true

	if v.Error != nil {
		marker := f.output.String("✗").Foreground(termenv.ANSIRed).String()
		_, _ = fmt.Fprintf(f.stderr, "%s %s: %s\n", marker, v.Name, v.GetError())
	} else {
		marker := f.output.String("✓").Foreground(termenv.ANSIGreen).String()
		_, _ = fmt.Fprintf(f.stderr, "%s %s\n", marker, v.Name)
	}
}

// Close flushes nothing; output is unbuffered.
func (f *frontend) Close() error {
	return nil
}
