package ports

import (
	"context"
	"io"

	"go.trai.ch/gate/internal/core/domain"
)

// Executor defines the interface for executing a single step.
//
//go:generate mockgen -source=executor.go -destination=mocks/mock_executor.go -package=mocks
type Executor interface {
	// Execute runs the step's command in dir with the given environment
	// overrides applied on top of the process environment, streaming output
	// to stdout and stderr.
	//
	// A non-zero exit is returned as an error carrying the exit code. The
	// step is never retried.
	Execute(ctx context.Context, step domain.Step, dir string, env map[string]string, stdout, stderr io.Writer) error
}
