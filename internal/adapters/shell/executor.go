// Package shell provides the step executor adapter.
package shell

import (
	"context"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"go.trai.ch/gate/internal/core/domain"
	"go.trai.ch/gate/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Executor = (*Executor)(nil)

// Executor implements ports.Executor using os/exec.
type Executor struct {
	logger ports.Logger
}

// NewExecutor creates a new Executor.
func NewExecutor(logger ports.Logger) *Executor {
	return &Executor{
		logger: logger,
	}
}

// Execute runs the step's command with the merged environment.
// Environments merge with the following priority (low to high):
// 1. os.Environ() (process base)
// 2. env (pipeline-level variables)
// 3. step.Env (step-level overrides)
//
// The step's exit code is attached to the returned error. There is no retry
// and no recovery: a non-zero exit is the step's final verdict.
func (e *Executor) Execute(ctx context.Context, step domain.Step, dir string, env map[string]string, stdout, stderr io.Writer) error {
	if len(step.Command) == 0 {
		return nil
	}

	name := step.Command[0]
	args := step.Command[1:]

	cmdEnv := resolveEnvironment(os.Environ(), env, step.Env)

	// Resolve the executable against the merged PATH, not the process PATH.
	executable := name
	if !filepath.IsAbs(name) {
		lp, err := lookPath(name, cmdEnv)
		if err != nil {
			e.logger.Warn("executable not found in PATH", "command", name)
		} else {
			executable = lp
		}
	}

	cmd := exec.CommandContext(ctx, executable, args...) //nolint:gosec // user provided command

	// exec.CommandContext sets Args[0] to the executable path; preserve the
	// name as invoked.
	if len(cmd.Args) > 0 {
		cmd.Args[0] = name
	}

	cmd.Dir = dir
	cmd.Env = cmdEnv
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	if err := cmd.Run(); err != nil {
		exitCode := -1
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		}
		return zerr.With(zerr.With(zerr.Wrap(err, "step failed"), "step", step.Name), "exit_code", exitCode)
	}

	return nil
}

// resolveEnvironment merges environment variables with the defined priority.
func resolveEnvironment(sysEnv []string, pipelineEnv, stepEnv map[string]string) []string {
	envMap := make(map[string]string, len(sysEnv)+len(pipelineEnv)+len(stepEnv))
	for _, entry := range sysEnv {
		k, v, ok := strings.Cut(entry, "=")
		if ok {
			envMap[k] = v
		}
	}
	for k, v := range pipelineEnv {
		envMap[k] = v
	}
	for k, v := range stepEnv {
		envMap[k] = v
	}

	result := make([]string, 0, len(envMap))
	for k, v := range envMap {
		result = append(result, k+"="+v)
	}
	return result
}

// lookPath searches for an executable in the directories named by the PATH
// entry of env.
func lookPath(file string, env []string) (string, error) {
	var path string
	for _, e := range env {
		if strings.HasPrefix(e, "PATH=") {
			path = strings.TrimPrefix(e, "PATH=")
			break
		}
	}

	if path == "" {
		return "", exec.ErrNotFound
	}

	for _, dir := range filepath.SplitList(path) {
		if dir == "" {
			// Unix shell semantics: path element "" means "."
			dir = "."
		}
		candidate := filepath.Join(dir, file)
		if err := findExecutable(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", exec.ErrNotFound
}

func findExecutable(file string) error {
	d, err := os.Stat(file)
	if err != nil {
		return err
	}
	if m := d.Mode(); !m.IsDir() && m&0o111 != 0 {
		return nil
	}
	return os.ErrPermission
}
