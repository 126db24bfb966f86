// Package scheduler implements parallel execution of pipeline gates.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"sync"
	"time"

	"go.trai.ch/gate/internal/core/domain"
	"go.trai.ch/gate/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// Scheduler runs the gates selected for a pipeline event. Gates are
// independent: they run concurrently, and one gate's failure never cancels
// or fails a sibling. Within a gate, steps run sequentially and the first
// failing step aborts the rest (fail-fast).
type Scheduler struct {
	executor ports.Executor
	cache    ports.DependencyCache
	hasher   ports.Hasher

	mu         sync.RWMutex
	gateStatus map[string]domain.GateStatus
}

// Options configures a single scheduler run.
type Options struct {
	// Root is the workspace root all steps run in.
	Root string
	// Renderer receives the run's event stream. Required.
	Renderer ports.Renderer
	// Parallelism bounds concurrently running gates. Zero means NumCPU.
	Parallelism int
	// NoCache disables dependency cache restore and save.
	NoCache bool
}

// NewScheduler creates a new Scheduler with the given dependencies.
func NewScheduler(executor ports.Executor, cache ports.DependencyCache, hasher ports.Hasher) *Scheduler {
	return &Scheduler{
		executor:   executor,
		cache:      cache,
		hasher:     hasher,
		gateStatus: make(map[string]domain.GateStatus),
	}
}

// Statuses returns a snapshot of the per-gate statuses.
func (s *Scheduler) Statuses() map[string]domain.GateStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot := make(map[string]domain.GateStatus, len(s.gateStatus))
	for k, v := range s.gateStatus {
		snapshot[k] = v
	}
	return snapshot
}

func (s *Scheduler) updateStatus(name string, status domain.GateStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gateStatus[name] = status
}

// Run executes the given gates and returns their results in gate order along
// with the cache key used, if any. The returned error joins the failures of
// all failed gates; ctx cancellation aborts running steps and is joined in.
func (s *Scheduler) Run(ctx context.Context, pipeline *domain.Pipeline, gates []domain.Gate, opts Options) ([]domain.GateResult, string, error) {
	if opts.Parallelism <= 0 {
		opts.Parallelism = runtime.NumCPU()
	}

	for _, g := range gates {
		s.updateStatus(g.Name, domain.StatusPending)
	}

	cacheKey, err := s.resolveCacheKey(pipeline, gates, opts)
	if err != nil {
		return nil, "", err
	}

	results := make([]domain.GateResult, len(gates))

	// errgroup is used purely as a bounded worker pool. The group context is
	// deliberately not derived: a failed gate must not cancel its siblings.
	var eg errgroup.Group
	eg.SetLimit(opts.Parallelism)

	for i, g := range gates {
		eg.Go(func() error {
			results[i] = s.runGate(ctx, pipeline, g, cacheKey, opts)
			return nil
		})
	}
	_ = eg.Wait()

	var errs error
	for _, res := range results {
		if res.Status == domain.StatusFailed {
			errs = errors.Join(errs, zerr.With(zerr.New(res.Error), "gate", res.Gate))
		}
	}
	if ctx.Err() != nil {
		errs = errors.Join(errs, ctx.Err())
	}

	return results, cacheKey, errs
}

// resolveCacheKey computes the manifest hash once per run, if any selected
// gate is attached to the cache.
func (s *Scheduler) resolveCacheKey(pipeline *domain.Pipeline, gates []domain.Gate, opts Options) (string, error) {
	if opts.NoCache || len(pipeline.Cache.KeyFiles) == 0 {
		return "", nil
	}
	cached := false
	for _, g := range gates {
		if g.Cache {
			cached = true
			break
		}
	}
	if !cached {
		return "", nil
	}

	key, err := s.hasher.ManifestKey(opts.Root, pipeline.Cache.KeyFiles)
	if err != nil {
		return "", zerr.Wrap(err, "failed to compute cache key")
	}
	return key, nil
}

// runGate executes one gate: restore cache, run steps fail-fast, save cache.
func (s *Scheduler) runGate(ctx context.Context, pipeline *domain.Pipeline, gate domain.Gate, cacheKey string, opts Options) domain.GateResult {
	started := time.Now()
	s.updateStatus(gate.Name, domain.StatusRunning)
	opts.Renderer.OnGateStart(gate.Name, started)

	result := domain.GateResult{
		Gate:    gate.Name,
		Started: started,
	}

	log := &gateLog{renderer: opts.Renderer, gate: gate.Name}

	useCache := gate.Cache && cacheKey != ""
	if useCache {
		restored, err := s.cache.Restore(cacheKey, opts.Root, pipeline.Cache.Paths)
		switch {
		case err != nil:
			// The cache is an optimization; a broken entry must not fail the
			// gate. The commands rebuild what the restore did not provide.
			log.line(fmt.Sprintf("cache restore failed: %v", err))
		case restored:
			log.line("cache restored for key " + cacheKey)
		}
	}

	err := s.runSteps(ctx, pipeline, gate, opts.Root, log, &result)

	if err == nil && useCache {
		if saveErr := s.cache.Save(cacheKey, opts.Root, pipeline.Cache.Paths); saveErr != nil {
			log.line(fmt.Sprintf("cache save failed: %v", saveErr))
		}
	}

	result.Duration = time.Since(started)
	if err != nil {
		result.Status = domain.StatusFailed
		result.Error = err.Error()
	} else {
		result.Status = domain.StatusSucceeded
	}
	s.updateStatus(gate.Name, result.Status)
	opts.Renderer.OnGateComplete(gate.Name, started.Add(result.Duration), err)

	return result
}

// runSteps executes the gate's steps in order, aborting on the first failure.
func (s *Scheduler) runSteps(ctx context.Context, pipeline *domain.Pipeline, gate domain.Gate, root string, log *gateLog, result *domain.GateResult) error {
	for _, step := range gate.Steps {
		if err := ctx.Err(); err != nil {
			return err
		}

		stepStart := time.Now()
		err := s.executor.Execute(ctx, step, root, pipeline.Env, log, log)

		result.Steps = append(result.Steps, domain.StepResult{
			Name:     step.Name,
			ExitCode: exitCode(err),
			Duration: time.Since(stepStart),
		})

		if err != nil {
			return zerr.With(zerr.Wrap(err, "step failed"), "step", step.Name)
		}
	}
	return nil
}

// exitCode extracts the process exit code from an execution error.
func exitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}

// gateLog adapts the renderer's log callback to io.Writer for step output.
type gateLog struct {
	renderer ports.Renderer
	gate     string
}

func (w *gateLog) Write(p []byte) (int, error) {
	w.renderer.OnGateLog(w.gate, p)
	return len(p), nil
}

func (w *gateLog) line(msg string) {
	w.renderer.OnGateLog(w.gate, []byte(msg+"\n"))
}
