// Package app implements the application layer for gate.
package app

import (
	"context"
	"os"
	"time"

	"github.com/google/uuid"
	"go.trai.ch/gate/internal/adapters/linear"
	"go.trai.ch/gate/internal/adapters/rich"
	"go.trai.ch/gate/internal/adapters/watcher"
	"go.trai.ch/gate/internal/core/domain"
	"go.trai.ch/gate/internal/core/ports"
	"go.trai.ch/gate/internal/engine/scheduler"
	"go.trai.ch/zerr"
	"golang.org/x/term"
)

// Progress selects the output renderer.
type Progress string

const (
	// ProgressAuto picks rich when stdout is a terminal, plain otherwise.
	ProgressAuto Progress = "auto"
	// ProgressPlain is the line-buffered CI renderer.
	ProgressPlain Progress = "plain"
	// ProgressRich is the progrock-backed renderer.
	ProgressRich Progress = "rich"
)

// RunOptions configures a pipeline run.
type RunOptions struct {
	// Event overrides the resolved event type ("push" or "pull_request").
	Event string
	// Branch overrides the resolved branch.
	Branch string
	// Gates restricts the run to the named gates (after trigger selection).
	Gates []string
	// Parallelism bounds concurrently running gates. Zero means NumCPU.
	Parallelism int
	// NoCache disables the dependency cache for this run.
	NoCache bool
	// Progress selects the renderer.
	Progress Progress
}

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	resolver     ports.EventResolver
	scheduler    *scheduler.Scheduler
	store        ports.RunStore
	cache        ports.DependencyCache
	watcher      ports.Watcher
	logger       ports.Logger
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	resolver ports.EventResolver,
	sched *scheduler.Scheduler,
	store ports.RunStore,
	cache ports.DependencyCache,
	w ports.Watcher,
	log ports.Logger,
) *App {
	return &App{
		configLoader: loader,
		resolver:     resolver,
		scheduler:    sched,
		store:        store,
		cache:        cache,
		watcher:      w,
		logger:       log,
	}
}

// Run executes the pipeline once for the resolved event.
// It returns domain.ErrPipelineFailed if any gate failed.
func (a *App) Run(ctx context.Context, opts RunOptions) error {
	root, err := a.configLoader.DiscoverRoot(".")
	if err != nil {
		return err
	}

	pipeline, err := a.configLoader.Load(root)
	if err != nil {
		return zerr.Wrap(err, "failed to load manifest")
	}

	ev, err := a.resolveEvent(root, opts)
	if err != nil {
		return err
	}

	gates, err := selectGates(pipeline, ev, opts.Gates)
	if err != nil {
		return err
	}

	renderer := a.newRenderer(opts.Progress)
	if err := renderer.Start(ctx); err != nil {
		return zerr.Wrap(err, "failed to start renderer")
	}

	names := make([]string, 0, len(gates))
	for _, g := range gates {
		names = append(names, g.Name)
	}
	renderer.OnPlanEmit(names, string(ev.Type), ev.Branch)

	started := time.Now()
	results, cacheKey, runErr := a.scheduler.Run(ctx, pipeline, gates, scheduler.Options{
		Root:        root,
		Renderer:    renderer,
		Parallelism: opts.Parallelism,
		NoCache:     opts.NoCache,
	})

	if err := renderer.Stop(); err != nil {
		a.logger.Warn("failed to stop renderer", "error", err)
	}

	report := domain.RunReport{
		ID:       uuid.NewString(),
		Event:    ev,
		CacheKey: cacheKey,
		Started:  started,
		Duration: time.Since(started),
		Results:  results,
	}
	if err := a.store.Put(root, report); err != nil {
		// A run that cannot be recorded still counts; the gates already
		// reported their verdicts.
		a.logger.Warn("failed to persist run report", "error", err)
	}

	if ctx.Err() != nil {
		return runErr
	}
	if report.Failed() {
		return zerr.With(domain.ErrPipelineFailed, "run_id", report.ID)
	}
	return runErr
}

// resolveEvent resolves the trigger event and applies flag overrides.
func (a *App) resolveEvent(root string, opts RunOptions) (domain.Event, error) {
	ev, err := a.resolver.Resolve(root)
	if err != nil {
		return domain.Event{}, err
	}

	if opts.Event != "" {
		et := domain.EventType(opts.Event)
		if !et.Valid() {
			return domain.Event{}, zerr.With(domain.ErrUnknownEvent, "event", opts.Event)
		}
		ev.Type = et
	}
	if opts.Branch != "" {
		ev.Branch = opts.Branch
	}
	return ev, nil
}

// selectGates returns the gates matching the event, optionally restricted to
// an explicit name list.
func selectGates(pipeline *domain.Pipeline, ev domain.Event, only []string) ([]domain.Gate, error) {
	selected := pipeline.Select(ev)

	if len(only) > 0 {
		byName := make(map[string]domain.Gate, len(selected))
		for _, g := range selected {
			byName[g.Name] = g
		}
		filtered := make([]domain.Gate, 0, len(only))
		for _, name := range only {
			g, ok := byName[name]
			if !ok {
				if _, declared := pipeline.Gate(name); !declared {
					return nil, zerr.With(domain.ErrGateNotFound, "gate", name)
				}
				// Declared but not triggered by this event.
				continue
			}
			filtered = append(filtered, g)
		}
		selected = filtered
	}

	if len(selected) == 0 {
		return nil, zerr.With(zerr.With(domain.ErrNoGatesMatched, "event", string(ev.Type)), "branch", ev.Branch)
	}
	return selected, nil
}

// newRenderer picks the renderer for the run.
func (a *App) newRenderer(p Progress) ports.Renderer {
	switch p {
	case ProgressPlain:
		return linear.NewRenderer(nil, nil)
	case ProgressRich:
		return rich.New()
	default:
		if term.IsTerminal(int(os.Stdout.Fd())) {
			return rich.New()
		}
		return linear.NewRenderer(nil, nil)
	}
}

// debounceWindow coalesces bursts of file events in watch mode.
const debounceWindow = 500 * time.Millisecond

// Watch runs the pipeline, then re-runs it whenever source files change.
// It blocks until ctx is cancelled.
func (a *App) Watch(ctx context.Context, opts RunOptions) error {
	root, err := a.configLoader.DiscoverRoot(".")
	if err != nil {
		return err
	}

	// Watch mode is interactive in spirit but re-runs are CI-shaped; force
	// the plain renderer so successive runs append instead of redrawing.
	opts.Progress = ProgressPlain

	runs := make(chan []string, 1)
	deb := watcher.NewDebouncer(debounceWindow, func(paths []string) {
		select {
		case runs <- paths:
		default:
			// A re-run is already queued; the pending one covers these paths.
		}
	})

	if err := a.watcher.Start(ctx, root); err != nil {
		return zerr.Wrap(err, "failed to start watcher")
	}
	defer a.watcher.Stop() //nolint:errcheck // Best effort stop in defer

	go func() {
		for ev := range a.watcher.Events() {
			deb.Add(ev.Path)
		}
	}()

	if err := a.Run(ctx, opts); err != nil {
		a.reportWatchRun(err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case paths := <-runs:
			a.logger.Info("change detected, re-running pipeline", "paths", len(paths))
			if err := a.Run(ctx, opts); err != nil {
				a.reportWatchRun(err)
			}
		}
	}
}

// reportWatchRun logs a failed watch-mode run without ending the loop.
func (a *App) reportWatchRun(err error) {
	a.logger.Error(err)
}

// Clean removes the workspace's dependency cache.
func (a *App) Clean() error {
	root, err := a.configLoader.DiscoverRoot(".")
	if err != nil {
		return err
	}
	if err := a.cache.Clear(root); err != nil {
		return err
	}
	a.logger.Info("dependency cache cleared", "root", root)
	return nil
}

// Status returns the latest run report for the workspace.
// Returns nil, nil if no run has been recorded.
func (a *App) Status() (*domain.RunReport, error) {
	root, err := a.configLoader.DiscoverRoot(".")
	if err != nil {
		return nil, err
	}
	return a.store.Latest(root)
}
