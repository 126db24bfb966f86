// Package config provides the manifest loader for gate.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/gate/internal/core/domain"
	"go.trai.ch/gate/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Filename is the manifest file gate looks for at the workspace root.
const Filename = "gates.yaml"

var _ ports.ConfigLoader = (*Loader)(nil)

// Loader implements ports.ConfigLoader using a YAML manifest.
type Loader struct {
	logger ports.Logger
}

// NewLoader creates a new Loader.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{logger: logger}
}

// DiscoverRoot walks up from cwd to find the directory containing the manifest.
func (l *Loader) DiscoverRoot(cwd string) (string, error) {
	dir, err := filepath.Abs(cwd)
	if err != nil {
		return "", zerr.Wrap(err, "failed to resolve working directory")
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, Filename)); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", zerr.With(domain.ErrManifestNotFound, "cwd", cwd)
		}
		dir = parent
	}
}

// Load reads the manifest for the workspace enclosing cwd.
func (l *Loader) Load(cwd string) (*domain.Pipeline, error) {
	root, err := l.DiscoverRoot(cwd)
	if err != nil {
		return nil, err
	}
	return Load(filepath.Join(root, Filename))
}

// Load reads a manifest file from the given path and returns the pipeline.
func Load(path string) (*domain.Pipeline, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, zerr.With(domain.ErrManifestNotFound, "path", path)
		}
		return nil, zerr.Wrap(err, "failed to read manifest")
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, zerr.Wrap(err, "failed to parse manifest")
	}

	return build(&m)
}

func build(m *Manifest) (*domain.Pipeline, error) {
	defaults, err := parseTriggers(m.On)
	if err != nil {
		return nil, err
	}

	p := &domain.Pipeline{
		Env:      m.Env,
		Triggers: defaults,
		Cache: domain.CacheSpec{
			KeyFiles: canonicalize(m.Cache.Key),
			Paths:    canonicalize(m.Cache.Paths),
		},
	}

	// Manifest gates are a map; sort names so the run order is stable.
	names := make([]string, 0, len(m.Gates))
	for name := range m.Gates {
		names = append(names, name)
	}
	slices.Sort(names)

	for _, name := range names {
		gate, err := buildGate(name, m.Gates[name], defaults, p.Cache)
		if err != nil {
			return nil, err
		}
		if err := p.AddGate(gate); err != nil {
			return nil, err
		}
	}

	return p, nil
}

func buildGate(name string, dto GateDTO, defaults []domain.Trigger, cache domain.CacheSpec) (domain.Gate, error) {
	if len(dto.Steps) == 0 {
		return domain.Gate{}, zerr.With(domain.ErrNoSteps, "gate", name)
	}
	if dto.Cache && len(cache.KeyFiles) == 0 {
		return domain.Gate{}, zerr.With(zerr.New("gate opts into cache but no cache key files are declared"), "gate", name)
	}

	triggers, err := parseTriggers(dto.On)
	if err != nil {
		return domain.Gate{}, zerr.With(err, "gate", name)
	}
	if len(triggers) == 0 {
		triggers = defaults
	}

	gate := domain.Gate{
		Name:     name,
		Triggers: triggers,
		Cache:    dto.Cache,
	}

	for _, s := range dto.Steps {
		command := strings.Fields(s.Run)
		if len(command) == 0 {
			return domain.Gate{}, zerr.With(zerr.New("step has no command"), "gate", name)
		}
		stepName := s.Name
		if stepName == "" {
			stepName = s.Run
		}
		gate.Steps = append(gate.Steps, domain.Step{
			Name:    stepName,
			Command: command,
			Env:     s.Env,
		})
	}

	return gate, nil
}

func parseTriggers(on map[string]TriggerDTO) ([]domain.Trigger, error) {
	if len(on) == 0 {
		return nil, nil
	}

	events := make([]string, 0, len(on))
	for event := range on {
		events = append(events, event)
	}
	slices.Sort(events)

	triggers := make([]domain.Trigger, 0, len(events))
	for _, event := range events {
		et := domain.EventType(event)
		if !et.Valid() {
			return nil, zerr.With(domain.ErrUnknownEvent, "event", event)
		}
		triggers = append(triggers, domain.Trigger{
			Event:    et,
			Branches: on[event].Branches,
		})
	}
	return triggers, nil
}

func canonicalize(strs []string) []string {
	if len(strs) == 0 {
		return nil
	}
	sorted := make([]string, len(strs))
	copy(sorted, strs)
	slices.Sort(sorted)
	return slices.Compact(sorted)
}
