// Package domain contains the core domain model for the gate pipeline.
package domain

import (
	"path"

	"go.trai.ch/zerr"
)

// EventType identifies the kind of repository event that triggers a pipeline run.
type EventType string

const (
	// EventPush is a push to a branch.
	EventPush EventType = "push"
	// EventPullRequest is a pull request targeting a branch.
	EventPullRequest EventType = "pull_request"
)

// Valid reports whether the event type is one of the known trigger kinds.
func (e EventType) Valid() bool {
	return e == EventPush || e == EventPullRequest
}

// Event is a concrete trigger-event record for a single pipeline run.
type Event struct {
	Type EventType `json:"type"`
	// Branch is the branch the event targets. Empty for a detached HEAD.
	Branch string `json:"branch"`
	// Revision is the commit the run verifies.
	Revision string `json:"revision,omitempty"`
}

// Trigger declares which events activate a gate.
type Trigger struct {
	Event EventType
	// Branches filters the trigger to matching branch names. Patterns use
	// path.Match syntax. An empty list matches every branch.
	Branches []string
}

// Matches reports whether the trigger fires for the given event.
func (t Trigger) Matches(ev Event) bool {
	if t.Event != ev.Type {
		return false
	}
	if len(t.Branches) == 0 {
		return true
	}
	for _, pattern := range t.Branches {
		if ok, err := path.Match(pattern, ev.Branch); err == nil && ok {
			return true
		}
	}
	return false
}

// Step is a single command within a gate.
type Step struct {
	Name    string
	Command []string
	// Env holds step-level overrides applied on top of the pipeline environment.
	Env map[string]string
}

// Gate is one independently scheduled verification job. Gates declare no
// dependencies on one another and report success or failure in isolation.
type Gate struct {
	Name string
	// Triggers restricts when the gate runs. Empty means the gate inherits
	// the pipeline-level triggers.
	Triggers []Trigger
	// Cache attaches the gate to the shared dependency cache.
	Cache bool
	Steps []Step
}

// MatchesEvent reports whether any of the gate's triggers fires for the event.
func (g Gate) MatchesEvent(ev Event) bool {
	for _, t := range g.Triggers {
		if t.Matches(ev) {
			return true
		}
	}
	return false
}

// CacheSpec configures the shared dependency cache.
type CacheSpec struct {
	// KeyFiles are the dependency manifests whose content hash forms the
	// cache key. The key changes whenever any of these files change.
	KeyFiles []string
	// Paths are the filesystem paths persisted under the key.
	Paths []string
}

// Pipeline is the full manifest: triggers, shared environment, cache
// configuration, and the set of gates.
type Pipeline struct {
	// Env is applied to every step of every gate.
	Env map[string]string
	// Triggers are the default triggers inherited by gates that declare none.
	Triggers []Trigger
	Cache    CacheSpec
	Gates    []Gate
}

// AddGate adds a gate to the pipeline.
// It returns an error if a gate with the same name already exists.
func (p *Pipeline) AddGate(g Gate) error {
	if _, exists := p.Gate(g.Name); exists {
		return zerr.With(ErrGateAlreadyExists, "gate", g.Name)
	}
	p.Gates = append(p.Gates, g)
	return nil
}

// Select returns the gates whose triggers match the event, in manifest order.
func (p *Pipeline) Select(ev Event) []Gate {
	var selected []Gate
	for _, g := range p.Gates {
		if g.MatchesEvent(ev) {
			selected = append(selected, g)
		}
	}
	return selected
}

// Gate returns the gate with the given name, if present.
func (p *Pipeline) Gate(name string) (Gate, bool) {
	for _, g := range p.Gates {
		if g.Name == name {
			return g, true
		}
	}
	return Gate{}, false
}
