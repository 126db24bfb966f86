package domain

import "go.trai.ch/zerr"

var (
	// ErrGateAlreadyExists is returned when a manifest declares two gates with the same name.
	ErrGateAlreadyExists = zerr.New("gate already exists")

	// ErrGateNotFound is returned when a requested gate is not declared in the manifest.
	ErrGateNotFound = zerr.New("gate not found")

	// ErrNoSteps is returned when a gate declares no steps.
	ErrNoSteps = zerr.New("gate has no steps")

	// ErrUnknownEvent is returned when a trigger names an event type that is not push or pull_request.
	ErrUnknownEvent = zerr.New("unknown event type")

	// ErrNoGatesMatched is returned when no gate's trigger matches the resolved event.
	ErrNoGatesMatched = zerr.New("no gates matched the event")

	// ErrPipelineFailed is returned when at least one gate of a run failed.
	ErrPipelineFailed = zerr.New("pipeline failed")

	// ErrManifestNotFound is returned when no gates.yaml is found walking up from the working directory.
	ErrManifestNotFound = zerr.New("manifest not found")

	// ErrNoRepository is returned when the workspace is not inside a git repository.
	ErrNoRepository = zerr.New("no git repository found")
)
