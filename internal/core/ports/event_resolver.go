package ports

import "go.trai.ch/gate/internal/core/domain"

// EventResolver resolves the trigger event for a run from the enclosing
// repository.
//
//go:generate mockgen -source=event_resolver.go -destination=mocks/mock_event_resolver.go -package=mocks
type EventResolver interface {
	// Resolve returns the event for the repository enclosing root.
	// The event type defaults to push; branch and revision come from HEAD.
	Resolve(root string) (domain.Event, error)
}
