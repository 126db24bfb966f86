package ports

import "go.trai.ch/gate/internal/core/domain"

// RunStore defines the interface for persisting run reports.
//
//go:generate mockgen -source=run_store.go -destination=mocks/mock_run_store.go -package=mocks
type RunStore interface {
	// Put persists the report for the workspace at root.
	Put(root string, report domain.RunReport) error

	// Latest returns the most recent report for the workspace at root.
	// Returns nil, nil if no run has been recorded.
	Latest(root string) (*domain.RunReport, error)
}
