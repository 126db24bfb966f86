// Package ports defines the core interfaces for the application.
package ports

import "go.trai.ch/gate/internal/core/domain"

// ConfigLoader defines the interface for loading the pipeline manifest.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads the manifest for the workspace enclosing cwd.
	Load(cwd string) (*domain.Pipeline, error)

	// DiscoverRoot walks up from cwd to find the workspace root, the
	// directory containing the manifest file.
	DiscoverRoot(cwd string) (string, error)
}
