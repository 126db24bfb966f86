// Package runstore persists pipeline run reports as JSON files.
package runstore

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"go.trai.ch/gate/internal/core/domain"
	"go.trai.ch/gate/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.RunStore = (*Store)(nil)

// Dir is the report location inside the workspace.
const Dir = ".gate/runs"

// latestFile points at the most recent report.
const latestFile = "latest"

// Store implements ports.RunStore using one JSON file per run.
type Store struct {
	mu sync.Mutex
}

// NewStore creates a new Store.
func NewStore() *Store {
	return &Store{}
}

// Put persists the report for the workspace at root and updates the latest
// pointer.
func (s *Store) Put(root string, report domain.RunReport) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	dir := filepath.Join(root, Dir)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return zerr.Wrap(err, "failed to create run report directory")
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return zerr.Wrap(err, "failed to marshal run report")
	}

	path := filepath.Join(dir, report.ID+".json")
	if err := os.WriteFile(path, data, 0o644); err != nil { //nolint:gosec // reports are not sensitive
		return zerr.Wrap(err, "failed to write run report")
	}

	// The latest pointer is a plain file naming the report; rewriting it is
	// atomic enough for a single-writer store.
	if err := os.WriteFile(filepath.Join(dir, latestFile), []byte(report.ID), 0o644); err != nil { //nolint:gosec // see above
		return zerr.Wrap(err, "failed to update latest pointer")
	}

	return nil
}

// Latest returns the most recent report for the workspace at root.
// Returns nil, nil if no run has been recorded.
func (s *Store) Latest(root string) (*domain.RunReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	dir := filepath.Join(root, Dir)
	id, err := os.ReadFile(filepath.Join(dir, latestFile)) //nolint:gosec // path is inside the workspace
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.Wrap(err, "failed to read latest pointer")
	}

	data, err := os.ReadFile(filepath.Join(dir, string(id)+".json")) //nolint:gosec // see above
	if err != nil {
		return nil, zerr.Wrap(err, "failed to read run report")
	}

	var report domain.RunReport
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, zerr.Wrap(err, "failed to unmarshal run report")
	}
	return &report, nil
}
