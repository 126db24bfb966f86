package ports

import (
	"context"
	"iter"
)

// WatchOp represents the type of file system operation.
type WatchOp uint8

const (
	// OpCreate indicates a file or directory was created.
	OpCreate WatchOp = iota
	// OpWrite indicates a file was modified.
	OpWrite
	// OpRemove indicates a file or directory was removed.
	OpRemove
	// OpRename indicates a file or directory was renamed.
	OpRename
)

// WatchEvent is a single file system change.
type WatchEvent struct {
	Path string
	Op   WatchOp
}

// Watcher defines the interface for recursive file system watching.
//
//go:generate mockgen -source=watcher.go -destination=mocks/mock_watcher.go -package=mocks
type Watcher interface {
	// Start begins watching root recursively until ctx is cancelled.
	Start(ctx context.Context, root string) error

	// Stop releases watcher resources.
	Stop() error

	// Events returns an iterator of file system events. The iterator ends
	// when the watcher stops.
	Events() iter.Seq[WatchEvent]
}
