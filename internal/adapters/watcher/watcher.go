// Package watcher implements file system watching for watch mode.
package watcher

import (
	"context"
	"iter"

	"github.com/fsnotify/fsnotify"
	"go.trai.ch/gate/internal/adapters/fs"
	"go.trai.ch/gate/internal/core/ports"
)

var _ ports.Watcher = (*Watcher)(nil)

const eventChannelBuffer = 100

// Watcher implements recursive file system watching using fsnotify.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	walker    *fs.Walker
	events    chan ports.WatchEvent
}

// NewWatcher creates a new file system watcher.
func NewWatcher(walker *fs.Walker) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		fsWatcher: fsw,
		walker:    walker,
		events:    make(chan ports.WatchEvent, eventChannelBuffer),
	}, nil
}

// Start begins watching the given root directory recursively.
func (w *Watcher) Start(ctx context.Context, root string) error {
	for dir := range w.walker.WalkDirs(root) {
		if err := w.fsWatcher.Add(dir); err != nil {
			return err
		}
	}

	go w.processEvents(ctx)

	return nil
}

// Stop stops the watcher and releases all resources.
func (w *Watcher) Stop() error {
	return w.fsWatcher.Close()
}

// Events returns an iterator of file system events.
func (w *Watcher) Events() iter.Seq[ports.WatchEvent] {
	return func(yield func(ports.WatchEvent) bool) {
		for event := range w.events {
			if !yield(event) {
				return
			}
		}
	}
}

// processEvents converts raw fsnotify events to ports.WatchEvent.
func (w *Watcher) processEvents(ctx context.Context) {
	defer close(w.events)

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}

			op, relevant := mapOp(event.Op)
			if !relevant {
				continue
			}

			// Newly created directories must be added to the watch set so
			// files below them are seen.
			if event.Op.Has(fsnotify.Create) {
				for dir := range w.walker.WalkDirs(event.Name) {
					_ = w.fsWatcher.Add(dir)
				}
			}

			select {
			case w.events <- ports.WatchEvent{Path: event.Name, Op: op}:
			case <-ctx.Done():
				return
			}
		case _, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			// Watch errors are transient; keep consuming events.
		}
	}
}

func mapOp(op fsnotify.Op) (ports.WatchOp, bool) {
	switch {
	case op.Has(fsnotify.Create):
		return ports.OpCreate, true
	case op.Has(fsnotify.Write):
		return ports.OpWrite, true
	case op.Has(fsnotify.Remove):
		return ports.OpRemove, true
	case op.Has(fsnotify.Rename):
		return ports.OpRename, true
	default:
		return 0, false
	}
}
