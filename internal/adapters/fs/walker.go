// Package fs provides file system adapters for walking and hashing files.
package fs

import (
	"io/fs"
	"iter"
	"path/filepath"
)

// Walker provides file walking functionality.
type Walker struct{}

// NewWalker creates a new Walker.
func NewWalker() *Walker {
	return &Walker{}
}

// skipDirectories are directories never yielded by a walk. Build output and
// VCS metadata change constantly and must not feed cache keys or the watcher.
var skipDirectories = map[string]bool{
	".git":         true,
	".jj":          true,
	".gate":        true,
	"target":       true,
	"node_modules": true,
}

// WalkFiles yields all files under root, skipping VCS metadata, build output,
// and any additional ignore patterns.
func (w *Walker) WalkFiles(root string, ignores []string) iter.Seq[string] {
	return func(yield func(string) bool) {
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			skip, action := w.shouldSkip(d, ignores)
			if action != nil {
				return action
			}

			if d.IsDir() || skip {
				return nil
			}

			if !yield(path) {
				return filepath.SkipAll
			}
			return nil
		})
	}
}

// WalkDirs yields all directories under root, honoring the same skip rules.
func (w *Walker) WalkDirs(root string) iter.Seq[string] {
	return func(yield func(string) bool) {
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				// Skip unreadable directories rather than aborting the walk.
				return nil //nolint:nilerr
			}
			if !d.IsDir() {
				return nil
			}
			if skipDirectories[d.Name()] && path != root {
				return filepath.SkipDir
			}
			if !yield(path) {
				return filepath.SkipAll
			}
			return nil
		})
	}
}

// shouldSkip checks whether an entry is excluded from the walk. It reports
// skip for an excluded file and returns filepath.SkipDir for an excluded
// directory.
func (w *Walker) shouldSkip(d fs.DirEntry, ignores []string) (bool, error) {
	name := d.Name()

	if d.IsDir() && skipDirectories[name] {
		return false, filepath.SkipDir
	}

	for _, ignore := range ignores {
		matched, _ := filepath.Match(ignore, name)
		if matched {
			if d.IsDir() {
				return false, filepath.SkipDir
			}
			return true, nil
		}
	}

	return false, nil
}
