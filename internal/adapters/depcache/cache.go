// Package depcache implements the manifest-hash-keyed dependency cache.
package depcache

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	"go.trai.ch/gate/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.DependencyCache = (*Cache)(nil)

// Cache implements ports.DependencyCache on the local filesystem.
//
// Each key maps to a directory holding one subtree per cached path. Saves
// under the same key are serialized with a lock file; aside from that, the
// newest save wins and no eviction is performed.
type Cache struct {
	dir string
}

// DefaultDir is the cache location inside the workspace.
const DefaultDir = ".gate/cache"

// NewCache creates a cache stored at dir. A relative dir is resolved against
// the workspace root of each call.
func NewCache(dir string) *Cache {
	return &Cache{dir: filepath.Clean(dir)}
}

// base returns the cache directory for the workspace at root.
func (c *Cache) base(root string) string {
	if filepath.IsAbs(c.dir) {
		return c.dir
	}
	return filepath.Join(root, c.dir)
}

// entryDir returns the directory holding the trees for a key.
func (c *Cache) entryDir(root, key string) string {
	return filepath.Join(c.base(root), key)
}

// Restore copies the cached trees for key back into place under root.
func (c *Cache) Restore(key, root string, paths []string) (bool, error) {
	entry := c.entryDir(root, key)
	if _, err := os.Stat(entry); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, zerr.With(zerr.Wrap(err, "failed to stat cache entry"), "key", key)
	}

	restored := false
	for _, p := range paths {
		src := filepath.Join(entry, filepath.FromSlash(p))
		if _, err := os.Stat(src); err != nil {
			continue
		}
		dst := filepath.Join(root, filepath.FromSlash(p))
		if err := copyTree(src, dst); err != nil {
			return restored, zerr.With(zerr.Wrap(err, "failed to restore cache path"), "path", p)
		}
		restored = true
	}
	return restored, nil
}

// Save persists the paths under key. Concurrent saves for the same key are
// serialized by a lock file; the last writer wins.
func (c *Cache) Save(key, root string, paths []string) error {
	entry := c.entryDir(root, key)
	if err := os.MkdirAll(entry, 0o750); err != nil {
		return zerr.Wrap(err, "failed to create cache entry")
	}

	lock := flock.New(filepath.Join(c.base(root), key+".lock"))
	if err := lock.Lock(); err != nil {
		return zerr.Wrap(err, "failed to acquire cache lock")
	}
	defer lock.Unlock() //nolint:errcheck // Best effort unlock in defer

	for _, p := range paths {
		src := filepath.Join(root, filepath.FromSlash(p))
		if _, err := os.Stat(src); err != nil {
			// A path that the gates never produced is not an error.
			continue
		}
		dst := filepath.Join(entry, filepath.FromSlash(p))
		if err := os.RemoveAll(dst); err != nil {
			return zerr.With(zerr.Wrap(err, "failed to replace cache path"), "path", p)
		}
		if err := copyTree(src, dst); err != nil {
			return zerr.With(zerr.Wrap(err, "failed to save cache path"), "path", p)
		}
	}
	return nil
}

// Clear removes every cache entry for the workspace at root.
func (c *Cache) Clear(root string) error {
	if err := os.RemoveAll(c.base(root)); err != nil {
		return zerr.Wrap(err, "failed to clear cache")
	}
	return nil
}

// copyTree copies a file or directory tree from src to dst, preserving file
// modes. Symlinks are recreated rather than followed.
func copyTree(src, dst string) error {
	info, err := os.Lstat(src)
	if err != nil {
		return err
	}

	switch {
	case info.Mode()&os.ModeSymlink != 0:
		target, err := os.Readlink(src)
		if err != nil {
			return err
		}
		_ = os.Remove(dst)
		return os.Symlink(target, dst)

	case info.IsDir():
		if err := os.MkdirAll(dst, info.Mode().Perm()); err != nil {
			return err
		}
		entries, err := os.ReadDir(src)
		if err != nil {
			return err
		}
		for _, entry := range entries {
			if err := copyTree(filepath.Join(src, entry.Name()), filepath.Join(dst, entry.Name())); err != nil {
				return err
			}
		}
		return nil

	default:
		return copyFile(src, dst, info.Mode().Perm())
	}
}

func copyFile(src, dst string, perm os.FileMode) error {
	in, err := os.Open(src) //nolint:gosec // Paths are inside the cache root or workspace
	if err != nil {
		return err
	}
	defer in.Close() //nolint:errcheck // Best effort close in defer

	if err := os.MkdirAll(filepath.Dir(dst), 0o750); err != nil {
		return err
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm) //nolint:gosec // see above
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
