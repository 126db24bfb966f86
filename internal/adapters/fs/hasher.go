package fs

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/gate/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Hasher = (*Hasher)(nil)

// Hasher computes content-addressed cache keys from dependency manifests.
type Hasher struct {
	walker *Walker
}

// NewHasher creates a new Hasher.
func NewHasher(walker *Walker) *Hasher {
	return &Hasher{walker: walker}
}

// FileHash computes the XXHash of a file's content.
func (h *Hasher) FileHash(path string) (uint64, error) {
	f, err := os.Open(path) //nolint:gosec // Path is controlled by caller
	if err != nil {
		return 0, zerr.With(zerr.Wrap(err, "failed to open file"), "path", path)
	}
	defer f.Close() //nolint:errcheck // Best effort close in defer

	hasher := xxhash.New()
	if _, err := io.Copy(hasher, f); err != nil {
		return 0, zerr.With(zerr.Wrap(err, "failed to hash file content"), "path", path)
	}

	return hasher.Sum64(), nil
}

// ManifestKey computes the cache key for the given manifest files relative to
// root. Paths are hashed in sorted order together with each file's content so
// the key changes whenever any manifest changes. Glob patterns are resolved;
// a pattern with no matches contributes nothing, but a literal missing file
// is an error.
func (h *Hasher) ManifestKey(root string, keyFiles []string) (string, error) {
	sorted := make([]string, len(keyFiles))
	copy(sorted, keyFiles)
	sort.Strings(sorted)

	hasher := xxhash.New()

	for _, keyFile := range sorted {
		path := filepath.Join(root, keyFile)
		if err := h.hashKeyPath(keyFile, path, hasher); err != nil {
			return "", err
		}
	}

	return fmt.Sprintf("%016x", hasher.Sum64()), nil
}

// hashKeyPath hashes a single manifest path, attempting glob resolution if
// the path does not exist as given.
func (h *Hasher) hashKeyPath(name, path string, hasher io.Writer) error {
	if _, err := os.Stat(path); err != nil {
		matches, globErr := filepath.Glob(path)
		if globErr != nil || len(matches) == 0 {
			return zerr.With(zerr.New("manifest file not found"), "path", path)
		}
		sort.Strings(matches)
		for _, match := range matches {
			if err := h.hashFile(match, hasher); err != nil {
				return err
			}
		}
		return nil
	}

	// The declared name, not the resolved path, feeds the key so the key is
	// stable across checkouts in different directories.
	_, _ = hasher.Write([]byte(name))
	_, _ = hasher.Write([]byte{0})
	return h.hashFile(path, hasher)
}

func (h *Hasher) hashFile(path string, hasher io.Writer) error {
	hash, err := h.FileHash(path)
	if err != nil {
		return err
	}
	if err := binary.Write(hasher, binary.LittleEndian, hash); err != nil {
		return zerr.Wrap(err, "failed to write hash to digest")
	}
	return nil
}
