package ports

// Hasher defines the interface for computing content-addressed cache keys.
//
//go:generate mockgen -source=hasher.go -destination=mocks/mock_hasher.go -package=mocks
type Hasher interface {
	// ManifestKey computes the cache key for the given dependency manifest
	// files, resolved relative to root. The key deterministically changes
	// whenever any manifest file's content changes.
	ManifestKey(root string, keyFiles []string) (string, error)

	// FileHash computes the content hash of a single file.
	FileHash(path string) (uint64, error)
}
