package ports

// DependencyCache defines the restore-then-save dependency cache shared by
// cache-enabled gates.
//
// Entries are keyed by manifest hash. There is no eviction policy; concurrent
// saves under the same key are serialized and resolve last-writer-wins.
//
//go:generate mockgen -source=depcache.go -destination=mocks/mock_depcache.go -package=mocks
type DependencyCache interface {
	// Restore copies the cached trees for key back into place under root.
	// A missing entry is not an error; it reports restored=false.
	Restore(key, root string, paths []string) (restored bool, err error)

	// Save persists the paths under key. Paths that do not exist are skipped.
	Save(key, root string, paths []string) error

	// Clear removes every cache entry for the workspace at root.
	Clear(root string) error
}
