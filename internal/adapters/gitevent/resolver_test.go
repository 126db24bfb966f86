package gitevent_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/gate/internal/adapters/gitevent"
	"go.trai.ch/gate/internal/core/domain"
)

func TestResolver_Resolve_NoRepository(t *testing.T) {
	r := gitevent.NewResolver()

	_, err := r.Resolve(t.TempDir())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNoRepository)
}

func TestResolver_Resolve_EmptyRepository(t *testing.T) {
	dir := t.TempDir()
	_, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	r := gitevent.NewResolver()

	ev, err := r.Resolve(dir)
	require.NoError(t, err)
	assert.Equal(t, domain.EventPush, ev.Type)
	assert.Empty(t, ev.Branch)
	assert.Empty(t, ev.Revision)
}

func TestResolver_Resolve_Branch(t *testing.T) {
	dir := t.TempDir()
	hash := commitFile(t, dir, "README.md", "hello\n")

	r := gitevent.NewResolver()

	ev, err := r.Resolve(dir)
	require.NoError(t, err)
	assert.Equal(t, domain.EventPush, ev.Type)
	assert.Equal(t, "master", ev.Branch)
	assert.Equal(t, hash.String(), ev.Revision)
}

func TestResolver_Resolve_Subdirectory(t *testing.T) {
	dir := t.TempDir()
	commitFile(t, dir, "README.md", "hello\n")

	nested := filepath.Join(dir, "crates", "core")
	require.NoError(t, os.MkdirAll(nested, 0o750))

	r := gitevent.NewResolver()

	// DetectDotGit walks up from the nested directory.
	ev, err := r.Resolve(nested)
	require.NoError(t, err)
	assert.Equal(t, "master", ev.Branch)
}

func TestResolver_Resolve_DetachedHead(t *testing.T) {
	dir := t.TempDir()
	hash := commitFile(t, dir, "README.md", "hello\n")

	repo, err := git.PlainOpen(dir)
	require.NoError(t, err)
	wt, err := repo.Worktree()
	require.NoError(t, err)
	require.NoError(t, wt.Checkout(&git.CheckoutOptions{Hash: hash}))

	r := gitevent.NewResolver()

	ev, err := r.Resolve(dir)
	require.NoError(t, err)
	assert.Empty(t, ev.Branch)
	assert.Equal(t, hash.String(), ev.Revision)
}

// commitFile initializes a repository in dir, commits a single file, and
// returns the commit hash.
func commitFile(t *testing.T, dir, name, content string) plumbing.Hash {
	t.Helper()

	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))

	wt, err := repo.Worktree()
	require.NoError(t, err)
	_, err = wt.Add(name)
	require.NoError(t, err)

	hash, err := wt.Commit("initial", &git.CommitOptions{
		Author: &object.Signature{
			Name:  "tester",
			Email: "tester@example.com",
			When:  time.Now(),
		},
	})
	require.NoError(t, err)
	return hash
}
