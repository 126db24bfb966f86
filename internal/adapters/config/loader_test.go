package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/gate/internal/adapters/config"
	"go.trai.ch/gate/internal/core/domain"
	"go.trai.ch/gate/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func TestLoader_Load_FullManifest(t *testing.T) {
	root := t.TempDir()
	createFile(t, root, config.Filename, `
version: "1"

env:
  CI: "true"

on:
  push:
    branches: [main]
  pull_request:
    branches: [main]

cache:
  key:
    - Cargo.toml
    - Cargo.lock
  paths:
    - target

gates:
  fmt:
    steps:
      - name: check formatting
        run: cargo fmt --all -- --check
  test:
    cache: true
    steps:
      - run: cargo build --workspace
      - name: run tests
        run: cargo test --workspace
        env:
          RUST_BACKTRACE: "1"
`)

	loader := newLoader(t)
	p, err := loader.Load(root)
	require.NoError(t, err)
	require.NotNil(t, p)

	assert.Equal(t, map[string]string{"CI": "true"}, p.Env)
	assert.Equal(t, []string{"Cargo.lock", "Cargo.toml"}, p.Cache.KeyFiles)
	assert.Equal(t, []string{"target"}, p.Cache.Paths)

	// Trigger event names are sorted, so pull_request comes first.
	require.Len(t, p.Triggers, 2)
	assert.Equal(t, domain.EventPullRequest, p.Triggers[0].Event)
	assert.Equal(t, domain.EventPush, p.Triggers[1].Event)
	assert.Equal(t, []string{"main"}, p.Triggers[0].Branches)

	// Gates come back in name order.
	require.Len(t, p.Gates, 2)
	assert.Equal(t, "fmt", p.Gates[0].Name)
	assert.Equal(t, "test", p.Gates[1].Name)

	fmtGate := p.Gates[0]
	assert.False(t, fmtGate.Cache)
	require.Len(t, fmtGate.Steps, 1)
	assert.Equal(t, "check formatting", fmtGate.Steps[0].Name)
	assert.Equal(t, []string{"cargo", "fmt", "--all", "--", "--check"}, fmtGate.Steps[0].Command)

	testGate := p.Gates[1]
	assert.True(t, testGate.Cache)
	require.Len(t, testGate.Steps, 2)
	// A step without a name falls back to its run string.
	assert.Equal(t, "cargo build --workspace", testGate.Steps[0].Name)
	assert.Equal(t, map[string]string{"RUST_BACKTRACE": "1"}, testGate.Steps[1].Env)

	// Gates without their own triggers inherit the pipeline defaults.
	assert.Equal(t, p.Triggers, fmtGate.Triggers)
}

func TestLoader_Load_GateTriggerOverride(t *testing.T) {
	root := t.TempDir()
	createFile(t, root, config.Filename, `
version: "1"
on:
  push:
    branches: [main]
gates:
  nightly:
    on:
      push:
        branches: [release-*]
    steps:
      - run: cargo test
`)

	loader := newLoader(t)
	p, err := loader.Load(root)
	require.NoError(t, err)

	g, ok := p.Gate("nightly")
	require.True(t, ok)
	require.Len(t, g.Triggers, 1)
	assert.Equal(t, []string{"release-*"}, g.Triggers[0].Branches)
}

func TestLoader_Load_Validation(t *testing.T) {
	tests := []struct {
		name     string
		manifest string
		wantErr  error
		contains string
	}{
		{
			name: "gate without steps",
			manifest: `
gates:
  empty:
    steps: []
`,
			wantErr: domain.ErrNoSteps,
		},
		{
			name: "unknown event",
			manifest: `
on:
  deploy:
    branches: [main]
gates:
  g:
    steps:
      - run: true
`,
			wantErr: domain.ErrUnknownEvent,
		},
		{
			name: "cache without key files",
			manifest: `
gates:
  g:
    cache: true
    steps:
      - run: true
`,
			contains: "no cache key files",
		},
		{
			name: "step without command",
			manifest: `
gates:
  g:
    steps:
      - name: nothing
        run: ""
`,
			contains: "step has no command",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			createFile(t, root, config.Filename, tt.manifest)

			loader := newLoader(t)
			_, err := loader.Load(root)
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			if tt.contains != "" {
				assert.Contains(t, err.Error(), tt.contains)
			}
		})
	}
}

func TestLoader_Load_InvalidYAML(t *testing.T) {
	root := t.TempDir()
	createFile(t, root, config.Filename, "gates: [not: a: map")

	loader := newLoader(t)
	_, err := loader.Load(root)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse manifest")
}

func TestLoader_DiscoverRoot(t *testing.T) {
	root := t.TempDir()
	createFile(t, root, config.Filename, "gates: {}\n")

	nested := filepath.Join(root, "crates", "core")
	require.NoError(t, os.MkdirAll(nested, 0o750))

	loader := newLoader(t)

	found, err := loader.DiscoverRoot(nested)
	require.NoError(t, err)
	assert.Equal(t, root, found)

	found, err = loader.DiscoverRoot(root)
	require.NoError(t, err)
	assert.Equal(t, root, found)
}

func TestLoader_DiscoverRoot_NotFound(t *testing.T) {
	loader := newLoader(t)

	_, err := loader.DiscoverRoot(t.TempDir())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrManifestNotFound)
}

func TestScaffold(t *testing.T) {
	dir := t.TempDir()

	path, err := config.Scaffold(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, config.Filename), path)

	// The scaffolded manifest must load cleanly.
	p, err := config.Load(path)
	require.NoError(t, err)
	require.Len(t, p.Gates, 4)

	names := make([]string, 0, len(p.Gates))
	for _, g := range p.Gates {
		names = append(names, g.Name)
	}
	assert.Equal(t, []string{"check", "doc", "fmt", "test"}, names)

	// The formatting gate runs without the cache; the rest opt in.
	fmtGate, _ := p.Gate("fmt")
	assert.False(t, fmtGate.Cache)
	for _, name := range []string{"check", "doc", "test"} {
		g, ok := p.Gate(name)
		require.True(t, ok)
		assert.True(t, g.Cache, "gate %s should use the cache", name)
	}

	assert.Equal(t, []string{"Cargo.lock", "Cargo.toml"}, p.Cache.KeyFiles)
	assert.Equal(t, []string{"target"}, p.Cache.Paths)
}

func TestScaffold_RefusesOverwrite(t *testing.T) {
	dir := t.TempDir()
	createFile(t, dir, config.Filename, "gates: {}\n")

	_, err := config.Scaffold(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func newLoader(t *testing.T) *config.Loader {
	t.Helper()
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Warn(gomock.Any()).AnyTimes()
	return config.NewLoader(mockLogger)
}

func createFile(t *testing.T, dir, name, content string) {
	t.Helper()
	err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644)
	require.NoError(t, err)
}
