package config

import (
	"os"
	"path/filepath"

	"go.trai.ch/zerr"
)

// defaultManifest is the four-gate pipeline written by `gate init`. It targets
// a Rust workspace: a formatting gate, a compilation gate across all targets,
// a documentation gate across all features, and a test gate that builds with
// all features before running the suite.
const defaultManifest = `version: "1"

env:
  CARGO_TERM_COLOR: always

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
  check:
    cache: true
    steps:
      - name: check all targets
        run: cargo check --workspace --all-targets
  doc:
    cache: true
    steps:
      - name: build documentation
        run: cargo doc --workspace --all-features --no-deps
        env:
          RUSTDOCFLAGS: -D warnings
  test:
    cache: true
    steps:
      - name: build all targets with all features
        run: cargo build --workspace --all-targets --all-features
      - name: run tests and examples
        run: cargo test --workspace --all-targets --all-features
`

// Scaffold writes the default manifest into dir. It refuses to overwrite an
// existing manifest.
func Scaffold(dir string) (string, error) {
	path := filepath.Join(dir, Filename)
	if _, err := os.Stat(path); err == nil {
		return "", zerr.With(zerr.New("manifest already exists"), "path", path)
	}
	if err := os.WriteFile(path, []byte(defaultManifest), 0o644); err != nil { //nolint:gosec // manifest is not sensitive
		return "", zerr.Wrap(err, "failed to write manifest")
	}
	return path, nil
}
