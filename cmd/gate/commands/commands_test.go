package commands_test

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/gate/cmd/gate/commands"
	"go.trai.ch/gate/internal/adapters/config"
	"go.trai.ch/gate/internal/app"
	"go.trai.ch/gate/internal/build"
	"go.trai.ch/gate/internal/core/domain"
)

type mockApp struct {
	runFunc    func(ctx context.Context, opts app.RunOptions) error
	watchFunc  func(ctx context.Context, opts app.RunOptions) error
	cleanFunc  func() error
	statusFunc func() (*domain.RunReport, error)
}

func (m *mockApp) Run(ctx context.Context, opts app.RunOptions) error {
	if m.runFunc != nil {
		return m.runFunc(ctx, opts)
	}
	return nil
}

func (m *mockApp) Watch(ctx context.Context, opts app.RunOptions) error {
	if m.watchFunc != nil {
		return m.watchFunc(ctx, opts)
	}
	return nil
}

func (m *mockApp) Clean() error {
	if m.cleanFunc != nil {
		return m.cleanFunc()
	}
	return nil
}

func (m *mockApp) Status() (*domain.RunReport, error) {
	if m.statusFunc != nil {
		return m.statusFunc()
	}
	return nil, nil
}

func TestCommands_Run(t *testing.T) {
	t.Run("wires flags correctly", func(t *testing.T) {
		var capturedOpts app.RunOptions
		called := false

		mock := &mockApp{
			runFunc: func(_ context.Context, opts app.RunOptions) error {
				capturedOpts = opts
				called = true
				return nil
			},
		}

		cli := commands.New(mock)
		cli.SetArgs([]string{"run", "fmt", "test", "-e", "pull_request", "-b", "main", "-j", "2", "--no-cache", "--progress", "plain"})

		err := cli.Execute(context.Background())
		require.NoError(t, err)
		assert.True(t, called)
		assert.Equal(t, "pull_request", capturedOpts.Event)
		assert.Equal(t, "main", capturedOpts.Branch)
		assert.Equal(t, 2, capturedOpts.Parallelism)
		assert.True(t, capturedOpts.NoCache)
		assert.Equal(t, app.ProgressPlain, capturedOpts.Progress)
		assert.Equal(t, []string{"fmt", "test"}, capturedOpts.Gates)
	})

	t.Run("defaults", func(t *testing.T) {
		var capturedOpts app.RunOptions
		mock := &mockApp{
			runFunc: func(_ context.Context, opts app.RunOptions) error {
				capturedOpts = opts
				return nil
			},
		}

		cli := commands.New(mock)
		cli.SetArgs([]string{"run"})

		require.NoError(t, cli.Execute(context.Background()))
		assert.Empty(t, capturedOpts.Event)
		assert.Empty(t, capturedOpts.Gates)
		assert.Zero(t, capturedOpts.Parallelism)
		assert.False(t, capturedOpts.NoCache)
		assert.Equal(t, app.ProgressAuto, capturedOpts.Progress)
	})

	t.Run("returns error on run failure", func(t *testing.T) {
		mock := &mockApp{
			runFunc: func(_ context.Context, _ app.RunOptions) error {
				return errors.New("simulated error")
			},
		}

		cli := commands.New(mock)
		cli.SetArgs([]string{"run"})
		cli.SetOutput(new(bytes.Buffer), new(bytes.Buffer))

		err := cli.Execute(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "simulated error")
	})
}

func TestCommands_Watch(t *testing.T) {
	var capturedOpts app.RunOptions
	called := false

	mock := &mockApp{
		watchFunc: func(_ context.Context, opts app.RunOptions) error {
			capturedOpts = opts
			called = true
			return nil
		},
	}

	cli := commands.New(mock)
	cli.SetArgs([]string{"watch", "test", "--no-cache"})

	require.NoError(t, cli.Execute(context.Background()))
	assert.True(t, called)
	assert.True(t, capturedOpts.NoCache)
	assert.Equal(t, []string{"test"}, capturedOpts.Gates)
}

func TestCommands_Clean(t *testing.T) {
	called := false
	mock := &mockApp{
		cleanFunc: func() error {
			called = true
			return nil
		},
	}

	cli := commands.New(mock)
	cli.SetArgs([]string{"clean"})

	require.NoError(t, cli.Execute(context.Background()))
	assert.True(t, called)
}

func TestCommands_Status(t *testing.T) {
	t.Run("no runs recorded", func(t *testing.T) {
		cli := commands.New(&mockApp{})
		out := new(bytes.Buffer)
		cli.SetOutput(out, new(bytes.Buffer))
		cli.SetArgs([]string{"status"})

		require.NoError(t, cli.Execute(context.Background()))
		assert.Contains(t, out.String(), "no runs recorded")
	})

	t.Run("prints the latest report", func(t *testing.T) {
		mock := &mockApp{
			statusFunc: func() (*domain.RunReport, error) {
				return &domain.RunReport{
					ID:       "run-42",
					Event:    domain.Event{Type: domain.EventPush, Branch: "main"},
					CacheKey: "cafe0123",
					Duration: 1500 * time.Millisecond,
					Results: []domain.GateResult{
						{Gate: "fmt", Status: domain.StatusSucceeded, Duration: time.Second},
						{Gate: "test", Status: domain.StatusFailed, Duration: 1200 * time.Millisecond, Error: "step failed"},
					},
				}, nil
			},
		}

		cli := commands.New(mock)
		out := new(bytes.Buffer)
		cli.SetOutput(out, new(bytes.Buffer))
		cli.SetArgs([]string{"status"})

		require.NoError(t, cli.Execute(context.Background()))
		assert.Contains(t, out.String(), "run-42")
		assert.Contains(t, out.String(), `push on "main"`)
		assert.Contains(t, out.String(), "cafe0123")
		assert.Contains(t, out.String(), "fmt")
		assert.Contains(t, out.String(), "Succeeded")
		assert.Contains(t, out.String(), "Failed")
		assert.Contains(t, out.String(), "step failed")
	})
}

func TestCommands_Init(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	cli := commands.New(&mockApp{})
	out := new(bytes.Buffer)
	cli.SetOutput(out, new(bytes.Buffer))
	cli.SetArgs([]string{"init"})

	require.NoError(t, cli.Execute(context.Background()))
	assert.Contains(t, out.String(), config.Filename)
	assert.FileExists(t, config.Filename)
}

func TestCommands_Version(t *testing.T) {
	cli := commands.New(&mockApp{})
	out := new(bytes.Buffer)
	cli.SetOutput(out, new(bytes.Buffer))
	cli.SetArgs([]string{"version"})

	require.NoError(t, cli.Execute(context.Background()))
	assert.Contains(t, out.String(), build.Version)
}

func TestCommands_UnknownCommand(t *testing.T) {
	cli := commands.New(&mockApp{})
	cli.SetOutput(new(bytes.Buffer), new(bytes.Buffer))
	cli.SetArgs([]string{"frobnicate"})

	err := cli.Execute(context.Background())
	require.Error(t, err)
}
