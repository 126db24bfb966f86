package watcher_test

import (
	"sync"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/gate/internal/adapters/watcher"
)

func TestDebouncer_CoalescesBurst(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var mu sync.Mutex
		var calls [][]string

		d := watcher.NewDebouncer(100*time.Millisecond, func(paths []string) {
			mu.Lock()
			calls = append(calls, paths)
			mu.Unlock()
		})

		// A burst of saves inside one window fires a single callback.
		d.Add("src/lib.rs")
		d.Add("src/main.rs")
		d.Add("src/lib.rs")

		time.Sleep(150 * time.Millisecond)
		synctest.Wait()

		mu.Lock()
		defer mu.Unlock()
		require.Len(t, calls, 1)
		assert.Len(t, calls[0], 2)
		assert.Contains(t, calls[0], "src/lib.rs")
		assert.Contains(t, calls[0], "src/main.rs")
	})
}

func TestDebouncer_TimerResetOnAdd(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var mu sync.Mutex
		callCount := 0

		d := watcher.NewDebouncer(100*time.Millisecond, func([]string) {
			mu.Lock()
			callCount++
			mu.Unlock()
		})

		d.Add("a.rs")
		time.Sleep(60 * time.Millisecond)
		d.Add("b.rs")
		time.Sleep(60 * time.Millisecond)
		synctest.Wait()

		// 120ms after the first add, but only 60ms after the second: the
		// window was reset so nothing fired yet.
		mu.Lock()
		assert.Equal(t, 0, callCount)
		mu.Unlock()

		time.Sleep(50 * time.Millisecond)
		synctest.Wait()

		mu.Lock()
		assert.Equal(t, 1, callCount)
		mu.Unlock()
	})
}

func TestDebouncer_SeparateWindows(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var mu sync.Mutex
		callCount := 0

		d := watcher.NewDebouncer(50*time.Millisecond, func([]string) {
			mu.Lock()
			callCount++
			mu.Unlock()
		})

		d.Add("a.rs")
		time.Sleep(100 * time.Millisecond)
		synctest.Wait()

		d.Add("b.rs")
		time.Sleep(100 * time.Millisecond)
		synctest.Wait()

		mu.Lock()
		assert.Equal(t, 2, callCount)
		mu.Unlock()
	})
}

func TestDebouncer_Flush(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var received []string

		d := watcher.NewDebouncer(time.Hour, func(paths []string) {
			received = paths
		})

		d.Add("a.rs")
		d.Add("b.rs")

		// Flush is synchronous and does not wait for the window.
		d.Flush()

		require.Len(t, received, 2)
	})
}

func TestDebouncer_Flush_Empty(t *testing.T) {
	callCount := 0
	d := watcher.NewDebouncer(time.Hour, func([]string) {
		callCount++
	})

	d.Flush()
	assert.Equal(t, 0, callCount)
}

func TestDebouncer_Flush_ClearsPending(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var mu sync.Mutex
		callCount := 0

		d := watcher.NewDebouncer(50*time.Millisecond, func([]string) {
			mu.Lock()
			callCount++
			mu.Unlock()
		})

		d.Add("a.rs")
		d.Flush()

		// The original timer must not fire a second time.
		time.Sleep(100 * time.Millisecond)
		synctest.Wait()

		mu.Lock()
		assert.Equal(t, 1, callCount)
		mu.Unlock()
	})
}

func TestDebouncer_NilCallback(t *testing.T) {
	synctest.Test(t, func(_ *testing.T) {
		d := watcher.NewDebouncer(10*time.Millisecond, nil)

		d.Add("a.rs")
		time.Sleep(50 * time.Millisecond)
		synctest.Wait()
		d.Flush()
	})
}
