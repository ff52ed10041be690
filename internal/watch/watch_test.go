package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type calls struct {
	mu    sync.Mutex
	names []string
}

func (c *calls) handle(_ context.Context, name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.names = append(c.names, name)
	return nil
}

func (c *calls) snapshot() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.names...)
}

func startWatcher(t *testing.T, cfg Config) context.CancelFunc {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)

	w := New(cfg)
	go func() { done <- w.Run(ctx) }()

	t.Cleanup(func() {
		cancel()
		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(5 * time.Second):
			t.Error("watcher did not stop")
		}
	})

	// Give the watcher time to register the directory.
	time.Sleep(100 * time.Millisecond)
	return cancel
}

func TestWatcher(t *testing.T) {
	t.Run("handles accepted files once per burst", func(t *testing.T) {
		dir := t.TempDir()
		var c calls
		startWatcher(t, Config{
			Dir:      dir,
			Accept:   func(name string) bool { return name == "pg10.txt" },
			Debounce: 200 * time.Millisecond,
			Handler:  c.handle,
		})

		path := filepath.Join(dir, "pg10.txt")
		require.NoError(t, os.WriteFile(path, []byte("one"), 0644))
		require.NoError(t, os.WriteFile(path, []byte("two"), 0644))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0644))

		require.Eventually(t, func() bool {
			return len(c.snapshot()) == 1
		}, 3*time.Second, 20*time.Millisecond)

		time.Sleep(400 * time.Millisecond)
		assert.Equal(t, []string{"pg10.txt"}, c.snapshot())
	})

	t.Run("missing directory", func(t *testing.T) {
		w := New(Config{Dir: filepath.Join(t.TempDir(), "absent"), Handler: func(context.Context, string) error { return nil }})
		err := w.Run(context.Background())
		assert.Error(t, err)
	})

	t.Run("cancel drops pending work", func(t *testing.T) {
		dir := t.TempDir()
		var c calls
		cancel := startWatcher(t, Config{
			Dir:      dir,
			Debounce: time.Hour,
			Handler:  c.handle,
		})

		require.NoError(t, os.WriteFile(filepath.Join(dir, "pg2850.txt"), []byte("x"), 0644))
		time.Sleep(100 * time.Millisecond)
		cancel()
		time.Sleep(100 * time.Millisecond)
		assert.Empty(t, c.snapshot())
	})
}
