package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetcher_Fetch(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if r.URL.Path == "/missing.txt" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write([]byte("Title: Test\n"))
	}))
	defer server.Close()

	dir := t.TempDir()
	f := &Fetcher{Client: server.Client(), Dir: dir}
	src := Source{Filename: "pg10.txt", URL: server.URL + "/pg10.txt"}

	t.Run("downloads", func(t *testing.T) {
		got, err := f.Fetch(context.Background(), src)
		require.NoError(t, err)
		assert.True(t, got)

		data, err := os.ReadFile(filepath.Join(dir, "pg10.txt"))
		require.NoError(t, err)
		assert.Equal(t, "Title: Test\n", string(data))
	})

	t.Run("skips existing", func(t *testing.T) {
		before := hits.Load()
		got, err := f.Fetch(context.Background(), src)
		require.NoError(t, err)
		assert.False(t, got)
		assert.Equal(t, before, hits.Load())
	})

	t.Run("force", func(t *testing.T) {
		forced := &Fetcher{Client: server.Client(), Dir: dir, Force: true}
		got, err := forced.Fetch(context.Background(), src)
		require.NoError(t, err)
		assert.True(t, got)
	})

	t.Run("http error leaves nothing", func(t *testing.T) {
		_, err := f.Fetch(context.Background(), Source{Filename: "missing.txt", URL: server.URL + "/missing.txt"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "HTTP 404")
		assert.NoFileExists(t, filepath.Join(dir, "missing.txt"))
	})

	t.Run("no url", func(t *testing.T) {
		_, err := f.Fetch(context.Background(), Source{Filename: "local.txt"})
		assert.ErrorIs(t, err, ErrNoURL)
	})
}
