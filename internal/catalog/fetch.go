package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
)

// ErrNoURL is returned when a source has no download location.
var ErrNoURL = errors.New("source has no url")

// Fetcher downloads catalog sources into a directory.
type Fetcher struct {
	Client *http.Client
	Dir    string
	// Force re-downloads files that already exist.
	Force bool
}

// Fetch downloads one source. It reports false when the file was already
// present and left alone.
func (f *Fetcher) Fetch(ctx context.Context, s Source) (bool, error) {
	if s.URL == "" {
		return false, fmt.Errorf("%s: %w", s.Filename, ErrNoURL)
	}

	path := filepath.Join(f.Dir, s.Filename)
	if !f.Force {
		if _, err := os.Stat(path); err == nil {
			return false, nil
		}
	}

	if err := os.MkdirAll(f.Dir, 0755); err != nil {
		return false, fmt.Errorf("create source directory: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return false, err
	}

	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("HTTP %d", resp.StatusCode)
	}

	// Written beside the target and renamed into place.
	tmp, err := os.CreateTemp(f.Dir, "."+s.Filename+".*")
	if err != nil {
		return false, err
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		return false, err
	}
	if err := tmp.Close(); err != nil {
		return false, err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return false, err
	}
	return true, nil
}
