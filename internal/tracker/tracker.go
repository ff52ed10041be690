// Package tracker records which source files have been processed, keyed by
// source filename and content hash, so unchanged inputs are not reprocessed.
package tracker

import (
	"context"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/abdulachik/scribe/internal/db"
	"github.com/zeebo/blake3"
)

// ErrUnavailable wraps any failure to reach the backing store. Callers
// treat it as fatal rather than assume the file is unprocessed.
var ErrUnavailable = errors.New("tracker unavailable")

// Entry describes one successful processing run of a source file.
type Entry struct {
	SourceFilename string
	ContentHash    string
	ProcessedAt    time.Time
	RunID          string
	RecordCount    int
}

// Tracker is the idempotency store consulted before and after processing.
type Tracker interface {
	// Exists reports whether sourceFilename was processed with this hash.
	Exists(ctx context.Context, sourceFilename, hash string) (bool, error)
	// Upsert records a successful processing run.
	Upsert(ctx context.Context, entry Entry) error
}

// HashFile returns the hex BLAKE3-256 digest of the file at path.
func HashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := blake3.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("hash %s: %w", path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// SQLite is a Tracker backed by the processed_files table.
type SQLite struct {
	store *db.Store
}

// NewSQLite creates a tracker over a migrated store.
func NewSQLite(store *db.Store) *SQLite {
	return &SQLite{store: store}
}

func (s *SQLite) Exists(ctx context.Context, sourceFilename, hash string) (bool, error) {
	row, err := s.store.GetProcessedFile(ctx, sourceFilename)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: get %s: %w", ErrUnavailable, sourceFilename, err)
	}
	return row.ContentHash == hash, nil
}

func (s *SQLite) Upsert(ctx context.Context, entry Entry) error {
	err := s.store.UpsertProcessedFile(ctx, db.UpsertProcessedFileParams{
		SourceFilename: entry.SourceFilename,
		ContentHash:    entry.ContentHash,
		ProcessedAt:    entry.ProcessedAt,
		RunID:          entry.RunID,
		RecordCount:    int64(entry.RecordCount),
	})
	if err != nil {
		return fmt.Errorf("%w: upsert %s: %w", ErrUnavailable, entry.SourceFilename, err)
	}
	return nil
}

// Memory is an in-process Tracker.
type Memory struct {
	mu      sync.Mutex
	entries map[string]Entry
}

// NewMemory creates an empty in-memory tracker.
func NewMemory() *Memory {
	return &Memory{entries: make(map[string]Entry)}
}

func (m *Memory) Exists(_ context.Context, sourceFilename, hash string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[sourceFilename]
	return ok && e.ContentHash == hash, nil
}

func (m *Memory) Upsert(_ context.Context, entry Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[entry.SourceFilename] = entry
	return nil
}

// Get returns the entry for sourceFilename.
func (m *Memory) Get(sourceFilename string) (Entry, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[sourceFilename]
	return e, ok
}
