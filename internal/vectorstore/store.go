// Package vectorstore indexes parsed records in VecLite for semantic search.
package vectorstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/abdul-hamid-achik/veclite"
	"github.com/abdulachik/scribe/internal/record"
)

const recordsCollection = "records"

// Config holds configuration for the RecordStore.
type Config struct {
	// Path to the VecLite database file (e.g., "data/records.veclite").
	Path string

	// ConfigPath is the path to veclite.yaml (optional).
	// If empty, searches ./veclite.yaml, ~/.veclite/config.yaml.
	ConfigPath string
}

// Index stores embedded texts with payloads and answers similarity queries.
type Index interface {
	InsertText(text string, payload map[string]any) (uint64, error)
	Search(query string, k int) ([]SearchResult, error)
	Count() int
}

// RecordStore indexes records and searches them by meaning.
type RecordStore struct {
	vecdb *veclite.DB
	coll  *veclite.Collection
	index Index
}

// SearchResult is one record matched by a query.
type SearchResult struct {
	ID         uint64
	Locator    string
	Work       string
	Book       string
	Chapter    string
	Text       string
	Similarity float32
}

// New opens the store using veclite.yaml configuration.
func New(cfg Config) (*RecordStore, error) {
	slog.Debug("creating RecordStore", "path", cfg.Path, "config_path", cfg.ConfigPath)

	vecliteCfg, err := veclite.LoadConfig(cfg.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load veclite config: %w", err)
	}
	slog.Info("loaded veclite config", "provider", vecliteCfg.Embedder.Provider)

	embedder, err := veclite.NewEmbedderFromConfig(vecliteCfg.Embedder)
	if err != nil {
		return nil, fmt.Errorf("create embedder: %w", err)
	}

	vecdb, err := veclite.Open(cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("open veclite db: %w", err)
	}

	coll, err := vecdb.CreateCollection(recordsCollection,
		veclite.WithDimension(embedder.Dimension()),
		veclite.WithDistanceType(veclite.DistanceCosine),
		veclite.WithHNSW(16, 200),
		veclite.WithTextIndex("text", "book", "work"),
		veclite.WithEmbedder(embedder),
	)
	if err != nil {
		coll, err = vecdb.GetCollection(recordsCollection)
		if err != nil {
			vecdb.Close()
			return nil, fmt.Errorf("get collection: %w", err)
		}
	}

	return &RecordStore{vecdb: vecdb, coll: coll, index: collectionIndex{coll}}, nil
}

// NewWithIndex creates a store over an existing index.
func NewWithIndex(index Index) *RecordStore {
	return &RecordStore{index: index}
}

// collectionIndex adapts a VecLite collection to Index.
type collectionIndex struct {
	coll *veclite.Collection
}

func (c collectionIndex) InsertText(text string, payload map[string]any) (uint64, error) {
	return c.coll.InsertText(text, payload)
}

func (c collectionIndex) Search(query string, k int) ([]SearchResult, error) {
	results, err := c.coll.SearchText(query, veclite.TopK(k))
	if err != nil {
		return nil, err
	}
	return convertResults(results), nil
}

func (c collectionIndex) Count() int {
	return c.coll.Count()
}

// Close closes the VecLite database.
func (s *RecordStore) Close() error {
	if s.vecdb != nil {
		return s.vecdb.Close()
	}
	return nil
}

// Insert adds one record, embedding its text.
func (s *RecordStore) Insert(ctx context.Context, e record.Entry) (uint64, error) {
	payload := map[string]any{
		"locator": e.Locator(),
		"book":    e.Book,
		"chapter": e.Chapter.String(),
		"text":    e.Text,
	}
	if e.Work != "" {
		payload["work"] = e.Work
	}

	id, err := s.index.InsertText(e.Text, payload)
	if err != nil {
		return 0, fmt.Errorf("insert %s: %w", e.Locator(), err)
	}
	return id, nil
}

// IndexStream inserts every record of a content stream and returns the
// number inserted.
func (s *RecordStore) IndexStream(ctx context.Context, r io.Reader) (int, error) {
	n := 0
	err := record.DecodeLines(r, func(e record.Entry) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if e.Text == "" {
			return nil
		}
		if _, err := s.Insert(ctx, e); err != nil {
			return err
		}
		n++
		if n%500 == 0 {
			slog.Info("indexing records", "indexed", n)
		}
		return nil
	})
	return n, err
}

// IndexFile indexes a content JSONL file and persists the result.
func (s *RecordStore) IndexFile(ctx context.Context, path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open content: %w", err)
	}
	defer f.Close()

	n, err := s.IndexStream(ctx, f)
	if err != nil {
		return n, err
	}
	if err := s.Sync(); err != nil {
		return n, err
	}
	slog.Info("indexed content file", "file", path, "records", n)
	return n, nil
}

// Search finds records similar to the query text.
func (s *RecordStore) Search(ctx context.Context, query string, k int) ([]SearchResult, error) {
	if k <= 0 {
		k = 10
	}
	results, err := s.index.Search(query, k)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	return results, nil
}

// Count returns the number of indexed records.
func (s *RecordStore) Count() int {
	return s.index.Count()
}

// Stats returns statistics about the VecLite collection. It reports false
// for a store not backed by VecLite.
func (s *RecordStore) Stats() (veclite.CollectionStats, bool) {
	if s.coll == nil {
		return veclite.CollectionStats{}, false
	}
	return s.coll.Stats(), true
}

// Sync persists pending changes to disk.
func (s *RecordStore) Sync() error {
	if s.vecdb == nil {
		return nil
	}
	if err := s.vecdb.Sync(); err != nil {
		return fmt.Errorf("sync: %w", err)
	}
	return nil
}

var errNoPayload = errors.New("result has no payload")

func convertResults(results []veclite.Result) []SearchResult {
	out := make([]SearchResult, 0, len(results))
	for _, r := range results {
		sr, err := convertResult(r)
		if err != nil {
			slog.Debug("skipping result", "id", r.Record.ID, "error", err)
			continue
		}
		out = append(out, sr)
	}
	return out
}

func convertResult(r veclite.Result) (SearchResult, error) {
	sr := SearchResult{ID: r.Record.ID, Similarity: r.Score}

	p := r.Record.Payload
	if p == nil && r.Record.Content == "" {
		return sr, errNoPayload
	}
	sr.Locator, _ = p["locator"].(string)
	sr.Work, _ = p["work"].(string)
	sr.Book, _ = p["book"].(string)
	sr.Chapter, _ = p["chapter"].(string)
	sr.Text, _ = p["text"].(string)

	if sr.Text == "" {
		sr.Text = r.Record.Content
	}
	return sr, nil
}
