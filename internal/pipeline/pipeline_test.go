package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/abdulachik/scribe/internal/catalog"
	"github.com/abdulachik/scribe/internal/parser"
	"github.com/abdulachik/scribe/internal/record"
	"github.com/abdulachik/scribe/internal/tracker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

// setupSources copies the named testdata files into a fresh source dir.
func setupSources(t *testing.T, names ...string) string {
	t.Helper()
	dir := t.TempDir()
	for _, name := range names {
		data, err := os.ReadFile(filepath.Join("testdata", name))
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), data, 0644))
	}
	return dir
}

func newPipeline(t *testing.T, sourceDir string, tr tracker.Tracker) (*Pipeline, string) {
	t.Helper()
	c, err := catalog.Default()
	require.NoError(t, err)
	registry, err := NewRegistryFromCatalog(c)
	require.NoError(t, err)

	outDir := filepath.Join(t.TempDir(), "processed")
	return New(Config{
		SourceDir: sourceDir,
		OutputDir: outDir,
		Registry:  registry,
		Tracker:   tr,
		Clock:     fixedClock,
		Workers:   2,
	}), outDir
}

func TestPipeline_RunAll(t *testing.T) {
	sourceDir := setupSources(t, "pg10.txt", "pg2850.txt")
	require.NoError(t, os.WriteFile(filepath.Join(sourceDir, "notes.txt"), []byte("scratch"), 0644))

	mem := tracker.NewMemory()
	p, outDir := newPipeline(t, sourceDir, mem)

	summary, err := p.RunAll(context.Background())
	require.NoError(t, err)

	require.Len(t, summary.Results, 3)
	assert.Equal(t, 2, summary.Count(StatusProcessed))
	assert.Equal(t, 1, summary.Count(StatusNoProcessor))
	assert.Equal(t, 0, summary.Count(StatusFailed))
	assert.Equal(t, "notes.txt", summary.Results[0].Filename)
	assert.ErrorIs(t, summary.Results[0].Err, ErrNoProcessor)

	t.Run("verse output", func(t *testing.T) {
		h, err := record.ReadHeader(filepath.Join(outDir, "pg10_header.json"))
		require.NoError(t, err)
		assert.Equal(t, 3, h.RecordCount)
		assert.Equal(t, "2024-06-01T08:00:00Z", h.ProcessingDateUTC)
		assert.Equal(t, "August 1, 1989", h.ReleaseDate)

		f, err := os.Open(filepath.Join(outDir, "pg10_content.jsonl"))
		require.NoError(t, err)
		defer f.Close()

		var verses []record.Verse
		require.NoError(t, record.DecodeLines(f, func(v record.Verse) error {
			verses = append(verses, v)
			return nil
		}))
		require.Len(t, verses, 3)
		assert.Equal(t, "The Gospel According to Saint John", verses[2].Book)
		assert.True(t, strings.HasSuffix(verses[2].Text, "have everlasting life."))
	})

	t.Run("paragraph output", func(t *testing.T) {
		h, err := record.ReadHeader(filepath.Join(outDir, "pg2850_header.json"))
		require.NoError(t, err)
		assert.Equal(t, "Flavius Josephus", h.Author)
		assert.Equal(t, 6, h.RecordCount)
	})

	t.Run("tracker updated", func(t *testing.T) {
		e, ok := mem.Get("pg10.txt")
		require.True(t, ok)
		assert.Equal(t, p.RunID(), e.RunID)
		assert.Equal(t, 3, e.RecordCount)
		assert.Equal(t, fixedNow, e.ProcessedAt)
	})
}

func TestPipeline_Idempotent(t *testing.T) {
	sourceDir := setupSources(t, "pg10.txt")
	mem := tracker.NewMemory()

	first, outDir := newPipeline(t, sourceDir, mem)
	res, err := first.ProcessFile(context.Background(), "pg10.txt")
	require.NoError(t, err)
	assert.Equal(t, StatusProcessed, res.Status)

	require.NoError(t, os.RemoveAll(outDir))

	second := New(Config{
		SourceDir: sourceDir,
		OutputDir: outDir,
		Registry:  first.registry,
		Tracker:   mem,
		Clock:     fixedClock,
	})
	res, err = second.ProcessFile(context.Background(), "pg10.txt")
	require.NoError(t, err)
	assert.Equal(t, StatusSkipped, res.Status)
	assert.Equal(t, 0, res.Units)

	_, err = os.Stat(outDir)
	assert.ErrorIs(t, err, os.ErrNotExist, "a cache hit writes nothing")

	t.Run("changed content is reprocessed", func(t *testing.T) {
		f, err := os.OpenFile(filepath.Join(sourceDir, "pg10.txt"), os.O_APPEND|os.O_WRONLY, 0644)
		require.NoError(t, err)
		_, err = f.WriteString("\n")
		require.NoError(t, err)
		require.NoError(t, f.Close())

		res, err := second.ProcessFile(context.Background(), "pg10.txt")
		require.NoError(t, err)
		assert.Equal(t, StatusProcessed, res.Status)
	})

	t.Run("force bypasses tracker", func(t *testing.T) {
		forced := New(Config{
			SourceDir: sourceDir,
			OutputDir: outDir,
			Registry:  first.registry,
			Tracker:   mem,
			Force:     true,
		})
		res, err := forced.ProcessFile(context.Background(), "pg10.txt")
		require.NoError(t, err)
		assert.Equal(t, StatusProcessed, res.Status)
	})
}

func TestPipeline_MissingInput(t *testing.T) {
	p, outDir := newPipeline(t, t.TempDir(), tracker.NewMemory())

	_, err := p.ProcessFile(context.Background(), "pg10.txt")
	assert.ErrorIs(t, err, parser.ErrNotFound)

	_, statErr := os.Stat(outDir)
	assert.ErrorIs(t, statErr, os.ErrNotExist)
}

func TestPipeline_MissingSourceDir(t *testing.T) {
	p, _ := newPipeline(t, filepath.Join(t.TempDir(), "absent"), tracker.NewMemory())

	_, err := p.RunAll(context.Background())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "read source directory")
}

type brokenTracker struct{}

func (brokenTracker) Exists(context.Context, string, string) (bool, error) {
	return false, errors.Join(tracker.ErrUnavailable, errors.New("connection refused"))
}

func (brokenTracker) Upsert(context.Context, tracker.Entry) error {
	return tracker.ErrUnavailable
}

func TestPipeline_TrackerUnavailable(t *testing.T) {
	sourceDir := setupSources(t, "pg10.txt", "pg2850.txt")
	p, outDir := newPipeline(t, sourceDir, brokenTracker{})

	_, err := p.RunAll(context.Background())
	assert.ErrorIs(t, err, tracker.ErrUnavailable)

	_, statErr := os.Stat(outDir)
	assert.ErrorIs(t, statErr, os.ErrNotExist, "nothing written when the tracker is down")
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	r.Register("b.txt", parser.NewParagraphParser())
	r.Register("a.txt", parser.NewVerseParser(nil))

	assert.Equal(t, []string{"a.txt", "b.txt"}, r.Filenames())
	_, ok := r.Lookup("c.txt")
	assert.False(t, ok)

	_, err := NewRegistryFromCatalog(&catalog.Catalog{Sources: []catalog.Source{{Filename: "x", Parser: "poem"}}})
	assert.Error(t, err)
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "skipped", StatusSkipped.String())
	assert.Equal(t, "status(9)", Status(9).String())
}
