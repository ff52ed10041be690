package record

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/abdulachik/scribe/internal/gutenberg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock() time.Time {
	return time.Date(2024, 3, 1, 12, 30, 0, 0, time.FixedZone("EST", -5*3600))
}

func TestEmitter_Emit(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	emitter := NewEmitter(dir, fixedClock)

	meta := gutenberg.Metadata{
		Title:    "The King James Version of the Bible",
		Language: "English",
		License:  "This ebook is for the use of anyone anywhere",
	}
	units := []Unit{
		Verse{Book: "Genesis", Chapter: 1, Verse: 1, Text: "In the beginning"},
		Verse{Book: "Genesis", Chapter: 1, Verse: 2, Text: "And the earth"},
	}

	out, err := emitter.Emit("pg10.txt", meta, units)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "pg10_header.json"), out.HeaderPath)
	assert.Equal(t, filepath.Join(dir, "pg10_content.jsonl"), out.ContentPath)

	t.Run("header", func(t *testing.T) {
		h, err := ReadHeader(out.HeaderPath)
		require.NoError(t, err)
		assert.Equal(t, meta.Title, h.Title)
		assert.Empty(t, h.Author)
		assert.Equal(t, "English", h.Language)
		assert.Equal(t, "pg10.txt", h.SourceFilename)
		assert.Equal(t, "pg10_content.jsonl", h.ContentFilename)
		assert.Equal(t, "2024-03-01T17:30:00Z", h.ProcessingDateUTC)
		assert.Equal(t, meta.License, h.License)
		assert.Equal(t, 2, h.RecordCount)
	})

	t.Run("content preserves order", func(t *testing.T) {
		data, err := os.ReadFile(out.ContentPath)
		require.NoError(t, err)

		lines := strings.Split(strings.TrimSpace(string(data)), "\n")
		require.Len(t, lines, 2)
		assert.JSONEq(t, `{"book":"Genesis","chapter":1,"verse":1,"text":"In the beginning"}`, lines[0])
		assert.JSONEq(t, `{"book":"Genesis","chapter":1,"verse":2,"text":"And the earth"}`, lines[1])
	})

	t.Run("no temp files left", func(t *testing.T) {
		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Len(t, entries, 2)
	})
}

func TestEmitter_EmitZeroUnits(t *testing.T) {
	dir := t.TempDir()
	out, err := NewEmitter(dir, fixedClock).Emit("empty.txt", gutenberg.Metadata{}, nil)
	require.NoError(t, err)

	assert.Equal(t, 0, out.Header.RecordCount)
	data, err := os.ReadFile(out.ContentPath)
	require.NoError(t, err)
	assert.Empty(t, data)
}

func TestEncodeLines_KeepsHTMLCharacters(t *testing.T) {
	var buf bytes.Buffer
	err := EncodeLines(&buf, []Unit{Verse{Book: "Job", Chapter: 1, Verse: 1, Text: "<b> & </b>"}})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "<b> & </b>")
}

func TestFileNames(t *testing.T) {
	assert.Equal(t, "pg2850_header.json", HeaderName("pg2850.txt"))
	assert.Equal(t, "pg2850_content.jsonl", ContentName("/src/pg2850.txt"))
}

func TestEmitter_Emit_UntitledSource(t *testing.T) {
	emitter := NewEmitter(t.TempDir(), fixedClock)

	out, err := emitter.Emit("untitled.txt", gutenberg.Metadata{}, nil)
	require.NoError(t, err)
	assert.Equal(t, gutenberg.UnknownWork, out.Header.Title)

	data, err := os.ReadFile(out.HeaderPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"title": "Unknown Work"`)
	assert.Contains(t, string(data), `"record_count": 0`)
}
