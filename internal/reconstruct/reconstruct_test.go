package reconstruct

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/abdulachik/scribe/internal/parser"
	"github.com/abdulachik/scribe/internal/record"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleJSONL = `{"work":"W","book":"Preface","chapter":"Preface","paragraph":1,"text":"Whereas the war"}
{"work":"W","book":"Preface","chapter":"Footnotes","paragraph":1,"text":"(1) note"}
{"work":"W","book":"IV","chapter":1,"paragraph":1,"text":"At the time"}
{"work":"W","book":"IV","chapter":1,"paragraph":2,"text":"Now Antiochus"}
{"work":"W","book":"IV","chapter":"Footnotes","paragraph":1,"text":"(1) Hereabouts"}
`

func TestStream(t *testing.T) {
	var buf bytes.Buffer
	n, err := Stream(strings.NewReader(sampleJSONL), &buf, Options{})
	require.NoError(t, err)
	assert.Equal(t, 5, n)

	expected := "PREFACE\n" +
		"\n\n\n" +
		"1. Whereas the war\n" +
		"\n\nWAR PREFACE FOOTNOTES\n\n" +
		"1. (1) note\n" +
		"\n\n\n" +
		"BOOK IV.\n" +
		"\n\nCHAPTER 1.\n\n" +
		"1. At the time\n" +
		"2. Now Antiochus\n" +
		"\n\nWAR BOOK 4 FOOTNOTES\n\n" +
		"1. (1) Hereabouts\n"
	assert.Equal(t, expected, buf.String())
}

func TestStream_RomanChapters(t *testing.T) {
	var buf bytes.Buffer
	_, err := Stream(strings.NewReader(`{"work":"W","book":"I","chapter":14,"paragraph":1,"text":"x"}`), &buf, Options{RomanChapters: true})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "CHAPTER XIV.\n")
}

func TestStream_BadInput(t *testing.T) {
	var buf bytes.Buffer
	_, err := Stream(strings.NewReader("not json\n"), &buf, Options{})
	assert.Error(t, err)
}

func TestFile(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "pg2850_content.jsonl")
	require.NoError(t, os.WriteFile(input, []byte(sampleJSONL), 0644))

	output := filepath.Join(dir, "reconstructed", "pg2850_reconstructed.txt")
	n, err := File(input, output, Options{})
	require.NoError(t, err)
	assert.Equal(t, 5, n)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "PREFACE\n"))

	t.Run("missing input", func(t *testing.T) {
		_, err := File(filepath.Join(dir, "absent.jsonl"), output, Options{})
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}

// Reconstructed text parses back into the same records.
func TestRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	_, err := Stream(strings.NewReader(sampleJSONL), &buf, Options{})
	require.NoError(t, err)

	source := "Title: W\n*** START OF THE PROJECT GUTENBERG EBOOK W ***\n" +
		"Contents\nPREFACE\nBOOK IV.\n\n" + buf.String()

	doc, err := parser.NewParagraphParser().Parse(context.Background(), strings.NewReader(source))
	require.NoError(t, err)

	var want []record.Paragraph
	require.NoError(t, record.DecodeLines(strings.NewReader(sampleJSONL), func(p record.Paragraph) error {
		want = append(want, p)
		return nil
	}))

	require.Len(t, doc.Units, len(want))
	for i, u := range doc.Units {
		assert.Equal(t, want[i], u)
	}
}
