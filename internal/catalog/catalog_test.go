package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	kjv, ok := c.Lookup("pg10.txt")
	require.True(t, ok)
	assert.Equal(t, ParserVerse, kjv.Parser)
	assert.NotEmpty(t, kjv.URL)

	josephus, ok := c.Lookup("pg2850.txt")
	require.True(t, ok)
	assert.Equal(t, ParserParagraph, josephus.Parser)

	_, ok = c.Lookup("philo.txt")
	assert.False(t, ok)
}

func TestLoad(t *testing.T) {
	t.Run("custom file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "sources.yaml")
		require.NoError(t, os.WriteFile(path, []byte(`
sources:
  - filename: philo.txt
    title: On the Creation
    parser: paragraph
`), 0644))

		c, err := Load(path)
		require.NoError(t, err)
		require.Len(t, c.Sources, 1)
		assert.Equal(t, "On the Creation", c.Sources[0].Title)
	})

	t.Run("empty path uses default", func(t *testing.T) {
		c, err := Load("")
		require.NoError(t, err)
		assert.Len(t, c.Sources, 2)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestCatalog_Validate(t *testing.T) {
	tests := []struct {
		name    string
		sources []Source
		errMsg  string
	}{
		{"missing filename", []Source{{Parser: ParserVerse}}, "filename is required"},
		{"duplicate", []Source{{Filename: "a", Parser: ParserVerse}, {Filename: "a", Parser: ParserVerse}}, "duplicate"},
		{"bad parser", []Source{{Filename: "a", Parser: "poem"}}, "invalid parser"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := (&Catalog{Sources: tt.sources}).Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}
