// Package catalog lists the source texts scribe knows how to process.
package catalog

import (
	_ "embed"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Parser kinds.
const (
	ParserVerse     = "verse"
	ParserParagraph = "paragraph"
)

//go:embed sources.yaml
var defaultSources []byte

// Source describes one source text.
type Source struct {
	Filename string `yaml:"filename"`
	Title    string `yaml:"title"`
	Author   string `yaml:"author,omitempty"`
	Parser   string `yaml:"parser"`
	URL      string `yaml:"url,omitempty"`
}

// Catalog is the set of known sources.
type Catalog struct {
	Sources []Source `yaml:"sources"`
}

// Default returns the built-in catalog.
func Default() (*Catalog, error) {
	return parse(defaultSources)
}

// Load reads a catalog file, or the built-in catalog when path is empty.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return parse(data)
}

func parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks that every source is complete and unique.
func (c *Catalog) Validate() error {
	seen := make(map[string]bool, len(c.Sources))
	for i, s := range c.Sources {
		if s.Filename == "" {
			return fmt.Errorf("source %d: filename is required", i)
		}
		if seen[s.Filename] {
			return fmt.Errorf("source %s: duplicate filename", s.Filename)
		}
		seen[s.Filename] = true

		switch s.Parser {
		case ParserVerse, ParserParagraph:
		default:
			return fmt.Errorf("source %s: invalid parser %q (must be %q or %q)",
				s.Filename, s.Parser, ParserVerse, ParserParagraph)
		}
	}
	return nil
}

// Lookup finds a source by filename.
func (c *Catalog) Lookup(filename string) (Source, bool) {
	for _, s := range c.Sources {
		if s.Filename == filename {
			return s, true
		}
	}
	return Source{}, false
}
