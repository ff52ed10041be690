package pipeline

import (
	"fmt"
	"sort"

	"github.com/abdulachik/scribe/internal/catalog"
	"github.com/abdulachik/scribe/internal/parser"
)

// Registry maps source filenames to the parser that understands them.
type Registry struct {
	parsers map[string]parser.Parser
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{parsers: make(map[string]parser.Parser)}
}

// NewRegistryFromCatalog registers a parser for every catalog source.
func NewRegistryFromCatalog(c *catalog.Catalog) (*Registry, error) {
	r := NewRegistry()
	for _, s := range c.Sources {
		switch s.Parser {
		case catalog.ParserVerse:
			r.Register(s.Filename, parser.NewVerseParser(parser.KJVBooks))
		case catalog.ParserParagraph:
			r.Register(s.Filename, parser.NewParagraphParser())
		default:
			return nil, fmt.Errorf("source %s: unknown parser %q", s.Filename, s.Parser)
		}
	}
	return r, nil
}

// Register binds filename to p, replacing any earlier binding.
func (r *Registry) Register(filename string, p parser.Parser) {
	r.parsers[filename] = p
}

// Lookup returns the parser for filename.
func (r *Registry) Lookup(filename string) (parser.Parser, bool) {
	p, ok := r.parsers[filename]
	return p, ok
}

// Filenames returns the registered filenames, sorted.
func (r *Registry) Filenames() []string {
	names := make([]string, 0, len(r.parsers))
	for name := range r.parsers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
