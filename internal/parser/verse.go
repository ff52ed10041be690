package parser

import (
	"context"
	"io"
	"log/slog"
	"regexp"
	"strconv"

	"github.com/abdulachik/scribe/internal/gutenberg"
	"github.com/abdulachik/scribe/internal/record"
)

var versePattern = regexp.MustCompile(`^(\d+):(\d+)\s(.*)$`)

// VerseParser parses texts whose books are named from a closed vocabulary
// and whose units are "<chapter>:<verse> <text>" lines.
type VerseParser struct {
	vocabulary map[string]struct{}
}

// NewVerseParser creates a parser recognising exactly the given book names.
func NewVerseParser(vocabulary []string) *VerseParser {
	vocab := make(map[string]struct{}, len(vocabulary))
	for _, name := range vocabulary {
		vocab[name] = struct{}{}
	}
	return &VerseParser{vocabulary: vocab}
}

// Parse reads a verse-style text.
func (p *VerseParser) Parse(ctx context.Context, r io.Reader) (*Document, error) {
	run := &verseRun{vocabulary: p.vocabulary}
	m := &machine{
		current: statePreamble,
		table: map[state]handler{
			statePreamble:    run.preamble,
			stateFrontMatter: run.frontMatter,
			stateSection:     run.section,
		},
	}

	if err := m.run(ctx, r); err != nil {
		return nil, err
	}

	if !run.pre.Done() {
		slog.Warn("start marker not found, body skipped")
	}

	doc := &Document{
		Meta:  run.pre.Metadata(),
		Units: run.units.finish(),
	}
	slog.Info("parsed verse document", "title", doc.Meta.Title, "verses", len(doc.Units))
	return doc, nil
}

type verseRun struct {
	vocabulary map[string]struct{}
	pre        gutenberg.Preamble
	book       string
	units      collector
}

func (r *verseRun) isBook(line string) bool {
	_, ok := r.vocabulary[line]
	return ok
}

func (r *verseRun) preamble(line string) (state, bool) {
	if r.pre.Feed(line) {
		return stateFrontMatter, false
	}
	return statePreamble, false
}

// frontMatter skips introductory text until the first book name.
func (r *verseRun) frontMatter(line string) (state, bool) {
	switch {
	case gutenberg.IsEndMarker(line):
		return stateDone, false
	case r.isBook(line):
		return stateSection, true
	default:
		return stateFrontMatter, false
	}
}

func (r *verseRun) section(line string) (state, bool) {
	if line == "" {
		return stateSection, false
	}

	if gutenberg.IsEndMarker(line) {
		r.units.close()
		return stateDone, false
	}

	if r.isBook(line) {
		r.units.close()
		r.book = line
		slog.Info("processing book", "book", r.book)
		return stateSection, false
	}

	if m := versePattern.FindStringSubmatch(line); m != nil {
		chapter, errC := strconv.Atoi(m[1])
		verse, errV := strconv.Atoi(m[2])
		if errC == nil && errV == nil {
			book := r.book
			r.units.start(m[3], func(text string) record.Unit {
				return record.Verse{Book: book, Chapter: chapter, Verse: verse, Text: text}
			})
			return stateSection, false
		}
	}

	if !r.units.extend(line) {
		slog.Debug("discarding line outside a verse", "book", r.book, "line", line)
	}
	return stateSection, false
}
