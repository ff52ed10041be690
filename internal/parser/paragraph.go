package parser

import (
	"context"
	"io"
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"github.com/abdulachik/scribe/internal/gutenberg"
	"github.com/abdulachik/scribe/internal/record"
	"github.com/abdulachik/scribe/internal/roman"
)

const (
	contentsMarker  = "Contents"
	prefaceHeader   = "PREFACE"
	footnotesSuffix = "FOOTNOTES"
	chapterPrefix   = "CHAPTER "
)

var (
	sectionHeaderPattern = regexp.MustCompile(`^(PREFACE|BOOK [IVXLCDM]+)\.?$`)
	paragraphPattern     = regexp.MustCompile(`^(\d+)\.?\s(.*)$`)
)

// ParagraphParser parses prose texts divided into books, chapters and
// numbered paragraphs. Valid book headers are not known in advance: they
// are learned from the document's own contents block, and only headers
// listed there are trusted as section boundaries in the body.
type ParagraphParser struct{}

// NewParagraphParser creates a paragraph parser.
func NewParagraphParser() *ParagraphParser {
	return &ParagraphParser{}
}

// Parse reads a paragraph-style text.
func (p *ParagraphParser) Parse(ctx context.Context, r io.Reader) (*Document, error) {
	run := &paragraphRun{headers: NewHeaderSet()}
	m := &machine{current: statePreamble}
	m.table = map[state]handler{
		statePreamble:    run.preamble,
		stateFrontMatter: run.frontMatter,
		stateContents:    run.contents,
		stateSection:     func(line string) (state, bool) { return run.body(line, false) },
		stateFootnotes:   func(line string) (state, bool) { return run.body(line, true) },
	}

	if err := m.run(ctx, r); err != nil {
		return nil, err
	}

	if !run.pre.Done() {
		slog.Warn("start marker not found, body skipped")
	}

	switch m.current {
	case stateFrontMatter:
		slog.Warn("no contents block found, body skipped")
	case stateContents:
		first, _ := run.headers.First()
		slog.Warn("contents never closed, body skipped",
			"first_header", first,
			"learned", run.headers.Len(),
		)
	}

	doc := &Document{
		Meta:    run.pre.Metadata(),
		Units:   run.units.finish(),
		Headers: run.headers.Headers(),
	}
	slog.Info("parsed paragraph document", "title", doc.Meta.Title, "paragraphs", len(doc.Units))
	return doc, nil
}

type paragraphRun struct {
	pre     gutenberg.Preamble
	work    string
	headers *HeaderSet
	book    string
	chapter record.Chapter
	units   collector
}

func (r *paragraphRun) preamble(line string) (state, bool) {
	if r.pre.Feed(line) {
		r.work = r.pre.Metadata().Work()
		return stateFrontMatter, false
	}
	return statePreamble, false
}

func (r *paragraphRun) frontMatter(line string) (state, bool) {
	switch {
	case gutenberg.IsEndMarker(line):
		return stateDone, false
	case line == contentsMarker:
		return stateContents, false
	default:
		return stateFrontMatter, false
	}
}

// contents learns section headers until the first learned header recurs,
// which opens the body with that same line.
func (r *paragraphRun) contents(line string) (state, bool) {
	if first, ok := r.headers.First(); ok && line == first {
		r.headers.Freeze()
		slog.Info("learned document structure", "headers", r.headers.Headers())
		return stateSection, true
	}

	if gutenberg.IsEndMarker(line) {
		return stateDone, false
	}

	if sectionHeaderPattern.MatchString(line) {
		r.headers.Add(line)
	}
	return stateContents, false
}

func (r *paragraphRun) body(line string, inFootnotes bool) (state, bool) {
	current := stateSection
	if inFootnotes {
		current = stateFootnotes
	}

	if line == "" {
		return current, false
	}

	if gutenberg.IsEndMarker(line) {
		r.units.close()
		return stateDone, false
	}

	if r.headers.Contains(line) {
		r.units.close()
		r.enterSection(line)
		return stateSection, false
	}

	// FOOTNOTES and CHAPTER lines change context only; text that follows
	// them continues the open unit until the next paragraph marker.
	if strings.HasSuffix(line, footnotesSuffix) {
		r.chapter = record.ChapterLabel(record.ChapterFootnotes)
		slog.Info("processing footnotes", "book", r.book)
		return stateFootnotes, false
	}

	if strings.HasPrefix(line, chapterPrefix) && !inFootnotes {
		r.enterChapter(line)
		return stateSection, false
	}

	if m := paragraphPattern.FindStringSubmatch(line); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			work, book, chapter := r.work, r.book, r.chapter
			r.units.start(m[2], func(text string) record.Unit {
				return record.Paragraph{Work: work, Book: book, Chapter: chapter, Paragraph: n, Text: text}
			})
			return current, false
		}
	}

	if !r.units.extend(line) {
		slog.Debug("discarding line outside a paragraph", "book", r.book, "line", line)
	}
	return current, false
}

func (r *paragraphRun) enterSection(header string) {
	if header == prefaceHeader || strings.TrimSuffix(header, ".") == prefaceHeader {
		r.book = record.BookPreface
		r.chapter = record.ChapterLabel(record.ChapterPreface)
	} else {
		numeral := strings.TrimPrefix(header, "BOOK ")
		r.book = strings.TrimSuffix(numeral, ".")
		r.chapter = record.Chapter{}
	}
	slog.Info("processing section", "book", r.book)
}

// enterChapter reads "CHAPTER <n>." with an arabic or Roman number. An
// unreadable number leaves the chapter unchanged.
func (r *paragraphRun) enterChapter(line string) {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return
	}
	token := strings.ReplaceAll(fields[1], ".", "")

	n, err := strconv.Atoi(token)
	if err != nil && roman.IsNumeral(token) {
		n, err = roman.Decode(token)
	}
	if err != nil || n <= 0 {
		slog.Warn("unreadable chapter number", "book", r.book, "line", line)
		return
	}
	r.chapter = record.ChapterNumber(n)
	slog.Debug("processing chapter", "book", r.book, "chapter", n)
}
