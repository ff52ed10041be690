// Package parser recovers the structure of Gutenberg texts: book, chapter
// and numbered unit, from loosely formatted plain text.
//
// Each parser is a line-driven state machine. One trimmed line drives one
// transition; a handler may ask for the same line to be fed again after the
// state change, which is how a phase hands its boundary line to the next.
package parser

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/abdulachik/scribe/internal/gutenberg"
	"github.com/abdulachik/scribe/internal/record"
)

// ErrNotFound is returned when a source file does not exist.
var ErrNotFound = errors.New("source not found")

// Document is the result of parsing one source text.
type Document struct {
	Meta  gutenberg.Metadata
	Units []record.Unit
	// Headers lists the section headers learned from the contents block,
	// in contents order. Empty for fixed-vocabulary parsing.
	Headers []string
}

// Parser turns a source text into a Document.
type Parser interface {
	Parse(ctx context.Context, r io.Reader) (*Document, error)
}

// ParseFile opens path and parses it with p.
func ParseFile(ctx context.Context, p Parser, path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %w", ErrNotFound, err)
		}
		return nil, fmt.Errorf("open source: %w", err)
	}
	defer f.Close()

	return p.Parse(ctx, f)
}

type state uint8

const (
	statePreamble state = iota
	stateFrontMatter
	stateContents
	stateSection
	stateFootnotes
	stateDone
)

func (s state) String() string {
	switch s {
	case statePreamble:
		return "preamble"
	case stateFrontMatter:
		return "front-matter"
	case stateContents:
		return "contents"
	case stateSection:
		return "section"
	case stateFootnotes:
		return "footnotes"
	case stateDone:
		return "done"
	default:
		return fmt.Sprintf("state(%d)", s)
	}
}

// handler consumes a line in one state and names the next state. When
// reprocess is set the same line is fed to the next state's handler.
type handler func(line string) (next state, reprocess bool)

// machine drives a transition table. A state without a handler is terminal.
type machine struct {
	current state
	table   map[state]handler
}

func (m *machine) feed(line string) {
	for {
		h, ok := m.table[m.current]
		if !ok {
			return
		}
		next, reprocess := h(line)
		if next != m.current {
			slog.Debug("parser transition", "from", m.current, "to", next)
			m.current = next
		}
		if !reprocess {
			return
		}
	}
}

func (m *machine) terminated() bool {
	_, ok := m.table[m.current]
	return !ok
}

// run feeds every line of r to m until the machine terminates.
func (m *machine) run(ctx context.Context, r io.Reader) error {
	return gutenberg.Lines(ctx, r, func(line string) bool {
		m.feed(line)
		return !m.terminated()
	})
}

// pending is the currently open unit: its initiating line plus any
// continuation lines, and a constructor applied when it is closed.
type pending struct {
	parts []string
	build func(text string) record.Unit
}

// collector keeps closed units separate from the single open one.
type collector struct {
	units []record.Unit
	open  *pending
}

func (c *collector) start(text string, build func(text string) record.Unit) {
	c.close()
	c.open = &pending{parts: []string{text}, build: build}
}

// extend appends a continuation line to the open unit. It reports false
// when no unit is open and the line was dropped.
func (c *collector) extend(line string) bool {
	if c.open == nil {
		return false
	}
	c.open.parts = append(c.open.parts, line)
	return true
}

func (c *collector) close() {
	if c.open == nil {
		return
	}
	c.units = append(c.units, c.open.build(strings.Join(c.open.parts, " ")))
	c.open = nil
}

func (c *collector) finish() []record.Unit {
	c.close()
	return c.units
}
