// Package record defines the output contract shared by every parser: a
// metadata header per document and a stream of flat, locator-tagged units.
package record

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Fixed labels used in paragraph locators.
const (
	BookPreface      = "Preface"
	ChapterPreface   = "Preface"
	ChapterFootnotes = "Footnotes"
)

// Unit is one emitted content record.
type Unit interface {
	// Locator returns a human-readable structural address.
	Locator() string
	// Content returns the unit text.
	Content() string
}

// Verse is a unit addressed by book, chapter and verse.
type Verse struct {
	Book    string `json:"book"`
	Chapter int    `json:"chapter"`
	Verse   int    `json:"verse"`
	Text    string `json:"text"`
}

func (v Verse) Locator() string {
	return fmt.Sprintf("%s %d:%d", v.Book, v.Chapter, v.Verse)
}

func (v Verse) Content() string { return v.Text }

// Paragraph is a unit addressed by work, book, chapter and paragraph.
type Paragraph struct {
	Work      string  `json:"work"`
	Book      string  `json:"book"`
	Chapter   Chapter `json:"chapter"`
	Paragraph int     `json:"paragraph"`
	Text      string  `json:"text"`
}

func (p Paragraph) Locator() string {
	return fmt.Sprintf("%s %s.%s.%d", p.Work, p.Book, p.Chapter, p.Paragraph)
}

func (p Paragraph) Content() string { return p.Text }

// Chapter is a paragraph chapter: a number, a label such as "Footnotes",
// or nothing when no chapter marker has been seen in the current book.
type Chapter struct {
	number int
	label  string
}

// ChapterNumber returns a numbered chapter.
func ChapterNumber(n int) Chapter {
	return Chapter{number: n}
}

// ChapterLabel returns a labelled chapter.
func ChapterLabel(label string) Chapter {
	return Chapter{label: label}
}

// IsZero reports whether no chapter is set.
func (c Chapter) IsZero() bool {
	return c.number == 0 && c.label == ""
}

// Number returns the chapter number, if the chapter is numbered.
func (c Chapter) Number() (int, bool) {
	return c.number, c.number > 0
}

// Label returns the chapter label, empty for numbered chapters.
func (c Chapter) Label() string {
	return c.label
}

func (c Chapter) String() string {
	switch {
	case c.number > 0:
		return strconv.Itoa(c.number)
	case c.label != "":
		return c.label
	default:
		return "-"
	}
}

// MarshalJSON encodes a number, a string or null.
func (c Chapter) MarshalJSON() ([]byte, error) {
	switch {
	case c.number > 0:
		return []byte(strconv.Itoa(c.number)), nil
	case c.label != "":
		return json.Marshal(c.label)
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON accepts a number, a string or null.
func (c *Chapter) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	*c = Chapter{}

	switch {
	case bytes.Equal(data, []byte("null")):
		return nil
	case len(data) > 0 && data[0] == '"':
		return json.Unmarshal(data, &c.label)
	default:
		n, err := strconv.Atoi(string(data))
		if err != nil {
			return fmt.Errorf("decode chapter %s: %w", data, err)
		}
		c.number = n
		return nil
	}
}

// Entry is a decoded content line of either shape.
type Entry struct {
	Work      string  `json:"work,omitempty"`
	Book      string  `json:"book"`
	Chapter   Chapter `json:"chapter"`
	Verse     int     `json:"verse,omitempty"`
	Paragraph int     `json:"paragraph,omitempty"`
	Text      string  `json:"text"`
}

// Locator formats the entry like the Verse or Paragraph it was encoded from.
func (e Entry) Locator() string {
	if e.Verse > 0 {
		n, _ := e.Chapter.Number()
		return Verse{Book: e.Book, Chapter: n, Verse: e.Verse}.Locator()
	}
	return Paragraph{Work: e.Work, Book: e.Book, Chapter: e.Chapter, Paragraph: e.Paragraph}.Locator()
}

func (e Entry) Content() string { return e.Text }

// Header is the per-document metadata object.
type Header struct {
	Title             string `json:"title"`
	Author            string `json:"author,omitempty"`
	ReleaseDate       string `json:"release_date,omitempty"`
	Language          string `json:"language,omitempty"`
	SourceFilename    string `json:"source_filename"`
	ContentFilename   string `json:"content_filename"`
	ProcessingDateUTC string `json:"processing_date_utc"`
	License           string `json:"license"`
	RecordCount       int    `json:"record_count"`
}
