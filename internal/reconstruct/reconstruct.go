// Package reconstruct regenerates approximate body text from a paragraph
// record stream, to check that parsing kept the document's structure.
package reconstruct

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/abdulachik/scribe/internal/record"
	"github.com/abdulachik/scribe/internal/roman"
)

// Options controls how headers are written.
type Options struct {
	// RomanChapters writes "CHAPTER IV." instead of "CHAPTER 4.".
	RomanChapters bool
}

// Writer re-emits book, chapter and footnote headers whenever a record's
// locator changes, followed by the numbered paragraph.
type Writer struct {
	w    *bufio.Writer
	opts Options

	started     bool
	lastBook    string
	lastChapter record.Chapter
	chapterSet  bool
	count       int
}

// NewWriter creates a Writer on w.
func NewWriter(w io.Writer, opts Options) *Writer {
	return &Writer{w: bufio.NewWriter(w), opts: opts}
}

// Write appends one paragraph.
func (rw *Writer) Write(p record.Paragraph) error {
	if !rw.started || p.Book != rw.lastBook {
		if rw.started {
			rw.w.WriteString("\n\n\n")
		}
		if p.Book == record.BookPreface {
			rw.w.WriteString("PREFACE\n")
		} else {
			fmt.Fprintf(rw.w, "BOOK %s.\n", p.Book)
		}
		rw.started = true
		rw.lastBook = p.Book
		rw.chapterSet = false
	}

	if !rw.chapterSet || p.Chapter != rw.lastChapter {
		rw.w.WriteString("\n\n")
		switch {
		case p.Chapter.Label() == record.ChapterFootnotes:
			rw.w.WriteString(rw.footnotesHeader(p.Book) + "\n")
		case p.Chapter.Label() == record.ChapterPreface, p.Chapter.IsZero():
		default:
			rw.w.WriteString(rw.chapterHeader(p.Chapter) + "\n")
		}
		rw.lastChapter = p.Chapter
		rw.chapterSet = true
		rw.w.WriteString("\n")
	}

	fmt.Fprintf(rw.w, "%d. %s\n", p.Paragraph, p.Text)
	rw.count++
	return nil
}

// Flush writes any buffered text.
func (rw *Writer) Flush() error {
	return rw.w.Flush()
}

// Count returns the number of paragraphs written.
func (rw *Writer) Count() int {
	return rw.count
}

func (rw *Writer) footnotesHeader(book string) string {
	if book == record.BookPreface {
		return "WAR PREFACE FOOTNOTES"
	}
	n, err := roman.Decode(book)
	if err != nil {
		slog.Warn("book is not a roman numeral", "book", book)
		return fmt.Sprintf("WAR BOOK %s FOOTNOTES", book)
	}
	return fmt.Sprintf("WAR BOOK %d FOOTNOTES", n)
}

func (rw *Writer) chapterHeader(c record.Chapter) string {
	n, ok := c.Number()
	if !ok {
		return fmt.Sprintf("CHAPTER %s.", c)
	}
	if rw.opts.RomanChapters {
		if numeral, err := roman.Encode(n); err == nil {
			return "CHAPTER " + numeral + "."
		}
	}
	return "CHAPTER " + strconv.Itoa(n) + "."
}

// Stream reconstructs every paragraph read from r into w.
func Stream(r io.Reader, w io.Writer, opts Options) (int, error) {
	rw := NewWriter(w, opts)
	err := record.DecodeLines(r, func(p record.Paragraph) error {
		return rw.Write(p)
	})
	if err != nil {
		return rw.Count(), err
	}
	return rw.Count(), rw.Flush()
}

// File reconstructs the content file at inputPath into outputPath,
// creating the output directory if needed.
func File(inputPath, outputPath string, opts Options) (int, error) {
	in, err := os.Open(inputPath)
	if err != nil {
		return 0, fmt.Errorf("open input: %w", err)
	}
	defer in.Close()

	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return 0, fmt.Errorf("create output directory: %w", err)
	}

	out, err := os.Create(outputPath)
	if err != nil {
		return 0, fmt.Errorf("create output: %w", err)
	}

	n, err := Stream(in, out, opts)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return n, fmt.Errorf("reconstruct %s: %w", filepath.Base(inputPath), err)
	}

	slog.Info("reconstruction complete", "output", outputPath, "paragraphs", n)
	return n, nil
}
