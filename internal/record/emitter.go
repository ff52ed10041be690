package record

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/abdulachik/scribe/internal/gutenberg"
)

// Clock returns the current time. Tests substitute a fixed clock.
type Clock func() time.Time

// Emitter writes a document header and its content stream to a directory.
type Emitter struct {
	dir   string
	clock Clock
}

// Output describes the files written for one document.
type Output struct {
	HeaderPath  string
	ContentPath string
	Header      Header
}

// NewEmitter creates an emitter writing into dir. A nil clock uses time.Now.
func NewEmitter(dir string, clock Clock) *Emitter {
	if clock == nil {
		clock = time.Now
	}
	return &Emitter{dir: dir, clock: clock}
}

// HeaderName returns the header filename for a source file.
func HeaderName(sourceFilename string) string {
	return baseName(sourceFilename) + "_header.json"
}

// ContentName returns the content filename for a source file.
func ContentName(sourceFilename string) string {
	return baseName(sourceFilename) + "_content.jsonl"
}

// Emit writes the content stream and then the header. Both files are
// written to temporary names and renamed into place, so a failed emission
// leaves no partial output behind.
func (e *Emitter) Emit(sourceFilename string, meta gutenberg.Metadata, units []Unit) (*Output, error) {
	if err := os.MkdirAll(e.dir, 0755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	contentPath := filepath.Join(e.dir, ContentName(sourceFilename))
	headerPath := filepath.Join(e.dir, HeaderName(sourceFilename))

	err := writeAtomic(contentPath, func(w io.Writer) error {
		return EncodeLines(w, units)
	})
	if err != nil {
		return nil, fmt.Errorf("write content: %w", err)
	}

	header := Header{
		Title:             meta.Work(),
		Author:            meta.Author,
		ReleaseDate:       meta.ReleaseDate,
		Language:          meta.Language,
		SourceFilename:    sourceFilename,
		ContentFilename:   filepath.Base(contentPath),
		ProcessingDateUTC: e.clock().UTC().Format(time.RFC3339Nano),
		License:           meta.License,
		RecordCount:       len(units),
	}

	err = writeAtomic(headerPath, func(w io.Writer) error {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(header)
	})
	if err != nil {
		os.Remove(contentPath)
		return nil, fmt.Errorf("write header: %w", err)
	}

	slog.Info("header metadata saved", "path", headerPath)
	slog.Info("records saved", "path", contentPath, "count", len(units))

	return &Output{
		HeaderPath:  headerPath,
		ContentPath: contentPath,
		Header:      header,
	}, nil
}

// EncodeLines writes one JSON object per line, in the given order.
func EncodeLines(w io.Writer, units []Unit) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	for i, u := range units {
		if err := enc.Encode(u); err != nil {
			return fmt.Errorf("encode record %d: %w", i, err)
		}
	}
	return nil
}

// ReadHeader loads a header file.
func ReadHeader(path string) (*Header, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var h Header
	if err := json.Unmarshal(data, &h); err != nil {
		return nil, fmt.Errorf("decode header %s: %w", filepath.Base(path), err)
	}
	return &h, nil
}

// DecodeLines calls fn for each JSON line of r decoded as T. Blank lines are
// skipped.
func DecodeLines[T any](r io.Reader, fn func(T) error) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var v T
		if err := json.Unmarshal([]byte(line), &v); err != nil {
			return fmt.Errorf("decode line %d: %w", lineNo, err)
		}
		if err := fn(v); err != nil {
			return err
		}
	}
	return scanner.Err()
}

func baseName(sourceFilename string) string {
	base := filepath.Base(sourceFilename)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func writeAtomic(path string, write func(io.Writer) error) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+"-*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()

	bw := bufio.NewWriter(tmp)
	if err := write(bw); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := bw.Flush(); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return err
	}
	return nil
}
