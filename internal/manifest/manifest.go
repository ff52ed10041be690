// Package manifest lists the documents in a processed corpus.
package manifest

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/abdulachik/scribe/internal/record"
	"github.com/charmbracelet/lipgloss"
)

const headerSuffix = "_header.json"

// Entry is one document header found in the corpus.
type Entry struct {
	File   string
	Header record.Header
}

// Load reads every header file in dir, sorted by filename.
func Load(dir string) ([]Entry, error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read processed directory: %w", err)
	}

	var names []string
	for _, f := range files {
		if !f.IsDir() && strings.HasSuffix(f.Name(), headerSuffix) {
			names = append(names, f.Name())
		}
	}
	sort.Strings(names)

	entries := make([]Entry, 0, len(names))
	for _, name := range names {
		h, err := record.ReadHeader(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		entries = append(entries, Entry{File: name, Header: *h})
	}
	return entries, nil
}

// Styles holds the lipgloss styles used by Render.
type Styles struct {
	Title     lipgloss.Style
	Entry     lipgloss.Style
	Label     lipgloss.Style
	Value     lipgloss.Style
	Separator lipgloss.Style
	Muted     lipgloss.Style
}

// DefaultStyles returns the standard manifest palette.
func DefaultStyles() *Styles {
	return &Styles{
		Title:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED")),
		Entry:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#06B6D4")),
		Label:     lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086")).Width(14),
		Value:     lipgloss.NewStyle().Foreground(lipgloss.Color("#CDD6F4")),
		Separator: lipgloss.NewStyle().Foreground(lipgloss.Color("#45475A")),
		Muted:     lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086")),
	}
}

// Render writes a human-readable manifest of entries read from dir.
func Render(w io.Writer, dir string, entries []Entry, styles *Styles) error {
	if styles == nil {
		styles = DefaultStyles()
	}

	var sb strings.Builder
	sb.WriteString(styles.Title.Render("Corpus Manifest") + "\n")
	sb.WriteString(styles.Muted.Render("Reading from: "+dir) + "\n\n")

	if len(entries) == 0 {
		sb.WriteString("No header files found. The corpus appears to be empty.\n")
		_, err := io.WriteString(w, sb.String())
		return err
	}

	line := styles.Separator.Render(strings.Repeat("-", 40))
	for i, e := range entries {
		h := e.Header
		sb.WriteString(styles.Entry.Render(fmt.Sprintf("Entry %d: %s", i+1, orNA(h.Title))) + "\n")
		field := func(label, value string) {
			sb.WriteString("  " + styles.Label.Render(label) + styles.Value.Render(value) + "\n")
		}
		field("Author:", orNA(h.Author))
		field("Source File:", orNA(h.SourceFilename))
		field("Content File:", orNA(h.ContentFilename))
		field("Records:", fmt.Sprintf("%d", h.RecordCount))
		field("Processed on:", orNA(h.ProcessingDateUTC))
		sb.WriteString(line + "\n")
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
