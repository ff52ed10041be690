// Package gutenberg handles the Project Gutenberg preamble that precedes the
// body of every source text: metadata fields, the license block and the
// start/end sentinels.
package gutenberg

import (
	"strings"
)

// Sentinels marking phase boundaries in a Gutenberg text.
const (
	StartMarker   = "*** START OF THE PROJECT GUTENBERG EBOOK"
	EndMarker     = "*** END OF THE PROJECT GUTENBERG EBOOK"
	LicenseMarker = "This ebook is for the use of anyone anywhere"
)

// UnknownWork is the work title used when the preamble has no Title field.
const UnknownWork = "Unknown Work"

// Metadata holds the fields recovered from a preamble.
type Metadata struct {
	Title       string
	Author      string
	ReleaseDate string
	Language    string
	License     string
}

// Work returns the title, or UnknownWork when none was found.
func (m Metadata) Work() string {
	if m.Title == "" {
		return UnknownWork
	}
	return m.Title
}

// Preamble consumes preamble lines until the start marker is seen.
type Preamble struct {
	meta      Metadata
	license   []string
	capturing bool
	done      bool
}

// Feed processes one trimmed line and reports whether the preamble has
// ended. The line carrying the start marker ends the preamble; it is still
// part of the license block when a capture is in progress.
func (p *Preamble) Feed(line string) bool {
	if p.done {
		return true
	}

	if strings.Contains(line, LicenseMarker) {
		p.capturing = true
	}
	if p.capturing {
		p.license = append(p.license, line)
	}

	switch {
	case strings.HasPrefix(line, "Title:"):
		p.meta.Title = fieldValue(line)
	case strings.HasPrefix(line, "Author:"):
		p.meta.Author = fieldValue(line)
	case strings.HasPrefix(line, "Release date:"):
		date := fieldValue(line)
		if idx := strings.Index(date, "["); idx != -1 {
			date = strings.TrimSpace(date[:idx])
		}
		p.meta.ReleaseDate = date
	case strings.HasPrefix(line, "Language:"):
		p.meta.Language = fieldValue(line)
	case strings.Contains(line, StartMarker):
		p.capturing = false
		p.done = true
	}

	return p.done
}

// Done reports whether the start marker has been seen.
func (p *Preamble) Done() bool {
	return p.done
}

// Metadata returns the fields collected so far.
func (p *Preamble) Metadata() Metadata {
	meta := p.meta
	meta.License = strings.TrimSpace(strings.Join(p.license, "\n"))
	return meta
}

// IsEndMarker reports whether line closes the body.
func IsEndMarker(line string) bool {
	return strings.Contains(line, EndMarker)
}

func fieldValue(line string) string {
	_, value, _ := strings.Cut(line, ":")
	return strings.TrimSpace(value)
}
