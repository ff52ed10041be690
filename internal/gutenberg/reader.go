package gutenberg

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// NewReader wraps r so that a leading UTF-8 byte order mark is removed.
func NewReader(r io.Reader) io.Reader {
	return transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))
}

// Lines calls fn with every line of r, trimmed of surrounding whitespace.
// Lines of any length are delivered whole. Iteration stops early when fn
// returns false or ctx is cancelled.
func Lines(ctx context.Context, r io.Reader, fn func(line string) bool) error {
	br := bufio.NewReaderSize(NewReader(r), 64*1024)

	for {
		line, err := br.ReadString('\n')
		if line != "" {
			if cerr := ctx.Err(); cerr != nil {
				return cerr
			}
			if !fn(strings.TrimSpace(line)) {
				return nil
			}
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}
