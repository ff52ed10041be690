package db

import "time"

// ProcessedFile records the last successful processing of a source file.
type ProcessedFile struct {
	SourceFilename string
	ContentHash    string
	ProcessedAt    time.Time
	RunID          string
	RecordCount    int64
}
