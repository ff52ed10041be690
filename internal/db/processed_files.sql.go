package db

import (
	"context"
	"fmt"
	"time"
)

const getProcessedFile = `-- name: GetProcessedFile :one
SELECT source_filename, content_hash, processed_at, run_id, record_count
FROM processed_files
WHERE source_filename = ?
`

// GetProcessedFile returns sql.ErrNoRows when the file was never processed.
func (q *Queries) GetProcessedFile(ctx context.Context, sourceFilename string) (ProcessedFile, error) {
	row := q.db.QueryRowContext(ctx, getProcessedFile, sourceFilename)
	var i ProcessedFile
	var processedAt string
	err := row.Scan(
		&i.SourceFilename,
		&i.ContentHash,
		&processedAt,
		&i.RunID,
		&i.RecordCount,
	)
	if err != nil {
		return i, err
	}
	i.ProcessedAt, err = parseTime(processedAt)
	return i, err
}

const upsertProcessedFile = `-- name: UpsertProcessedFile :exec
INSERT INTO processed_files (source_filename, content_hash, processed_at, run_id, record_count)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT(source_filename) DO UPDATE SET
    content_hash = excluded.content_hash,
    processed_at = excluded.processed_at,
    run_id = excluded.run_id,
    record_count = excluded.record_count
`

type UpsertProcessedFileParams struct {
	SourceFilename string
	ContentHash    string
	ProcessedAt    time.Time
	RunID          string
	RecordCount    int64
}

func (q *Queries) UpsertProcessedFile(ctx context.Context, arg UpsertProcessedFileParams) error {
	_, err := q.db.ExecContext(ctx, upsertProcessedFile,
		arg.SourceFilename,
		arg.ContentHash,
		formatTime(arg.ProcessedAt),
		arg.RunID,
		arg.RecordCount,
	)
	return err
}

const listProcessedFiles = `-- name: ListProcessedFiles :many
SELECT source_filename, content_hash, processed_at, run_id, record_count
FROM processed_files
ORDER BY source_filename
`

func (q *Queries) ListProcessedFiles(ctx context.Context) ([]ProcessedFile, error) {
	rows, err := q.db.QueryContext(ctx, listProcessedFiles)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []ProcessedFile
	for rows.Next() {
		var i ProcessedFile
		var processedAt string
		if err := rows.Scan(
			&i.SourceFilename,
			&i.ContentHash,
			&processedAt,
			&i.RunID,
			&i.RecordCount,
		); err != nil {
			return nil, err
		}
		if i.ProcessedAt, err = parseTime(processedAt); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const deleteProcessedFile = `-- name: DeleteProcessedFile :exec
DELETE FROM processed_files WHERE source_filename = ?
`

func (q *Queries) DeleteProcessedFile(ctx context.Context, sourceFilename string) error {
	_, err := q.db.ExecContext(ctx, deleteProcessedFile, sourceFilename)
	return err
}

const countProcessedFiles = `-- name: CountProcessedFiles :one
SELECT COUNT(*) FROM processed_files
`

func (q *Queries) CountProcessedFiles(ctx context.Context) (int64, error) {
	row := q.db.QueryRowContext(ctx, countProcessedFiles)
	var count int64
	err := row.Scan(&count)
	return count, err
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse processed_at %q: %w", s, err)
	}
	return t, nil
}
