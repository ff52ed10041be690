// Package pipeline runs source texts through their parsers, writes the
// structured output and records each run in the idempotency tracker.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/abdulachik/scribe/internal/parser"
	"github.com/abdulachik/scribe/internal/record"
	"github.com/abdulachik/scribe/internal/tracker"
	"github.com/google/uuid"
)

// ErrNoProcessor is reported for a source file with no registered parser.
var ErrNoProcessor = errors.New("no processor registered")

// Status is the outcome of processing one source file.
type Status int

const (
	StatusProcessed Status = iota
	StatusSkipped
	StatusNoProcessor
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusProcessed:
		return "processed"
	case StatusSkipped:
		return "skipped"
	case StatusNoProcessor:
		return "no-processor"
	case StatusFailed:
		return "failed"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Result reports what happened to one source file.
type Result struct {
	Filename string
	Status   Status
	Units    int
	Output   *record.Output
	Err      error
}

// Summary collects the results of a batch run.
type Summary struct {
	RunID   string
	Results []Result
}

// Count returns how many results have the given status.
func (s *Summary) Count(status Status) int {
	n := 0
	for _, r := range s.Results {
		if r.Status == status {
			n++
		}
	}
	return n
}

// Units returns the total number of units emitted.
func (s *Summary) Units() int {
	n := 0
	for _, r := range s.Results {
		n += r.Units
	}
	return n
}

// Config holds configuration for the pipeline.
type Config struct {
	SourceDir string
	OutputDir string
	Registry  *Registry
	Tracker   tracker.Tracker
	// Clock stamps headers and tracker entries. Defaults to time.Now.
	Clock record.Clock
	// Workers is the number of documents processed concurrently.
	Workers int
	// Force reprocesses files the tracker reports as unchanged.
	Force bool
}

// Pipeline processes source files.
type Pipeline struct {
	sourceDir string
	registry  *Registry
	tracker   tracker.Tracker
	emitter   *record.Emitter
	clock     record.Clock
	workers   int
	force     bool
	runID     string
}

// New creates a pipeline with a fresh run id.
func New(cfg Config) *Pipeline {
	clock := cfg.Clock
	if clock == nil {
		clock = time.Now
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = 1
	}
	registry := cfg.Registry
	if registry == nil {
		registry = NewRegistry()
	}

	return &Pipeline{
		sourceDir: cfg.SourceDir,
		registry:  registry,
		tracker:   cfg.Tracker,
		emitter:   record.NewEmitter(cfg.OutputDir, clock),
		clock:     clock,
		workers:   workers,
		force:     cfg.Force,
		runID:     uuid.NewString(),
	}
}

// RunID identifies this pipeline's runs in the tracker.
func (p *Pipeline) RunID() string {
	return p.runID
}

// RunAll processes every file in the source directory. Files without a
// parser are skipped with a warning and other per-file failures are
// recorded in the summary. A tracker failure aborts the batch.
func (p *Pipeline) RunAll(ctx context.Context) (*Summary, error) {
	entries, err := os.ReadDir(p.sourceDir)
	if err != nil {
		return nil, fmt.Errorf("read source directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if !entry.IsDir() {
			files = append(files, entry.Name())
		}
	}
	sort.Strings(files)

	slog.Info("starting corpus processing",
		"run_id", p.runID,
		"source_dir", p.sourceDir,
		"files", len(files),
		"workers", p.workers,
	)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	results := make([]Result, len(files))
	jobs := make(chan int)

	var (
		wg       sync.WaitGroup
		fatalErr error
		once     sync.Once
	)

	for w := 0; w < p.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				res, err := p.ProcessFile(ctx, files[i])
				if err != nil {
					res.Status = StatusFailed
					res.Err = err
					if errors.Is(err, tracker.ErrUnavailable) {
						once.Do(func() {
							fatalErr = err
							cancel()
						})
					} else {
						slog.Error("failed to process file", "file", files[i], "error", err)
					}
				}
				results[i] = res
			}
		}()
	}

feed:
	for i := range files {
		select {
		case jobs <- i:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)
	wg.Wait()

	if fatalErr != nil {
		return nil, fatalErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	summary := &Summary{RunID: p.runID, Results: results}
	slog.Info("corpus processing complete",
		"processed", summary.Count(StatusProcessed),
		"skipped", summary.Count(StatusSkipped),
		"no_processor", summary.Count(StatusNoProcessor),
		"failed", summary.Count(StatusFailed),
		"units", summary.Units(),
	)
	return summary, nil
}

// ProcessFile processes one file from the source directory.
func (p *Pipeline) ProcessFile(ctx context.Context, filename string) (Result, error) {
	res := Result{Filename: filename}

	prs, ok := p.registry.Lookup(filename)
	if !ok {
		slog.Warn("no processor defined, skipping", "file", filename)
		res.Status = StatusNoProcessor
		res.Err = ErrNoProcessor
		return res, nil
	}

	path := filepath.Join(p.sourceDir, filename)
	hash, err := tracker.HashFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return res, fmt.Errorf("%w: %w", parser.ErrNotFound, err)
		}
		return res, fmt.Errorf("hash source: %w", err)
	}

	if !p.force {
		done, err := p.tracker.Exists(ctx, filename, hash)
		if err != nil {
			return res, err
		}
		if done {
			slog.Info("already processed and unchanged, skipping", "file", filename)
			res.Status = StatusSkipped
			return res, nil
		}
	}

	slog.Info("processing source", "file", filename, "run_id", p.runID)

	doc, err := parser.ParseFile(ctx, prs, path)
	if err != nil {
		return res, fmt.Errorf("parse %s: %w", filename, err)
	}

	out, err := p.emitter.Emit(filename, doc.Meta, doc.Units)
	if err != nil {
		return res, fmt.Errorf("emit %s: %w", filename, err)
	}

	err = p.tracker.Upsert(ctx, tracker.Entry{
		SourceFilename: filename,
		ContentHash:    hash,
		ProcessedAt:    p.clock().UTC(),
		RunID:          p.runID,
		RecordCount:    len(doc.Units),
	})
	if err != nil {
		return res, err
	}
	slog.Debug("updated tracking status", "file", filename)

	res.Status = StatusProcessed
	res.Units = len(doc.Units)
	res.Output = out
	return res, nil
}
