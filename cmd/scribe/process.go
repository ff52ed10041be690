package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/abdulachik/scribe/internal/app"
	"github.com/abdulachik/scribe/internal/config"
	"github.com/abdulachik/scribe/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	processFile    string
	processWorkers int
	processForce   bool
)

var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Parse source texts into structured records",
	Long: `Process every source text in SOURCE_DIR that has a registered parser,
writing <name>_header.json and <name>_content.jsonl to PROCESSED_DIR.

Files already processed with unchanged content are skipped unless --force
is given.`,
	RunE: runProcess,
}

func init() {
	processCmd.Flags().StringVar(&processFile, "file", "", "Process a single source file")
	processCmd.Flags().IntVarP(&processWorkers, "workers", "w", 0, "Documents processed concurrently (default: WORKERS)")
	processCmd.Flags().BoolVarP(&processForce, "force", "f", false, "Reprocess unchanged files")
	rootCmd.AddCommand(processCmd)
}

func runProcess(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if err := cfg.ValidateForProcessing(); err != nil {
		return fmt.Errorf("validate config: %w", err)
	}

	a, err := app.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("initialize: %w", err)
	}
	defer a.Close()

	p := a.Pipeline(processWorkers, processForce)

	if processFile != "" {
		res, err := p.ProcessFile(ctx, processFile)
		if err != nil {
			return fmt.Errorf("process %s: %w", processFile, err)
		}
		printResult(res)
		return nil
	}

	summary, err := p.RunAll(ctx)
	if err != nil {
		return fmt.Errorf("process corpus: %w", err)
	}

	fmt.Println()
	fmt.Println("=== Processing Summary ===")
	fmt.Printf("Run: %s\n", summary.RunID)
	for _, res := range summary.Results {
		printResult(res)
	}
	fmt.Println()
	fmt.Printf("Processed: %d, Skipped: %d, No processor: %d, Failed: %d\n",
		summary.Count(pipeline.StatusProcessed),
		summary.Count(pipeline.StatusSkipped),
		summary.Count(pipeline.StatusNoProcessor),
		summary.Count(pipeline.StatusFailed),
	)
	fmt.Printf("Records written: %d\n", summary.Units())

	if n := summary.Count(pipeline.StatusFailed); n > 0 {
		slog.Warn("some files failed", "count", n)
	}
	return nil
}

func printResult(res pipeline.Result) {
	switch res.Status {
	case pipeline.StatusProcessed:
		fmt.Printf("  ✓ %s: %d records\n", res.Filename, res.Units)
	case pipeline.StatusFailed:
		fmt.Printf("  ✗ %s: %v\n", res.Filename, res.Err)
	default:
		fmt.Printf("  - %s: %s\n", res.Filename, res.Status)
	}
}
