package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/abdulachik/scribe/internal/config"
	"github.com/abdulachik/scribe/internal/db"
	"github.com/abdulachik/scribe/internal/vectorstore"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show processing statistics",
	Long:  `Display the processing tracker's rows and the vector index size.`,
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("validate config: %w", err)
	}

	store, err := db.NewStore(ctx, cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer store.Close()

	// Ensure migrations are run
	if err := store.Migrate(ctx); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	total, err := store.CountProcessedFiles(ctx)
	if err != nil {
		return fmt.Errorf("count processed files: %w", err)
	}

	files, err := store.ListProcessedFiles(ctx)
	if err != nil {
		return fmt.Errorf("list processed files: %w", err)
	}

	fmt.Println("=== Scribe Statistics ===")
	fmt.Println()
	fmt.Printf("Database: %s\n", cfg.DatabasePath)
	fmt.Println()
	fmt.Printf("Processed files: %d\n", total)

	var records int64
	for _, f := range files {
		fmt.Printf("  %s\n", f.SourceFilename)
		fmt.Printf("    Records: %d\n", f.RecordCount)
		fmt.Printf("    Hash: %s\n", f.ContentHash)
		fmt.Printf("    Processed: %s (run %s)\n", f.ProcessedAt.Format("2006-01-02 15:04:05 MST"), f.RunID)
		records += f.RecordCount
	}
	fmt.Printf("Total records: %d\n", records)
	fmt.Println()

	// Check VecLite stats if configured
	if cfg.VecLitePath != "" {
		recordStore, err := vectorstore.New(vectorstore.Config{
			Path:       cfg.VecLitePath,
			ConfigPath: cfg.VecLiteConfig,
		})
		if err != nil {
			slog.Warn("failed to open VecLite", "error", err)
		} else {
			defer recordStore.Close()
			if stats, ok := recordStore.Stats(); ok {
				fmt.Println("VecLite:")
				fmt.Printf("  Path: %s\n", cfg.VecLitePath)
				fmt.Printf("  Documents: %d\n", stats.Count)
				fmt.Printf("  Dimension: %d\n", stats.Dimension)
				fmt.Printf("  Distance: %s\n", stats.DistanceType)
				fmt.Printf("  Index: %s\n", stats.IndexType)
				fmt.Println()
			}
		}
	}

	return nil
}
