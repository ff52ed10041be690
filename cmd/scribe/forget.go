package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/abdulachik/scribe/internal/config"
	"github.com/abdulachik/scribe/internal/db"
	"github.com/spf13/cobra"
)

var forgetCmd = &cobra.Command{
	Use:   "forget [file...]",
	Short: "Drop tracker entries so files are reprocessed",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runForget,
}

func init() {
	rootCmd.AddCommand(forgetCmd)
}

func runForget(cmd *cobra.Command, args []string) error {
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

	if err := store.Migrate(ctx); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	for _, name := range args {
		if err := store.DeleteProcessedFile(ctx, name); err != nil {
			return fmt.Errorf("forget %s: %w", name, err)
		}
		slog.Info("forgot processed file", "file", name)
	}
	return nil
}
