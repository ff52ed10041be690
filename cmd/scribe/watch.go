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
	"github.com/abdulachik/scribe/internal/watch"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Reprocess sources as they change",
	Long: `Watch SOURCE_DIR and run the pipeline for a catalog source whenever it
is created or rewritten. Changes are debounced by WATCH_DEBOUNCE.`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if err := cfg.ValidateForWatch(); err != nil {
		return fmt.Errorf("validate config: %w", err)
	}

	a, err := app.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("initialize: %w", err)
	}
	defer a.Close()

	if err := os.MkdirAll(cfg.SourceDir, 0755); err != nil {
		return fmt.Errorf("create source directory: %w", err)
	}

	p := a.Pipeline(1, false)
	w := watch.New(watch.Config{
		Dir:      cfg.SourceDir,
		Debounce: cfg.WatchDebounce,
		Accept: func(name string) bool {
			_, ok := a.Registry.Lookup(name)
			return ok
		},
		Handler: func(ctx context.Context, name string) error {
			res, err := p.ProcessFile(ctx, name)
			if err != nil {
				return err
			}
			slog.Info("source handled", "file", name, "status", res.Status, "records", res.Units)
			return nil
		},
	})

	errCh := make(chan error, 1)
	go func() {
		errCh <- w.Run(ctx)
	}()

	// Wait for shutdown signal or error
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		slog.Info("received shutdown signal", "signal", sig)
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("watch: %w", err)
		}
		return nil
	}

	slog.Info("shutting down...")
	cancel()
	return <-errCh
}
