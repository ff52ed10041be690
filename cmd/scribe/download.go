package main

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/abdulachik/scribe/internal/app"
	"github.com/abdulachik/scribe/internal/catalog"
	"github.com/abdulachik/scribe/internal/config"
	"github.com/spf13/cobra"
)

var (
	downloadForce bool
	downloadDir   string
)

var downloadCmd = &cobra.Command{
	Use:   "download",
	Short: "Download catalog sources from Project Gutenberg",
	Long: `Download every source in the catalog that has a URL into the source
directory. Existing files are kept unless --force is given.`,
	RunE: runDownload,
}

func init() {
	downloadCmd.Flags().BoolVarP(&downloadForce, "force", "f", false, "Re-download even if file exists")
	downloadCmd.Flags().StringVar(&downloadDir, "dir", "", "Directory to save sources (default: SOURCE_DIR)")
	rootCmd.AddCommand(downloadCmd)
}

func runDownload(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	cat, err := app.LoadCatalog(cfg)
	if err != nil {
		return err
	}

	dir := downloadDir
	if dir == "" {
		dir = cfg.SourceDir
	}

	fetcher := &catalog.Fetcher{
		Client: &http.Client{Timeout: cfg.DownloadTimeout},
		Dir:    dir,
		Force:  downloadForce,
	}

	fmt.Println("Downloading sources from Project Gutenberg...")
	fmt.Println()

	downloaded := 0
	skipped := 0

	for _, src := range cat.Sources {
		if src.URL == "" {
			continue
		}

		fmt.Printf("  ↓ %s...", src.Title)

		got, err := fetcher.Fetch(cmd.Context(), src)
		if err != nil {
			fmt.Printf(" ERROR: %v\n", err)
			slog.Error("failed to download source", "title", src.Title, "error", err)
			continue
		}

		if got {
			fmt.Println(" done")
			downloaded++
		} else {
			fmt.Println(" already downloaded")
			skipped++
		}
	}

	fmt.Println()
	fmt.Printf("Downloaded: %d, Skipped: %d\n", downloaded, skipped)
	fmt.Printf("Sources saved to: %s/\n", dir)

	return nil
}
