package main

import (
	"fmt"
	"os"

	"github.com/abdulachik/scribe/internal/config"
	"github.com/abdulachik/scribe/internal/manifest"
	"github.com/spf13/cobra"
)

var manifestDir string

var manifestCmd = &cobra.Command{
	Use:   "manifest",
	Short: "List the processed corpus",
	Long:  `Print a summary of every header file in the processed corpus directory.`,
	RunE:  runManifest,
}

func init() {
	manifestCmd.Flags().StringVar(&manifestDir, "dir", "", "Processed corpus directory (default: PROCESSED_DIR)")
	rootCmd.AddCommand(manifestCmd)
}

func runManifest(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	dir := manifestDir
	if dir == "" {
		dir = cfg.ProcessedDir
	}

	entries, err := manifest.Load(dir)
	if err != nil {
		return fmt.Errorf("load manifest: %w", err)
	}

	return manifest.Render(os.Stdout, dir, entries, manifest.DefaultStyles())
}
