package main

import (
	"fmt"

	"github.com/abdulachik/scribe/internal/config"
	"github.com/abdulachik/scribe/internal/vectorstore"
	"github.com/spf13/cobra"
)

var indexInput string

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Add a content file to the vector index",
	Long: `Embed every record of a content JSONL file and store it in VecLite,
using the embedding provider configured in veclite.yaml.`,
	RunE: runIndex,
}

func init() {
	indexCmd.Flags().StringVarP(&indexInput, "input", "i", "", "Content JSONL file to index")
	indexCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if err := cfg.ValidateForVecLite(); err != nil {
		return fmt.Errorf("validate config: %w", err)
	}

	store, err := vectorstore.New(vectorstore.Config{
		Path:       cfg.VecLitePath,
		ConfigPath: cfg.VecLiteConfig,
	})
	if err != nil {
		return fmt.Errorf("open vector store: %w", err)
	}
	defer store.Close()

	n, err := store.IndexFile(cmd.Context(), indexInput)
	if err != nil {
		return fmt.Errorf("index %s: %w", indexInput, err)
	}

	fmt.Printf("Indexed %d records (%d total)\n", n, store.Count())
	return nil
}
