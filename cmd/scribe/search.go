package main

import (
	"fmt"
	"strings"

	"github.com/abdulachik/scribe/internal/config"
	"github.com/abdulachik/scribe/internal/vectorstore"
	"github.com/spf13/cobra"
)

var searchK int

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Find records similar to a query",
	Long: `Search the vector index for records similar in meaning to the query.

Example:
  scribe search "the siege of Jerusalem" -k 5`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchK, "top-k", "k", 10, "Number of results")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")

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

	results, err := store.Search(cmd.Context(), query, searchK)
	if err != nil {
		return err
	}

	if len(results) == 0 {
		fmt.Println("No matching records.")
		return nil
	}

	for i, r := range results {
		fmt.Printf("%2d. [%.3f] %s\n", i+1, r.Similarity, r.Locator)
		fmt.Printf("    %s\n", truncate(r.Text, 200))
	}
	return nil
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
