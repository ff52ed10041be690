package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/abdulachik/scribe/internal/config"
	"github.com/abdulachik/scribe/internal/reconstruct"
	"github.com/spf13/cobra"
)

var (
	reconstructInput  string
	reconstructOutput string
	reconstructRoman  bool
)

var reconstructCmd = &cobra.Command{
	Use:   "reconstruct",
	Short: "Rebuild text from paragraph records",
	Long: `Rebuild an approximation of the source body from a paragraph content
file, re-emitting book, chapter and footnote headers, so the parsed
structure can be compared against the original.`,
	RunE: runReconstruct,
}

func init() {
	reconstructCmd.Flags().StringVarP(&reconstructInput, "input", "i", "", "Content JSONL file to reconstruct")
	reconstructCmd.Flags().StringVarP(&reconstructOutput, "output", "o", "", "Output text file (default: RECONSTRUCTED_DIR/<name>_reconstructed.txt)")
	reconstructCmd.Flags().BoolVar(&reconstructRoman, "roman-chapters", false, "Write chapter numbers as Roman numerals")
	reconstructCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(reconstructCmd)
}

func runReconstruct(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	output := reconstructOutput
	if output == "" {
		base := strings.TrimSuffix(filepath.Base(reconstructInput), "_content.jsonl")
		base = strings.TrimSuffix(base, filepath.Ext(base))
		output = filepath.Join(cfg.ReconstructedDir, base+"_reconstructed.txt")
	}

	n, err := reconstruct.File(reconstructInput, output, reconstruct.Options{
		RomanChapters: reconstructRoman,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Reconstructed %d paragraphs to %s\n", n, output)
	return nil
}
