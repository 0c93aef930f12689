package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/portfolio-builder/internal/extraction"
	"github.com/jonathan/portfolio-builder/internal/ingestion"
)

var sectionsCmd = &cobra.Command{
	Use:   "sections <file>",
	Short: "Show the typed sections of a résumé",
	Long:  "Decodes a résumé file and prints its sections with their type and confidence as JSON.",
	Args:  cobra.ExactArgs(1),
	RunE:  runSections,
}

var sectionsOutputFile string

func init() {
	sectionsCmd.Flags().StringVarP(&sectionsOutputFile, "out", "o", "", "Path to output JSON file (default stdout)")

	rootCmd.AddCommand(sectionsCmd)
}

func runSections(cmd *cobra.Command, args []string) error {
	text, _, err := ingestion.DecodeFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to decode %s: %w", args[0], err)
	}

	sections := extraction.IdentifySections(text)
	if sections == nil {
		sections = []extraction.Section{}
	}

	if p := printer(cmd); p != nil {
		p.PrintSections(sections)
	}
	return writeJSON(cmd, sectionsOutputFile, sections)
}
