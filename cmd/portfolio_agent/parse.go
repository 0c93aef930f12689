package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/portfolio-builder/internal/extraction"
	"github.com/jonathan/portfolio-builder/internal/logger"
	"github.com/jonathan/portfolio-builder/internal/pipeline"
)

var parseCmd = &cobra.Command{
	Use:   "parse <file> [file...]",
	Short: "Extract profiles from résumé files",
	Long: `Decodes each file (text, markdown, HTML or PDF), extracts a partial profile
and writes one JSON result per file. Files are processed concurrently; a failing
file never stops the others. Exits non-zero when any file fails.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runParse,
}

var (
	parseOutputFile      string
	parseConcurrency     int
	parseCanonicalSkills bool
)

func init() {
	parseCmd.Flags().StringVarP(&parseOutputFile, "out", "o", "", "Path to output JSON file (default stdout)")
	parseCmd.Flags().IntVarP(&parseConcurrency, "concurrency", "c", 0, "Files processed at once (default from config)")
	parseCmd.Flags().BoolVar(&parseCanonicalSkills, "canonical-skills", false, "Rewrite skill names to their canonical spelling")

	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	opts := pipeline.Options{
		Concurrency: appConfig.Concurrency,
		Extraction:  extraction.Options{CanonicalSkillNames: appConfig.CanonicalSkillNames},
	}
	if cmd.Flags().Changed("concurrency") {
		opts.Concurrency = parseConcurrency
	}
	if cmd.Flags().Changed("canonical-skills") {
		opts.Extraction.CanonicalSkillNames = parseCanonicalSkills
	}

	p := printer(cmd)
	if p != nil {
		opts.OnProgress = func(e pipeline.ProgressEvent) {
			logger.Debug().Str("file", e.Path).Bool("success", e.Success).Msgf("parsed %d/%d", e.Index+1, e.Total)
		}
	}

	results := pipeline.ImportFiles(cmd.Context(), args, opts)

	if p != nil {
		for _, r := range results {
			p.PrintParseResult(r.Path, r.Result)
		}
		p.PrintImportSummary(results)
	}

	if err := writeJSON(cmd, parseOutputFile, results); err != nil {
		return err
	}

	if summary := pipeline.Summarize(results); summary.Failed > 0 {
		return fmt.Errorf("%d of %d files failed", summary.Failed, summary.Total)
	}
	return nil
}
