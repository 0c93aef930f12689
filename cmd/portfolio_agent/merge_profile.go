package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/portfolio-builder/internal/linkedin"
	"github.com/jonathan/portfolio-builder/internal/schemas"
	"github.com/jonathan/portfolio-builder/internal/types"
)

var mergeProfileCmd = &cobra.Command{
	Use:   "merge-profile",
	Short: "Merge an external payload into an existing profile record",
	Long: `Maps the payload and reconciles it with the existing record. Flags not given
on the command line come from the config file, then from the built-in defaults.`,
	RunE: runMergeProfile,
}

var (
	mergeExistingFile string
	mergePayloadFile  string
	mergeOutputFile   string

	mergeOverwritePersonal bool
	mergeExperience        bool
	mergeEducation         bool
	mergeSkills            bool
	mergeEnhanceSummary    bool
)

func init() {
	mergeProfileCmd.Flags().StringVarP(&mergeExistingFile, "existing", "e", "", "Path to the existing profile record JSON (optional)")
	mergeProfileCmd.Flags().StringVarP(&mergePayloadFile, "payload", "p", "", "Path to the external payload JSON (required)")
	mergeProfileCmd.Flags().StringVarP(&mergeOutputFile, "out", "o", "", "Path to output JSON file (default stdout)")

	mergeProfileCmd.Flags().BoolVar(&mergeOverwritePersonal, "overwrite-personal-info", false, "Let payload contact details replace existing ones")
	mergeProfileCmd.Flags().BoolVar(&mergeExperience, "merge-experience", true, "Append payload positions instead of replacing")
	mergeProfileCmd.Flags().BoolVar(&mergeEducation, "merge-education", true, "Append payload schools instead of replacing")
	mergeProfileCmd.Flags().BoolVar(&mergeSkills, "merge-skills", true, "Merge skills by name instead of replacing")
	mergeProfileCmd.Flags().BoolVar(&mergeEnhanceSummary, "enhance-summary", true, "Replace the summary with the recommendation-enhanced one")

	if err := mergeProfileCmd.MarkFlagRequired("payload"); err != nil {
		panic(fmt.Sprintf("failed to mark payload flag as required: %v", err))
	}

	rootCmd.AddCommand(mergeProfileCmd)
}

func runMergeProfile(cmd *cobra.Command, _ []string) error {
	var existing *types.ProfileRecord
	if mergeExistingFile != "" {
		data, err := readJSONFile(cmd, mergeExistingFile)
		if err != nil {
			return err
		}
		if err := schemas.ValidateProfile(data); err != nil {
			return fmt.Errorf("invalid existing record: %w", err)
		}
		existing = &types.ProfileRecord{}
		if err := json.Unmarshal(data, existing); err != nil {
			return fmt.Errorf("failed to decode existing record: %w", err)
		}
	}

	data, err := readJSONFile(cmd, mergePayloadFile)
	if err != nil {
		return err
	}
	payload, err := decodePayload(data)
	if err != nil {
		return err
	}

	merged := linkedin.Merge(existing, payload, mergeFlags(cmd))
	if p := printer(cmd); p != nil {
		p.PrintProfile(merged)
	}
	return writeJSON(cmd, mergeOutputFile, merged)
}

// mergeFlags starts from the configured flags and applies the ones set on the command line.
func mergeFlags(cmd *cobra.Command) types.MergeFlags {
	flags := appConfig.MergeFlags()
	set := cmd.Flags().Changed
	if set("overwrite-personal-info") {
		flags.OverwritePersonalInfo = mergeOverwritePersonal
	}
	if set("merge-experience") {
		flags.MergeExperience = mergeExperience
	}
	if set("merge-education") {
		flags.MergeEducation = mergeEducation
	}
	if set("merge-skills") {
		flags.MergeSkills = mergeSkills
	}
	if set("enhance-summary") {
		flags.EnhanceSummary = mergeEnhanceSummary
	}
	return flags
}
