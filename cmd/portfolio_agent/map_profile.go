package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/portfolio-builder/internal/linkedin"
	"github.com/jonathan/portfolio-builder/internal/schemas"
	"github.com/jonathan/portfolio-builder/internal/types"
)

var mapProfileCmd = &cobra.Command{
	Use:   "map-profile <payload.json>",
	Short: "Map a professional-network export onto the profile schema",
	Long: `Validates an external payload against its JSON schema and maps it onto a
partial profile record. Recommendations, posts and fields with no home in the
profile schema are reported alongside the mapped record. Use "-" to read stdin.`,
	Args: cobra.ExactArgs(1),
	RunE: runMapProfile,
}

var mapOutputFile string

func init() {
	mapProfileCmd.Flags().StringVarP(&mapOutputFile, "out", "o", "", "Path to output JSON file (default stdout)")

	rootCmd.AddCommand(mapProfileCmd)
}

func runMapProfile(cmd *cobra.Command, args []string) error {
	data, err := readJSONFile(cmd, args[0])
	if err != nil {
		return err
	}
	payload, err := decodePayload(data)
	if err != nil {
		return err
	}

	result := linkedin.MapToProfile(payload)
	if p := printer(cmd); p != nil {
		p.PrintMapResult(result)
	}
	if err := writeJSON(cmd, mapOutputFile, result); err != nil {
		return err
	}

	if !result.Success {
		return fmt.Errorf("mapping failed: %s", strings.Join(result.Errors, "; "))
	}
	return nil
}

// decodePayload validates data against the payload schema and decodes it.
// Empty input and JSON null decode to a nil payload.
func decodePayload(data []byte) (*types.ExternalPayload, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}
	if err := schemas.ValidatePayload(trimmed); err != nil {
		return nil, fmt.Errorf("invalid payload: %w", err)
	}
	var payload types.ExternalPayload
	if err := json.Unmarshal(trimmed, &payload); err != nil {
		return nil, fmt.Errorf("failed to decode payload: %w", err)
	}
	return &payload, nil
}
