package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jonathan/portfolio-builder/internal/observability"
)

// writeJSON writes v as indented JSON to outPath, or to the command's stdout
// when outPath is empty.
func writeJSON(cmd *cobra.Command, outPath string, v any) error {
	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	jsonBytes = append(jsonBytes, '\n')

	if outPath == "" {
		_, err = cmd.OutOrStdout().Write(jsonBytes)
		return err
	}

	if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(outPath, jsonBytes, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}

// readJSONFile reads a JSON document from path, or from stdin when path is "-".
func readJSONFile(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}

// printer returns a Printer on stderr in verbose mode, nil otherwise.
func printer(cmd *cobra.Command) *observability.Printer {
	if appConfig == nil || !appConfig.Verbose {
		return nil
	}
	return observability.NewPrinter(cmd.ErrOrStderr())
}
