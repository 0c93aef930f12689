package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/portfolio-builder/internal/schemas"
)

var validateCmd = &cobra.Command{
	Use:   "validate <file.json>",
	Short: "Validate a profile record or external payload",
	Long: `Validates a JSON document. Profile records are checked against the profile
schema and the record's field rules; payloads against the external payload
schema. --schema validates against an arbitrary schema file instead.
Exits with code 1 when validation fails.`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

var (
	validateKind   string
	validateSchema string
)

func init() {
	validateCmd.Flags().StringVarP(&validateKind, "kind", "k", "profile", "Document kind: profile or payload")
	validateCmd.Flags().StringVarP(&validateSchema, "schema", "s", "", "Path to a JSON schema file (overrides --kind)")

	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	var err error
	switch {
	case validateSchema != "":
		err = validateWithSchema(cmd, validateSchema, args[0])
	case validateKind == "profile":
		err = validateFile(cmd, args[0], schemas.ValidateProfile)
	case validateKind == "payload":
		err = validateFile(cmd, args[0], schemas.ValidatePayload)
	default:
		return fmt.Errorf("unknown --kind %q: must be profile or payload", validateKind)
	}

	out := cmd.OutOrStdout()
	if err == nil {
		_, _ = fmt.Fprintf(out, "Validation passed: %s\n", args[0])
		return nil
	}

	var validationErr *schemas.ValidationError
	if !errors.As(err, &validationErr) {
		return fmt.Errorf("validation failed: %w", err)
	}

	_, _ = fmt.Fprintf(out, "Validation failed: %d error(s)\n", len(validationErr.Errors))
	for _, fe := range validationErr.Errors {
		_, _ = fmt.Fprintf(out, "  - %s: %s\n", fe.Field, fe.Message)
	}
	return fmt.Errorf("validation found %d error(s)", len(validationErr.Errors))
}

func validateFile(cmd *cobra.Command, path string, validate func([]byte) error) error {
	data, err := readJSONFile(cmd, path)
	if err != nil {
		return err
	}
	return validate(data)
}

func validateWithSchema(cmd *cobra.Command, schemaPath, path string) error {
	schema, err := os.ReadFile(schemaPath)
	if err != nil {
		return fmt.Errorf("failed to read schema: %w", err)
	}
	return validateFile(cmd, path, func(doc []byte) error {
		return schemas.Validate(schema, doc)
	})
}
