package extraction

import "fmt"

// Error codes carried in result Errors and Warnings, formatted as "<Code>: <reason>".
const (
	ErrCodeUnsupportedInput = "UnsupportedInputKind"
	ErrCodeEmptyExtraction  = "EmptyExtractionResult"
	ErrCodePartialData      = "PartialDataWarning"
)

// Message formats a coded result message.
func Message(code, reason string) string {
	return fmt.Sprintf("%s: %s", code, reason)
}
