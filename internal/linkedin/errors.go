package linkedin

import "fmt"

// Error codes carried in MapResult.Errors, formatted as "<Code>: <reason>".
const (
	ErrCodeEmptyPayload   = "EmptyPayload"
	ErrCodeMissingProfile = "MissingProfileSection"
)

func message(code, reason string) string {
	return fmt.Sprintf("%s: %s", code, reason)
}
