package extraction

import "github.com/jonathan/portfolio-builder/internal/types"

// ParseResult is the outcome of a parse. Profile is set only on success and
// may still be partial; Warnings name fields that could not be extracted.
type ParseResult struct {
	Success  bool                 `json:"success"`
	Errors   []string             `json:"errors,omitempty"`
	Warnings []string             `json:"warnings,omitempty"`
	Profile  *types.ProfileRecord `json:"profile,omitempty"`
	Sections []Section            `json:"sections,omitempty"`
}

// Failure builds a failed result with a single coded error.
func Failure(code, reason string) ParseResult {
	return ParseResult{Errors: []string{Message(code, reason)}}
}
