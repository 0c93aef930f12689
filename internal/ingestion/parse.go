package ingestion

import (
	"errors"

	"github.com/jonathan/portfolio-builder/internal/extraction"
)

// ParseFile decodes the file at path and extracts a profile from it. Decoding
// failures come back as failure results, never as errors.
func ParseFile(path string) extraction.ParseResult {
	return ParseFileWithOptions(path, extraction.Options{})
}

// ParseFileWithOptions is ParseFile with extraction options.
func ParseFileWithOptions(path string, opts extraction.Options) extraction.ParseResult {
	text, _, err := DecodeFile(path)
	if err != nil {
		return FailureFor(err)
	}
	return extraction.ParseWithOptions(text, opts)
}

// ParseBytes decodes data named name and extracts a profile from it.
func ParseBytes(name string, data []byte, opts extraction.Options) extraction.ParseResult {
	text, _, err := Decode(name, data)
	if err != nil {
		return FailureFor(err)
	}
	return extraction.ParseWithOptions(text, opts)
}

// FailureFor converts an ingestion error into a coded failure result.
func FailureFor(err error) extraction.ParseResult {
	var (
		unsupported *UnsupportedInputError
		empty       *EmptyInputError
		decode      *DecodeError
	)
	switch {
	case errors.As(err, &unsupported), errors.As(err, &decode):
		return extraction.Failure(extraction.ErrCodeUnsupportedInput, err.Error())
	case errors.As(err, &empty):
		return extraction.Failure(extraction.ErrCodeEmptyExtraction, err.Error())
	default:
		return extraction.Failure(ErrCodeUnreadableInput, err.Error())
	}
}
