// Package ingestion decodes uploaded résumé files into normalized UTF-8 text
// and rejects inputs the extraction engine cannot read.
package ingestion

import "fmt"

// ErrCodeUnreadableInput marks files that could not be read from disk.
const ErrCodeUnreadableInput = "UnreadableInput"

// UnsupportedInputError is returned for file kinds that are not decoded
// (doc, docx, rtf, images, unknown binaries) and for text that is not UTF-8.
type UnsupportedInputError struct {
	Filename string
	Kind     InputKind
	Message  string
}

func (e *UnsupportedInputError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("unsupported input %q (%s): %s", e.Filename, e.Kind, e.Message)
	}
	return fmt.Sprintf("unsupported input %q (%s)", e.Filename, e.Kind)
}

// EmptyInputError is returned when decoding yields no text.
type EmptyInputError struct {
	Filename string
}

func (e *EmptyInputError) Error() string {
	return fmt.Sprintf("no text could be decoded from %q", e.Filename)
}

// DecodeError represents a failure while parsing a supported format.
type DecodeError struct {
	Message string
	Cause   error
}

func (e *DecodeError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("decode error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("decode error: %s", e.Message)
}

func (e *DecodeError) Unwrap() error {
	return e.Cause
}

// ReadError represents a file I/O failure.
type ReadError struct {
	Message string
	Cause   error
}

func (e *ReadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("read error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("read error: %s", e.Message)
}

func (e *ReadError) Unwrap() error {
	return e.Cause
}
