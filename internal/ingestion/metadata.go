package ingestion

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
	"unicode/utf8"
)

// now is swapped out in tests.
var now = time.Now

// Metadata describes a decoded input file.
type Metadata struct {
	Filename  string    `json:"filename,omitempty"`
	Kind      InputKind `json:"kind"`
	Timestamp string    `json:"timestamp"`
	// Hash is the hex SHA-256 of the decoded text, so the same résumé saved as
	// PDF and as text hashes alike.
	Hash  string `json:"hash"`
	Bytes int    `json:"bytes"`
	Chars int    `json:"chars"`
}

// NewMetadata describes text decoded from a raw input of size bytes.
func NewMetadata(text, filename string, kind InputKind, size int) *Metadata {
	return &Metadata{
		Filename:  filename,
		Kind:      kind,
		Timestamp: now().UTC().Format(time.RFC3339),
		Hash:      ContentHash(text),
		Bytes:     size,
		Chars:     utf8.RuneCountInString(text),
	}
}

// ContentHash returns the hex SHA-256 digest of text.
func ContentHash(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}
