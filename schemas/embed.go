// Package schemas embeds the JSON Schemas for profile records and external payloads.
package schemas

import "embed"

const (
	// Profile validates a serialized ProfileRecord.
	Profile = "profile.schema.json"
	// ExternalPayload validates a professional-network payload before mapping.
	ExternalPayload = "external_payload.schema.json"
)

//go:embed *.schema.json
var FS embed.FS

// Read returns the named schema document.
func Read(name string) ([]byte, error) {
	return FS.ReadFile(name)
}
