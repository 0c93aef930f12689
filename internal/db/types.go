package db

import (
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/portfolio-builder/internal/types"
)

// Profile sources
const (
	SourceResume   = "resume"
	SourceExternal = "external"
	SourceManual   = "manual"
)

// Profile is a stored profile snapshot.
type Profile struct {
	ID        uuid.UUID            `json:"id"`
	Owner     string               `json:"owner,omitempty"`
	Source    string               `json:"source"`
	Record    *types.ProfileRecord `json:"record"`
	CreatedAt time.Time            `json:"created_at"`
	UpdatedAt time.Time            `json:"updated_at"`
}

// ProfileImport records one import attempt against a stored profile.
type ProfileImport struct {
	ID          uuid.UUID `json:"id"`
	ProfileID   uuid.UUID `json:"profile_id"`
	Source      string    `json:"source"`
	Filename    string    `json:"filename,omitempty"`
	ContentHash string    `json:"content_hash,omitempty"`
	Success     bool      `json:"success"`
	Errors      []string  `json:"errors"`
	Warnings    []string  `json:"warnings"`
	CreatedAt   time.Time `json:"created_at"`
}

// ListOptions pages through profiles. Owner filters when set.
type ListOptions struct {
	Owner  string
	Limit  int
	Offset int
}

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

// normalized clamps the paging values into their allowed ranges.
func (o ListOptions) normalized() ListOptions {
	if o.Limit <= 0 {
		o.Limit = defaultListLimit
	}
	o.Limit = min(o.Limit, maxListLimit)
	o.Offset = max(o.Offset, 0)
	return o
}

// ValidSource reports whether s is a known profile source.
func ValidSource(s string) bool {
	switch s {
	case SourceResume, SourceExternal, SourceManual:
		return true
	}
	return false
}
