package db

import (
	"fmt"

	"github.com/google/uuid"
)

// NotFoundError is returned by writes that target a missing profile.
type NotFoundError struct {
	ID uuid.UUID
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("profile not found: %s", e.ID)
}

// RecordError wraps a profile record that could not be encoded or decoded.
type RecordError struct {
	Message string
	Cause   error
}

func (e *RecordError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *RecordError) Unwrap() error {
	return e.Cause
}
