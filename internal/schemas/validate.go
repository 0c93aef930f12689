// Package schemas validates profile records and external payloads against
// the embedded JSON Schemas and the record's struct rules.
package schemas

import (
	"encoding/json"
	"errors"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/xeipuuv/gojsonschema"

	"github.com/jonathan/portfolio-builder/internal/types"
	embedded "github.com/jonathan/portfolio-builder/schemas"
)

var (
	compiledMu sync.Mutex
	compiled   = map[string]*gojsonschema.Schema{}
)

// embeddedSchema compiles an embedded schema on first use.
func embeddedSchema(name string) (*gojsonschema.Schema, error) {
	compiledMu.Lock()
	defer compiledMu.Unlock()

	if s, ok := compiled[name]; ok {
		return s, nil
	}
	data, err := embedded.Read(name)
	if err != nil {
		return nil, &SchemaLoadError{Path: name, Message: "not embedded", Cause: err}
	}
	s, err := compile(name, data)
	if err != nil {
		return nil, err
	}
	compiled[name] = s
	return s, nil
}

func compile(name string, schema []byte) (*gojsonschema.Schema, error) {
	s, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(schema))
	if err != nil {
		return nil, &SchemaLoadError{Path: name, Message: "does not compile", Cause: err}
	}
	return s, nil
}

// Validate checks document against an arbitrary schema.
func Validate(schema, document []byte) error {
	s, err := compile("(custom)", schema)
	if err != nil {
		return err
	}
	return check(s, document)
}

// ValidateDocument checks document against one of the embedded schemas
// (schemas.Profile or schemas.ExternalPayload).
func ValidateDocument(schemaName string, document []byte) error {
	s, err := embeddedSchema(schemaName)
	if err != nil {
		return err
	}
	return check(s, document)
}

// ValidatePayload checks an external payload document before it is mapped.
func ValidatePayload(document []byte) error {
	return ValidateDocument(embedded.ExternalPayload, document)
}

// ValidateProfile checks a serialized profile record against the profile
// schema and, when that passes, against the struct rules of types.ProfileRecord.
func ValidateProfile(document []byte) error {
	if err := ValidateDocument(embedded.Profile, document); err != nil {
		return err
	}

	var record types.ProfileRecord
	if err := json.Unmarshal(document, &record); err != nil {
		return &DocumentError{Message: "failed to decode profile record", Cause: err}
	}
	return FromValidator(record.Validate())
}

func check(s *gojsonschema.Schema, document []byte) error {
	if !json.Valid(document) {
		return &DocumentError{Message: "document is not valid JSON"}
	}
	result, err := s.Validate(gojsonschema.NewBytesLoader(document))
	if err != nil {
		return &DocumentError{Message: "failed to load document", Cause: err}
	}
	if result.Valid() {
		return nil
	}

	out := &ValidationError{Errors: make([]FieldError, 0, len(result.Errors()))}
	for _, desc := range result.Errors() {
		out.Errors = append(out.Errors, FieldError{Field: desc.Field(), Message: desc.Description()})
	}
	return out
}

// FromValidator converts validator errors into a ValidationError. Other
// errors are returned unchanged and nil stays nil.
func FromValidator(err error) error {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := &ValidationError{Errors: make([]FieldError, 0, len(verrs))}
	for _, fe := range verrs {
		out.Errors = append(out.Errors, FieldError{
			Field:   fieldPath(fe.Namespace()),
			Message: validatorMessage(fe),
		})
	}
	return out
}

// fieldPath drops the root struct name: "ProfileRecord.skills[0].level" -> "skills[0].level".
func fieldPath(namespace string) string {
	if _, rest, ok := strings.Cut(namespace, "."); ok {
		return rest
	}
	return namespace
}

func validatorMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "phone":
		return "must be a valid phone number"
	case "url":
		return "must be a valid URL"
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	default:
		return "failed " + fe.Tag() + " check"
	}
}
