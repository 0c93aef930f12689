package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/jonathan/portfolio-builder/internal/extraction"
	"github.com/jonathan/portfolio-builder/internal/ingestion"
	"github.com/jonathan/portfolio-builder/internal/linkedin"
	"github.com/jonathan/portfolio-builder/internal/schemas"
	"github.com/jonathan/portfolio-builder/internal/types"
)

// TextRequest carries raw résumé text.
type TextRequest struct {
	Text string `json:"text"`
}

// MergeRequest carries an existing record, an external payload and optional flags.
type MergeRequest struct {
	Existing *types.ProfileRecord `json:"existing"`
	Payload  json.RawMessage      `json:"payload"`
	Flags    *types.MergeFlags    `json:"flags,omitempty"`
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.jsonResponse(w, r, http.StatusOK, map[string]any{
		"status": "ok",
		"store":  s.store != nil,
	})
}

// handleParse extracts a profile from JSON text or an uploaded file.
// A failure result is answered with 422 and the result body.
func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	var result extraction.ParseResult

	if isMultipart(r) {
		name, data, err := s.readUpload(r)
		if err != nil {
			s.errResponse(w, r, err)
			return
		}
		result = ingestion.ParseBytes(name, data, s.cfg.Extraction)
	} else {
		var req TextRequest
		if err := decodeJSON(r, &req); err != nil {
			s.errResponse(w, r, err)
			return
		}
		result = extraction.ParseWithOptions(req.Text, s.cfg.Extraction)
	}

	s.resultResponse(w, r, result.Success, result)
}

// handleSections returns the typed sections of the posted text.
func (s *Server) handleSections(w http.ResponseWriter, r *http.Request) {
	var req TextRequest
	if err := decodeJSON(r, &req); err != nil {
		s.errResponse(w, r, err)
		return
	}

	sections := extraction.IdentifySections(req.Text)
	if sections == nil {
		sections = []extraction.Section{}
	}
	s.jsonResponse(w, r, http.StatusOK, sections)
}

// handleMapExternal validates an external payload and maps it onto the profile schema.
func (s *Server) handleMapExternal(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		s.errResponse(w, r, err)
		return
	}

	payload, err := decodePayload(body)
	if err != nil {
		s.errResponse(w, r, err)
		return
	}

	result := linkedin.MapToProfile(payload)
	s.resultResponse(w, r, result.Success, result)
}

// handleMergeExternal merges a payload into the posted record and returns the new record.
func (s *Server) handleMergeExternal(w http.ResponseWriter, r *http.Request) {
	var req MergeRequest
	if err := decodeJSON(r, &req); err != nil {
		s.errResponse(w, r, err)
		return
	}

	payload, err := decodePayload(req.Payload)
	if err != nil {
		s.errResponse(w, r, err)
		return
	}

	flags := s.cfg.MergeFlags
	if req.Flags != nil {
		flags = *req.Flags
	}

	s.jsonResponse(w, r, http.StatusOK, linkedin.Merge(req.Existing, payload, flags))
}

// decodePayload validates raw JSON against the payload schema and decodes it.
// Empty input and JSON null decode to a nil payload.
func decodePayload(raw []byte) (*types.ExternalPayload, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}
	if err := schemas.ValidatePayload(trimmed); err != nil {
		return nil, err
	}
	var payload types.ExternalPayload
	if err := json.Unmarshal(trimmed, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// resultResponse answers 200 for successful results and 422 otherwise.
func (s *Server) resultResponse(w http.ResponseWriter, r *http.Request, success bool, result any) {
	status := http.StatusOK
	if !success {
		status = http.StatusUnprocessableEntity
	}
	s.jsonResponse(w, r, status, result)
}

func isMultipart(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data")
}

// readUpload returns the name and content of the "file" part.
func (s *Server) readUpload(r *http.Request) (string, []byte, error) {
	if err := r.ParseMultipartForm(s.cfg.MaxBodyBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return "", nil, err
		}
		return "", nil, &ErrValidation{Field: "file", Message: err.Error()}
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		return "", nil, &ErrValidation{Field: "file", Message: "a file part is required"}
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return "", nil, err
	}
	return header.Filename, data, nil
}
