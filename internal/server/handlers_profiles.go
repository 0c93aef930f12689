package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/jonathan/portfolio-builder/internal/db"
	"github.com/jonathan/portfolio-builder/internal/extraction"
	"github.com/jonathan/portfolio-builder/internal/ingestion"
	"github.com/jonathan/portfolio-builder/internal/linkedin"
	"github.com/jonathan/portfolio-builder/internal/logger"
	"github.com/jonathan/portfolio-builder/internal/schemas"
	"github.com/jonathan/portfolio-builder/internal/types"
)

// ProfileRequest creates or replaces a stored profile.
type ProfileRequest struct {
	Owner  string               `json:"owner,omitempty"`
	Source string               `json:"source,omitempty"`
	Record *types.ProfileRecord `json:"record"`
}

// ImportRequest merges an external payload into a stored profile.
type ImportRequest struct {
	Payload json.RawMessage   `json:"payload"`
	Flags   *types.MergeFlags `json:"flags,omitempty"`
}

// ImportResponse reports an import attempt and, on success, the updated profile.
type ImportResponse struct {
	Profile *db.Profile       `json:"profile,omitempty"`
	Import  *db.ProfileImport `json:"import"`
}

func parseID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, &ErrValidation{Field: "id", Message: "must be a UUID"}
	}
	return id, nil
}

// validateProfileRequest fills the default source and checks the record.
func validateProfileRequest(req *ProfileRequest) error {
	if req.Source == "" {
		req.Source = db.SourceManual
	}
	if !db.ValidSource(req.Source) {
		return &ErrValidation{Field: "source", Message: "must be resume, external or manual"}
	}
	if req.Record == nil {
		return &ErrValidation{Field: "record", Message: "is required"}
	}
	return schemas.FromValidator(req.Record.Validate())
}

func (s *Server) handleCreateProfile(w http.ResponseWriter, r *http.Request) {
	var req ProfileRequest
	if err := decodeJSON(r, &req); err != nil {
		s.errResponse(w, r, err)
		return
	}
	if err := validateProfileRequest(&req); err != nil {
		s.errResponse(w, r, err)
		return
	}

	profile, err := s.store.SaveProfile(r.Context(), req.Owner, req.Source, req.Record)
	if err != nil {
		s.errResponse(w, r, err)
		return
	}
	s.jsonResponse(w, r, http.StatusCreated, profile)
}

func (s *Server) handleListProfiles(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	opts := db.ListOptions{Owner: q.Get("owner")}
	for name, dst := range map[string]*int{"limit": &opts.Limit, "offset": &opts.Offset} {
		if v := q.Get(name); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				s.errResponse(w, r, &ErrValidation{Field: name, Message: "must be a number"})
				return
			}
			*dst = n
		}
	}

	profiles, err := s.store.ListProfiles(r.Context(), opts)
	if err != nil {
		s.errResponse(w, r, err)
		return
	}
	s.jsonResponse(w, r, http.StatusOK, profiles)
}

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		s.errResponse(w, r, err)
		return
	}

	profile, err := s.store.GetProfile(r.Context(), id)
	if err != nil {
		s.errResponse(w, r, err)
		return
	}
	if profile == nil {
		s.errResponse(w, r, &db.NotFoundError{ID: id})
		return
	}
	s.jsonResponse(w, r, http.StatusOK, profile)
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		s.errResponse(w, r, err)
		return
	}

	var req ProfileRequest
	if err := decodeJSON(r, &req); err != nil {
		s.errResponse(w, r, err)
		return
	}
	if err := validateProfileRequest(&req); err != nil {
		s.errResponse(w, r, err)
		return
	}

	profile, err := s.store.UpdateProfile(r.Context(), id, req.Source, req.Record)
	if err != nil {
		s.errResponse(w, r, err)
		return
	}
	s.jsonResponse(w, r, http.StatusOK, profile)
}

func (s *Server) handleDeleteProfile(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		s.errResponse(w, r, err)
		return
	}

	if err := s.store.DeleteProfile(r.Context(), id); err != nil {
		s.errResponse(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListImports(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		s.errResponse(w, r, err)
		return
	}

	imports, err := s.store.ListImports(r.Context(), id)
	if err != nil {
		s.errResponse(w, r, err)
		return
	}
	s.jsonResponse(w, r, http.StatusOK, imports)
}

// handleImportProfile merges an uploaded résumé (multipart "file") or an
// external payload (JSON) into a stored profile. Every attempt is recorded in
// the import history; failed attempts leave the profile untouched and answer 422.
func (s *Server) handleImportProfile(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		s.errResponse(w, r, err)
		return
	}

	existing, err := s.store.GetProfile(r.Context(), id)
	if err != nil {
		s.errResponse(w, r, err)
		return
	}
	if existing == nil {
		s.errResponse(w, r, &db.NotFoundError{ID: id})
		return
	}

	var (
		imp    *db.ProfileImport
		merged *types.ProfileRecord
	)
	if isMultipart(r) {
		imp, merged, err = s.importResume(r, existing)
	} else {
		imp, merged, err = s.importExternal(r, existing)
	}
	if err != nil {
		s.errResponse(w, r, err)
		return
	}

	resp := ImportResponse{Import: imp}
	status := http.StatusUnprocessableEntity
	if imp.Success {
		resp.Profile, err = s.store.UpdateProfile(r.Context(), id, imp.Source, merged)
		if err != nil {
			s.errResponse(w, r, err)
			return
		}
		status = http.StatusOK
	}

	if err := s.store.RecordImport(r.Context(), imp); err != nil {
		s.errResponse(w, r, err)
		return
	}

	logger.FromContext(r.Context()).Info().
		Str("profile_id", id.String()).
		Str("source", imp.Source).
		Bool("success", imp.Success).
		Msg("profile import")

	s.jsonResponse(w, r, status, resp)
}

func (s *Server) importResume(r *http.Request, existing *db.Profile) (*db.ProfileImport, *types.ProfileRecord, error) {
	name, data, err := s.readUpload(r)
	if err != nil {
		return nil, nil, err
	}

	imp := &db.ProfileImport{ProfileID: existing.ID, Source: db.SourceResume, Filename: name}

	var result extraction.ParseResult
	text, meta, err := ingestion.Decode(name, data)
	if err != nil {
		result = ingestion.FailureFor(err)
	} else {
		imp.ContentHash = meta.Hash
		result = extraction.ParseWithOptions(text, s.cfg.Extraction)
	}

	imp.Success = result.Success
	imp.Errors = result.Errors
	imp.Warnings = result.Warnings
	if !result.Success {
		return imp, nil, nil
	}

	flags := s.cfg.MergeFlags
	merged := linkedin.MergeMapped(existing.Record, result.Profile, result.Profile.SummaryText(), flags)
	return imp, merged, nil
}

func (s *Server) importExternal(r *http.Request, existing *db.Profile) (*db.ProfileImport, *types.ProfileRecord, error) {
	var req ImportRequest
	if err := decodeJSON(r, &req); err != nil {
		return nil, nil, err
	}
	payload, err := decodePayload(req.Payload)
	if err != nil {
		return nil, nil, err
	}

	flags := s.cfg.MergeFlags
	if req.Flags != nil {
		flags = *req.Flags
	}

	result := linkedin.MapToProfile(payload)
	imp := &db.ProfileImport{
		ProfileID: existing.ID,
		Source:    db.SourceExternal,
		Success:   result.Success,
		Errors:    result.Errors,
	}
	if !result.Success {
		return imp, nil, nil
	}

	merged := linkedin.MergeMapped(existing.Record, result.Mapped, result.Mapped.SummaryText(), flags)
	return imp, merged, nil
}
