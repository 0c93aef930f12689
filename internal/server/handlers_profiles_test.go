package server

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/portfolio-builder/internal/db"
	"github.com/jonathan/portfolio-builder/internal/types"
)

func createProfile(t *testing.T, s *Server, req ProfileRequest) db.Profile {
	t.Helper()
	w := doJSON(t, s, http.MethodPost, "/v1/profiles", req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decodeBody[db.Profile](t, w)
}

func TestCreateProfile_DefaultsToManualSource(t *testing.T) {
	s := newTestServer(t, newMemoryStore())

	p := createProfile(t, s, ProfileRequest{
		Owner:  "user-1",
		Record: &types.ProfileRecord{PersonalInfo: &types.PersonalInfo{FullName: "Jane Doe"}},
	})

	assert.NotEqual(t, uuid.Nil, p.ID)
	assert.Equal(t, db.SourceManual, p.Source)
	assert.Equal(t, "Jane Doe", p.Record.PersonalInfo.FullName)
}

func TestCreateProfile_Rejects(t *testing.T) {
	tests := []struct {
		name  string
		body  any
		field string
	}{
		{
			name:  "missing record",
			body:  ProfileRequest{Owner: "user-1"},
			field: "record",
		},
		{
			name:  "unknown source",
			body:  ProfileRequest{Source: "scraped", Record: &types.ProfileRecord{}},
			field: "source",
		},
		{
			name: "invalid email",
			body: ProfileRequest{Record: &types.ProfileRecord{
				PersonalInfo: &types.PersonalInfo{Email: "not-an-email"},
			}},
			field: "personalInfo.email",
		},
		{
			name: "skill level out of range",
			body: ProfileRequest{Record: &types.ProfileRecord{
				Skills: []types.Skill{{ID: "s1", Name: "Go", Level: 11}},
			}},
			field: "skills[0].level",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t, newMemoryStore())

			w := doJSON(t, s, http.MethodPost, "/v1/profiles", tt.body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), tt.field)
		})
	}
}

func TestGetProfile(t *testing.T) {
	s := newTestServer(t, newMemoryStore())
	p := createProfile(t, s, ProfileRequest{Record: &types.ProfileRecord{Theme: types.StringPtr("dark")}})

	w := doJSON(t, s, http.MethodGet, "/v1/profiles/"+p.ID.String(), nil)

	require.Equal(t, http.StatusOK, w.Code)
	got := decodeBody[db.Profile](t, w)
	assert.Equal(t, p.ID, got.ID)
	assert.Equal(t, "dark", *got.Record.Theme)
}

func TestGetProfile_NotFound(t *testing.T) {
	s := newTestServer(t, newMemoryStore())

	w := doJSON(t, s, http.MethodGet, "/v1/profiles/"+uuid.NewString(), nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetProfile_InvalidID(t *testing.T) {
	s := newTestServer(t, newMemoryStore())

	w := doJSON(t, s, http.MethodGet, "/v1/profiles/not-a-uuid", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "must be a UUID")
}

func TestListProfiles_FiltersByOwner(t *testing.T) {
	s := newTestServer(t, newMemoryStore())
	createProfile(t, s, ProfileRequest{Owner: "a", Record: &types.ProfileRecord{}})
	createProfile(t, s, ProfileRequest{Owner: "b", Record: &types.ProfileRecord{}})

	w := doJSON(t, s, http.MethodGet, "/v1/profiles?owner=a", nil)

	require.Equal(t, http.StatusOK, w.Code)
	list := decodeBody[[]db.Profile](t, w)
	require.Len(t, list, 1)
	assert.Equal(t, "a", list[0].Owner)
}

func TestListProfiles_BadLimit(t *testing.T) {
	s := newTestServer(t, newMemoryStore())

	w := doJSON(t, s, http.MethodGet, "/v1/profiles?limit=ten", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateProfile(t *testing.T) {
	s := newTestServer(t, newMemoryStore())
	p := createProfile(t, s, ProfileRequest{Record: &types.ProfileRecord{}})

	w := doJSON(t, s, http.MethodPut, "/v1/profiles/"+p.ID.String(), ProfileRequest{
		Source: db.SourceExternal,
		Record: &types.ProfileRecord{Summary: types.StringPtr("Builder of things")},
	})

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	got := decodeBody[db.Profile](t, w)
	assert.Equal(t, db.SourceExternal, got.Source)
	assert.Equal(t, "Builder of things", got.Record.SummaryText())
}

func TestUpdateProfile_NotFound(t *testing.T) {
	s := newTestServer(t, newMemoryStore())

	w := doJSON(t, s, http.MethodPut, "/v1/profiles/"+uuid.NewString(), ProfileRequest{Record: &types.ProfileRecord{}})

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteProfile(t *testing.T) {
	s := newTestServer(t, newMemoryStore())
	p := createProfile(t, s, ProfileRequest{Record: &types.ProfileRecord{}})

	w := doJSON(t, s, http.MethodDelete, "/v1/profiles/"+p.ID.String(), nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, s, http.MethodDelete, "/v1/profiles/"+p.ID.String(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestImportProfile_Resume(t *testing.T) {
	store := newMemoryStore()
	s := newTestServer(t, store)
	p := createProfile(t, s, ProfileRequest{Record: &types.ProfileRecord{
		Skills: []types.Skill{{ID: "s1", Name: "go", Level: 8}},
	}})

	w := doUpload(t, s, "/v1/profiles/"+p.ID.String()+"/import", "resume.txt", []byte(sampleResume))

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp := decodeBody[ImportResponse](t, w)
	require.NotNil(t, resp.Profile)
	assert.True(t, resp.Import.Success)
	assert.Equal(t, db.SourceResume, resp.Profile.Source)
	assert.Equal(t, "jane.doe@example.com", resp.Profile.Record.PersonalInfo.Email)
	require.Len(t, resp.Profile.Record.Skills, 3)
	assert.Equal(t, 8, resp.Profile.Record.Skills[0].Level, "merge never lowers a level")

	require.Len(t, store.imports, 1)
	assert.Equal(t, "resume.txt", store.imports[0].Filename)
	assert.Len(t, store.imports[0].ContentHash, 64)
}

func TestImportProfile_FailedResumeIsRecorded(t *testing.T) {
	store := newMemoryStore()
	s := newTestServer(t, store)
	p := createProfile(t, s, ProfileRequest{Record: &types.ProfileRecord{Theme: types.StringPtr("light")}})

	w := doUpload(t, s, "/v1/profiles/"+p.ID.String()+"/import", "scan.png", []byte("\x89PNG\r\n\x1a\n"))

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	resp := decodeBody[ImportResponse](t, w)
	assert.Nil(t, resp.Profile)
	assert.False(t, resp.Import.Success)
	assert.NotEmpty(t, resp.Import.Errors)

	w = doJSON(t, s, http.MethodGet, "/v1/profiles/"+p.ID.String()+"/imports", nil)
	require.Equal(t, http.StatusOK, w.Code)
	imports := decodeBody[[]db.ProfileImport](t, w)
	require.Len(t, imports, 1)
	assert.False(t, imports[0].Success)

	unchanged, err := store.GetProfile(t.Context(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, db.SourceManual, unchanged.Source)
}

func TestImportProfile_External(t *testing.T) {
	store := newMemoryStore()
	s := newTestServer(t, store)
	p := createProfile(t, s, ProfileRequest{Record: &types.ProfileRecord{
		PersonalInfo: &types.PersonalInfo{FullName: "Jane Doe"},
	}})

	w := doJSON(t, s, http.MethodPost, "/v1/profiles/"+p.ID.String()+"/import", ImportRequest{
		Payload: json.RawMessage(`{"profile": {"localizedFirstName": "Janet", "localizedHeadline": "Engineer"}}`),
	})

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp := decodeBody[ImportResponse](t, w)
	assert.Equal(t, db.SourceExternal, resp.Profile.Source)
	assert.Equal(t, "Jane Doe", resp.Profile.Record.PersonalInfo.FullName, "personal info is kept by default")
	assert.Equal(t, "Engineer", resp.Profile.Record.PersonalInfo.Title)
}

func TestImportProfile_ExternalWithoutProfileSection(t *testing.T) {
	store := newMemoryStore()
	s := newTestServer(t, store)
	p := createProfile(t, s, ProfileRequest{Record: &types.ProfileRecord{}})

	w := doJSON(t, s, http.MethodPost, "/v1/profiles/"+p.ID.String()+"/import", ImportRequest{
		Payload: json.RawMessage(`{"skills": [{"name": "Go"}]}`),
	})

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	require.Len(t, store.imports, 1)
	assert.Equal(t, db.SourceExternal, store.imports[0].Source)
}

func TestImportProfile_UnknownProfile(t *testing.T) {
	s := newTestServer(t, newMemoryStore())

	w := doUpload(t, s, "/v1/profiles/"+uuid.NewString()+"/import", "resume.txt", []byte(sampleResume))

	assert.Equal(t, http.StatusNotFound, w.Code)
}
