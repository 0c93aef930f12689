package db

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/portfolio-builder/internal/types"
)

func TestMigrationFiles_Ordered(t *testing.T) {
	names, err := migrationFiles()
	require.NoError(t, err)

	assert.Equal(t, []string{
		"migrations/001_profiles.sql",
		"migrations/002_profile_imports.sql",
	}, names)

	for _, name := range names {
		sql, err := migrationsFS.ReadFile(name)
		require.NoError(t, err)
		assert.Contains(t, string(sql), "IF NOT EXISTS", "%s should be idempotent", name)
	}
}

func TestListOptions_Normalized(t *testing.T) {
	tests := []struct {
		name string
		in   ListOptions
		want ListOptions
	}{
		{"defaults", ListOptions{}, ListOptions{Limit: defaultListLimit}},
		{"clamps limit", ListOptions{Limit: 10_000}, ListOptions{Limit: maxListLimit}},
		{"negative offset", ListOptions{Limit: 5, Offset: -3}, ListOptions{Limit: 5}},
		{"keeps owner", ListOptions{Owner: "jane", Limit: 20, Offset: 40}, ListOptions{Owner: "jane", Limit: 20, Offset: 40}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.normalized())
		})
	}
}

func TestValidSource(t *testing.T) {
	assert.True(t, ValidSource(SourceResume))
	assert.True(t, ValidSource(SourceExternal))
	assert.True(t, ValidSource(SourceManual))
	assert.False(t, ValidSource(""))
	assert.False(t, ValidSource("fax"))
}

func TestEncodeDecodeRecord(t *testing.T) {
	record := &types.ProfileRecord{
		Summary: types.StringPtr(""),
		Skills:  []types.Skill{{ID: "s1", Name: "Go", Level: 7}},
	}

	data, err := encodeRecord(record)
	require.NoError(t, err)

	decoded, err := decodeRecord(data)
	require.NoError(t, err)
	assert.Equal(t, record, decoded)
	require.NotNil(t, decoded.Summary, "present-but-blank summary must survive storage")
}

func TestEncodeRecord_Nil(t *testing.T) {
	data, err := encodeRecord(nil)
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(data))
}

func TestDecodeRecord_Invalid(t *testing.T) {
	_, err := decodeRecord([]byte(`{"skills": "nope"}`))

	var recErr *RecordError
	require.True(t, errors.As(err, &recErr))
	var typeErr *json.UnmarshalTypeError
	assert.True(t, errors.As(err, &typeErr))
}

func TestNotFoundError(t *testing.T) {
	id := uuid.MustParse("6f1c1f1e-3a9b-4f7e-9a43-2f4c0d6f1a10")
	err := &NotFoundError{ID: id}
	assert.True(t, strings.HasSuffix(err.Error(), id.String()))
}

func TestNonNilStrings(t *testing.T) {
	assert.Equal(t, []string{}, nonNilStrings(nil))
	assert.Equal(t, []string{"a"}, nonNilStrings([]string{"a"}))
}
