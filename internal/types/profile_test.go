package types

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileRecord_JSONOmitsAbsentFields(t *testing.T) {
	record := ProfileRecord{
		PersonalInfo: &PersonalInfo{FullName: "Jane Roe"},
		Skills:       []Skill{{ID: "s1", Name: "Go", Level: 5}},
	}

	data, err := json.Marshal(record)
	require.NoError(t, err)

	out := string(data)
	assert.Contains(t, out, `"fullName":"Jane Roe"`)
	assert.Contains(t, out, `"certified":false`)
	assert.NotContains(t, out, `"summary"`)
	assert.NotContains(t, out, `"experience"`)
	assert.NotContains(t, out, `"email"`)
}

func TestProfileRecord_SummaryDistinguishesBlank(t *testing.T) {
	var absent ProfileRecord
	blank := ProfileRecord{Summary: StringPtr("")}

	assert.True(t, absent.IsEmpty())
	assert.False(t, blank.IsEmpty())
	assert.Equal(t, "", blank.SummaryText())

	data, err := json.Marshal(blank)
	require.NoError(t, err)
	assert.JSONEq(t, `{"summary":""}`, string(data))
}

func TestProfileRecord_IsEmpty(t *testing.T) {
	var nilRecord *ProfileRecord
	assert.True(t, nilRecord.IsEmpty())
	assert.True(t, (&ProfileRecord{PersonalInfo: &PersonalInfo{Links: &Links{}}}).IsEmpty())
	assert.False(t, (&ProfileRecord{PersonalInfo: &PersonalInfo{Links: &Links{GitHub: "https://github.com/x"}}}).IsEmpty())
	assert.False(t, (&ProfileRecord{Theme: StringPtr("dark")}).IsEmpty())
}

func TestProfileRecord_Clone(t *testing.T) {
	original := &ProfileRecord{
		PersonalInfo: &PersonalInfo{FullName: "Jane", Links: &Links{GitHub: "https://github.com/jane"}},
		Summary:      StringPtr("hello"),
		Experience:   []Experience{{ID: "e1", Achievements: []string{"a"}, Skills: []string{"Go"}}},
		Education:    []Education{{ID: "ed1", Achievements: []string{"b"}}},
		Skills:       []Skill{{ID: "s1", Name: "Go", Level: 5}},
		Projects:     []Project{{ID: "p1", Name: "site", Technologies: []string{"Go"}}},
	}

	clone := original.Clone()
	require.Equal(t, original, clone)

	clone.PersonalInfo.Links.GitHub = "changed"
	*clone.Summary = "changed"
	clone.Experience[0].Achievements[0] = "changed"
	clone.Education[0].Achievements[0] = "changed"
	clone.Skills[0].Level = 9
	clone.Projects[0].Technologies[0] = "Rust"

	assert.Equal(t, "https://github.com/jane", original.PersonalInfo.Links.GitHub)
	assert.Equal(t, "hello", *original.Summary)
	assert.Equal(t, "a", original.Experience[0].Achievements[0])
	assert.Equal(t, "b", original.Education[0].Achievements[0])
	assert.Equal(t, 5, original.Skills[0].Level)
	assert.Equal(t, "Go", original.Projects[0].Technologies[0])

	var nilRecord *ProfileRecord
	assert.Nil(t, nilRecord.Clone())
}

func TestProfileRecord_Validate(t *testing.T) {
	tests := []struct {
		name    string
		record  ProfileRecord
		wantErr bool
	}{
		{"empty record", ProfileRecord{}, false},
		{"valid contact", ProfileRecord{PersonalInfo: &PersonalInfo{Email: "jane@x.io", Phone: "+1 (555) 123-4567"}}, false},
		{"bad email", ProfileRecord{PersonalInfo: &PersonalInfo{Email: "jane-at-x"}}, true},
		{"bad phone", ProfileRecord{PersonalInfo: &PersonalInfo{Phone: "call me"}}, true},
		{"bad link", ProfileRecord{PersonalInfo: &PersonalInfo{Links: &Links{Website: "nope"}}}, true},
		{"level too high", ProfileRecord{Skills: []Skill{{ID: "s", Name: "Go", Level: 11}}}, true},
		{"missing skill id", ProfileRecord{Skills: []Skill{{Name: "Go", Level: 5}}}, true},
		{"missing experience id", ProfileRecord{Experience: []Experience{{Title: "Dev"}}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.record.Validate()
			if tt.wantErr {
				var verrs validator.ValidationErrors
				assert.True(t, errors.As(err, &verrs), "got %v", err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestProfileRecord_ValidateReportsJSONNames(t *testing.T) {
	record := ProfileRecord{PersonalInfo: &PersonalInfo{Email: "nope"}}

	err := record.Validate()
	var verrs validator.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	require.Len(t, verrs, 1)
	assert.Equal(t, "ProfileRecord.personalInfo.email", verrs[0].Namespace())
}

func TestIsPhoneLike(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"555-123-4567", true},
		{"+44 20 7946 0958", true},
		{"(555) 123.4567", true},
		{"12345", false},
		{"phone", false},
		{"+1234567890123456", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsPhoneLike(tt.input), tt.input)
	}
}

func TestLocale_Key(t *testing.T) {
	var nilLocale *Locale
	assert.Equal(t, "", nilLocale.Key())
	assert.Equal(t, "", (&Locale{Country: "US"}).Key())
	assert.Equal(t, "en", (&Locale{Language: "en"}).Key())
	assert.Equal(t, "en_US", (&Locale{Language: "en", Country: "US"}).Key())
}
