package linkedin

import (
	"encoding/json"
	"testing"

	"github.com/jonathan/portfolio-builder/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func skillNamesAndLevels(list []types.Skill) [][2]any {
	out := make([][2]any, 0, len(list))
	for _, s := range list {
		out = append(out, [2]any{s.Name, s.Level})
	}
	return out
}

func TestMergeMapped_SkillsUnique(t *testing.T) {
	existing := &types.ProfileRecord{Skills: []types.Skill{{ID: "s1", Name: "Go", Level: 6}}}
	mapped := &types.ProfileRecord{Skills: []types.Skill{
		{ID: "m1", Name: "go", Level: 9},
		{ID: "m2", Name: "Rust", Level: 4},
	}}

	out := MergeMapped(existing, mapped, "", types.MergeFlags{MergeSkills: true})

	assert.Equal(t, [][2]any{{"Go", 9}, {"Rust", 4}}, skillNamesAndLevels(out.Skills))
	assert.Equal(t, "s1", out.Skills[0].ID)
	assert.Equal(t, 6, existing.Skills[0].Level)
}

func TestMergeMapped_SkillLevelIsMax(t *testing.T) {
	tests := []struct {
		name     string
		existing int
		mapped   int
	}{
		{"mapped higher", 5, 8},
		{"existing higher", 8, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := MergeMapped(
				&types.ProfileRecord{Skills: []types.Skill{{ID: "a", Name: "React", Level: tt.existing}}},
				&types.ProfileRecord{Skills: []types.Skill{{ID: "b", Name: "REACT", Level: tt.mapped}}},
				"", types.MergeFlags{MergeSkills: true})

			require.Len(t, out.Skills, 1)
			assert.Equal(t, "React", out.Skills[0].Name)
			assert.Equal(t, 8, out.Skills[0].Level)
		})
	}
}

func TestMergeMapped_SkillsReplace(t *testing.T) {
	existing := &types.ProfileRecord{Skills: []types.Skill{{ID: "s1", Name: "Go", Level: 6}}}

	out := MergeMapped(existing, &types.ProfileRecord{Skills: []types.Skill{{ID: "m1", Name: "Rust", Level: 4}}}, "", types.MergeFlags{})
	assert.Equal(t, [][2]any{{"Rust", 4}}, skillNamesAndLevels(out.Skills))

	out = MergeMapped(existing, &types.ProfileRecord{}, "", types.MergeFlags{})
	assert.Equal(t, [][2]any{{"Go", 6}}, skillNamesAndLevels(out.Skills))
}

func TestMergeMapped_PersonalInfo(t *testing.T) {
	existing := &types.ProfileRecord{PersonalInfo: &types.PersonalInfo{
		FullName: "Jane Roe",
		Email:    "jane@old.com",
		Links:    &types.Links{GitHub: "https://github.com/jane"},
	}}
	mapped := &types.ProfileRecord{PersonalInfo: &types.PersonalInfo{
		FullName: "Jane A. Roe",
		Title:    "Staff Engineer",
		Links:    &types.Links{LinkedIn: "https://www.linkedin.com/in/jane", GitHub: "https://github.com/jane-roe"},
	}}

	t.Run("overwrite", func(t *testing.T) {
		out := MergeMapped(existing, mapped, "", types.MergeFlags{OverwritePersonalInfo: true})
		info := out.PersonalInfo
		assert.Equal(t, "Jane A. Roe", info.FullName)
		assert.Equal(t, "Staff Engineer", info.Title)
		assert.Equal(t, "jane@old.com", info.Email)
		assert.Equal(t, "https://github.com/jane-roe", info.Links.GitHub)
		assert.Equal(t, "https://www.linkedin.com/in/jane", info.Links.LinkedIn)
	})

	t.Run("fill blanks only", func(t *testing.T) {
		out := MergeMapped(existing, mapped, "", types.MergeFlags{})
		info := out.PersonalInfo
		assert.Equal(t, "Jane Roe", info.FullName)
		assert.Equal(t, "Staff Engineer", info.Title)
		assert.Equal(t, "jane@old.com", info.Email)
		assert.Equal(t, "https://github.com/jane", info.Links.GitHub)
		assert.Equal(t, "https://www.linkedin.com/in/jane", info.Links.LinkedIn)
	})

	t.Run("existing missing", func(t *testing.T) {
		out := MergeMapped(&types.ProfileRecord{}, mapped, "", types.MergeFlags{})
		assert.Equal(t, mapped.PersonalInfo, out.PersonalInfo)
		assert.NotSame(t, mapped.PersonalInfo, out.PersonalInfo)
	})

	assert.Equal(t, "Jane Roe", existing.PersonalInfo.FullName)
	assert.Equal(t, "https://github.com/jane", existing.PersonalInfo.Links.GitHub)
}

func TestMergeMapped_PresentButBlankPersonalInfo(t *testing.T) {
	var existing types.ProfileRecord
	require.NoError(t, json.Unmarshal([]byte(`{"personalInfo": {"fullName": "Jane Roe", "title": ""}}`), &existing))
	mapped := &types.ProfileRecord{PersonalInfo: &types.PersonalInfo{Title: "Staff Engineer", Location: "Berlin"}}

	t.Run("kept without overwrite", func(t *testing.T) {
		out := MergeMapped(&existing, mapped, "", types.MergeFlags{})
		assert.Empty(t, out.PersonalInfo.Title)
		assert.True(t, out.PersonalInfo.IsBlank("title"))
		assert.Equal(t, "Berlin", out.PersonalInfo.Location, "missing fields are still filled")

		data, err := json.Marshal(out.PersonalInfo)
		require.NoError(t, err)
		assert.JSONEq(t, `{"fullName": "Jane Roe", "title": "", "location": "Berlin"}`, string(data))
	})

	t.Run("replaced with overwrite", func(t *testing.T) {
		out := MergeMapped(&existing, mapped, "", types.MergeFlags{OverwritePersonalInfo: true})
		assert.Equal(t, "Staff Engineer", out.PersonalInfo.Title)
		assert.False(t, out.PersonalInfo.IsBlank("title"))
	})
}

func TestMergeMapped_ExperienceConcatAndReplace(t *testing.T) {
	existing := &types.ProfileRecord{Experience: []types.Experience{{ID: "x1", Title: "Dev"}}}
	mapped := &types.ProfileRecord{Experience: []types.Experience{
		{ID: "x1", Title: "Dev"},
		{ID: "x2", Title: "Lead"},
	}}

	out := MergeMapped(existing, mapped, "", types.MergeFlags{MergeExperience: true})
	require.Len(t, out.Experience, 3)
	assert.Equal(t, "x1", out.Experience[0].ID)
	assert.NotEqual(t, "x1", out.Experience[1].ID, "colliding id is renamed")
	assert.Equal(t, "Dev", out.Experience[1].Title)
	assert.Equal(t, "x2", out.Experience[2].ID)

	out = MergeMapped(existing, mapped, "", types.MergeFlags{})
	require.Len(t, out.Experience, 2)
	assert.Equal(t, "Lead", out.Experience[1].Title)

	out = MergeMapped(existing, &types.ProfileRecord{}, "", types.MergeFlags{})
	require.Len(t, out.Experience, 1)

	assert.Len(t, existing.Experience, 1)
	assert.Len(t, mapped.Experience, 2)
}

func TestMergeMapped_Education(t *testing.T) {
	existing := &types.ProfileRecord{Education: []types.Education{{ID: "e1", Institution: "College"}}}
	mapped := &types.ProfileRecord{Education: []types.Education{{ID: "e2", Institution: "University"}}}

	out := MergeMapped(existing, mapped, "", types.MergeFlags{MergeEducation: true})
	require.Len(t, out.Education, 2)

	out = MergeMapped(existing, mapped, "", types.MergeFlags{})
	require.Len(t, out.Education, 1)
	assert.Equal(t, "University", out.Education[0].Institution)
}

func TestMergeMapped_Summary(t *testing.T) {
	existing := &types.ProfileRecord{Summary: types.StringPtr("Original summary.")}

	out := MergeMapped(existing, &types.ProfileRecord{}, "Enhanced summary.", types.MergeFlags{EnhanceSummary: false})
	assert.Equal(t, "Original summary.", *out.Summary)

	out = MergeMapped(existing, &types.ProfileRecord{}, "Enhanced summary.", types.MergeFlags{EnhanceSummary: true})
	assert.Equal(t, "Enhanced summary.", *out.Summary)

	out = MergeMapped(existing, &types.ProfileRecord{}, "", types.MergeFlags{EnhanceSummary: true})
	assert.Equal(t, "Original summary.", *out.Summary)

	out = MergeMapped(&types.ProfileRecord{}, &types.ProfileRecord{}, "Enhanced summary.", types.MergeFlags{})
	assert.Nil(t, out.Summary)
}

func TestMerge_EnhanceSummaryOffKeepsSummaryByteIdentical(t *testing.T) {
	original := "Line one.\n\n  trailing spaces  \t"
	existing := &types.ProfileRecord{Summary: types.StringPtr(original)}

	payload := samplePayload()
	payload.Recommendations = []types.Recommendation{{Text: "An exceptional and strategic leader."}}
	payload.Posts = []types.Post{{Text: "machine learning and devops"}}

	out := Merge(existing, payload, types.MergeFlags{
		OverwritePersonalInfo: true, MergeExperience: true, MergeEducation: true, MergeSkills: true,
	})

	require.NotNil(t, out.Summary)
	assert.Equal(t, original, *out.Summary)
}

func TestMergeMapped_UntouchedAndPassThroughFields(t *testing.T) {
	existing := &types.ProfileRecord{
		Projects:       []types.Project{{ID: "p1", Name: "Site"}},
		Theme:          types.StringPtr("dark"),
		Certifications: []types.Certification{{ID: "c1", Name: "CKA"}},
		Languages:      []types.Language{{ID: "l1", Name: "English"}},
	}

	out := MergeMapped(existing, &types.ProfileRecord{
		Projects:       []types.Project{{ID: "p2", Name: "Other"}},
		Theme:          types.StringPtr("light"),
		Certifications: []types.Certification{},
		Languages:      []types.Language{{ID: "l2", Name: "German"}},
	}, "", types.MergeFlags{MergeExperience: true, MergeEducation: true, MergeSkills: true})

	assert.Equal(t, existing.Projects, out.Projects)
	assert.Equal(t, "dark", *out.Theme)
	assert.Equal(t, existing.Certifications, out.Certifications)
	require.Len(t, out.Languages, 1)
	assert.Equal(t, "German", out.Languages[0].Name)
}

func TestMerge_DoesNotMutateInputs(t *testing.T) {
	existing := &types.ProfileRecord{
		PersonalInfo: &types.PersonalInfo{FullName: "Old Name", Links: &types.Links{Website: "https://old.example"}},
		Summary:      types.StringPtr("Old"),
		Experience:   []types.Experience{{ID: "x1", Title: "Dev", Achievements: []string{"a"}}},
		Skills:       []types.Skill{{ID: "s1", Name: "Go", Level: 2}},
	}
	snapshot := existing.Clone()
	payload := samplePayload()
	payloadSnapshot := samplePayload()

	out := Merge(existing, payload, types.MergeFlags{
		OverwritePersonalInfo: true, MergeExperience: true, MergeEducation: true, MergeSkills: true, EnhanceSummary: true,
	})

	assert.Equal(t, snapshot, existing)
	assert.Equal(t, payloadSnapshot, payload)

	out.Experience[0].Achievements[0] = "changed"
	out.PersonalInfo.Links.Website = "https://changed.example"
	assert.Equal(t, "a", existing.Experience[0].Achievements[0])
	assert.Equal(t, "https://old.example", existing.PersonalInfo.Links.Website)

	assert.Equal(t, "Jane Roe", out.PersonalInfo.FullName)
	assert.Equal(t, 9, out.Skills[0].Level)
	assert.Equal(t, "Builds reliable systems.", *out.Summary)
}

func TestMerge_NilInputs(t *testing.T) {
	out := Merge(nil, nil, types.MergeFlags{MergeSkills: true})
	require.NotNil(t, out)
	assert.True(t, out.IsEmpty())

	existing := &types.ProfileRecord{Summary: types.StringPtr("Kept")}
	out = Merge(existing, nil, types.MergeFlags{EnhanceSummary: true})
	assert.Equal(t, "Kept", *out.Summary)
}

func TestMerge_UniqueSkillIDs(t *testing.T) {
	payload := samplePayload()

	first := Merge(nil, payload, types.MergeFlags{MergeSkills: true})
	second := Merge(first, payload, types.MergeFlags{MergeExperience: true, MergeSkills: true})

	require.Len(t, second.Experience, 4)
	seen := map[string]bool{}
	for _, e := range second.Experience {
		assert.False(t, seen[e.ID], "duplicate id %s", e.ID)
		seen[e.ID] = true
	}
	assert.Len(t, second.Skills, 2)
}
