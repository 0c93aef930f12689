package extraction

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const janeRoe = "Jane Roe\njane@x.com\n555-123-4567\n\nSUMMARY\nBuilds things.\n\nEXPERIENCE\nSenior Dev | Acme | Jan 2020 - Present\nShipped stuff."

func TestParse_BasicResume(t *testing.T) {
	result := Parse(janeRoe)

	require.True(t, result.Success)
	assert.Empty(t, result.Errors)
	require.NotNil(t, result.Profile)

	info := result.Profile.PersonalInfo
	require.NotNil(t, info)
	assert.Equal(t, "Jane Roe", info.FullName)
	assert.Equal(t, "jane@x.com", info.Email)
	assert.Equal(t, "555-123-4567", info.Phone)
	assert.Nil(t, info.Links)

	require.NotNil(t, result.Profile.Summary)
	assert.Equal(t, "Builds things.", *result.Profile.Summary)

	require.Len(t, result.Profile.Experience, 1)
	exp := result.Profile.Experience[0]
	assert.Equal(t, "Senior Dev", exp.Title)
	assert.Equal(t, "Acme", exp.Company)
	assert.Equal(t, "Jan 2020", exp.StartDate)
	assert.Empty(t, exp.EndDate)
	assert.True(t, exp.Current)
	assert.NotEmpty(t, exp.ID)
	// too short to count as description
	assert.Empty(t, exp.Description)

	assert.Nil(t, result.Profile.Education)
	assert.Nil(t, result.Profile.Skills)
	assert.Contains(t, result.Warnings, "PartialDataWarning: education not found")
	assert.Contains(t, result.Warnings, "PartialDataWarning: skills not found")
	assert.NoError(t, result.Profile.Validate())
}

func TestParse_EmptyInput(t *testing.T) {
	for _, input := range []string{"", "   ", "\n\n\t\r\n"} {
		result := Parse(input)
		assert.False(t, result.Success)
		assert.Nil(t, result.Profile)
		require.Len(t, result.Errors, 1)
		assert.True(t, strings.HasPrefix(result.Errors[0], ErrCodeEmptyExtraction+":"))
	}
}

func TestParse_NothingExtractable(t *testing.T) {
	for _, input := range []string{"-- ..\n12", "SKILLS\n-, ;"} {
		result := Parse(input)

		assert.True(t, result.Success, input)
		assert.Empty(t, result.Errors)
		require.NotNil(t, result.Profile)
		assert.True(t, result.Profile.IsEmpty())
		assert.Contains(t, result.Warnings, "PartialDataWarning: personalInfo not found")
		assert.Contains(t, result.Warnings, "PartialDataWarning: skills not found")
	}
}

func TestParse_Idempotent(t *testing.T) {
	text := janeRoe + "\n\nEDUCATION\nB.S. Computer Science\n\nSKILLS\nGo, Rust, Python"

	first := Parse(text)
	second := Parse(text)

	assert.Equal(t, first, second)
	require.Len(t, first.Profile.Skills, 3)
	assert.Equal(t, first.Profile.Skills[0].ID, second.Profile.Skills[0].ID)
}

func TestParse_UniqueIDs(t *testing.T) {
	text := "EXPERIENCE\nDev | A | 2015 - 2017\nDev | B | 2017 - 2019\nEDUCATION\nState College\nSKILLS\nGo, Rust, SQL"

	result := Parse(text)
	require.True(t, result.Success)

	seen := map[string]bool{}
	collect := func(id string) {
		assert.NotEmpty(t, id)
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
	for _, e := range result.Profile.Experience {
		collect(e.ID)
	}
	for _, e := range result.Profile.Education {
		collect(e.ID)
	}
	for _, s := range result.Profile.Skills {
		collect(s.ID)
	}
	assert.Len(t, seen, 6)
}

func TestParse_NeverPanics(t *testing.T) {
	inputs := []string{
		"\x00\xff\xfe",
		"|||",
		"Jan 2020",
		"EXPERIENCE\n| | Jan 2020 - now",
		"SKILLS\n:",
		"SUMMARY",
		strings.Repeat("experience ", 500),
		strings.Repeat("a", 10000),
		"EXPERIENCE\n" + strings.Repeat("Dev | Co | 2010 - 2011\n", 200),
	}
	for _, input := range inputs {
		assert.NotPanics(t, func() { Parse(input) })
	}
}

func TestParse_Experience(t *testing.T) {
	text := strings.Join([]string{
		"EXPERIENCE",
		"Backend Engineer | Globex | Berlin | Mar 2018 - Dec 2019",
		"Built the billing platform in Go and Postgres.",
		"short line",
		"Senior Dev | Acme | Jan 2020 - Present",
		"Led migration of services to Kubernetes.",
		"Cut deploy times in half across teams.",
	}, "\n")

	result := Parse(text)
	require.True(t, result.Success)
	require.Len(t, result.Profile.Experience, 2)

	first := result.Profile.Experience[0]
	assert.Equal(t, "Backend Engineer", first.Title)
	assert.Equal(t, "Globex", first.Company)
	assert.Equal(t, "Berlin", first.Location)
	assert.Equal(t, "Mar 2018", first.StartDate)
	assert.Equal(t, "Dec 2019", first.EndDate)
	assert.False(t, first.Current)
	assert.Equal(t, "Built the billing platform in Go and Postgres.", first.Description)

	second := result.Profile.Experience[1]
	assert.True(t, second.Current)
	assert.Empty(t, second.EndDate)
	assert.Equal(t, "Led migration of services to Kubernetes.\nCut deploy times in half across teams.", second.Description)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestParse_WordsStartingLikeMonthsAreNotDates(t *testing.T) {
	text := strings.Join([]string{
		"EXPERIENCE",
		"Analyst | Initech | September 2019 - June 2021",
		"Junior Developer with a Marketing 2020 focus at Acme",
		"Mayor Decade 2015 liaison for the regional office",
	}, "\n")

	result := Parse(text)
	require.True(t, result.Success)
	require.Len(t, result.Profile.Experience, 1)

	exp := result.Profile.Experience[0]
	assert.Equal(t, "September 2019", exp.StartDate)
	assert.Equal(t, "June 2021", exp.EndDate)
	assert.Equal(t, "Junior Developer with a Marketing 2020 focus at Acme\nMayor Decade 2015 liaison for the regional office", exp.Description)
}

func TestParseEntryHeader(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		title   string
		company string
		start   string
		end     string
		current bool
	}{
		{"pipes", "Dev | Acme | 2015 - 2018", "Dev", "Acme", "2015", "2018", false},
		{"no pipes", "Software Engineer, Acme, Jan 2020 - Dec 2022", "Software Engineer, Acme", "", "Jan 2020", "Dec 2022", false},
		{"slash dates", "Analyst | Initech | 1/15/2012 - 3/1/2014", "Analyst", "Initech", "1/15/2012", "3/1/2014", false},
		{"year to present", "Lead | Hooli | 2019 to current", "Lead", "Hooli", "2019", "", true},
		{"dates on title", "Dev (2015-2016) | Acme", "Dev", "Acme", "2015", "2016", false},
		{"abbreviated months with dots", "Dev | Acme | Sept. 2019 - Feb. 2021", "Dev", "Acme", "Sept. 2019", "Feb. 2021", false},
		{"current in title without date", "Current Projects Lead | Acme | 2019 - 2020", "Current Projects Lead", "Acme", "2019", "2020", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exp := parseEntryHeader(tt.line)
			assert.Equal(t, tt.title, exp.Title)
			assert.Equal(t, tt.company, exp.Company)
			assert.Equal(t, tt.start, exp.StartDate)
			assert.Equal(t, tt.end, exp.EndDate)
			assert.Equal(t, tt.current, exp.Current)
		})
	}
}

func TestParse_SummaryFallsBackToLongParagraph(t *testing.T) {
	para := "Engineer with ten years building distributed systems, data pipelines and developer tooling for growing teams."
	text := "Jane Roe\n\nShort intro line that is not long enough.\n\n" + para

	result := Parse(text)

	require.True(t, result.Success)
	require.NotNil(t, result.Profile.Summary)
	assert.Equal(t, para, *result.Profile.Summary)
}

func TestParse_SummaryAbsent(t *testing.T) {
	result := Parse("Jane Roe\njane@x.com")

	require.True(t, result.Success)
	assert.Nil(t, result.Profile.Summary)
	assert.Contains(t, result.Warnings, "PartialDataWarning: summary not found")
}

func TestParse_Education(t *testing.T) {
	result := Parse("Jane Roe\nEDUCATION\nB.S. Computer Science\nState University, 2016")

	require.True(t, result.Success)
	require.Len(t, result.Profile.Education, 1)
	assert.Equal(t, "B.S. Computer Science\nState University, 2016", result.Profile.Education[0].Description)
}

func TestParse_Skills(t *testing.T) {
	result := Parse("Jane Roe\nSKILLS\nLanguages: Go, Python; Rust\n• Docker • Kubernetes\ngo\n* SQL")

	require.True(t, result.Success)
	var names []string
	for _, s := range result.Profile.Skills {
		names = append(names, s.Name)
		assert.Equal(t, 5, s.Level)
		assert.Equal(t, "Technical", s.Category)
		assert.Equal(t, 1, s.YearsOfExperience)
		assert.False(t, s.Certified)
	}
	assert.Equal(t, []string{"Go", "Python", "Rust", "Docker", "Kubernetes", "SQL"}, names)
}

func TestParse_SkillTokenLength(t *testing.T) {
	long := strings.Repeat("x", 30)
	result := Parse("Jane Roe\nSKILLS\nC, R, Go, " + long)

	require.True(t, result.Success)
	require.Len(t, result.Profile.Skills, 1)
	assert.Equal(t, "Go", result.Profile.Skills[0].Name)
}

func TestParse_DelimiterOnlySkillsLine(t *testing.T) {
	result := Parse("Jane Roe\nSKILLS\n• , ; · -")

	require.True(t, result.Success)
	assert.Empty(t, result.Profile.Skills)
}

func TestParse_CanonicalSkillNames(t *testing.T) {
	result := ParseWithOptions("Jane Roe\nSKILLS\ngolang, k8s, Golang", Options{CanonicalSkillNames: true})

	require.True(t, result.Success)
	require.Len(t, result.Profile.Skills, 2)
	assert.Equal(t, "Go", result.Profile.Skills[0].Name)
	assert.Equal(t, "Kubernetes", result.Profile.Skills[1].Name)
}

func TestParse_Links(t *testing.T) {
	text := "Jane Roe\nlinkedin.com/in/janeroe | github.com/janeroe | https://janeroe.dev\nwa.me/15551234567"

	result := Parse(text)

	require.True(t, result.Success)
	info := result.Profile.PersonalInfo
	require.NotNil(t, info)
	assert.Equal(t, "Jane Roe", info.FullName)
	require.NotNil(t, info.Links)
	assert.Equal(t, "https://linkedin.com/in/janeroe", info.Links.LinkedIn)
	assert.Equal(t, "https://github.com/janeroe", info.Links.GitHub)
	assert.Equal(t, "https://janeroe.dev", info.Links.Website)
	assert.Equal(t, "https://wa.me/15551234567", info.Links.WhatsApp)
}

func TestGuessName(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected string
	}{
		{"first line", "Jane Roe\njane@x.com", "Jane Roe"},
		{"skips resume banner", "RESUME\nJohn Smith", "John Smith"},
		{"skips cv banner", "Curriculum Vitae - CV\nJohn Smith", "John Smith"},
		{"skips contact lines", "jane@x.com\n+1 555 123 4567\nJane Roe", "Jane Roe"},
		{"skips headings", "SUMMARY\nJane Roe", "Jane Roe"},
		{"too short", "Jo", ""},
		{"outside first five lines", "a@b.co\nb@c.co\nc@d.co\nd@e.co\ne@f.co\nJane Roe", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, guessName(tt.text))
		})
	}
}
