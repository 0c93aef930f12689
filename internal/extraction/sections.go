// Package extraction segments raw résumé text into labeled sections and pulls
// structured profile fields out of them with keyword and regex heuristics.
// Every function in this package is pure and safe for concurrent use.
package extraction

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// SectionType labels a block of résumé text.
type SectionType string

const (
	SectionPersonal       SectionType = "personal"
	SectionSummary        SectionType = "summary"
	SectionExperience     SectionType = "experience"
	SectionEducation      SectionType = "education"
	SectionSkills         SectionType = "skills"
	SectionProjects       SectionType = "projects"
	SectionCertifications SectionType = "certifications"
	SectionUnknown        SectionType = "unknown"
)

const (
	headerBoost     = 0.3
	headerMaxLength = 50
)

// sectionKeywords is the ordered classification table. Order matters: a line
// matching keywords of several types belongs to the first one listed.
var sectionKeywords = []struct {
	Type     SectionType
	Keywords []string
}{
	{SectionPersonal, []string{"personal information", "contact information", "contact details", "personal details", "contact"}},
	{SectionSummary, []string{"summary", "objective", "profile", "about me", "professional summary"}},
	{SectionExperience, []string{"experience", "employment", "work history", "professional background", "career history"}},
	{SectionEducation, []string{"education", "academic", "university", "college", "degree", "qualifications"}},
	{SectionSkills, []string{"skills", "technical skills", "competencies", "technologies", "expertise"}},
	{SectionProjects, []string{"projects", "portfolio", "personal projects"}},
	{SectionCertifications, []string{"certifications", "certificates", "licenses", "accreditations"}},
}

// Section is a contiguous run of lines sharing a type. Title is the line that
// opened the section; it is also the first entry of Lines.
type Section struct {
	Type       SectionType `json:"type"`
	Title      string      `json:"title"`
	Content    string      `json:"content"`
	Lines      []string    `json:"-"`
	Confidence float64     `json:"confidence"`
}

// Body returns the section lines without a leading heading line.
func (s Section) Body() []string {
	if len(s.Lines) > 0 && s.Type != SectionUnknown && isHeading(s.Lines[0]) {
		return s.Lines[1:]
	}
	return s.Lines
}

// BodyText returns Body joined by newlines.
func (s Section) BodyText() string {
	return strings.Join(s.Body(), "\n")
}

// IdentifySections splits raw text into typed sections.
//
// Lines are trimmed and blank lines dropped. A line containing a keyword of a
// type other than the open section's type closes that section and opens a new
// one. Unclassified lines join the open section; before any section is open
// they form an unknown section of their own. A section holding nothing but its
// heading is dropped.
func IdentifySections(rawText string) []Section {
	var sections []Section
	var current *Section

	closeCurrent := func() {
		if current != nil && len(current.Body()) > 0 {
			current.Content = strings.Join(current.Lines, "\n")
			sections = append(sections, *current)
		}
		current = nil
	}

	for _, line := range splitLines(rawText) {
		lineType, matched := classifyLine(line)

		switch {
		case lineType == SectionUnknown && current == nil:
			current = &Section{Type: SectionUnknown, Title: line}
			current.Lines = append(current.Lines, line)
		case lineType == SectionUnknown || (current != nil && lineType == current.Type):
			current.Lines = append(current.Lines, line)
		default:
			closeCurrent()
			current = &Section{
				Type:       lineType,
				Title:      line,
				Lines:      []string{line},
				Confidence: confidence(lineType, matched, line),
			}
		}
	}
	closeCurrent()

	return sections
}

// ClassifyLine returns the section type a single line belongs to.
func ClassifyLine(line string) SectionType {
	t, _ := classifyLine(line)
	return t
}

// classifyLine returns the first section type whose keywords occur in line,
// along with how many of that type's keywords occur.
func classifyLine(line string) (SectionType, int) {
	lower := strings.ToLower(line)
	for _, entry := range sectionKeywords {
		matched := 0
		for _, kw := range entry.Keywords {
			if strings.Contains(lower, kw) {
				matched++
			}
		}
		if matched > 0 {
			return entry.Type, matched
		}
	}
	return SectionUnknown, 0
}

// confidence scores how strongly a line signals its section, boosting short upper-case headings.
func confidence(t SectionType, matched int, line string) float64 {
	total := 0
	for _, entry := range sectionKeywords {
		if entry.Type == t {
			total = len(entry.Keywords)
			break
		}
	}
	if total == 0 {
		return 0
	}
	score := min(float64(matched)/float64(total), 1.0)
	if utf8.RuneCountInString(line) < headerMaxLength && isUpperCase(line) {
		score = min(score+headerBoost, 1.0)
	}
	return score
}

// isUpperCase reports whether s has letters and none of them are lower-case.
func isUpperCase(s string) bool {
	hasLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			hasLetter = true
			if unicode.IsLower(r) {
				return false
			}
		}
	}
	return hasLetter
}

// isHeading reports whether a line reads like a section heading rather than content.
func isHeading(line string) bool {
	trimmed := strings.TrimRight(strings.TrimSpace(line), ":")
	if trimmed == "" || utf8.RuneCountInString(trimmed) >= headerMaxLength {
		return false
	}
	if strings.ContainsAny(trimmed, "0123456789@|,;:•") {
		return false
	}
	return len(strings.Fields(trimmed)) <= 4
}

// splitLines returns the non-empty trimmed lines of text.
func splitLines(text string) []string {
	raw := strings.Split(normalizeNewlines(text), "\n")
	lines := make([]string, 0, len(raw))
	for _, l := range raw {
		if l = strings.TrimSpace(l); l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}

func normalizeNewlines(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.ReplaceAll(text, "\r", "\n")
}
