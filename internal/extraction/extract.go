package extraction

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/jonathan/portfolio-builder/internal/ids"
	"github.com/jonathan/portfolio-builder/internal/skills"
	"github.com/jonathan/portfolio-builder/internal/types"
)

const (
	nameCandidateLines = 5
	nameMinLength      = 3
	nameMaxLength      = 50

	boundaryMaxLength    = 100
	descriptionMinLength = 20

	paragraphMinLength = 50
	summaryMinLength   = 100

	skillMinLength  = 2
	skillMaxLength  = 30
	skillLabelLimit = 30
)

// Options tunes extraction.
type Options struct {
	// CanonicalSkillNames rewrites skill names to their canonical spelling (golang -> Go).
	CanonicalSkillNames bool
}

// Parse extracts a partial profile from raw résumé text using the default options.
func Parse(rawText string) ParseResult {
	return ParseWithOptions(rawText, Options{})
}

// ParseWithOptions extracts a partial profile from raw résumé text.
//
// The same input always yields the same result, ids included. Fields that
// cannot be found are left nil and reported as warnings, so text with nothing
// recognizable yields an empty record rather than a failure. Only empty or
// whitespace-only input fails.
func ParseWithOptions(rawText string, opts Options) ParseResult {
	text := normalizeNewlines(strings.ToValidUTF8(rawText, ""))
	if strings.TrimSpace(text) == "" {
		return Failure(ErrCodeEmptyExtraction, "input text is empty")
	}

	sections := IdentifySections(text)
	gen := ids.New(text)

	profile := &types.ProfileRecord{
		PersonalInfo: extractPersonalInfo(text),
		Summary:      extractSummary(text, sections),
		Experience:   extractExperience(sections, gen),
		Education:    extractEducation(sections, gen),
		Skills:       extractSkills(sections, gen, opts),
	}

	return ParseResult{
		Success:  true,
		Warnings: missingFieldWarnings(profile),
		Profile:  profile,
		Sections: sections,
	}
}

func missingFieldWarnings(p *types.ProfileRecord) []string {
	var warnings []string
	missing := func(field string) {
		warnings = append(warnings, Message(ErrCodePartialData, field+" not found"))
	}
	if p.PersonalInfo == nil {
		missing("personalInfo")
	} else {
		if p.PersonalInfo.FullName == "" {
			missing("personalInfo.fullName")
		}
		if p.PersonalInfo.Email == "" {
			missing("personalInfo.email")
		}
	}
	if p.Summary == nil {
		missing("summary")
	}
	if p.Experience == nil {
		missing("experience")
	}
	if p.Education == nil {
		missing("education")
	}
	if p.Skills == nil {
		missing("skills")
	}
	return warnings
}

func firstSection(sections []Section, t SectionType) (Section, bool) {
	for _, s := range sections {
		if s.Type == t {
			return s, true
		}
	}
	return Section{}, false
}

// extractPersonalInfo returns nil when no contact field is found.
func extractPersonalInfo(text string) *types.PersonalInfo {
	info := &types.PersonalInfo{
		Email:    emailRe.FindString(text),
		Phone:    findPhone(text),
		FullName: guessName(text),
	}

	links := &types.Links{
		LinkedIn: withScheme(linkedinRe.FindString(text)),
		GitHub:   withScheme(githubRe.FindString(text)),
		WhatsApp: withScheme(whatsappRe.FindString(text)),
		Website:  firstWebsite(text),
	}
	if !links.IsEmpty() {
		info.Links = links
	}

	if info.IsEmpty() {
		return nil
	}
	return info
}

// guessName picks the first short line near the top that is not contact data.
func guessName(text string) string {
	lines := splitLines(text)
	if len(lines) > nameCandidateLines {
		lines = lines[:nameCandidateLines]
	}
	for _, line := range lines {
		line = strings.TrimSpace(strings.Trim(line, "#*_"))
		n := utf8.RuneCountInString(line)
		if n < nameMinLength || n >= nameMaxLength {
			continue
		}
		if emailRe.MatchString(line) || phoneRe.MatchString(line) || notANameRe.MatchString(line) {
			continue
		}
		if linkedinRe.MatchString(line) || githubRe.MatchString(line) || websiteRe.MatchString(line) {
			continue
		}
		if strings.ContainsAny(line, "0123456789|") || !strings.ContainsFunc(line, unicode.IsLetter) {
			continue
		}
		if ClassifyLine(line) != SectionUnknown {
			continue
		}
		return line
	}
	return ""
}

func withScheme(link string) string {
	link = strings.TrimRight(link, "/.")
	if link == "" {
		return ""
	}
	if !strings.HasPrefix(strings.ToLower(link), "http://") && !strings.HasPrefix(strings.ToLower(link), "https://") {
		return "https://" + link
	}
	return link
}

// firstWebsite returns the first URL that is not a recognized social profile.
func firstWebsite(text string) string {
	for _, u := range websiteRe.FindAllString(text, -1) {
		lower := strings.ToLower(u)
		if strings.Contains(lower, "linkedin.com") || strings.Contains(lower, "github.com") || strings.Contains(lower, "wa.me/") {
			continue
		}
		return strings.TrimRight(u, ".")
	}
	return ""
}

// extractSummary prefers an explicit summary section and falls back to the
// first long paragraph of the document.
func extractSummary(text string, sections []Section) *string {
	for _, s := range sections {
		if s.Type != SectionSummary {
			continue
		}
		if body := strings.TrimSpace(s.BodyText()); body != "" {
			return &body
		}
	}

	for _, para := range paragraphSplitRe.Split(text, -1) {
		para = strings.Join(strings.Fields(para), " ")
		n := utf8.RuneCountInString(para)
		if n <= paragraphMinLength {
			continue
		}
		if n > summaryMinLength {
			return &para
		}
	}
	return nil
}

// extractExperience walks the first experience section. Each line carrying a
// date range opens an entry; longer lines after it feed the description.
func extractExperience(sections []Section, gen *ids.Generator) []types.Experience {
	section, ok := firstSection(sections, SectionExperience)
	if !ok {
		return nil
	}

	var entries []types.Experience
	var description []string
	flush := func() {
		if len(entries) == 0 {
			return
		}
		entries[len(entries)-1].Description = strings.Join(description, "\n")
		description = nil
	}

	for _, line := range section.Lines {
		if utf8.RuneCountInString(line) < boundaryMaxLength && entryDateRe.MatchString(line) {
			flush()
			entry := parseEntryHeader(line)
			entry.ID = gen.ID("experience", len(entries))
			entries = append(entries, entry)
			continue
		}
		if len(entries) > 0 && utf8.RuneCountInString(line) > descriptionMinLength {
			description = append(description, line)
		}
	}
	flush()

	return entries
}

// parseEntryHeader reads "Title | Company | Location | Dates" in any order of
// the trailing segments.
func parseEntryHeader(line string) types.Experience {
	var segments []string
	for _, seg := range strings.Split(line, "|") {
		if seg = strings.TrimSpace(seg); seg != "" {
			segments = append(segments, seg)
		}
	}

	var exp types.Experience
	if len(segments) > 0 {
		exp.Title = stripDates(segments[0])
	}
	if len(segments) > 1 {
		exp.Company = stripDates(segments[1])
	}
	for _, seg := range segments[min(2, len(segments)):] {
		if !dateTokenRe.MatchString(seg) {
			exp.Location = seg
			break
		}
	}

	var tokens []string
	for _, seg := range segments {
		if hasDigitDate(seg) {
			tokens = append(tokens, dateTokenRe.FindAllString(seg, -1)...)
		}
	}
	for _, tok := range tokens {
		switch {
		case ongoingRe.MatchString(tok):
			exp.Current = true
		case exp.StartDate == "":
			exp.StartDate = tok
		case exp.EndDate == "":
			exp.EndDate = tok
		}
	}
	if exp.Current {
		exp.EndDate = ""
	}
	return exp
}

// stripDates removes date tokens and the separators they leave behind. Words
// like "Current" survive when the segment has no actual date.
func stripDates(seg string) string {
	if !hasDigitDate(seg) {
		return seg
	}
	out := dateTokenRe.ReplaceAllString(seg, "")
	out = dateResidueRe.ReplaceAllString(out, "")
	return strings.Join(strings.Fields(out), " ")
}

func hasDigitDate(s string) bool {
	for _, tok := range dateTokenRe.FindAllString(s, -1) {
		if !ongoingRe.MatchString(tok) {
			return true
		}
	}
	return false
}

func extractEducation(sections []Section, gen *ids.Generator) []types.Education {
	section, ok := firstSection(sections, SectionEducation)
	if !ok {
		return nil
	}
	body := strings.TrimSpace(section.BodyText())
	if body == "" {
		return nil
	}
	return []types.Education{{ID: gen.ID("education", 0), Description: body}}
}

func extractSkills(sections []Section, gen *ids.Generator, opts Options) []types.Skill {
	section, ok := firstSection(sections, SectionSkills)
	if !ok {
		return nil
	}

	var found []types.Skill
	for _, line := range section.Body() {
		if idx := strings.Index(line, ":"); idx > 0 && idx < skillLabelLimit {
			line = line[idx+1:]
		}
		for _, tok := range skillSplitRe.Split(line, -1) {
			name := strings.Trim(tok, " \t*")
			n := utf8.RuneCountInString(name)
			if n < skillMinLength || n >= skillMaxLength {
				continue
			}
			if opts.CanonicalSkillNames {
				name = skills.CanonicalName(name)
			}
			found = append(found, types.Skill{
				Name:              name,
				Level:             skills.DefaultLevel,
				Category:          skills.DefaultCategory,
				YearsOfExperience: skills.DefaultYears,
			})
		}
	}

	found = skills.Dedupe(found)
	if len(found) == 0 {
		return nil
	}
	for i := range found {
		found[i].ID = gen.ID("skill", i)
	}
	return found
}
