// Package linkedin maps a professional-network profile export onto the
// profile schema and merges the result into an existing record.
package linkedin

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/jonathan/portfolio-builder/internal/ids"
	"github.com/jonathan/portfolio-builder/internal/skills"
	"github.com/jonathan/portfolio-builder/internal/types"
)

const profileURLPrefix = "https://www.linkedin.com/in/"

// MapResult is the outcome of MapToProfile. Recommendations and Posts are
// passed through for the caller; Unmapped holds payload fields the profile
// schema has no home for.
type MapResult struct {
	Success         bool                   `json:"success"`
	Errors          []string               `json:"errors,omitempty"`
	Mapped          *types.ProfileRecord   `json:"mapped,omitempty"`
	Recommendations []types.Recommendation `json:"recommendations"`
	Posts           []types.Post           `json:"posts"`
	Unmapped        map[string]any         `json:"unmapped"`
}

// MapToProfile converts an external payload into a partial profile record.
// The mapped summary already carries the enhanced-summary blocks built from
// recommendations and posts.
func MapToProfile(payload *types.ExternalPayload) MapResult {
	if payload == nil {
		return MapResult{Errors: []string{message(ErrCodeEmptyPayload, "payload is nil")}}
	}
	if payload.Profile == nil {
		return MapResult{Errors: []string{message(ErrCodeMissingProfile, "payload has no profile section")}}
	}

	return MapResult{
		Success:         true,
		Mapped:          mapPayload(payload),
		Recommendations: nonNil(payload.Recommendations),
		Posts:           nonNil(payload.Posts),
		Unmapped:        unmappedFields(payload),
	}
}

// mapPayload maps whatever sections the payload carries. It never fails.
func mapPayload(payload *types.ExternalPayload) *types.ProfileRecord {
	gen := ids.New(payloadSeed(payload))

	record := &types.ProfileRecord{
		PersonalInfo:   mapPersonalInfo(payload.Profile),
		Experience:     mapPositions(payload.Positions, gen),
		Education:      mapSchools(payload.Education, gen),
		Skills:         mapSkills(payload.Skills, gen),
		Certifications: []types.Certification{},
		Languages:      []types.Language{},
	}

	var base string
	if payload.Profile != nil {
		base = localized(payload.Profile.Summary, payload.Profile.LocalizedSummary)
	}
	if summary := EnhanceSummary(base, payload.Recommendations, payload.Posts); summary != "" {
		record.Summary = &summary
	}
	return record
}

// payloadSeed returns the canonical JSON of the payload. Map keys are
// marshaled in sorted order, so equal payloads give equal seeds.
func payloadSeed(payload *types.ExternalPayload) string {
	b, err := json.Marshal(payload)
	if err != nil {
		return fmt.Sprintf("%+v", *payload)
	}
	return string(b)
}

func mapPersonalInfo(p *types.ExternalProfile) *types.PersonalInfo {
	if p == nil {
		return nil
	}

	first := localized(p.FirstName, p.LocalizedFirstName)
	last := localized(p.LastName, p.LocalizedLastName)

	info := &types.PersonalInfo{
		FullName:  strings.TrimSpace(strings.Join(nonEmpty(first, last), " ")),
		Title:     localized(p.Headline, p.LocalizedHeadline),
		Location:  strings.TrimSpace(p.Location),
		Email:     strings.TrimSpace(p.Email),
		Phone:     strings.TrimSpace(p.Phone),
		AvatarURL: strings.TrimSpace(p.ProfilePicture),
	}

	links := &types.Links{}
	if vanity := strings.TrimSpace(p.VanityName); vanity != "" {
		links.LinkedIn = profileURLPrefix + vanity
	}
	for _, site := range p.Websites {
		if site = strings.TrimSpace(site); site != "" {
			links.Website = site
			break
		}
	}
	if !links.IsEmpty() {
		info.Links = links
	}

	if info.IsEmpty() {
		return nil
	}
	return info
}

// localized resolves a localized field: the preferred-locale entry, else the
// first entry in key order, else the flat fallback value.
func localized(field *types.LocalizedField, fallback string) string {
	if field != nil && len(field.Localized) > 0 {
		if key := field.PreferredLocale.Key(); key != "" {
			if v, ok := field.Localized[key]; ok && strings.TrimSpace(v) != "" {
				return strings.TrimSpace(v)
			}
		}
		keys := make([]string, 0, len(field.Localized))
		for k := range field.Localized {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if v := strings.TrimSpace(field.Localized[k]); v != "" {
				return v
			}
		}
	}
	return strings.TrimSpace(fallback)
}

func mapPositions(positions []types.ExternalPosition, gen *ids.Generator) []types.Experience {
	if len(positions) == 0 {
		return nil
	}
	out := make([]types.Experience, 0, len(positions))
	for i, p := range positions {
		exp := types.Experience{
			ID:          gen.ID("experience", i),
			Title:       strings.TrimSpace(p.Title),
			Company:     strings.TrimSpace(p.CompanyName),
			Location:    strings.TrimSpace(p.Location),
			Description: strings.TrimSpace(p.Description),
			StartDate:   FormatDate(p.StartDate),
			Current:     p.IsCurrent,
		}
		if !p.IsCurrent {
			exp.EndDate = FormatDate(p.EndDate)
		}
		out = append(out, exp)
	}
	return out
}

func mapSchools(schools []types.ExternalSchool, gen *ids.Generator) []types.Education {
	if len(schools) == 0 {
		return nil
	}
	out := make([]types.Education, 0, len(schools))
	for i, s := range schools {
		out = append(out, types.Education{
			ID:          gen.ID("education", i),
			Institution: strings.TrimSpace(s.SchoolName),
			Degree:      strings.TrimSpace(s.DegreeName),
			Field:       strings.TrimSpace(s.FieldOfStudy),
			StartDate:   FormatDate(s.StartDate),
			EndDate:     FormatDate(s.EndDate),
			Description: strings.TrimSpace(s.Notes),
			GPA:         strings.TrimSpace(s.Grade),
		})
	}
	return out
}

func mapSkills(in []types.ExternalSkill, gen *ids.Generator) []types.Skill {
	list := make([]types.Skill, 0, len(in))
	for _, s := range in {
		list = append(list, types.Skill{
			Name:     strings.TrimSpace(s.Name),
			Level:    skills.LevelFromEndorsements(s.EndorsementCount),
			Category: skills.DefaultCategory,
		})
	}
	list = skills.Dedupe(list)
	if len(list) == 0 {
		return nil
	}
	for i := range list {
		list[i].ID = gen.ID("skill", i)
	}
	return list
}

// FormatDate renders MM/YYYY when the month is known, YYYY otherwise, and ""
// for a missing date.
func FormatDate(d *types.YearMonth) string {
	if d == nil || d.Year <= 0 {
		return ""
	}
	if d.Month >= 1 && d.Month <= 12 {
		return fmt.Sprintf("%02d/%04d", d.Month, d.Year)
	}
	return fmt.Sprintf("%04d", d.Year)
}

func unmappedFields(payload *types.ExternalPayload) map[string]any {
	out := map[string]any{}
	if p := payload.Profile; p != nil {
		if p.ID != "" {
			out["profileId"] = p.ID
		}
		if p.Industry != "" {
			out["industry"] = p.Industry
		}
		if len(p.Websites) > 1 {
			out["additionalWebsites"] = p.Websites[1:]
		}
	}
	if n := len(payload.Recommendations); n > 0 {
		out["recommendationCount"] = n
	}
	if n := len(payload.Posts); n > 0 {
		out["postCount"] = n
	}
	var activities []string
	for _, s := range payload.Education {
		if a := strings.TrimSpace(s.Activities); a != "" {
			activities = append(activities, a)
		}
	}
	if len(activities) > 0 {
		out["educationActivities"] = activities
	}
	return out
}

func nonEmpty(values ...string) []string {
	out := values[:0:0]
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

func nonNil[T any](in []T) []T {
	if in == nil {
		return []T{}
	}
	return in
}
