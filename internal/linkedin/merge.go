package linkedin

import (
	"github.com/jonathan/portfolio-builder/internal/ids"
	"github.com/jonathan/portfolio-builder/internal/skills"
	"github.com/jonathan/portfolio-builder/internal/types"
)

// Merge maps payload and reconciles it with existing according to flags.
// A nil payload or a payload without a profile section still contributes
// whatever positions, education and skills it carries.
func Merge(existing *types.ProfileRecord, payload *types.ExternalPayload, flags types.MergeFlags) *types.ProfileRecord {
	if payload == nil {
		return MergeMapped(existing, nil, "", flags)
	}
	mapped := mapPayload(payload)
	return MergeMapped(existing, mapped, mapped.SummaryText(), flags)
}

// MergeMapped reconciles an already-mapped record with existing. Neither
// input is modified; the result shares no memory with them.
//
// Projects and theme always come from existing. Certifications and languages
// come from mapped when it has any.
func MergeMapped(existing, mapped *types.ProfileRecord, enhancedSummary string, flags types.MergeFlags) *types.ProfileRecord {
	out := existing.Clone()
	if out == nil {
		out = &types.ProfileRecord{}
	}
	m := mapped.Clone()
	if m == nil {
		m = &types.ProfileRecord{}
	}

	out.PersonalInfo = mergePersonalInfo(out.PersonalInfo, m.PersonalInfo, flags.OverwritePersonalInfo)

	if flags.EnhanceSummary && enhancedSummary != "" {
		out.Summary = types.StringPtr(enhancedSummary)
	}

	out.Experience = concatOrReplace(out.Experience, m.Experience, flags.MergeExperience,
		func(e types.Experience) string { return e.ID },
		func(e *types.Experience, id string) { e.ID = id })

	out.Education = concatOrReplace(out.Education, m.Education, flags.MergeEducation,
		func(e types.Education) string { return e.ID },
		func(e *types.Education, id string) { e.ID = id })

	if flags.MergeSkills {
		out.Skills = rekeySkills(skills.MergeUnique(out.Skills, m.Skills))
	} else if len(m.Skills) > 0 {
		out.Skills = m.Skills
	}

	if len(m.Certifications) > 0 {
		out.Certifications = m.Certifications
	}
	if len(m.Languages) > 0 {
		out.Languages = m.Languages
	}

	return out
}

// concatOrReplace appends incoming after current when concat is set, renaming
// any incoming id that is already taken. Otherwise a non-empty incoming list
// replaces current.
func concatOrReplace[T any](current, incoming []T, concat bool, idOf func(T) string, setID func(*T, string)) []T {
	if !concat {
		if len(incoming) > 0 {
			return incoming
		}
		return current
	}
	if len(incoming) == 0 {
		return current
	}

	taken := make(map[string]struct{}, len(current)+len(incoming))
	for _, e := range current {
		taken[idOf(e)] = struct{}{}
	}
	out := make([]T, 0, len(current)+len(incoming))
	out = append(out, current...)
	for _, e := range incoming {
		setID(&e, ids.Rekey(idOf(e), taken))
		out = append(out, e)
	}
	return out
}

// rekeySkills renames later duplicates so every skill id stays unique.
func rekeySkills(list []types.Skill) []types.Skill {
	taken := make(map[string]struct{}, len(list))
	for i := range list {
		list[i].ID = ids.Rekey(list[i].ID, taken)
	}
	return list
}

// mergePersonalInfo merges field by field. With overwrite, a mapped value
// replaces the existing one; without it, mapped only fills fields existing
// never set. A field existing holds as present-but-blank counts as set.
func mergePersonalInfo(existing, mapped *types.PersonalInfo, overwrite bool) *types.PersonalInfo {
	if mapped == nil {
		return existing
	}
	if existing == nil {
		return mapped
	}

	pick := func(cur, in string, blank bool) string {
		if overwrite && in != "" {
			return in
		}
		if cur != "" || blank {
			return cur
		}
		return in
	}
	scalar := func(name, cur, in string) string {
		return pick(cur, in, existing.IsBlank(name))
	}

	out := &types.PersonalInfo{
		FullName:  scalar("fullName", existing.FullName, mapped.FullName),
		Title:     scalar("title", existing.Title, mapped.Title),
		Location:  scalar("location", existing.Location, mapped.Location),
		Email:     scalar("email", existing.Email, mapped.Email),
		Phone:     scalar("phone", existing.Phone, mapped.Phone),
		AvatarURL: scalar("avatarUrl", existing.AvatarURL, mapped.AvatarURL),
	}
	for _, name := range existing.BlankFields() {
		out.MarkBlank(name)
	}

	cur, in := existing.Links, mapped.Links
	switch {
	case in == nil:
		out.Links = cur
	case cur == nil:
		out.Links = in
	default:
		out.Links = &types.Links{
			LinkedIn: pick(cur.LinkedIn, in.LinkedIn, false),
			GitHub:   pick(cur.GitHub, in.GitHub, false),
			Website:  pick(cur.Website, in.Website, false),
			WhatsApp: pick(cur.WhatsApp, in.WhatsApp, false),
		}
	}
	return out
}
