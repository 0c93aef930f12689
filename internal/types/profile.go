// Package types provides type definitions for structured data used throughout the portfolio-builder system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// ProfileRecord is the canonical profile schema. Every field is optional: a nil
// pointer or nil slice means "not extracted", which merge logic treats
// differently from a present-but-blank value.
type ProfileRecord struct {
	PersonalInfo   *PersonalInfo   `json:"personalInfo,omitempty"`
	Summary        *string         `json:"summary,omitempty"`
	Experience     []Experience    `json:"experience,omitempty" validate:"dive"`
	Education      []Education     `json:"education,omitempty" validate:"dive"`
	Skills         []Skill         `json:"skills,omitempty" validate:"dive"`
	Certifications []Certification `json:"certifications,omitempty" validate:"dive"`
	Languages      []Language      `json:"languages,omitempty" validate:"dive"`
	Projects       []Project       `json:"projects,omitempty" validate:"dive"`
	Theme          *string         `json:"theme,omitempty"`
}

// PersonalInfo holds contact details. Email and phone are checked by pattern only.
type PersonalInfo struct {
	FullName  string `json:"fullName,omitempty"`
	Title     string `json:"title,omitempty"`
	Location  string `json:"location,omitempty"`
	Email     string `json:"email,omitempty" validate:"omitempty,email"`
	Phone     string `json:"phone,omitempty" validate:"omitempty,phone"`
	Links     *Links `json:"links,omitempty"`
	AvatarURL string `json:"avatarUrl,omitempty" validate:"omitempty,url"`

	// scalars decoded as "", kept apart from ones never set
	blank map[string]bool
}

// Links holds at most one link per network.
type Links struct {
	LinkedIn string `json:"linkedin,omitempty" validate:"omitempty,url"`
	GitHub   string `json:"github,omitempty" validate:"omitempty,url"`
	Website  string `json:"website,omitempty" validate:"omitempty,url"`
	WhatsApp string `json:"whatsapp,omitempty"`
}

// Experience is a single job entry. Current entries carry no end date.
type Experience struct {
	ID           string   `json:"id" validate:"required"`
	Title        string   `json:"title,omitempty"`
	Company      string   `json:"company,omitempty"`
	Location     string   `json:"location,omitempty"`
	StartDate    string   `json:"startDate,omitempty"`
	EndDate      string   `json:"endDate,omitempty"`
	Current      bool     `json:"current"`
	Description  string   `json:"description,omitempty"`
	Achievements []string `json:"achievements,omitempty"`
	Skills       []string `json:"skills,omitempty"`
}

// Education is a single education entry.
type Education struct {
	ID           string   `json:"id" validate:"required"`
	Institution  string   `json:"institution,omitempty"`
	Degree       string   `json:"degree,omitempty"`
	Field        string   `json:"field,omitempty"`
	StartDate    string   `json:"startDate,omitempty"`
	EndDate      string   `json:"endDate,omitempty"`
	Description  string   `json:"description,omitempty"`
	GPA          string   `json:"gpa,omitempty"`
	Achievements []string `json:"achievements,omitempty"`
}

// Skill is a named competence with an ordinal level from 1 to 10.
type Skill struct {
	ID                string `json:"id" validate:"required"`
	Name              string `json:"name" validate:"required"`
	Level             int    `json:"level" validate:"min=1,max=10"`
	Category          string `json:"category,omitempty"`
	YearsOfExperience int    `json:"yearsOfExperience" validate:"min=0"`
	Certified         bool   `json:"certified"`
}

// Certification is passed through untouched by extraction.
type Certification struct {
	ID     string `json:"id" validate:"required"`
	Name   string `json:"name" validate:"required"`
	Issuer string `json:"issuer,omitempty"`
	Date   string `json:"date,omitempty"`
	URL    string `json:"url,omitempty" validate:"omitempty,url"`
}

// Language is a spoken language with a free-form proficiency.
type Language struct {
	ID          string `json:"id" validate:"required"`
	Name        string `json:"name" validate:"required"`
	Proficiency string `json:"proficiency,omitempty"`
}

// Project is a portfolio project.
type Project struct {
	ID           string   `json:"id" validate:"required"`
	Name         string   `json:"name" validate:"required"`
	Description  string   `json:"description,omitempty"`
	URL          string   `json:"url,omitempty" validate:"omitempty,url"`
	Technologies []string `json:"technologies,omitempty"`
}

// MergeFlags selects how an external payload is reconciled with an existing record.
type MergeFlags struct {
	OverwritePersonalInfo bool `json:"overwritePersonalInfo" yaml:"overwrite_personal_info"`
	MergeExperience       bool `json:"mergeExperience" yaml:"merge_experience"`
	MergeEducation        bool `json:"mergeEducation" yaml:"merge_education"`
	MergeSkills           bool `json:"mergeSkills" yaml:"merge_skills"`
	EnhanceSummary        bool `json:"enhanceSummary" yaml:"enhance_summary"`
}

// StringPtr returns a pointer to s.
func StringPtr(s string) *string {
	return &s
}

// SummaryText returns the summary or "" when it was not extracted.
func (p *ProfileRecord) SummaryText() string {
	if p == nil || p.Summary == nil {
		return ""
	}
	return *p.Summary
}

// IsEmpty reports whether nothing at all was extracted.
func (p *ProfileRecord) IsEmpty() bool {
	if p == nil {
		return true
	}
	return (p.PersonalInfo == nil || p.PersonalInfo.IsEmpty()) &&
		p.Summary == nil &&
		len(p.Experience) == 0 &&
		len(p.Education) == 0 &&
		len(p.Skills) == 0 &&
		len(p.Certifications) == 0 &&
		len(p.Languages) == 0 &&
		len(p.Projects) == 0 &&
		p.Theme == nil
}

// IsEmpty reports whether no personal field is set.
func (pi *PersonalInfo) IsEmpty() bool {
	if pi == nil {
		return true
	}
	return pi.FullName == "" && pi.Title == "" && pi.Location == "" &&
		pi.Email == "" && pi.Phone == "" && pi.AvatarURL == "" && pi.Links.IsEmpty()
}

// IsEmpty reports whether no link is set.
func (l *Links) IsEmpty() bool {
	if l == nil {
		return true
	}
	return l.LinkedIn == "" && l.GitHub == "" && l.Website == "" && l.WhatsApp == ""
}

// Clone returns a deep copy of the record.
func (p *ProfileRecord) Clone() *ProfileRecord {
	if p == nil {
		return nil
	}
	out := &ProfileRecord{
		PersonalInfo:   p.PersonalInfo.Clone(),
		Summary:        clonePtr(p.Summary),
		Theme:          clonePtr(p.Theme),
		Skills:         cloneSlice(p.Skills),
		Certifications: cloneSlice(p.Certifications),
		Languages:      cloneSlice(p.Languages),
	}
	if p.Experience != nil {
		out.Experience = make([]Experience, len(p.Experience))
		for i, e := range p.Experience {
			e.Achievements = cloneSlice(e.Achievements)
			e.Skills = cloneSlice(e.Skills)
			out.Experience[i] = e
		}
	}
	if p.Education != nil {
		out.Education = make([]Education, len(p.Education))
		for i, e := range p.Education {
			e.Achievements = cloneSlice(e.Achievements)
			out.Education[i] = e
		}
	}
	if p.Projects != nil {
		out.Projects = make([]Project, len(p.Projects))
		for i, pr := range p.Projects {
			pr.Technologies = cloneSlice(pr.Technologies)
			out.Projects[i] = pr
		}
	}
	return out
}

// Clone returns a deep copy of the personal info.
func (pi *PersonalInfo) Clone() *PersonalInfo {
	if pi == nil {
		return nil
	}
	out := *pi
	if pi.Links != nil {
		links := *pi.Links
		out.Links = &links
	}
	if pi.blank != nil {
		out.blank = make(map[string]bool, len(pi.blank))
		for k, v := range pi.blank {
			out.blank[k] = v
		}
	}
	return &out
}

func clonePtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func cloneSlice[T any](in []T) []T {
	if in == nil {
		return nil
	}
	out := make([]T, len(in))
	copy(out, in)
	return out
}

var (
	validateOnce sync.Once
	validate     *validator.Validate

	phoneDigitsRe = regexp.MustCompile(`^\+?[0-9]{7,15}$`)
	phoneStripper = strings.NewReplacer(" ", "", "-", "", ".", "", "(", "", ")", "")
)

// Validator returns the shared validator with the profile-specific rules registered.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
		// report fields by their JSON names
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			return name
		})
		_ = validate.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
			return IsPhoneLike(fl.Field().String())
		})
	})
	return validate
}

// IsPhoneLike reports whether s has the shape of a phone number once separators are removed.
func IsPhoneLike(s string) bool {
	return phoneDigitsRe.MatchString(phoneStripper.Replace(strings.TrimSpace(s)))
}

// Validate checks field patterns and ranges across the whole record,
// including nested personal info and links.
func (p *ProfileRecord) Validate() error {
	return Validator().Struct(p)
}
