package types

// ExternalPayload is the professional-network export handed over by the host
// application after its own OAuth and HTTP exchange.
type ExternalPayload struct {
	Profile         *ExternalProfile   `json:"profile,omitempty"`
	Positions       []ExternalPosition `json:"positions,omitempty"`
	Education       []ExternalSchool   `json:"education,omitempty"`
	Skills          []ExternalSkill    `json:"skills,omitempty"`
	Recommendations []Recommendation   `json:"recommendations,omitempty"`
	Posts           []Post             `json:"posts,omitempty"`
}

// ExternalProfile is the member's core profile. Localized fields are keyed by
// locale (e.g. "en_US"); the flat localized* fields are the network's
// pre-resolved values and act as a fallback.
type ExternalProfile struct {
	ID                 string          `json:"id,omitempty"`
	FirstName          *LocalizedField `json:"firstName,omitempty"`
	LastName           *LocalizedField `json:"lastName,omitempty"`
	Headline           *LocalizedField `json:"headline,omitempty"`
	Summary            *LocalizedField `json:"summary,omitempty"`
	LocalizedFirstName string          `json:"localizedFirstName,omitempty"`
	LocalizedLastName  string          `json:"localizedLastName,omitempty"`
	LocalizedHeadline  string          `json:"localizedHeadline,omitempty"`
	LocalizedSummary   string          `json:"localizedSummary,omitempty"`
	Location           string          `json:"location,omitempty"`
	Industry           string          `json:"industry,omitempty"`
	ProfilePicture     string          `json:"profilePicture,omitempty"`
	VanityName         string          `json:"vanityName,omitempty"`
	Email              string          `json:"emailAddress,omitempty"`
	Phone              string          `json:"phoneNumber,omitempty"`
	Websites           []string        `json:"websites,omitempty"`
}

// LocalizedField maps locale keys to values, with the member's preferred locale.
type LocalizedField struct {
	Localized       map[string]string `json:"localized,omitempty"`
	PreferredLocale *Locale           `json:"preferredLocale,omitempty"`
}

// Locale identifies a language/country pair.
type Locale struct {
	Country  string `json:"country,omitempty"`
	Language string `json:"language,omitempty"`
}

// Key returns the "language_COUNTRY" map key for the locale, or "" when malformed.
func (l *Locale) Key() string {
	if l == nil || l.Language == "" {
		return ""
	}
	if l.Country == "" {
		return l.Language
	}
	return l.Language + "_" + l.Country
}

// YearMonth is a partial date; Month is 0 when unknown.
type YearMonth struct {
	Year  int `json:"year,omitempty"`
	Month int `json:"month,omitempty"`
}

// ExternalPosition is a job held on the external profile.
type ExternalPosition struct {
	Title       string     `json:"title,omitempty"`
	CompanyName string     `json:"companyName,omitempty"`
	Description string     `json:"description,omitempty"`
	Location    string     `json:"location,omitempty"`
	StartDate   *YearMonth `json:"startDate,omitempty"`
	EndDate     *YearMonth `json:"endDate,omitempty"`
	IsCurrent   bool       `json:"isCurrent,omitempty"`
}

// ExternalSchool is an education entry on the external profile.
type ExternalSchool struct {
	SchoolName   string     `json:"schoolName,omitempty"`
	DegreeName   string     `json:"degreeName,omitempty"`
	FieldOfStudy string     `json:"fieldOfStudy,omitempty"`
	StartDate    *YearMonth `json:"startDate,omitempty"`
	EndDate      *YearMonth `json:"endDate,omitempty"`
	Activities   string     `json:"activities,omitempty"`
	Notes        string     `json:"notes,omitempty"`
	Grade        string     `json:"grade,omitempty"`
}

// ExternalSkill is a skill with its endorsement count.
type ExternalSkill struct {
	Name             string `json:"name"`
	EndorsementCount int    `json:"endorsementCount,omitempty"`
}

// Recommendation is a written recommendation received by the member.
type Recommendation struct {
	ID               string `json:"id,omitempty"`
	RecommenderName  string `json:"recommenderName,omitempty"`
	RecommenderTitle string `json:"recommenderTitle,omitempty"`
	Text             string `json:"text"`
	Relationship     string `json:"relationship,omitempty"`
	CreatedAt        string `json:"createdAt,omitempty"`
}

// Post is a piece of content published by the member.
type Post struct {
	ID        string `json:"id,omitempty"`
	Text      string `json:"text"`
	CreatedAt string `json:"createdAt,omitempty"`
	Likes     int    `json:"likes,omitempty"`
	Comments  int    `json:"comments,omitempty"`
	Shares    int    `json:"shares,omitempty"`
}
