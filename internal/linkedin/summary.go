package linkedin

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/portfolio-builder/internal/types"
)

const (
	maxStrengths      = 5
	shownStrengths    = 3
	maxExpertise      = 3
	maxSentenceLength = 150

	strengthsHeading = "Key Strengths:"
	expertiseHeading = "Areas of Expertise:"
	bullet           = "• "
)

// laudatoryKeywords are scanned in recommendation text, in this order.
var laudatoryKeywords = []string{
	"exceptional",
	"outstanding",
	"strategic",
	"results-driven",
	"innovative",
	"dedicated",
	"reliable",
	"talented",
	"collaborative",
	"mentor",
	"leader",
	"expert",
	"creative",
	"detail-oriented",
	"visionary",
}

// topicKeywords are scanned in post text, in this order, and shown by label.
var topicKeywords = []struct {
	Keyword string
	Label   string
}{
	{"machine learning", "Machine Learning"},
	{"artificial intelligence", "Artificial Intelligence"},
	{"data science", "Data Science"},
	{"devops", "DevOps"},
	{"cloud", "Cloud Computing"},
	{"kubernetes", "Kubernetes"},
	{"distributed systems", "Distributed Systems"},
	{"security", "Security"},
	{"open source", "Open Source"},
	{"leadership", "Leadership"},
	{"product management", "Product Management"},
	{"frontend", "Frontend Development"},
	{"backend", "Backend Development"},
	{"mobile", "Mobile Development"},
	{"startup", "Startups"},
}

var sentenceRe = regexp.MustCompile(`[^.!?]+[.!?]*`)

// EnhanceSummary appends a "Key Strengths" block drawn from recommendations
// and an "Areas of Expertise" block drawn from posts to base. A block is added
// only when it has at least one entry, so with nothing to add the result is
// base unchanged.
func EnhanceSummary(base string, recs []types.Recommendation, posts []types.Post) string {
	parts := []string{}
	if base != "" {
		parts = append(parts, base)
	}

	if strengths := KeyStrengths(recs); len(strengths) > 0 {
		parts = append(parts, bulletBlock(strengthsHeading, strengths[:min(shownStrengths, len(strengths))]))
	}
	if topics := ExpertiseAreas(posts); len(topics) > 0 {
		parts = append(parts, bulletBlock(expertiseHeading, topics))
	}

	return strings.Join(parts, "\n\n")
}

// KeyStrengths returns up to five recommendation sentences, one per laudatory
// keyword in keyword order. A sentence is used at most once.
func KeyStrengths(recs []types.Recommendation) []string {
	var sentences []string
	for _, r := range recs {
		for _, s := range sentenceRe.FindAllString(r.Text, -1) {
			if s = strings.Join(strings.Fields(s), " "); s != "" && utf8.RuneCountInString(s) < maxSentenceLength {
				sentences = append(sentences, s)
			}
		}
	}

	var out []string
	used := map[string]bool{}
	for _, kw := range laudatoryKeywords {
		for _, s := range sentences {
			if used[s] || !strings.Contains(strings.ToLower(s), kw) {
				continue
			}
			used[s] = true
			out = append(out, s)
			break
		}
		if len(out) == maxStrengths {
			break
		}
	}
	return out
}

// ExpertiseAreas returns the labels of up to three topics mentioned in posts.
func ExpertiseAreas(posts []types.Post) []string {
	var out []string
	for _, topic := range topicKeywords {
		for _, p := range posts {
			if strings.Contains(strings.ToLower(p.Text), topic.Keyword) {
				out = append(out, topic.Label)
				break
			}
		}
		if len(out) == maxExpertise {
			break
		}
	}
	return out
}

func bulletBlock(heading string, items []string) string {
	var b strings.Builder
	b.WriteString(heading)
	for _, item := range items {
		b.WriteString("\n")
		b.WriteString(bullet)
		b.WriteString(item)
	}
	return b.String()
}
