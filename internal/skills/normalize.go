// Package skills provides skill-name normalization, leveling and case-insensitive dedup.
package skills

import (
	"strings"

	"github.com/jonathan/portfolio-builder/internal/types"
)

const (
	// DefaultLevel is assigned to skills found in free text, where no signal of depth exists.
	DefaultLevel = 5
	// DefaultCategory is assigned when the source carries no category.
	DefaultCategory = "Technical"
	// DefaultYears is assigned to skills found in free text.
	DefaultYears = 1

	MinLevel = 1
	MaxLevel = 10
)

// canonicalNames maps common skill name variants to canonical names
var canonicalNames = map[string]string{
	"golang":     "Go",
	"go lang":    "Go",
	"javascript": "JavaScript",
	"js":         "JavaScript",
	"typescript": "TypeScript",
	"ts":         "TypeScript",
	"k8s":        "Kubernetes",
	"kubernetes": "Kubernetes",
	"react.js":   "React",
	"reactjs":    "React",
	"vue.js":     "Vue",
	"vuejs":      "Vue",
	"node.js":    "Node.js",
	"nodejs":     "Node.js",
	"postgres":   "PostgreSQL",
	"postgresql": "PostgreSQL",
}

// CanonicalName normalizes a skill name to its canonical form
func CanonicalName(skillName string) string {
	normalized := strings.Join(strings.Fields(skillName), " ")
	if normalized == "" {
		return ""
	}

	lower := strings.ToLower(normalized)
	if canonical, ok := canonicalNames[lower]; ok {
		return canonical
	}

	// All-caps single words that aren't known acronyms: capitalize first letter only
	if normalized == strings.ToUpper(normalized) && normalized != lower && !strings.Contains(lower, " ") && len(normalized) > 4 {
		return strings.ToUpper(normalized[:1]) + strings.ToLower(normalized[1:])
	}

	// All lowercase single word: capitalize first letter
	if normalized == lower && !strings.Contains(normalized, " ") {
		return strings.ToUpper(normalized[:1]) + normalized[1:]
	}

	return normalized
}

// Key returns the uniqueness key for a skill name: trimmed, space-collapsed, lowercase.
func Key(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}

// LevelFromEndorsements converts an endorsement count into a 2..9 level.
// A listed skill never drops below 2.
func LevelFromEndorsements(count int) int {
	switch {
	case count >= 50:
		return 9
	case count >= 25:
		return 8
	case count >= 15:
		return 7
	case count >= 10:
		return 6
	case count >= 5:
		return 5
	case count >= 2:
		return 4
	case count >= 1:
		return 3
	default:
		return 2
	}
}

// ClampLevel keeps a level inside the 1..10 range.
func ClampLevel(level int) int {
	return max(MinLevel, min(MaxLevel, level))
}

// Dedupe removes case-insensitive duplicates, keeping the first record and
// raising its level to the highest seen. Skills with blank names are dropped.
func Dedupe(list []types.Skill) []types.Skill {
	if list == nil {
		return nil
	}
	out := make([]types.Skill, 0, len(list))
	seen := make(map[string]int, len(list))
	for _, s := range list {
		key := Key(s.Name)
		if key == "" {
			continue
		}
		if idx, ok := seen[key]; ok {
			out[idx].Level = max(out[idx].Level, s.Level)
			continue
		}
		seen[key] = len(out)
		out = append(out, s)
	}
	return out
}

// MergeUnique folds incoming into existing. On a name collision the existing
// record is kept with its level raised to max(existing, incoming); other
// incoming skills are appended in order. Neither input is modified.
func MergeUnique(existing, incoming []types.Skill) []types.Skill {
	out := make([]types.Skill, len(existing), len(existing)+len(incoming))
	copy(out, existing)

	index := make(map[string]int, len(out))
	for i, s := range out {
		if _, ok := index[Key(s.Name)]; !ok {
			index[Key(s.Name)] = i
		}
	}
	for _, s := range incoming {
		key := Key(s.Name)
		if key == "" {
			continue
		}
		if idx, ok := index[key]; ok {
			out[idx].Level = max(out[idx].Level, s.Level)
			continue
		}
		index[key] = len(out)
		out = append(out, s)
	}
	return out
}
