package extraction

import (
	"regexp"
	"strings"
)

// monthName matches full and abbreviated English month names only, so words
// like "Marketing" or "Junior" never read as dates.
const monthName = `(?:jan(?:uary)?|feb(?:ruary)?|mar(?:ch)?|apr(?:il)?|may|june?|july?|aug(?:ust)?|sep(?:t(?:ember)?)?|oct(?:ober)?|nov(?:ember)?|dec(?:ember)?)`

var (
	emailRe = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)

	// optional country code, then 3-3-4 digits with flexible separators; the
	// leading guard keeps it from starting inside a longer digit run
	phoneRe = regexp.MustCompile(`(?:^|[^\d+])((?:\+?\d{1,3}[ .-]?)?\(?\d{3}\)?[ .-]?\d{3}[ .-]?\d{4})\b`)

	// words that disqualify a line from being the candidate's name
	notANameRe = regexp.MustCompile(`(?i)\b(?:resume|résumé|cv)\b`)

	// entry boundary: month-name + year, M/D/YYYY, or YYYY-YYYY / YYYY to YYYY
	entryDateRe = regexp.MustCompile(`(?i)\b` + monthName + `\.?,?\s+\d{4}\b|\b\d{1,2}/\d{1,2}/\d{4}\b|\b\d{4}\s*(?:-|–|—|to)\s*\d{4}\b`)

	// individual date tokens used to pull start/end out of a boundary line
	dateTokenRe = regexp.MustCompile(`(?i)\b` + monthName + `\.?,?\s+\d{4}\b|\b\d{1,2}/\d{1,2}/\d{4}\b|\b\d{1,2}/\d{4}\b|\b(?:19|20)\d{2}\b|\b(?:present|current|now)\b`)

	ongoingRe = regexp.MustCompile(`(?i)^(?:present|current|now)$`)

	// leftover separators once dates are cut out of a title or company segment
	dateResidueRe = regexp.MustCompile(`(?i)(?:\s*(?:-|–|—|\bto\b|,|\(|\))\s*)+$|^(?:\s*(?:-|–|—|,|\(|\))\s*)+`)

	paragraphSplitRe = regexp.MustCompile(`\n\s*\n`)

	skillSplitRe = regexp.MustCompile(`[,;•·\-]`)

	linkedinRe = regexp.MustCompile(`(?i)(?:https?://)?(?:[a-z]{2,3}\.)?linkedin\.com/in/[A-Za-z0-9_%-]+/?`)
	githubRe   = regexp.MustCompile(`(?i)(?:https?://)?(?:www\.)?github\.com/[A-Za-z0-9_.-]+/?`)
	whatsappRe = regexp.MustCompile(`(?i)(?:https?://)?wa\.me/\+?\d{7,15}`)
	websiteRe  = regexp.MustCompile(`(?i)https?://[^\s,;|)>"']+`)
)

// findPhone returns the first phone-shaped token in text.
func findPhone(text string) string {
	if m := phoneRe.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}
