package ingestion

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	spaceRunRe = regexp.MustCompile(`[ \t]+`)
	blankRunRe = regexp.MustCompile(`\n{3,}`)

	lineBreaks = strings.NewReplacer("\r\n", "\n", "\r", "\n")

	bulletMarkers = []string{"- ", "* ", "• ", "· ", "◦ ", "▪ "}
)

// CleanText normalizes decoded text before extraction.
//
// Line breaks become LF, exotic spaces become plain spaces, and control and
// zero-width characters are dropped. Runs of spaces inside a line collapse to
// one. Indentation survives only in front of bullet markers so nested lists
// keep their shape. At most one blank line separates paragraphs.
func CleanText(content string) string {
	content = lineBreaks.Replace(content)
	content = strings.Map(normalizeRune, content)

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = cleanLine(line)
	}

	content = blankRunRe.ReplaceAllString(strings.Join(lines, "\n"), "\n\n")
	return strings.TrimSpace(content)
}

func normalizeRune(r rune) rune {
	switch r {
	case '\n', '\t':
		return r
	case '\ufeff', '\u200b', '\u200c', '\u200d', '\u2060':
		return -1
	}
	if unicode.IsSpace(r) {
		return ' '
	}
	if unicode.IsControl(r) {
		return -1
	}
	return r
}

func cleanLine(line string) string {
	body := strings.TrimLeft(line, " \t")
	body = strings.TrimRight(spaceRunRe.ReplaceAllString(body, " "), " ")
	if body == "" {
		return ""
	}

	indent := len(line) - len(strings.TrimLeft(line, " \t"))
	if indent > 0 && hasBulletMarker(body) {
		return strings.Repeat(" ", indent) + body
	}
	return body
}

func hasBulletMarker(line string) bool {
	for _, marker := range bulletMarkers {
		if strings.HasPrefix(line, marker) {
			return true
		}
	}
	return false
}
