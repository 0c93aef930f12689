package ingestion

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/ledongthuc/pdf"

	"github.com/jonathan/portfolio-builder/internal/logger"
)

// MaxInputBytes caps the size of a single decoded file.
const MaxInputBytes = 10 << 20

const linksHeading = "Contact Links"

// blockSelectors are HTML elements whose text ends a line.
const blockSelectors = "p, div, li, h1, h2, h3, h4, h5, h6, tr, section, article, header, footer, address, blockquote, pre, dt, dd"

// DecodeFile reads path and decodes it with Decode.
func DecodeFile(path string) (string, *Metadata, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil, &ReadError{Message: "file not found: " + path, Cause: err}
		}
		return "", nil, &ReadError{Message: "failed to stat file: " + path, Cause: err}
	}
	if info.IsDir() {
		return "", nil, &ReadError{Message: path + " is a directory"}
	}
	if info.Size() > MaxInputBytes {
		return "", nil, &ReadError{Message: fmt.Sprintf("%s exceeds %d bytes", path, MaxInputBytes)}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", nil, &ReadError{Message: "failed to read file: " + path, Cause: err}
	}
	return Decode(filepath.Base(path), data)
}

// Decode turns raw file bytes into cleaned UTF-8 text. The kind is resolved
// from name and content; unsupported kinds yield *UnsupportedInputError and
// inputs with no text yield *EmptyInputError.
func Decode(name string, data []byte) (string, *Metadata, error) {
	kind := DetectKind(name, data)

	var (
		text string
		err  error
	)
	switch kind {
	case KindText, KindMarkdown:
		text, err = decodePlain(name, kind, data)
	case KindHTML:
		text, err = decodeHTML(data)
	case KindPDF:
		text, err = decodePDF(data)
	default:
		return "", nil, &UnsupportedInputError{Filename: name, Kind: kind}
	}
	if err != nil {
		return "", nil, err
	}

	text = CleanText(text)
	if text == "" {
		return "", nil, &EmptyInputError{Filename: name}
	}

	metadata := NewMetadata(text, name, kind, len(data))
	logger.Debug().
		Str("file", name).
		Str("kind", string(kind)).
		Int("bytes", len(data)).
		Int("chars", utf8.RuneCountInString(text)).
		Msg("decoded input")

	return text, metadata, nil
}

func decodePlain(name string, kind InputKind, data []byte) (string, error) {
	if !utf8.Valid(data) {
		return "", &UnsupportedInputError{Filename: name, Kind: kind, Message: "content is not valid UTF-8"}
	}
	return string(data), nil
}

// decodeHTML returns the visible text of the document, one block element per
// line. Link targets that do not already appear in the text are appended
// under a contact heading so link extraction can see them.
func decodeHTML(data []byte) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return "", &DecodeError{Message: "failed to parse HTML", Cause: err}
	}

	doc.Find("script, style, noscript, template, head").Remove()

	var hrefs []string
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href := strings.TrimSpace(s.AttrOr("href", ""))
		switch {
		case strings.HasPrefix(href, "mailto:"):
			hrefs = append(hrefs, strings.TrimPrefix(href, "mailto:"))
		case strings.HasPrefix(href, "http://"), strings.HasPrefix(href, "https://"):
			hrefs = append(hrefs, href)
		}
	})

	doc.Find("br").ReplaceWithHtml("\n")
	doc.Find(blockSelectors).Each(func(_ int, s *goquery.Selection) {
		s.AppendHtml("\n")
	})

	text := cleanWhitespace(doc.Text())

	var links []string
	seen := map[string]bool{}
	for _, href := range hrefs {
		if href == "" || seen[href] || strings.Contains(text, href) {
			continue
		}
		seen[href] = true
		links = append(links, href)
	}
	if len(links) > 0 {
		text += "\n\n" + linksHeading + "\n" + strings.Join(links, "\n")
	}
	return text, nil
}

// decodePDF extracts the plain-text layer. Scanned PDFs without one decode to
// nothing and surface as *EmptyInputError.
func decodePDF(data []byte) (text string, err error) {
	// the pdf reader panics on some malformed xref tables
	defer func() {
		if r := recover(); r != nil {
			text, err = "", &DecodeError{Message: fmt.Sprintf("malformed PDF: %v", r)}
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", &DecodeError{Message: "failed to open PDF", Cause: err}
	}
	rs, err := r.GetPlainText()
	if err != nil {
		return "", &DecodeError{Message: "failed to extract PDF text", Cause: err}
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, rs); err != nil {
		return "", &DecodeError{Message: "failed to read PDF text", Cause: err}
	}
	return strings.ToValidUTF8(buf.String(), ""), nil
}

// cleanWhitespace trims every line and drops blank ones.
func cleanWhitespace(text string) string {
	lines := strings.Split(text, "\n")
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		if line = strings.TrimSpace(line); line != "" {
			cleaned = append(cleaned, line)
		}
	}
	return strings.Join(cleaned, "\n")
}
