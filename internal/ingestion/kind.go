package ingestion

import (
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// InputKind is the detected format of an input file.
type InputKind string

const (
	KindText     InputKind = "text"
	KindMarkdown InputKind = "markdown"
	KindHTML     InputKind = "html"
	KindPDF      InputKind = "pdf"
	KindDOC      InputKind = "doc"
	KindDOCX     InputKind = "docx"
	KindRTF      InputKind = "rtf"
	KindImage    InputKind = "image"
	KindUnknown  InputKind = "unknown"
)

var extensionKinds = map[string]InputKind{
	".txt":      KindText,
	".text":     KindText,
	".md":       KindMarkdown,
	".markdown": KindMarkdown,
	".html":     KindHTML,
	".htm":      KindHTML,
	".pdf":      KindPDF,
	".doc":      KindDOC,
	".docx":     KindDOCX,
	".rtf":      KindRTF,
	".png":      KindImage,
	".jpg":      KindImage,
	".jpeg":     KindImage,
	".gif":      KindImage,
	".webp":     KindImage,
	".bmp":      KindImage,
	".tif":      KindImage,
	".tiff":     KindImage,
	".heic":     KindImage,
}

// Supported reports whether the kind can be decoded to text.
func (k InputKind) Supported() bool {
	switch k {
	case KindText, KindMarkdown, KindHTML, KindPDF:
		return true
	}
	return false
}

// DetectKind resolves the kind from the file extension, falling back to
// content sniffing when the extension is missing or unknown.
func DetectKind(filename string, content []byte) InputKind {
	if kind, ok := extensionKinds[strings.ToLower(filepath.Ext(filename))]; ok {
		return kind
	}
	return sniffKind(content)
}

func sniffKind(content []byte) InputKind {
	if len(content) == 0 {
		return KindText
	}

	mt := mimetype.Detect(content)
	switch {
	case mt.Is("application/pdf"):
		return KindPDF
	case mt.Is("text/html"):
		return KindHTML
	case mt.Is("text/rtf"), mt.Is("application/rtf"):
		return KindRTF
	case mt.Is("application/vnd.openxmlformats-officedocument.wordprocessingml.document"):
		return KindDOCX
	case mt.Is("application/msword"), mt.Is("application/x-ole-storage"):
		return KindDOC
	case strings.HasPrefix(mt.String(), "image/"):
		return KindImage
	case strings.HasPrefix(mt.String(), "text/"):
		return KindText
	}
	return KindUnknown
}
