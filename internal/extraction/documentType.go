package extraction

import (
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/akolanti/ClaimAPI/internal/domain/claimModel"
	"github.com/gabriel-vasile/mimetype"
)

const (
	MIMEPDF  = "application/pdf"
	MIMEDocx = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	MIMEDoc  = "application/msword"
	MIMEText = "text/plain"
)

type acceptedType struct {
	canonical string
	sniffed   []string
}

// extension -> canonical MIME type and the sniffed types that may back it.
// docx is a zip container and legacy doc an OLE container, older detectors stop there.
var acceptedTypes = map[string]acceptedType{
	".pdf":  {canonical: MIMEPDF, sniffed: []string{MIMEPDF}},
	".docx": {canonical: MIMEDocx, sniffed: []string{MIMEDocx, "application/zip"}},
	".doc":  {canonical: MIMEDoc, sniffed: []string{MIMEDoc, "application/x-ole-storage"}},
	".txt":  {canonical: MIMEText, sniffed: []string{MIMEText}},
}

// detections a .txt upload may come back with when the detector finds no stronger match
var textFallback = map[string]bool{
	MIMEText:                   true,
	"application/octet-stream": true,
}

func AllowedExtensions() []string {
	return []string{".pdf", ".doc", ".docx", ".txt"}
}

// Sniff checks the declared extension against the content and returns the canonical
// MIME type for the document.
func Sniff(filename string, data []byte) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	accepted, ok := acceptedTypes[ext]
	if !ok {
		return "", fmt.Errorf("%w: extension %q", claimModel.ErrUnsupportedType, ext)
	}
	if len(data) == 0 {
		return "", claimModel.ErrEmptyDocument
	}

	detected := baseMIME(mimetype.Detect(data).String())
	for _, candidate := range accepted.sniffed {
		if detected == candidate {
			return accepted.canonical, nil
		}
	}
	// plain text has no magic bytes, only unrecognised content that decodes as text passes
	if accepted.canonical == MIMEText && textFallback[detected] && utf8.Valid(data) {
		return MIMEText, nil
	}
	return "", fmt.Errorf("%w: %s content declared as %s", claimModel.ErrUnsupportedType, detected, ext)
}

func baseMIME(raw string) string {
	base, _, _ := strings.Cut(raw, ";")
	return strings.TrimSpace(strings.ToLower(base))
}

// Insufficient reports whether text is too short to be worth classifying,
// which is how a scanned document without a text layer shows up.
func Insufficient(text string, minLength int) bool {
	return utf8.RuneCountInString(strings.TrimSpace(text)) < minLength
}
