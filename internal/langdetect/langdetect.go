package langdetect

import (
	"strings"

	"github.com/pemistahl/lingua-go"
)

// Detector identifies the language of recognized text. The underlying
// lingua detector is deterministic: identical input yields the same
// code on every call.
type Detector struct {
	available bool
	detector  lingua.LanguageDetector
}

// New builds the detector once for the session. Pass available=false to
// disable detection entirely.
func New(available bool) *Detector {
	d := &Detector{available: available}
	if available {
		d.detector = lingua.NewLanguageDetectorBuilder().
			FromAllLanguages().
			Build()
	}
	return d
}

// Available reports whether language detection can run in this session.
func (d *Detector) Available() bool {
	return d.available
}

// Detect returns a lowercase ISO 639-1 code for the text, or "" when
// detection is disabled, the text is blank, or no language can be
// determined.
func (d *Detector) Detect(text string) string {
	if !d.available || strings.TrimSpace(text) == "" {
		return ""
	}

	language, ok := d.detector.DetectLanguageOf(text)
	if !ok {
		return ""
	}

	return strings.ToLower(language.IsoCode639_1().String())
}
