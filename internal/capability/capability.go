package capability

import (
	"os/exec"
)

// lookPath is the exec.LookPath implementation used by Detect.
// Tests may replace it to simulate a missing tesseract binary.
var lookPath = exec.LookPath

// Set holds the optional capabilities of this process. It is resolved
// once at startup and treated as immutable for the process lifetime.
type Set struct {
	OCR               bool
	LanguageDetection bool
	IPTC              bool
}

// Detect probes each optional capability.
func Detect() Set {
	return Set{
		OCR: tesseractAvailable(),
		// Language detection and IPTC parsing are compiled in, so they
		// are present whenever the binary runs.
		LanguageDetection: true,
		IPTC:              true,
	}
}

// tesseractAvailable returns true when the "tesseract" binary is on PATH.
func tesseractAvailable() bool {
	_, err := lookPath("tesseract")
	return err == nil
}
