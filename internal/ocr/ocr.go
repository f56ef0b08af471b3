package ocr

import (
	"image"
	"image/png"
	"os"
	"os/exec"
	"strings"

	"github.com/pixmeta/image-metadata-analyzer/internal/logger"
)

// runTesseract invokes the external tesseract binary over a temp image
// file. Tests may replace it.
var runTesseract = func(imagePath, language string) ([]byte, error) {
	args := []string{imagePath, "stdout"}
	if language != "" {
		args = append(args, "-l", language)
	}
	return exec.Command("tesseract", args...).Output()
}

// Recognizer shells out to tesseract for text recognition.
type Recognizer struct {
	available bool
	language  string
}

// New creates a recognizer. The availability flag comes from the
// capability probe at process start.
func New(available bool, language string) *Recognizer {
	return &Recognizer{
		available: available,
		language:  language,
	}
}

// Available reports whether OCR can run in this session.
func (r *Recognizer) Available() bool {
	return r.available
}

// Recognize runs OCR over a normalized image and returns the recognized
// text. There is no partial recovery: when OCR is unavailable or the
// invocation fails in any way, the result is the empty string.
func (r *Recognizer) Recognize(img image.Image) string {
	if !r.available || img == nil {
		return ""
	}

	tmp, err := os.CreateTemp("", "imgmeta-ocr-*.png")
	if err != nil {
		logger.Debug("Could not create temp file for OCR: %v", err)
		return ""
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if err := png.Encode(tmp, img); err != nil {
		tmp.Close()
		logger.Debug("Could not encode OCR input: %v", err)
		return ""
	}
	if err := tmp.Close(); err != nil {
		logger.Debug("Could not close OCR input file: %v", err)
		return ""
	}

	out, err := runTesseract(tmpPath, r.language)
	if err != nil {
		logger.Debug("tesseract failed: %v", err)
		return ""
	}

	return strings.TrimSpace(string(out))
}
