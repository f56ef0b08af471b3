package capability

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectWithTesseract(t *testing.T) {
	orig := lookPath
	defer func() { lookPath = orig }()

	lookPath = func(file string) (string, error) {
		return "/usr/bin/" + file, nil
	}

	caps := Detect()
	assert.True(t, caps.OCR)
	assert.True(t, caps.LanguageDetection)
	assert.True(t, caps.IPTC)
}

func TestDetectWithoutTesseract(t *testing.T) {
	orig := lookPath
	defer func() { lookPath = orig }()

	lookPath = func(file string) (string, error) {
		return "", errors.New("executable file not found in $PATH")
	}

	caps := Detect()
	assert.False(t, caps.OCR)
	assert.True(t, caps.LanguageDetection)
	assert.True(t, caps.IPTC)
}
