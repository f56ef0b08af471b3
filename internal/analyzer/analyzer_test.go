package analyzer

import (
	"bytes"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pixmeta/image-metadata-analyzer/internal/capability"
	"github.com/pixmeta/image-metadata-analyzer/internal/config"
	"github.com/pixmeta/image-metadata-analyzer/internal/imagefile"
)

func testImage(t *testing.T) *imagefile.Image {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewGray(image.Rect(0, 0, 16, 12))))

	img, err := imagefile.FromBytes("blank.png", buf.Bytes())
	require.NoError(t, err)
	return img
}

func allCaps() capability.Set {
	return capability.Set{OCR: true, LanguageDetection: true, IPTC: true}
}

func TestAnalyzeImagePlainPNG(t *testing.T) {
	cfg := config.New()
	cfg.OCR.Enabled = false

	a := New(cfg, allCaps())
	result, err := a.AnalyzeImage(testImage(t))
	require.NoError(t, err)

	rec := result.Record
	assert.Equal(t, "blank.png", rec.FileName)
	assert.Equal(t, "PNG", rec.Format)
	assert.Equal(t, 16, rec.Size.Width)
	assert.Equal(t, 12, rec.Size.Height)
	assert.Equal(t, "L", rec.Mode)
	assert.Empty(t, rec.Exif)
	assert.Empty(t, rec.Iptc)
	assert.Nil(t, rec.GPS)
	assert.Nil(t, result.Summary)
	assert.Empty(t, result.Notices)
}

func TestAnalyzeOCRDisabledByToggle(t *testing.T) {
	cfg := config.New()
	cfg.OCR.Enabled = false
	cfg.Language.Enabled = true

	// Capability available, toggle off: no OCR text, no language, no notice.
	a := New(cfg, allCaps())
	result, err := a.AnalyzeImage(testImage(t))
	require.NoError(t, err)

	assert.Equal(t, "", result.Record.OCRText)
	assert.Nil(t, result.Record.OCRLanguage)
	assert.Empty(t, result.Notices)
}

func TestAnalyzeLanguageCapabilityMissing(t *testing.T) {
	cfg := config.New()

	caps := allCaps()
	caps.LanguageDetection = false

	a := New(cfg, caps)
	a.recognizer = stubRecognizer{text: "some recognized text"}

	result, err := a.AnalyzeImage(testImage(t))
	require.NoError(t, err)

	assert.Nil(t, result.Record.OCRLanguage)
	require.Len(t, result.Notices, 1)
	assert.Contains(t, result.Notices[0], "language detection is unavailable")
}

type stubRecognizer struct {
	text string
}

func (s stubRecognizer) Recognize(img image.Image) string {
	return s.text
}

type stubDetector struct {
	code string
}

func (s stubDetector) Detect(text string) string {
	return s.code
}

func TestAnalyzeNoTextDetected(t *testing.T) {
	cfg := config.New()

	a := New(cfg, allCaps())
	a.recognizer = stubRecognizer{}

	result, err := a.AnalyzeImage(testImage(t))
	require.NoError(t, err)

	assert.Equal(t, "", result.Record.OCRText)
	assert.Nil(t, result.Record.OCRLanguage)
	require.Len(t, result.Notices, 1)
	assert.Equal(t, "No text detected by OCR.", result.Notices[0])
}

func TestAnalyzeLanguageUndetected(t *testing.T) {
	cfg := config.New()

	a := New(cfg, allCaps())
	a.recognizer = stubRecognizer{text: "zq zq zq"}
	a.detector = stubDetector{}

	result, err := a.AnalyzeImage(testImage(t))
	require.NoError(t, err)

	assert.Equal(t, "zq zq zq", result.Record.OCRText)
	assert.Nil(t, result.Record.OCRLanguage)
	require.Len(t, result.Notices, 1)
	assert.Equal(t, "Could not detect language.", result.Notices[0])
}

func TestAnalyzeLanguageDetected(t *testing.T) {
	cfg := config.New()

	a := New(cfg, allCaps())
	a.recognizer = stubRecognizer{text: "The weather is lovely today."}
	a.detector = stubDetector{code: "en"}

	result, err := a.AnalyzeImage(testImage(t))
	require.NoError(t, err)

	require.NotNil(t, result.Record.OCRLanguage)
	assert.Equal(t, "en", *result.Record.OCRLanguage)
	assert.Empty(t, result.Notices)
}

func TestAnalyzeOCRCapabilityMissing(t *testing.T) {
	cfg := config.New()

	caps := allCaps()
	caps.OCR = false

	a := New(cfg, caps)
	result, err := a.AnalyzeImage(testImage(t))
	require.NoError(t, err)

	assert.Equal(t, "", result.Record.OCRText)
	assert.Nil(t, result.Record.OCRLanguage)
	require.Len(t, result.Notices, 1)
	assert.Contains(t, result.Notices[0], "tesseract")
}

func TestAnalyzeIPTCCapabilityMissing(t *testing.T) {
	cfg := config.New()
	cfg.OCR.Enabled = false

	caps := allCaps()
	caps.IPTC = false

	a := New(cfg, caps)
	result, err := a.AnalyzeImage(testImage(t))
	require.NoError(t, err)

	assert.Empty(t, result.Record.Iptc)
	require.Len(t, result.Notices, 1)
	assert.Contains(t, result.Notices[0], "IPTC")
}

func TestAnalyzeUnreadableFile(t *testing.T) {
	cfg := config.New()
	a := New(cfg, allCaps())

	_, err := a.Analyze(filepath.Join(t.TempDir(), "missing.jpg"))
	assert.Error(t, err)
}

func TestAnalyzeUnsupportedFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "note.txt")
	require.NoError(t, os.WriteFile(path, []byte("just text"), 0644))

	cfg := config.New()
	a := New(cfg, allCaps())

	_, err := a.Analyze(path)
	assert.Error(t, err)
}
