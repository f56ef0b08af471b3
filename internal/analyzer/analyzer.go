package analyzer

import (
	"bytes"
	"fmt"
	"image"
	"strings"

	"github.com/pixmeta/image-metadata-analyzer/internal/capability"
	"github.com/pixmeta/image-metadata-analyzer/internal/config"
	"github.com/pixmeta/image-metadata-analyzer/internal/exifmeta"
	"github.com/pixmeta/image-metadata-analyzer/internal/gps"
	"github.com/pixmeta/image-metadata-analyzer/internal/imagefile"
	"github.com/pixmeta/image-metadata-analyzer/internal/iptcmeta"
	"github.com/pixmeta/image-metadata-analyzer/internal/langdetect"
	"github.com/pixmeta/image-metadata-analyzer/internal/ocr"
	"github.com/pixmeta/image-metadata-analyzer/internal/report"
)

// textRecognizer is the OCR dependency.
type textRecognizer interface {
	Recognize(img image.Image) string
}

// languageDetector is the language identification dependency.
type languageDetector interface {
	Detect(text string) string
}

// Analyzer drives the extractors in sequence against one image at a
// time. The extractors never call each other; the analyzer fans out to
// each and folds the results into one record.
type Analyzer struct {
	caps       capability.Set
	cfg        *config.Config
	recognizer textRecognizer
	detector   languageDetector
}

// Result pairs the exportable record with presentation extras.
type Result struct {
	Record  *report.Record
	Summary *exifmeta.Summary
	Notices []string
}

// New creates an analyzer. The capability set is resolved once by the
// caller and held for the process lifetime.
func New(cfg *config.Config, caps capability.Set) *Analyzer {
	return &Analyzer{
		caps:       caps,
		cfg:        cfg,
		recognizer: ocr.New(caps.OCR, cfg.OCR.Language),
		detector:   langdetect.New(caps.LanguageDetection),
	}
}

// Analyze runs the full extraction sequence against one image file.
// Only an unreadable or unsupported input fails; every extractor
// degrades to an empty value on its own.
func (a *Analyzer) Analyze(path string) (*Result, error) {
	img, err := imagefile.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load image: %w", err)
	}
	return a.AnalyzeImage(img)
}

// AnalyzeImage runs the extraction sequence against an already loaded
// image.
func (a *Analyzer) AnalyzeImage(img *imagefile.Image) (*Result, error) {
	var notices []string

	exifData := exifmeta.Decode(img.Content)
	coord := gps.Resolve(exifData)

	iptcData := iptcmeta.Extract(img.Content, a.caps.IPTC)
	if !a.caps.IPTC {
		notices = append(notices, "IPTC support is unavailable; caption metadata was not extracted.")
	}

	ocrText := ""
	if a.cfg.OCR.Enabled {
		if a.caps.OCR {
			ocrText = a.recognizer.Recognize(img.NormalizeRGB())
			if strings.TrimSpace(ocrText) == "" {
				notices = append(notices, "No text detected by OCR.")
			}
		} else {
			notices = append(notices, "tesseract is not installed or not on PATH; OCR is disabled.")
		}
	}

	var langCode *string
	if a.cfg.Language.Enabled && strings.TrimSpace(ocrText) != "" {
		if a.caps.LanguageDetection {
			if code := a.detector.Detect(ocrText); code != "" {
				langCode = &code
			} else {
				notices = append(notices, "Could not detect language.")
			}
		} else {
			notices = append(notices, "language detection is unavailable; no language code was derived.")
		}
	}

	rec := &report.Record{
		FileName:    img.Name,
		Format:      img.Format,
		Size:        report.Dimensions{Width: img.Width, Height: img.Height},
		Mode:        img.Mode,
		Exif:        exifData,
		Iptc:        iptcData,
		OCRText:     ocrText,
		OCRLanguage: langCode,
	}
	if coord != nil {
		rec.GPS = &report.GPS{
			Latitude:  coord.Latitude,
			Longitude: coord.Longitude,
			MapsLink:  coord.MapsLink(),
		}
	}

	return &Result{
		Record:  rec,
		Summary: exifmeta.Summarize(bytes.NewReader(img.Content)),
		Notices: notices,
	}, nil
}
