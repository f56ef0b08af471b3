package report

import (
	"encoding/json"
	"io"
	"path/filepath"
	"strings"
)

// Record aggregates everything derived from one image. It is built once
// per image, never mutated afterward, and serialized verbatim to the
// export document.
type Record struct {
	FileName    string                 `json:"file_name"`
	Format      string                 `json:"format"`
	Size        Dimensions             `json:"size"`
	Mode        string                 `json:"mode"`
	Exif        map[string]interface{} `json:"exif"`
	Iptc        map[string]string      `json:"iptc"`
	GPS         *GPS                   `json:"gps,omitempty"`
	OCRText     string                 `json:"ocr_text"`
	OCRLanguage *string                `json:"ocr_language"`
}

// Dimensions holds the pixel size of the image
type Dimensions struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// GPS holds the resolved coordinate and its derived map link
type GPS struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	MapsLink  string  `json:"maps_link"`
}

// Encode writes the record as UTF-8 JSON with two-space indentation.
// HTML escaping is off so non-ASCII metadata survives unescaped.
func (r *Record) Encode(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// OutputName derives the export file name from the image's base name:
// the last extension is stripped and "_metadata.json" appended.
func OutputName(fileName string) string {
	base := filepath.Base(fileName)
	return strings.TrimSuffix(base, filepath.Ext(base)) + "_metadata.json"
}
