package report

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/pixmeta/image-metadata-analyzer/internal/exifmeta"
)

// Render writes the human-facing view of a record: key fields, the GPS
// line with its map link (or the no-GPS notice), raw dumps of both
// metadata maps, the OCR section, and any capability notices.
func Render(w io.Writer, rec *Record, summary *exifmeta.Summary, notices []string) {
	fmt.Fprintf(w, "%s\n", rec.FileName)
	fmt.Fprintf(w, "  Format: %s  Size: %dx%d  Mode: %s\n", rec.Format, rec.Size.Width, rec.Size.Height, rec.Mode)

	if summary != nil {
		camera := strings.TrimSpace(summary.Make + " " + summary.Model)
		if camera != "" {
			fmt.Fprintf(w, "  Camera: %s\n", camera)
		}
		if summary.Taken != nil {
			fmt.Fprintf(w, "  Captured: %s\n", summary.Taken.Format(time.DateTime))
		}
	}

	if rec.GPS != nil {
		fmt.Fprintf(w, "  GPS: %v, %v\n", rec.GPS.Latitude, rec.GPS.Longitude)
		fmt.Fprintf(w, "  Map: %s\n", rec.GPS.MapsLink)
	} else {
		fmt.Fprintf(w, "  No GPS info found.\n")
	}

	renderMap(w, "EXIF", toStringValues(rec.Exif))
	renderMap(w, "IPTC", rec.Iptc)

	if rec.OCRText != "" {
		fmt.Fprintf(w, "  OCR text:\n")
		for _, line := range strings.Split(rec.OCRText, "\n") {
			fmt.Fprintf(w, "    %s\n", line)
		}
		if rec.OCRLanguage != nil {
			fmt.Fprintf(w, "  Detected language: %s\n", *rec.OCRLanguage)
		}
	}

	for _, notice := range notices {
		fmt.Fprintf(w, "  Note: %s\n", notice)
	}
}

func renderMap(w io.Writer, label string, values map[string]string) {
	if len(values) == 0 {
		fmt.Fprintf(w, "  No %s records.\n", label)
		return
	}

	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	fmt.Fprintf(w, "  %s (%d tags):\n", label, len(keys))
	for _, k := range keys {
		fmt.Fprintf(w, "    %s: %s\n", k, values[k])
	}
}

// toStringValues formats raw tag values for terminal display, keeping
// long binary payloads short.
func toStringValues(values map[string]interface{}) map[string]string {
	out := make(map[string]string, len(values))
	for k, v := range values {
		switch val := v.(type) {
		case string:
			out[k] = val
		case []byte:
			if len(val) > 32 {
				out[k] = fmt.Sprintf("(%d bytes)", len(val))
			} else {
				out[k] = fmt.Sprintf("%v", val)
			}
		case map[string]interface{}:
			out[k] = fmt.Sprintf("(%d nested tags)", len(val))
		default:
			s := fmt.Sprintf("%v", val)
			if len(s) > 120 {
				s = s[:117] + "..."
			}
			out[k] = s
		}
	}
	return out
}
