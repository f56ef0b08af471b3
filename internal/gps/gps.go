package gps

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	exifcommon "github.com/dsoprea/go-exif/v3/common"

	"github.com/pixmeta/image-metadata-analyzer/internal/exifmeta"
)

// Coordinate is a resolved GPS position in signed decimal degrees,
// rounded to 7 decimal places.
type Coordinate struct {
	Latitude  float64
	Longitude float64
}

// MapsLink returns a Google Maps URL for the coordinate.
func (c Coordinate) MapsLink() string {
	return fmt.Sprintf("https://www.google.com/maps?q=%s,%s",
		formatDegrees(c.Latitude), formatDegrees(c.Longitude))
}

// Resolve converts the GPS sub-mapping of a decoded metadata map into a
// coordinate. Both the latitude and longitude entries must be present as
// degree/minute/second sequences; anything missing or malformed yields
// nil, never an error.
func Resolve(metadata map[string]interface{}) *Coordinate {
	ifd, ok := metadata[exifmeta.GPSKey].(map[string]interface{})
	if !ok {
		return nil
	}

	latVals, ok := triplet(ifd["GPSLatitude"])
	if !ok {
		return nil
	}
	lonVals, ok := triplet(ifd["GPSLongitude"])
	if !ok {
		return nil
	}

	lat := toFloat(latVals[0]) + toFloat(latVals[1])/60.0 + toFloat(latVals[2])/3600.0
	lon := toFloat(lonVals[0]) + toFloat(lonVals[1])/60.0 + toFloat(lonVals[2])/3600.0

	if strings.EqualFold(refString(ifd["GPSLatitudeRef"], "N"), "S") {
		lat = -lat
	}
	if strings.EqualFold(refString(ifd["GPSLongitudeRef"], "E"), "W") {
		lon = -lon
	}

	return &Coordinate{
		Latitude:  round7(lat),
		Longitude: round7(lon),
	}
}

// triplet normalizes a degree/minute/second sequence to three elements.
func triplet(v interface{}) ([]interface{}, bool) {
	switch seq := v.(type) {
	case []exifcommon.Rational:
		if len(seq) < 3 {
			return nil, false
		}
		return []interface{}{seq[0], seq[1], seq[2]}, true
	case []exifcommon.SignedRational:
		if len(seq) < 3 {
			return nil, false
		}
		return []interface{}{seq[0], seq[1], seq[2]}, true
	case []interface{}:
		if len(seq) < 3 {
			return nil, false
		}
		return seq[:3], true
	case []float64:
		if len(seq) < 3 {
			return nil, false
		}
		return []interface{}{seq[0], seq[1], seq[2]}, true
	default:
		return nil, false
	}
}

// toFloat converts a single rational value to a float. A zero
// denominator, or a value of an unsupported shape, converts to 0.0.
func toFloat(v interface{}) float64 {
	switch r := v.(type) {
	case exifcommon.Rational:
		if r.Denominator == 0 {
			return 0.0
		}
		return float64(r.Numerator) / float64(r.Denominator)
	case exifcommon.SignedRational:
		if r.Denominator == 0 {
			return 0.0
		}
		return float64(r.Numerator) / float64(r.Denominator)
	case [2]float64:
		if r[1] == 0 {
			return 0.0
		}
		return r[0] / r[1]
	case float64:
		return r
	case float32:
		return float64(r)
	case int:
		return float64(r)
	case int64:
		return float64(r)
	case uint32:
		return float64(r)
	default:
		return 0.0
	}
}

// refString decodes a reference indicator entry, falling back to the
// axis default when the entry is missing or unusable.
func refString(v interface{}, def string) string {
	switch ref := v.(type) {
	case string:
		if ref == "" {
			return def
		}
		return ref
	case []byte:
		if len(ref) == 0 {
			return def
		}
		return strings.ToValidUTF8(string(ref), "")
	default:
		return def
	}
}

func round7(v float64) float64 {
	return math.Round(v*1e7) / 1e7
}

func formatDegrees(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
