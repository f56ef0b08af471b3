package exifmeta

import (
	"io"
	"time"

	"github.com/rwcarlsen/goexif/exif"
)

// Summary holds the camera fields shown in the report header.
type Summary struct {
	Make     string
	Model    string
	Software string
	Taken    *time.Time
}

// Summarize extracts the common camera fields from an image stream.
// Returns nil when the image carries no usable EXIF block.
func Summarize(r io.Reader) *Summary {
	x, err := exif.Decode(r)
	if err != nil {
		return nil
	}

	s := &Summary{}

	if dt, err := x.DateTime(); err == nil {
		s.Taken = &dt
	}

	s.Make = stringField(x, exif.Make)
	s.Model = stringField(x, exif.Model)
	s.Software = stringField(x, exif.Software)

	return s
}

func stringField(x *exif.Exif, name exif.FieldName) string {
	tag, err := x.Get(name)
	if err != nil {
		return ""
	}
	str, err := tag.StringVal()
	if err != nil {
		return ""
	}
	return str
}
