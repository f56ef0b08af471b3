package iptcmeta

import (
	"strings"
	"unicode/utf8"

	"github.com/dsoprea/go-iptc"
	jpegstructure "github.com/dsoprea/go-jpeg-image-structure/v2"

	"github.com/pixmeta/image-metadata-analyzer/internal/logger"
)

// Extract parses the IPTC block out of raw image bytes and returns a
// caption/keyword mapping. When available is false the mapping is empty
// unconditionally. IPTC IIM rides in the JPEG APP13 segment, so
// non-JPEG content also yields the empty mapping. Any failure at any
// stage degrades to an empty mapping rather than an error.
func Extract(content []byte, available bool) (data map[string]string) {
	data = make(map[string]string)
	if !available {
		return data
	}

	defer func() {
		if r := recover(); r != nil {
			logger.Debug("Recovered from IPTC parse panic: %v", r)
		}
	}()

	jmp := jpegstructure.NewJpegMediaParser()
	if !jmp.LooksLikeFormat(content) {
		return data
	}

	intfc, err := jmp.ParseBytes(content)
	if err != nil {
		logger.Debug("Could not parse JPEG segments: %v", err)
		return data
	}

	sl, ok := intfc.(*jpegstructure.SegmentList)
	if !ok {
		return data
	}

	tags, err := sl.Iptc()
	if err != nil {
		logger.Debug("No IPTC block found: %v", err)
		return data
	}

	for key, value := range iptc.GetSimpleDictionaryFromParsedTags(tags) {
		data[key] = printable(value)
	}

	return data
}

// printable drops invalid UTF-8 byte sequences instead of failing on them.
func printable(s string) string {
	if utf8.ValidString(s) {
		return s
	}
	return strings.ToValidUTF8(s, "")
}
