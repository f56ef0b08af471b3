package exifmeta

import (
	"fmt"

	"github.com/dsoprea/go-exif/v3"
	exifcommon "github.com/dsoprea/go-exif/v3/common"

	"github.com/pixmeta/image-metadata-analyzer/internal/logger"
)

// gpsIfdPath identifies the GPS sub-IFD in the tag walk.
const gpsIfdPath = "IFD/GPSInfo"

// GPSKey is the key the GPS sub-mapping is nested under, mirroring the
// EXIF GPSInfo pointer tag.
const GPSKey = "GPSInfo"

// Decode extracts the embedded EXIF block from raw image bytes and
// returns a mapping keyed by tag name. Tags the registry cannot name are
// keyed by their stringified numeric id. Tags from the GPS IFD are
// collected into a sub-mapping under GPSKey. Absence of EXIF data, or
// any parse failure, yields an empty mapping rather than an error.
func Decode(content []byte) (metadata map[string]interface{}) {
	metadata = make(map[string]interface{})

	// The named return keeps the partially filled mapping intact when a
	// parse panic is recovered.
	defer func() {
		if r := recover(); r != nil {
			logger.Debug("Recovered from EXIF parse panic: %v", r)
		}
	}()

	rawExif, err := exif.SearchAndExtractExif(content)
	if err != nil {
		if err != exif.ErrNoExif {
			logger.Debug("Could not extract EXIF block: %v", err)
		}
		return metadata
	}

	im, err := exifcommon.NewIfdMappingWithStandard()
	if err != nil {
		logger.Debug("Could not create IFD mapping: %v", err)
		return metadata
	}

	ti := exif.NewTagIndex()

	_, index, err := exif.Collect(im, ti, rawExif)
	if err != nil {
		logger.Debug("Could not collect EXIF tags: %v", err)
		return metadata
	}

	gpsData := make(map[string]interface{})

	cb := func(ifd *exif.Ifd, ite *exif.IfdTagEntry) error {
		tagName := ite.TagName()
		if tagName == "" {
			tagName = fmt.Sprintf("0x%04x", ite.TagId())
		}

		value, err := ite.Value()
		if err != nil {
			logger.Debug("Could not read value for tag %s: %v", tagName, err)
			return nil
		}

		if ifd.IfdIdentity().UnindexedString() == gpsIfdPath {
			gpsData[tagName] = value
		} else {
			metadata[tagName] = value
		}
		return nil
	}

	if err := index.RootIfd.EnumerateTagsRecursively(cb); err != nil {
		logger.Debug("EXIF tag walk stopped early: %v", err)
	}

	if len(gpsData) > 0 {
		metadata[GPSKey] = gpsData
	}

	return metadata
}
