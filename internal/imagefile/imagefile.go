package imagefile

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// AllowedTypes is the upload allow-list, keyed by sniffed content type.
var AllowedTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/tiff": true,
	"image/webp": true,
}

// Image represents one loaded image file
type Image struct {
	Name        string
	Content     []byte
	ContentType string
	Format      string
	Width       int
	Height      int
	Mode        string

	decoded image.Image
}

// Load reads an image file, sniffs its content type against the
// allow-list and decodes it. This is the only per-image step whose
// failure is fatal to that image.
func Load(path string) (*Image, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	img, err := FromBytes(filepath.Base(path), content)
	if err != nil {
		return nil, err
	}
	return img, nil
}

// FromBytes builds an Image from raw uploaded bytes.
func FromBytes(name string, content []byte) (*Image, error) {
	contentType := SniffContentType(content)
	if !AllowedTypes[contentType] {
		return nil, fmt.Errorf("unsupported file type %q for %s", contentType, name)
	}

	decoded, format, err := image.Decode(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := decoded.Bounds()
	return &Image{
		Name:        name,
		Content:     content,
		ContentType: contentType,
		Format:      strings.ToUpper(format),
		Width:       bounds.Dx(),
		Height:      bounds.Dy(),
		Mode:        colorMode(decoded),
		decoded:     decoded,
	}, nil
}

// Decoded returns the decoded image
func (i *Image) Decoded() image.Image {
	return i.decoded
}

// NormalizeRGB returns a three-channel copy of the image for OCR.
func (i *Image) NormalizeRGB() *image.RGBA {
	bounds := i.decoded.Bounds()
	rgb := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(rgb, rgb.Bounds(), i.decoded, bounds.Min, draw.Src)
	return rgb
}

// SniffContentType determines the content type from magic bytes.
// Unknown content sniffs to application/octet-stream.
func SniffContentType(content []byte) string {
	switch {
	case bytes.HasPrefix(content, []byte{0xFF, 0xD8, 0xFF}):
		return "image/jpeg"
	case bytes.HasPrefix(content, []byte("\x89PNG\r\n\x1a\n")):
		return "image/png"
	case bytes.HasPrefix(content, []byte("II*\x00")), bytes.HasPrefix(content, []byte("MM\x00*")):
		return "image/tiff"
	case len(content) >= 12 && bytes.Equal(content[0:4], []byte("RIFF")) && bytes.Equal(content[8:12], []byte("WEBP")):
		return "image/webp"
	}
	return "application/octet-stream"
}

// colorMode maps the decoded color model to a short mode string
func colorMode(img image.Image) string {
	switch img.(type) {
	case *image.Gray, *image.Gray16:
		return "L"
	case *image.Paletted:
		return "P"
	case *image.CMYK:
		return "CMYK"
	case *image.RGBA, *image.RGBA64:
		return "RGBA"
	case *image.NRGBA, *image.NRGBA64:
		return "RGBA"
	default:
		return "RGB"
	}
}
