package imagefile

import (
	"bytes"
	"image"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestSniffContentType(t *testing.T) {
	tests := []struct {
		name    string
		content []byte
		want    string
	}{
		{"jpeg", []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00}, "image/jpeg"},
		{"png", []byte("\x89PNG\r\n\x1a\nrest"), "image/png"},
		{"tiff little endian", []byte("II*\x00rest"), "image/tiff"},
		{"tiff big endian", []byte("MM\x00*rest"), "image/tiff"},
		{"webp", []byte("RIFF\x00\x00\x00\x00WEBPVP8 "), "image/webp"},
		{"text", []byte("hello world"), "application/octet-stream"},
		{"empty", nil, "application/octet-stream"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SniffContentType(tt.content))
		})
	}
}

func TestFromBytesPNG(t *testing.T) {
	content := encodePNG(t, image.NewGray(image.Rect(0, 0, 10, 6)))

	img, err := FromBytes("scan.png", content)
	require.NoError(t, err)

	assert.Equal(t, "scan.png", img.Name)
	assert.Equal(t, "image/png", img.ContentType)
	assert.Equal(t, "PNG", img.Format)
	assert.Equal(t, 10, img.Width)
	assert.Equal(t, 6, img.Height)
	assert.Equal(t, "L", img.Mode)
	assert.NotNil(t, img.Decoded())
}

func TestFromBytesJPEG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 4, 4)), nil))

	img, err := FromBytes("shot.jpg", buf.Bytes())
	require.NoError(t, err)

	assert.Equal(t, "JPEG", img.Format)
	assert.Equal(t, "RGB", img.Mode)
}

func TestFromBytesRejectsDisallowed(t *testing.T) {
	_, err := FromBytes("note.txt", []byte("plain text, not an image"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported file type")
}

func TestNormalizeRGB(t *testing.T) {
	content := encodePNG(t, image.NewGray(image.Rect(2, 3, 12, 9)))

	img, err := FromBytes("gray.png", content)
	require.NoError(t, err)

	rgb := img.NormalizeRGB()
	assert.Equal(t, image.Rect(0, 0, 10, 6), rgb.Bounds())
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pic.png")
	require.NoError(t, os.WriteFile(path, encodePNG(t, image.NewGray(image.Rect(0, 0, 3, 3))), 0644))

	img, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "pic.png", img.Name)

	_, err = Load(filepath.Join(dir, "missing.png"))
	assert.Error(t, err)
}
