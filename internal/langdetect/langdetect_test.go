package langdetect

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const englishText = "The weather forecast promises a clear sky and a warm afternoon across the whole region."

func TestDetectUnavailable(t *testing.T) {
	d := New(false)

	assert.False(t, d.Available())
	assert.Equal(t, "", d.Detect(englishText))
}

func TestDetectBlankText(t *testing.T) {
	d := New(true)

	assert.Equal(t, "", d.Detect(""))
	assert.Equal(t, "", d.Detect("   \t\n  "))
}

func TestDetectEnglish(t *testing.T) {
	d := New(true)

	assert.Equal(t, "en", d.Detect(englishText))
}

func TestDetectDeterministic(t *testing.T) {
	d := New(true)

	first := d.Detect(englishText)
	second := d.Detect(englishText)

	assert.NotEmpty(t, first)
	assert.Equal(t, first, second)
}
