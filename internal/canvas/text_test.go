package canvas

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/gobold"
)

func TestFontsFallBackToEmbedded(t *testing.T) {
	dir := t.TempDir()
	garbage := filepath.Join(dir, "broken.ttf")
	require.NoError(t, os.WriteFile(garbage, []byte("not a font"), 0o644))

	fonts := NewFonts(map[FontStyle][]string{
		Regular: {filepath.Join(dir, "missing.ttf"), garbage},
	})

	assert.Equal(t, "embedded", fonts.Source(Regular))
	assert.Equal(t, "embedded", fonts.Source(Bold))

	face := fonts.Face(Bold, 24)
	require.NotNil(t, face)
	assert.Greater(t, MeasureText(face, "Storekit"), 0)
}

func TestFontsPreferFirstReadableCandidate(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "brand.ttf")
	require.NoError(t, os.WriteFile(path, gobold.TTF, 0o644))

	fonts := NewFonts(map[FontStyle][]string{
		Bold: {filepath.Join(dir, "missing.ttf"), path},
	})
	assert.Equal(t, path, fonts.Source(Bold))
}

func TestDrawTextMarksPixels(t *testing.T) {
	img := New(200, 60, white)
	face := NewFonts(map[FontStyle][]string{}).Face(Regular, 32)

	DrawText(img, 10, 10, "Hello", red, face)

	marked := 0
	for y := 0; y < 60; y++ {
		for x := 0; x < 200; x++ {
			if img.NRGBAAt(x, y) != white {
				marked++
			}
		}
	}
	assert.Greater(t, marked, 50)

	// The line box starts at y=10, so nothing above it is touched.
	for x := 0; x < 200; x++ {
		require.Equal(t, white, img.NRGBAAt(x, 5))
	}
}
