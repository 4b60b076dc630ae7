package canvas

import (
	"image"
	"image/color"
	"image/color/palette"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	red   = color.NRGBA{R: 0xff, A: 0xff}
	blue  = color.NRGBA{B: 0xff, A: 0xff}
	white = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
)

func TestCompositeOverBlendsByAlpha(t *testing.T) {
	bg := New(10, 10, blue)

	fg := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	fg.SetNRGBA(0, 0, red)
	fg.SetNRGBA(1, 0, color.NRGBA{R: 0xff, A: 0x80})
	// (2,0) stays fully transparent.

	out := CompositeOver(bg, fg, 3, 3)
	require.Equal(t, bg.Bounds(), out.Bounds())

	assert.Equal(t, red, out.NRGBAAt(3, 3))
	assert.Equal(t, blue, out.NRGBAAt(5, 3))
	assert.Equal(t, blue, out.NRGBAAt(0, 0))

	half := out.NRGBAAt(4, 3)
	assert.InDelta(t, 0x80, int(half.R), 2)
	assert.InDelta(t, 0x7f, int(half.B), 2)
	assert.Equal(t, uint8(0xff), half.A)
}

func TestCompositeOverOpaqueOverwritesAndClips(t *testing.T) {
	bg := New(8, 8, blue)
	fg := New(6, 6, red)

	out := CompositeOver(bg, fg, 5, 5)
	assert.Equal(t, 8, out.Bounds().Dx())
	assert.Equal(t, red, out.NRGBAAt(7, 7))
	assert.Equal(t, blue, out.NRGBAAt(4, 4))
}

func TestFlattenRemovesTransparency(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 6, 6))
	src.SetNRGBA(1, 1, red)

	out := Flatten(src, white)
	assert.Equal(t, white, out.NRGBAAt(0, 0))
	assert.Equal(t, red, out.NRGBAAt(1, 1))
	for i := 3; i < len(out.Pix); i += 4 {
		require.Equal(t, uint8(0xff), out.Pix[i])
	}
}

func TestVerticalGradient(t *testing.T) {
	base := color.NRGBA{R: 100, G: 50, B: 10, A: 0xff}
	img := VerticalGradient(4, 100, base, 0.5)

	assert.Equal(t, base, img.NRGBAAt(0, 0))
	assert.Equal(t, base, img.NRGBAAt(3, 0))
	assert.Equal(t, color.NRGBA{R: 125, G: 62, B: 12, A: 0xff}, img.NRGBAAt(2, 50))
	assert.Equal(t, color.NRGBA{R: 149, G: 74, B: 14, A: 0xff}, img.NRGBAAt(0, 99))

	for y := 1; y < 100; y++ {
		require.GreaterOrEqual(t, img.NRGBAAt(0, y).R, img.NRGBAAt(0, y-1).R)
	}
}

func TestVerticalGradientClamps(t *testing.T) {
	bright := VerticalGradient(2, 10, color.NRGBA{R: 200, G: 200, B: 200, A: 0xff}, 5)
	assert.Equal(t, uint8(255), bright.NRGBAAt(0, 9).R)

	dark := VerticalGradient(2, 10, color.NRGBA{R: 200, G: 200, B: 200, A: 0xff}, -5)
	assert.Equal(t, uint8(0), dark.NRGBAAt(0, 9).R)
}

func TestFillRect(t *testing.T) {
	img := New(10, 10, white)
	FillRect(img, image.Rect(2, 2, 4, 3), red)

	assert.Equal(t, red, img.NRGBAAt(2, 2))
	assert.Equal(t, red, img.NRGBAAt(3, 2))
	assert.Equal(t, white, img.NRGBAAt(4, 2))
	assert.Equal(t, white, img.NRGBAAt(2, 3))
}

func TestHasAlpha(t *testing.T) {
	rect := image.Rect(0, 0, 2, 2)

	assert.True(t, HasAlpha(image.NewNRGBA(rect)))
	assert.True(t, HasAlpha(image.NewRGBA(rect)))
	assert.True(t, HasAlpha(image.NewPaletted(rect, palette.Plan9)))
	assert.False(t, HasAlpha(image.NewYCbCr(rect, image.YCbCrSubsampleRatio420)))
	assert.False(t, HasAlpha(image.NewGray(rect)))
}

func TestOpaque(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 3, 3))
	src.SetNRGBA(0, 0, color.NRGBA{R: 10, G: 20, B: 30, A: 0x40})

	out := Opaque(src)
	assert.Equal(t, color.NRGBA{R: 10, G: 20, B: 30, A: 0xff}, out.NRGBAAt(0, 0))
	assert.Equal(t, uint8(0x40), src.NRGBAAt(0, 0).A)
}

func TestResizeExactDimensions(t *testing.T) {
	src := New(512, 300, red)
	for _, size := range [][2]int{{16, 16}, {128, 128}, {1, 1}, {1000, 20}} {
		out := Resize(src, size[0], size[1])
		assert.Equal(t, size[0], out.Bounds().Dx())
		assert.Equal(t, size[1], out.Bounds().Dy())
	}
}
