package canvas

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"golang.org/x/image/draw"
)

func Resize(img image.Image, width, height int) *image.NRGBA {
	return resample(img, max(width, 1), max(height, 1))
}

// CompositeOver draws fg onto bg with its top-left corner at (x, y). Pixels
// are blended by fg's alpha, so an opaque fg overwrites. Anything falling
// outside bg is clipped.
func CompositeOver(bg *image.NRGBA, fg image.Image, x, y int) *image.NRGBA {
	return imaging.Overlay(bg, fg, image.Pt(x, y), 1.0)
}

// Flatten composites img over an opaque canvas of the same size filled with bg.
func Flatten(img image.Image, bg color.Color) *image.NRGBA {
	b := img.Bounds()
	return CompositeOver(New(b.Dx(), b.Dy(), bg), img, 0, 0)
}

func FillRect(dst *image.NRGBA, r image.Rectangle, c color.Color) {
	draw.Draw(dst, r, image.NewUniform(c), image.Point{}, draw.Src)
}

// VerticalGradient fills row y with base scaled by 1 + (y/h)*factor per
// channel, clamped to the channel range. Alpha is taken from base unchanged.
func VerticalGradient(w, h int, base color.NRGBA, factor float64) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		k := 1 + float64(y)/float64(h)*factor
		r, g, b := scaleChannel(base.R, k), scaleChannel(base.G, k), scaleChannel(base.B, k)

		row := img.Pix[y*img.Stride : y*img.Stride+w*4]
		for x := 0; x < len(row); x += 4 {
			row[x] = r
			row[x+1] = g
			row[x+2] = b
			row[x+3] = base.A
		}
	}
	return img
}

func scaleChannel(v uint8, k float64) uint8 {
	s := float64(v) * k
	switch {
	case s <= 0:
		return 0
	case s >= 255:
		return 255
	default:
		return uint8(s)
	}
}
