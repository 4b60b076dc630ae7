// Package canvas holds the raster primitives shared by the icon, promo and
// screenshot tools: decoding, resampling, compositing, fills, text and encoding.
package canvas

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"
)

var (
	ErrDecode            = errors.New("decode image")
	ErrEncode            = errors.New("encode image")
	ErrUnsupportedFormat = fmt.Errorf("%w: unsupported format", ErrEncode)
)

// Load decodes the image at path. JPEG EXIF orientation is applied.
func Load(path string) (image.Image, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrDecode, path, err)
	}
	return img, nil
}

func Decode(r io.Reader) (image.Image, error) {
	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return img, nil
}

// HasAlpha reports whether img is paletted or uses a color model that can
// carry transparency.
func HasAlpha(img image.Image) bool {
	switch img.(type) {
	case *image.Paletted:
		return true
	case *image.YCbCr, *image.Gray, *image.Gray16, *image.CMYK:
		return false
	}

	switch img.ColorModel() {
	case color.GrayModel, color.Gray16Model, color.YCbCrModel, color.CMYKModel:
		return false
	}
	return true
}

// New returns a w×h canvas filled with c.
func New(w, h int, c color.Color) *image.NRGBA {
	return imaging.New(w, h, c)
}

// Opaque copies img into a fresh NRGBA canvas with every alpha forced to 255.
func Opaque(img image.Image) *image.NRGBA {
	dst := imaging.Clone(img)
	for i := 3; i < len(dst.Pix); i += 4 {
		dst.Pix[i] = 0xff
	}
	return dst
}
