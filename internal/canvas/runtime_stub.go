//go:build !govips || !cgo

package canvas

import (
	"image"

	"github.com/disintegration/imaging"
)

func Startup() error {
	return nil
}

func Shutdown() {}

func resample(img image.Image, width, height int) *image.NRGBA {
	return imaging.Resize(img, width, height, imaging.Lanczos)
}
