package canvas

import "image"

// ScaleToFit returns the largest size with the source aspect ratio that fits
// inside maxW×maxH: scale = min(maxW/srcW, maxH/srcH), each side floored.
// The limiting side always equals its bound. Upscaling is allowed.
func ScaleToFit(srcW, srcH, maxW, maxH int) (int, int) {
	if srcW <= 0 || srcH <= 0 || maxW <= 0 || maxH <= 0 {
		return 0, 0
	}

	sw, sh := int64(srcW), int64(srcH)
	mw, mh := int64(maxW), int64(maxH)

	var w, h int64
	if sw*mh >= sh*mw {
		w = mw
		h = sh * mw / sw
	} else {
		h = mh
		w = sw * mh / sh
	}
	return max(int(w), 1), max(int(h), 1)
}

// FitImage resizes img to the ScaleToFit size for maxW×maxH.
func FitImage(img image.Image, maxW, maxH int) *image.NRGBA {
	b := img.Bounds()
	w, h := ScaleToFit(b.Dx(), b.Dy(), maxW, maxH)
	return Resize(img, w, h)
}

// CenterOffset is the floor-divided leading margin that centers inner in outer.
// An odd remainder leaves the extra pixel on the trailing side.
func CenterOffset(outer, inner int) int {
	d := outer - inner
	if d < 0 {
		return -((-d + 1) / 2)
	}
	return d / 2
}
