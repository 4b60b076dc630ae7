//go:build govips && cgo

package canvas

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"sync"

	"github.com/davidbyttow/govips/v2/vips"
	"github.com/disintegration/imaging"
)

var (
	startupOnce sync.Once
	shutdownMu  sync.Mutex
	started     bool
)

func Startup() error {
	startupOnce.Do(func() {
		vips.Startup(&vips.Config{
			MaxCacheFiles: 0,
			MaxCacheMem:   64 * 1024 * 1024,
			MaxCacheSize:  16,
		})

		shutdownMu.Lock()
		started = true
		shutdownMu.Unlock()
	})
	return nil
}

func Shutdown() {
	shutdownMu.Lock()
	defer shutdownMu.Unlock()
	if !started {
		return
	}
	vips.Shutdown()
	started = false
}

// resample prefers libvips Lanczos3 and falls back to imaging when libvips
// errors or rounds to a different size.
func resample(img image.Image, width, height int) *image.NRGBA {
	out, err := resampleGovips(img, width, height)
	if err != nil {
		return imaging.Resize(img, width, height, imaging.Lanczos)
	}
	return out
}

func resampleGovips(img image.Image, width, height int) (*image.NRGBA, error) {
	shutdownMu.Lock()
	running := started
	shutdownMu.Unlock()
	if !running {
		return nil, errors.New("libvips not started")
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("stage source for libvips: %w", err)
	}

	ref, err := vips.NewImageFromBuffer(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("load into libvips: %w", err)
	}
	defer ref.Close()

	if ref.Width() <= 0 || ref.Height() <= 0 {
		return nil, fmt.Errorf("source image has invalid dimensions")
	}

	hscale := float64(width) / float64(ref.Width())
	vscale := float64(height) / float64(ref.Height())
	if err := ref.ResizeWithVScale(hscale, vscale, vips.KernelLanczos3); err != nil {
		return nil, fmt.Errorf("resize image: %w", err)
	}
	if ref.Width() != width || ref.Height() != height {
		return nil, fmt.Errorf("libvips resized to %dx%d, want %dx%d", ref.Width(), ref.Height(), width, height)
	}

	data, _, err := ref.ExportPng(vips.NewPngExportParams())
	if err != nil {
		return nil, fmt.Errorf("export png: %w", err)
	}

	decoded, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode libvips output: %w", err)
	}
	return imaging.Clone(decoded), nil
}
