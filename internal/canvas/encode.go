package canvas

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"

	"github.com/disintegration/imaging"
	"github.com/dunamismax/storekit/internal/domain"
)

type Options struct {
	Quality  int
	Optimize bool
}

func OptionsFor(spec domain.OutputSpec) Options {
	return Options{Quality: spec.Quality, Optimize: spec.Optimize}
}

func Encode(w io.Writer, img image.Image, format domain.Format, opts Options) error {
	var err error
	switch format {
	case domain.FormatPNG:
		level := png.DefaultCompression
		if opts.Optimize {
			level = png.BestCompression
		}
		err = imaging.Encode(w, img, imaging.PNG, imaging.PNGCompressionLevel(level))
	case domain.FormatJPEG:
		quality := opts.Quality
		if quality <= 0 || quality > 100 {
			quality = domain.DefaultJPEGQuality
		}
		err = imaging.Encode(w, img, imaging.JPEG, imaging.JPEGQuality(quality))
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrEncode, format, err)
	}
	return nil
}

// Save encodes img and writes it to path, replacing any existing file.
// It returns the number of bytes written.
func Save(img image.Image, path string, format domain.Format, opts Options) (int, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, img, format, opts); err != nil {
		return 0, err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return 0, fmt.Errorf("%w: write %s: %v", ErrEncode, path, err)
	}
	return buf.Len(), nil
}
