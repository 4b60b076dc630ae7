package domain

import (
	"errors"
	"fmt"
	"image/color"
	"strings"
)

type Format string

const (
	FormatPNG  Format = "png"
	FormatJPEG Format = "jpeg"
)

const (
	SmallPromoWidth    = 440
	SmallPromoHeight   = 280
	MarqueeWidth       = 1400
	MarqueeHeight      = 560
	ScreenshotWidth    = 1280
	ScreenshotHeight   = 800
	MaxStoreScreens    = 5
	DefaultJPEGQuality = 95
)

// IconSizes are the square edge lengths the store requires, in generation order.
var IconSizes = []int{16, 32, 48, 128}

// ScreenshotExtensions is the allow-list of screenshot inputs, lower-case with the dot.
var ScreenshotExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".webp": true,
	".bmp":  true,
}

// OutputSpec describes one produced file.
type OutputSpec struct {
	Name     string
	Width    int
	Height   int
	Format   Format
	Quality  int
	Optimize bool
}

func (s OutputSpec) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return errors.New("output name is required")
	}
	if s.Width <= 0 || s.Height <= 0 {
		return fmt.Errorf("output %s: invalid dimensions %dx%d", s.Name, s.Width, s.Height)
	}
	switch s.Format {
	case FormatPNG:
	case FormatJPEG:
		if s.Quality < 1 || s.Quality > 100 {
			return fmt.Errorf("output %s: jpeg quality %d out of range 1-100", s.Name, s.Quality)
		}
	default:
		return fmt.Errorf("output %s: unsupported format %q", s.Name, s.Format)
	}
	return nil
}

func IconPNG(size int) OutputSpec {
	return OutputSpec{
		Name:     fmt.Sprintf("icon%d.png", size),
		Width:    size,
		Height:   size,
		Format:   FormatPNG,
		Optimize: true,
	}
}

func IconJPEG(size int) OutputSpec {
	return OutputSpec{
		Name:    fmt.Sprintf("icon%d.jpeg", size),
		Width:   size,
		Height:  size,
		Format:  FormatJPEG,
		Quality: DefaultJPEGQuality,
	}
}

var (
	SmallPromo = OutputSpec{
		Name:   fmt.Sprintf("promo_small_%dx%d.png", SmallPromoWidth, SmallPromoHeight),
		Width:  SmallPromoWidth,
		Height: SmallPromoHeight,
		Format: FormatPNG,
	}
	MarqueePromo = OutputSpec{
		Name:   fmt.Sprintf("promo_marquee_%dx%d.png", MarqueeWidth, MarqueeHeight),
		Width:  MarqueeWidth,
		Height: MarqueeHeight,
		Format: FormatPNG,
	}
)

// Screenshot returns the spec for a normalized screenshot derived from source file stem.
func Screenshot(stem string) OutputSpec {
	return OutputSpec{
		Name:   stem + ".png",
		Width:  ScreenshotWidth,
		Height: ScreenshotHeight,
		Format: FormatPNG,
	}
}

// Palette holds the promo tile colors.
type Palette struct {
	Background color.NRGBA
	Accent     color.NRGBA
	Text       color.NRGBA
}

var (
	White = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}

	DefaultPalette = Palette{
		Background: color.NRGBA{R: 15, G: 23, B: 42, A: 0xff},
		Accent:     color.NRGBA{R: 56, G: 189, B: 248, A: 0xff},
		Text:       White,
	}
)
