package canvas

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

type FontStyle int

const (
	Regular FontStyle = iota
	Bold
)

func (s FontStyle) String() string {
	if s == Bold {
		return "bold"
	}
	return "regular"
}

// DefaultFontPaths lists platform fonts in lookup order per style.
var DefaultFontPaths = map[FontStyle][]string{
	Regular: {
		"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
		"/usr/share/fonts/dejavu/DejaVuSans.ttf",
		"/usr/share/fonts/TTF/DejaVuSans.ttf",
		"/System/Library/Fonts/Helvetica.ttc",
		"/Library/Fonts/Arial.ttf",
		`C:\Windows\Fonts\arial.ttf`,
	},
	Bold: {
		"/usr/share/fonts/truetype/dejavu/DejaVuSans-Bold.ttf",
		"/usr/share/fonts/dejavu/DejaVuSans-Bold.ttf",
		"/usr/share/fonts/TTF/DejaVuSans-Bold.ttf",
		"/System/Library/Fonts/Supplemental/Arial Bold.ttf",
		"/Library/Fonts/Arial Bold.ttf",
		`C:\Windows\Fonts\arialbd.ttf`,
	},
}

const embeddedSource = "embedded"

// Fonts resolves a face for a style and size. Resolution never fails: the
// first parseable candidate path wins, then the embedded Go fonts, then
// basicfont.Face7x13.
type Fonts struct {
	paths   map[FontStyle][]string
	parsed  map[FontStyle]*opentype.Font
	sources map[FontStyle]string
}

func NewFonts(paths map[FontStyle][]string) *Fonts {
	if paths == nil {
		paths = DefaultFontPaths
	}
	return &Fonts{
		paths:   paths,
		parsed:  make(map[FontStyle]*opentype.Font),
		sources: make(map[FontStyle]string),
	}
}

func (f *Fonts) Face(style FontStyle, size float64) font.Face {
	parsed := f.resolve(style)
	if parsed == nil {
		return basicfont.Face7x13
	}

	face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return basicfont.Face7x13
	}
	return face
}

// Source names where the style's font came from: a file path, "embedded",
// or "" when only the bitmap fallback is left.
func (f *Fonts) Source(style FontStyle) string {
	f.resolve(style)
	return f.sources[style]
}

func (f *Fonts) resolve(style FontStyle) *opentype.Font {
	if parsed, ok := f.parsed[style]; ok {
		return parsed
	}

	for _, path := range f.paths[style] {
		parsed, err := parseFontFile(path)
		if err != nil {
			continue
		}
		f.parsed[style] = parsed
		f.sources[style] = path
		return parsed
	}

	embedded := goregular.TTF
	if style == Bold {
		embedded = gobold.TTF
	}
	parsed, err := opentype.Parse(embedded)
	if err != nil {
		parsed = nil
	} else {
		f.sources[style] = embeddedSource
	}
	f.parsed[style] = parsed
	return parsed
}

func parseFontFile(path string) (*opentype.Font, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	if strings.EqualFold(filepath.Ext(path), ".ttc") {
		collection, err := opentype.ParseCollection(data)
		if err != nil {
			return nil, err
		}
		return collection.Font(0)
	}
	return opentype.Parse(data)
}

// DrawText renders text with (x, y) as the top-left corner of the line box.
func DrawText(dst draw.Image, x, y int, text string, c color.Color, face font.Face) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P(x, y+face.Metrics().Ascent.Ceil()),
	}
	d.DrawString(text)
}

func MeasureText(face font.Face, text string) int {
	return font.MeasureString(face, text).Ceil()
}
