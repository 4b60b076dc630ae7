package config

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/dunamismax/storekit/internal/domain"
	"gopkg.in/yaml.v3"
)

// Config holds everything the promo compositor can be restyled with. Values
// come from Default, optionally overlaid by a YAML style file.
type Config struct {
	Palette domain.Palette
	Fonts   FontConfig
	Small   Layout
	Marquee Layout
}

// FontConfig lists extra font files tried before the platform defaults.
type FontConfig struct {
	Regular []string `yaml:"regular"`
	Bold    []string `yaml:"bold"`
}

// Layout is the fixed template of one promo tile class. Positions are in
// tile pixels, text Y values are the top of the line box.
type Layout struct {
	GradientFactor  float64          `yaml:"gradient_factor"`
	IconSize        int              `yaml:"icon_size"`
	IconX           int              `yaml:"icon_x"`
	TextX           int              `yaml:"text_x"`
	TitleY          int              `yaml:"title_y"`
	TitleSize       float64          `yaml:"title_size"`
	UnderlineY      int              `yaml:"underline_y"`
	UnderlineWidth  int              `yaml:"underline_width"`
	UnderlineHeight int              `yaml:"underline_height"`
	TaglineY        int              `yaml:"tagline_y"`
	TaglineSize     float64          `yaml:"tagline_size"`
	Screenshot      ScreenshotLayout `yaml:"screenshot"`
}

// ScreenshotLayout places the optional screenshot. Margin is the gap between
// the image's right edge and the tile's, with the border drawn outside the
// image. A zero MaxHeight disables the region for the tile class.
type ScreenshotLayout struct {
	MaxWidth  int `yaml:"max_width"`
	MaxHeight int `yaml:"max_height"`
	Margin    int `yaml:"margin"`
	Border    int `yaml:"border"`
}

type fileConfig struct {
	Palette struct {
		Background string `yaml:"background"`
		Accent     string `yaml:"accent"`
		Text       string `yaml:"text"`
	} `yaml:"palette"`
	Fonts   FontConfig `yaml:"fonts"`
	Small   Layout     `yaml:"small"`
	Marquee Layout     `yaml:"marquee"`
}

// Default returns the stock layouts. Both tiles put the underline below the
// tagline. The marquee screenshot is scaled to 400 px tall and sits 80 px
// from the right edge; its width cap only stops very wide images from
// running off the left of the tile.
func Default() Config {
	return Config{
		Palette: domain.DefaultPalette,
		Small: Layout{
			GradientFactor:  0.2,
			IconSize:        80,
			IconX:           40,
			TextX:           140,
			TitleY:          90,
			TitleSize:       28,
			TaglineY:        130,
			TaglineSize:     14,
			UnderlineY:      175,
			UnderlineWidth:  150,
			UnderlineHeight: 3,
		},
		Marquee: Layout{
			GradientFactor:  0.2,
			IconSize:        120,
			IconX:           100,
			TextX:           260,
			TitleY:          200,
			TitleSize:       48,
			TaglineY:        270,
			TaglineSize:     22,
			UnderlineY:      320,
			UnderlineWidth:  300,
			UnderlineHeight: 5,
			Screenshot: ScreenshotLayout{
				MaxWidth:  domain.MarqueeWidth - 80 - 3,
				MaxHeight: 400,
				Margin:    80,
				Border:    3,
			},
		},
	}
}

// LoadFile overlays the YAML style file at path onto Default. Unset fields
// keep their default; unknown keys are an error.
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read style file: %w", err)
	}

	var file fileConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("parse style file %s: %w", path, err)
	}

	cfg := Default()
	if err := overlayColor(&cfg.Palette.Background, file.Palette.Background, "palette.background"); err != nil {
		return Config{}, err
	}
	if err := overlayColor(&cfg.Palette.Accent, file.Palette.Accent, "palette.accent"); err != nil {
		return Config{}, err
	}
	if err := overlayColor(&cfg.Palette.Text, file.Palette.Text, "palette.text"); err != nil {
		return Config{}, err
	}
	cfg.Fonts = file.Fonts
	cfg.Small = mergeLayout(cfg.Small, file.Small)
	cfg.Marquee = mergeLayout(cfg.Marquee, file.Marquee)

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid style file %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if err := c.Small.Validate(domain.SmallPromoWidth, domain.SmallPromoHeight); err != nil {
		return fmt.Errorf("small: %w", err)
	}
	if err := c.Marquee.Validate(domain.MarqueeWidth, domain.MarqueeHeight); err != nil {
		return fmt.Errorf("marquee: %w", err)
	}
	return nil
}

// Validate checks that the template keeps the icon, text origins and
// screenshot region inside a w×h tile.
func (l Layout) Validate(w, h int) error {
	if l.IconSize <= 0 || l.IconSize > h {
		return fmt.Errorf("icon_size %d must be in 1..%d", l.IconSize, h)
	}
	if l.IconX < 0 || l.IconX+l.IconSize > w {
		return fmt.Errorf("icon at x=%d size=%d exceeds tile width %d", l.IconX, l.IconSize, w)
	}
	if l.TextX < 0 || l.TextX >= w {
		return fmt.Errorf("text_x %d outside tile width %d", l.TextX, w)
	}
	for name, y := range map[string]int{"title_y": l.TitleY, "underline_y": l.UnderlineY, "tagline_y": l.TaglineY} {
		if y < 0 || y >= h {
			return fmt.Errorf("%s %d outside tile height %d", name, y, h)
		}
	}
	if l.TitleSize <= 0 || l.TaglineSize <= 0 {
		return errors.New("font sizes must be positive")
	}

	s := l.Screenshot
	if s.MaxHeight > 0 {
		if s.MaxWidth <= 0 || s.Margin < 0 || s.Border < 0 {
			return errors.New("screenshot max_width, margin and border must be non-negative")
		}
		if s.MaxHeight+2*s.Border > h || s.MaxWidth+s.Border+s.Margin > w {
			return fmt.Errorf("screenshot region %dx%d does not fit tile %dx%d", s.MaxWidth, s.MaxHeight, w, h)
		}
	}
	return nil
}

func mergeLayout(base, override Layout) Layout {
	result := base
	if override.GradientFactor != 0 {
		result.GradientFactor = override.GradientFactor
	}
	if override.IconSize > 0 {
		result.IconSize = override.IconSize
	}
	if override.IconX != 0 {
		result.IconX = override.IconX
	}
	if override.TextX != 0 {
		result.TextX = override.TextX
	}
	if override.TitleY != 0 {
		result.TitleY = override.TitleY
	}
	if override.TitleSize > 0 {
		result.TitleSize = override.TitleSize
	}
	if override.UnderlineY != 0 {
		result.UnderlineY = override.UnderlineY
	}
	if override.UnderlineWidth != 0 {
		result.UnderlineWidth = override.UnderlineWidth
	}
	if override.UnderlineHeight != 0 {
		result.UnderlineHeight = override.UnderlineHeight
	}
	if override.TaglineY != 0 {
		result.TaglineY = override.TaglineY
	}
	if override.TaglineSize > 0 {
		result.TaglineSize = override.TaglineSize
	}
	if override.Screenshot.MaxWidth != 0 {
		result.Screenshot.MaxWidth = override.Screenshot.MaxWidth
	}
	if override.Screenshot.MaxHeight != 0 {
		result.Screenshot.MaxHeight = override.Screenshot.MaxHeight
	}
	if override.Screenshot.Margin != 0 {
		result.Screenshot.Margin = override.Screenshot.Margin
	}
	if override.Screenshot.Border != 0 {
		result.Screenshot.Border = override.Screenshot.Border
	}
	return result
}

func overlayColor(dst *color.NRGBA, value, field string) error {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	c, err := ParseHexColor(value)
	if err != nil {
		return fmt.Errorf("%s: %w", field, err)
	}
	*dst = c
	return nil
}

// ParseHexColor parses "#rrggbb" into an opaque color.
func ParseHexColor(s string) (color.NRGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 {
		return color.NRGBA{}, fmt.Errorf("invalid color %q: expected 6-char hex", s)
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}
