package viewer

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/pelletier/go-toml/v2"
	"golang.org/x/image/colornames"

	"github.com/gogpu/viewer/convert"
	"github.com/gogpu/viewer/scene"
	"github.com/gogpu/viewer/selection"
)

// ErrInvalidColor is returned for color settings that are neither hex nor a
// CSS color name.
var ErrInvalidColor = errors.New("viewer: invalid color")

// ColorResolver picks the material color of a domain object. Returning
// false keeps the converter's color.
type ColorResolver func(src convert.Source) (colorful.Color, bool)

// Config holds the host-provided settings.
//
// Colors are "#rrggbb" hex values or CSS color names. An empty color
// leaves the setting off.
type Config struct {
	// Camera is "perspective" or "orthographic".
	Camera string `toml:"camera"`

	// Renderer is the mounted surface: "raster" or "vector".
	Renderer string `toml:"renderer"`

	// LineWeight is the vector stroke width. Zero disables strokes.
	LineWeight float64 `toml:"line_weight"`
	LineColor  string  `toml:"line_color"`

	// Precision is the number of decimals in vector path data. Negative
	// values keep full precision.
	Precision int `toml:"precision"`

	Background string `toml:"background"`
	HoverColor string `toml:"hover_color"`

	// PlaceholderColor marks objects left out of extents framing.
	PlaceholderColor string `toml:"placeholder_color"`

	Highlighter   scene.Highlighter   `toml:"-"`
	Authority     selection.Authority `toml:"-"`
	ColorResolver ColorResolver       `toml:"-"`
}

// DefaultConfig returns the settings a viewer starts with.
func DefaultConfig() Config {
	return Config{
		Camera:     "perspective",
		Renderer:   "raster",
		LineWeight: 1,
		Precision:  -1,
		HoverColor: selection.DefaultHoverColor.Hex(),
	}
}

// LoadConfig reads TOML settings on top of DefaultConfig.
func LoadConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()
	dec := toml.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("viewer: load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the enumerated and color settings.
func (c Config) Validate() error {
	var errs []error
	switch c.Camera {
	case "", "perspective", "orthographic":
	default:
		errs = append(errs, fmt.Errorf("viewer: unknown camera %q", c.Camera))
	}
	switch c.Renderer {
	case "", "raster", "vector":
	default:
		errs = append(errs, fmt.Errorf("viewer: unknown renderer %q", c.Renderer))
	}
	for _, f := range []struct{ name, value string }{
		{"line_color", c.LineColor},
		{"background", c.Background},
		{"hover_color", c.HoverColor},
		{"placeholder_color", c.PlaceholderColor},
	} {
		if _, err := parseColor(f.value); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", f.name, err))
		}
	}
	return errors.Join(errs...)
}

// ParseColor converts a hex value or CSS color name. An empty string
// yields nil.
func ParseColor(s string) (*colorful.Color, error) {
	return parseColor(s)
}

func parseColor(s string) (*colorful.Color, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	if strings.HasPrefix(s, "#") {
		if !hexDigits(s[1:]) {
			return nil, fmt.Errorf("%w %q", ErrInvalidColor, s)
		}
		c, err := colorful.Hex(s)
		if err != nil {
			return nil, fmt.Errorf("%w %q", ErrInvalidColor, s)
		}
		return &c, nil
	}
	rgba, ok := colornames.Map[strings.ToLower(s)]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrInvalidColor, s)
	}
	c, _ := colorful.MakeColor(rgba)
	return &c, nil
}

// hexDigits reports whether s is a 3 or 6 digit hex triplet.
func hexDigits(s string) bool {
	if len(s) != 3 && len(s) != 6 {
		return false
	}
	return strings.Trim(s, "0123456789abcdefABCDEF") == ""
}
