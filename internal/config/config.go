package config

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/iburimskiy/dotfield/internal/paint"
	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"
)

const (
	WindowWidth  = 1024
	WindowHeight = 640
	WindowTitle  = "dotfield"

	// Terminal cells are treated as this many logical pixels.
	CellWidth  = 8
	CellHeight = 16

	FrameRingSize = 120

	// MinSpacing bounds the grid to one dot per logical pixel.
	MinSpacing = 1
)

// ErrInvalid marks a configuration that cannot be rendered.
var ErrInvalid = errors.New("invalid configuration")

// Render is the per-mount renderer configuration.
type Render struct {
	Spacing           float64 `yaml:"spacing"`
	DotRadius         float64 `yaml:"dot_radius"`
	DotColor          Color   `yaml:"dot_color"`
	Opacity           float64 `yaml:"opacity"`
	BaseDarkness      float64 `yaml:"base_darkness"`
	SpotlightRadius   float64 `yaml:"spotlight_radius"`
	SpotlightStrength float64 `yaml:"spotlight_strength"`
	SpotlightColor    Color   `yaml:"spotlight_color"`
}

// DefaultRender matches the full-page hero background.
func DefaultRender() Render {
	return Render{
		Spacing:           56,
		DotRadius:         3,
		DotColor:          Color{R: 99, G: 102, B: 241},
		Opacity:           0.06,
		BaseDarkness:      0.92,
		SpotlightRadius:   440,
		SpotlightStrength: 0.7,
		SpotlightColor:    Color{R: 99, G: 102, B: 241},
	}
}

// Validate rejects values that would produce a degenerate grid or
// out-of-range alpha.
func (r Render) Validate() error {
	positive := []struct {
		name string
		v    float64
	}{
		{"spacing", r.Spacing},
		{"dot_radius", r.DotRadius},
		{"spotlight_radius", r.SpotlightRadius},
	}
	for _, p := range positive {
		if !(p.v > 0) || math.IsInf(p.v, 0) {
			return fmt.Errorf("%w: %s must be > 0, got %v", ErrInvalid, p.name, p.v)
		}
	}
	if r.Spacing < MinSpacing {
		return fmt.Errorf("%w: spacing must be at least %v, got %v", ErrInvalid, MinSpacing, r.Spacing)
	}
	unit := []struct {
		name string
		v    float64
	}{
		{"opacity", r.Opacity},
		{"base_darkness", r.BaseDarkness},
		{"spotlight_strength", r.SpotlightStrength},
	}
	for _, u := range unit {
		if !(u.v >= 0 && u.v <= 1) {
			return fmt.Errorf("%w: %s must be in [0,1], got %v", ErrInvalid, u.name, u.v)
		}
	}
	return nil
}

// Window configures the desktop host.
type Window struct {
	Width       int    `yaml:"width"`
	Height      int    `yaml:"height"`
	Title       string `yaml:"title"`
	Passthrough bool   `yaml:"passthrough"`
}

// Theme configures the shared dark-mode flag.
type Theme struct {
	File         string        `yaml:"file"`
	Default      string        `yaml:"default"`
	PollInterval time.Duration `yaml:"poll_interval"`
}

// Log configures zap.
type Log struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
	File        string `yaml:"file"`
}

// Settings is the whole config file.
type Settings struct {
	Render Render `yaml:"render"`
	Window Window `yaml:"window"`
	Theme  Theme  `yaml:"theme"`
	Log    Log    `yaml:"log"`
}

func Default() Settings {
	return Settings{
		Render: DefaultRender(),
		Window: Window{Width: WindowWidth, Height: WindowHeight, Title: WindowTitle},
		Theme:  Theme{Default: "dark", PollInterval: time.Second},
		Log:    Log{Level: "info"},
	}
}

// Validate checks every section.
func (s Settings) Validate() error {
	if err := s.Render.Validate(); err != nil {
		return err
	}
	if s.Window.Width <= 0 || s.Window.Height <= 0 {
		return fmt.Errorf("%w: window size must be positive, got %dx%d", ErrInvalid, s.Window.Width, s.Window.Height)
	}
	switch strings.ToLower(s.Theme.Default) {
	case "dark", "light":
	default:
		return fmt.Errorf("%w: theme.default must be dark or light, got %q", ErrInvalid, s.Theme.Default)
	}
	if s.Theme.PollInterval < 0 {
		return fmt.Errorf("%w: theme.poll_interval must not be negative", ErrInvalid)
	}
	return nil
}

// DefaultDark reports whether the theme default is dark.
func (s Settings) DefaultDark() bool {
	return strings.EqualFold(s.Theme.Default, "dark")
}

// Color is an RGB triple written either as "r,g,b" or as a hex string.
type Color paint.RGB

func (c Color) RGB() paint.RGB { return paint.RGB(c) }

func (c Color) String() string { return paint.RGB(c).String() }

// ParseColor accepts "99,102,241", "#6366f1" and "#66f".
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "#") {
		if len(s) == 4 {
			s = "#" + strings.Repeat(s[1:2], 2) + strings.Repeat(s[2:3], 2) + strings.Repeat(s[3:4], 2)
		}
		cc, err := colorful.Hex(s)
		if err != nil {
			return Color{}, fmt.Errorf("%w: color %q: %v", ErrInvalid, s, err)
		}
		r, g, b := cc.RGB255()
		return Color{R: r, G: g, B: b}, nil
	}
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return Color{}, fmt.Errorf("%w: color %q: want r,g,b or #rrggbb", ErrInvalid, s)
	}
	var ch [3]uint8
	for i, p := range parts {
		v, err := strconv.ParseUint(strings.TrimSpace(p), 10, 8)
		if err != nil {
			return Color{}, fmt.Errorf("%w: color %q: %v", ErrInvalid, s, err)
		}
		ch[i] = uint8(v)
	}
	return Color{R: ch[0], G: ch[1], B: ch[2]}, nil
}

func (c *Color) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseColor(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

func (c Color) MarshalYAML() (any, error) {
	return c.String(), nil
}
