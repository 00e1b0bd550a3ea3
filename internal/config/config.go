package config

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"os"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/orbs/internal/orbit"
	"gopkg.in/yaml.v3"
)

const (
	DefaultTitle     = "orbs performance demo"
	DefaultWidth     = 1920
	DefaultHeight    = 1080
	DefaultOrbs      = 5000
	DefaultOrbRadius = 10
	DefaultFontSize  = 100

	// MaxDimension bounds the screen size so spawn ranges fit in 32 bits.
	MaxDimension = 1 << 15
)

var (
	ErrInvalid       = errors.New("config: invalid value")
	ErrUnknownPreset = errors.New("config: unknown preset")
)

type Config struct {
	Title     string      `yaml:"title"`
	Width     int         `yaml:"width"`
	Height    int         `yaml:"height"`
	Orbs      int         `yaml:"orbs"`
	OrbRadius int         `yaml:"orb_radius"`
	Gravity   float64     `yaml:"gravity"`
	SunMass   float64     `yaml:"sun_mass"`
	Speed     float64     `yaml:"speed"`
	Seed      uint64      `yaml:"seed"`
	Font      FontConfig  `yaml:"font"`
	Colors    ColorConfig `yaml:"colors"`
	Counter   RectConfig  `yaml:"counter"`
}

type FontConfig struct {
	Path string `yaml:"path"`
	Size int    `yaml:"size"`
}

type ColorConfig struct {
	Background string `yaml:"background"`
	Orb        string `yaml:"orb"`
	Text       string `yaml:"text"`
}

// RectConfig places the FPS counter in screen coordinates.
type RectConfig struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
	W int `yaml:"w"`
	H int `yaml:"h"`
}

type Palette struct {
	Background color.RGBA
	Orb        color.RGBA
	Text       color.RGBA
}

func DefaultConfig() *Config {
	return &Config{
		Title:     DefaultTitle,
		Width:     DefaultWidth,
		Height:    DefaultHeight,
		Orbs:      DefaultOrbs,
		OrbRadius: DefaultOrbRadius,
		Gravity:   orbit.DefaultG,
		SunMass:   orbit.DefaultMass,
		Speed:     orbit.DefaultSpeed,
		Font:      FontConfig{Size: DefaultFontSize},
		Colors: ColorConfig{
			Background: "#000000",
			Orb:        "#00ff00",
			Text:       "#ff0000",
		},
		Counter: RectConfig{X: 0, Y: 0, W: 80, H: 40},
	}
}

func Load(path string) (*Config, error) {
	return LoadOnto(path, DefaultConfig())
}

// LoadOnto overlays the file at path onto a copy of base. Keys missing from
// the file keep base's values.
func LoadOnto(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := base.Clone()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}

func (c *Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0, c.Width > MaxDimension || c.Height > MaxDimension:
		return fmt.Errorf("%w: screen size %dx%d", ErrInvalid, c.Width, c.Height)
	case c.Orbs < 0:
		return fmt.Errorf("%w: orbs must not be negative, got %d", ErrInvalid, c.Orbs)
	case c.OrbRadius < 0:
		return fmt.Errorf("%w: orb_radius must not be negative, got %d", ErrInvalid, c.OrbRadius)
	case c.Gravity < 0 || c.SunMass < 0:
		return fmt.Errorf("%w: gravity and sun_mass must not be negative", ErrInvalid)
	case c.Speed <= 0:
		return fmt.Errorf("%w: speed must be positive, got %f", ErrInvalid, c.Speed)
	case c.Font.Size <= 0:
		return fmt.Errorf("%w: font size must be positive, got %d", ErrInvalid, c.Font.Size)
	case c.Counter.W <= 0 || c.Counter.H <= 0:
		return fmt.Errorf("%w: counter size %dx%d", ErrInvalid, c.Counter.W, c.Counter.H)
	}
	if _, err := c.Palette(); err != nil {
		return err
	}
	return nil
}

// Palette parses the configured hex colours.
func (c *Config) Palette() (Palette, error) {
	var p Palette
	var err error
	if p.Background, err = parseColor("background", c.Colors.Background); err != nil {
		return p, err
	}
	if p.Orb, err = parseColor("orb", c.Colors.Orb); err != nil {
		return p, err
	}
	if p.Text, err = parseColor("text", c.Colors.Text); err != nil {
		return p, err
	}
	return p, nil
}

func parseColor(name, hex string) (color.RGBA, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("%w: %s colour %q: %v", ErrInvalid, name, hex, err)
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}

func (c *Config) CounterRect() image.Rectangle {
	return image.Rect(c.Counter.X, c.Counter.Y, c.Counter.X+c.Counter.W, c.Counter.Y+c.Counter.H)
}

// Field returns the central mass fixed at the middle of the screen.
func (c *Config) Field() orbit.Field {
	return orbit.NewField(float64(c.Width)/2, float64(c.Height)/2, c.Gravity, c.SunMass, c.Speed)
}
