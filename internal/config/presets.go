package config

import (
	"fmt"
	"sort"
)

var Presets = map[string]*Config{
	"demo": DefaultConfig(),
	"swarm": with(func(c *Config) {
		c.Orbs = 20000
		c.OrbRadius = 3
	}),
	"sparse": with(func(c *Config) {
		c.Orbs = 500
		c.OrbRadius = 20
	}),
	"slow": with(func(c *Config) {
		c.Speed = 10
	}),
	"hd": with(func(c *Config) {
		c.Width = 1280
		c.Height = 720
		c.Orbs = 2500
		c.Font.Size = 64
	}),
	"mono": with(func(c *Config) {
		c.Colors = ColorConfig{Background: "#ffffff", Orb: "#000000", Text: "#444444"}
	}),
}

func with(fn func(c *Config)) *Config {
	c := DefaultConfig()
	fn(c)
	return c
}

// GetPreset returns a copy of the named preset, or nil if there is none.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

func LookupPreset(name string) (*Config, error) {
	cfg := GetPreset(name)
	if cfg == nil {
		return nil, fmt.Errorf("%w: %s (available: %v)", ErrUnknownPreset, name, ListPresets())
	}
	return cfg, nil
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
