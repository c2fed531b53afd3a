// Package config loads svgrender defaults from the environment.
package config

import (
	"fmt"
	imgcolor "image/color"

	"github.com/kelseyhightower/envconfig"

	"github.com/gogpu/svg/internal/color"
)

// Prefix is prepended to every environment variable name.
const Prefix = "SVGRENDER"

// Config holds the defaults for command line flags.
type Config struct {
	Backend    string  `envconfig:"BACKEND" default:"auto"`
	Background string  `envconfig:"BACKGROUND" default:"white"`
	Flatness   float64 `envconfig:"FLATNESS" default:"0.25"`
	MaxDepth   int     `envconfig:"MAX_DEPTH" default:"256"`
	Workers    int     `envconfig:"WORKERS" default:"0"`
	Text       bool    `envconfig:"TEXT" default:"true"`
	LogLevel   string  `envconfig:"LOG_LEVEL" default:"warn"`
}

// Load reads SVGRENDER_* variables, falling back to the defaults above.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ParseBackground parses a CSS color such as "white", "#336699cc",
// "rgba(0,0,0,0.5)" or "transparent".
func ParseBackground(s string) (imgcolor.NRGBA, error) {
	c, err := color.Parse(s)
	if err != nil {
		return imgcolor.NRGBA{}, fmt.Errorf("config: background %q: %w", s, err)
	}
	c8 := c.To8()
	return imgcolor.NRGBA{R: c8.R, G: c8.G, B: c8.B, A: c8.A}, nil
}
