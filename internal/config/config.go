// Package config defines the globe's runtime configuration.
//
// Values are layered: built-in defaults, then an optional YAML file named by
// GLOBE_CONFIG, then GLOBE_* environment variables.
package config

import (
	"errors"
	"fmt"

	"travelglobe/geo"
	"travelglobe/gfx"

	"github.com/go-playground/validator/v10"
)

var (
	ErrLoadConfig    = errors.New("config: load failed")
	ErrInvalidConfig = errors.New("config: invalid")
)

type Config struct {
	// LogLevel is one of trace, debug, info, warn, error.
	LogLevel string `koanf:"log_level" validate:"oneof=trace debug info warn error"`
	// ConsoleLog switches from JSON lines to human-readable output.
	ConsoleLog bool `koanf:"console_log"`

	Width  int `koanf:"width" validate:"min=64,max=8192"`
	Height int `koanf:"height" validate:"min=64,max=8192"`

	Headless bool   `koanf:"headless"`
	Hz       int    `koanf:"hz" validate:"min=1,max=240"`
	Ticks    uint64 `koanf:"ticks"`

	TextureWidth  int `koanf:"texture_width" validate:"min=16,max=8192"`
	TextureHeight int `koanf:"texture_height" validate:"min=8,max=8192"`
	// Seed fixes the texture and starfield. Zero picks a random seed.
	Seed         uint64 `koanf:"seed"`
	AsyncTexture bool   `koanf:"async_texture"`

	Filter string `koanf:"filter" validate:"oneof=all visited planned"`

	// MetricsAddr enables the debug HTTP server, e.g. "localhost:9090".
	MetricsAddr string `koanf:"metrics_addr" validate:"omitempty,hostname_port"`

	// SnapshotPath is where headless runs write PNG frames.
	SnapshotPath  string `koanf:"snapshot_path"`
	SnapshotEvery int    `koanf:"snapshot_every" validate:"min=0"`

	// Destinations replaces the built-in list when non-empty.
	Destinations []Destination `koanf:"destinations" validate:"unique=Name,dive"`
}

type Destination struct {
	Name        string  `koanf:"name" validate:"required"`
	Lat         float64 `koanf:"lat" validate:"min=-90,max=90"`
	Lng         float64 `koanf:"lng" validate:"min=-180,max=180"`
	Visited     bool    `koanf:"visited"`
	Color       string  `koanf:"color" validate:"omitempty,hexcolor"`
	Description string  `koanf:"description"`
}

// New returns the defaults.
func New() *Config {
	return &Config{
		LogLevel:      "info",
		Width:         800,
		Height:        600,
		Hz:            60,
		TextureWidth:  2048,
		TextureHeight: 1024,
		Filter:        "all",
		SnapshotPath:  "globe.png",
		SnapshotEvery: 0,
	}
}

var validate = validator.New()

func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// FilterValue returns Filter parsed. Validate guarantees it parses.
func (c *Config) FilterValue() geo.Filter {
	f, _ := geo.ParseFilter(c.Filter)
	return f
}

// palette colors destinations that do not set one.
var palette = []gfx.Color{
	gfx.RGB(0x00, 0xff, 0x88),
	gfx.RGB(0x00, 0x88, 0xff),
	gfx.RGB(0xff, 0x88, 0x00),
	gfx.RGB(0xff, 0x00, 0x88),
	gfx.RGB(0x88, 0x00, 0xff),
	gfx.RGB(0x00, 0xff, 0xff),
}

// DestinationList converts the configured destinations, falling back to
// the built-in list when none are configured.
func (c *Config) DestinationList() (geo.Destinations, error) {
	if len(c.Destinations) == 0 {
		return geo.DefaultDestinations(), nil
	}
	out := make(geo.Destinations, 0, len(c.Destinations))
	for i, d := range c.Destinations {
		col := palette[i%len(palette)]
		if d.Color != "" {
			var err error
			if col, err = gfx.ParseHexColor(d.Color); err != nil {
				return nil, fmt.Errorf("%w: destination %q: %w", ErrInvalidConfig, d.Name, err)
			}
		}
		out = append(out, geo.Destination{
			Name:        d.Name,
			Lat:         d.Lat,
			Lng:         d.Lng,
			Visited:     d.Visited,
			Color:       col,
			Description: d.Description,
		})
	}
	if err := out.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return out, nil
}
