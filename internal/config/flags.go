package config

import (
	"fmt"
	"strconv"
	"strings"
)

// Flags carries command-line overrides. A nil field was not given on the
// command line and leaves the file or default value alone.
type Flags struct {
	Width          *int
	Height         *int
	Wireframe      *bool
	Light          *string // "x,y,z"
	Foreground     *string
	Background     *string
	DebugColors    *bool
	Seed           *uint64
	MaterialColors *bool
	Out            *string
	Scale          *int
	FPS            *int
	LogLevel       *string
	LogFile        *string
}

// apply applies CLI flag overrides to the config.
func (f Flags) apply(cfg *Config) error {
	if f.Width != nil {
		cfg.Render.Width = *f.Width
	}
	if f.Height != nil {
		cfg.Render.Height = *f.Height
	}
	if f.Wireframe != nil {
		cfg.Render.Wireframe = *f.Wireframe
	}
	if f.Light != nil {
		light, err := ParseLight(*f.Light)
		if err != nil {
			return err
		}
		cfg.Render.Light = light
	}
	if f.Foreground != nil {
		cfg.Render.Foreground = *f.Foreground
	}
	if f.Background != nil {
		cfg.Render.Background = *f.Background
	}
	if f.DebugColors != nil {
		cfg.Render.DebugColors = *f.DebugColors
	}
	if f.Seed != nil {
		cfg.Render.Seed = *f.Seed
	}
	if f.MaterialColors != nil {
		cfg.Render.MaterialColors = *f.MaterialColors
	}
	if f.Out != nil {
		cfg.Output.Path = *f.Out
	}
	if f.Scale != nil {
		cfg.Output.Scale = *f.Scale
	}
	if f.FPS != nil {
		cfg.View.FPS = *f.FPS
	}
	if f.LogLevel != nil {
		cfg.Logging.Level = *f.LogLevel
	}
	if f.LogFile != nil {
		cfg.Logging.LogFile = *f.LogFile
	}
	return nil
}

// ParseLight parses an "x,y,z" direction.
func ParseLight(s string) ([3]float64, error) {
	var v [3]float64
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return v, fmt.Errorf("light %q: expected x,y,z", s)
	}
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return v, fmt.Errorf("light %q: %w", s, err)
		}
		v[i] = f
	}
	return v, nil
}
