// Package config handles toyrender configuration loading and management.
package config

import (
	"errors"
	"fmt"

	"github.com/taigrr/toyrender/internal/logger"
	"github.com/taigrr/toyrender/pkg/math3d"
	"github.com/taigrr/toyrender/pkg/render"
)

// Config holds all toyrender settings.
type Config struct {
	Render  RenderConfig  `yaml:"render"`
	Output  OutputConfig  `yaml:"output"`
	View    ViewConfig    `yaml:"view"`
	Logging LoggingConfig `yaml:"logging"`
}

// RenderConfig holds frame and shading settings.
type RenderConfig struct {
	Width          int        `yaml:"width"`
	Height         int        `yaml:"height"`
	Light          [3]float64 `yaml:"light"`
	Wireframe      bool       `yaml:"wireframe"`
	Foreground     string     `yaml:"foreground"` // "r,g,b" or "r,g,b,a"
	Background     string     `yaml:"background"`
	DebugColors    bool       `yaml:"debug_colors"`
	Seed           uint64     `yaml:"seed"`
	MaterialColors bool       `yaml:"material_colors"`
	Normalize      bool       `yaml:"normalize"`
	LoadMaterials  bool       `yaml:"load_materials"`
}

// OutputConfig holds image file settings.
type OutputConfig struct {
	Path  string `yaml:"path"`
	Scale int    `yaml:"scale"` // integer upscale factor
}

// ViewConfig holds interactive viewer settings.
type ViewConfig struct {
	FPS     int  `yaml:"fps"`
	ShowHUD bool `yaml:"show_hud"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Validation errors.
var (
	ErrInvalidSize  = errors.New("width and height must be positive")
	ErrZeroLight    = errors.New("light direction must be non-zero")
	ErrInvalidScale = errors.New("output scale must be positive")
	ErrInvalidFPS   = errors.New("fps must be positive")
)

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Render: RenderConfig{
			Width:         512,
			Height:        512,
			Light:         [3]float64{0, 0, 1},
			Foreground:    "255,255,255",
			Background:    "0,0,0",
			Seed:          1,
			Normalize:     true,
			LoadMaterials: true,
		},
		Output: OutputConfig{
			Path:  "out.png",
			Scale: 1,
		},
		View: ViewConfig{
			FPS:     30,
			ShowHUD: true,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// LightDir returns the configured light direction.
func (c *Config) LightDir() math3d.Vec3 {
	return math3d.V3(c.Render.Light[0], c.Render.Light[1], c.Render.Light[2])
}

// Validate reports the first setting that cannot be used.
func (c *Config) Validate() error {
	if c.Render.Width <= 0 || c.Render.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSize, c.Render.Width, c.Render.Height)
	}
	if c.LightDir().Len() == 0 {
		return ErrZeroLight
	}
	if _, err := render.ParseColor(c.Render.Foreground); err != nil {
		return fmt.Errorf("foreground: %w", err)
	}
	if _, err := render.ParseColor(c.Render.Background); err != nil {
		return fmt.Errorf("background: %w", err)
	}
	if c.Output.Scale <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidScale, c.Output.Scale)
	}
	if c.View.FPS <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidFPS, c.View.FPS)
	}
	if _, err := logger.ParseLevel(c.Logging.Level); err != nil {
		return err
	}
	return nil
}

// RenderConfig converts the render section into a render.Config.
func (c *Config) RenderConfig() (render.Config, error) {
	fg, err := render.ParseColor(c.Render.Foreground)
	if err != nil {
		return render.Config{}, fmt.Errorf("foreground: %w", err)
	}
	bg, err := render.ParseColor(c.Render.Background)
	if err != nil {
		return render.Config{}, fmt.Errorf("background: %w", err)
	}

	return render.Config{
		Width:          c.Render.Width,
		Height:         c.Render.Height,
		LightDir:       c.LightDir(),
		Wireframe:      c.Render.Wireframe,
		Foreground:     fg,
		Background:     bg,
		DebugColors:    c.Render.DebugColors,
		Seed:           c.Render.Seed,
		MaterialColors: c.Render.MaterialColors,
	}, nil
}
