package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/taigrr/toyrender/pkg/math3d"
	"github.com/taigrr/toyrender/pkg/render"
)

func ptr[T any](v T) *T { return &v }

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Render.Width != 512 || cfg.Render.Height != 512 {
		t.Errorf("expected 512x512, got %dx%d", cfg.Render.Width, cfg.Render.Height)
	}
	if cfg.LightDir() != math3d.V3(0, 0, 1) {
		t.Errorf("expected light (0,0,1), got %v", cfg.LightDir())
	}
	if cfg.Render.Wireframe {
		t.Error("expected filled mode by default")
	}
	if cfg.View.FPS != 30 {
		t.Errorf("expected fps 30, got %d", cfg.View.FPS)
	}
	if cfg.Output.Path != "out.png" || cfg.Output.Scale != 1 {
		t.Errorf("unexpected output defaults %+v", cfg.Output)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
render:
  width: 800
  height: 600
  light: [0, 1, 1]
  wireframe: true
  foreground: "255,0,0"
  material_colors: true

output:
  path: "frame.webp"
  scale: 2

logging:
  level: "debug"
  log_file: "toyrender.log"
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Render.Width != 800 || cfg.Render.Height != 600 {
		t.Errorf("expected 800x600, got %dx%d", cfg.Render.Width, cfg.Render.Height)
	}
	if cfg.Render.Light != [3]float64{0, 1, 1} {
		t.Errorf("unexpected light %v", cfg.Render.Light)
	}
	if !cfg.Render.Wireframe || !cfg.Render.MaterialColors {
		t.Error("expected wireframe and material colors to be set")
	}
	if cfg.Output.Path != "frame.webp" || cfg.Output.Scale != 2 {
		t.Errorf("unexpected output %+v", cfg.Output)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.LogFile != "toyrender.log" {
		t.Errorf("unexpected logging %+v", cfg.Logging)
	}

	// Unset keys keep their defaults.
	if cfg.Render.Background != "0,0,0" || cfg.View.FPS != 30 || !cfg.Render.Normalize {
		t.Error("file load should merge with defaults")
	}
}

func TestLoadPriority(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	configPath := filepath.Join(t.TempDir(), "toyrender.yaml")
	if err := os.WriteFile(configPath, []byte("render:\n  width: 100\n  height: 80\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(configPath, Flags{Width: ptr(64), Light: ptr("1,0,0")})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Render.Width != 64 {
		t.Errorf("flag should override file width, got %d", cfg.Render.Width)
	}
	if cfg.Render.Height != 80 {
		t.Errorf("file should override default height, got %d", cfg.Render.Height)
	}
	if cfg.LightDir() != math3d.V3(1, 0, 0) {
		t.Errorf("unexpected light %v", cfg.LightDir())
	}
}

func TestLoadErrors(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), Flags{}); err == nil {
		t.Error("expected an error for a missing explicit config file")
	}

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(bad, []byte("render: [unclosed"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(bad, Flags{}); err == nil {
		t.Error("expected an error for malformed YAML")
	}

	if _, err := Load("", Flags{Light: ptr("1,2")}); err == nil {
		t.Error("expected an error for a malformed light flag")
	}
	if _, err := Load("", Flags{Scale: ptr(0)}); !errors.Is(err, ErrInvalidScale) {
		t.Errorf("expected ErrInvalidScale, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"zero width", func(c *Config) { c.Render.Width = 0 }, ErrInvalidSize},
		{"zero light", func(c *Config) { c.Render.Light = [3]float64{} }, ErrZeroLight},
		{"zero scale", func(c *Config) { c.Output.Scale = 0 }, ErrInvalidScale},
		{"zero fps", func(c *Config) { c.View.FPS = 0 }, ErrInvalidFPS},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, tc.want) {
				t.Errorf("Validate() = %v, want %v", err, tc.want)
			}
		})
	}

	cfg := Default()
	cfg.Logging.Level = "chatty"
	if err := cfg.Validate(); err == nil {
		t.Error("expected an error for an unknown log level")
	}
	cfg = Default()
	cfg.Render.Foreground = "white"
	if err := cfg.Validate(); err == nil {
		t.Error("expected an error for a malformed color")
	}
}

func TestRenderConfig(t *testing.T) {
	cfg := Default()
	cfg.Render.Background = "10,20,30"
	cfg.Render.DebugColors = true
	cfg.Render.Seed = 7

	rc, err := cfg.RenderConfig()
	if err != nil {
		t.Fatalf("RenderConfig: %v", err)
	}
	if rc.Width != 512 || rc.Height != 512 {
		t.Errorf("unexpected size %dx%d", rc.Width, rc.Height)
	}
	if rc.Background != render.RGB(10, 20, 30) || rc.Foreground != render.ColorWhite {
		t.Errorf("unexpected colors fg=%v bg=%v", rc.Foreground, rc.Background)
	}
	if !rc.DebugColors || rc.Seed != 7 {
		t.Error("debug color settings were not carried over")
	}
	if err := rc.Validate(); err != nil {
		t.Errorf("converted config should validate: %v", err)
	}
}

func TestSaveTo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Render.Width = 321
	cfg.Render.Light = [3]float64{1, 2, 3}
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if loaded.Render.Width != 321 || loaded.Render.Light != [3]float64{1, 2, 3} {
		t.Errorf("saved config did not reload: %+v", loaded.Render)
	}
}

func TestParseLight(t *testing.T) {
	got, err := ParseLight(" 0.5, -1 ,2")
	if err != nil {
		t.Fatalf("ParseLight: %v", err)
	}
	if got != [3]float64{0.5, -1, 2} {
		t.Errorf("ParseLight = %v", got)
	}
	for _, bad := range []string{"", "1,2", "a,b,c", "1,2,3,4"} {
		if _, err := ParseLight(bad); err == nil {
			t.Errorf("ParseLight(%q) should fail", bad)
		}
	}
}
