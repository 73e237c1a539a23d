package config

import (
	"errors"
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/Faultbox/procterrain/internal/noise"
	"github.com/Faultbox/procterrain/internal/params"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Graphics.Width != 1280 {
		t.Errorf("expected width 1280, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 720 {
		t.Errorf("expected height 720, got %d", cfg.Graphics.Height)
	}
	if cfg.Graphics.ShadowMapSize != 1024 {
		t.Errorf("expected shadow map 1024, got %d", cfg.Graphics.ShadowMapSize)
	}

	if cfg.Terrain.Size != 10 {
		t.Errorf("expected terrain size 10, got %v", cfg.Terrain.Size)
	}
	if cfg.Terrain.Segments != 500 {
		t.Errorf("expected 500 segments, got %d", cfg.Terrain.Segments)
	}
	if cfg.NoiseKind() != noise.Simplex {
		t.Errorf("expected simplex noise, got %s", cfg.NoiseKind())
	}

	if cfg.Shader != params.Default() {
		t.Error("expected default shader parameters")
	}

	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
graphics:
  width: 1920
  height: 1080
  vsync: false
  shadows: false

terrain:
  segments: 256
  seed: 42
  noise: perlin

shader:
  terrain:
    strength: 3.5
    warp_strength: 0.25
  water:
    small_waves_iterations: 2
  palette:
    grass: "#00ff00"

logging:
  level: "debug"
  log_file: "terrain.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Graphics.Width != 1920 || cfg.Graphics.Height != 1080 {
		t.Errorf("expected 1920x1080, got %dx%d", cfg.Graphics.Width, cfg.Graphics.Height)
	}
	if cfg.Graphics.VSync || cfg.Graphics.Shadows {
		t.Error("expected vsync and shadows disabled")
	}
	if cfg.Terrain.Segments != 256 || cfg.Terrain.Seed != 42 {
		t.Errorf("unexpected terrain section: %+v", cfg.Terrain)
	}
	if cfg.NoiseKind() != noise.Perlin {
		t.Errorf("expected perlin noise, got %s", cfg.NoiseKind())
	}

	if cfg.Shader.Terrain.Strength != 3.5 {
		t.Errorf("expected strength 3.5, got %v", cfg.Shader.Terrain.Strength)
	}
	if cfg.Shader.Terrain.WarpStrength != 0.25 {
		t.Errorf("expected warp strength 0.25, got %v", cfg.Shader.Terrain.WarpStrength)
	}
	// Unset fields keep their defaults.
	if cfg.Shader.Terrain.PositionFrequency != 0.2 {
		t.Errorf("expected default position frequency, got %v", cfg.Shader.Terrain.PositionFrequency)
	}
	if cfg.Shader.Water.SmallWavesIterations != 2 {
		t.Errorf("expected 2 iterations, got %d", cfg.Shader.Water.SmallWavesIterations)
	}
	if got := cfg.Shader.Palette.Grass.Hex(); got != "#00ff00" {
		t.Errorf("expected grass #00ff00, got %s", got)
	}
	if got := cfg.Shader.Palette.Sand.Hex(); got != "#ffe894" {
		t.Errorf("expected default sand, got %s", got)
	}

	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "terrain.log" {
		t.Errorf("expected log file 'terrain.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
graphics:
  width: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	if err := loadFromFile(cfg, "/nonexistent/path/config.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestLoadFromRejectsOutOfRange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "shader:\n  water:\n    small_waves_iterations: 9\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadFrom(path)
	if !errors.Is(err, params.ErrOutOfRange) {
		t.Errorf("expected ErrOutOfRange, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{"zero width", func(c *Config) { c.Graphics.Width = 0 }, ErrInvalid},
		{"negative size", func(c *Config) { c.Terrain.Size = -1 }, ErrInvalid},
		{"zero water segments", func(c *Config) { c.Terrain.WaterSegments = 0 }, ErrInvalid},
		{"unknown noise", func(c *Config) { c.Terrain.Noise = "value" }, noise.ErrUnknownKind},
		{"bad shader", func(c *Config) { c.Shader.Terrain.Strength = 11 }, params.ErrOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()
	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "xdg"))
	t.Setenv("HOME", tmpDir)
	os.Chdir(tmpDir)

	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("graphics:\n  width: 800\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	if path := findConfigFile(); path == "" {
		t.Error("expected to find config.yaml in current directory")
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name   string
		args   []string
		verify func(*testing.T, *Config)
	}{
		{
			name: "debug flag",
			args: []string{"-debug"},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
				if !cfg.Graphics.ShowFPS {
					t.Error("expected show_fps to be enabled with debug flag")
				}
			},
		},
		{
			name: "width and height flags",
			args: []string{"-width", "2560", "-height", "1440"},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Graphics.Width != 2560 || cfg.Graphics.Height != 1440 {
					t.Errorf("expected 2560x1440, got %dx%d", cfg.Graphics.Width, cfg.Graphics.Height)
				}
			},
		},
		{
			name: "terrain flags",
			args: []string{"-segments", "64", "-seed", "7", "-noise", "perlin"},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Terrain.Segments != 64 || cfg.Terrain.Seed != 7 || cfg.Terrain.Noise != "perlin" {
					t.Errorf("unexpected terrain section: %+v", cfg.Terrain)
				}
			},
		},
		{
			name: "no flags",
			args: nil,
			verify: func(t *testing.T, cfg *Config) {
				if *cfg != *Default() {
					t.Error("expected defaults to be untouched")
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := flag.NewFlagSet(tt.name, flag.ContinueOnError)
			f := BindFlags(fs)
			if err := fs.Parse(tt.args); err != nil {
				t.Fatalf("parse: %v", err)
			}

			cfg := Default()
			f.apply(cfg)
			tt.verify(t, cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
graphics:
  width: 1600
  height: 900
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	f := BindFlags(fs)
	if err := fs.Parse([]string{"-config", configPath, "-width", "1920"}); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(f)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Width from flag, height from file.
	if cfg.Graphics.Width != 1920 {
		t.Errorf("expected width 1920 from flag, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 900 {
		t.Errorf("expected height 900 from file, got %d", cfg.Graphics.Height)
	}
}

func TestSaveToRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Terrain.Seed = 99
	if err := cfg.Shader.SetValue("uElevationCrush", 4); err != nil {
		t.Fatal(err)
	}
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	loaded, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if *loaded != *cfg {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", loaded, cfg)
	}
}
