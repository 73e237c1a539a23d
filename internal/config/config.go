// Package config handles viewer configuration loading and management.
package config

import (
	"errors"
	"fmt"

	"github.com/Faultbox/procterrain/internal/noise"
	"github.com/Faultbox/procterrain/internal/params"
)

// ErrInvalid is returned by Validate for an unusable configuration.
var ErrInvalid = errors.New("invalid config")

// Config holds all viewer settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Terrain  TerrainConfig  `yaml:"terrain"`
	Shader   params.Set     `yaml:"shader"`
	Assets   AssetsConfig   `yaml:"assets"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width         int   `yaml:"width"`
	Height        int   `yaml:"height"`
	Fullscreen    bool  `yaml:"fullscreen"`
	VSync         bool  `yaml:"vsync"`
	FPSLimit      int   `yaml:"fps_limit"`
	ShowFPS       bool  `yaml:"show_fps"`
	Shadows       bool  `yaml:"shadows"`
	ShadowMapSize int32 `yaml:"shadow_map_size"`
	FitShadow     bool  `yaml:"fit_shadow"` // fit the light volume to the scene bounds
}

// TerrainConfig holds mesh resolution and noise settings.
type TerrainConfig struct {
	Size          float64 `yaml:"size"`
	Segments      int     `yaml:"segments"`
	WaterSegments int     `yaml:"water_segments"`
	Seed          int64   `yaml:"seed"`
	Noise         string  `yaml:"noise"`
	Workers       int     `yaml:"workers"` // 0 = one per CPU
}

// AssetsConfig holds optional asset paths. Relative paths resolve against Root.
type AssetsConfig struct {
	Root           string `yaml:"root"`
	EnvironmentMap string `yaml:"environment_map"`
	PlaneModel     string `yaml:"plane_model"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:         1280,
			Height:        720,
			VSync:         true,
			Shadows:       true,
			ShadowMapSize: 1024,
		},
		Terrain: TerrainConfig{
			Size:          10,
			Segments:      500,
			WaterSegments: 128,
			Noise:         string(noise.Simplex),
		},
		Shader: params.Default(),
		Assets: AssetsConfig{
			Root:           "static",
			EnvironmentMap: "spruit_sunrise.hdr",
			PlaneModel:     "plane.glb",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Validate reports every problem found in c.
func (c *Config) Validate() error {
	var errs []error
	if c.Graphics.Width <= 0 || c.Graphics.Height <= 0 {
		errs = append(errs, fmt.Errorf("%w: window size %dx%d", ErrInvalid, c.Graphics.Width, c.Graphics.Height))
	}
	if c.Terrain.Size <= 0 {
		errs = append(errs, fmt.Errorf("%w: terrain size %v", ErrInvalid, c.Terrain.Size))
	}
	if c.Terrain.Segments <= 0 || c.Terrain.WaterSegments <= 0 {
		errs = append(errs, fmt.Errorf("%w: segments %d/%d", ErrInvalid, c.Terrain.Segments, c.Terrain.WaterSegments))
	}
	if _, err := noise.ParseKind(c.Terrain.Noise); err != nil {
		errs = append(errs, err)
	}
	if err := c.Shader.Validate(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// NoiseKind returns the configured noise kind, falling back to simplex.
func (c *Config) NoiseKind() noise.Kind {
	k, err := noise.ParseKind(c.Terrain.Noise)
	if err != nil {
		return noise.Simplex
	}
	return k
}
