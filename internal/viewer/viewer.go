// Package viewer runs the interactive terrain window.
package viewer

import (
	"context"
	"fmt"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/procterrain/internal/assets"
	"github.com/Faultbox/procterrain/internal/config"
	"github.com/Faultbox/procterrain/internal/engine/clock"
	"github.com/Faultbox/procterrain/internal/engine/input"
	"github.com/Faultbox/procterrain/internal/engine/renderer"
	"github.com/Faultbox/procterrain/internal/engine/window"
	"github.com/Faultbox/procterrain/internal/engine/workers"
	"github.com/Faultbox/procterrain/internal/logger"
	"github.com/Faultbox/procterrain/internal/preview"
	"github.com/Faultbox/procterrain/internal/scene"
)

// Viewer is the main viewer instance.
type Viewer struct {
	config   *config.Config
	running  bool
	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	pool     *workers.Pool
	loader   *assets.Loader
	clock    *clock.Clock
	scene    *scene.Scene
	shots    *preview.Screenshots
	capture  bool
}

// New opens the window and builds the scene.
func New(ctx context.Context, cfg *config.Config) (*Viewer, error) {
	logger.Info("initializing viewer",
		zap.Int("width", cfg.Graphics.Width),
		zap.Int("height", cfg.Graphics.Height),
		zap.Int("segments", cfg.Terrain.Segments),
	)

	v := &Viewer{
		config: cfg,
		pool:   workers.New(cfg.Terrain.Workers),
		clock:  clock.New(),
		input:  input.New(),
		shots:  preview.NewScreenshots("screenshots", "procterrain"),
	}

	var err error
	v.window, err = window.New(window.Config{
		Title:      "procterrain",
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		v.pool.Close()
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// The renderer needs the GL context the window created.
	v.renderer, err = renderer.New(renderer.Config{
		Shadows:       cfg.Graphics.Shadows,
		ShadowMapSize: cfg.Graphics.ShadowMapSize,
		FitShadow:     cfg.Graphics.FitShadow,
	})
	if err != nil {
		v.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	start := time.Now()
	v.scene, err = scene.New(ctx, scene.Config{
		Size:          cfg.Terrain.Size,
		Segments:      cfg.Terrain.Segments,
		WaterSegments: cfg.Terrain.WaterSegments,
		Seed:          cfg.Terrain.Seed,
		Noise:         cfg.NoiseKind(),
		Params:        cfg.Shader,
	}, v.pool)
	if err != nil {
		v.Close()
		return nil, fmt.Errorf("failed to build scene: %w", err)
	}
	logger.Info("scene built", zap.Duration("took", time.Since(start)))

	v.resize()
	v.renderer.Upload(v.scene)

	v.loader = assets.NewLoader(v.pool, v.scene.LoaderCallbacks(), cfg.Assets.Root)
	if p := cfg.Assets.EnvironmentMap; p != "" {
		v.loader.Load(scene.AssetEnvironment, p)
	}
	if p := cfg.Assets.PlaneModel; p != "" {
		v.loader.Load(scene.AssetPlane, p)
	}

	return v, nil
}

// Run starts the main loop and returns when the window closes or ctx ends.
func (v *Viewer) Run(ctx context.Context) error {
	v.running = true
	v.clock.Reset()

	frameCount := 0
	fpsTimer := time.Now()
	var minFrame time.Duration
	if v.config.Graphics.FPSLimit > 0 {
		minFrame = time.Second / time.Duration(v.config.Graphics.FPSLimit)
	}

	logger.Info("starting render loop")

	for v.running {
		frameStart := time.Now()
		if ctx.Err() != nil {
			break
		}

		if v.input.Update() {
			v.running = false
			break
		}
		v.handleEvents()

		frame, err := v.scene.Tick(ctx, v.clock.Elapsed())
		if err != nil {
			return fmt.Errorf("update error: %w", err)
		}

		v.renderer.Draw(v.scene, frame)
		if v.capture {
			v.screenshot()
		}
		v.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			if v.config.Graphics.ShowFPS {
				title := fmt.Sprintf("procterrain - %d fps", frameCount)
				if status := v.scene.AssetStatus(); status != "" {
					title += " - " + status
				}
				v.window.SetTitle(title)
			}
			logger.Debug("fps", zap.Int("count", frameCount), zap.Float64("time", frame.Time))
			frameCount = 0
			fpsTimer = time.Now()
		}

		if minFrame > 0 {
			if rest := minFrame - time.Since(frameStart); rest > 0 {
				time.Sleep(rest)
			}
		}
	}

	return nil
}

func (v *Viewer) handleEvents() {
	for _, event := range v.input.Events() {
		switch event.Type {
		case input.EventWindowResize:
			v.resize()
		case input.EventKeyDown:
			v.handleKey(event.Key)
		}
	}
	if dx, dy := v.input.Drag(); dx != 0 || dy != 0 {
		v.scene.Camera.Orbit(float64(dx), float64(dy))
	}
}

func (v *Viewer) handleKey(key sdl.Scancode) {
	switch key {
	case sdl.SCANCODE_R:
		v.scene.Params = v.config.Shader
		logger.Info("parameters reset")
	case sdl.SCANCODE_S:
		v.config.Shader = v.scene.Params
		if err := v.config.Save(); err != nil {
			logger.Warn("saving config failed", zap.Error(err))
			return
		}
		logger.Info("parameters saved", zap.String("dir", config.ConfigDir()))
	case sdl.SCANCODE_P:
		v.capture = true
	}
}

// screenshot reads the frame just drawn, before it is presented.
func (v *Viewer) screenshot() {
	v.capture = false
	w, h := v.window.DrawableSize()
	path, err := v.shots.SavePixels(v.renderer.ReadPixels(w, h), w, h)
	if err != nil {
		logger.Warn("screenshot failed", zap.Error(err))
		return
	}
	logger.Info("screenshot saved", zap.String("path", path))
}

func (v *Viewer) resize() {
	w, h := v.window.Size()
	v.scene.Resize(w, h, v.window.PixelRatio())
	// The backbuffer size is fixed by SDL; the capped ratio only affects
	// offscreen targets.
	v.renderer.Resize(v.window.DrawableSize())
}

// Close releases the window, GPU resources and workers.
func (v *Viewer) Close() {
	logger.Info("closing viewer")

	if v.loader != nil {
		v.loader.Wait()
	}
	if v.renderer != nil {
		v.renderer.Close()
	}
	if v.window != nil {
		v.window.Close()
	}
	v.pool.Close()
}
