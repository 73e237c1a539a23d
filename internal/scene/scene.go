// Package scene assembles the terrain, water, frame, light and camera, and
// advances them frame by frame.
//
// The live parameter set is edited between frames through Params. Tick copies
// it once at the start of the frame; every vertex of that frame is evaluated
// against the copy, and the terrain mesh is rebuilt only when the copy's
// terrain parameters or palette differ from the previous frame's.
package scene

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/Faultbox/procterrain/internal/assets"
	"github.com/Faultbox/procterrain/internal/engine/board"
	"github.com/Faultbox/procterrain/internal/engine/camera"
	"github.com/Faultbox/procterrain/internal/engine/geometry"
	"github.com/Faultbox/procterrain/internal/engine/lighting"
	"github.com/Faultbox/procterrain/internal/engine/terrain"
	"github.com/Faultbox/procterrain/internal/engine/water"
	"github.com/Faultbox/procterrain/internal/engine/workers"
	"github.com/Faultbox/procterrain/internal/logger"
	"github.com/Faultbox/procterrain/internal/noise"
	"github.com/Faultbox/procterrain/internal/params"
)

// Asset names understood by the scene.
const (
	AssetEnvironment = "environment"
	AssetPlane       = "plane"
)

// Config sizes the scene.
type Config struct {
	Size          float64
	Segments      int
	WaterSegments int
	Seed          int64
	Noise         noise.Kind
	Params        params.Set
}

// DefaultConfig returns the reference scene: a 10x10 terrain at 500 segments.
func DefaultConfig() Config {
	return Config{
		Size:          10,
		Segments:      500,
		WaterSegments: 128,
		Noise:         noise.Simplex,
		Params:        params.Default(),
	}
}

// Frame reports what changed during a Tick.
type Frame struct {
	Time           float64
	TerrainRebuilt bool
}

// Scene holds every renderable and the per-frame state.
type Scene struct {
	// Params is the live parameter set. Write it between Ticks only.
	Params params.Set

	Terrain *terrain.Mesh
	Water   *water.Mesh
	Board   *board.Mesh

	Sun      lighting.Sun
	Camera   *camera.Perspective
	Viewport camera.Viewport

	pool   *workers.Pool
	log    *zap.Logger
	source noise.Source

	// frame is the snapshot the fields below read.
	frame   params.Set
	field   *terrain.Field
	shader  *terrain.Shader
	waves   *water.Field
	time    float64
	rebuilt int

	assetMu     sync.Mutex
	pending     []assets.Asset
	failed      []string
	loaded      map[string]assets.Asset
	done, total int
}

// New builds the scene and its initial terrain. pool may be nil.
func New(ctx context.Context, cfg Config, pool *workers.Pool) (*Scene, error) {
	src, err := noise.New(cfg.Noise, cfg.Seed)
	if err != nil {
		return nil, fmt.Errorf("creating noise: %w", err)
	}

	vp := camera.NewViewport(1280, 720, 1)
	s := &Scene{
		Params:   cfg.Params,
		Board:    board.Build(board.DefaultConfig()),
		Sun:      lighting.DefaultSun(),
		Camera:   camera.NewPerspective(vp.Aspect()),
		Viewport: vp,
		pool:     pool,
		log:      logger.Named("scene"),
		source:   src,
		frame:    cfg.Params,
		loaded:   make(map[string]assets.Asset),
	}
	s.field = terrain.NewField(src, &s.frame.Terrain)
	s.shader = terrain.NewShader(s.field, &s.frame.Palette)
	s.waves = water.NewField(&s.frame.Water, &s.frame.Palette)

	grid := geometry.NewPlane(cfg.Size, cfg.Size, cfg.Segments, cfg.Segments)
	waterGrid := geometry.NewPlane(cfg.Size, cfg.Size, cfg.WaterSegments, cfg.WaterSegments)
	s.Water = water.BuildMesh(waterGrid, nil)

	if err := s.rebuildTerrain(ctx, grid); err != nil {
		return nil, err
	}
	if err := s.Water.Update(ctx, s.waves, 0, pool); err != nil {
		return nil, err
	}
	return s, nil
}

// Tick advances the scene to elapsed seconds. Time never moves backwards: an
// earlier reading keeps the previous time.
func (s *Scene) Tick(ctx context.Context, elapsed float64) (Frame, error) {
	if elapsed > s.time {
		s.time = elapsed
	}
	f := Frame{Time: s.time}

	snap := s.Params
	terrainChanged := snap.Terrain != s.frame.Terrain || snap.Palette != s.frame.Palette
	prev := s.frame
	s.frame = snap

	if terrainChanged {
		if err := s.rebuildTerrain(ctx, s.Terrain.Grid); err != nil {
			// The mesh still matches prev; keep it so the next Tick retries.
			s.frame = prev
			return f, err
		}
		f.TerrainRebuilt = true
	}

	if err := s.Water.Update(ctx, s.waves, s.time, s.pool); err != nil {
		return f, err
	}

	s.drainAssets()
	return f, nil
}

func (s *Scene) rebuildTerrain(ctx context.Context, grid geometry.Plane) error {
	mesh, err := terrain.BuildMesh(ctx, s.shader, grid, s.pool)
	if err != nil {
		return err
	}
	s.Terrain = mesh
	s.Water.SetFloor(terrain.Elevations(s.field, s.Water.Grid))
	s.rebuilt++

	s.log.Debug("terrain rebuilt",
		zap.Int("vertices", len(mesh.Vertices)),
		zap.Float64("min_y", mesh.Bounds.Min.Y),
		zap.Float64("max_y", mesh.Bounds.Max.Y),
	)
	return nil
}

// Time returns the scene time of the last Tick.
func (s *Scene) Time() float64 { return s.time }

// Rebuilds returns how many times the terrain mesh has been built.
func (s *Scene) Rebuilds() int { return s.rebuilt }

// Shader returns the terrain shader bound to the current frame snapshot.
func (s *Scene) Shader() *terrain.Shader { return s.shader }

// WaterField returns the water field bound to the current frame snapshot.
func (s *Scene) WaterField() *water.Field { return s.waves }

// Snapshot returns the parameter set the current frame was evaluated with.
func (s *Scene) Snapshot() params.Set { return s.frame }

// Bounds returns the box around the terrain, water and frame.
func (s *Scene) Bounds() geometry.Bounds {
	return s.Terrain.Bounds.Union(s.Board.Bounds)
}

// Resize updates the viewport and camera aspect.
func (s *Scene) Resize(width, height int, dpr float64) {
	s.Viewport.Resize(width, height, dpr)
	s.Camera.SetViewport(s.Viewport)
}
