package scene

import (
	"context"
	"errors"
	gomath "math"
	"os"
	"path/filepath"
	"testing"

	"github.com/Faultbox/procterrain/internal/assets"
	"github.com/Faultbox/procterrain/internal/engine/workers"
	"github.com/Faultbox/procterrain/internal/noise"
	"github.com/Faultbox/procterrain/pkg/color"
)

func newTestScene(t *testing.T) *Scene {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Segments = 16
	cfg.WaterSegments = 8
	cfg.Seed = 3

	pool := workers.New(2)
	t.Cleanup(pool.Close)

	s, err := New(context.Background(), cfg, pool)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s
}

func TestNew(t *testing.T) {
	s := newTestScene(t)

	if got := len(s.Terrain.Vertices); got != 17*17 {
		t.Errorf("terrain vertices = %d, want %d", got, 17*17)
	}
	if got := len(s.Water.Vertices); got != 9*9 {
		t.Errorf("water vertices = %d, want %d", got, 9*9)
	}
	if s.Rebuilds() != 1 {
		t.Errorf("rebuilds = %d, want 1", s.Rebuilds())
	}
	if s.Time() != 0 {
		t.Errorf("time = %v, want 0", s.Time())
	}
}

func TestNewUnknownNoise(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Segments = 4
	cfg.Noise = "value"
	if _, err := New(context.Background(), cfg, nil); !errors.Is(err, noise.ErrUnknownKind) {
		t.Errorf("expected ErrUnknownKind, got %v", err)
	}
}

func TestTickRebuildsOnlyOnTerrainChange(t *testing.T) {
	s := newTestScene(t)
	ctx := context.Background()

	f, err := s.Tick(ctx, 0.5)
	if err != nil {
		t.Fatal(err)
	}
	if f.TerrainRebuilt {
		t.Error("unchanged parameters rebuilt the terrain")
	}

	s.Params.Water.SmallWavesSpeed = 2
	f, _ = s.Tick(ctx, 0.6)
	if f.TerrainRebuilt {
		t.Error("water-only change rebuilt the terrain")
	}

	s.Params.Terrain.Strength = 3
	f, _ = s.Tick(ctx, 0.7)
	if !f.TerrainRebuilt {
		t.Error("terrain change did not rebuild")
	}
	if s.Snapshot().Terrain.Strength != 3 {
		t.Error("snapshot not updated")
	}

	s.Params.Palette.Grass = color.MustHex("#ff0000")
	f, _ = s.Tick(ctx, 0.8)
	if !f.TerrainRebuilt {
		t.Error("palette change did not rebuild")
	}

	if s.Rebuilds() != 3 {
		t.Errorf("rebuilds = %d, want 3", s.Rebuilds())
	}
}

func TestTickUsesSnapshot(t *testing.T) {
	s := newTestScene(t)
	ctx := context.Background()

	s.Params.Water.SmallWavesElevation = 0
	if _, err := s.Tick(ctx, 1.3); err != nil {
		t.Fatal(err)
	}

	level := float32(s.Params.Water.Level)
	for i, v := range s.Water.Vertices {
		if v.Position[1] != level {
			t.Fatalf("vertex %d y = %v, want flat level %v", i, v.Position[1], level)
		}
	}
}

func TestTickAnimatesWater(t *testing.T) {
	s := newTestScene(t)
	ctx := context.Background()

	before := make([]float32, len(s.Water.Vertices))
	for i, v := range s.Water.Vertices {
		before[i] = v.Position[1]
	}

	if _, err := s.Tick(ctx, 1.7); err != nil {
		t.Fatal(err)
	}

	moved := false
	for i, v := range s.Water.Vertices {
		if v.Position[1] != before[i] {
			moved = true
			break
		}
	}
	if !moved {
		t.Error("water did not move between frames")
	}
}

func TestTimeNeverRewinds(t *testing.T) {
	s := newTestScene(t)
	ctx := context.Background()

	for _, e := range []float64{1, 2, 0.5, 2, 3} {
		prev := s.Time()
		f, err := s.Tick(ctx, e)
		if err != nil {
			t.Fatal(err)
		}
		if f.Time < prev {
			t.Fatalf("time rewound from %v to %v", prev, f.Time)
		}
	}
	if s.Time() != 3 {
		t.Errorf("time = %v, want 3", s.Time())
	}
}

func TestTickCancelled(t *testing.T) {
	s := newTestScene(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s.Params.Terrain.WarpStrength = 0.1
	if _, err := s.Tick(ctx, 1); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestTickRetriesAfterCancelledRebuild(t *testing.T) {
	s := newTestScene(t)
	before := s.Terrain.Bounds.Max.Y
	builds := s.Rebuilds()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s.Params.Terrain.Strength = 5
	if _, err := s.Tick(ctx, 1); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if s.Snapshot().Terrain.Strength == 5 {
		t.Error("snapshot advanced past a failed rebuild")
	}
	if s.Rebuilds() != builds {
		t.Errorf("rebuilds = %d after cancelled tick, want %d", s.Rebuilds(), builds)
	}

	f, err := s.Tick(context.Background(), 2)
	if err != nil {
		t.Fatal(err)
	}
	if !f.TerrainRebuilt {
		t.Fatal("terrain not rebuilt after the cancelled tick")
	}
	if s.Snapshot().Terrain.Strength != 5 {
		t.Errorf("snapshot strength = %v, want 5", s.Snapshot().Terrain.Strength)
	}
	if after := s.Terrain.Bounds.Max.Y; after == before {
		t.Errorf("mesh max y unchanged at %v after strength change", after)
	}
}

func TestFailedAssetsDegrade(t *testing.T) {
	s := newTestScene(t)
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "sky.hdr"), []byte("hdr"), 0644); err != nil {
		t.Fatal(err)
	}

	l := assets.NewLoader(nil, s.LoaderCallbacks(), dir)
	l.Load(AssetEnvironment, "sky.hdr")
	l.Load(AssetPlane, "missing.glb")
	l.Wait()

	if _, err := s.Tick(context.Background(), 0.1); err != nil {
		t.Fatalf("Tick after failed load: %v", err)
	}

	if _, ok := s.Asset(AssetEnvironment); !ok {
		t.Error("environment not attached")
	}
	if _, ok := s.Asset(AssetPlane); ok {
		t.Error("missing plane attached")
	}
	if failed := s.FailedAssets(); len(failed) != 1 || failed[0] != AssetPlane {
		t.Errorf("failed = %v, want [plane]", failed)
	}
	if p := s.LoadProgress(); p != 1 {
		t.Errorf("progress = %v, want 1", p)
	}
}

func TestAssetStatus(t *testing.T) {
	s := newTestScene(t)
	if got := s.AssetStatus(); got != "" {
		t.Errorf("status with no requests = %q, want empty", got)
	}

	cb := s.LoaderCallbacks()
	cb.OnLoad(assets.Asset{Name: AssetPlane, Data: []byte("glb")})
	cb.OnProgress(1, 2)
	if _, err := s.Tick(context.Background(), 0.1); err != nil {
		t.Fatal(err)
	}
	if got, want := s.AssetStatus(), AssetPlane+", loading 50%"; got != want {
		t.Errorf("status = %q, want %q", got, want)
	}

	cb.OnError(AssetEnvironment, assets.ErrNotFound)
	cb.OnProgress(2, 2)
	if got, want := s.AssetStatus(), AssetPlane+", "+AssetEnvironment+" missing"; got != want {
		t.Errorf("status = %q, want %q", got, want)
	}
}

func TestResize(t *testing.T) {
	s := newTestScene(t)
	s.Resize(1000, 500, 3)
	if s.Camera.Aspect != 2 {
		t.Errorf("aspect = %v, want 2", s.Camera.Aspect)
	}
	if s.Viewport.PixelRatio != 2 {
		t.Errorf("pixel ratio = %v, want 2", s.Viewport.PixelRatio)
	}
}

func TestBoundsContainFrame(t *testing.T) {
	s := newTestScene(t)
	b := s.Bounds()
	if b.Max.X < 5.5-1e-9 || b.Min.Z > -5.5+1e-9 {
		t.Errorf("bounds %+v do not contain the frame", b)
	}
	if gomath.IsInf(b.Max.Y, 0) {
		t.Error("infinite bounds")
	}
}
