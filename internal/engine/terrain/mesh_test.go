package terrain

import (
	"context"
	"errors"
	"testing"

	"github.com/Faultbox/procterrain/internal/engine/geometry"
	"github.com/Faultbox/procterrain/internal/engine/workers"
	"github.com/Faultbox/procterrain/internal/noise"
	"github.com/Faultbox/procterrain/internal/params"
)

func TestBuildMeshParallelMatchesSequential(t *testing.T) {
	s, _ := newTestShader(noise.NewSimplex(testSeed), params.Default().Terrain)
	grid := geometry.NewPlane(10, 10, 32, 32)

	seq, err := BuildMesh(context.Background(), s, grid, nil)
	if err != nil {
		t.Fatalf("sequential build failed: %v", err)
	}

	pool := workers.New(4)
	defer pool.Close()
	par, err := BuildMesh(context.Background(), s, grid, pool)
	if err != nil {
		t.Fatalf("parallel build failed: %v", err)
	}

	if len(seq.Vertices) != 33*33 {
		t.Fatalf("expected %d vertices, got %d", 33*33, len(seq.Vertices))
	}
	for i := range seq.Vertices {
		if seq.Vertices[i] != par.Vertices[i] {
			t.Fatalf("vertex %d differs: %+v vs %+v", i, seq.Vertices[i], par.Vertices[i])
		}
	}
	if len(par.Indices) != 32*32*6 {
		t.Errorf("expected %d indices, got %d", 32*32*6, len(par.Indices))
	}
	if seq.Bounds != par.Bounds {
		t.Errorf("bounds differ: %+v vs %+v", seq.Bounds, par.Bounds)
	}
}

func TestBuildMeshBounds(t *testing.T) {
	s, _ := newTestShader(noise.NewSimplex(testSeed), params.Default().Terrain)
	m, err := BuildMesh(context.Background(), s, geometry.NewPlane(10, 10, 8, 8), nil)
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if m.Bounds.Min.X != -5 || m.Bounds.Max.Z != 5 {
		t.Errorf("unexpected bounds %+v", m.Bounds)
	}
	if got := len(m.Positions()); got != len(m.Vertices)*3 {
		t.Errorf("Positions() length = %d, want %d", got, len(m.Vertices)*3)
	}
}

func TestBuildMeshCancelled(t *testing.T) {
	s, _ := newTestShader(noise.NewSimplex(testSeed), params.Default().Terrain)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := BuildMesh(ctx, s, geometry.NewPlane(1, 1, 4, 4), nil); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestElevationsMatchMesh(t *testing.T) {
	s, _ := newTestShader(noise.NewSimplex(testSeed), params.Default().Terrain)
	grid := geometry.NewPlane(4, 4, 5, 5)
	m, _ := BuildMesh(context.Background(), s, grid, nil)

	for i, e := range Elevations(s.Field(), grid) {
		if float32(e) != m.Vertices[i].Position[1] {
			t.Fatalf("elevation %d = %v, mesh y = %v", i, e, m.Vertices[i].Position[1])
		}
	}
}
