package terrain

import (
	"context"
	"fmt"

	"github.com/Faultbox/procterrain/internal/engine/geometry"
	"github.com/Faultbox/procterrain/internal/engine/workers"
	"github.com/Faultbox/procterrain/pkg/math"
)

// BuildMesh runs the color pass over every vertex of grid. Rows are evaluated
// concurrently on pool; a nil pool evaluates sequentially.
func BuildMesh(ctx context.Context, s *Shader, grid geometry.Plane, pool *workers.Pool) (*Mesh, error) {
	cols := grid.Columns()
	vertices := make([]Vertex, grid.VertexCount())

	row := func(iz int) {
		for ix := range cols {
			smp := s.Vertex(grid.Position(ix, iz))
			vertices[iz*cols+ix] = Vertex{
				Position: smp.Position.Array32(),
				Normal:   smp.Normal.Array32(),
				Color:    smp.Color.Array32(),
			}
		}
	}

	if pool == nil {
		for iz := range grid.Rows() {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			row(iz)
		}
	} else if err := pool.ForEach(ctx, grid.Rows(), row); err != nil {
		return nil, fmt.Errorf("building terrain mesh: %w", err)
	}

	bounds := geometry.EmptyBounds()
	for _, v := range vertices {
		updateBounds(&bounds, v.Position)
	}

	return &Mesh{
		Vertices: vertices,
		Indices:  grid.Indices(),
		Bounds:   bounds,
		Grid:     grid,
	}, nil
}

// Elevations samples only the height field on grid, row order. Used for
// overlays that need terrain height without colors.
func Elevations(f *Field, grid geometry.Plane) []float64 {
	out := make([]float64, 0, grid.VertexCount())
	for iz := range grid.Rows() {
		for ix := range grid.Columns() {
			out = append(out, f.Elevation(grid.Position(ix, iz).XZ()))
		}
	}
	return out
}

func updateBounds(b *geometry.Bounds, p [3]float32) {
	b.Extend(math.Vec3{X: float64(p[0]), Y: float64(p[1]), Z: float64(p[2])})
}
