package water

import (
	"context"
	"fmt"

	"github.com/Faultbox/procterrain/internal/engine/geometry"
	"github.com/Faultbox/procterrain/internal/engine/workers"
	"github.com/Faultbox/procterrain/pkg/math"
)

// Vertex is a water vertex ready for GPU upload.
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
	Color    [4]float32
}

// Mesh is the water plane. Vertices are rewritten in place every frame; the
// index buffer never changes.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
	Grid     geometry.Plane

	flat  []math.Vec3
	floor []float64
}

// BuildMesh creates a flat water mesh over grid. floor holds the terrain
// elevation under each grid vertex (row order) and may be nil for infinitely
// deep water.
func BuildMesh(grid geometry.Plane, floor []float64) *Mesh {
	m := &Mesh{
		Vertices: make([]Vertex, grid.VertexCount()),
		Indices:  grid.Indices(),
		Grid:     grid,
		flat:     grid.Positions(),
	}
	m.SetFloor(floor)
	return m
}

// SetFloor replaces the terrain elevations used for depth shading.
func (m *Mesh) SetFloor(floor []float64) {
	if len(floor) != len(m.flat) {
		floor = nil
	}
	m.floor = floor
}

// Update re-evaluates every vertex at time t. Rows run on pool when non-nil.
func (m *Mesh) Update(ctx context.Context, f *Field, t float64, pool *workers.Pool) error {
	cols := m.Grid.Columns()
	row := func(iz int) {
		for ix := range cols {
			i := iz*cols + ix
			p := f.Surface(m.flat[i], t)
			n := f.Normal(p.XZ(), t)

			depth := DeepDepth
			if m.floor != nil {
				depth = p.Y - m.floor[i]
			}
			c := f.Color(depth)

			m.Vertices[i] = Vertex{
				Position: p.Array32(),
				Normal:   n.Array32(),
				Color:    [4]float32{float32(c.R), float32(c.G), float32(c.B), float32(c.A)},
			}
		}
	}

	if pool == nil {
		for iz := range m.Grid.Rows() {
			row(iz)
		}
		return nil
	}
	if err := pool.ForEach(ctx, m.Grid.Rows(), row); err != nil {
		return fmt.Errorf("updating water mesh: %w", err)
	}
	return nil
}
