// Package terrain implements the procedural height field and the terrain
// shading pipeline: displacement, finite-difference normals and biome colors.
package terrain

import (
	"github.com/Faultbox/procterrain/internal/engine/geometry"
	"github.com/Faultbox/procterrain/pkg/color"
	"github.com/Faultbox/procterrain/pkg/math"
)

// Sample is the full-precision output of the color pass for one vertex.
type Sample struct {
	Position math.Vec3
	Normal   math.Vec3
	Color    color.RGB
}

// Vertex is a terrain mesh vertex ready for GPU upload.
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
	Color    [3]float32
}

// Mesh holds the complete terrain mesh.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
	Bounds   geometry.Bounds
	Grid     geometry.Plane
}

// Positions returns the vertex positions as a flat x,y,z slice, the layout the
// depth pass consumes.
func (m *Mesh) Positions() []float32 {
	out := make([]float32, 0, len(m.Vertices)*3)
	for _, v := range m.Vertices {
		out = append(out, v.Position[0], v.Position[1], v.Position[2])
	}
	return out
}
