// Package board builds the frame that surrounds the terrain: a solid box with
// a through-hole the size of the terrain carved out of it.
package board

import (
	"github.com/Faultbox/procterrain/internal/engine/geometry"
	"github.com/Faultbox/procterrain/pkg/color"
	"github.com/Faultbox/procterrain/pkg/math"
)

// Config sizes the frame. The hole is taller than the box so it cuts through.
type Config struct {
	OuterSize  float64
	InnerSize  float64
	Height     float64
	HoleHeight float64
	Color      color.RGB
}

// DefaultConfig frames a 10x10 terrain with a half-unit border.
func DefaultConfig() Config {
	return Config{
		OuterSize:  11,
		InnerSize:  10,
		Height:     2,
		HoleHeight: 2.1,
		Color:      color.MustHex("#ffffff"),
	}
}

// Vertex is a frame vertex ready for GPU upload.
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
	Color    [3]float32
}

// Mesh is the frame geometry with flat-shaded faces.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
	Bounds   geometry.Bounds
}

// Build creates the frame: four top strips, four bottom strips, four outer
// walls and four inner walls.
func Build(cfg Config) *Mesh {
	o := cfg.OuterSize / 2
	i := cfg.InnerSize / 2
	h := cfg.Height / 2
	if i > o {
		i = o
	}

	m := &Mesh{Bounds: geometry.EmptyBounds()}
	col := cfg.Color.Array32()
	v := func(x, y, z float64) math.Vec3 { return math.Vec3{X: x, Y: y, Z: z} }

	for _, y := range []float64{h, -h} {
		n := v(0, y/h, 0)
		m.quad(n, col, v(-o, y, -o), v(o, y, -o), v(o, y, -i), v(-o, y, -i))
		m.quad(n, col, v(-o, y, i), v(o, y, i), v(o, y, o), v(-o, y, o))
		m.quad(n, col, v(-o, y, -i), v(-i, y, -i), v(-i, y, i), v(-o, y, i))
		m.quad(n, col, v(i, y, -i), v(o, y, -i), v(o, y, i), v(i, y, i))
	}

	// Outer walls face away from the center, inner walls face toward it.
	for _, side := range []struct {
		d, n float64
	}{{o, 1}, {i, -1}} {
		d := side.d
		m.quad(v(side.n, 0, 0), col, v(d, -h, -d), v(d, -h, d), v(d, h, d), v(d, h, -d))
		m.quad(v(-side.n, 0, 0), col, v(-d, -h, -d), v(-d, -h, d), v(-d, h, d), v(-d, h, -d))
		m.quad(v(0, 0, side.n), col, v(-d, -h, d), v(d, -h, d), v(d, h, d), v(-d, h, d))
		m.quad(v(0, 0, -side.n), col, v(-d, -h, -d), v(d, -h, -d), v(d, h, -d), v(-d, h, -d))
	}

	return m
}

// quad appends a flat quad, fixing the winding so triangles face along n.
func (m *Mesh) quad(n math.Vec3, col [3]float32, a, b, c, d math.Vec3) {
	if b.Sub(a).Cross(c.Sub(a)).Dot(n) < 0 {
		b, d = d, b
	}
	base := uint32(len(m.Vertices))
	for _, p := range []math.Vec3{a, b, c, d} {
		m.Vertices = append(m.Vertices, Vertex{Position: p.Array32(), Normal: n.Array32(), Color: col})
		m.Bounds.Extend(p)
	}
	m.Indices = append(m.Indices, base, base+1, base+2, base, base+2, base+3)
}
