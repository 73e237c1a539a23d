// Package geometry builds flat vertex grids and bounding boxes for the scene meshes.
package geometry

import (
	gomath "math"

	"github.com/Faultbox/procterrain/pkg/math"
)

// Plane is a horizontal grid in the XZ plane centered on the origin, laid out
// row by row from -z to +z and, within a row, from -x to +x.
type Plane struct {
	Width     float64
	Depth     float64
	SegmentsX int
	SegmentsZ int
}

// NewPlane creates a plane with at least one segment per axis.
func NewPlane(width, depth float64, segX, segZ int) Plane {
	if segX < 1 {
		segX = 1
	}
	if segZ < 1 {
		segZ = 1
	}
	return Plane{Width: width, Depth: depth, SegmentsX: segX, SegmentsZ: segZ}
}

// Columns returns the number of vertices per row.
func (p Plane) Columns() int { return p.SegmentsX + 1 }

// Rows returns the number of vertex rows.
func (p Plane) Rows() int { return p.SegmentsZ + 1 }

// VertexCount returns the total number of grid vertices.
func (p Plane) VertexCount() int { return p.Columns() * p.Rows() }

// Position returns the flat (y = 0) position of the vertex at column ix, row iz.
func (p Plane) Position(ix, iz int) math.Vec3 {
	return math.Vec3{
		X: float64(ix)*p.Width/float64(p.SegmentsX) - p.Width/2,
		Z: float64(iz)*p.Depth/float64(p.SegmentsZ) - p.Depth/2,
	}
}

// Positions returns every flat vertex position in row order.
func (p Plane) Positions() []math.Vec3 {
	out := make([]math.Vec3, 0, p.VertexCount())
	for iz := range p.Rows() {
		for ix := range p.Columns() {
			out = append(out, p.Position(ix, iz))
		}
	}
	return out
}

// Indices returns two counter-clockwise (viewed from +y) triangles per cell.
func (p Plane) Indices() []uint32 {
	cols := uint32(p.Columns())
	out := make([]uint32, 0, p.SegmentsX*p.SegmentsZ*6)
	for iz := range uint32(p.SegmentsZ) {
		for ix := range uint32(p.SegmentsX) {
			a := ix + cols*iz
			b := ix + cols*(iz+1)
			c := ix + 1 + cols*(iz+1)
			d := ix + 1 + cols*iz
			out = append(out, a, b, d, b, c, d)
		}
	}
	return out
}

// Bounds is an axis-aligned bounding box.
type Bounds struct {
	Min math.Vec3
	Max math.Vec3
}

// EmptyBounds returns bounds that any point will expand.
func EmptyBounds() Bounds {
	inf := gomath.Inf(1)
	return Bounds{
		Min: math.Vec3{X: inf, Y: inf, Z: inf},
		Max: math.Vec3{X: -inf, Y: -inf, Z: -inf},
	}
}

// Extend grows b to contain p.
func (b *Bounds) Extend(p math.Vec3) {
	b.Min = math.Vec3{X: gomath.Min(b.Min.X, p.X), Y: gomath.Min(b.Min.Y, p.Y), Z: gomath.Min(b.Min.Z, p.Z)}
	b.Max = math.Vec3{X: gomath.Max(b.Max.X, p.X), Y: gomath.Max(b.Max.Y, p.Y), Z: gomath.Max(b.Max.Z, p.Z)}
}

// Union returns the box containing both b and other.
func (b Bounds) Union(other Bounds) Bounds {
	b.Extend(other.Min)
	b.Extend(other.Max)
	return b
}

// Center returns the center point.
func (b Bounds) Center() math.Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Radius returns the distance from center to corner (half-diagonal).
func (b Bounds) Radius() float64 {
	return b.Max.Sub(b.Min).Length() / 2
}

// Contains reports whether p lies inside b (inclusive).
func (b Bounds) Contains(p math.Vec3) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}
