package geometry

import (
	"testing"

	"github.com/Faultbox/procterrain/pkg/math"
)

func TestPlaneLayout(t *testing.T) {
	p := NewPlane(10, 10, 4, 2)

	if got := p.VertexCount(); got != 15 {
		t.Fatalf("expected 15 vertices, got %d", got)
	}

	pos := p.Positions()
	if pos[0] != (math.Vec3{X: -5, Z: -5}) {
		t.Errorf("first vertex = %v, want (-5, 0, -5)", pos[0])
	}
	if last := pos[len(pos)-1]; last != (math.Vec3{X: 5, Z: 5}) {
		t.Errorf("last vertex = %v, want (5, 0, 5)", last)
	}
	if pos[1].X != -2.5 {
		t.Errorf("second vertex x = %v, want -2.5", pos[1].X)
	}
}

func TestPlaneIndicesFaceUp(t *testing.T) {
	p := NewPlane(2, 2, 3, 3)
	pos := p.Positions()
	idx := p.Indices()

	if len(idx) != 3*3*6 {
		t.Fatalf("expected %d indices, got %d", 3*3*6, len(idx))
	}
	for i := 0; i < len(idx); i += 3 {
		a, b, c := pos[idx[i]], pos[idx[i+1]], pos[idx[i+2]]
		n := b.Sub(a).Cross(c.Sub(a))
		if n.Y <= 0 {
			t.Fatalf("triangle %d faces down: normal %v", i/3, n)
		}
	}
}

func TestNewPlaneMinimumSegments(t *testing.T) {
	p := NewPlane(1, 1, 0, -2)
	if p.SegmentsX != 1 || p.SegmentsZ != 1 {
		t.Errorf("expected 1x1 segments, got %dx%d", p.SegmentsX, p.SegmentsZ)
	}
}

func TestBounds(t *testing.T) {
	b := EmptyBounds()
	b.Extend(math.Vec3{X: -1, Y: 2, Z: 3})
	b.Extend(math.Vec3{X: 1, Y: -2, Z: -3})

	if b.Center() != (math.Vec3{}) {
		t.Errorf("center = %v, want origin", b.Center())
	}
	if !b.Contains(math.Vec3{X: 0.5, Y: 1, Z: -1}) {
		t.Error("expected point inside bounds")
	}
	if b.Contains(math.Vec3{X: 2}) {
		t.Error("expected point outside bounds")
	}
	u := b.Union(Bounds{Min: math.Vec3{X: 5, Y: 5, Z: 5}, Max: math.Vec3{X: 6, Y: 6, Z: 6}})
	if u.Max.X != 6 || u.Min.X != -1 {
		t.Errorf("union = %+v", u)
	}
}
