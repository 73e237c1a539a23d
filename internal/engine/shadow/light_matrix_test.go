package shadow

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/procterrain/internal/engine/geometry"
	"github.com/Faultbox/procterrain/pkg/math"
)

func TestFitMatrixEnclosesBounds(t *testing.T) {
	bounds := geometry.EmptyBounds()
	bounds.Extend(math.Vec3{X: -5.5, Y: -1, Z: -5.5})
	bounds.Extend(math.Vec3{X: 5.5, Y: 1, Z: 5.5})

	dirs := []math.Vec3{
		{X: 6.25, Y: 3, Z: 4},
		{X: 0, Y: 1, Z: 0},
		{X: -1, Y: 0.2, Z: 0},
	}

	for _, dir := range dirs {
		m := FitMatrix(dir, bounds)
		for _, x := range []float32{-5.5, 5.5} {
			for _, y := range []float32{-1, 1} {
				for _, z := range []float32{-5.5, 5.5} {
					p := m.Mul4x1(mgl32.Vec4{x, y, z, 1})
					for i := 0; i < 3; i++ {
						if p[i] < -1 || p[i] > 1 {
							t.Errorf("dir %v: corner (%v,%v,%v) outside volume: %v", dir, x, y, z, p)
						}
					}
				}
			}
		}
	}
}

func TestFitMatrixEmptyBounds(t *testing.T) {
	b := geometry.Bounds{}
	m := FitMatrix(math.Vec3{Y: 1}, b)
	p := m.Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	if p.W() == 0 {
		t.Fatal("degenerate matrix")
	}
}
