// Package lighting provides the scene's directional sun light.
package lighting

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/procterrain/pkg/color"
	"github.com/Faultbox/procterrain/pkg/math"
)

// Ambient is the flat term added to every lit surface so faces turned away
// from the sun are not black.
const Ambient = 0.35

// Sun is a directional light. Position only sets the incoming direction; the
// light shines from Position toward Target.
type Sun struct {
	Position  math.Vec3
	Target    math.Vec3
	Color     color.RGB
	Intensity float64
	Shadow    ShadowCamera
}

// DefaultSun returns the scene's white sun at (6.25, 3, 4) with intensity 2.
func DefaultSun() Sun {
	return Sun{
		Position:  math.Vec3{X: 6.25, Y: 3, Z: 4},
		Color:     color.RGB{R: 1, G: 1, B: 1},
		Intensity: 2,
		Shadow:    DefaultShadowCamera(),
	}
}

// Direction returns the unit vector from the surface toward the light.
func (s Sun) Direction() math.Vec3 {
	return s.Position.Sub(s.Target).Normalize()
}

// Lambert returns the diffuse factor for a surface normal, including the
// ambient floor. The result is in [Ambient, Ambient+Intensity].
func (s Sun) Lambert(n math.Vec3) float64 {
	d := n.Dot(s.Direction())
	if d < 0 {
		d = 0
	}
	return Ambient + d*s.Intensity
}

// Shade lights a base color and clamps the result to [0,1].
func (s Sun) Shade(base color.RGB, n math.Vec3) color.RGB {
	k := s.Lambert(n)
	return color.RGB{
		R: base.R * s.Color.R * k,
		G: base.G * s.Color.G * k,
		B: base.B * s.Color.B * k,
	}.Clamp()
}

// ShadowCamera is the orthographic volume rendered into the shadow map.
type ShadowCamera struct {
	HalfExtent float64
	Near       float64
	Far        float64
	MapSize    int32
}

// DefaultShadowCamera covers the board with a ±8 unit box and a 1024 map.
func DefaultShadowCamera() ShadowCamera {
	return ShadowCamera{
		HalfExtent: 8,
		Near:       0.1,
		Far:        30,
		MapSize:    1024,
	}
}

// Matrix returns the light's view-projection for the shadow pass.
func (s Sun) Matrix() mgl32.Mat4 {
	up := mgl32.Vec3{0, 1, 0}
	if d := s.Direction(); d.Y > 0.99 || d.Y < -0.99 {
		up = mgl32.Vec3{0, 0, 1}
	}
	view := mgl32.LookAtV(toGL(s.Position), toGL(s.Target), up)
	e := float32(s.Shadow.HalfExtent)
	proj := mgl32.Ortho(-e, e, -e, e, float32(s.Shadow.Near), float32(s.Shadow.Far))
	return proj.Mul4(view)
}

// DirectionArray returns Direction as a GL uniform value.
func (s Sun) DirectionArray() [3]float32 {
	return s.Direction().Array32()
}

func toGL(v math.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{float32(v.X), float32(v.Y), float32(v.Z)}
}
