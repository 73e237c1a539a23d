// Package water provides the animated small-wave field and the water plane mesh.
package water

import (
	gomath "math"

	"github.com/Faultbox/procterrain/internal/params"
	"github.com/Faultbox/procterrain/pkg/color"
	"github.com/Faultbox/procterrain/pkg/math"
)

// Successive octaves are rotated by the golden angle and sped up slightly so
// the sum never repeats along a single direction.
const (
	goldenAngle   = 2.399963229728653
	frequencyStep = 0.5
	speedStep     = 0.25
)

// Depth shading: water is fully deep-colored at DeepDepth below the surface.
const (
	DeepDepth    = 0.6
	ShallowAlpha = 0.35
	DeepAlpha    = 0.85
)

// Field is the water field generator: a pure function of (position, time, parameters).
type Field struct {
	params  *params.Water
	palette *params.Palette
}

// NewField creates a water field reading p and pal.
func NewField(p *params.Water, pal *params.Palette) *Field {
	return &Field{params: p, palette: pal}
}

// Octave is one summed sine wave.
type Octave struct {
	Direction math.Vec2
	Frequency float64
	Speed     float64
	Elevation float64
}

// Octaves returns the active octaves for the current parameters.
func (f *Field) Octaves() []Octave {
	n := f.params.SmallWavesIterations
	if n < 0 {
		n = 0
	}
	if n > params.MaxWaveIterations {
		n = params.MaxWaveIterations
	}
	out := make([]Octave, n)
	for i := range out {
		k := float64(i)
		out[i] = Octave{
			Direction: math.Vec2{X: 1}.Rotate(k * goldenAngle),
			Frequency: f.params.SmallWavesFrequency * (1 + frequencyStep*k),
			Speed:     f.params.SmallWavesSpeed * (1 + speedStep*k),
			Elevation: f.params.SmallWavesElevation / (k + 1),
		}
	}
	return out
}

func (o Octave) phase(xz math.Vec2, t float64) float64 {
	return o.Direction.Dot(xz)*o.Frequency + t*o.Speed
}

// Height returns the unclamped wave displacement at xz and time t.
func (f *Field) Height(xz math.Vec2, t float64) float64 {
	var h float64
	for _, o := range f.Octaves() {
		h += o.Elevation * gomath.Sin(o.phase(xz, t))
	}
	return h
}

// Slope returns the analytic partial derivatives dh/dx and dh/dz.
func (f *Field) Slope(xz math.Vec2, t float64) (dx, dz float64) {
	for _, o := range f.Octaves() {
		c := o.Elevation * o.Frequency * gomath.Cos(o.phase(xz, t))
		dx += c * o.Direction.X
		dz += c * o.Direction.Y
	}
	return dx, dz
}

// Normal returns the unit surface normal at xz and time t.
func (f *Field) Normal(xz math.Vec2, t float64) math.Vec3 {
	dx, dz := f.Slope(xz, t)
	return math.Vec3{X: -dx, Y: 1, Z: -dz}.Normalize()
}

// Surface returns the displaced water position for a flat plane position.
func (f *Field) Surface(p math.Vec3, t float64) math.Vec3 {
	return p.WithY(f.params.Level + f.Height(p.XZ(), t))
}

// Color blends surface and deep water by depth below the surface, with
// opacity growing with depth.
func (f *Field) Color(depth float64) color.RGBA {
	k := math.SmoothStep(0, DeepDepth, depth)
	return color.RGBA{
		RGB: f.palette.WaterSurface.Mix(f.palette.WaterDeep, k).Clamp(),
		A:   math.Mix(ShallowAlpha, DeepAlpha, k),
	}
}
