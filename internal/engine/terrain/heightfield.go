package terrain

import (
	gomath "math"

	"github.com/Faultbox/procterrain/internal/noise"
	"github.com/Faultbox/procterrain/internal/params"
	"github.com/Faultbox/procterrain/pkg/math"
)

// warpOffset decorrelates the z warp sample from the x warp sample.
var warpOffset = math.Vec2{X: 31.416, Y: -47.853}

// octaves is the number of base noise layers; layer i has frequency 2^i and
// weight 1/2^(i+1), so the raw sum stays inside (-1, 1).
const octaves = 3

// Field is the height field generator. It is a pure function of position and
// the parameters it points at.
type Field struct {
	noise  noise.Source
	params *params.Terrain
}

// NewField creates a height field sampling src with p.
func NewField(src noise.Source, p *params.Terrain) *Field {
	return &Field{noise: src, params: p}
}

// Params returns the terrain parameters the field reads.
func (f *Field) Params() *params.Terrain {
	return f.params
}

// Warp distorts a planar position by a noise offset scaled by the warp strength.
func (f *Field) Warp(p math.Vec2) math.Vec2 {
	q := p.Scale(f.params.WarpFrequency)
	offset := math.Vec2{
		X: f.noise.Eval2(q.X, q.Y),
		Y: f.noise.Eval2(q.X+warpOffset.X, q.Y+warpOffset.Y),
	}
	return p.Add(offset.Scale(f.params.WarpStrength))
}

// Raw returns the layered noise at a planar position before crushing. The
// octave weights sum to 0.875.
func (f *Field) Raw(p math.Vec2) float64 {
	w := f.Warp(p)
	freq := f.params.PositionFrequency
	weight := 0.5
	var e float64
	for range octaves {
		e += f.noise.Eval2(w.X*freq, w.Y*freq) * weight
		freq *= 2
		weight /= 2
	}
	return e
}

// Elevation returns the final terrain height at a planar position.
func (f *Field) Elevation(p math.Vec2) float64 {
	return Crush(f.Raw(p), f.params.ElevationCrush) * f.params.Strength
}

// Crush compresses raw elevation asymmetrically: land is squared, sea floor is
// raised to 1+crush so basins flatten as crush grows. At crush == 1 both sides
// agree and the transform is odd-symmetric. Both branches also meet at ±1 for
// any crush; Raw stays within ±0.875 for a source in [-1,1], so that point is
// out of reach and crush != 1 stays asymmetric away from 0.
func Crush(e, crush float64) float64 {
	if e >= 0 {
		return e * e
	}
	if crush < 0 {
		crush = 0
	}
	return -gomath.Pow(-e, 1+crush)
}
