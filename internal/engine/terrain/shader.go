package terrain

import (
	"github.com/Faultbox/procterrain/internal/params"
	"github.com/Faultbox/procterrain/pkg/color"
	"github.com/Faultbox/procterrain/pkg/math"
)

// Epsilon is the finite-difference step for normal estimation, in world units.
const Epsilon = 0.01

// Biome band constants. Elevations are in world units after crush and strength.
const (
	DeepWaterLevel    = -1.0
	SurfaceWaterLevel = -0.1
	SandLevel         = -0.1
	GrassLevel        = -0.06
	BandBlend         = 0.02

	RockSteepness = 0.2
	RockBlend     = 0.05

	SnowLevel     = 0.45
	SnowJitter    = 0.1
	SnowFrequency = 15.0
	SnowBlend     = 0.05
)

// Shader evaluates displaced position, normal and biome color for terrain vertices.
type Shader struct {
	field   *Field
	palette *params.Palette
}

// NewShader creates a terrain shader.
func NewShader(field *Field, palette *params.Palette) *Shader {
	return &Shader{field: field, palette: palette}
}

// Field returns the height field the shader samples.
func (s *Shader) Field() *Field {
	return s.field
}

// Displace replaces the vertical coordinate with the height field. Both the
// color pass and the depth pass go through here.
func (s *Shader) Displace(p math.Vec3) math.Vec3 {
	return p.WithY(s.field.Elevation(p.XZ()))
}

// Normal estimates the surface normal at p by central differences.
func (s *Shader) Normal(p math.Vec3) math.Vec3 {
	elev := func(x, z float64) float64 {
		return s.field.Elevation(math.Vec2{X: x, Y: z})
	}
	left := elev(p.X-Epsilon, p.Z)
	right := elev(p.X+Epsilon, p.Z)
	front := elev(p.X, p.Z+Epsilon)
	back := elev(p.X, p.Z-Epsilon)

	tangentX := math.Vec3{X: 2 * Epsilon, Y: right - left}
	tangentZ := math.Vec3{Y: back - front, Z: -2 * Epsilon}
	return tangentX.Cross(tangentZ).Normalize()
}

// Steepness is 0 for flat ground and 1 for a vertical wall.
func Steepness(n math.Vec3) float64 {
	return 1 - n.Dot(math.Up)
}

// Color blends the biome stops for a displaced position with normal n.
func (s *Shader) Color(p, n math.Vec3) color.RGB {
	pal := s.palette
	y := p.Y

	c := pal.WaterDeep.Mix(pal.WaterSurface, math.SmoothStep(DeepWaterLevel, SurfaceWaterLevel, y))
	c = c.Mix(pal.Sand, band(SandLevel, BandBlend, y))

	land := band(GrassLevel, BandBlend, y)
	c = c.Mix(pal.Grass, land)
	c = c.Mix(pal.Rock, band(RockSteepness, RockBlend, Steepness(n))*land)

	snowLine := SnowLevel + s.field.noise.Eval2(p.X*SnowFrequency, p.Z*SnowFrequency)*SnowJitter
	c = c.Mix(pal.Snow, band(snowLine, SnowBlend, y))

	return c.Clamp()
}

// Vertex runs the color pass for a flat grid position.
func (s *Shader) Vertex(p math.Vec3) Sample {
	pos := s.Displace(p)
	n := s.Normal(pos)
	return Sample{Position: pos, Normal: n, Color: s.Color(pos, n)}
}

// DepthVertex runs the depth pass: position only.
func (s *Shader) DepthVertex(p math.Vec3) math.Vec3 {
	return s.Displace(p)
}

// band is a smooth step centered on edge with half-width blend.
func band(edge, blend, x float64) float64 {
	return math.SmoothStep(edge-blend, edge+blend, x)
}
