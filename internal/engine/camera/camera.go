// Package camera provides the scene's perspective camera and viewport sizing.
package camera

import (
	gomath "math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/procterrain/pkg/math"
)

// MaxPixelRatio caps the device pixel ratio to keep fill cost bounded on
// high-density displays.
const MaxPixelRatio = 2.0

// Viewport tracks the drawable size.
type Viewport struct {
	Width      int
	Height     int
	PixelRatio float64
}

// NewViewport creates a viewport for the given logical size and device pixel ratio.
func NewViewport(width, height int, dpr float64) Viewport {
	var v Viewport
	v.Resize(width, height, dpr)
	return v
}

// Resize updates the logical size and recomputes the pixel ratio.
func (v *Viewport) Resize(width, height int, dpr float64) {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	if dpr <= 0 {
		dpr = 1
	}
	v.Width = width
	v.Height = height
	v.PixelRatio = gomath.Min(dpr, MaxPixelRatio)
}

// Aspect returns width / height.
func (v Viewport) Aspect() float64 {
	return float64(v.Width) / float64(v.Height)
}

// FramebufferSize returns the drawable size in physical pixels.
func (v Viewport) FramebufferSize() (int, int) {
	return int(float64(v.Width) * v.PixelRatio), int(float64(v.Height) * v.PixelRatio)
}

// Perspective is a perspective camera orbiting a target point.
type Perspective struct {
	Position math.Vec3
	Target   math.Vec3
	FovY     float64 // degrees
	Near     float64
	Far      float64
	Aspect   float64

	MinPitch float64
	MaxPitch float64

	DragSensitivity float64
}

// NewPerspective returns the default scene camera: 35 degrees, looking at the
// origin from (-10, 6, -2).
func NewPerspective(aspect float64) *Perspective {
	return &Perspective{
		Position:        math.Vec3{X: -10, Y: 6, Z: -2},
		FovY:            35,
		Near:            0.1,
		Far:             100,
		Aspect:          aspect,
		MinPitch:        0.05,
		MaxPitch:        1.5,
		DragSensitivity: 0.005,
	}
}

// SetViewport updates the aspect ratio from a viewport.
func (c *Perspective) SetViewport(v Viewport) {
	c.Aspect = v.Aspect()
}

// ViewMatrix returns the world-to-view transform.
func (c *Perspective) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(toGL(c.Position), toGL(c.Target), mgl32.Vec3{0, 1, 0})
}

// ProjectionMatrix returns the view-to-clip transform.
func (c *Perspective) ProjectionMatrix() mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(float32(c.FovY)), float32(c.Aspect), float32(c.Near), float32(c.Far))
}

// ViewProjection returns projection * view.
func (c *Perspective) ViewProjection() mgl32.Mat4 {
	return c.ProjectionMatrix().Mul4(c.ViewMatrix())
}

// Orbit rotates the camera around its target by a mouse drag delta, keeping
// the distance and clamping the pitch.
func (c *Perspective) Orbit(deltaX, deltaY float64) {
	off := c.Position.Sub(c.Target)
	dist := off.Length()
	if dist == 0 {
		return
	}
	yaw := gomath.Atan2(off.X, off.Z) - deltaX*c.DragSensitivity
	pitch := gomath.Asin(off.Y/dist) + deltaY*c.DragSensitivity
	pitch = math.Clamp(pitch, c.MinPitch, c.MaxPitch)

	c.Position = c.Target.Add(math.Vec3{
		X: dist * gomath.Cos(pitch) * gomath.Sin(yaw),
		Y: dist * gomath.Sin(pitch),
		Z: dist * gomath.Cos(pitch) * gomath.Cos(yaw),
	})
}

func toGL(v math.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{float32(v.X), float32(v.Y), float32(v.Z)}
}
