package shadow

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/procterrain/internal/engine/geometry"
	"github.com/Faultbox/procterrain/pkg/math"
)

// FitMatrix computes a light view-projection whose orthographic volume
// encloses bounds. lightDir points from the scene toward the light.
func FitMatrix(lightDir math.Vec3, bounds geometry.Bounds) mgl32.Mat4 {
	lightDir = lightDir.Normalize()
	center := bounds.Center()
	radius := bounds.Radius()
	if radius <= 0 {
		radius = 1
	}

	// Light sits outside the bounding sphere.
	distance := radius * 2
	eye := center.Add(lightDir.Scale(distance))

	up := mgl32.Vec3{0, 1, 0}
	if lightDir.Y > 0.99 || lightDir.Y < -0.99 {
		up = mgl32.Vec3{0, 0, 1}
	}
	view := mgl32.LookAtV(vec(eye), vec(center), up)

	padding := radius * 0.1
	half := float32(radius + padding)
	far := float32(distance + radius + padding)
	proj := mgl32.Ortho(-half, half, -half, half, 0.1, far)

	return proj.Mul4(view)
}

func vec(v math.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{float32(v.X), float32(v.Y), float32(v.Z)}
}
