package math

// Clamp limits x to [lo, hi].
func Clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// Mix linearly interpolates between a and b (GLSL mix).
func Mix(a, b, t float64) float64 {
	return a + (b-a)*t
}

// SmoothStep is the GLSL smoothstep: 0 below edge0, 1 above edge1, Hermite in between.
// A degenerate band (edge0 == edge1) behaves as a step at edge0.
func SmoothStep(edge0, edge1, x float64) float64 {
	if edge0 == edge1 {
		if x < edge0 {
			return 0
		}
		return 1
	}
	t := Clamp((x-edge0)/(edge1-edge0), 0, 1)
	return t * t * (3 - 2*t)
}
