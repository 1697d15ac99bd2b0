package math3d

import "math"

// Scalar helpers shared by the deformation and shading code. These mirror
// the usual GLSL intrinsics so the shading math reads close to its source.

// Clamp restricts x to [lo, hi].
func Clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// Clamp01 restricts x to [0, 1].
func Clamp01(x float64) float64 {
	return Clamp(x, 0, 1)
}

// Mix linearly interpolates between a and b by t.
func Mix(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Step returns 0 when x < edge, 1 otherwise.
func Step(edge, x float64) float64 {
	if x < edge {
		return 0
	}
	return 1
}

// Smoothstep performs Hermite interpolation between e0 and e1.
// Returns 0 below e0, 1 above e1, and a smooth S-curve in between.
func Smoothstep(e0, e1, x float64) float64 {
	t := Clamp01((x - e0) / (e1 - e0))
	return t * t * (3 - 2*t)
}

// Fract returns the fractional part of x (always in [0, 1)).
func Fract(x float64) float64 {
	return x - math.Floor(x)
}
