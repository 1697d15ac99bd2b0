package shading

import (
	"math"

	"github.com/lumen3d/lumen/pkg/math3d"
)

// ToneMap compresses an accumulated linear color into [0,1] and applies
// gamma. This is the only place the pipeline clamps.
func ToneMap(c math3d.Vec3, mode ToneMapMode, gamma float64) math3d.Vec3 {
	switch mode {
	case ToneMapReinhard:
		c = math3d.V3(reinhard(c.X), reinhard(c.Y), reinhard(c.Z))
	default:
		c = math3d.V3(filmic(c.X), filmic(c.Y), filmic(c.Z))
	}
	if gamma > 0 && gamma != 1 {
		inv := 1 / gamma
		c = math3d.V3(math.Pow(c.X, inv), math.Pow(c.Y, inv), math.Pow(c.Z, inv))
	}
	return c.Clamp01()
}

func reinhard(x float64) float64 {
	if x < 0 {
		return 0
	}
	return x / (1 + x)
}

// filmic is the ACES approximation by Narkowicz. Soft shoulder, slight toe.
func filmic(x float64) float64 {
	if x < 0 {
		return 0
	}
	v := (x * (2.51*x + 0.03)) / (x*(2.43*x+0.59) + 0.14)
	return math3d.Clamp01(v)
}
