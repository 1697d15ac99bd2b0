package shading

import (
	"math"

	"github.com/lumen3d/lumen/pkg/math3d"
)

// EnvPalette names the color regions of the procedural environment. The
// environment is a cheap stand-in for an image based map: four bands blended
// with smoothstep gates over an angular parameterization of the reflection
// vector.
type EnvPalette struct {
	Ground  math3d.Vec3
	Horizon math3d.Vec3
	Sky     math3d.Vec3
	Zenith  math3d.Vec3

	// WarmSpot is a localized bright region, a fake sun on the horizon.
	WarmSpot   math3d.Vec3
	WarmCenter float64 // angular x of the spot center in [0,1]
	WarmWidth  float64
}

// DefaultEnvPalette returns a dusk-like surround.
func DefaultEnvPalette() EnvPalette {
	return EnvPalette{
		Ground:     math3d.V3(0.05, 0.03, 0.08),
		Horizon:    math3d.V3(0.45, 0.20, 0.30),
		Sky:        math3d.V3(0.10, 0.16, 0.35),
		Zenith:     math3d.V3(0.02, 0.04, 0.12),
		WarmSpot:   math3d.V3(1.1, 0.75, 0.40),
		WarmCenter: 0.22,
		WarmWidth:  0.10,
	}
}

// SampleEnvironment maps a reflection direction to the palette. Evaluated
// identically for every fragment; nothing is cached.
func SampleEnvironment(refl math3d.Vec3, p EnvPalette) math3d.Vec3 {
	y := refl.Y*0.5 + 0.5
	x := math.Atan2(refl.Z, refl.X)/(2*math.Pi) + 0.5

	// Vertical bands: ground below the horizon, sky above, zenith on top.
	c := p.Ground.Lerp(p.Horizon, math3d.Smoothstep(0.25, 0.5, y))
	c = c.Lerp(p.Sky, math3d.Smoothstep(0.5, 0.75, y))
	c = c.Lerp(p.Zenith, math3d.Smoothstep(0.8, 1.0, y))

	// A warm spot near the horizon. Angular distance wraps at the seam.
	dx := math.Abs(x - p.WarmCenter)
	if dx > 0.5 {
		dx = 1 - dx
	}
	spot := (1 - math3d.Smoothstep(0, p.WarmWidth, dx)) *
		(1 - math3d.Smoothstep(0.35, 0.65, math.Abs(y-0.5)*2))
	return c.Lerp(p.WarmSpot, spot)
}
