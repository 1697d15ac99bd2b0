package shading

import (
	"math"

	perlin "github.com/aquilax/go-perlin"

	"github.com/lumen3d/lumen/pkg/math3d"
)

// StarConfig tunes the background starfield.
type StarConfig struct {
	CellSize float64 // grid cell edge in pixels
	Density  float64 // fraction of cells holding a star, in [0,1]
	Falloff  float64 // distance falloff steepness (k in 1/(d*k+eps))
	Power    float64 // exponent sharpening the falloff
	Twinkle  float64 // twinkle modulation depth, in [0,1]
	Tint     math3d.Vec3
}

// DefaultStarConfig returns a sparse, gently twinkling field.
func DefaultStarConfig() StarConfig {
	return StarConfig{
		CellSize: 28,
		Density:  0.18,
		Falloff:  0.9,
		Power:    2.2,
		Twinkle:  0.55,
		Tint:     math3d.V3(0.85, 0.9, 1.0),
	}
}

// hash21 maps a 2D cell id to a scalar in [0,1). Deterministic, cheap, and
// deliberately simpler than the gradient noise hash.
func hash21(x, y float64) float64 {
	h := math.Sin(x*127.1+y*311.7) * 43758.5453123
	return h - math.Floor(h)
}

// StarField evaluates the star intensity at a background pixel. One star at
// most per grid cell, jittered inside it, twinkling on a per-cell phase and
// speed. Intensity is in [0, ~1+twinkle) before compositing.
func StarField(x, y, t float64, cfg StarConfig) float64 {
	cx := math.Floor(x / cfg.CellSize)
	cy := math.Floor(y / cfg.CellSize)

	presence := hash21(cx, cy)
	if presence >= cfg.Density {
		return 0
	}

	// Jitter the star inside its cell and derive a per-cell twinkle.
	jx := hash21(cx+17.0, cy+3.0)
	jy := hash21(cx+29.0, cy+11.0)
	phase := hash21(cx+5.0, cy+43.0) * 2 * math.Pi
	speed := 0.5 + hash21(cx+61.0, cy+7.0)*2.5

	sx := (cx + jx) * cfg.CellSize
	sy := (cy + jy) * cfg.CellSize
	dx := x - sx
	dy := y - sy
	d := math.Sqrt(dx*dx + dy*dy)

	const eps = 1e-3
	fall := math.Pow(1/(d*cfg.Falloff+eps), cfg.Power)
	if fall > 1 {
		fall = 1
	}

	twinkle := 1 + cfg.Twinkle*math.Sin(t*speed+phase)
	return fall * twinkle * (presence / cfg.Density)
}

// NebulaConfig tunes the low frequency colored haze behind the stars.
type NebulaConfig struct {
	Scale     float64 // noise frequency over normalized coordinates
	Intensity float64
	Seed      int64
	ColorA    math3d.Vec3
	ColorB    math3d.Vec3
}

// DefaultNebulaConfig returns a faint violet wash.
func DefaultNebulaConfig() NebulaConfig {
	return NebulaConfig{
		Scale:     2.4,
		Intensity: 0.12,
		Seed:      7,
		ColorA:    math3d.V3(0.18, 0.05, 0.30),
		ColorB:    math3d.V3(0.03, 0.10, 0.22),
	}
}

// Nebula is the background haze sampler. Construct once and share; the
// underlying noise is read-only after construction.
type Nebula struct {
	noise *perlin.Perlin
	cfg   NebulaConfig
}

// NewNebula builds a haze sampler for the given config.
func NewNebula(cfg NebulaConfig) *Nebula {
	return &Nebula{
		noise: perlin.NewPerlin(2.0, 2.0, 3, cfg.Seed),
		cfg:   cfg,
	}
}

// Sample returns the haze color at normalized screen coordinates in [0,1].
// Time drifts the field slowly so the background breathes with the body.
func (n *Nebula) Sample(u, v, t float64) math3d.Vec3 {
	drift := t * 0.01
	raw := n.noise.Noise2D(u*n.cfg.Scale+drift, v*n.cfg.Scale-drift)
	w := math3d.Clamp01(raw*0.5 + 0.5)

	return n.cfg.ColorA.Lerp(n.cfg.ColorB, w).Scale(n.cfg.Intensity * w)
}
