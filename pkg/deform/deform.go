// Package deform displaces rest geometry along its normals with layered
// 4D noise and a periodic sway, producing the liquid surface motion.
//
// Every displacement is a pure function of (rest vertex, time, params):
// there is no per-frame state, so vertices can be processed in any order or
// in parallel with identical results.
package deform

import (
	"math"
	"runtime"
	"sync"

	"github.com/lumen3d/lumen/pkg/math3d"
	"github.com/lumen3d/lumen/pkg/mesh"
	"github.com/lumen3d/lumen/pkg/noise"
)

// Params configures the displacement field. The defaults encode the tuned
// "viscous liquid" look; all of them are externally overridable.
type Params struct {
	// Amplitude scales the final displacement. Zero disables deformation
	// entirely (positions pass through bit-exact).
	Amplitude float64

	// SpatialScale is the base noise frequency over rest positions.
	SpatialScale float64

	// Squash compresses the noise domain per axis before sampling, which
	// stretches features along the surface (values < 1 elongate).
	Squash math3d.Vec3

	// TimeScale is the rate the 4th noise coordinate advances; lower reads
	// as a thicker, slower liquid.
	TimeScale float64

	// DetailWeight blends in a second, doubled-frequency noise pass.
	DetailWeight float64

	// SwayWeight blends in the closed-form sine sway.
	SwayWeight float64

	// BiasMin/BiasMax clamp the vertical pole bias so displacement cannot
	// run away at the poles.
	BiasMin float64
	BiasMax float64
}

// DefaultParams returns the tuned liquid motion parameters.
func DefaultParams() Params {
	return Params{
		Amplitude:    0.22,
		SpatialScale: 1.1,
		Squash:       math3d.V3(1, 0.8, 1),
		TimeScale:    0.35,
		DetailWeight: 0.35,
		SwayWeight:   0.18,
		BiasMin:      0.55,
		BiasMax:      1.35,
	}
}

// Displaced is the per-frame result for one vertex: the moved position and
// the scalar displacement that moved it (consumed later by shading for
// depth/zone effects). It is derived fresh every frame and never mutated.
type Displaced struct {
	Position     math3d.Vec3
	Displacement float64
}

// bias computes the position-dependent weighting of the displacement:
// heavier toward the top pole, compressed near both poles, clamped to the
// configured range.
func bias(rest math3d.Vec3, p Params) float64 {
	// Vertical bias: the body hangs, so the upper half moves more.
	vertical := 1 + 0.5*rest.Y

	// Horizontal compression near the poles keeps the silhouette stable.
	horiz := math.Sqrt(rest.X*rest.X + rest.Z*rest.Z)
	polar := 0.6 + 0.4*math3d.Smoothstep(0, 0.35, horiz)

	return math3d.Clamp(vertical*polar, p.BiasMin, p.BiasMax)
}

// sway is a small closed-form breathing term: sums of sines at unrelated
// frequencies and phases over time and position.
func sway(rest math3d.Vec3, t float64) float64 {
	return 0.5*math.Sin(t*0.9+rest.Y*3.1) +
		0.3*math.Sin(t*1.7+rest.X*2.3+1.3) +
		0.2*math.Sin(t*0.4+rest.Z*4.7+2.9)
}

// Displace computes the displaced position for one rest vertex at time t.
func Displace(v mesh.Vertex, t float64, p Params) Displaced {
	if p.Amplitude == 0 {
		return Displaced{Position: v.Position}
	}

	sample := v.Position.Mul(p.Squash).Scale(p.SpatialScale)
	tt := t * p.TimeScale

	// Coarse motion plus a finer detail pass at double frequency.
	d := noise.Simplex4(math3d.V4FromV3(sample, tt))
	if p.DetailWeight != 0 {
		d += p.DetailWeight * noise.Simplex4(math3d.V4FromV3(sample.Scale(2), tt*1.6))
	}
	if p.SwayWeight != 0 {
		d += p.SwayWeight * sway(v.Position, t)
	}

	disp := d * p.Amplitude * bias(v.Position, p)
	return Displaced{
		Position:     v.Position.Add(v.Normal.Scale(disp)),
		Displacement: disp,
	}
}

// MaxDisplacement returns the bound |displacement| can never exceed:
// amplitude × max bias × the summed weights of all terms. Each noise term
// contributes at most 1 because Simplex4 clamps its output, and the sine
// sway's coefficients sum to 1.
func MaxDisplacement(p Params) float64 {
	terms := 1.0 + math.Abs(p.DetailWeight) + math.Abs(p.SwayWeight)
	return math.Abs(p.Amplitude) * p.BiasMax * terms
}

// Apply displaces every vertex of m at time t and recomputes smooth
// normals from the displaced neighborhood. Vertices are fanned out over
// the available CPUs; each output slot is written exactly once, so no
// locking is needed.
func Apply(m *mesh.Mesh, t float64, p Params) ([]Displaced, []math3d.Vec3) {
	out := make([]Displaced, len(m.Vertices))

	workers := runtime.GOMAXPROCS(0)
	if workers > len(m.Vertices) {
		workers = 1
	}

	var wg sync.WaitGroup
	chunk := (len(m.Vertices) + workers - 1) / workers
	for w := 0; w < workers; w++ {
		lo := w * chunk
		hi := min(lo+chunk, len(m.Vertices))
		if lo >= hi {
			break
		}
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			for i := lo; i < hi; i++ {
				out[i] = Displace(m.Vertices[i], t, p)
			}
		}(lo, hi)
	}
	wg.Wait()

	positions := make([]math3d.Vec3, len(out))
	for i := range out {
		positions[i] = out[i].Position
	}
	return out, m.SmoothNormals(positions)
}
