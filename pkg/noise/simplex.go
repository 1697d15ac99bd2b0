// Package noise implements deterministic simplex-style gradient noise.
//
// The permutation is pure arithmetic (multiply-add-mod chains over a period
// of 289) rather than a shuffled lookup table, so the field is a stateless
// function of its input: the same coordinate always hashes to the same
// gradient. Outputs are continuous and lie in [-1, 1].
package noise

import (
	"math"

	"github.com/lumen3d/lumen/pkg/math3d"
)

// Skew/unskew factors per dimension.
const (
	f3 = 1.0 / 3.0
	g3 = 1.0 / 6.0

	f4 = 0.309016994374947451 // (sqrt(5) - 1) / 4
	g4 = 0.138196601125010504 // (5 - sqrt(5)) / 20
)

// Kernel radius and the per-dimension normalization that brings the summed
// corner contributions into [-1, 1]. The constants differ between the 3D
// and 4D variants; swapping them changes the output amplitude.
const (
	kernelRadius = 0.6
	norm3        = 42.0
	norm4        = 49.0
)

// mod289 uses true division, not a reciprocal multiply: for exact multiples
// of the modulus the reciprocal product rounds just below the integer, the
// floor comes out one short, and the result lands on the modulus itself.
func mod289(x float64) float64 {
	return x - math.Floor(x/289.0)*289.0
}

// permute hashes a lattice coordinate into [0, 289).
func permute(x float64) float64 {
	return mod289((x*34.0 + 1.0) * x)
}

// taylorInvSqrt approximates 1/sqrt(r) near r=1, used to cheaply normalize
// gradient vectors.
func taylorInvSqrt(r float64) float64 {
	return 1.79284291400159 - 0.85373472095314*r
}

// step is the non-strict comparison used for corner ordering: 1 when
// x >= edge. At exact lattice points all offsets compare equal and the
// traversal degrades to a fixed order instead of a degenerate simplex.
func step(edge, x float64) float64 {
	if x < edge {
		return 0
	}
	return 1
}

// grad3 maps a hash in [0, 289) to one of 49 gradient directions on a ring
// around the cube, scaled to unit-ish length.
func grad3(hash float64) math3d.Vec3 {
	// True division, same as mod289: hash*(1.0/49.0) misrounds at exact
	// multiples of 49 and would select an out-of-family gradient.
	j := hash - 49.0*math.Floor(hash/49.0)

	xf := math.Floor(j / 7.0)
	yf := math.Floor(j - 7.0*xf)

	x := xf*(2.0/7.0) - 13.0/14.0
	y := yf*(2.0/7.0) - 13.0/14.0
	h := 1.0 - math.Abs(x) - math.Abs(y)

	sx := math.Floor(x)*2.0 + 1.0
	sy := math.Floor(y)*2.0 + 1.0
	sh := -step(h, 0)

	g := math3d.V3(x+sx*sh, y+sy*sh, h)
	return g.Scale(taylorInvSqrt(g.Dot(g)))
}

// Simplex3 evaluates 3D simplex noise at p. Deterministic, continuous, and
// in [-1, 1]: the approximate gradient normalization lets the raw sum
// overshoot by a few percent at rare corner alignments, so the result is
// clamped to the documented range.
func Simplex3(p math3d.Vec3) float64 {
	// Skew into simplex space and find the base lattice point.
	s := (p.X + p.Y + p.Z) * f3
	i := math.Floor(p.X + s)
	j := math.Floor(p.Y + s)
	k := math.Floor(p.Z + s)

	t := (i + j + k) * g3
	x0 := p.X - i + t
	y0 := p.Y - j + t
	z0 := p.Z - k + t

	// Rank the fractional offsets to pick the traversal order of the
	// simplex corners.
	gx := step(y0, x0)
	gy := step(z0, y0)
	gz := step(x0, z0)
	lx := 1 - gx
	ly := 1 - gy
	lz := 1 - gz

	i1x, i1y, i1z := math.Min(gx, lz), math.Min(gy, lx), math.Min(gz, ly)
	i2x, i2y, i2z := math.Max(gx, lz), math.Max(gy, lx), math.Max(gz, ly)

	// Offsets to the remaining three corners in unskewed space.
	x1, y1, z1 := x0-i1x+g3, y0-i1y+g3, z0-i1z+g3
	x2, y2, z2 := x0-i2x+2*g3, y0-i2y+2*g3, z0-i2z+2*g3
	x3, y3, z3 := x0-1+3*g3, y0-1+3*g3, z0-1+3*g3

	// Wrap lattice coordinates so hashed indices stay in range.
	i = mod289(i)
	j = mod289(j)
	k = mod289(k)

	p0 := permute(permute(permute(k)+j) + i)
	p1 := permute(permute(permute(k+i1z)+j+i1y) + i + i1x)
	p2 := permute(permute(permute(k+i2z)+j+i2y) + i + i2x)
	p3 := permute(permute(permute(k+1)+j+1) + i + 1)

	var n float64
	n += corner3(p0, x0, y0, z0)
	n += corner3(p1, x1, y1, z1)
	n += corner3(p2, x2, y2, z2)
	n += corner3(p3, x3, y3, z3)

	return math3d.Clamp(norm3*n, -1, 1)
}

// corner3 computes one corner's contribution: max(0.6 - d², 0)⁴ · (g · off).
func corner3(hash, x, y, z float64) float64 {
	m := kernelRadius - (x*x + y*y + z*z)
	if m <= 0 {
		return 0
	}
	m *= m
	g := grad3(hash)
	return m * m * (g.X*x + g.Y*y + g.Z*z)
}

// grad4 maps a hash to a gradient direction in 4D.
func grad4(hash float64) math3d.Vec4 {
	x := math.Floor(math3d.Fract(hash/294.0)*7.0)/7.0 - 1.0
	y := math.Floor(math3d.Fract(hash/49.0)*7.0)/7.0 - 1.0
	z := math.Floor(math3d.Fract(hash/7.0)*7.0)/7.0 - 1.0
	w := 1.5 - math.Abs(x) - math.Abs(y) - math.Abs(z)

	if w < 0 {
		// Fold the out-of-range corner back onto the cross-polytope.
		x += sign01(x)
		y += sign01(y)
		z += sign01(z)
	}

	g := math3d.V4(x, y, z, w)
	return g.Scale(taylorInvSqrt(g.Dot(g)))
}

// sign01 returns +1 for negative values and -1 otherwise (the fold
// direction used by grad4).
func sign01(v float64) float64 {
	if v < 0 {
		return 1
	}
	return -1
}

// Simplex4 evaluates 4D simplex noise at p. The fourth coordinate is
// typically time, so a spatial field can evolve without looping. Clamped to
// [-1, 1] like Simplex3; downstream amplitude bounds rely on that.
func Simplex4(p math3d.Vec4) float64 {
	s := (p.X + p.Y + p.Z + p.W) * f4
	i := math.Floor(p.X + s)
	j := math.Floor(p.Y + s)
	k := math.Floor(p.Z + s)
	l := math.Floor(p.W + s)

	t := (i + j + k + l) * g4
	x0 := p.X - i + t
	y0 := p.Y - j + t
	z0 := p.Z - k + t
	w0 := p.W - l + t

	// Rank each component against the others; the rank determines in which
	// of the 24 possible orders the five corners are visited.
	rankX := step(y0, x0) + step(z0, x0) + step(w0, x0)
	rankY := 1 - step(y0, x0) + step(z0, y0) + step(w0, y0)
	rankZ := 1 - step(z0, x0) + 1 - step(z0, y0) + step(w0, z0)
	rankW := 1 - step(w0, x0) + 1 - step(w0, y0) + 1 - step(w0, z0)

	i1x, i1y, i1z, i1w := clamp01(rankX-2), clamp01(rankY-2), clamp01(rankZ-2), clamp01(rankW-2)
	i2x, i2y, i2z, i2w := clamp01(rankX-1), clamp01(rankY-1), clamp01(rankZ-1), clamp01(rankW-1)
	i3x, i3y, i3z, i3w := clamp01(rankX), clamp01(rankY), clamp01(rankZ), clamp01(rankW)

	x1, y1, z1, w1 := x0-i1x+g4, y0-i1y+g4, z0-i1z+g4, w0-i1w+g4
	x2, y2, z2, w2 := x0-i2x+2*g4, y0-i2y+2*g4, z0-i2z+2*g4, w0-i2w+2*g4
	x3, y3, z3, w3 := x0-i3x+3*g4, y0-i3y+3*g4, z0-i3z+3*g4, w0-i3w+3*g4
	x4, y4, z4, w4 := x0-1+4*g4, y0-1+4*g4, z0-1+4*g4, w0-1+4*g4

	i = mod289(i)
	j = mod289(j)
	k = mod289(k)
	l = mod289(l)

	j0 := permute(permute(permute(permute(l)+k)+j) + i)
	j1 := permute(permute(permute(permute(l+i1w)+k+i1z)+j+i1y) + i + i1x)
	j2 := permute(permute(permute(permute(l+i2w)+k+i2z)+j+i2y) + i + i2x)
	j3 := permute(permute(permute(permute(l+i3w)+k+i3z)+j+i3y) + i + i3x)
	j4 := permute(permute(permute(permute(l+1)+k+1)+j+1) + i + 1)

	var n float64
	n += corner4(j0, x0, y0, z0, w0)
	n += corner4(j1, x1, y1, z1, w1)
	n += corner4(j2, x2, y2, z2, w2)
	n += corner4(j3, x3, y3, z3, w3)
	n += corner4(j4, x4, y4, z4, w4)

	return math3d.Clamp(norm4*n, -1, 1)
}

// corner4 computes one 4D corner's contribution.
func corner4(hash, x, y, z, w float64) float64 {
	m := kernelRadius - (x*x + y*y + z*z + w*w)
	if m <= 0 {
		return 0
	}
	m *= m
	g := grad4(hash)
	return m * m * (g.X*x + g.Y*y + g.Z*z + g.W*w)
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
