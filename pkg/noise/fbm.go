package noise

import "github.com/lumen3d/lumen/pkg/math3d"

// FBM3 sums octaves of Simplex3 with amplitude halving and frequency
// doubling per octave. The result is renormalized by the total amplitude so
// it stays in [-1, 1] regardless of the octave count.
func FBM3(p math3d.Vec3, octaves int) float64 {
	var sum, amp, total float64
	amp = 1
	freq := 1.0
	for range octaves {
		sum += amp * Simplex3(p.Scale(freq))
		total += amp
		amp *= 0.5
		freq *= 2
	}
	if total == 0 {
		return 0
	}
	return sum / total
}

// FBM4 is the space+time variant of FBM3.
func FBM4(p math3d.Vec4, octaves int) float64 {
	var sum, amp, total float64
	amp = 1
	freq := 1.0
	for range octaves {
		sum += amp * Simplex4(p.Scale(freq))
		total += amp
		amp *= 0.5
		freq *= 2
	}
	if total == 0 {
		return 0
	}
	return sum / total
}
