package mesh

import (
	"math"

	"github.com/lumen3d/lumen/pkg/math3d"
)

// NewSphere builds a UV sphere of the given radius centered on the origin.
// latSegs is the number of latitude bands (>= 2), lonSegs the number of
// longitude slices (>= 3). Normals point outward and equal the normalized
// position, which is exactly what the deformer displaces along.
func NewSphere(radius float64, latSegs, lonSegs int) *Mesh {
	if latSegs < 2 {
		latSegs = 2
	}
	if lonSegs < 3 {
		lonSegs = 3
	}

	m := New("sphere")

	// Rings of vertices from the top pole (y=+r) to the bottom pole.
	// The seam column is duplicated so rows have lonSegs+1 vertices.
	for lat := 0; lat <= latSegs; lat++ {
		theta := math.Pi * float64(lat) / float64(latSegs)
		sinT, cosT := math.Sin(theta), math.Cos(theta)

		for lon := 0; lon <= lonSegs; lon++ {
			phi := 2 * math.Pi * float64(lon) / float64(lonSegs)
			n := math3d.V3(sinT*math.Cos(phi), cosT, sinT*math.Sin(phi))
			m.Vertices = append(m.Vertices, Vertex{
				Position: n.Scale(radius),
				Normal:   n,
			})
		}
	}

	// Two triangles per quad, CCW viewed from outside so the face cross
	// products point outward and the rasterizer sees them as front faces.
	stride := lonSegs + 1
	for lat := 0; lat < latSegs; lat++ {
		for lon := 0; lon < lonSegs; lon++ {
			a := lat*stride + lon
			b := a + 1
			c := a + stride
			d := c + 1

			if lat > 0 {
				m.Faces = append(m.Faces, [3]int{a, b, c})
			}
			if lat < latSegs-1 {
				m.Faces = append(m.Faces, [3]int{b, d, c})
			}
		}
	}

	m.CalculateBounds()
	return m
}
