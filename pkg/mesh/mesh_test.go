package mesh

import (
	"math"
	"testing"

	"github.com/lumen3d/lumen/pkg/math3d"
)

func TestNewSphereVertexCount(t *testing.T) {
	m := NewSphere(1, 8, 12)

	wantVerts := (8 + 1) * (12 + 1)
	if m.VertexCount() != wantVerts {
		t.Errorf("VertexCount = %d, want %d", m.VertexCount(), wantVerts)
	}

	// Pole bands contribute one triangle per slice; interior bands two.
	wantTris := 12 * (2*(8-2) + 2)
	if m.TriangleCount() != wantTris {
		t.Errorf("TriangleCount = %d, want %d", m.TriangleCount(), wantTris)
	}
}

func TestNewSphereOnSurface(t *testing.T) {
	const radius = 2.5
	m := NewSphere(radius, 6, 8)

	for i, v := range m.Vertices {
		if r := v.Position.Len(); math.Abs(r-radius) > 1e-9 {
			t.Errorf("vertex %d at radius %v, want %v", i, r, radius)
		}
		// Sphere normals equal normalized position
		if d := v.Normal.Dot(v.Position.Normalize()); d < 0.9999 {
			t.Errorf("vertex %d normal misaligned (dot=%v)", i, d)
		}
	}
}

func TestNewSphereFaceIndicesValid(t *testing.T) {
	m := NewSphere(1, 5, 7)
	for fi, f := range m.Faces {
		for _, idx := range f {
			if idx < 0 || idx >= m.VertexCount() {
				t.Fatalf("face %d references out-of-range vertex %d", fi, idx)
			}
		}
	}
}

func TestSmoothNormalsOutward(t *testing.T) {
	m := NewSphere(1, 10, 14)

	normals := m.SmoothNormals(positionsOf(m))
	for i, n := range normals {
		if math.Abs(n.Len()-1) > 1e-9 {
			t.Fatalf("normal %d not unit length: %v", i, n.Len())
		}
		// The recomputed normal should roughly match the analytic one,
		// and point outward, never flipped.
		if d := n.Dot(m.Vertices[i].Normal); d < 0.9 {
			t.Errorf("normal %d deviates from analytic normal (dot=%v)", i, d)
		}
	}
}

func TestSmoothNormalsDegenerateFallback(t *testing.T) {
	m := New("degenerate")
	rest := math3d.V3(0, 1, 0)
	m.Vertices = []Vertex{
		{Position: math3d.V3(0, 0, 0), Normal: rest},
		{Position: math3d.V3(0, 0, 0), Normal: rest},
		{Position: math3d.V3(0, 0, 0), Normal: rest},
	}
	m.Faces = [][3]int{{0, 1, 2}}

	normals := m.SmoothNormals(positionsOf(m))
	if normals[0] != rest {
		t.Errorf("degenerate face should fall back to rest normal, got %v", normals[0])
	}
}

func TestNormalizeToUnit(t *testing.T) {
	m := NewSphere(3, 6, 8)
	for i := range m.Vertices {
		m.Vertices[i].Position = m.Vertices[i].Position.Add(math3d.V3(10, -4, 2))
	}
	m.NormalizeToUnit()

	c := m.Center()
	if c.Len() > 1e-9 {
		t.Errorf("center not at origin: %v", c)
	}
	size := m.Size()
	maxDim := math.Max(size.X, math.Max(size.Y, size.Z))
	if math.Abs(maxDim-2) > 1e-9 {
		t.Errorf("max dimension = %v, want 2", maxDim)
	}
}

func positionsOf(m *Mesh) []math3d.Vec3 {
	out := make([]math3d.Vec3, len(m.Vertices))
	for i, v := range m.Vertices {
		out[i] = v.Position
	}
	return out
}
