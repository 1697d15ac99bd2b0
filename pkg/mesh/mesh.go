// Package mesh provides the rest geometry for the liquid body: an indexed
// triangle mesh with per-vertex rest position and rest normal.
package mesh

import (
	"math"

	"github.com/lumen3d/lumen/pkg/math3d"
)

// Vertex holds the immutable rest attributes of one mesh vertex.
type Vertex struct {
	Position math3d.Vec3
	Normal   math3d.Vec3
}

// Mesh is an indexed triangle mesh. Vertices are rest-space; per-frame
// displaced positions live outside the mesh (see pkg/deform), so the mesh
// itself is never mutated during rendering.
type Mesh struct {
	Name     string
	Vertices []Vertex
	Faces    [][3]int

	// Bounding box of the rest positions (calculated on load).
	BoundsMin math3d.Vec3
	BoundsMax math3d.Vec3
}

// New creates an empty mesh.
func New(name string) *Mesh {
	return &Mesh{Name: name}
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Faces)
}

// CalculateBounds computes the axis-aligned bounding box of the rest positions.
func (m *Mesh) CalculateBounds() {
	if len(m.Vertices) == 0 {
		return
	}
	m.BoundsMin = m.Vertices[0].Position
	m.BoundsMax = m.Vertices[0].Position
	for _, v := range m.Vertices[1:] {
		m.BoundsMin = m.BoundsMin.Min(v.Position)
		m.BoundsMax = m.BoundsMax.Max(v.Position)
	}
}

// Center returns the center of the bounding box.
func (m *Mesh) Center() math3d.Vec3 {
	return m.BoundsMin.Add(m.BoundsMax).Scale(0.5)
}

// Size returns the dimensions of the bounding box.
func (m *Mesh) Size() math3d.Vec3 {
	return m.BoundsMax.Sub(m.BoundsMin)
}

// NormalizeToUnit recenters the mesh on the origin and scales it so the
// largest half-extent is 1, matching the space the deformer and shading
// zone thresholds are tuned for.
func (m *Mesh) NormalizeToUnit() {
	m.CalculateBounds()
	center := m.Center()
	size := m.Size()
	maxDim := math.Max(size.X, math.Max(size.Y, size.Z))
	if maxDim == 0 {
		return
	}
	scale := 2.0 / maxDim
	for i := range m.Vertices {
		m.Vertices[i].Position = m.Vertices[i].Position.Sub(center).Scale(scale)
	}
	m.CalculateBounds()
}

// SmoothNormals computes area-weighted averaged normals for the given
// positions, which must be indexed like m.Vertices. Passing displaced
// positions yields normals for the displaced surface; this is how the
// renderer recomputes shading normals every frame.
func (m *Mesh) SmoothNormals(positions []math3d.Vec3) []math3d.Vec3 {
	normals := make([]math3d.Vec3, len(positions))

	for _, f := range m.Faces {
		v0 := positions[f[0]]
		v1 := positions[f[1]]
		v2 := positions[f[2]]

		// Unnormalized cross product: area weighting falls out for free.
		n := v1.Sub(v0).Cross(v2.Sub(v0))

		normals[f[0]] = normals[f[0]].Add(n)
		normals[f[1]] = normals[f[1]].Add(n)
		normals[f[2]] = normals[f[2]].Add(n)
	}

	for i := range normals {
		// A vertex whose faces cancel out falls back to its rest normal.
		normals[i] = normals[i].NormalizeOr(m.Vertices[i].Normal)
	}
	return normals
}

// CalculateSmoothNormals recomputes the rest normals in place from the rest
// positions.
func (m *Mesh) CalculateSmoothNormals() {
	normals := m.SmoothNormals(m.restPositions())
	for i := range m.Vertices {
		m.Vertices[i].Normal = normals[i]
	}
}

func (m *Mesh) restPositions() []math3d.Vec3 {
	out := make([]math3d.Vec3, len(m.Vertices))
	for i, v := range m.Vertices {
		out[i] = v.Position
	}
	return out
}
