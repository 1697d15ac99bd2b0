package mesh

import (
	"fmt"
	"math"
	"path/filepath"

	"github.com/qmuntal/gltf"

	"github.com/lumen3d/lumen/pkg/math3d"
)

// LoadGLB loads a glTF/GLB file as a replacement body mesh. Only triangle
// geometry is read; materials and textures are ignored since the surface is
// shaded analytically. The result is normalized into unit space and given
// smooth normals if the file carries none.
func LoadGLB(path string) (*Mesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf: %w", err)
	}

	m := New(filepath.Base(path))

	for _, gm := range doc.Meshes {
		if err := appendPrimitives(doc, gm, m); err != nil {
			return nil, fmt.Errorf("mesh %q: %w", gm.Name, err)
		}
	}

	if len(m.Vertices) == 0 {
		return nil, fmt.Errorf("%s: no triangle geometry", path)
	}

	if !hasNormals(m) {
		m.CalculateSmoothNormals()
	}
	m.NormalizeToUnit()

	return m, nil
}

func hasNormals(m *Mesh) bool {
	for _, v := range m.Vertices {
		if v.Normal.Len() > 0.001 {
			return true
		}
	}
	return false
}

// appendPrimitives extracts triangle primitives from one glTF mesh.
func appendPrimitives(doc *gltf.Document, gm *gltf.Mesh, m *Mesh) error {
	for _, prim := range gm.Primitives {
		if prim.Mode != gltf.PrimitiveTriangles && prim.Mode != 0 {
			continue
		}

		posIdx, ok := prim.Attributes[gltf.POSITION]
		if !ok {
			continue
		}
		positions, err := readVec3Accessor(doc, posIdx)
		if err != nil {
			return fmt.Errorf("read positions: %w", err)
		}

		var normals []math3d.Vec3
		if normIdx, ok := prim.Attributes[gltf.NORMAL]; ok {
			normals, err = readVec3Accessor(doc, normIdx)
			if err != nil {
				return fmt.Errorf("read normals: %w", err)
			}
		}

		base := len(m.Vertices)
		for i := range positions {
			v := Vertex{Position: positions[i]}
			if i < len(normals) {
				v.Normal = normals[i]
			}
			m.Vertices = append(m.Vertices, v)
		}

		// glTF front faces are CCW viewed from outside, which is also the
		// renderer's front-face convention, so indices pass through as is.
		if prim.Indices != nil {
			indices, err := readIndices(doc, *prim.Indices)
			if err != nil {
				return fmt.Errorf("read indices: %w", err)
			}
			for i := 0; i+2 < len(indices); i += 3 {
				m.Faces = append(m.Faces, [3]int{
					base + indices[i],
					base + indices[i+1],
					base + indices[i+2],
				})
			}
		} else {
			for i := 0; i+2 < len(positions); i += 3 {
				m.Faces = append(m.Faces, [3]int{base + i, base + i + 1, base + i + 2})
			}
		}
	}
	return nil
}

// readVec3Accessor reads Vec3 data from a glTF accessor.
func readVec3Accessor(doc *gltf.Document, accessorIdx int) ([]math3d.Vec3, error) {
	accessor := doc.Accessors[accessorIdx]
	if accessor.Type != gltf.AccessorVec3 {
		return nil, fmt.Errorf("expected VEC3, got %v", accessor.Type)
	}
	if accessor.ComponentType != gltf.ComponentFloat {
		return nil, fmt.Errorf("expected float components, got %v", accessor.ComponentType)
	}

	bufData, start, stride, err := accessorBytes(doc, accessor, 12)
	if err != nil {
		return nil, err
	}

	result := make([]math3d.Vec3, accessor.Count)
	for i := range accessor.Count {
		offset := start + i*stride
		result[i] = math3d.V3(
			float64(readFloat32(bufData[offset:])),
			float64(readFloat32(bufData[offset+4:])),
			float64(readFloat32(bufData[offset+8:])),
		)
	}
	return result, nil
}

// readIndices reads scalar index data from a glTF accessor.
func readIndices(doc *gltf.Document, accessorIdx int) ([]int, error) {
	accessor := doc.Accessors[accessorIdx]
	if accessor.Type != gltf.AccessorScalar {
		return nil, fmt.Errorf("expected SCALAR, got %v", accessor.Type)
	}

	var compSize int
	switch accessor.ComponentType {
	case gltf.ComponentUbyte:
		compSize = 1
	case gltf.ComponentUshort:
		compSize = 2
	case gltf.ComponentUint:
		compSize = 4
	default:
		return nil, fmt.Errorf("unexpected index component type: %v", accessor.ComponentType)
	}

	bufData, start, stride, err := accessorBytes(doc, accessor, compSize)
	if err != nil {
		return nil, err
	}

	result := make([]int, accessor.Count)
	for i := range accessor.Count {
		offset := start + i*stride
		switch compSize {
		case 1:
			result[i] = int(bufData[offset])
		case 2:
			result[i] = int(uint16(bufData[offset]) | uint16(bufData[offset+1])<<8)
		case 4:
			result[i] = int(uint32(bufData[offset]) |
				uint32(bufData[offset+1])<<8 |
				uint32(bufData[offset+2])<<16 |
				uint32(bufData[offset+3])<<24)
		}
	}
	return result, nil
}

// accessorBytes resolves an accessor to its backing byte slice, start offset
// and per-element stride.
func accessorBytes(doc *gltf.Document, accessor *gltf.Accessor, defaultStride int) ([]byte, int, int, error) {
	if accessor.BufferView == nil {
		return nil, 0, 0, fmt.Errorf("accessor has no buffer view")
	}
	bufferView := doc.BufferViews[*accessor.BufferView]
	buffer := doc.Buffers[bufferView.Buffer]

	if buffer.URI != "" {
		return nil, 0, 0, fmt.Errorf("external buffers not supported")
	}
	if buffer.Data == nil {
		return nil, 0, 0, fmt.Errorf("buffer has no data")
	}

	stride := bufferView.ByteStride
	if stride == 0 {
		stride = defaultStride
	}
	return buffer.Data, bufferView.ByteOffset + accessor.ByteOffset, stride, nil
}

// readFloat32 reads a little-endian float32.
func readFloat32(b []byte) float32 {
	bits := uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
	return math.Float32frombits(bits)
}
