package hexmesh

import (
	"fmt"

	"github.com/Faultbox/hexterrain/pkg/math"
)

var up = math.Vec3{X: 0, Y: 1, Z: 0}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Positions)
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Validate checks the buffer invariants: positions and colors (and normals,
// when present) are index-aligned, indices come in triples, and every index
// references an existing vertex.
func (m *Mesh) Validate() error {
	if len(m.Positions) != len(m.Colors) {
		return fmt.Errorf("%w: %d positions, %d colors", ErrMisalignedBuffers, len(m.Positions), len(m.Colors))
	}
	if m.Normals != nil && len(m.Normals) != len(m.Positions) {
		return fmt.Errorf("%w: %d positions, %d normals", ErrMisalignedBuffers, len(m.Positions), len(m.Normals))
	}
	if len(m.Indices)%3 != 0 {
		return fmt.Errorf("%w: %d indices", ErrPartialTriangle, len(m.Indices))
	}
	n := uint32(len(m.Positions))
	for i, idx := range m.Indices {
		if idx >= n {
			return fmt.Errorf("%w: indices[%d] = %d, %d vertices", ErrIndexOutOfRange, i, idx, n)
		}
	}
	return nil
}

// RecalculateNormals sets every vertex normal to the sum of the face normals
// of the triangles using it, weighted by area.
func (m *Mesh) RecalculateNormals() {
	normals := make([]math.Vec3, len(m.Positions))
	for i := 0; i+2 < len(m.Indices); i += 3 {
		a, b, c := m.Indices[i], m.Indices[i+1], m.Indices[i+2]
		p0, p1, p2 := m.Positions[a], m.Positions[b], m.Positions[c]
		face := p1.Sub(p0).Cross(p2.Sub(p0))
		normals[a] = normals[a].Add(face)
		normals[b] = normals[b].Add(face)
		normals[c] = normals[c].Add(face)
	}
	for i := range normals {
		normals[i] = normalizeOrUp(normals[i])
	}
	m.Normals = normals
}

// SmoothNormals averages normals at shared vertex positions.
// Triangulation never shares vertices between primitives, so without this
// every bridge and terrace is lit as a separate facet.
func (m *Mesh) SmoothNormals(epsilon float32) {
	if len(m.Normals) != len(m.Positions) {
		m.RecalculateNormals()
	}

	// Group vertices by quantized position for O(n) lookup
	posMap := make(map[[3]int32][]int)
	for i, p := range m.Positions {
		key := [3]int32{
			int32(p.X / epsilon),
			int32(p.Y / epsilon),
			int32(p.Z / epsilon),
		}
		posMap[key] = append(posMap[key], i)
	}

	for _, indices := range posMap {
		if len(indices) < 2 {
			continue
		}

		var sum math.Vec3
		for _, idx := range indices {
			sum = sum.Add(m.Normals[idx])
		}

		avg := normalizeOrUp(sum)
		for _, idx := range indices {
			m.Normals[idx] = avg
		}
	}
}

// RecalculateBounds recomputes the bounding box from the positions.
func (m *Mesh) RecalculateBounds() {
	if len(m.Positions) == 0 {
		m.Bounds = Bounds{}
		return
	}
	b := Bounds{Min: m.Positions[0], Max: m.Positions[0]}
	for _, p := range m.Positions[1:] {
		b.Min = b.Min.Min(p)
		b.Max = b.Max.Max(p)
	}
	m.Bounds = b
}

// Append merges other into m, rebasing its indices.
func (m *Mesh) Append(other Mesh) {
	if len(other.Positions) == 0 {
		return
	}
	empty := len(m.Positions) == 0
	base := uint32(len(m.Positions))

	m.Positions = append(m.Positions, other.Positions...)
	m.Colors = append(m.Colors, other.Colors...)
	if len(other.Normals) == len(other.Positions) && len(m.Normals) == int(base) {
		m.Normals = append(m.Normals, other.Normals...)
	} else {
		m.Normals = nil
	}
	for _, idx := range other.Indices {
		m.Indices = append(m.Indices, idx+base)
	}

	if empty {
		m.Bounds = other.Bounds
	} else {
		m.Bounds.Min = m.Bounds.Min.Min(other.Bounds.Min)
		m.Bounds.Max = m.Bounds.Max.Max(other.Bounds.Max)
	}
}

func normalizeOrUp(v math.Vec3) math.Vec3 {
	if v.Length() < 0.0001 {
		return up
	}
	return v.Normalize()
}
