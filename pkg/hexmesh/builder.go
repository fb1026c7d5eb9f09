package hexmesh

import (
	"github.com/Faultbox/hexterrain/pkg/hex"
	"github.com/Faultbox/hexterrain/pkg/math"
)

// Builder accumulates mesh buffers. Every primitive appends positions and
// colors together, so the buffers cannot drift out of alignment.
// A Builder is not safe for concurrent use.
type Builder struct {
	positions []math.Vec3
	colors    []hex.Color
	indices   []uint32
}

// NewBuilder creates an empty builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Clear empties the buffers and keeps their capacity.
func (b *Builder) Clear() {
	b.positions = b.positions[:0]
	b.colors = b.colors[:0]
	b.indices = b.indices[:0]
}

// VertexCount returns the number of vertices added since the last Clear.
func (b *Builder) VertexCount() int {
	return len(b.positions)
}

// IndexCount returns the number of indices added since the last Clear.
func (b *Builder) IndexCount() int {
	return len(b.indices)
}

// AddTriangle appends one triangle with per-vertex colors.
func (b *Builder) AddTriangle(v1, v2, v3 math.Vec3, c1, c2, c3 hex.Color) {
	base := uint32(len(b.positions))
	b.positions = append(b.positions, v1, v2, v3)
	b.colors = append(b.colors, c1, c2, c3)
	b.indices = append(b.indices, base, base+1, base+2)
}

// AddTriangleColor appends one triangle in a single color.
func (b *Builder) AddTriangleColor(v1, v2, v3 math.Vec3, c hex.Color) {
	b.AddTriangle(v1, v2, v3, c, c, c)
}

// AddQuad appends a quad given as bottom-left, bottom-right, top-left,
// top-right, split into (v1, v3, v2) and (v2, v3, v4).
func (b *Builder) AddQuad(v1, v2, v3, v4 math.Vec3, c1, c2, c3, c4 hex.Color) {
	base := uint32(len(b.positions))
	b.positions = append(b.positions, v1, v2, v3, v4)
	b.colors = append(b.colors, c1, c2, c3, c4)
	b.indices = append(b.indices,
		base, base+2, base+1,
		base+1, base+2, base+3,
	)
}

// AddQuadBlend appends a quad whose near edge (v1, v2) is colored near and
// whose far edge (v3, v4) is colored far.
func (b *Builder) AddQuadBlend(v1, v2, v3, v4 math.Vec3, near, far hex.Color) {
	b.AddQuad(v1, v2, v3, v4, near, near, far, far)
}

// Mesh copies the buffers into a finalized mesh with normals and bounds.
// The builder can keep being used afterwards.
func (b *Builder) Mesh() Mesh {
	m := Mesh{
		Positions: append([]math.Vec3(nil), b.positions...),
		Colors:    append([]hex.Color(nil), b.colors...),
		Indices:   append([]uint32(nil), b.indices...),
	}
	m.RecalculateNormals()
	m.RecalculateBounds()
	return m
}
