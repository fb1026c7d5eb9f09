package hexmesh

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/Faultbox/hexterrain/pkg/hex"
	"github.com/Faultbox/hexterrain/pkg/math"
)

func TestBuilderAddTriangle(t *testing.T) {
	b := NewBuilder()
	b.AddTriangleColor(math.Vec3{}, math.Vec3{Z: 1}, math.Vec3{X: 1}, hex.ColorGrass)
	b.AddTriangleColor(math.Vec3{}, math.Vec3{Z: 1}, math.Vec3{X: 1}, hex.ColorSand)

	if b.VertexCount() != 6 {
		t.Errorf("VertexCount() = %d, want 6", b.VertexCount())
	}
	want := []uint32{0, 1, 2, 3, 4, 5}
	if diff := cmp.Diff(want, b.indices); diff != "" {
		t.Errorf("indices mismatch (-want +got):\n%s", diff)
	}
}

func TestBuilderAddQuad(t *testing.T) {
	b := NewBuilder()
	b.AddTriangleColor(math.Vec3{}, math.Vec3{Z: 1}, math.Vec3{X: 1}, hex.ColorGrass)
	b.AddQuadBlend(
		math.Vec3{X: 0}, math.Vec3{X: 1},
		math.Vec3{X: 0, Z: 1}, math.Vec3{X: 1, Z: 1},
		hex.ColorSand, hex.ColorRock,
	)

	want := []uint32{0, 1, 2, 3, 5, 4, 4, 5, 6}
	if diff := cmp.Diff(want, b.indices); diff != "" {
		t.Errorf("indices mismatch (-want +got):\n%s", diff)
	}
	wantColors := []hex.Color{hex.ColorSand, hex.ColorSand, hex.ColorRock, hex.ColorRock}
	if diff := cmp.Diff(wantColors, b.colors[3:]); diff != "" {
		t.Errorf("quad colors mismatch (-want +got):\n%s", diff)
	}
}

func TestBuilderClearKeepsCapacity(t *testing.T) {
	b := NewBuilder()
	for i := 0; i < 10; i++ {
		b.AddTriangleColor(math.Vec3{}, math.Vec3{Z: 1}, math.Vec3{X: 1}, hex.ColorGrass)
	}
	capBefore := cap(b.positions)
	b.Clear()

	if b.VertexCount() != 0 || b.IndexCount() != 0 {
		t.Errorf("after Clear: %d vertices, %d indices, want 0", b.VertexCount(), b.IndexCount())
	}
	if cap(b.positions) != capBefore {
		t.Errorf("cap(positions) = %d, want %d", cap(b.positions), capBefore)
	}
}

func TestBuilderMeshIsCopy(t *testing.T) {
	b := NewBuilder()
	b.AddTriangleColor(math.Vec3{}, math.Vec3{Z: 1}, math.Vec3{X: 1}, hex.ColorGrass)
	m := b.Mesh()

	b.Clear()
	b.AddTriangleColor(math.Vec3{Y: 9}, math.Vec3{Y: 9}, math.Vec3{Y: 9}, hex.ColorRock)

	if m.Positions[0].Y != 0 {
		t.Errorf("mesh position changed after builder reuse: %v", m.Positions[0])
	}
	if err := m.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}
