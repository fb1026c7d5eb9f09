package hexmesh

import (
	"fmt"

	"github.com/Faultbox/hexterrain/pkg/hex"
	"github.com/Faultbox/hexterrain/pkg/math"
)

// Triangulator turns a set of cells into one mesh. Each cell emits its six
// solid fan triangles; the seams toward NE, E and SE are emitted by the cell
// itself, the other three by the neighbors on that side, so every bridge and
// corner is built exactly once.
//
// A Triangulator owns its Builder and is not safe for concurrent use. Run
// independent passes on separate Triangulators.
type Triangulator struct {
	geo     Geometry
	builder *Builder
	stats   Stats
}

// NewTriangulator creates a triangulator for the given geometry table.
func NewTriangulator(geo Geometry) *Triangulator {
	return &Triangulator{
		geo:     geo,
		builder: NewBuilder(),
	}
}

// Triangulate rebuilds the mesh for cells from scratch. Nil cells are
// skipped. Cells must not be mutated while the pass runs.
func (t *Triangulator) Triangulate(cells []hex.Cell) Mesh {
	if steps := t.geo.TerraceSteps(); steps < 1 {
		panic(fmt.Sprintf("hexmesh: terrace steps must be at least 1, got %d", steps))
	}

	t.builder.Clear()
	t.stats = Stats{}
	for _, cell := range cells {
		if cell == nil {
			continue
		}
		t.triangulateCell(cell)
	}
	return t.builder.Mesh()
}

// Stats returns the counters of the last Triangulate call.
func (t *Triangulator) Stats() Stats {
	return t.stats
}

func (t *Triangulator) triangulateCell(cell hex.Cell) {
	t.stats.Cells++
	for _, d := range hex.Directions {
		t.triangulateDirection(d, cell)
	}
}

func (t *Triangulator) triangulateDirection(d hex.Direction, cell hex.Cell) {
	center := cell.Position()
	v1 := center.Add(t.geo.FirstSolidCorner(d))
	v2 := center.Add(t.geo.SecondSolidCorner(d))

	t.builder.AddTriangleColor(center, v1, v2, cell.Color())
	t.stats.FanTriangles++

	if d <= hex.SE {
		t.triangulateConnection(d, cell, v1, v2)
	}
}

func (t *Triangulator) height(cell hex.Cell) float32 {
	return float32(cell.Elevation()) * t.geo.ElevationStep()
}

// triangulateConnection fills the bridge between cell and its neighbor in
// direction d and, for NE and E, the corner shared with the next neighbor.
func (t *Triangulator) triangulateConnection(d hex.Direction, cell hex.Cell, v1, v2 math.Vec3) {
	neighbor := cell.Neighbor(d)
	if neighbor == nil {
		return
	}

	bridge := t.geo.Bridge(d)
	v3 := v1.Add(bridge).WithY(t.height(neighbor))
	v4 := v2.Add(bridge).WithY(t.height(neighbor))

	if hex.Classify(cell, neighbor) == hex.Slope {
		t.triangulateEdgeTerraces(v1, v2, cell, v3, v4, neighbor)
	} else {
		t.builder.AddQuadBlend(v1, v2, v3, v4, cell.Color(), neighbor.Color())
		t.stats.BridgeQuads++
	}

	if d > hex.E {
		return
	}
	nextNeighbor := cell.Neighbor(d.Next())
	if nextNeighbor == nil {
		t.stats.CornerSkipped++
		return
	}

	v5 := v2.Add(t.geo.Bridge(d.Next())).WithY(t.height(nextNeighbor))

	// Pivot on the lowest cell, keeping the three cells in clockwise order.
	if cell.Elevation() <= neighbor.Elevation() {
		if cell.Elevation() <= nextNeighbor.Elevation() {
			t.triangulateCorner(v2, cell, v4, neighbor, v5, nextNeighbor)
		} else {
			t.triangulateCorner(v5, nextNeighbor, v2, cell, v4, neighbor)
		}
	} else if neighbor.Elevation() <= nextNeighbor.Elevation() {
		t.triangulateCorner(v4, neighbor, v5, nextNeighbor, v2, cell)
	} else {
		t.triangulateCorner(v5, nextNeighbor, v2, cell, v4, neighbor)
	}
}

// triangulateEdgeTerraces stacks TerraceSteps quads from the begin edge up
// (or down) to the end edge.
func (t *Triangulator) triangulateEdgeTerraces(
	beginLeft, beginRight math.Vec3, beginCell hex.Cell,
	endLeft, endRight math.Vec3, endCell hex.Cell,
) {
	steps := t.geo.TerraceSteps()
	v3, v4 := beginLeft, beginRight
	c2 := beginCell.Color()

	for i := 1; i <= steps; i++ {
		v1, v2 := v3, v4
		c1 := c2
		v3 = t.geo.TerraceLerp(beginLeft, endLeft, i)
		v4 = t.geo.TerraceLerp(beginRight, endRight, i)
		c2 = t.geo.TerraceLerpColor(beginCell.Color(), endCell.Color(), i)
		t.builder.AddQuadBlend(v1, v2, v3, v4, c1, c2)
		t.stats.TerraceQuads++
	}
}

// triangulateCorner fills the triangle between three cells. bottom is the
// lowest of the three; left and right follow it clockwise.
func (t *Triangulator) triangulateCorner(
	bottom math.Vec3, bottomCell hex.Cell,
	left math.Vec3, leftCell hex.Cell,
	right math.Vec3, rightCell hex.Cell,
) {
	leftEdge := hex.Classify(bottomCell, leftCell)
	rightEdge := hex.Classify(bottomCell, rightCell)

	switch {
	case leftEdge == hex.Slope && rightEdge == hex.Slope:
		t.triangulateCornerTerraces(bottom, bottomCell, left, leftCell, right, rightCell)
	case leftEdge == hex.Slope && rightEdge == hex.Flat:
		t.triangulateCornerTerraces(left, leftCell, right, rightCell, bottom, bottomCell)
	case leftEdge == hex.Flat && rightEdge == hex.Slope:
		t.triangulateCornerTerraces(right, rightCell, bottom, bottomCell, left, leftCell)
	case leftEdge == hex.Slope && rightEdge == hex.Cliff:
		t.triangulateCornerTerracesCliff(bottom, bottomCell, left, leftCell, right, rightCell)
	case leftEdge == hex.Cliff && rightEdge == hex.Slope:
		t.triangulateCornerCliffTerraces(bottom, bottomCell, left, leftCell, right, rightCell)
	default:
		// Flat/flat corners are already covered by the bridge quads. Corners
		// with a cliff on both sides, or a cliff next to a flat edge, stay
		// open: the bridges abut directly and may leave a small seam.
		t.stats.OpenCorners++
	}
}

// triangulateCornerTerraces terraces a corner from begin toward both left
// and right: one triangle for the first step, then a quad per step.
func (t *Triangulator) triangulateCornerTerraces(
	begin math.Vec3, beginCell hex.Cell,
	left math.Vec3, leftCell hex.Cell,
	right math.Vec3, rightCell hex.Cell,
) {
	steps := t.geo.TerraceSteps()

	v3 := t.geo.TerraceLerp(begin, left, 1)
	v4 := t.geo.TerraceLerp(begin, right, 1)
	c3 := t.geo.TerraceLerpColor(beginCell.Color(), leftCell.Color(), 1)
	c4 := t.geo.TerraceLerpColor(beginCell.Color(), rightCell.Color(), 1)
	t.builder.AddTriangle(begin, v3, v4, beginCell.Color(), c3, c4)

	for i := 2; i <= steps; i++ {
		v1, v2 := v3, v4
		c1, c2 := c3, c4
		v3 = t.geo.TerraceLerp(begin, left, i)
		v4 = t.geo.TerraceLerp(begin, right, i)
		c3 = t.geo.TerraceLerpColor(beginCell.Color(), leftCell.Color(), i)
		c4 = t.geo.TerraceLerpColor(beginCell.Color(), rightCell.Color(), i)
		t.builder.AddQuad(v1, v2, v3, v4, c1, c2, c3, c4)
	}
	t.stats.CornerFans++
}

// triangulateCornerTerracesCliff handles a slope on the left and a cliff on
// the right of begin.
func (t *Triangulator) triangulateCornerTerracesCliff(
	begin math.Vec3, beginCell hex.Cell,
	left math.Vec3, leftCell hex.Cell,
	right math.Vec3, rightCell hex.Cell,
) {
	boundary, boundaryColor, _ := cliffBoundary(begin, beginCell, right, rightCell)

	t.triangulateBoundaryTriangle(begin, beginCell, left, leftCell, boundary, boundaryColor)
	t.closeBoundary(left, leftCell, right, rightCell, boundary, boundaryColor)
	t.stats.BoundaryFans++
}

// triangulateCornerCliffTerraces mirrors triangulateCornerTerracesCliff for
// a cliff on the left and a slope on the right of begin.
func (t *Triangulator) triangulateCornerCliffTerraces(
	begin math.Vec3, beginCell hex.Cell,
	left math.Vec3, leftCell hex.Cell,
	right math.Vec3, rightCell hex.Cell,
) {
	boundary, boundaryColor, _ := cliffBoundary(begin, beginCell, left, leftCell)

	t.triangulateBoundaryTriangle(right, rightCell, begin, beginCell, boundary, boundaryColor)
	t.closeBoundary(left, leftCell, right, rightCell, boundary, boundaryColor)
	t.stats.BoundaryFans++
}

// closeBoundary fills the remaining part of a cliff corner between the two
// upper cells.
func (t *Triangulator) closeBoundary(
	left math.Vec3, leftCell hex.Cell,
	right math.Vec3, rightCell hex.Cell,
	boundary math.Vec3, boundaryColor hex.Color,
) {
	if hex.Classify(leftCell, rightCell) == hex.Slope {
		t.triangulateBoundaryTriangle(left, leftCell, right, rightCell, boundary, boundaryColor)
		return
	}
	t.builder.AddTriangle(left, right, boundary, leftCell.Color(), rightCell.Color(), boundaryColor)
}

// triangulateBoundaryTriangle fans from the terrace steps between begin and
// left to the boundary point.
func (t *Triangulator) triangulateBoundaryTriangle(
	begin math.Vec3, beginCell hex.Cell,
	left math.Vec3, leftCell hex.Cell,
	boundary math.Vec3, boundaryColor hex.Color,
) {
	steps := t.geo.TerraceSteps()
	v2 := begin
	c2 := beginCell.Color()

	for i := 1; i <= steps; i++ {
		v1, c1 := v2, c2
		v2 = t.geo.TerraceLerp(begin, left, i)
		c2 = t.geo.TerraceLerpColor(beginCell.Color(), leftCell.Color(), i)
		t.builder.AddTriangle(v1, v2, boundary, c1, c2, boundaryColor)
	}
}

// cliffBoundary returns the point on the cliff edge from begin toward
// cliff at which the terraces of the slope side meet it, together with its
// color and interpolation factor: one elevation level above begin. The
// rise is a full ElevationStep, the height of a whole slope, not the height
// of a single terrace riser (ElevationStep/(TerracesPerSlope+1)).
func cliffBoundary(begin math.Vec3, beginCell hex.Cell, cliff math.Vec3, cliffCell hex.Cell) (math.Vec3, hex.Color, float32) {
	diff := cliffCell.Elevation() - beginCell.Elevation()
	if diff < 0 {
		diff = -diff
	}
	b := 1 / float32(diff)
	return begin.Lerp(cliff, b), beginCell.Color().Lerp(cliffCell.Color(), b), b
}
