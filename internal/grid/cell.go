package grid

import (
	"github.com/Faultbox/hexterrain/pkg/hex"
	"github.com/Faultbox/hexterrain/pkg/math"
)

// Cell is one hexagon of the grid. Elevation and color are changed through
// the owning Grid so the affected chunks get marked dirty.
type Cell struct {
	coords    hex.Coordinates
	x, z      int
	position  math.Vec3
	elevation int
	color     hex.Color
	neighbors [hex.DirectionCount]*Cell
	chunk     *Chunk
}

var _ hex.Cell = (*Cell)(nil)

// Position returns the cell center in grid-local space.
func (c *Cell) Position() math.Vec3 { return c.position }

// Elevation returns the integer elevation level.
func (c *Cell) Elevation() int { return c.elevation }

// Color returns the cell color.
func (c *Cell) Color() hex.Color { return c.color }

// Coordinates returns the cube coordinates of the cell.
func (c *Cell) Coordinates() hex.Coordinates { return c.coords }

// Offset returns the offset coordinates of the cell.
func (c *Cell) Offset() (x, z int) { return c.x, c.z }

// Chunk returns the chunk owning the cell.
func (c *Cell) Chunk() *Chunk { return c.chunk }

// Neighbor implements hex.Cell.
func (c *Cell) Neighbor(d hex.Direction) hex.Cell {
	if n := c.neighbors[d]; n != nil {
		return n
	}
	return nil
}

// NeighborCell returns the neighbor in direction d, or nil at the boundary.
func (c *Cell) NeighborCell(d hex.Direction) *Cell {
	return c.neighbors[d]
}

// SetNeighbor links c and cell in both directions.
func (c *Cell) SetNeighbor(d hex.Direction, cell *Cell) {
	c.neighbors[d] = cell
	cell.neighbors[d.Opposite()] = c
}
