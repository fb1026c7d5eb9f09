package grid

import (
	"github.com/Faultbox/hexterrain/pkg/hex"
	"github.com/Faultbox/hexterrain/pkg/hexmesh"
)

// Chunk sizes in cells.
const (
	ChunkSizeX = 5
	ChunkSizeZ = 5
)

// Chunk is a block of cells triangulated into one mesh.
type Chunk struct {
	index int
	cells []*Cell
	dirty bool
	mesh  hexmesh.Mesh
	stats hexmesh.Stats
}

// Index returns the chunk position in Grid.Chunks.
func (c *Chunk) Index() int { return c.index }

// Cells returns the cells of the chunk.
func (c *Chunk) Cells() []*Cell { return c.cells }

func (c *Chunk) hexCells() []hex.Cell {
	out := make([]hex.Cell, len(c.cells))
	for i, cell := range c.cells {
		out[i] = cell
	}
	return out
}
