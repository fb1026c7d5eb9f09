// Package grid owns the hex cells of a terrain, splits them into chunks and
// keeps the chunk meshes in sync with cell edits.
package grid

import (
	"errors"
	"fmt"
	"runtime"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/hexterrain/internal/logger"
	"github.com/Faultbox/hexterrain/pkg/hex"
	"github.com/Faultbox/hexterrain/pkg/hexmesh"
	"github.com/Faultbox/hexterrain/pkg/math"
)

var (
	ErrInvalidConfig   = errors.New("invalid grid config")
	ErrMapSizeMismatch = errors.New("map size does not match grid")
)

// Config holds grid dimensions.
type Config struct {
	ChunkCountX int `yaml:"chunk_count_x"`
	ChunkCountZ int `yaml:"chunk_count_z"`
	// Workers is the number of goroutines used by Refresh. Zero means one
	// per CPU.
	Workers int `yaml:"workers"`
}

// DefaultConfig returns a 4x3 chunk grid.
func DefaultConfig() Config {
	return Config{
		ChunkCountX: 4,
		ChunkCountZ: 3,
	}
}

// Validate checks that the grid has at least one chunk.
func (c Config) Validate() error {
	if c.ChunkCountX <= 0 || c.ChunkCountZ <= 0 {
		return fmt.Errorf("%w: chunk count %dx%d", ErrInvalidConfig, c.ChunkCountX, c.ChunkCountZ)
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers %d", ErrInvalidConfig, c.Workers)
	}
	return nil
}

// Grid is a rectangular field of cells in offset coordinates.
//
// Cell edits and Refresh take the write lock; mesh readers take the read
// lock. Cells must not be modified other than through the Grid.
type Grid struct {
	mu      sync.RWMutex
	cfg     Config
	metrics hex.Metrics
	width   int
	height  int
	cells   []*Cell
	chunks  []*Chunk
	log     *zap.Logger
}

// New creates a flat grid filled with white cells at elevation zero. Every
// chunk starts dirty.
func New(cfg Config, metrics hex.Metrics) (*Grid, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	g := &Grid{
		cfg:     cfg,
		metrics: metrics,
		width:   cfg.ChunkCountX * ChunkSizeX,
		height:  cfg.ChunkCountZ * ChunkSizeZ,
		log:     logger.Named("grid"),
	}

	g.chunks = make([]*Chunk, cfg.ChunkCountX*cfg.ChunkCountZ)
	for i := range g.chunks {
		g.chunks[i] = &Chunk{index: i, dirty: true}
	}

	g.cells = make([]*Cell, 0, g.width*g.height)
	for z := 0; z < g.height; z++ {
		for x := 0; x < g.width; x++ {
			g.createCell(x, z)
		}
	}

	g.log.Debug("grid created",
		zap.Int("width", g.width),
		zap.Int("height", g.height),
		zap.Int("chunks", len(g.chunks)))
	return g, nil
}

func (g *Grid) createCell(x, z int) {
	i := len(g.cells)
	cell := &Cell{
		coords:   hex.FromOffset(x, z),
		x:        x,
		z:        z,
		position: g.metrics.OffsetPosition(x, z),
		color:    hex.ColorWhite,
	}

	if x > 0 {
		cell.SetNeighbor(hex.W, g.cells[i-1])
	}
	if z > 0 {
		if z&1 == 0 {
			cell.SetNeighbor(hex.SE, g.cells[i-g.width])
			if x > 0 {
				cell.SetNeighbor(hex.SW, g.cells[i-g.width-1])
			}
		} else {
			cell.SetNeighbor(hex.SW, g.cells[i-g.width])
			if x < g.width-1 {
				cell.SetNeighbor(hex.SE, g.cells[i-g.width+1])
			}
		}
	}

	chunk := g.chunks[(z/ChunkSizeZ)*g.cfg.ChunkCountX+x/ChunkSizeX]
	cell.chunk = chunk
	chunk.cells = append(chunk.cells, cell)
	g.cells = append(g.cells, cell)
}

// Width returns the number of cells per row.
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.height }

// Metrics returns the geometry the grid was built with.
func (g *Grid) Metrics() hex.Metrics { return g.metrics }

// Chunks returns all chunks in row-major order.
func (g *Grid) Chunks() []*Chunk { return g.chunks }

// Cells returns all cells in row-major order.
func (g *Grid) Cells() []*Cell { return g.cells }

// Cell returns the cell at offset (x, z), or nil when out of range.
func (g *Grid) Cell(x, z int) *Cell {
	if x < 0 || z < 0 || x >= g.width || z >= g.height {
		return nil
	}
	return g.cells[z*g.width+x]
}

// CellAt returns the cell containing the grid-local position p, or nil.
func (g *Grid) CellAt(p math.Vec3) *Cell {
	x, z := g.metrics.CoordinatesAt(p).Offset()
	return g.Cell(x, z)
}

// SetElevation changes the elevation of cell and moves its center to the
// matching height.
func (g *Grid) SetElevation(cell *Cell, elevation int) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if cell.elevation == elevation {
		return
	}
	cell.elevation = elevation
	cell.position.Y = g.metrics.Height(elevation)
	g.markDirty(cell)
}

// RaiseAt changes the elevation of the cell under p by delta, never going
// below zero, and returns that cell. It returns nil when p is off the grid.
func (g *Grid) RaiseAt(p math.Vec3, delta int) *Cell {
	cell := g.CellAt(p)
	if cell == nil {
		return nil
	}
	g.SetElevation(cell, max(0, cell.Elevation()+delta))
	return cell
}

// SetColor changes the color of cell.
func (g *Grid) SetColor(cell *Cell, color hex.Color) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if cell.color == color {
		return
	}
	cell.color = color
	g.markDirty(cell)
}

// markDirty flags the chunk of cell and every chunk owning one of its
// neighbors, since their seams touch the cell.
func (g *Grid) markDirty(cell *Cell) {
	cell.chunk.dirty = true
	for _, n := range cell.neighbors {
		if n != nil && n.chunk != cell.chunk {
			n.chunk.dirty = true
		}
	}
}

// MarkAllDirty schedules every chunk for the next Refresh.
func (g *Grid) MarkAllDirty() {
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, c := range g.chunks {
		c.dirty = true
	}
}

// DirtyChunks returns the indices of chunks waiting for a Refresh.
func (g *Grid) DirtyChunks() []int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	var dirty []int
	for _, c := range g.chunks {
		if c.dirty {
			dirty = append(dirty, c.index)
		}
	}
	return dirty
}

// Refresh re-triangulates dirty chunks on up to workers goroutines and
// returns the rebuilt chunk indices in ascending order. workers <= 0 uses
// the configured worker count.
func (g *Grid) Refresh(workers int) []int {
	g.mu.Lock()
	defer g.mu.Unlock()

	var dirty []*Chunk
	for _, c := range g.chunks {
		if c.dirty {
			dirty = append(dirty, c)
		}
	}
	if len(dirty) == 0 {
		return nil
	}

	if workers <= 0 {
		workers = g.cfg.Workers
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	workers = min(workers, len(dirty))

	start := time.Now()
	jobs := make(chan *Chunk)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			t := hexmesh.NewTriangulator(g.metrics)
			for c := range jobs {
				c.mesh = t.Triangulate(c.hexCells())
				c.stats = t.Stats()
				c.dirty = false
			}
		}()
	}
	for _, c := range dirty {
		jobs <- c
	}
	close(jobs)
	wg.Wait()

	rebuilt := make([]int, len(dirty))
	for i, c := range dirty {
		rebuilt[i] = c.index
	}
	g.log.Debug("chunks refreshed",
		zap.Int("chunks", len(rebuilt)),
		zap.Int("workers", workers),
		zap.Duration("took", time.Since(start)))
	return rebuilt
}

// ChunkMesh returns the last mesh built for chunk i.
func (g *Grid) ChunkMesh(i int) hexmesh.Mesh {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.chunks[i].mesh
}

// Mesh merges the last mesh of every chunk into one.
func (g *Grid) Mesh() hexmesh.Mesh {
	g.mu.RLock()
	defer g.mu.RUnlock()

	var m hexmesh.Mesh
	for _, c := range g.chunks {
		m.Append(c.mesh)
	}
	return m
}

// Stats sums the triangulation counters of all chunks.
func (g *Grid) Stats() hexmesh.Stats {
	g.mu.RLock()
	defer g.mu.RUnlock()

	var s hexmesh.Stats
	for _, c := range g.chunks {
		s.Add(c.stats)
	}
	return s
}
