package grid

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/hexterrain/pkg/hex"
)

// MapFile is the on-disk form of a grid: chunk counts plus one row of
// elevations and one row of colors per z, south to north.
type MapFile struct {
	ChunkCountX int        `yaml:"chunk_count_x"`
	ChunkCountZ int        `yaml:"chunk_count_z"`
	Seed        int64      `yaml:"seed,omitempty"`
	Elevations  [][]int    `yaml:"elevations"`
	Colors      [][]string `yaml:"colors"`
}

// Snapshot captures the current cell state of g.
func (g *Grid) Snapshot() *MapFile {
	g.mu.RLock()
	defer g.mu.RUnlock()

	m := &MapFile{
		ChunkCountX: g.cfg.ChunkCountX,
		ChunkCountZ: g.cfg.ChunkCountZ,
		Elevations:  make([][]int, g.height),
		Colors:      make([][]string, g.height),
	}
	for z := 0; z < g.height; z++ {
		m.Elevations[z] = make([]int, g.width)
		m.Colors[z] = make([]string, g.width)
		for x := 0; x < g.width; x++ {
			c := g.cells[z*g.width+x]
			m.Elevations[z][x] = c.elevation
			m.Colors[z][x] = c.color.String()
		}
	}
	return m
}

// Apply copies the cell state of m into g. The map must have the grid's
// chunk counts and full rows.
func (g *Grid) Apply(m *MapFile) error {
	if m.ChunkCountX != g.cfg.ChunkCountX || m.ChunkCountZ != g.cfg.ChunkCountZ {
		return fmt.Errorf("%w: map has %dx%d chunks, grid has %dx%d",
			ErrMapSizeMismatch, m.ChunkCountX, m.ChunkCountZ, g.cfg.ChunkCountX, g.cfg.ChunkCountZ)
	}
	if len(m.Elevations) != g.height {
		return fmt.Errorf("%w: %d elevation rows, want %d", ErrMapSizeMismatch, len(m.Elevations), g.height)
	}
	if m.Colors != nil && len(m.Colors) != g.height {
		return fmt.Errorf("%w: %d color rows, want %d", ErrMapSizeMismatch, len(m.Colors), g.height)
	}

	colors := make([]hex.Color, len(g.cells))
	for z := 0; z < g.height; z++ {
		if len(m.Elevations[z]) != g.width {
			return fmt.Errorf("%w: elevation row %d has %d cells, want %d",
				ErrMapSizeMismatch, z, len(m.Elevations[z]), g.width)
		}
		for x := 0; x < g.width; x++ {
			colors[z*g.width+x] = hex.ColorWhite
		}
		if m.Colors == nil {
			continue
		}
		if len(m.Colors[z]) != g.width {
			return fmt.Errorf("%w: color row %d has %d cells, want %d",
				ErrMapSizeMismatch, z, len(m.Colors[z]), g.width)
		}
		for x, name := range m.Colors[z] {
			c, err := hex.ParseColor(name)
			if err != nil {
				return fmt.Errorf("cell (%d, %d): %w", x, z, err)
			}
			colors[z*g.width+x] = c
		}
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	for i, cell := range g.cells {
		cell.elevation = m.Elevations[cell.z][cell.x]
		cell.position.Y = g.metrics.Height(cell.elevation)
		cell.color = colors[i]
	}
	for _, c := range g.chunks {
		c.dirty = true
	}
	return nil
}

// LoadMap reads a map file and builds a grid from it.
func LoadMap(path string, metrics hex.Metrics) (*Grid, *MapFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}

	var m MapFile
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, nil, fmt.Errorf("parsing map %s: %w", path, err)
	}

	g, err := New(Config{ChunkCountX: m.ChunkCountX, ChunkCountZ: m.ChunkCountZ}, metrics)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrMapSizeMismatch, err)
	}
	if err := g.Apply(&m); err != nil {
		return nil, nil, fmt.Errorf("loading map %s: %w", path, err)
	}

	g.log.Info("map loaded", zap.String("path", path), zap.Int("cells", len(g.cells)))
	return g, &m, nil
}

// SaveMap writes the current state of g to path.
func (g *Grid) SaveMap(path string, seed int64) error {
	m := g.Snapshot()
	m.Seed = seed

	data, err := yaml.Marshal(m)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return err
	}

	g.log.Info("map saved", zap.String("path", path))
	return nil
}
