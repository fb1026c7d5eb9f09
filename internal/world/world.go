// Package world builds the terrain grid both command line tools start from.
package world

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/hexterrain/internal/config"
	"github.com/Faultbox/hexterrain/internal/grid"
	"github.com/Faultbox/hexterrain/internal/logger"
	"github.com/Faultbox/hexterrain/internal/terrain"
	"github.com/Faultbox/hexterrain/pkg/hex"
	"github.com/Faultbox/hexterrain/pkg/hexmesh"
)

// smoothEpsilon is the distance under which vertices count as shared.
const smoothEpsilon = 0.01

// Load returns a grid and the seed it was generated from. A non-empty
// mapPath is read as a map file; otherwise a grid of cfg.Grid's size is
// generated from cfg.Generator.
func Load(cfg *config.Config, mapPath string) (*grid.Grid, int64, error) {
	metrics, err := hex.NewMetrics(cfg.Metrics)
	if err != nil {
		return nil, 0, err
	}

	if mapPath != "" {
		g, m, err := grid.LoadMap(mapPath, metrics)
		if err != nil {
			return nil, 0, err
		}
		return g, m.Seed, nil
	}

	g, err := grid.New(cfg.Grid, metrics)
	if err != nil {
		return nil, 0, err
	}
	seed, err := terrain.Generate(g, cfg.Generator)
	if err != nil {
		return nil, 0, fmt.Errorf("generating terrain: %w", err)
	}
	logger.Named("world").Debug("world generated",
		zap.Int64("seed", seed),
		zap.Int("width", g.Width()),
		zap.Int("height", g.Height()))
	return g, seed, nil
}

// Build triangulates every dirty chunk of g and returns the merged mesh.
// With smooth set, normals are averaged across shared positions.
func Build(g *grid.Grid, workers int, smooth bool) (hexmesh.Mesh, error) {
	g.Refresh(workers)
	mesh := g.Mesh()
	if smooth {
		mesh.SmoothNormals(smoothEpsilon)
	}
	if err := mesh.Validate(); err != nil {
		return mesh, fmt.Errorf("triangulated mesh: %w", err)
	}
	return mesh, nil
}
