// Package terrain fills a grid with noise-based elevations and colors.
package terrain

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	opensimplex "github.com/ojrac/opensimplex-go"
	"go.uber.org/zap"

	"github.com/Faultbox/hexterrain/internal/grid"
	"github.com/Faultbox/hexterrain/internal/logger"
	"github.com/Faultbox/hexterrain/pkg/hex"
)

var ErrInvalidConfig = errors.New("invalid generator config")

// Config controls terrain generation.
type Config struct {
	// Seed 0 picks a random seed.
	Seed         int64   `yaml:"seed"`
	MaxElevation int     `yaml:"max_elevation"`
	Octaves      int     `yaml:"octaves"`
	Frequency    float64 `yaml:"frequency"`
	Persistence  float64 `yaml:"persistence"`
	// Band colors from lowest to highest elevation, as palette names or
	// #rrggbb. Elevations are split evenly across the bands.
	Palette []string `yaml:"palette"`
}

// DefaultConfig returns settings that produce rolling hills with a few
// cliffs on a default-sized grid.
func DefaultConfig() Config {
	return Config{
		MaxElevation: 6,
		Octaves:      4,
		Frequency:    0.012,
		Persistence:  0.5,
		Palette:      []string{"water", "sand", "grass", "forest", "rock", "snow"},
	}
}

// Validate checks the generator settings.
func (c Config) Validate() error {
	if c.MaxElevation < 0 {
		return fmt.Errorf("%w: max elevation %d", ErrInvalidConfig, c.MaxElevation)
	}
	if c.Octaves < 1 {
		return fmt.Errorf("%w: octaves %d", ErrInvalidConfig, c.Octaves)
	}
	if c.Frequency <= 0 {
		return fmt.Errorf("%w: frequency %v", ErrInvalidConfig, c.Frequency)
	}
	if c.Persistence <= 0 || c.Persistence > 1 {
		return fmt.Errorf("%w: persistence %v", ErrInvalidConfig, c.Persistence)
	}
	if len(c.Palette) == 0 {
		return fmt.Errorf("%w: empty palette", ErrInvalidConfig)
	}
	for _, name := range c.Palette {
		if _, err := hex.ParseColor(name); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
	}
	return nil
}

// Generate assigns an elevation and color to every cell of g and returns the
// seed used. Noise is sampled at the cell centers, so the result only
// depends on the seed, the config and the grid metrics.
func Generate(g *grid.Grid, cfg Config) (int64, error) {
	if err := cfg.Validate(); err != nil {
		return 0, err
	}
	palette := make([]hex.Color, len(cfg.Palette))
	for i, name := range cfg.Palette {
		palette[i], _ = hex.ParseColor(name)
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Int63()
	}
	log := logger.Named("terrain")
	log.Info("generating terrain", zap.Int64("seed", seed), zap.Int("cells", len(g.Cells())))

	noise := opensimplex.NewNormalized(seed)
	for _, c := range g.Cells() {
		p := c.Position()
		n := octaveNoise(noise, float64(p.X), float64(p.Z), cfg.Octaves, cfg.Frequency, cfg.Persistence)
		elevation := int(math.Round(n * float64(cfg.MaxElevation)))
		g.SetElevation(c, elevation)
		g.SetColor(c, bandColor(palette, elevation, cfg.MaxElevation))
	}
	return seed, nil
}

// octaveNoise sums octaves of normalized noise; the result stays in [0, 1].
func octaveNoise(noise opensimplex.Noise, x, y float64, octaves int, frequency, persistence float64) float64 {
	total := 0.0
	amplitude := 1.0
	maxVal := 0.0

	for i := 0; i < octaves; i++ {
		total += noise.Eval2(x*frequency, y*frequency) * amplitude
		maxVal += amplitude
		amplitude *= persistence
		frequency *= 2
	}

	return total / maxVal
}

// bandColor maps elevation in [0, maxElevation] onto the palette.
func bandColor(palette []hex.Color, elevation, maxElevation int) hex.Color {
	if maxElevation == 0 {
		return palette[0]
	}
	i := elevation * len(palette) / (maxElevation + 1)
	return palette[max(0, min(i, len(palette)-1))]
}
