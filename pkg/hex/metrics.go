package hex

import (
	"errors"
	"fmt"
	gomath "math"

	"github.com/Faultbox/hexterrain/pkg/math"
)

// ErrInvalidMetrics is returned when a MetricsConfig cannot describe a hex grid.
var ErrInvalidMetrics = errors.New("invalid hex metrics")

// outerToInner is the ratio between a hexagon's inner and outer radius.
const outerToInner = float32(0.866025404)

// MetricsConfig holds the tunable hex geometry.
type MetricsConfig struct {
	OuterRadius      float32 `yaml:"outer_radius"`
	SolidFactor      float32 `yaml:"solid_factor"`
	ElevationStep    float32 `yaml:"elevation_step"`
	TerracesPerSlope int     `yaml:"terraces_per_slope"`
}

// DefaultMetricsConfig returns the standard terrain proportions.
func DefaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		OuterRadius:      10,
		SolidFactor:      0.75,
		ElevationStep:    5,
		TerracesPerSlope: 2,
	}
}

// Validate checks that the config produces non-degenerate geometry.
func (c MetricsConfig) Validate() error {
	switch {
	case c.OuterRadius <= 0:
		return fmt.Errorf("%w: outer_radius must be positive, got %v", ErrInvalidMetrics, c.OuterRadius)
	case c.SolidFactor <= 0 || c.SolidFactor >= 1:
		return fmt.Errorf("%w: solid_factor must be in (0, 1), got %v", ErrInvalidMetrics, c.SolidFactor)
	case c.ElevationStep <= 0:
		return fmt.Errorf("%w: elevation_step must be positive, got %v", ErrInvalidMetrics, c.ElevationStep)
	case c.TerracesPerSlope < 0:
		return fmt.Errorf("%w: terraces_per_slope must not be negative, got %d", ErrInvalidMetrics, c.TerracesPerSlope)
	}
	return nil
}

// Metrics is the read-only geometry table for pointy-top hexagons. The zero
// value is not usable; build one with NewMetrics or DefaultMetrics.
type Metrics struct {
	outerRadius      float32
	innerRadius      float32
	solidFactor      float32
	blendFactor      float32
	elevationStep    float32
	terracesPerSlope int
	terraceSteps     int
	horizontalStep   float32
	verticalStep     float32

	// corners repeats the first corner at the end so corner[d+1] is always valid.
	corners [DirectionCount + 1]math.Vec3
}

// NewMetrics validates cfg and precomputes the corner table.
func NewMetrics(cfg MetricsConfig) (Metrics, error) {
	if err := cfg.Validate(); err != nil {
		return Metrics{}, err
	}

	outer := cfg.OuterRadius
	inner := outer * outerToInner
	m := Metrics{
		outerRadius:      outer,
		innerRadius:      inner,
		solidFactor:      cfg.SolidFactor,
		blendFactor:      1 - cfg.SolidFactor,
		elevationStep:    cfg.ElevationStep,
		terracesPerSlope: cfg.TerracesPerSlope,
		terraceSteps:     cfg.TerracesPerSlope*2 + 1,
	}
	m.horizontalStep = 1 / float32(m.terraceSteps)
	m.verticalStep = 1 / float32(m.terracesPerSlope+1)
	m.corners = [DirectionCount + 1]math.Vec3{
		{X: 0, Y: 0, Z: outer},
		{X: inner, Y: 0, Z: 0.5 * outer},
		{X: inner, Y: 0, Z: -0.5 * outer},
		{X: 0, Y: 0, Z: -outer},
		{X: -inner, Y: 0, Z: -0.5 * outer},
		{X: -inner, Y: 0, Z: 0.5 * outer},
		{X: 0, Y: 0, Z: outer},
	}
	return m, nil
}

// DefaultMetrics returns metrics built from DefaultMetricsConfig.
func DefaultMetrics() Metrics {
	m, err := NewMetrics(DefaultMetricsConfig())
	if err != nil {
		panic(err)
	}
	return m
}

// OuterRadius is the center-to-corner distance.
func (m Metrics) OuterRadius() float32 { return m.outerRadius }

// InnerRadius is the center-to-edge distance.
func (m Metrics) InnerRadius() float32 { return m.innerRadius }

// SolidFactor is the share of the radius covered by a cell's own color.
func (m Metrics) SolidFactor() float32 { return m.solidFactor }

// BlendFactor is the share of the radius used by bridges to neighbors.
func (m Metrics) BlendFactor() float32 { return m.blendFactor }

// ElevationStep converts one elevation level to world height.
func (m Metrics) ElevationStep() float32 { return m.elevationStep }

// TerracesPerSlope is the number of flat treads on a slope.
func (m Metrics) TerracesPerSlope() int { return m.terracesPerSlope }

// TerraceSteps is the number of interpolation steps across a slope. Always odd.
func (m Metrics) TerraceSteps() int { return m.terraceSteps }

// Corner returns the outer corner between direction d and the previous one.
func (m Metrics) Corner(d Direction) math.Vec3 {
	return m.corners[d]
}

// FirstSolidCorner returns the first inner corner of the solid region facing d.
func (m Metrics) FirstSolidCorner(d Direction) math.Vec3 {
	return m.corners[d].Scale(m.solidFactor)
}

// SecondSolidCorner returns the second inner corner of the solid region facing d.
func (m Metrics) SecondSolidCorner(d Direction) math.Vec3 {
	return m.corners[d+1].Scale(m.solidFactor)
}

// Bridge returns the horizontal offset from a solid edge in direction d to
// the matching solid edge of the neighbor.
func (m Metrics) Bridge(d Direction) math.Vec3 {
	return m.corners[d].Add(m.corners[d+1]).Scale(m.blendFactor)
}

// Height converts an elevation level to world height.
func (m Metrics) Height(elevation int) float32 {
	return float32(elevation) * m.elevationStep
}

// TerraceLerp returns the point at the given terrace step between a and b.
// Horizontal position advances every step; height only advances on odd
// steps, which produces alternating treads and risers. Step TerraceSteps()
// returns b exactly.
func (m Metrics) TerraceLerp(a, b math.Vec3, step int) math.Vec3 {
	if step <= 0 {
		return a
	}
	if step >= m.terraceSteps {
		return b
	}
	h := float32(step) * m.horizontalStep
	a.X += (b.X - a.X) * h
	a.Z += (b.Z - a.Z) * h
	v := float32((step+1)/2) * m.verticalStep
	a.Y += (b.Y - a.Y) * v
	return a
}

// TerraceLerpColor blends colors linearly across terrace steps.
func (m Metrics) TerraceLerpColor(a, b Color, step int) Color {
	if step <= 0 {
		return a
	}
	if step >= m.terraceSteps {
		return b
	}
	return a.Lerp(b, float32(step)*m.horizontalStep)
}

// OffsetPosition returns the local center of the cell at offset coordinates
// (x, z) at elevation zero. Odd rows are shifted half a cell to the right.
func (m Metrics) OffsetPosition(x, z int) math.Vec3 {
	return math.Vec3{
		X: (float32(x) + float32(z)*0.5 - float32(z/2)) * (m.innerRadius * 2),
		Y: 0,
		Z: float32(z) * (m.outerRadius * 1.5),
	}
}

// CoordinatesAt returns the cube coordinates of the cell containing the
// local position p. Height is ignored.
func (m Metrics) CoordinatesAt(p math.Vec3) Coordinates {
	x := float64(p.X / (m.innerRadius * 2))
	y := -x
	offset := float64(p.Z / (m.outerRadius * 3))
	x -= offset
	y -= offset

	iX := int(gomath.Round(x))
	iY := int(gomath.Round(y))
	iZ := int(gomath.Round(-x - y))

	if iX+iY+iZ != 0 {
		dX := gomath.Abs(x - float64(iX))
		dY := gomath.Abs(y - float64(iY))
		dZ := gomath.Abs(-x - y - float64(iZ))

		if dX > dY && dX > dZ {
			iX = -iY - iZ
		} else if dZ > dY {
			iZ = -iX - iY
		}
	}
	return Coordinates{X: iX, Z: iZ}
}
