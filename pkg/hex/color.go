package hex

import "fmt"

// Color is a linear RGBA color with components in [0, 1].
type Color struct {
	R, G, B, A float32
}

// Common terrain palette entries.
var (
	ColorWhite  = Color{1, 1, 1, 1}
	ColorSand   = Color{0.86, 0.80, 0.55, 1}
	ColorGrass  = Color{0.35, 0.62, 0.24, 1}
	ColorForest = Color{0.16, 0.45, 0.16, 1}
	ColorRock   = Color{0.52, 0.49, 0.45, 1}
	ColorSnow   = Color{0.93, 0.94, 0.97, 1}
	ColorWater  = Color{0.20, 0.45, 0.75, 1}
)

var namedColors = map[string]Color{
	"white":  ColorWhite,
	"sand":   ColorSand,
	"grass":  ColorGrass,
	"forest": ColorForest,
	"rock":   ColorRock,
	"snow":   ColorSnow,
	"water":  ColorWater,
}

// RGB creates an opaque color from 8-bit components.
func RGB(r, g, b uint8) Color {
	return Color{
		R: float32(r) / 255.0,
		G: float32(g) / 255.0,
		B: float32(b) / 255.0,
		A: 1.0,
	}
}

// Lerp interpolates linearly from c to other. t is clamped to [0, 1].
func (c Color) Lerp(other Color, t float32) Color {
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return Color{
		R: c.R + (other.R-c.R)*t,
		G: c.G + (other.G-c.G)*t,
		B: c.B + (other.B-c.B)*t,
		A: c.A + (other.A-c.A)*t,
	}
}

// Bytes returns the color as 8-bit RGBA.
func (c Color) Bytes() [4]uint8 {
	return [4]uint8{to8(c.R), to8(c.G), to8(c.B), to8(c.A)}
}

// Hex returns the color as #rrggbb.
func (c Color) Hex() string {
	b := c.Bytes()
	return fmt.Sprintf("#%02x%02x%02x", b[0], b[1], b[2])
}

// NamedColor looks up a palette color by name.
func NamedColor(name string) (Color, bool) {
	c, ok := namedColors[name]
	return c, ok
}

// String returns the palette name of c, or #rrggbb for other colors.
// ParseColor reads both forms back.
func (c Color) String() string {
	for name, pc := range namedColors {
		if pc == c {
			return name
		}
	}
	return c.Hex()
}

// ParseColor accepts a palette name or #rrggbb.
func ParseColor(s string) (Color, error) {
	if c, ok := NamedColor(s); ok {
		return c, nil
	}
	var r, g, b uint8
	if len(s) == 7 && s[0] == '#' {
		if _, err := fmt.Sscanf(s, "#%02x%02x%02x", &r, &g, &b); err == nil {
			return RGB(r, g, b), nil
		}
	}
	return Color{}, fmt.Errorf("invalid color %q", s)
}

func to8(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}
