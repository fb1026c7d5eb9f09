// Package lighting provides the directional light used to shade terrain.
package lighting

import (
	gomath "math"

	"github.com/Faultbox/hexterrain/pkg/math"
)

// Sun is a directional light given in degrees.
type Sun struct {
	Azimuth   float32 `yaml:"azimuth"`   // rotation around +Y, 0 points to +Z
	Elevation float32 `yaml:"elevation"` // angle above the horizon
	Ambient   float32 `yaml:"ambient"`   // light reaching faces turned away
}

// DefaultSun returns a late-morning light from the south-west.
func DefaultSun() Sun {
	return Sun{Azimuth: 300, Elevation: 55, Ambient: 0.35}
}

// Direction returns the unit vector pointing towards the sun.
func (s Sun) Direction() math.Vec3 {
	return SunDirection(s.Azimuth, s.Elevation)
}

// SunDirection converts azimuth/elevation angles to a unit light direction.
func SunDirection(azimuth, elevation float32) math.Vec3 {
	az := float64(azimuth) * gomath.Pi / 180
	el := float64(elevation) * gomath.Pi / 180

	return math.Vec3{
		X: float32(gomath.Cos(el) * gomath.Sin(az)),
		Y: float32(gomath.Sin(el)),
		Z: float32(gomath.Cos(el) * gomath.Cos(az)),
	}
}

// Shade returns the Lambert brightness of a face with unit normal n.
func (s Sun) Shade(n math.Vec3) float32 {
	diffuse := max(n.Dot(s.Direction()), 0)
	return s.Ambient + (1-s.Ambient)*diffuse
}
