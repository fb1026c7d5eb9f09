package hex

import "github.com/Faultbox/hexterrain/pkg/math"

// Cell is the read-only view of a terrain cell that triangulation needs.
// Implementations keep Position().Y equal to Elevation() times the elevation
// step of the geometry in use.
type Cell interface {
	Position() math.Vec3
	Elevation() int
	Color() Color
	// Neighbor returns nil at the grid boundary.
	Neighbor(d Direction) Cell
}
