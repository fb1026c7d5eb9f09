// Package hex defines the hexagonal topology shared by the grid and the mesh
// triangulator: directions, edge classification, colors, cube coordinates and
// the per-direction geometry table.
package hex

// Direction names one of the six edges of a pointy-top hexagon, clockwise
// starting at north-east.
type Direction int

const (
	NE Direction = iota
	E
	SE
	SW
	W
	NW
)

// DirectionCount is the number of hex directions.
const DirectionCount = 6

// Directions lists every direction in triangulation order.
var Directions = [DirectionCount]Direction{NE, E, SE, SW, W, NW}

var directionNames = [DirectionCount]string{"NE", "E", "SE", "SW", "W", "NW"}

// Opposite returns the direction pointing back across the same edge.
func (d Direction) Opposite() Direction {
	if d < 3 {
		return d + 3
	}
	return d - 3
}

// Previous returns the direction counter-clockwise of d.
func (d Direction) Previous() Direction {
	if d == NE {
		return NW
	}
	return d - 1
}

// Next returns the direction clockwise of d.
func (d Direction) Next() Direction {
	if d == NW {
		return NE
	}
	return d + 1
}

// Valid reports whether d is one of the six directions.
func (d Direction) Valid() bool {
	return d >= NE && d <= NW
}

func (d Direction) String() string {
	if !d.Valid() {
		return "Direction(?)"
	}
	return directionNames[d]
}
