package hex

import "fmt"

// Coordinates are cube coordinates stored as (X, Z); Y is derived.
type Coordinates struct {
	X, Z int
}

// FromOffset converts row-offset coordinates to cube coordinates.
func FromOffset(x, z int) Coordinates {
	return Coordinates{X: x - z/2, Z: z}
}

// Y returns the implicit third cube coordinate.
func (c Coordinates) Y() int {
	return -c.X - c.Z
}

// Offset converts back to row-offset coordinates.
func (c Coordinates) Offset() (x, z int) {
	return c.X + c.Z/2, c.Z
}

// Neighbor returns the coordinates one step away in direction d.
func (c Coordinates) Neighbor(d Direction) Coordinates {
	switch d {
	case NE:
		return Coordinates{c.X, c.Z + 1}
	case E:
		return Coordinates{c.X + 1, c.Z}
	case SE:
		return Coordinates{c.X + 1, c.Z - 1}
	case SW:
		return Coordinates{c.X, c.Z - 1}
	case W:
		return Coordinates{c.X - 1, c.Z}
	case NW:
		return Coordinates{c.X - 1, c.Z + 1}
	}
	return c
}

// DistanceTo returns the number of steps between two cells.
func (c Coordinates) DistanceTo(other Coordinates) int {
	dx := abs(c.X - other.X)
	dy := abs(c.Y() - other.Y())
	dz := abs(c.Z - other.Z)
	return max(dx, dy, dz)
}

func (c Coordinates) String() string {
	return fmt.Sprintf("(%d, %d, %d)", c.X, c.Y(), c.Z)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
