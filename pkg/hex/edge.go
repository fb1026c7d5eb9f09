package hex

// EdgeType classifies the elevation relationship between two adjacent cells.
type EdgeType int

const (
	// Flat edges join cells at the same elevation.
	Flat EdgeType = iota
	// Slope edges join cells one elevation level apart and are terraced.
	Slope
	// Cliff edges join cells two or more levels apart.
	Cliff
)

func (t EdgeType) String() string {
	switch t {
	case Flat:
		return "flat"
	case Slope:
		return "slope"
	case Cliff:
		return "cliff"
	}
	return "unknown"
}

// EdgeTypeOf classifies two elevations. The result is symmetric.
func EdgeTypeOf(elevation1, elevation2 int) EdgeType {
	diff := elevation1 - elevation2
	if diff < 0 {
		diff = -diff
	}
	switch diff {
	case 0:
		return Flat
	case 1:
		return Slope
	default:
		return Cliff
	}
}

// Classify returns the edge type between two cells.
func Classify(a, b Cell) EdgeType {
	return EdgeTypeOf(a.Elevation(), b.Elevation())
}

// ClassifyDirection returns the edge type between c and its neighbor in
// direction d. The neighbor must exist.
func ClassifyDirection(c Cell, d Direction) EdgeType {
	return Classify(c, c.Neighbor(d))
}
