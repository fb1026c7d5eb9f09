package hex

import "testing"

func TestFromOffset(t *testing.T) {
	tests := []struct {
		x, z int
		want Coordinates
	}{
		{0, 0, Coordinates{0, 0}},
		{3, 0, Coordinates{3, 0}},
		{0, 1, Coordinates{0, 1}},
		{0, 2, Coordinates{-1, 2}},
		{4, 5, Coordinates{2, 5}},
	}
	for _, tt := range tests {
		got := FromOffset(tt.x, tt.z)
		if got != tt.want {
			t.Errorf("FromOffset(%d, %d) = %v, want %v", tt.x, tt.z, got, tt.want)
		}
		if x, z := got.Offset(); x != tt.x || z != tt.z {
			t.Errorf("%v.Offset() = (%d, %d), want (%d, %d)", got, x, z, tt.x, tt.z)
		}
		if got.X+got.Y()+got.Z != 0 {
			t.Errorf("%v is not a valid cube coordinate", got)
		}
	}
}

func TestCoordinatesNeighbor(t *testing.T) {
	c := Coordinates{2, 3}
	for _, d := range Directions {
		n := c.Neighbor(d)
		if c.DistanceTo(n) != 1 {
			t.Errorf("%v neighbor %v is %d steps away", d, n, c.DistanceTo(n))
		}
		if back := n.Neighbor(d.Opposite()); back != c {
			t.Errorf("%v then %v = %v, want %v", d, d.Opposite(), back, c)
		}
	}
}

func TestCoordinatesString(t *testing.T) {
	if got := (Coordinates{1, 2}).String(); got != "(1, -3, 2)" {
		t.Errorf("String() = %q", got)
	}
}
