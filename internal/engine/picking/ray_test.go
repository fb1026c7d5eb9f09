package picking

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/hexterrain/internal/grid"
	"github.com/Faultbox/hexterrain/pkg/hex"
	"github.com/Faultbox/hexterrain/pkg/hexmesh"
	"github.com/Faultbox/hexterrain/pkg/math"
)

func down(x, z float32) Ray {
	return Ray{Origin: math.Vec3{X: x, Y: 100, Z: z}, Direction: math.Vec3{Y: -1}}
}

func TestScreenToRayCenter(t *testing.T) {
	eye := mgl32.Vec3{0, 50, 50}
	view := mgl32.LookAtV(eye, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0})
	proj := mgl32.Perspective(mgl32.DegToRad(60), 4.0/3.0, 1, 1000)
	inv := proj.Mul4(view).Inv()

	r := ScreenToRay(400, 300, 800, 600, inv)
	p, ok := r.IntersectPlaneY(0)
	if !ok {
		t.Fatal("center ray misses the ground")
	}
	if p.Length() > 0.1 {
		t.Errorf("center ray hits %v, want origin", p)
	}
}

func TestIntersectPlaneY(t *testing.T) {
	tests := []struct {
		name string
		ray  Ray
		y    float32
		want math.Vec3
		ok   bool
	}{
		{"straight down", down(3, 4), 10, math.Vec3{X: 3, Y: 10, Z: 4}, true},
		{"parallel", Ray{Direction: math.Vec3{X: 1}}, 0, math.Vec3{}, false},
		{"behind", Ray{Direction: math.Vec3{Y: 1}}, -5, math.Vec3{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.ray.IntersectPlaneY(tt.y)
			if ok != tt.ok || got != tt.want {
				t.Errorf("IntersectPlaneY(%v) = %v, %v; want %v, %v", tt.y, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestIntersectBounds(t *testing.T) {
	box := hexmesh.Bounds{Min: math.Vec3{X: -1, Y: -1, Z: -1}, Max: math.Vec3{X: 1, Y: 1, Z: 1}}

	if d, ok := down(0, 0).IntersectBounds(box); !ok || d != 99 {
		t.Errorf("IntersectBounds() = %v, %v; want 99, true", d, ok)
	}
	if _, ok := down(5, 0).IntersectBounds(box); ok {
		t.Error("IntersectBounds() hit a box beside the ray")
	}
	inside := Ray{Direction: math.Vec3{X: 1}}
	if d, ok := inside.IntersectBounds(box); !ok || d != 1 {
		t.Errorf("IntersectBounds() from inside = %v, %v; want 1, true", d, ok)
	}
}

func TestPickCell(t *testing.T) {
	g, err := grid.New(grid.Config{ChunkCountX: 1, ChunkCountZ: 1}, hex.DefaultMetrics())
	if err != nil {
		t.Fatalf("grid.New() error = %v", err)
	}
	high := g.Cell(2, 2)
	g.SetElevation(high, 3)

	p := high.Position()
	if got := PickCell(down(p.X, p.Z), g, 3); got != high {
		t.Errorf("PickCell() over raised cell = %v, want %v", got, high)
	}

	low := g.Cell(0, 0).Position()
	if got := PickCell(down(low.X, low.Z), g, 3); got != g.Cell(0, 0) {
		t.Errorf("PickCell() over flat cell = %v, want (0, 0)", got)
	}

	if got := PickCell(down(-500, -500), g, 3); got != nil {
		t.Errorf("PickCell() outside grid = %v, want nil", got)
	}
}
