// Package picking casts rays from the screen into the terrain.
package picking

import (
	gomath "math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/hexterrain/internal/grid"
	"github.com/Faultbox/hexterrain/pkg/hexmesh"
	"github.com/Faultbox/hexterrain/pkg/math"
)

// Ray represents a ray in 3D space with origin and direction.
type Ray struct {
	Origin    math.Vec3
	Direction math.Vec3 // normalized
}

// ScreenToRay converts pixel coordinates to a world-space ray.
// invViewProj is the inverse of the view-projection matrix.
func ScreenToRay(screenX, screenY, viewportW, viewportH float32, invViewProj mgl32.Mat4) Ray {
	ndcX := 2*screenX/viewportW - 1
	ndcY := 1 - 2*screenY/viewportH

	near := mgl32.TransformCoordinate(mgl32.Vec3{ndcX, ndcY, -1}, invViewProj)
	far := mgl32.TransformCoordinate(mgl32.Vec3{ndcX, ndcY, 1}, invViewProj)

	origin := math.Vec3{X: near.X(), Y: near.Y(), Z: near.Z()}
	end := math.Vec3{X: far.X(), Y: far.Y(), Z: far.Z()}
	return Ray{Origin: origin, Direction: end.Sub(origin).Normalize()}
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float32) math.Vec3 {
	return r.Origin.Add(r.Direction.Scale(t))
}

// IntersectPlaneY intersects the ray with the horizontal plane at y.
func (r Ray) IntersectPlaneY(y float32) (math.Vec3, bool) {
	if gomath.Abs(float64(r.Direction.Y)) < 0.001 {
		return math.Vec3{}, false
	}
	t := (y - r.Origin.Y) / r.Direction.Y
	if t < 0 {
		return math.Vec3{}, false
	}
	return r.At(t).WithY(y), true
}

// IntersectBounds returns the distance to the box, or the exit distance
// when the ray starts inside.
func (r Ray) IntersectBounds(b hexmesh.Bounds) (float32, bool) {
	tmin := float32(-gomath.MaxFloat32)
	tmax := float32(gomath.MaxFloat32)

	origin := r.Origin.Array()
	dir := r.Direction.Array()
	lo := b.Min.Array()
	hi := b.Max.Array()

	for axis := 0; axis < 3; axis++ {
		if dir[axis] == 0 {
			if origin[axis] < lo[axis] || origin[axis] > hi[axis] {
				return 0, false
			}
			continue
		}
		t1 := (lo[axis] - origin[axis]) / dir[axis]
		t2 := (hi[axis] - origin[axis]) / dir[axis]
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = max(tmin, t1)
		tmax = min(tmax, t2)
	}

	if tmax < tmin || tmax < 0 {
		return 0, false
	}
	if tmin < 0 {
		return tmax, true
	}
	return tmin, true
}

// PickCell returns the first cell whose top surface the ray hits. Levels
// are tested from maxElevation down, so a high cell hides the cells behind
// it. Slopes between levels resolve to the cell below the hit point.
func PickCell(r Ray, g *grid.Grid, maxElevation int) *grid.Cell {
	m := g.Metrics()
	for e := maxElevation; e >= 0; e-- {
		p, ok := r.IntersectPlaneY(m.Height(e))
		if !ok {
			continue
		}
		if c := g.CellAt(p); c != nil && c.Elevation() == e {
			return c
		}
	}
	return nil
}
