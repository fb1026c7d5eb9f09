package camera

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/hexterrain/pkg/hexmesh"
	"github.com/Faultbox/hexterrain/pkg/math"
)

func TestPositionDistance(t *testing.T) {
	c := NewOrbitCamera(60)
	c.Focus = math.Vec3{X: 10, Y: 5, Z: -3}
	c.Yaw = 1.2

	if d := c.Position().Distance(c.Focus); d < c.Distance-0.01 || d > c.Distance+0.01 {
		t.Errorf("distance to focus = %v, want %v", d, c.Distance)
	}
	if c.Position().Y <= c.Focus.Y {
		t.Errorf("camera at %v is not above focus %v", c.Position(), c.Focus)
	}
}

func TestViewMatrixCentersFocus(t *testing.T) {
	c := NewOrbitCamera(60)
	c.Focus = math.Vec3{X: 40, Y: 10, Z: 25}

	p := mgl32.TransformCoordinate(toMgl(c.Focus), c.ViewProjection(800, 600))
	if !mgl32.FloatEqualThreshold(p.X(), 0, 1e-4) || !mgl32.FloatEqualThreshold(p.Y(), 0, 1e-4) {
		t.Errorf("focus projects to %v, want screen center", p)
	}
}

func TestClamps(t *testing.T) {
	c := NewOrbitCamera(60)

	c.HandleDrag(0, 1e6)
	if c.Pitch != c.MaxPitch {
		t.Errorf("Pitch = %v, want %v", c.Pitch, c.MaxPitch)
	}
	c.HandleDrag(0, -1e6)
	if c.Pitch != c.MinPitch {
		t.Errorf("Pitch = %v, want %v", c.Pitch, c.MinPitch)
	}

	for i := 0; i < 100; i++ {
		c.HandleZoom(1)
	}
	if c.Distance != c.MinDistance {
		t.Errorf("Distance = %v, want %v", c.Distance, c.MinDistance)
	}
}

func TestHandleMovementForward(t *testing.T) {
	c := NewOrbitCamera(60)
	c.HandleMovement(1, 0)

	// Camera sits at +Z with yaw 0, so forward moves the focus toward -Z.
	if c.Focus.Z >= 0 || c.Focus.X != 0 {
		t.Errorf("Focus = %v, want movement along -Z", c.Focus)
	}
}

func TestFitToBounds(t *testing.T) {
	c := NewOrbitCamera(60)
	c.FitToBounds(hexmesh.Bounds{
		Min: math.Vec3{X: 0, Y: 0, Z: 0},
		Max: math.Vec3{X: 200, Y: 30, Z: 100},
	})
	if c.Focus != (math.Vec3{X: 100, Y: 15, Z: 50}) {
		t.Errorf("Focus = %v, want bounds center", c.Focus)
	}
	if !mgl32.FloatEqualThreshold(c.Distance, 180, 1e-3) {
		t.Errorf("Distance = %v, want 180", c.Distance)
	}
}
