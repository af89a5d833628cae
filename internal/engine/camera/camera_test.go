package camera

import (
	gomath "math"
	"testing"

	"github.com/Faultbox/midgard-shadow/pkg/math"
)

func near(a, b float32) bool {
	return gomath.Abs(float64(a-b)) < 1e-3
}

func TestPositionZUp(t *testing.T) {
	c := NewOrbitCamera()
	c.Distance = 10
	c.Pitch = 0
	c.Yaw = 0

	p := c.Position()
	if !near(p.X, 10) || !near(p.Y, 0) || !near(p.Z, 0) {
		t.Errorf("level camera at %+v, want (10,0,0)", p)
	}

	c.Pitch = gomath.Pi / 2
	p = c.Position()
	if !near(p.Z, 10) || !near(p.X, 0) {
		t.Errorf("overhead camera at %+v, want (0,0,10)", p)
	}
}

func TestViewLooksAtCenter(t *testing.T) {
	c := NewOrbitCamera()
	c.Center = math.Vec3{X: 5, Y: -3, Z: 2}

	eye := c.ViewMatrix().TransformVec3(c.Center)
	if !near(eye.X, 0) || !near(eye.Y, 0) || !near(eye.Z, -c.Distance) {
		t.Errorf("center in eye space = %+v, want (0,0,%v)", eye, -c.Distance)
	}
}

func TestMirrorFlipsX(t *testing.T) {
	c := NewOrbitCamera()
	p := math.Vec3{X: 30, Y: 10, Z: 5}

	plain := c.ViewMatrix().TransformVec3(p)
	c.Mirror = true
	mirrored := c.ViewMatrix().TransformVec3(p)

	if !near(plain.X, -mirrored.X) || !near(plain.Y, mirrored.Y) || !near(plain.Z, mirrored.Z) {
		t.Errorf("mirrored %+v is not the reflection of %+v", mirrored, plain)
	}
}

func TestClamps(t *testing.T) {
	c := NewOrbitCamera()

	c.HandleDrag(0, 1e6)
	if c.Pitch != c.MaxPitch {
		t.Errorf("pitch = %v, want clamp to %v", c.Pitch, c.MaxPitch)
	}
	c.HandleZoom(100)
	if c.Distance != c.MinDistance {
		t.Errorf("distance = %v, want clamp to %v", c.Distance, c.MinDistance)
	}

	c.FitToBounds(math.Vec3{X: -100, Y: -100}, math.Vec3{X: 100, Y: 100, Z: 50})
	if !near(c.Center.Z, 25) || c.Distance <= 100 {
		t.Errorf("fit gave center %+v distance %v", c.Center, c.Distance)
	}
}
