package shadow

import (
	gomath "math"
	"testing"

	"github.com/Faultbox/midgard-shadow/internal/engine/model"
	"github.com/Faultbox/midgard-shadow/pkg/math"
)

func TestClampLight(t *testing.T) {
	ground := math.Vec3{Z: 1}

	tests := []struct {
		name    string
		light   math.Vec3
		wantDot float32
		exact   bool
	}{
		{"grazing", math.Vec3{X: float32(gomath.Sqrt(1 - 0.09)), Z: 0.3}, 0.5, true},
		{"from below", math.Vec3{X: 0.6, Z: -0.8}, 0.5, false},
		{"steep", math.Vec3{X: 0.6, Z: 0.8}, 0.8, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClampLight(tt.light, ground)
			d := got.Dot(ground)
			if tt.exact && d != tt.wantDot {
				t.Errorf("dot(corrected, ground) = %v, want exactly %v", d, tt.wantDot)
			}
			if gomath.Abs(float64(d-tt.wantDot)) > 1e-6 {
				t.Errorf("dot(corrected, ground) = %v, want %v", d, tt.wantDot)
			}
		})
	}
}

func TestProjectionDeformFlattens(t *testing.T) {
	or := math.Orientation{Origin: math.Vec3{X: 3, Y: -2, Z: 5}, Axis: math.YawAxes(0.7)}
	ground, dist := GroundPlane(or, 1)
	if ground.Distance(math.Vec3{Z: 1}) > 1e-6 {
		t.Fatalf("ground = %v, want +Z for a yaw-only entity", ground)
	}
	if dist != 4 {
		t.Fatalf("groundDist = %v, want 4", dist)
	}

	mesh := model.Pyramid(2, 6)
	light := math.Vec3{X: float32(gomath.Sqrt(1 - 0.09)), Z: 0.3}

	corrected, ok := ProjectionDeform(mesh.Xyz, ground, dist, light)
	if !ok {
		t.Fatal("unit ground rejected")
	}
	if d := corrected.Dot(ground); d != 0.5 {
		t.Errorf("dot(corrected, ground) = %v, want 0.5", d)
	}
	for i, v := range mesh.Xyz {
		if h := v.Dot(ground) + dist; gomath.Abs(float64(h)) > 1e-4 {
			t.Errorf("vertex %d at height %v above the plane", i, h)
		}
	}
}

func TestProjectionDeformTiltedEntity(t *testing.T) {
	// Entity rolled 90 degrees: its local Y axis points up.
	or := math.Orientation{
		Origin: math.Vec3{Z: 10},
		Axis:   math.Axes{{X: 1}, {Z: 1}, {Y: -1}},
	}
	ground, dist := GroundPlane(or, 0)
	if ground != (math.Vec3{Y: 1}) || dist != 10 {
		t.Fatalf("ground=%v dist=%v", ground, dist)
	}

	xyz := []math.Vec3{{X: 1, Y: 3, Z: 2}}
	ProjectionDeform(xyz, ground, dist, math.Vec3{Y: 1})
	if world := or.PointToWorld(xyz[0]); gomath.Abs(float64(world.Z)) > 1e-5 {
		t.Errorf("flattened vertex at world z=%v, want 0", world.Z)
	}
}

func TestProjectionDeformGroundLength(t *testing.T) {
	tests := []struct {
		name   string
		ground math.Vec3
		ok     bool
	}{
		{"unit", math.Vec3{Z: 1}, true},
		{"scaled", math.Vec3{Z: 4}, true},
		{"degenerate", math.Vec3{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			xyz := []math.Vec3{{X: 1, Y: 2, Z: 3}, {X: -1, Z: 7}}
			orig := append([]math.Vec3(nil), xyz...)

			_, ok := ProjectionDeform(xyz, tt.ground, 1, math.Vec3{X: 0.6, Z: 0.8})
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			for i, v := range xyz {
				f := []float64{float64(v.X), float64(v.Y), float64(v.Z)}
				for _, c := range f {
					if gomath.IsNaN(c) || gomath.IsInf(c, 0) {
						t.Fatalf("vertex %d = %v", i, v)
					}
				}
				if !tt.ok && v != orig[i] {
					t.Errorf("vertex %d moved to %v on a degenerate ground", i, v)
				}
				if tt.ok && gomath.Abs(float64(v.Z+1)) > 1e-5 {
					t.Errorf("vertex %d at z=%v, want -1", i, v.Z)
				}
			}
		})
	}
}
