package math

import (
	"math"
	"testing"
)

func TestIdentity(t *testing.T) {
	m := Identity()
	// Diagonal should be 1
	if m[0] != 1 || m[5] != 1 || m[10] != 1 || m[15] != 1 {
		t.Error("Identity diagonal should be 1")
	}
	if m[1] != 0 || m[4] != 0 {
		t.Error("Identity off-diagonal should be 0")
	}
}

func TestMulIdentity(t *testing.T) {
	m := Translate(1, 2, 3)
	result := m.Mul(Identity())

	for i := 0; i < 16; i++ {
		if result[i] != m[i] {
			t.Errorf("M * I should equal M, element %d: got %f, want %f", i, result[i], m[i])
		}
	}
}

func TestTransformVec3(t *testing.T) {
	m := Translate(10, 20, 30).Mul(Scale(2, 2, 2))
	got := m.TransformVec3(Vec3{1, 2, 3})
	want := Vec3{12, 24, 36}
	if got != want {
		t.Errorf("TransformVec3: got %v, want %v", got, want)
	}
}

func TestLookAtZUp(t *testing.T) {
	// Eye above the origin on +X looking back at it; the origin must land on -Z in view space.
	view := LookAt(Vec3{10, 0, 0}, Vec3{}, Vec3{0, 0, 1})
	p := view.TransformVec3(Vec3{})
	if math.Abs(float64(p.X)) > 1e-5 || math.Abs(float64(p.Y)) > 1e-5 {
		t.Errorf("origin should be centered, got %v", p)
	}
	if math.Abs(float64(p.Z+10)) > 1e-5 {
		t.Errorf("origin depth: got %f, want -10", p.Z)
	}
}

func TestPerspectiveDepthRange(t *testing.T) {
	proj := Perspective(float32(math.Pi/2), 1, 1, 100)

	near := proj.TransformVec3(Vec3{0, 0, -1})
	far := proj.TransformVec3(Vec3{0, 0, -100})
	if math.Abs(float64(near.Z+1)) > 1e-4 {
		t.Errorf("near plane NDC z: got %f, want -1", near.Z)
	}
	if math.Abs(float64(far.Z-1)) > 1e-4 {
		t.Errorf("far plane NDC z: got %f, want 1", far.Z)
	}
}

func TestInverse(t *testing.T) {
	m := Perspective(1.0, 1.5, 1, 100).Mul(LookAt(Vec3{X: 10, Y: -5, Z: 8}, Vec3{}, Vec3{Z: 1}))
	p := m.Mul(m.Inverse())
	id := Identity()
	for i := range p {
		if d := p[i] - id[i]; d > 1e-4 || d < -1e-4 {
			t.Fatalf("m * inverse(m) = %v, want identity", p)
		}
	}

	if Scale(0, 1, 1).Inverse() != Identity() {
		t.Error("singular matrix should invert to identity")
	}
}

func TestMulVec4(t *testing.T) {
	got := Translate(1, 2, 3).MulVec4(Vec4{1, 1, 1, 1})
	if got != (Vec4{2, 3, 4, 1}) {
		t.Errorf("MulVec4 = %v, want [2 3 4 1]", got)
	}
}
