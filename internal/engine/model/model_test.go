package model

import (
	"testing"

	"github.com/Faultbox/midgard-shadow/pkg/math"
)

// Every triangle of a closed primitive must face away from its center.
func TestPrimitivesWindOutward(t *testing.T) {
	tests := []struct {
		name string
		mesh *Mesh
	}{
		{"cube", Cube(1)},
		{"box", Box(math.Vec3{X: 1, Y: 2, Z: 3}, math.Vec3{X: 4, Y: 8, Z: 5})},
		{"pyramid", Pyramid(2, 3)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			center := tt.mesh.Bounds().Center()
			if tt.name == "pyramid" {
				center = math.Vec3{Z: 1}
			}
			for tri := 0; tri < tt.mesh.NumTriangles(); tri++ {
				a := tt.mesh.Xyz[tt.mesh.Indexes[tri*3]]
				b := tt.mesh.Xyz[tt.mesh.Indexes[tri*3+1]]
				c := tt.mesh.Xyz[tt.mesh.Indexes[tri*3+2]]
				normal := b.Sub(a).Cross(c.Sub(a))
				if normal.Dot(a.Sub(center)) <= 0 {
					t.Errorf("triangle %d winds inward", tri)
				}
			}
		})
	}
}

// In a closed mesh every directed edge appears once and its reverse appears once.
func TestPrimitivesClosed(t *testing.T) {
	for name, m := range map[string]*Mesh{"cube": Cube(1), "pyramid": Pyramid(1, 1)} {
		t.Run(name, func(t *testing.T) {
			edges := make(map[[2]uint32]int)
			for tri := 0; tri < m.NumTriangles(); tri++ {
				i := m.Indexes[tri*3 : tri*3+3]
				edges[[2]uint32{i[0], i[1]}]++
				edges[[2]uint32{i[1], i[2]}]++
				edges[[2]uint32{i[2], i[0]}]++
			}
			for e, n := range edges {
				if n != 1 {
					t.Errorf("edge %v used %d times", e, n)
				}
				if edges[[2]uint32{e[1], e[0]}] != 1 {
					t.Errorf("edge %v has no twin", e)
				}
			}
		})
	}
}

func TestBounds(t *testing.T) {
	b := Box(math.Vec3{X: -1, Y: -2, Z: -3}, math.Vec3{X: 1, Y: 2, Z: 3}).Bounds()
	if b.Min != (math.Vec3{X: -1, Y: -2, Z: -3}) || b.Max != (math.Vec3{X: 1, Y: 2, Z: 3}) {
		t.Errorf("unexpected bounds %+v", b)
	}
	if b.Center() != (math.Vec3{}) {
		t.Errorf("expected centered box, got %v", b.Center())
	}
	if (&Mesh{}).Bounds() != (Bounds{}) {
		t.Error("empty mesh should have zero bounds")
	}
}

func TestAppendRebasesIndexes(t *testing.T) {
	m := Triangle(math.Vec3{}, math.Vec3{X: 1}, math.Vec3{Y: 1})
	m.Append(Triangle(math.Vec3{Z: 1}, math.Vec3{X: 1, Z: 1}, math.Vec3{Y: 1, Z: 1}))

	want := []uint32{0, 1, 2, 3, 4, 5}
	for i, idx := range m.Indexes {
		if idx != want[i] {
			t.Fatalf("Indexes = %v, want %v", m.Indexes, want)
		}
	}
}

func TestWeld(t *testing.T) {
	// Two triangles of a quad exported with separate vertexes.
	m := &Mesh{
		Xyz: []math.Vec3{
			{}, {X: 1}, {X: 1, Y: 1},
			{}, {X: 1, Y: 1}, {Y: 1},
		},
		Indexes: []uint32{0, 1, 2, 3, 4, 5},
	}
	w := Weld(m, 1e-4)
	if len(w.Xyz) != 4 {
		t.Fatalf("expected 4 welded vertexes, got %d", len(w.Xyz))
	}
	want := []uint32{0, 1, 2, 0, 2, 3}
	for i, idx := range w.Indexes {
		if idx != want[i] {
			t.Fatalf("Indexes = %v, want %v", w.Indexes, want)
		}
	}
}

func TestTransformed(t *testing.T) {
	or := math.Orientation{Origin: math.Vec3{X: 10}, Axis: math.IdentityAxes()}
	m := Cube(1).Transformed(or)
	if got := m.Bounds().Center(); got != (math.Vec3{X: 10}) {
		t.Errorf("center = %v, want (10,0,0)", got)
	}
}
