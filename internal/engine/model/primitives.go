package model

import "github.com/Faultbox/midgard-shadow/pkg/math"

// Box returns a closed box with 8 shared corners and outward counter-clockwise winding.
// Corner i has +X when bit 0 is set, +Y for bit 1 and +Z for bit 2.
func Box(lo, hi math.Vec3) *Mesh {
	m := &Mesh{Xyz: make([]math.Vec3, 8)}
	for i := range m.Xyz {
		v := lo
		if i&1 != 0 {
			v.X = hi.X
		}
		if i&2 != 0 {
			v.Y = hi.Y
		}
		if i&4 != 0 {
			v.Z = hi.Z
		}
		m.Xyz[i] = v
	}

	quads := [6][4]uint32{
		{4, 5, 7, 6}, // +Z
		{0, 2, 3, 1}, // -Z
		{1, 3, 7, 5}, // +X
		{0, 4, 6, 2}, // -X
		{2, 6, 7, 3}, // +Y
		{0, 1, 5, 4}, // -Y
	}
	for _, q := range quads {
		m.addQuad(q[0], q[1], q[2], q[3])
	}
	return m
}

// Cube returns a box centered on the origin.
func Cube(half float32) *Mesh {
	return Box(math.Vec3{X: -half, Y: -half, Z: -half}, math.Vec3{X: half, Y: half, Z: half})
}

// Pyramid returns a square pyramid standing on z=0 with its apex at height.
func Pyramid(half, height float32) *Mesh {
	m := &Mesh{Xyz: []math.Vec3{
		{X: -half, Y: -half},
		{X: half, Y: -half},
		{X: half, Y: half},
		{X: -half, Y: half},
		{Z: height},
	}}
	m.addTriangle(0, 1, 4)
	m.addTriangle(1, 2, 4)
	m.addTriangle(2, 3, 4)
	m.addTriangle(3, 0, 4)
	m.addQuad(0, 3, 2, 1)
	return m
}

// Plane returns a square facing +Z at height z.
func Plane(half, z float32) *Mesh {
	m := &Mesh{Xyz: []math.Vec3{
		{X: -half, Y: -half, Z: z},
		{X: half, Y: -half, Z: z},
		{X: half, Y: half, Z: z},
		{X: -half, Y: half, Z: z},
	}}
	m.addQuad(0, 1, 2, 3)
	return m
}

// Triangle returns a single unconnected triangle.
func Triangle(a, b, c math.Vec3) *Mesh {
	m := &Mesh{Xyz: []math.Vec3{a, b, c}}
	m.addTriangle(0, 1, 2)
	return m
}

func (m *Mesh) addTriangle(a, b, c uint32) {
	m.Indexes = append(m.Indexes, a, b, c)
}

func (m *Mesh) addQuad(a, b, c, d uint32) {
	m.addTriangle(a, b, c)
	m.addTriangle(a, c, d)
}
