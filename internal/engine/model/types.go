// Package model provides indexed triangle meshes for shadow casters.
package model

import "github.com/Faultbox/midgard-shadow/pkg/math"

// Mesh is an indexed triangle list. Triangles that share an edge must share vertex indexes,
// otherwise the edge cannot be paired during silhouette detection.
type Mesh struct {
	Xyz     []math.Vec3
	Indexes []uint32
}

// NumTriangles returns the number of complete index triples.
func (m *Mesh) NumTriangles() int {
	return len(m.Indexes) / 3
}

// Bounds holds the axis-aligned bounding box of a mesh.
type Bounds struct {
	Min math.Vec3
	Max math.Vec3
}

// Center returns the midpoint of the box.
func (b Bounds) Center() math.Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Radius returns the distance from center to corner.
func (b Bounds) Radius() float32 {
	return b.Max.Sub(b.Min).Length() / 2
}

// Bounds computes the bounding box of all vertexes. An empty mesh yields a zero box.
func (m *Mesh) Bounds() Bounds {
	if len(m.Xyz) == 0 {
		return Bounds{}
	}
	b := Bounds{Min: m.Xyz[0], Max: m.Xyz[0]}
	for _, v := range m.Xyz[1:] {
		b.Min = b.Min.Min(v)
		b.Max = b.Max.Max(v)
	}
	return b
}

// Append adds other's triangles, rebasing its indexes.
func (m *Mesh) Append(other *Mesh) {
	base := uint32(len(m.Xyz))
	m.Xyz = append(m.Xyz, other.Xyz...)
	for _, idx := range other.Indexes {
		m.Indexes = append(m.Indexes, idx+base)
	}
}

// Transformed returns a copy with every vertex placed by or.
func (m *Mesh) Transformed(or math.Orientation) *Mesh {
	out := &Mesh{
		Xyz:     make([]math.Vec3, len(m.Xyz)),
		Indexes: append([]uint32(nil), m.Indexes...),
	}
	for i, v := range m.Xyz {
		out.Xyz[i] = or.PointToWorld(v)
	}
	return out
}

// Weld merges vertexes closer than epsilon and rewrites indexes to the survivors.
// Meshes exported with per-face vertexes need this before they can cast volumes.
func Weld(m *Mesh, epsilon float32) *Mesh {
	out := &Mesh{Indexes: make([]uint32, len(m.Indexes))}
	remap := make([]uint32, len(m.Xyz))

	for i, v := range m.Xyz {
		found := -1
		for j, w := range out.Xyz {
			if v.Distance(w) <= epsilon {
				found = j
				break
			}
		}
		if found < 0 {
			found = len(out.Xyz)
			out.Xyz = append(out.Xyz, v)
		}
		remap[i] = uint32(found)
	}

	for i, idx := range m.Indexes {
		out.Indexes[i] = remap[idx]
	}
	return out
}
