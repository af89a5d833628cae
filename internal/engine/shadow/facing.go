package shadow

import "github.com/Faultbox/midgard-shadow/pkg/math"

// Facing reports whether triangle a,b,c faces the light. Zero-area triangles and triangles
// seen edge-on produce a zero dot product and count as not facing.
func Facing(a, b, c, lightDir math.Vec3) bool {
	normal := b.Sub(a).Cross(c.Sub(a))
	return normal.Dot(lightDir) > 0
}

// ClassifyFacing computes the facing flag of every triangle in indexes, stores it in facing
// and registers the three directed edges a→b, b→c and c→a of each triangle in table.
//
// The table must have been Reset for len(xyz) vertexes. facing needs room for
// len(indexes)/3 flags; triangles referencing vertexes outside xyz are skipped and marked
// not facing. It returns the number of light-facing triangles.
func ClassifyFacing(xyz []math.Vec3, indexes []uint32, lightDir math.Vec3, facing []bool, table *EdgeTable) int {
	numTris := len(indexes) / 3
	n := uint32(len(xyz))
	lit := 0

	for tri := 0; tri < numTris; tri++ {
		i1 := indexes[tri*3+0]
		i2 := indexes[tri*3+1]
		i3 := indexes[tri*3+2]
		if i1 >= n || i2 >= n || i3 >= n {
			facing[tri] = false
			continue
		}

		f := Facing(xyz[i1], xyz[i2], xyz[i3], lightDir)
		facing[tri] = f
		if f {
			lit++
		}

		table.Add(i1, i2, f)
		table.Add(i2, i3, f)
		table.Add(i3, i1, f)
	}
	return lit
}
