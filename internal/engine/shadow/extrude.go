package shadow

import "github.com/Faultbox/midgard-shadow/pkg/math"

// DefaultThrowDistance is how far vertexes are pushed away from the light, in world units.
// It only has to exceed the scale of anything visible.
const DefaultThrowDistance = 512

// Quad is one wall of a shadow volume: the original and extruded copies of both edge ends.
type Quad [4]math.Vec3

// Extrude writes xyz[i] - throw*lightDir into dst[i] for every vertex and returns
// dst[:len(xyz)]. dst must have capacity for len(xyz) entries.
func Extrude(dst, xyz []math.Vec3, lightDir math.Vec3, throw float32) []math.Vec3 {
	dst = dst[:len(xyz)]
	for i, v := range xyz {
		dst[i] = v.MulAdd(-throw, lightDir)
	}
	return dst
}

// BuildQuads appends one quad per silhouette edge in the order
// orig[From], extruded[From], orig[To], extruded[To].
func BuildQuads(edges []Edge, orig, extruded []math.Vec3, out []Quad) []Quad {
	for _, e := range edges {
		out = append(out, Quad{
			orig[e.From],
			extruded[e.From],
			orig[e.To],
			extruded[e.To],
		})
	}
	return out
}
