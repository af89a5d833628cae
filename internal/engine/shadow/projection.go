package shadow

import "github.com/Faultbox/midgard-shadow/pkg/math"

// MinGroundDot is the smallest allowed cosine between the light and the ground normal.
// Grazing or under-ground lights would otherwise stretch the shadow to infinity or flip it.
const MinGroundDot = 0.5

const minGroundLength = 1e-6

// GroundPlane returns the ground normal and distance of an entity in its local space: the
// world up axis expressed in the entity's basis, and the height of the entity origin above
// shadowPlane.
func GroundPlane(or math.Orientation, shadowPlane float32) (ground math.Vec3, dist float32) {
	ground = math.Vec3{
		X: or.Axis[0].Z,
		Y: or.Axis[1].Z,
		Z: or.Axis[2].Z,
	}
	return ground, or.Origin.Z - shadowPlane
}

// ClampLight nudges lightDir towards ground until their dot product is at least MinGroundDot.
// ground must be unit length.
func ClampLight(lightDir, ground math.Vec3) math.Vec3 {
	d := lightDir.Dot(ground)
	if d < MinGroundDot {
		lightDir = lightDir.MulAdd(MinGroundDot-d, ground)
	}
	return lightDir
}

// ProjectionDeform flattens every vertex onto the ground plane along the clamped light
// direction, in place, and returns the clamped direction.
//
// A vertex v moves to v - L*(dot(v, ground) + groundDist) where L is the clamped light scaled
// so that dot(L, ground) == 1, which puts it exactly on the plane. ground is normalized first;
// a degenerate ground (an orientation with no up component at all) leaves xyz untouched and
// reports false.
func ProjectionDeform(xyz []math.Vec3, ground math.Vec3, groundDist float32, lightDir math.Vec3) (math.Vec3, bool) {
	n := ground.Length()
	if n < minGroundLength {
		return lightDir, false
	}
	ground = ground.Scale(1 / n)

	corrected := ClampLight(lightDir, ground)
	light := corrected.Scale(1 / corrected.Dot(ground))

	for i, v := range xyz {
		h := v.Dot(ground) + groundDist
		xyz[i] = v.MulAdd(-h, light)
	}
	return corrected, true
}
