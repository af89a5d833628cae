// Package lighting derives the directional light that shadows are cast from.
package lighting

import (
	gomath "math"

	"github.com/Faultbox/midgard-shadow/pkg/math"
)

// SunDirection converts azimuth/elevation angles in degrees to a unit vector pointing
// towards the light in a Z-up world. Azimuth rotates around Z from +X, elevation is
// measured up from the horizon.
func SunDirection(azimuth, elevation float32) math.Vec3 {
	az := float64(azimuth) * gomath.Pi / 180.0
	el := float64(elevation) * gomath.Pi / 180.0

	return math.Vec3{
		X: float32(gomath.Cos(el) * gomath.Cos(az)),
		Y: float32(gomath.Cos(el) * gomath.Sin(az)),
		Z: float32(gomath.Sin(el)),
	}
}

// EntityLight returns the light direction in an entity's local frame. A zero direction
// falls back to straight overhead.
func EntityLight(world math.Vec3, axes math.Axes) math.Vec3 {
	if world.Length() == 0 {
		world = math.Vec3{Z: 1}
	}
	return axes.ToLocal(world.Normalize())
}
