package math

import "math"

// Axes is an orthonormal basis. Axes[0] is forward, Axes[1] left, Axes[2] up.
type Axes [3]Vec3

// IdentityAxes returns the world basis.
func IdentityAxes() Axes {
	return Axes{
		{1, 0, 0},
		{0, 1, 0},
		{0, 0, 1},
	}
}

// YawAxes returns a basis rotated around the world Z axis by yaw radians.
func YawAxes(yaw float32) Axes {
	c := float32(math.Cos(float64(yaw)))
	s := float32(math.Sin(float64(yaw)))
	return Axes{
		{c, s, 0},
		{-s, c, 0},
		{0, 0, 1},
	}
}

// ToWorld transforms a local direction into world space.
func (a Axes) ToWorld(v Vec3) Vec3 {
	return a[0].Scale(v.X).Add(a[1].Scale(v.Y)).Add(a[2].Scale(v.Z))
}

// ToLocal transforms a world direction into the basis.
func (a Axes) ToLocal(v Vec3) Vec3 {
	return Vec3{v.Dot(a[0]), v.Dot(a[1]), v.Dot(a[2])}
}

// Orientation places a local frame in the world.
type Orientation struct {
	Origin Vec3
	Axis   Axes
}

// PointToWorld transforms a local point into world space.
func (o Orientation) PointToWorld(p Vec3) Vec3 {
	return o.Origin.Add(o.Axis.ToWorld(p))
}
