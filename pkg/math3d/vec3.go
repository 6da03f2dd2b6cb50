// Package math3d provides the vector, matrix and bounding-box primitives
// used by meshview's loaders, normalizer and renderer.
package math3d

import "math"

// Vec3 is a point or direction in model or world space.
type Vec3 struct {
	X, Y, Z float64
}

// V3 is shorthand for Vec3{x, y, z}.
func V3(x, y, z float64) Vec3 { return Vec3{x, y, z} }

// Zero3 returns the origin.
func Zero3() Vec3 { return Vec3{} }

// Up returns +Y, the vertical axis of the viewer.
func Up() Vec3 { return Vec3{Y: 1} }

// zip applies f to each pair of components.
func zip(a, b Vec3, f func(x, y float64) float64) Vec3 {
	return Vec3{f(a.X, b.X), f(a.Y, b.Y), f(a.Z, b.Z)}
}

func (a Vec3) Add(b Vec3) Vec3       { return Vec3{a.X + b.X, a.Y + b.Y, a.Z + b.Z} }
func (a Vec3) Sub(b Vec3) Vec3       { return Vec3{a.X - b.X, a.Y - b.Y, a.Z - b.Z} }
func (a Vec3) Scale(s float64) Vec3  { return Vec3{a.X * s, a.Y * s, a.Z * s} }
func (a Vec3) Negate() Vec3          { return a.Scale(-1) }
func (a Vec3) Dot(b Vec3) float64    { return a.X*b.X + a.Y*b.Y + a.Z*b.Z }
func (a Vec3) Len() float64          { return math.Sqrt(a.Dot(a)) }
func (a Vec3) Min(b Vec3) Vec3       { return zip(a, b, math.Min) }
func (a Vec3) Max(b Vec3) Vec3       { return zip(a, b, math.Max) }
func (a Vec3) MaxComponent() float64 { return math.Max(a.X, math.Max(a.Y, a.Z)) }

// Cross returns a × b, which follows the right-hand rule.
func (a Vec3) Cross(b Vec3) Vec3 {
	return Vec3{
		X: a.Y*b.Z - a.Z*b.Y,
		Y: a.Z*b.X - a.X*b.Z,
		Z: a.X*b.Y - a.Y*b.X,
	}
}

// Normalize returns a unit vector in the direction of a, or the zero vector
// when a has no length.
func (a Vec3) Normalize() Vec3 {
	l := a.Len()
	if l == 0 {
		return Vec3{}
	}
	return Vec3{a.X / l, a.Y / l, a.Z / l}
}

// IsFinite reports whether no component is NaN or infinite.
func (a Vec3) IsFinite() bool {
	for _, v := range [3]float64{a.X, a.Y, a.Z} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// ApproxEqual reports whether no component of a and b differs by more than
// eps.
func (a Vec3) ApproxEqual(b Vec3, eps float64) bool {
	d := zip(a, b, func(x, y float64) float64 { return math.Abs(x - y) })
	return d.MaxComponent() <= eps
}
