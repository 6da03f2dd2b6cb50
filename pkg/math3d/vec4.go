package math3d

// Vec4 is a homogeneous point, as produced by a projection matrix.
type Vec4 struct {
	X, Y, Z, W float64
}

// V4 creates a Vec4.
func V4(x, y, z, w float64) Vec4 {
	return Vec4{x, y, z, w}
}

// V4FromV3 extends v with the given w: 1 for points, 0 for directions.
func V4FromV3(v Vec3, w float64) Vec4 {
	return Vec4{v.X, v.Y, v.Z, w}
}

// Vec3 drops W without dividing.
func (v Vec4) Vec3() Vec3 {
	return V3(v.X, v.Y, v.Z)
}

// PerspectiveDivide maps a clip-space point to normalized device
// coordinates. A zero W leaves the components as they are.
func (v Vec4) PerspectiveDivide() Vec3 {
	if v.W == 0 {
		return v.Vec3()
	}
	return v.Vec3().Scale(1 / v.W)
}

// Add returns a+b.
func (a Vec4) Add(b Vec4) Vec4 {
	return Vec4{a.X + b.X, a.Y + b.Y, a.Z + b.Z, a.W + b.W}
}

// Sub returns a-b.
func (a Vec4) Sub(b Vec4) Vec4 {
	return Vec4{a.X - b.X, a.Y - b.Y, a.Z - b.Z, a.W - b.W}
}

// Scale multiplies every component, W included, by s.
func (a Vec4) Scale(s float64) Vec4 {
	return Vec4{a.X * s, a.Y * s, a.Z * s, a.W * s}
}

// Lerp interpolates from a (t=0) to b (t=1). Clipping in homogeneous space
// relies on W being interpolated too.
func (a Vec4) Lerp(b Vec4, t float64) Vec4 {
	return a.Add(b.Sub(a).Scale(t))
}
