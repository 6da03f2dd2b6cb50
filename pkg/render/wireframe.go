package render

import (
	"math"

	"github.com/taigrr/meshview/pkg/math3d"
)

// Segment is a colored line between two points.
type Segment struct {
	A, B  math3d.Vec3
	Color Color
}

// GridSegments builds a square grid on the XZ plane centered at the origin:
// divisions+1 lines along each axis, spanning size units.
func GridSegments(size float64, divisions int, color Color) []Segment {
	if divisions < 1 {
		divisions = 1
	}
	half := size / 2
	step := size / float64(divisions)

	segs := make([]Segment, 0, 2*(divisions+1))
	for i := 0; i <= divisions; i++ {
		k := -half + float64(i)*step
		segs = append(segs,
			Segment{A: math3d.V3(-half, 0, k), B: math3d.V3(half, 0, k), Color: color},
			Segment{A: math3d.V3(k, 0, -half), B: math3d.V3(k, 0, half), Color: color},
		)
	}
	return segs
}

// AxesSegments builds the three coordinate axes from the origin:
// X red, Y green, Z blue.
func AxesSegments(length float64) []Segment {
	origin := math3d.Zero3()
	return []Segment{
		{A: origin, B: math3d.V3(length, 0, 0), Color: ColorRed},
		{A: origin, B: math3d.V3(0, length, 0), Color: ColorGreen},
		{A: origin, B: math3d.V3(0, 0, length), Color: ColorBlue},
	}
}

// DrawSegments draws every segment after applying transform.
func (r *Rasterizer) DrawSegments(segs []Segment, transform math3d.Mat4) {
	for _, s := range segs {
		r.DrawLine3D(transform.MulVec3(s.A), transform.MulVec3(s.B), s.Color)
	}
}

// DrawLine3D draws a depth-tested line between two world-space points.
// The line is clipped against the view frustum in clip space, so segments
// that pass behind the camera are drawn correctly.
func (r *Rasterizer) DrawLine3D(a, b math3d.Vec3, color Color) {
	if r.fb == nil {
		return
	}
	viewProj := r.camera.ViewProjectionMatrix()
	clipA := viewProj.MulVec4(math3d.V4FromV3(a, 1))
	clipB := viewProj.MulVec4(math3d.V4FromV3(b, 1))

	clipA, clipB, ok := clipLine(clipA, clipB)
	if !ok || clipA.W <= 0 || clipB.W <= 0 {
		return
	}
	p0 := r.project(clipA)
	p1 := r.project(clipB)

	dx := p1.X - p0.X
	dy := p1.Y - p0.Y
	steps := int(math.Ceil(math.Max(math.Abs(dx), math.Abs(dy))))
	if steps == 0 {
		steps = 1
	}
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		x := int(p0.X + dx*t)
		y := int(p0.Y + dy*t)
		z := p0.Z + (p1.Z-p0.Z)*t
		r.plot(x, y, z, color)
	}
}

// clipLine clips the segment a-b to the canonical view volume
// (-w <= x, y, z <= w) using Liang-Barsky in homogeneous coordinates.
func clipLine(a, b math3d.Vec4) (math3d.Vec4, math3d.Vec4, bool) {
	da := clipDistances(a)
	db := clipDistances(b)

	t0, t1 := 0.0, 1.0
	for i := range da {
		switch {
		case da[i] < 0 && db[i] < 0:
			return a, b, false
		case da[i] < 0:
			t0 = math.Max(t0, da[i]/(da[i]-db[i]))
		case db[i] < 0:
			t1 = math.Min(t1, da[i]/(da[i]-db[i]))
		}
	}
	if t0 > t1 {
		return a, b, false
	}
	return a.Lerp(b, t0), a.Lerp(b, t1), true
}

func clipDistances(v math3d.Vec4) [6]float64 {
	return [6]float64{
		v.W + v.X, v.W - v.X,
		v.W + v.Y, v.W - v.Y,
		v.W + v.Z, v.W - v.Z,
	}
}
