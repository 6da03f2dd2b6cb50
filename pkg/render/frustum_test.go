package render

import (
	"math"
	"testing"

	"github.com/taigrr/meshview/pkg/math3d"
)

// lookDownZ is the frustum of a camera at the origin looking down -Z with
// a 60 degree square view from 1 to 100.
func lookDownZ() Frustum {
	return NewFrustumFromMatrix(math3d.Perspective(math.Pi/3, 1, 1, 100))
}

func TestPlane(t *testing.T) {
	p := Plane{Normal: math3d.V3(0, 3, 4), D: 10}
	p.Normalize()

	if !p.Normal.ApproxEqual(math3d.V3(0, 0.6, 0.8), 1e-12) || math.Abs(p.D-2) > 1e-12 {
		t.Fatalf("Normalize = %+v, want normal (0, 0.6, 0.8) and D 2", p)
	}

	tests := []struct {
		name string
		q    math3d.Vec3
		want float64
	}{
		{"on plane", math3d.V3(0, -1.2, -1.6), 0},
		{"in front", math3d.V3(5, 0, 0), 2},
		{"behind", math3d.V3(0, -6, -8), -8},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := p.DistanceToPoint(tc.q); math.Abs(got-tc.want) > 1e-9 {
				t.Errorf("DistanceToPoint(%v) = %v, want %v", tc.q, got, tc.want)
			}
		})
	}

	zero := Plane{D: 3}
	zero.Normalize()
	if zero.D != 3 {
		t.Errorf("normalizing a zero normal changed D to %v", zero.D)
	}
}

func TestFrustumPlanes(t *testing.T) {
	f := lookDownZ()
	for i, p := range f.Planes {
		if l := p.Normal.Len(); math.Abs(l-1) > 1e-9 {
			t.Errorf("plane %d normal length = %v", i, l)
		}
	}
	// Inward normals: near faces -Z, far faces +Z.
	if n := f.Planes[FrustumNear].Normal; n.Z > -0.99 {
		t.Errorf("near normal = %v, want about (0, 0, -1)", n)
	}
	if n := f.Planes[FrustumFar].Normal; n.Z < 0.99 {
		t.Errorf("far normal = %v, want about (0, 0, 1)", n)
	}
	if d := f.Planes[FrustumNear].DistanceToPoint(math3d.V3(0, 0, -1)); math.Abs(d) > 1e-9 {
		t.Errorf("near plane distance at z=-1 = %v, want 0", d)
	}
	if n := f.Planes[FrustumLeft].Normal; n.X <= 0 {
		t.Errorf("left normal = %v, want +X component", n)
	}
	if n := f.Planes[FrustumTop].Normal; n.Y >= 0 {
		t.Errorf("top normal = %v, want -Y component", n)
	}
}

func TestFrustumContainsPoint(t *testing.T) {
	f := lookDownZ()
	tests := []struct {
		name string
		p    math3d.Vec3
		want bool
	}{
		{"center", math3d.V3(0, 0, -10), true},
		{"just past near", math3d.V3(0, 0, -1.01), true},
		{"just before far", math3d.V3(0, 0, -99), true},
		{"before near", math3d.V3(0, 0, -0.5), false},
		{"past far", math3d.V3(0, 0, -101), false},
		{"behind", math3d.V3(0, 0, 5), false},
		// tan(30°) ≈ 0.577, so x = 6 at z = -10 is outside.
		{"off to the right", math3d.V3(6, 0, -10), false},
		{"inside the right edge", math3d.V3(5, 0, -10), true},
		{"above", math3d.V3(0, 6, -10), false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := f.ContainsPoint(tc.p); got != tc.want {
				t.Errorf("ContainsPoint(%v) = %v, want %v", tc.p, got, tc.want)
			}
		})
	}
}

func TestFrustumIntersectsBox(t *testing.T) {
	f := lookDownZ()
	box := func(x0, y0, z0, x1, y1, z1 float64) math3d.Box {
		return math3d.NewBox(math3d.V3(x0, y0, z0), math3d.V3(x1, y1, z1))
	}
	tests := []struct {
		name string
		box  math3d.Box
		want bool
	}{
		{"inside", box(-1, -1, -10, 1, 1, -5), true},
		{"across the near plane", box(-1, -1, -2, 1, 1, 2), true},
		{"enclosing everything", box(-500, -500, -500, 500, 500, 500), true},
		{"behind", box(-1, -1, 5, 1, 1, 10), false},
		{"past far", box(-1, -1, -150, 1, 1, -120), false},
		{"right", box(50, -1, -10, 60, 1, -5), false},
		{"below", box(-1, -60, -10, 1, -50, -5), false},
		{"flat on the view axis", box(-1, 0, -10, 1, 0, -5), true},
		{"empty", math3d.EmptyBox(), false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := f.IntersectsBox(tc.box); got != tc.want {
				t.Errorf("IntersectsBox(%v) = %v, want %v", tc.box, got, tc.want)
			}
		})
	}
}

func TestFarthestCorner(t *testing.T) {
	b := math3d.NewBox(math3d.V3(-1, -2, -3), math3d.V3(1, 2, 3))
	tests := []struct {
		n, want math3d.Vec3
	}{
		{math3d.V3(1, 1, 1), math3d.V3(1, 2, 3)},
		{math3d.V3(-1, -1, -1), math3d.V3(-1, -2, -3)},
		{math3d.V3(1, -1, 0), math3d.V3(1, -2, 3)},
	}
	for _, tc := range tests {
		if got := farthestCorner(b, tc.n); got != tc.want {
			t.Errorf("farthestCorner(%v) = %v, want %v", tc.n, got, tc.want)
		}
	}
}

func TestCameraFrustum(t *testing.T) {
	tests := []struct {
		name         string
		pos, target  math3d.Vec3
		seen, unseen math3d.Vec3
	}{
		{"along +X", math3d.Zero3(), math3d.V3(10, 0, 0), math3d.V3(10, 0, 0), math3d.V3(-10, 0, 0)},
		{"from above", math3d.V3(0, 20, 0), math3d.Zero3(), math3d.V3(1, 0, 1), math3d.V3(0, 30, 0)},
		{"orbit pose", math3d.V3(0, 10, 20), math3d.Zero3(), math3d.V3(0, 1, 0), math3d.V3(0, 10, 40)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cam := NewCamera()
			cam.SetClipPlanes(1, 100)
			cam.SetPosition(tc.pos)
			cam.LookAt(tc.target)
			f := cam.Frustum()
			if !f.ContainsPoint(tc.seen) {
				t.Errorf("%v should be visible", tc.seen)
			}
			if f.ContainsPoint(tc.unseen) {
				t.Errorf("%v should not be visible", tc.unseen)
			}
		})
	}
}

func BenchmarkFrustumIntersectsBox(b *testing.B) {
	f := lookDownZ()
	box := math3d.NewBox(math3d.V3(-1, -1, -10), math3d.V3(1, 1, -5))
	for b.Loop() {
		_ = f.IntersectsBox(box)
	}
}

func BenchmarkNewFrustumFromMatrix(b *testing.B) {
	cam := NewCamera()
	cam.SetPosition(math3d.V3(0, 10, 20))
	cam.LookAt(math3d.Zero3())
	vp := cam.ViewProjectionMatrix()
	for b.Loop() {
		_ = NewFrustumFromMatrix(vp)
	}
}
