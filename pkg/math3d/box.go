package math3d

import "math"

// Box is an axis-aligned bounding box.
// The zero value is not empty; use EmptyBox to start accumulating points.
type Box struct {
	Min Vec3
	Max Vec3
}

// EmptyBox returns a box that contains nothing. Extending it with a point
// yields a zero-size box at that point.
func EmptyBox() Box {
	inf := math.Inf(1)
	return Box{
		Min: V3(inf, inf, inf),
		Max: V3(-inf, -inf, -inf),
	}
}

// NewBox creates a box from min and max corners.
func NewBox(min, max Vec3) Box {
	return Box{Min: min, Max: max}
}

// IsEmpty reports whether the box contains no points.
func (b Box) IsEmpty() bool {
	return b.Min.X > b.Max.X || b.Min.Y > b.Max.Y || b.Min.Z > b.Max.Z
}

// Extend returns the box grown to include p.
func (b Box) Extend(p Vec3) Box {
	return Box{Min: b.Min.Min(p), Max: b.Max.Max(p)}
}

// Union returns the smallest box containing both b and o.
func (b Box) Union(o Box) Box {
	if o.IsEmpty() {
		return b
	}
	if b.IsEmpty() {
		return o
	}
	return Box{Min: b.Min.Min(o.Min), Max: b.Max.Max(o.Max)}
}

// Center returns the center of the box.
func (b Box) Center() Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Size returns the dimensions of the box. An empty box has zero size.
func (b Box) Size() Vec3 {
	if b.IsEmpty() {
		return Vec3{}
	}
	return b.Max.Sub(b.Min)
}

// Contains reports whether p lies inside or on the box.
func (b Box) Contains(p Vec3) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}

// Transform returns the box bounding all 8 corners of b after m.
func (b Box) Transform(m Mat4) Box {
	if b.IsEmpty() {
		return b
	}
	out := EmptyBox()
	for i := range 8 {
		corner := V3(
			pick(i&1 != 0, b.Max.X, b.Min.X),
			pick(i&2 != 0, b.Max.Y, b.Min.Y),
			pick(i&4 != 0, b.Max.Z, b.Min.Z),
		)
		out = out.Extend(m.MulVec3(corner))
	}
	return out
}

func pick(cond bool, a, b float64) float64 {
	if cond {
		return a
	}
	return b
}
