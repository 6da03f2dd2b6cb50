package render

import "github.com/taigrr/meshview/pkg/math3d"

// Plane is the set of points p with Normal·p + D = 0.
type Plane struct {
	Normal math3d.Vec3
	D      float64
}

// Normalize scales the plane so Normal has unit length, making
// DistanceToPoint a true distance.
func (p *Plane) Normalize() {
	if l := p.Normal.Len(); l > 0 {
		p.Normal = p.Normal.Scale(1 / l)
		p.D /= l
	}
}

// DistanceToPoint returns the signed distance of q from the plane, positive
// on the side Normal points to.
func (p Plane) DistanceToPoint(q math3d.Vec3) float64 {
	return p.Normal.Dot(q) + p.D
}

// Frustum is the visible volume of a camera: six planes with normals
// pointing inward, indexed by the Frustum* constants.
type Frustum struct {
	Planes [6]Plane
}

const (
	FrustumLeft = iota
	FrustumRight
	FrustumBottom
	FrustumTop
	FrustumNear
	FrustumFar
)

// NewFrustumFromMatrix extracts the frustum of a view-projection matrix
// (Gribb and Hartmann): each plane is the last row of m plus or minus one
// of the first three.
func NewFrustumFromMatrix(m math3d.Mat4) Frustum {
	var rows [4]Plane
	for i := range rows {
		rows[i] = Plane{
			Normal: math3d.V3(m.At(i, 0), m.At(i, 1), m.At(i, 2)),
			D:      m.At(i, 3),
		}
	}
	w := rows[3]
	add := func(p Plane) Plane { return Plane{w.Normal.Add(p.Normal), w.D + p.D} }
	sub := func(p Plane) Plane { return Plane{w.Normal.Sub(p.Normal), w.D - p.D} }

	var f Frustum
	for axis := range 3 {
		f.Planes[2*axis] = add(rows[axis])
		f.Planes[2*axis+1] = sub(rows[axis])
	}
	for i := range f.Planes {
		f.Planes[i].Normalize()
	}
	return f
}

// farthestCorner returns the corner of box farthest along n.
func farthestCorner(box math3d.Box, n math3d.Vec3) math3d.Vec3 {
	c := box.Min
	if n.X >= 0 {
		c.X = box.Max.X
	}
	if n.Y >= 0 {
		c.Y = box.Max.Y
	}
	if n.Z >= 0 {
		c.Z = box.Max.Z
	}
	return c
}

// IntersectsBox reports whether box may overlap the frustum. It never
// returns false for a visible box but may return true for a box just
// outside a corner of the frustum.
func (f Frustum) IntersectsBox(box math3d.Box) bool {
	if box.IsEmpty() {
		return false
	}
	for _, p := range f.Planes {
		if p.DistanceToPoint(farthestCorner(box, p.Normal)) < 0 {
			return false
		}
	}
	return true
}

// ContainsPoint reports whether q is inside the frustum.
func (f Frustum) ContainsPoint(q math3d.Vec3) bool {
	for _, p := range f.Planes {
		if p.DistanceToPoint(q) < 0 {
			return false
		}
	}
	return true
}

// Frustum returns the camera's current view frustum.
func (c *Camera) Frustum() Frustum {
	return NewFrustumFromMatrix(c.ViewProjectionMatrix())
}
