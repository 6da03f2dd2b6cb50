package render

import (
	"math"

	"github.com/taigrr/meshview/pkg/math3d"
)

// Default projection and placement.
const (
	DefaultFOV  = 75 * math.Pi / 180
	DefaultNear = 0.1
	DefaultFar  = 1000
)

// DefaultCameraPosition is where the camera sits after a reset: on +Z,
// looking at the origin.
var DefaultCameraPosition = math3d.V3(0, 0, 5)

// Camera is a perspective camera aimed at a target point. Roll is always
// zero: the image's vertical axis stays in the plane of math3d.Up.
type Camera struct {
	Position math3d.Vec3
	Target   math3d.Vec3

	FOV         float64 // vertical, radians
	AspectRatio float64 // width / height
	Near        float64
	Far         float64

	view, proj, viewProj math3d.Mat4
	viewStale, projStale bool
	viewProjStale        bool
}

// NewCamera creates a camera at DefaultCameraPosition looking at the origin.
func NewCamera() *Camera {
	c := &Camera{
		FOV:         DefaultFOV,
		AspectRatio: 1,
		Near:        DefaultNear,
		Far:         DefaultFar,
		projStale:   true,
	}
	c.Reset()
	return c
}

// SetPosition moves the camera without changing its target.
func (c *Camera) SetPosition(pos math3d.Vec3) {
	c.Position = pos
	c.viewStale = true
}

// LookAt aims the camera at target. A target at the camera position is
// ignored.
func (c *Camera) LookAt(target math3d.Vec3) {
	if target.Sub(c.Position).Len() == 0 {
		return
	}
	c.Target = target
	c.viewStale = true
}

// SetFOV sets the vertical field of view in radians.
func (c *Camera) SetFOV(fov float64) {
	c.FOV = fov
	c.projStale = true
}

// SetAspectRatio sets width/height. Zero, negative and non-finite values
// are ignored.
func (c *Camera) SetAspectRatio(aspect float64) {
	if aspect <= 0 || math.IsNaN(aspect) || math.IsInf(aspect, 0) {
		return
	}
	c.AspectRatio = aspect
	c.projStale = true
}

// SetClipPlanes sets the near and far clip distances.
func (c *Camera) SetClipPlanes(near, far float64) {
	c.Near, c.Far = near, far
	c.projStale = true
}

// Reset puts the camera back at DefaultCameraPosition looking at the origin.
// Projection settings are kept.
func (c *Camera) Reset() {
	c.Position = DefaultCameraPosition
	c.Target = math3d.Zero3()
	c.viewStale = true
}

// basis returns the camera's right, up and forward unit vectors.
func (c *Camera) basis() (right, up, forward math3d.Vec3) {
	forward = c.Target.Sub(c.Position).Normalize()
	right = forward.Cross(math3d.Up())
	if right.Len() < 1e-6 {
		// Looking straight up or down: any horizontal right will do.
		right = forward.Cross(math3d.V3(0, 0, -1))
	}
	right = right.Normalize()
	return right, right.Cross(forward), forward
}

// Forward returns the unit view direction.
func (c *Camera) Forward() math3d.Vec3 {
	_, _, f := c.basis()
	return f
}

// Right returns the unit vector pointing to the right of the image.
func (c *Camera) Right() math3d.Vec3 {
	r, _, _ := c.basis()
	return r
}

// Up returns the unit vector pointing to the top of the image.
func (c *Camera) Up() math3d.Vec3 {
	_, u, _ := c.basis()
	return u
}

// ViewMatrix returns the world-to-camera transform. The camera looks down
// its local -Z.
func (c *Camera) ViewMatrix() math3d.Mat4 {
	if c.viewStale {
		r, u, f := c.basis()
		p := c.Position
		c.view = math3d.Affine(
			math3d.V3(r.X, u.X, -f.X),
			math3d.V3(r.Y, u.Y, -f.Y),
			math3d.V3(r.Z, u.Z, -f.Z),
			math3d.V3(-r.Dot(p), -u.Dot(p), f.Dot(p)),
		)
		c.viewStale = false
		c.viewProjStale = true
	}
	return c.view
}

// ProjectionMatrix returns the perspective projection.
func (c *Camera) ProjectionMatrix() math3d.Mat4 {
	if c.projStale {
		c.proj = math3d.Perspective(c.FOV, c.AspectRatio, c.Near, c.Far)
		c.projStale = false
		c.viewProjStale = true
	}
	return c.proj
}

// ViewProjectionMatrix returns projection * view.
func (c *Camera) ViewProjectionMatrix() math3d.Mat4 {
	view, proj := c.ViewMatrix(), c.ProjectionMatrix()
	if c.viewProjStale {
		c.viewProj = proj.Mul(view)
		c.viewProjStale = false
	}
	return c.viewProj
}

// WorldToScreen projects p onto a width x height image with the origin at
// the top left. visible is false for points behind the camera or outside
// the clip volume.
func (c *Camera) WorldToScreen(p math3d.Vec3, width, height int) (x, y, depth float64, visible bool) {
	clip := c.ViewProjectionMatrix().MulVec4(math3d.V4FromV3(p, 1))
	if clip.W <= 0 {
		return 0, 0, 0, false
	}
	ndc := clip.PerspectiveDivide()
	if math.Abs(ndc.X) > 1 || math.Abs(ndc.Y) > 1 || math.Abs(ndc.Z) > 1 {
		return 0, 0, 0, false
	}
	x = (ndc.X + 1) / 2 * float64(width)
	y = (1 - ndc.Y) / 2 * float64(height)
	return x, y, ndc.Z, true
}
