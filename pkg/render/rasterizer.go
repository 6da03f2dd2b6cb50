package render

import (
	"math"

	"github.com/taigrr/meshview/pkg/math3d"
)

// Rasterizer draws triangles and lines into a Framebuffer through a Camera,
// with a depth buffer and optional backface culling.
type Rasterizer struct {
	// DisableBackfaceCulling draws back faces too, lit as if they faced
	// the viewer.
	DisableBackfaceCulling bool
	// Culling counts bounded meshes tested against the frustum since
	// BeginFrame.
	Culling CullStats

	camera *Camera
	fb     *Framebuffer
	depth  []float64 // NDC z per pixel, row-major

	frustum      Frustum
	frustumValid bool
}

// CullStats counts frustum tests on meshes.
type CullStats struct {
	Tested, Culled, Drawn int
}

// NewRasterizer creates a rasterizer for cam. fb may be nil until
// SetFramebuffer is called; drawing into no framebuffer does nothing.
func NewRasterizer(cam *Camera, fb *Framebuffer) *Rasterizer {
	r := &Rasterizer{camera: cam}
	r.SetFramebuffer(fb)
	return r
}

// SetFramebuffer switches targets, e.g. after a window resize, and
// reallocates the depth buffer to match.
func (r *Rasterizer) SetFramebuffer(fb *Framebuffer) {
	r.fb = fb
	r.depth = nil
	if fb != nil {
		r.depth = make([]float64, fb.Width*fb.Height)
		r.ClearDepth()
	}
}

// Framebuffer returns the render target.
func (r *Rasterizer) Framebuffer() *Framebuffer { return r.fb }

// Camera returns the camera used for projection.
func (r *Rasterizer) Camera() *Camera { return r.camera }

// Width returns the framebuffer width, or 0 without one.
func (r *Rasterizer) Width() int {
	if r.fb == nil {
		return 0
	}
	return r.fb.Width
}

// Height returns the framebuffer height, or 0 without one.
func (r *Rasterizer) Height() int {
	if r.fb == nil {
		return 0
	}
	return r.fb.Height
}

// BeginFrame clears color and depth and picks up camera movement. Call it
// once before drawing each frame.
func (r *Rasterizer) BeginFrame(bg Color) {
	if r.fb != nil {
		r.fb.Clear(bg)
	}
	r.ClearDepth()
	r.frustumValid = false
	r.Culling = CullStats{}
}

// ClearDepth resets every depth sample to "infinitely far".
func (r *Rasterizer) ClearDepth() {
	for i := range r.depth {
		r.depth[i] = math.MaxFloat64
	}
}

// Frustum returns the camera frustum as of the last BeginFrame.
func (r *Rasterizer) Frustum() Frustum {
	if !r.frustumValid {
		r.frustum = NewFrustumFromMatrix(r.camera.ViewProjectionMatrix())
		r.frustumValid = true
	}
	return r.frustum
}

// IsVisible reports whether any part of a world-space box may be on screen.
func (r *Rasterizer) IsVisible(bounds math3d.Box) bool {
	return r.Frustum().IntersectsBox(bounds)
}

// depthAt returns the stored depth at (x, y), or MaxFloat64 off the buffer.
func (r *Rasterizer) depthAt(x, y int) float64 {
	if !r.fb.contains(x, y) {
		return math.MaxFloat64
	}
	return r.depth[y*r.fb.Width+x]
}

// plot writes c at (x, y) if z is not behind what is already there.
func (r *Rasterizer) plot(x, y int, z float64, c Color) {
	if !r.fb.contains(x, y) {
		return
	}
	i := y*r.fb.Width + x
	if z <= r.depth[i] {
		r.depth[i] = z
		r.fb.Pixels[i] = c
	}
}

// screenVertex is a vertex in pixel coordinates with NDC depth.
type screenVertex struct {
	X, Y, Z float64
	Color   Color
}

// project maps a clip-space position to pixel coordinates. The caller
// guarantees W > 0.
func (r *Rasterizer) project(clip math3d.Vec4) screenVertex {
	ndc := clip.PerspectiveDivide()
	return screenVertex{
		X: (ndc.X + 1) / 2 * float64(r.fb.Width),
		Y: (1 - ndc.Y) / 2 * float64(r.fb.Height),
		Z: ndc.Z,
	}
}
