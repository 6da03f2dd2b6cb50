package render

import "github.com/taigrr/meshview/pkg/math3d"

// MeshRenderer is the view of a mesh the rasterizer needs. It lives here so
// render does not import the models package.
type MeshRenderer interface {
	VertexCount() int
	TriangleCount() int
	GetVertex(i int) (pos, normal math3d.Vec3)
	GetFace(i int) [3]int
}

// BoundedMeshRenderer is a MeshRenderer with a local bounding box. Meshes
// that provide one are skipped when it lies outside the view.
type BoundedMeshRenderer interface {
	MeshRenderer
	GetBounds() math3d.Box
}

// culled reports whether mesh has bounds that transform entirely outside
// the frustum, counting the test in r.Culling.
func (r *Rasterizer) culled(mesh MeshRenderer, transform math3d.Mat4) bool {
	b, ok := mesh.(BoundedMeshRenderer)
	if !ok {
		return false
	}
	r.Culling.Tested++
	if r.IsVisible(b.GetBounds().Transform(transform)) {
		r.Culling.Drawn++
		return false
	}
	r.Culling.Culled++
	return true
}

// DrawMeshGouraud draws every triangle of mesh, placed by transform, in a
// single color with per-vertex lighting.
func (r *Rasterizer) DrawMeshGouraud(mesh MeshRenderer, transform math3d.Mat4, color Color, light Light) {
	if r.fb == nil || r.culled(mesh, transform) {
		return
	}
	normals, _ := transform.NormalMatrix()
	for i := range mesh.TriangleCount() {
		face := mesh.GetFace(i)
		var tri Triangle
		for k, vi := range face {
			p, n := mesh.GetVertex(vi)
			tri.V[k] = Vertex{
				Position: transform.MulVec3(p),
				Normal:   normals.MulVec3Dir(n).Normalize(),
				Color:    color,
			}
		}
		r.DrawTriangleGouraud(tri, light)
	}
}

// DrawMeshWireframe draws the edges of every triangle of mesh as
// depth-tested lines. Shared edges are drawn twice.
func (r *Rasterizer) DrawMeshWireframe(mesh MeshRenderer, transform math3d.Mat4, color Color) {
	if r.fb == nil || r.culled(mesh, transform) {
		return
	}
	for i := range mesh.TriangleCount() {
		var p [3]math3d.Vec3
		for k, vi := range mesh.GetFace(i) {
			pos, _ := mesh.GetVertex(vi)
			p[k] = transform.MulVec3(pos)
		}
		for k := range 3 {
			r.DrawLine3D(p[k], p[(k+1)%3], color)
		}
	}
}
