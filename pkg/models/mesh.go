// Package models provides model loading, representation and normalization
// for meshview.
package models

import (
	"slices"

	"github.com/taigrr/meshview/pkg/math3d"
)

// Mesh is one renderable part of a model. Loaders never share vertices
// between faces, so per-vertex normals give flat shading.
type Mesh struct {
	Name     string
	Vertices []MeshVertex
	Faces    []Face
	Bounds   math3d.Box // kept current by CalculateBounds and Transform
}

// MeshVertex is a position and its shading normal.
type MeshVertex struct {
	Position math3d.Vec3
	Normal   math3d.Vec3
}

// Face indexes three vertices. Front faces are stored clockwise, which is
// how the rasterizer sees them after its Y flip.
type Face struct {
	V [3]int
}

// NewMesh returns an empty mesh.
func NewMesh(name string) *Mesh {
	return &Mesh{Name: name, Bounds: math3d.EmptyBox()}
}

// AddTriangle appends a triangle given counter-clockwise, the order STL,
// OBJ and 3MF use for outward-facing triangles.
func (m *Mesh) AddTriangle(a, b, c math3d.Vec3) {
	i := len(m.Vertices)
	m.Vertices = append(m.Vertices, MeshVertex{Position: a}, MeshVertex{Position: b}, MeshVertex{Position: c})
	m.Faces = append(m.Faces, Face{V: [3]int{i, i + 2, i + 1}})
}

// CalculateBounds recomputes Bounds. A mesh without vertices gets an empty
// box.
func (m *Mesh) CalculateBounds() {
	m.Bounds = math3d.EmptyBox()
	for _, v := range m.Vertices {
		m.Bounds = m.Bounds.Extend(v.Position)
	}
}

// CalculateNormals sets every vertex normal to the normal of its face.
// Degenerate faces get a zero normal.
func (m *Mesh) CalculateNormals() {
	for _, f := range m.Faces {
		p0 := m.Vertices[f.V[0]].Position
		e1 := m.Vertices[f.V[1]].Position.Sub(p0)
		e2 := m.Vertices[f.V[2]].Position.Sub(p0)
		n := e2.Cross(e1).Normalize() // clockwise storage
		for _, vi := range f.V {
			m.Vertices[vi].Normal = n
		}
	}
}

// Transform applies an affine transform in place. Normals are carried by
// the inverse transpose, and a mirroring transform reverses every face so
// front faces stay clockwise.
func (m *Mesh) Transform(mat math3d.Mat4) {
	nm, invertible := mat.NormalMatrix()
	for i := range m.Vertices {
		v := &m.Vertices[i]
		v.Position = mat.MulVec3(v.Position)
		if invertible {
			v.Normal = nm.MulVec3Dir(v.Normal).Normalize()
		}
	}
	if mat.Det3() < 0 {
		for i := range m.Faces {
			v := &m.Faces[i].V
			v[1], v[2] = v[2], v[1]
		}
	}
	m.CalculateBounds()
}

// Clone returns a deep copy.
func (m *Mesh) Clone() *Mesh {
	c := *m
	c.Vertices = slices.Clone(m.Vertices)
	c.Faces = slices.Clone(m.Faces)
	return &c
}

// TriangleCount, VertexCount, GetVertex, GetFace and GetBounds make Mesh a
// render.BoundedMeshRenderer.

func (m *Mesh) TriangleCount() int { return len(m.Faces) }

func (m *Mesh) VertexCount() int { return len(m.Vertices) }

func (m *Mesh) GetVertex(i int) (pos, normal math3d.Vec3) {
	return m.Vertices[i].Position, m.Vertices[i].Normal
}

func (m *Mesh) GetFace(i int) [3]int { return m.Faces[i].V }

func (m *Mesh) GetBounds() math3d.Box { return m.Bounds }
