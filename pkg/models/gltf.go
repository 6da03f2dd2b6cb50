package models

import (
	"fmt"
	"io"
	"math"
	"os"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"github.com/taigrr/meshview/pkg/math3d"
)

// WriteGLB encodes the model as a binary glTF document: one mesh per part,
// each under its own node, all grouped beneath a root node named after the
// model. Vertex data goes into a single embedded buffer written by the
// gltf modeler helpers.
func WriteGLB(w io.Writer, m *Model) error {
	doc, err := BuildGLTF(m)
	if err != nil {
		return err
	}
	enc := gltf.NewEncoder(w)
	enc.AsBinary = true
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode glb: %w", err)
	}
	return nil
}

// SaveGLB writes the model to path as a .glb file.
func SaveGLB(path string, m *Model) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create glb: %w", err)
	}
	if err := WriteGLB(f, m); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// BuildGLTF converts the model into a glTF document.
func BuildGLTF(m *Model) (*gltf.Document, error) {
	if len(m.Parts) == 0 {
		return nil, fmt.Errorf("export %q: %w", m.Name, ErrDegenerateGeometry)
	}

	doc := gltf.NewDocument()
	root := &gltf.Node{Name: m.Name}
	for _, part := range m.Parts {
		meshIdx, err := appendGLTFMesh(doc, part)
		if err != nil {
			return nil, fmt.Errorf("part %q: %w", part.Name, err)
		}
		doc.Nodes = append(doc.Nodes, &gltf.Node{Name: part.Name, Mesh: gltf.Index(meshIdx)})
		root.Children = append(root.Children, len(doc.Nodes)-1)
	}
	doc.Nodes = append(doc.Nodes, root)
	doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, len(doc.Nodes)-1)
	return doc, nil
}

// appendGLTFMesh writes positions, normals and indices of one part into the
// document buffer and registers the mesh that references them.
func appendGLTFMesh(doc *gltf.Document, part *Mesh) (int, error) {
	if part.VertexCount() == 0 || part.TriangleCount() == 0 {
		return 0, ErrDegenerateGeometry
	}
	if uint64(part.VertexCount()) > math.MaxUint32 {
		return 0, fmt.Errorf("%d vertices exceed the index range", part.VertexCount())
	}

	positions := make([][3]float32, len(part.Vertices))
	normals := make([][3]float32, len(part.Vertices))
	for i, v := range part.Vertices {
		positions[i] = vec3f32(v.Position)
		normals[i] = vec3f32(v.Normal)
	}

	// Faces are stored clockwise; glTF wants counter-clockwise front faces.
	indices := make([]uint32, 0, part.TriangleCount()*3)
	for _, f := range part.Faces {
		indices = append(indices, uint32(f.V[0]), uint32(f.V[2]), uint32(f.V[1]))
	}

	doc.Meshes = append(doc.Meshes, &gltf.Mesh{
		Name: part.Name,
		Primitives: []*gltf.Primitive{{
			Mode:    gltf.PrimitiveTriangles,
			Indices: gltf.Index(modeler.WriteIndices(doc, indices)),
			Attributes: gltf.PrimitiveAttributes{
				gltf.POSITION: modeler.WritePosition(doc, positions),
				gltf.NORMAL:   modeler.WriteNormal(doc, normals),
			},
		}},
	})
	return len(doc.Meshes) - 1, nil
}

func vec3f32(v math3d.Vec3) [3]float32 {
	return [3]float32{float32(v.X), float32(v.Y), float32(v.Z)}
}
