package models

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/hpinc/go3mf"
	"github.com/taigrr/meshview/pkg/math3d"
)

const threeMFMaxDepth = 32

var errNoObjects = errors.New("package has no objects")

// Parse3MF decodes a 3MF package. Every mesh instance reachable from the
// build becomes one part, already placed by its build and component
// transforms, so the parts keep their arrangement under StrategyGrouped.
func Parse3MF(name string, data []byte) (*Model, error) {
	var doc go3mf.Model
	if err := go3mf.NewDecoder(bytes.NewReader(data), int64(len(data))).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode 3mf package: %w", err)
	}
	if len(doc.Resources.Objects) == 0 {
		return nil, errNoObjects
	}

	objects := make(map[uint32]*go3mf.Object, len(doc.Resources.Objects))
	for _, obj := range doc.Resources.Objects {
		objects[obj.ID] = obj
	}

	m := &Model{
		Name:     name,
		Format:   "3mf",
		Strategy: StrategyGrouped,
	}

	if len(doc.Build.Items) == 0 {
		// No build section: show every object untransformed.
		for _, obj := range doc.Resources.Objects {
			if err := m.add3MFObject(objects, obj.ID, math3d.Identity(), 0); err != nil {
				return nil, err
			}
		}
	}
	for _, item := range doc.Build.Items {
		if err := m.add3MFObject(objects, item.ObjectID, threeMFMatrix(item.Transform), 0); err != nil {
			return nil, err
		}
	}

	m.finish()
	return m, nil
}

func (m *Model) add3MFObject(objects map[uint32]*go3mf.Object, id uint32, mat math3d.Mat4, depth int) error {
	if depth > threeMFMaxDepth {
		return fmt.Errorf("object %d: components nested too deeply", id)
	}
	obj, ok := objects[id]
	if !ok {
		return fmt.Errorf("object %d not found", id)
	}

	if obj.Components != nil {
		for _, c := range obj.Components.Component {
			if err := m.add3MFObject(objects, c.ObjectID, mat.Mul(threeMFMatrix(c.Transform)), depth+1); err != nil {
				return err
			}
		}
	}

	if obj.Mesh == nil || len(obj.Mesh.Triangles.Triangle) == 0 {
		return nil
	}

	partName := obj.Name
	if partName == "" {
		partName = fmt.Sprintf("object %d", obj.ID)
	}
	mesh := NewMesh(partName)
	vertices := obj.Mesh.Vertices.Vertex
	n := uint32(len(vertices))
	// Mirrored placements turn the file's counter-clockwise faces inside out.
	mirrored := mat.Det3() < 0
	for i, t := range obj.Mesh.Triangles.Triangle {
		if t.V1 >= n || t.V2 >= n || t.V3 >= n {
			return fmt.Errorf("object %d: triangle %d references missing vertex", id, i)
		}
		a := mat.MulVec3(threeMFPoint(vertices[t.V1]))
		b := mat.MulVec3(threeMFPoint(vertices[t.V2]))
		c := mat.MulVec3(threeMFPoint(vertices[t.V3]))
		if mirrored {
			b, c = c, b
		}
		mesh.AddTriangle(a, b, c)
	}
	m.Parts = append(m.Parts, mesh)
	return nil
}

// threeMFMatrix converts a decoded 3MF transform into a column-major Mat4.
// 3MF transforms row vectors, so the first row of t is the image of the
// X axis. A transform the file leaves out decodes as all zeros and means
// identity.
func threeMFMatrix(t go3mf.Matrix) math3d.Mat4 {
	if t == (go3mf.Matrix{}) {
		return math3d.Identity()
	}
	row := func(i int) math3d.Vec3 {
		return math3d.V3(float64(t[i]), float64(t[i+1]), float64(t[i+2]))
	}
	return math3d.Affine(row(0), row(4), row(8), row(12))
}

func threeMFPoint(p go3mf.Point3D) math3d.Vec3 {
	return math3d.V3(float64(p[0]), float64(p[1]), float64(p[2]))
}
