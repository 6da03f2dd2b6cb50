package models

import (
	"bytes"
	"fmt"

	"github.com/hschendel/stl"
	"github.com/taigrr/meshview/pkg/math3d"
)

// ParseSTL decodes an ASCII or binary STL file into a single-mesh model.
func ParseSTL(name string, data []byte) (*Model, error) {
	solid, err := stl.ReadAll(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("read stl: %w", err)
	}

	meshName := solid.Name
	if meshName == "" {
		meshName = name
	}
	mesh := NewMesh(meshName)
	for _, tri := range solid.Triangles {
		mesh.AddTriangle(
			stlVec(tri.Vertices[0]),
			stlVec(tri.Vertices[1]),
			stlVec(tri.Vertices[2]),
		)
	}

	m := &Model{
		Name:     name,
		Format:   "stl",
		Strategy: StrategySingleMesh,
		Parts:    []*Mesh{mesh},
	}
	m.finish()
	if len(m.Parts) == 0 {
		// Keep the empty mesh so normalization reports it as degenerate.
		m.Parts = []*Mesh{mesh}
	}
	return m, nil
}

func stlVec(v stl.Vec3) math3d.Vec3 {
	return math3d.V3(float64(v[0]), float64(v[1]), float64(v[2]))
}
