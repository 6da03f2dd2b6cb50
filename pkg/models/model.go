package models

import (
	"github.com/taigrr/meshview/pkg/math3d"
)

// Strategy selects how a model's parts are normalized and how they are
// attached to the scene.
type Strategy int

const (
	// StrategySingleMesh fits the model's only mesh directly (STL).
	StrategySingleMesh Strategy = iota
	// StrategyPerPart fits every part against its own bounding box, so parts
	// lose their relative placement (OBJ).
	StrategyPerPart
	// StrategyGrouped fits the aggregate box of all parts once, keeping parts
	// aligned with each other (3MF).
	StrategyGrouped
)

func (s Strategy) String() string {
	switch s {
	case StrategySingleMesh:
		return "single-mesh"
	case StrategyPerPart:
		return "per-part"
	case StrategyGrouped:
		return "grouped"
	default:
		return "unknown"
	}
}

// Model is the result of parsing one file: one or more meshes plus the
// strategy used to normalize them.
type Model struct {
	Name     string
	Format   string
	Strategy Strategy
	Parts    []*Mesh
}

// Bounds returns the box enclosing every part.
func (m *Model) Bounds() math3d.Box {
	b := math3d.EmptyBox()
	for _, p := range m.Parts {
		b = b.Union(p.Bounds)
	}
	return b
}

// TriangleCount returns the number of triangles across all parts.
func (m *Model) TriangleCount() int {
	n := 0
	for _, p := range m.Parts {
		n += p.TriangleCount()
	}
	return n
}

// VertexCount returns the number of vertices across all parts.
func (m *Model) VertexCount() int {
	n := 0
	for _, p := range m.Parts {
		n += p.VertexCount()
	}
	return n
}

// finish computes normals and bounds for every part and drops parts that
// ended up without faces.
func (m *Model) finish() {
	parts := m.Parts[:0]
	for _, p := range m.Parts {
		if p.TriangleCount() == 0 {
			continue
		}
		p.CalculateNormals()
		p.CalculateBounds()
		parts = append(parts, p)
	}
	m.Parts = parts
}
