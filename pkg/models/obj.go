package models

import (
	"errors"
	"fmt"
	"strings"

	"github.com/taigrr/meshview/pkg/math3d"
	"github.com/udhos/gwob"
)

var errNoFaces = errors.New("no faces")

// ParseOBJ decodes Wavefront OBJ text. Every "o" or "g" statement starts a
// new part; polygons are fan-triangulated. Materials, texture coordinates
// and file normals are ignored: normals are recomputed per face.
func ParseOBJ(name, text string) (*Model, error) {
	obj, err := gwob.NewObjFromBuf(name, []byte(objGroups(text)), &gwob.ObjParserOptions{
		IgnoreNormals: true,
		// The parser would otherwise print over the terminal UI.
		Logger: func(string) {},
	})
	if err != nil {
		return nil, fmt.Errorf("parse obj: %w", err)
	}

	m := &Model{
		Name:     name,
		Format:   "obj",
		Strategy: StrategyPerPart,
	}
	var current *Mesh
	for _, g := range obj.Groups {
		if g.IndexCount == 0 {
			continue
		}
		partName := g.Name
		if partName == "" {
			partName = name
		}
		// A material switch splits a group without renaming it.
		if current == nil || current.Name != partName {
			current = NewMesh(partName)
			m.Parts = append(m.Parts, current)
		}
		end := g.IndexBegin + g.IndexCount
		for i := g.IndexBegin; i+2 < end; i += 3 {
			a, err := objPosition(obj, obj.Indices[i])
			if err != nil {
				return nil, err
			}
			b, err := objPosition(obj, obj.Indices[i+1])
			if err != nil {
				return nil, err
			}
			c, err := objPosition(obj, obj.Indices[i+2])
			if err != nil {
				return nil, err
			}
			current.AddTriangle(a, b, c)
		}
	}

	m.finish()
	if len(m.Parts) == 0 {
		return nil, fmt.Errorf("parse obj: %w", errNoFaces)
	}
	return m, nil
}

func objPosition(obj *gwob.Obj, index int) (math3d.Vec3, error) {
	x, y, z, err := obj.VertexCoordinates(index)
	if err != nil {
		return math3d.Vec3{}, fmt.Errorf("vertex %d: %w", index, err)
	}
	return math3d.V3(float64(x), float64(y), float64(z)), nil
}

// objGroups rewrites "o" statements as "g" so both split parts.
func objGroups(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for line := range strings.Lines(text) {
		trimmed := strings.TrimLeft(line, " \t")
		if rest, ok := strings.CutPrefix(trimmed, "o"); ok && (rest == "" || rest[0] == ' ' || rest[0] == '\t' || rest[0] == '\r' || rest[0] == '\n') {
			b.WriteString("g")
			b.WriteString(rest)
			continue
		}
		b.WriteString(line)
	}
	return b.String()
}
