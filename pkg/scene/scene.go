// Package scene holds everything meshview draws: lights, the grid and axes
// decorations, and the loaded models.
package scene

import (
	"math"

	"github.com/taigrr/meshview/pkg/math3d"
	"github.com/taigrr/meshview/pkg/models"
	"github.com/taigrr/meshview/pkg/render"
)

const (
	gridSize      = 50
	gridDivisions = 50
	axesLength    = 5
)

// Colors used when Options leaves them unset.
var (
	DefaultBackground = render.Hex(0x2e2e2e)
	DefaultModelColor = render.Hex(0x808080)
	gridColor         = render.Hex(0x444444)
)

// Kind identifies what a Node is.
type Kind int

const (
	KindAmbientLight Kind = iota
	KindDirectionalLight
	KindGrid
	KindAxes
	KindMesh
	KindGroup
)

func (k Kind) String() string {
	switch k {
	case KindAmbientLight:
		return "ambient-light"
	case KindDirectionalLight:
		return "directional-light"
	case KindGrid:
		return "grid"
	case KindAxes:
		return "axes"
	case KindMesh:
		return "mesh"
	case KindGroup:
		return "group"
	default:
		return "unknown"
	}
}

// Material controls how a mesh node is drawn.
type Material struct {
	Color     render.Color
	Wireframe bool
}

// Node is one entry of the scene graph.
type Node struct {
	Name      string
	Kind      Kind
	Visible   bool
	Transform math3d.Mat4

	// Lights
	Intensity float64
	Direction math3d.Vec3

	// Grid and axes
	Segments []render.Segment

	// Meshes
	Mesh     *models.Mesh
	Material *Material

	// Groups
	Children []*Node
}

// Options configures a new scene.
type Options struct {
	Background render.Color
	ModelColor render.Color
	ShowGrid   bool
	ShowAxes   bool
	Wireframe  bool
}

// DefaultOptions returns the stock look: dark background, gray models, grid
// and axes shown.
func DefaultOptions() Options {
	return Options{
		Background: DefaultBackground,
		ModelColor: DefaultModelColor,
		ShowGrid:   true,
		ShowAxes:   true,
	}
}

// Scene is the single scene of an application session.
type Scene struct {
	children   []*Node
	ambient    *Node
	sun        *Node
	grids      [3]*Node
	axes       *Node
	wireframe  bool
	background render.Color
	modelColor render.Color
}

// New builds a scene holding the persistent decorations and no models.
func New(opts Options) *Scene {
	if opts.Background == (render.Color{}) {
		opts.Background = DefaultBackground
	}
	if opts.ModelColor == (render.Color{}) {
		opts.ModelColor = DefaultModelColor
	}

	s := &Scene{
		wireframe:  opts.Wireframe,
		background: opts.Background,
		modelColor: opts.ModelColor,
	}

	s.ambient = &Node{
		Name:      "ambient",
		Kind:      KindAmbientLight,
		Visible:   true,
		Transform: math3d.Identity(),
		Intensity: 1.0,
	}
	s.sun = &Node{
		Name:      "directional",
		Kind:      KindDirectionalLight,
		Visible:   true,
		Transform: math3d.Identity(),
		Intensity: 1.5,
		Direction: math3d.V3(1, 1, 1).Normalize(),
	}
	s.axes = &Node{
		Name:      "axes",
		Kind:      KindAxes,
		Visible:   opts.ShowAxes,
		Transform: math3d.Identity(),
		Segments:  render.AxesSegments(axesLength),
	}

	lines := render.GridSegments(gridSize, gridDivisions, gridColor)
	gridTransforms := [3]struct {
		name string
		mat  math3d.Mat4
	}{
		{"grid-horizontal", math3d.Identity()},
		{"grid-front", math3d.RotateX(math.Pi / 2)},
		{"grid-side", math3d.RotateZ(math.Pi / 2)},
	}
	for i, g := range gridTransforms {
		s.grids[i] = &Node{
			Name:      g.name,
			Kind:      KindGrid,
			Visible:   opts.ShowGrid,
			Transform: g.mat,
			Segments:  lines,
		}
	}

	s.children = []*Node{s.ambient, s.sun, s.axes, s.grids[0], s.grids[1], s.grids[2]}
	return s
}

// Background returns the clear color.
func (s *Scene) Background() render.Color {
	return s.background
}

// Light returns the scene lighting in the form the rasterizer uses.
func (s *Scene) Light() render.Light {
	l := render.Light{Direction: s.sun.Direction}
	if s.ambient.Visible {
		l.Ambient = s.ambient.Intensity
	}
	if s.sun.Visible {
		l.Diffuse = s.sun.Intensity
	}
	return l
}

// SetGridVisible shows or hides all three grid planes together.
func (s *Scene) SetGridVisible(v bool) {
	for _, g := range s.grids {
		g.Visible = v
	}
}

// GridVisible reports whether every grid plane is visible.
func (s *Scene) GridVisible() bool {
	for _, g := range s.grids {
		if !g.Visible {
			return false
		}
	}
	return true
}

// Grids returns the three grid planes: horizontal, front, side.
func (s *Scene) Grids() [3]*Node {
	return s.grids
}

// SetAxesVisible shows or hides the axes helper.
func (s *Scene) SetAxesVisible(v bool) {
	s.axes.Visible = v
}

// AxesVisible reports whether the axes helper is visible.
func (s *Scene) AxesVisible() bool {
	return s.axes.Visible
}

// SetWireframe switches every mesh currently in the scene to wireframe or
// shaded drawing. Meshes added later adopt the same setting.
func (s *Scene) SetWireframe(on bool) {
	s.wireframe = on
	for _, n := range s.Meshes() {
		n.Material.Wireframe = on
	}
}

// Wireframe reports the current wireframe setting.
func (s *Scene) Wireframe() bool {
	return s.wireframe
}

// AddModel attaches a normalized model. A single-mesh model becomes one mesh
// node, a per-part model one mesh node per part, and a grouped model one
// group node holding a mesh node per part. It returns the nodes added
// directly to the scene.
func (s *Scene) AddModel(m *models.Model) []*Node {
	var added []*Node
	switch m.Strategy {
	case models.StrategyGrouped:
		group := &Node{
			Name:      m.Name,
			Kind:      KindGroup,
			Visible:   true,
			Transform: math3d.Identity(),
		}
		for _, p := range m.Parts {
			group.Children = append(group.Children, s.meshNode(p))
		}
		added = append(added, group)
	default:
		for _, p := range m.Parts {
			added = append(added, s.meshNode(p))
		}
	}
	s.children = append(s.children, added...)
	return added
}

func (s *Scene) meshNode(m *models.Mesh) *Node {
	return &Node{
		Name:      m.Name,
		Kind:      KindMesh,
		Visible:   true,
		Transform: math3d.Identity(),
		Mesh:      m,
		Material:  &Material{Color: s.modelColor, Wireframe: s.wireframe},
	}
}

// ChildCount returns the number of top-level nodes.
func (s *Scene) ChildCount() int {
	return len(s.children)
}

// Children returns the top-level nodes.
func (s *Scene) Children() []*Node {
	return s.children
}

// Meshes walks the whole scene graph and returns every mesh node.
func (s *Scene) Meshes() []*Node {
	var out []*Node
	var walk func(nodes []*Node)
	walk = func(nodes []*Node) {
		for _, n := range nodes {
			if n.Kind == KindMesh {
				out = append(out, n)
			}
			walk(n.Children)
		}
	}
	walk(s.children)
	return out
}

// Stats sums the geometry of every mesh node.
func (s *Scene) Stats() (meshes, vertices, triangles int) {
	for _, n := range s.Meshes() {
		meshes++
		vertices += n.Mesh.VertexCount()
		triangles += n.Mesh.TriangleCount()
	}
	return meshes, vertices, triangles
}
