package scene

import (
	"github.com/taigrr/meshview/pkg/math3d"
	"github.com/taigrr/meshview/pkg/render"
)

// Draw renders every visible node. The caller clears the frame.
func (s *Scene) Draw(r *render.Rasterizer) {
	light := s.Light()
	for _, n := range s.children {
		drawNode(r, n, math3d.Identity(), light)
	}
}

func drawNode(r *render.Rasterizer, n *Node, parent math3d.Mat4, light render.Light) {
	if !n.Visible {
		return
	}
	world := parent.Mul(n.Transform)

	switch n.Kind {
	case KindGrid, KindAxes:
		r.DrawSegments(n.Segments, world)
	case KindMesh:
		if n.Material.Wireframe {
			r.DrawMeshWireframe(n.Mesh, world, n.Material.Color)
		} else {
			r.DrawMeshGouraud(n.Mesh, world, n.Material.Color, light)
		}
	}

	for _, c := range n.Children {
		drawNode(r, c, world, light)
	}
}
