package render

import (
	"math"

	"github.com/taigrr/meshview/pkg/math3d"
)

// Vertex is a triangle corner in world space.
type Vertex struct {
	Position math3d.Vec3
	Normal   math3d.Vec3
	Color    Color
}

// Triangle is three vertices. Front faces appear clockwise on screen.
type Triangle struct {
	V [3]Vertex
}

// edge is the line function A*x + B*y + C of a directed screen-space edge.
// It is positive on the inner side of a front-facing triangle.
type edge struct{ a, b, c float64 }

func newEdge(p, q screenVertex) edge {
	return edge{a: p.Y - q.Y, b: q.X - p.X, c: p.X*q.Y - q.X*p.Y}
}

func (e edge) at(x, y float64) float64 { return e.a*x + e.b*y + e.c }

func (e edge) flip() edge { return edge{-e.a, -e.b, -e.c} }

// DrawTriangleGouraud fills a triangle with Gouraud shading: light is
// evaluated at each vertex and the colors are blended across the face.
// Triangles reaching behind the near plane are skipped whole.
func (r *Rasterizer) DrawTriangleGouraud(tri Triangle, light Light) {
	if r.fb == nil {
		return
	}
	vp := r.camera.ViewProjectionMatrix()

	var sv [3]screenVertex
	for i, v := range tri.V {
		clip := vp.MulVec4(math3d.V4FromV3(v.Position, 1))
		if clip.W < r.camera.Near {
			return
		}
		sv[i] = r.project(clip)
	}

	// Twice the signed screen area; y points down, so front faces are
	// positive.
	area := (sv[1].X-sv[0].X)*(sv[2].Y-sv[0].Y) - (sv[1].Y-sv[0].Y)*(sv[2].X-sv[0].X)
	if area == 0 {
		return
	}
	back := area < 0
	if back && !r.DisableBackfaceCulling {
		return
	}
	for i, v := range tri.V {
		n := v.Normal
		if back {
			n = n.Negate()
		}
		sv[i].Color = MultiplyColor(v.Color, light.Intensity(n))
	}
	r.fill(sv, area, back)
}

// fill walks the pixels of the triangle's screen bounds, stepping the three
// edge functions incrementally. Each edge function, divided by the area, is
// the barycentric weight of the opposite vertex.
func (r *Rasterizer) fill(sv [3]screenVertex, area float64, back bool) {
	x0 := max(0, int(math.Floor(min3(sv[0].X, sv[1].X, sv[2].X))))
	x1 := min(r.fb.Width-1, int(math.Ceil(max3(sv[0].X, sv[1].X, sv[2].X))))
	y0 := max(0, int(math.Floor(min3(sv[0].Y, sv[1].Y, sv[2].Y))))
	y1 := min(r.fb.Height-1, int(math.Ceil(max3(sv[0].Y, sv[1].Y, sv[2].Y))))
	if x0 > x1 || y0 > y1 {
		return
	}

	edges := [3]edge{
		newEdge(sv[1], sv[2]),
		newEdge(sv[2], sv[0]),
		newEdge(sv[0], sv[1]),
	}
	if back {
		for i := range edges {
			edges[i] = edges[i].flip()
		}
		area = -area
	}
	inv := 1 / area

	var red, green, blue [3]float64
	for i, v := range sv {
		red[i], green[i], blue[i] = float64(v.Color.R), float64(v.Color.G), float64(v.Color.B)
	}

	// Sample at pixel centers.
	cx, cy := float64(x0)+0.5, float64(y0)+0.5
	var row [3]float64
	for i, e := range edges {
		row[i] = e.at(cx, cy)
	}

	for y := y0; y <= y1; y++ {
		w := row
		base := y * r.fb.Width
		for x := x0; x <= x1; x++ {
			if w[0] >= 0 && w[1] >= 0 && w[2] >= 0 {
				b0, b1, b2 := w[0]*inv, w[1]*inv, w[2]*inv
				z := b0*sv[0].Z + b1*sv[1].Z + b2*sv[2].Z
				if i := base + x; z < r.depth[i] {
					r.depth[i] = z
					r.fb.Pixels[i] = RGB(
						uint8(b0*red[0]+b1*red[1]+b2*red[2]),
						uint8(b0*green[0]+b1*green[1]+b2*green[2]),
						uint8(b0*blue[0]+b1*blue[1]+b2*blue[2]),
					)
				}
			}
			for i := range w {
				w[i] += edges[i].a
			}
		}
		for i := range row {
			row[i] += edges[i].b
		}
	}
}

func min3(a, b, c float64) float64 { return math.Min(a, math.Min(b, c)) }

func max3(a, b, c float64) float64 { return math.Max(a, math.Max(b, c)) }
