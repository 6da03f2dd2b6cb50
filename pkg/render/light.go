package render

import (
	"math"

	"github.com/taigrr/meshview/pkg/math3d"
)

// Light is an ambient term plus one directional light, both white.
type Light struct {
	Ambient   float64
	Diffuse   float64
	Direction math3d.Vec3 // toward the light
}

// DefaultLight is ambient 1.0 plus a directional light of 1.5 shining from
// (1, 1, 1).
func DefaultLight() Light {
	return Light{
		Ambient:   1.0,
		Diffuse:   1.5,
		Direction: math3d.V3(1, 1, 1).Normalize(),
	}
}

// Intensity returns the brightness of a surface facing normal, in [0, 1].
// Ambient contributes 30% of its strength and the directional light 50%,
// weighted by Lambert's cosine law.
func (l Light) Intensity(normal math3d.Vec3) float64 {
	cos := math.Max(0, normal.Dot(l.Direction.Normalize()))
	return math.Min(1, 0.3*l.Ambient+0.5*l.Diffuse*cos)
}
