package models

import (
	"errors"
	"fmt"
	"math"

	"github.com/taigrr/meshview/pkg/math3d"
)

// TargetSize is the edge length of the cube a normalized model fits into.
const TargetSize = 5.0

// ErrDegenerateGeometry is returned when a bounding box has no extent,
// e.g. an empty mesh or one whose vertices all coincide, or when the fit
// would not be finite.
var ErrDegenerateGeometry = errors.New("degenerate geometry")

// Fit describes how one bounding box is brought into the target cube.
type Fit struct {
	Bounds math3d.Box  // Box before normalization
	Scale  float64     // Uniform scale factor
	Offset math3d.Vec3 // Translation applied after scaling
}

// FitBounds computes the scale and offset that put b's largest dimension at
// TargetSize and its center at the origin.
func FitBounds(b math3d.Box) (Fit, error) {
	if b.IsEmpty() {
		return Fit{}, ErrDegenerateGeometry
	}
	maxDim := b.Size().MaxComponent()
	if maxDim <= 0 || math.IsNaN(maxDim) || math.IsInf(maxDim, 0) {
		return Fit{}, ErrDegenerateGeometry
	}

	// A subnormal extent overflows the scale.
	scale := TargetSize / maxDim
	if math.IsInf(scale, 0) || math.IsNaN(scale) {
		return Fit{}, ErrDegenerateGeometry
	}
	offset := b.Center().Scale(-scale)
	if !offset.IsFinite() {
		return Fit{}, ErrDegenerateGeometry
	}
	return Fit{Bounds: b, Scale: scale, Offset: offset}, nil
}

// Matrix returns the transform: scale first, then move the scaled center to
// the origin.
func (f Fit) Matrix() math3d.Mat4 {
	return math3d.Translate(f.Offset).Mul(math3d.ScaleUniform(f.Scale))
}

// NormalizeMesh fits a single mesh into the target cube in place.
func NormalizeMesh(m *Mesh) (Fit, error) {
	m.CalculateBounds()
	fit, err := FitBounds(m.Bounds)
	if err != nil {
		return Fit{}, fmt.Errorf("mesh %q: %w", m.Name, err)
	}
	m.Transform(fit.Matrix())
	return fit, nil
}

// Normalize rewrites the model's parts in place according to its strategy
// and returns the fits that were applied: one per part for StrategyPerPart,
// otherwise exactly one.
//
// Every fit is computed before any vertex moves, so an error leaves the
// model untouched.
func Normalize(m *Model) ([]Fit, error) {
	if len(m.Parts) == 0 {
		return nil, ErrDegenerateGeometry
	}
	for _, p := range m.Parts {
		p.CalculateBounds()
	}

	switch m.Strategy {
	case StrategySingleMesh:
		if len(m.Parts) != 1 {
			return nil, fmt.Errorf("single-mesh model has %d parts", len(m.Parts))
		}
		fit, err := FitBounds(m.Parts[0].Bounds)
		if err != nil {
			return nil, err
		}
		m.Parts[0].Transform(fit.Matrix())
		return []Fit{fit}, nil

	case StrategyPerPart:
		fits := make([]Fit, len(m.Parts))
		for i, p := range m.Parts {
			fit, err := FitBounds(p.Bounds)
			if err != nil {
				return nil, fmt.Errorf("part %q: %w", p.Name, err)
			}
			fits[i] = fit
		}
		for i, p := range m.Parts {
			p.Transform(fits[i].Matrix())
		}
		return fits, nil

	case StrategyGrouped:
		fit, err := FitBounds(m.Bounds())
		if err != nil {
			return nil, err
		}
		mat := fit.Matrix()
		for _, p := range m.Parts {
			p.Transform(mat)
		}
		return []Fit{fit}, nil

	default:
		return nil, fmt.Errorf("unknown normalization strategy %d", m.Strategy)
	}
}
