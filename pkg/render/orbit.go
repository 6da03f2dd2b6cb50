package render

import (
	"math"

	"github.com/charmbracelet/harmonica"
	"github.com/taigrr/meshview/pkg/math3d"
)

// Orbit distance limits and the distance a reset returns to.
const (
	MinOrbitDistance     = 1.0
	MaxOrbitDistance     = 100.0
	DefaultOrbitDistance = 5.0
)

const (
	minPolar = 0.01
	maxPolar = math.Pi - 0.01
)

// OrbitAxis is one spherical coordinate of the orbit. Input moves Goal at
// once; Value follows it through a critically damped spring, which gives
// the camera its inertia.
type OrbitAxis struct {
	Value  float64
	Goal   float64
	vel    float64
	spring harmonica.Spring
}

func newOrbitAxis(fps int, v float64) OrbitAxis {
	return OrbitAxis{
		Value: v,
		Goal:  v,
		// Frequency 6.0 = snappy, damping 1.0 = critically damped (no overshoot)
		spring: harmonica.NewSpring(harmonica.FPS(fps), 6.0, 1.0),
	}
}

// Update advances the spring by one frame.
func (a *OrbitAxis) Update() {
	a.Value, a.vel = a.spring.Update(a.Value, a.vel, a.Goal)
}

func (a *OrbitAxis) settled() bool {
	return math.Abs(a.Goal-a.Value) < 1e-4 && math.Abs(a.vel) < 1e-4
}

// Orbit keeps a camera on a sphere around Target. Azimuth turns around the
// world Y axis, Polar is measured from +Y, Distance is the sphere radius.
type Orbit struct {
	Target   math3d.Vec3
	Azimuth  OrbitAxis
	Polar    OrbitAxis
	Distance OrbitAxis
	fps      int
}

// NewOrbit creates orbit controls whose default pose matches
// DefaultCameraPosition.
func NewOrbit(fps int) *Orbit {
	o := &Orbit{fps: max(fps, 1)}
	o.Reset()
	return o
}

// Reset snaps back to the default pose without animating.
func (o *Orbit) Reset() {
	o.Target = math3d.Zero3()
	o.Azimuth = newOrbitAxis(o.fps, 0)
	o.Polar = newOrbitAxis(o.fps, math.Pi/2)
	o.Distance = newOrbitAxis(o.fps, DefaultOrbitDistance)
}

// Rotate moves the goal pose by the given angles in radians.
func (o *Orbit) Rotate(dAzimuth, dPolar float64) {
	o.Azimuth.Goal += dAzimuth
	o.Polar.Goal = clamp(o.Polar.Goal+dPolar, minPolar, maxPolar)
}

// Zoom multiplies the goal distance by factor; factors below 1 move closer.
func (o *Orbit) Zoom(factor float64) {
	if factor <= 0 {
		return
	}
	o.Distance.Goal = clamp(o.Distance.Goal*factor, MinOrbitDistance, MaxOrbitDistance)
}

// Update advances all springs by one frame.
func (o *Orbit) Update() {
	o.Azimuth.Update()
	o.Polar.Update()
	o.Distance.Update()
}

// Settled reports whether the camera has reached its goal pose.
func (o *Orbit) Settled() bool {
	return o.Azimuth.settled() && o.Polar.settled() && o.Distance.settled()
}

// Position returns the current camera position.
func (o *Orbit) Position() math3d.Vec3 {
	theta := o.Azimuth.Value
	phi := clamp(o.Polar.Value, minPolar, maxPolar)
	d := clamp(o.Distance.Value, MinOrbitDistance, MaxOrbitDistance)
	return o.Target.Add(math3d.V3(
		d*math.Sin(phi)*math.Sin(theta),
		d*math.Cos(phi),
		d*math.Sin(phi)*math.Cos(theta),
	))
}

// Apply positions the camera and aims it at Target.
func (o *Orbit) Apply(c *Camera) {
	c.SetPosition(o.Position())
	c.LookAt(o.Target)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
