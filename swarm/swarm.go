// Package swarm computes per-frame instance transforms for the particle swarm.
//
// A Swarm is created once with a fixed particle count and advanced once per
// displayed frame. Each particle carries its own phase and drift state; the
// transforms it produces are written into a caller-owned buffer so the render
// loop does not allocate after the first frame.
package swarm

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/spatial/r3"
)

// Particle generation ranges.
const (
	PhaseRange = 100.0 // initial phase in [0, PhaseRange)

	FactorMin   = 20.0
	FactorRange = 100.0 // factor in [FactorMin, FactorMin+FactorRange)

	SpeedMin   = 0.01
	SpeedRange = 0.005 // speed in [SpeedMin, SpeedMin+SpeedRange)

	AxisMin   = -50.0
	AxisRange = 100.0 // axis factors in [AxisMin, AxisMin+AxisRange)

	// RotationScale multiplies the per-frame scale into the Euler rotation.
	RotationScale = 5.0
)

// ErrInvalidCount is returned by New for a negative particle count.
var ErrInvalidCount = errors.New("swarm: invalid particle count")

// Particle is one element of the swarm.
type Particle struct {
	T      float64 // phase, advanced by Speed/2 each frame
	Factor float64
	Speed  float64

	XFactor, YFactor, ZFactor float64

	// Drift accumulators. These feed back on themselves every frame.
	MX, MY float64
}

// Input is the ambient state sampled once per frame.
type Input struct {
	MouseX, MouseY       float64 // pointer, normalized to [-1, 1]
	ViewportW, ViewportH float64 // visible world size at the camera target
}

// Transform is the instance transform written for one particle.
// Scale is uniform; Rotation is an XYZ Euler triple in radians.
type Transform struct {
	Position r3.Vec
	Scale    r3.Vec
	Rotation r3.Vec
}

// Swarm owns a fixed-size set of particles.
type Swarm struct {
	particles []Particle
}

// New allocates count particles with factors drawn from rng.
// A zero count yields an empty swarm; a negative count fails before allocation.
func New(count int, rng *rand.Rand) (*Swarm, error) {
	if count < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCount, count)
	}

	particles := make([]Particle, count)
	for i := range particles {
		particles[i] = Particle{
			T:       rng.Float64() * PhaseRange,
			Factor:  FactorMin + rng.Float64()*FactorRange,
			Speed:   SpeedMin + rng.Float64()*SpeedRange,
			XFactor: AxisMin + rng.Float64()*AxisRange,
			YFactor: AxisMin + rng.Float64()*AxisRange,
			ZFactor: AxisMin + rng.Float64()*AxisRange,
		}
	}
	return &Swarm{particles: particles}, nil
}

// Replace builds a fresh swarm of count particles to take the place of cur.
// On an invalid count cur is returned unchanged along with the error.
func Replace(cur *Swarm, count int, rng *rand.Rand) (*Swarm, error) {
	s, err := New(count, rng)
	if err != nil {
		return cur, err
	}
	return s, nil
}

// Len returns the particle count.
func (s *Swarm) Len() int {
	return len(s.particles)
}

// Particles exposes the particle state. Callers must not retain it across
// a rebuild.
func (s *Swarm) Particles() []Particle {
	return s.particles
}

// Clone returns a deep copy of the swarm state.
func (s *Swarm) Clone() *Swarm {
	cp := make([]Particle, len(s.particles))
	copy(cp, s.particles)
	return &Swarm{particles: cp}
}

// Advance steps every particle once and writes its transform into out.
// out is reused when it has enough capacity; the returned slice has Len()
// elements, with element i belonging to particle i.
func (s *Swarm) Advance(in Input, out []Transform) []Transform {
	n := len(s.particles)
	if cap(out) < n {
		out = make([]Transform, n)
	}
	out = out[:n]

	for i := range s.particles {
		p := &s.particles[i]
		p.T += p.Speed / 2
		t := p.T

		sinT, cosT := math.Sin(t), math.Cos(t)
		cos2T := math.Cos(t * 2)
		a := cosT + sinT/10
		b := sinT + cos2T/10
		sc := cosT

		p.MX += in.MouseX * in.ViewportW * p.MX * 0.01
		p.MY += in.MouseY * in.ViewportH * p.MY * 0.01

		phase := (t / 10) * p.Factor
		sinPhase, cosPhase := math.Sin(phase), math.Cos(phase)

		// z follows the y accumulator on purpose.
		out[i] = Transform{
			Position: r3.Vec{
				X: (p.MX/10)*a + p.XFactor + cosPhase + sinT*p.Factor/10,
				Y: (p.MY/10)*b + p.YFactor + sinPhase + cos2T*p.Factor/10,
				Z: (p.MY/10)*b + p.ZFactor + cosPhase + math.Sin(t*3)*p.Factor/10,
			},
			Scale:    r3.Vec{X: sc, Y: sc, Z: sc},
			Rotation: r3.Vec{X: sc * RotationScale, Y: sc * RotationScale, Z: sc * RotationScale},
		}
	}
	return out
}

// Matrix returns the column-major model matrix T·Rx·Ry·Rz·S for the
// transform. Element [row+4*col] holds row, col; translation is in 12..14.
// The rotation applies Z first, then Y, then X to a local point.
func (tr Transform) Matrix() [16]float64 {
	a, b := math.Cos(tr.Rotation.X), math.Sin(tr.Rotation.X)
	c, d := math.Cos(tr.Rotation.Y), math.Sin(tr.Rotation.Y)
	e, f := math.Cos(tr.Rotation.Z), math.Sin(tr.Rotation.Z)
	ae, af, be, bf := a*e, a*f, b*e, b*f
	sx, sy, sz := tr.Scale.X, tr.Scale.Y, tr.Scale.Z

	return [16]float64{
		c * e * sx, (af + be*d) * sx, (bf - ae*d) * sx, 0,
		-c * f * sy, (ae - bf*d) * sy, (be + af*d) * sy, 0,
		d * sz, -b * c * sz, a * c * sz, 0,
		tr.Position.X, tr.Position.Y, tr.Position.Z, 1,
	}
}

// LightPosition places the pointer light on the z=0 plane under the mouse.
func LightPosition(in Input) r3.Vec {
	return r3.Vec{
		X: in.MouseX * in.ViewportW / 2,
		Y: in.MouseY * in.ViewportH / 2,
		Z: 0,
	}
}
