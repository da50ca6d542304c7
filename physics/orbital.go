package physics

import (
	"fmt"
	"math"

	"github.com/lixenwraith/orbiter/parameter"
	"github.com/lixenwraith/orbiter/vmath"
)

// G is the gravitational constant in m³ kg⁻¹ s⁻²
const G = parameter.GravitationalConstant

// OrbitalVelocity returns tangential speed for a circular orbit of radius r around mass m
func OrbitalVelocity(mass, radius float64) float64 {
	// v = sqrt(G*M / r)
	return math.Sqrt(G * mass / radius)
}

// OrbitalPeriod returns the two-body period for a circular orbit of radius r around mass m
func OrbitalPeriod(mass, radius float64) float64 {
	return 2 * math.Pi * math.Sqrt(radius*radius*radius/(G*mass))
}

// Integrator advances bodies under gravity with semi-implicit Euler
// Scratch vectors are reused across calls; each is fully consumed before the next body is touched
// Not safe for concurrent use
type Integrator struct {
	radius vmath.Vector // influence -> body
	pull   vmath.Vector // per-influence velocity change
	dv     vmath.Vector // accumulated velocity change for the current body
	move   vmath.Vector // displacement for the current sub-step

	kicks []vmath.Vector // per-body velocity change, StepAll only
}

// NewIntegrator creates an integrator with zeroed scratch state
func NewIntegrator() *Integrator {
	return &Integrator{}
}

// InitializeCircularOrbit sets velocity of body i for circular orbits around each influence
// Each influence contributes sqrt(G*M/r) along +Y independently and contributions are summed
// The direction is not the true tangent and multi-influence sums are an approximation,
// both hold for bodies laid out on the +X axis from their parents
func (in *Integrator) InitializeCircularOrbit(sys *System, i int) error {
	orbiter := &sys.Bodies[i]
	orbiter.Velocity.Clear()
	for _, idx := range orbiter.Influences {
		influence := &sys.Bodies[idx]
		r := in.radius.SetVector(orbiter.Position).Subtract(influence.Position).Length()
		if r == 0 {
			return fmt.Errorf("%w: body %d on influence %d", ErrCoincident, i, idx)
		}
		vy := OrbitalVelocity(influence.Mass, r)
		orbiter.Velocity.Add(vmath.Vector{X: 0, Y: vy})
	}
	return nil
}

// Step advances body i by dt seconds and returns the distance traveled
// Velocity is updated from every influence, then extra pulls (non-member probes), then position
// Exact coincidence with an influence returns ErrCoincident and leaves the body untouched;
// a probe exactly on the body exerts no pull
func (in *Integrator) Step(sys *System, i int, dt float64, extra ...Body) (float64, error) {
	if err := in.pullOn(sys, i, dt, extra); err != nil {
		return 0, err
	}
	body := &sys.Bodies[i]
	body.Velocity.Add(in.dv)
	return in.drift(body, dt), nil
}

// pullOn sums the velocity change of body i over dt into in.dv without modifying the system
func (in *Integrator) pullOn(sys *System, i int, dt float64, extra []Body) error {
	body := &sys.Bodies[i]
	in.dv.Clear()

	for _, idx := range body.Influences {
		if err := in.accumulate(body, &sys.Bodies[idx], dt); err != nil {
			return fmt.Errorf("body %d, influence %d: %w", i, idx, err)
		}
	}
	for k := range extra {
		// accumulate adds nothing on coincidence
		_ = in.accumulate(body, &extra[k], dt)
	}
	return nil
}

// drift moves body by its velocity over dt and returns the distance
func (in *Integrator) drift(body *Body, dt float64) float64 {
	in.move.SetVector(body.Velocity).Scale(dt)
	body.Position.Add(in.move)
	return in.move.Length()
}

// accumulate adds the pull of influence on body over dt into in.dv
func (in *Integrator) accumulate(body, influence *Body, dt float64) error {
	in.radius.SetVector(body.Position).Subtract(influence.Position)
	r := in.radius.Length()
	if r == 0 {
		return ErrCoincident
	}

	// Clamping to the influence radius prevents overshoot when bodies nearly coincide
	clamped := math.Max(influence.Radius, r)
	accel := G * influence.Mass / (clamped * clamped)

	in.pull.SetVector(in.radius).Invert().Normalize().Scale(accel * dt)
	in.dv.Add(in.pull)
	return nil
}

// StepAll steps every influenced body once, adding traveled distances into deltas
// Every pull is taken from positions at the start of the sub-step, no body moves before all are known
// On error the system is left unmodified; deltas must have at least sys.Len() entries
// Bodies without influences are anchors and never move
func (in *Integrator) StepAll(sys *System, dt float64, deltas []float64, extra ...Body) error {
	n := sys.Len()
	if cap(in.kicks) < n {
		in.kicks = make([]vmath.Vector, n)
	}
	kicks := in.kicks[:n]

	for i := range sys.Bodies {
		if len(sys.Bodies[i].Influences) == 0 {
			continue
		}
		if err := in.pullOn(sys, i, dt, extra); err != nil {
			return err
		}
		kicks[i] = in.dv
	}

	for i := range sys.Bodies {
		body := &sys.Bodies[i]
		if len(body.Influences) == 0 {
			continue
		}
		body.Velocity.Add(kicks[i])
		deltas[i] += in.drift(body, dt)
	}
	return nil
}

// SpecificOrbitalEnergy returns v²/2 - G*M/r of body i relative to body j
func SpecificOrbitalEnergy(sys *System, i, j int) float64 {
	var rel, vel vmath.Vector
	rel.SetVector(sys.Bodies[i].Position).Subtract(sys.Bodies[j].Position)
	vel.SetVector(sys.Bodies[i].Velocity).Subtract(sys.Bodies[j].Velocity)
	return vel.LengthSq()/2 - G*sys.Bodies[j].Mass/rel.Length()
}
