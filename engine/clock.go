package engine

import (
	"iter"
	"math"

	"github.com/lixenwraith/orbiter/parameter"
)

// SimulationClock converts wall-clock frame deltas into bounded simulation sub-steps
// Large single steps under inverse-square forces drift energy, so every frame is split at MaxSubStep
type SimulationClock struct {
	presets    []parameter.TimeScalePreset
	scaleIndex int

	// MaxDeltaMillis clamps a raw frame delta
	MaxDeltaMillis float64
	// MaxSubStep caps a single integration step in simulated seconds
	MaxSubStep float64
}

// NewSimulationClock creates a clock on the given preset index, clamped to the preset range
func NewSimulationClock(scaleIndex int, maxDeltaMillis, maxSubStep float64) *SimulationClock {
	c := &SimulationClock{
		presets:        parameter.TimeScalePresets,
		MaxDeltaMillis: maxDeltaMillis,
		MaxSubStep:     maxSubStep,
	}
	c.SetScaleIndex(scaleIndex)
	return c
}

// StepBudget clamps rawDeltaMillis to [0, maxDeltaMillis] and converts it to scaled simulation seconds
func (c *SimulationClock) StepBudget(rawDeltaMillis, maxDeltaMillis float64) float64 {
	dt := math.Min(maxDeltaMillis, rawDeltaMillis)
	if !(dt > 0) {
		return 0
	}
	return dt / 1000 * c.Factor()
}

// Budget is StepBudget with the clock's configured clamp
func (c *SimulationClock) Budget(rawDeltaMillis float64) float64 {
	return c.StepBudget(rawDeltaMillis, c.MaxDeltaMillis)
}

// Subdivide lazily splits total into steps of at most maxSub seconds; the final step may be shorter
// Yields nothing for a non-positive total and the whole total once for a non-positive cap
func Subdivide(total, maxSub float64) iter.Seq[float64] {
	return func(yield func(float64) bool) {
		if !(total > 0) {
			return
		}
		if !(maxSub > 0) {
			yield(total)
			return
		}
		for remaining := total; remaining > 0; remaining -= maxSub {
			if !yield(math.Min(maxSub, remaining)) {
				return
			}
		}
	}
}

// SubSteps subdivides total with the clock's configured cap
func (c *SimulationClock) SubSteps(total float64) iter.Seq[float64] {
	return Subdivide(total, c.MaxSubStep)
}

// Factor returns simulated seconds per real second for the active preset
func (c *SimulationClock) Factor() float64 {
	return c.presets[c.scaleIndex].Factor
}

// Label returns the active preset label
func (c *SimulationClock) Label() string {
	return c.presets[c.scaleIndex].Label
}

func (c *SimulationClock) ScaleIndex() int {
	return c.scaleIndex
}

// SetScaleIndex selects a preset, clamped to the ends
func (c *SimulationClock) SetScaleIndex(i int) {
	c.scaleIndex = max(0, min(i, len(c.presets)-1))
}

// Faster selects the next larger preset, returns false at the end
func (c *SimulationClock) Faster() bool {
	prev := c.scaleIndex
	c.SetScaleIndex(prev + 1)
	return c.scaleIndex != prev
}

// Slower selects the next smaller preset, returns false at the start
func (c *SimulationClock) Slower() bool {
	prev := c.scaleIndex
	c.SetScaleIndex(prev - 1)
	return c.scaleIndex != prev
}
