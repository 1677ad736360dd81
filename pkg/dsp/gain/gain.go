// Package gain provides the output level stage applied after generation.
package gain

import (
	"math"
)

// MinDB is the level treated as silence
const MinDB = -200.0

// LinearToDb converts a linear amplitude value to decibels.
// Returns MinDB for values <= 0.
func LinearToDb(linear float64) float64 {
	if linear <= 0 {
		return MinDB
	}
	return 20.0 * math.Log10(linear)
}

// DbToLinear converts a decibel value to linear amplitude.
// Values <= MinDB return 0.
func DbToLinear(db float64) float64 {
	if db <= MinDB {
		return 0
	}
	return math.Pow(10.0, db/20.0)
}

// ApplyBuffer applies gain to an entire buffer in-place.
func ApplyBuffer(buffer []float32, gain float32) {
	for i := range buffer {
		buffer[i] *= gain
	}
}

// Ramp is a linear gain ramp. It moves to a new target over a fixed
// number of samples and then holds it.
type Ramp struct {
	current   float64
	target    float64
	step      float64
	remaining int
}

// NewRamp returns a ramp holding value
func NewRamp(value float64) *Ramp {
	return &Ramp{current: value, target: value}
}

// Value returns the current gain
func (r *Ramp) Value() float64 {
	return r.current
}

// Target returns the gain the ramp is moving to
func (r *Ramp) Target() float64 {
	return r.target
}

// Ramping reports whether the ramp has not reached its target yet
func (r *Ramp) Ramping() bool {
	return r.remaining > 0
}

// SetTarget starts a ramp from the current gain to target. The target is
// reached on the last of the given samples; samples <= 0 jumps immediately.
func (r *Ramp) SetTarget(target float64, samples int) {
	r.target = target
	if samples <= 0 {
		r.current = target
		r.remaining = 0
		return
	}
	r.step = (target - r.current) / float64(samples)
	r.remaining = samples
}

// Next advances the ramp by one sample and returns the gain for it
func (r *Ramp) Next() float64 {
	if r.remaining == 0 {
		return r.current
	}
	r.remaining--
	if r.remaining == 0 {
		r.current = r.target
	} else {
		r.current += r.step
	}
	return r.current
}

// Process applies the ramp to buffer in-place
func (r *Ramp) Process(buffer []float32) {
	if !r.Ramping() {
		if r.current != 1 {
			ApplyBuffer(buffer, float32(r.current))
		}
		return
	}
	for i := range buffer {
		buffer[i] *= float32(r.Next())
	}
}
