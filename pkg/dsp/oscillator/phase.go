// Package oscillator provides phase-accumulating sound algorithms.
package oscillator

import "math"

// Phase is a phase accumulator: position within one cycle, in [0, 1).
type Phase struct {
	value float64
}

// Value returns the current phase
func (p *Phase) Value() float64 {
	return p.value
}

// Set sets the phase, wrapping it into [0, 1)
func (p *Phase) Set(phase float64) {
	p.value = phase - math.Floor(phase)
	if p.value >= 1.0 {
		p.value = 0
	}
}

// Reset resets the phase to 0
func (p *Phase) Reset() {
	p.value = 0
}

// Advance adds inc to the phase and reports whether it wrapped.
//
// Wrapping subtracts exactly 1.0 so the fractional carry survives and
// cycle timing does not drift. An increment of a whole cycle or more also
// drops the extra whole cycles; a negative increment wraps upward.
func (p *Phase) Advance(inc float64) bool {
	p.value += inc

	switch {
	case p.value >= 1.0:
		p.value -= 1.0
		if p.value >= 1.0 {
			p.value -= math.Floor(p.value)
		}
		return true
	case p.value < 0:
		p.value -= math.Floor(p.value)
		if p.value >= 1.0 {
			p.value = 0
		}
		return true
	}
	return false
}
