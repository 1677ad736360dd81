package oscillator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPhaseAdvance(t *testing.T) {
	tests := []struct {
		name    string
		start   float64
		inc     float64
		want    float64
		wrapped bool
	}{
		{"NoWrap", 0.1, 0.2, 0.3, false},
		{"ExactCycle", 0.75, 0.25, 0, true},
		{"KeepsRemainder", 0.9, 0.25, 0.15, true},
		{"WholeCycles", 0.5, 2.25, 0.75, true},
		{"Negative", 0.1, -0.25, 0.85, true},
		{"NegativeWholeCycles", 0.5, -3.75, 0.75, true},
		{"Zero", 0.4, 0, 0.4, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p Phase
			p.Set(tt.start)
			wrapped := p.Advance(tt.inc)
			assert.Equal(t, tt.wrapped, wrapped)
			assert.InDelta(t, tt.want, p.Value(), 1e-12)
			assert.GreaterOrEqual(t, p.Value(), 0.0)
			assert.Less(t, p.Value(), 1.0)
		})
	}
}

func TestPhaseNonFinite(t *testing.T) {
	var p Phase
	p.Advance(math.Inf(1))
	assert.True(t, math.IsNaN(p.Value()), "infinite increments poison the phase instead of hanging")

	var q Phase
	assert.False(t, q.Advance(math.NaN()))
}

func TestPhaseSet(t *testing.T) {
	var p Phase
	p.Set(2.75)
	assert.InDelta(t, 0.75, p.Value(), 1e-12)
	p.Set(-0.25)
	assert.InDelta(t, 0.75, p.Value(), 1e-12)
	p.Set(-1e-20)
	assert.Less(t, p.Value(), 1.0)
	p.Reset()
	assert.Equal(t, 0.0, p.Value())
}
