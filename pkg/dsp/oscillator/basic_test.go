package oscillator

import (
	"math"
	"testing"

	"github.com/justyntemme/noisesynth/pkg/framework/algorithm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWaveformSample(t *testing.T) {
	tests := []struct {
		wave  Waveform
		phase float64
		want  float64
	}{
		{Sine, 0.25, 1},
		{Sine, 0.75, -1},
		{Saw, 0, -1},
		{Saw, 0.75, 0.5},
		{Square, 0.1, 1},
		{Square, 0.6, -1},
		{Triangle, 0, -1},
		{Triangle, 0.5, 1},
		{Triangle, 0.75, 0},
		{Waveform(-4), 0.25, 1}, // clamps to sine
		{Waveform(12), 0.5, 1},  // clamps to triangle
	}

	for _, tt := range tests {
		t.Run(tt.wave.String(), func(t *testing.T) {
			assert.InDelta(t, tt.want, tt.wave.Sample(tt.phase), 1e-12)
		})
	}
}

func TestBasicWaveformContract(t *testing.T) {
	b := NewBasicWaveform()
	assert.Equal(t, "Basic waveform", b.Name())

	_, err := b.GenerateSample()
	assert.ErrorIs(t, err, algorithm.ErrNotConfigured)

	assert.Equal(t, []string{"Frequency", "Waveform"}, b.Parameters().Names())

	require.NoError(t, b.UpdateParameter("Waveform", 1.6))
	assert.Equal(t, 2.0, b.Parameters()[1].Value)

	require.NoError(t, b.UpdateParameter("Waveform", 7))
	assert.Equal(t, 7.0, b.Parameters()[1].Value, "stored value is not clamped")

	assert.ErrorIs(t, b.UpdateParameter("Radius", 1), algorithm.ErrUnknownParameter)
}

func TestBasicWaveformSine(t *testing.T) {
	b := NewBasicWaveform()
	b.SetSampleRate(8)
	require.NoError(t, b.UpdateParameter("Frequency", 1))

	wraps := 0
	for i := 1; i <= 16; i++ {
		v, err := b.GenerateSample()
		require.NoError(t, err)
		want := math.Sin(2 * math.Pi * math.Mod(float64(i)/8, 1))
		assert.InDelta(t, want, float64(v), 1e-6, "sample %d", i)
		if b.DebugTakeRollover() {
			wraps++
		}
	}
	assert.Equal(t, 2, wraps)
	assert.Equal(t, 1.0, b.DebugFrequency())
}
