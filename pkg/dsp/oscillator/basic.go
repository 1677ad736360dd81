package oscillator

import (
	"fmt"
	"math"

	"github.com/justyntemme/noisesynth/pkg/framework/algorithm"
	"github.com/justyntemme/noisesynth/pkg/framework/param"
)

// BasicWaveformName identifies the classic waveform oscillator
const BasicWaveformName = "Basic waveform"

// ParamWaveform selects the BasicWaveform shape
const ParamWaveform = "Waveform"

// Waveform is a classic oscillator shape
type Waveform int

const (
	Sine Waveform = iota
	Saw
	Square
	Triangle
)

// String returns the shape name
func (w Waveform) String() string {
	switch w {
	case Sine:
		return "sine"
	case Saw:
		return "saw"
	case Square:
		return "square"
	case Triangle:
		return "triangle"
	default:
		return fmt.Sprintf("Waveform(%d)", int(w))
	}
}

// clamp maps any stored selector onto a real shape
func (w Waveform) clamp() Waveform {
	if w < Sine {
		return Sine
	}
	if w > Triangle {
		return Triangle
	}
	return w
}

// Sample evaluates the shape at phase in [0, 1)
func (w Waveform) Sample(phase float64) float64 {
	switch w.clamp() {
	case Saw:
		return 2.0*phase - 1.0
	case Square:
		if phase < 0.5 {
			return 1.0
		}
		return -1.0
	case Triangle:
		if phase < 0.5 {
			return 4.0*phase - 1.0
		}
		return 3.0 - 4.0*phase
	default:
		return math.Sin(2.0 * math.Pi * phase)
	}
}

// BasicWaveform generates sine, saw, square or triangle waves
type BasicWaveform struct {
	algorithm.Base

	phase    Phase
	rollover bool

	frequency float64
	waveform  Waveform
}

// NewBasicWaveform creates an unconfigured 220 Hz sine oscillator
func NewBasicWaveform() *BasicWaveform {
	return &BasicWaveform{
		Base:      algorithm.NewBase(BasicWaveformName),
		frequency: 220.0,
		waveform:  Sine,
	}
}

// GenerateSample implements algorithm.Algorithm
func (b *BasicWaveform) GenerateSample() (float32, error) {
	if err := b.Ready(); err != nil {
		return 0, err
	}
	if b.phase.Advance(b.frequency / float64(b.SampleRate())) {
		b.rollover = true
	}
	return float32(b.waveform.Sample(b.phase.Value())), nil
}

// Parameters implements algorithm.Algorithm
func (b *BasicWaveform) Parameters() param.List {
	return param.List{
		param.Float(ParamFrequency, 22, 880).Unit("Hz").Value(b.frequency).Build(),
		param.Float(ParamWaveform, 0, 3).Integer().Value(float64(b.waveform)).Build(),
	}
}

// UpdateParameter implements algorithm.Algorithm
func (b *BasicWaveform) UpdateParameter(name string, value float64) error {
	switch name {
	case ParamFrequency:
		b.frequency = value
	case ParamWaveform:
		b.waveform = Waveform(math.Round(value))
	default:
		return algorithm.UnknownParameterError(b.Name(), name)
	}
	return nil
}

// DebugFrequency implements algorithm.Diagnostics
func (b *BasicWaveform) DebugFrequency() float64 {
	return b.frequency
}

// DebugTakeRollover implements algorithm.Diagnostics
func (b *BasicWaveform) DebugTakeRollover() bool {
	flag := b.rollover
	b.rollover = false
	return flag
}

// Phase returns the current phase in [0, 1)
func (b *BasicWaveform) Phase() float64 {
	return b.phase.Value()
}
