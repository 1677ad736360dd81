package oscillator

import (
	"math"

	"github.com/justyntemme/noisesynth/pkg/dsp/noise"
	"github.com/justyntemme/noisesynth/pkg/framework/algorithm"
	"github.com/justyntemme/noisesynth/pkg/framework/param"
)

// SimplexHarmonicsName identifies the simplex harmonics oscillator
const SimplexHarmonicsName = "Simplex harmonics"

// Parameter names recognized by SimplexHarmonics
const (
	ParamFrequency = "Frequency"
	ParamRadius    = "Radius"
	ParamHarmonics = "Harmonics"
	ParamSeed      = "Seed"
)

// seedStride separates the noise fields of consecutive harmonics
const seedStride = 100

// SimplexHarmonics sums decreasing-amplitude harmonics, each read from a
// coherent-noise field along a path driven by the oscillator phase.
//
// Harmonic i contributes noise(seed+100i, c*i, c*i, 0) / (i+1), where
// c = sin(2*pi*phase) * radius. Both coordinates use the same sine, so the
// path lies on the x = y diagonal, and harmonic 0 always samples the origin.
// Output is not normalized or clipped.
type SimplexHarmonics struct {
	algorithm.Base

	oracle   noise.Oracle
	phase    Phase
	rollover bool

	frequency float64
	radius    float64
	harmonics int
	seed      int
}

// NewSimplexHarmonics creates an unconfigured oscillator with the default
// voice: 220 Hz, radius 1, one harmonic, seed 0. A nil oracle selects
// noise.Default().
func NewSimplexHarmonics(oracle noise.Oracle) *SimplexHarmonics {
	if oracle == nil {
		oracle = noise.Default()
	}
	return &SimplexHarmonics{
		Base:      algorithm.NewBase(SimplexHarmonicsName),
		oracle:    oracle,
		frequency: 220.0,
		radius:    1.0,
		harmonics: 1,
		seed:      0,
	}
}

// GenerateSample implements algorithm.Algorithm
func (s *SimplexHarmonics) GenerateSample() (float32, error) {
	if err := s.Ready(); err != nil {
		return 0, err
	}

	if s.phase.Advance(s.frequency / float64(s.SampleRate())) {
		s.rollover = true
	}

	angle := s.phase.Value() * 2.0 * math.Pi
	x := math.Sin(angle) * s.radius
	y := math.Sin(angle) * s.radius

	var output float64
	for i := 0; i < s.harmonics; i++ {
		seed := int64(s.seed) + seedStride*int64(i)
		h := float64(i)
		output += s.oracle.Noise3(seed, x*h, y*h, 0) / float64(i+1)
	}

	return float32(output), nil
}

// Parameters implements algorithm.Algorithm
func (s *SimplexHarmonics) Parameters() param.List {
	return param.List{
		param.Float(ParamFrequency, 22, 880).Unit("Hz").Value(s.frequency).Build(),
		param.Float(ParamRadius, 0, 10).Value(s.radius).Build(),
		param.Float(ParamHarmonics, 1, 10).Integer().Value(float64(s.harmonics)).Build(),
		param.Float(ParamSeed, 0, 10).Integer().Value(float64(s.seed)).Build(),
	}
}

// UpdateParameter implements algorithm.Algorithm. Harmonics and Seed are
// rounded to the nearest integer; no value is clamped to its range.
func (s *SimplexHarmonics) UpdateParameter(name string, value float64) error {
	switch name {
	case ParamFrequency:
		s.frequency = value
	case ParamRadius:
		s.radius = value
	case ParamHarmonics:
		s.harmonics = int(math.Round(value))
	case ParamSeed:
		s.seed = int(math.Round(value))
	default:
		return algorithm.UnknownParameterError(s.Name(), name)
	}
	return nil
}

// DebugFrequency implements algorithm.Diagnostics
func (s *SimplexHarmonics) DebugFrequency() float64 {
	return s.frequency
}

// DebugTakeRollover implements algorithm.Diagnostics
func (s *SimplexHarmonics) DebugTakeRollover() bool {
	flag := s.rollover
	s.rollover = false
	return flag
}

// Phase returns the current phase in [0, 1)
func (s *SimplexHarmonics) Phase() float64 {
	return s.phase.Value()
}
