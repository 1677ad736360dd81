package oscillator

import "github.com/justyntemme/noisesynth/pkg/framework/algorithm"

func init() {
	algorithm.Register(SimplexHarmonicsName, func() algorithm.Algorithm {
		return NewSimplexHarmonics(nil)
	})
	algorithm.Register(BasicWaveformName, func() algorithm.Algorithm {
		return NewBasicWaveform()
	})
}

var (
	_ algorithm.Algorithm = (*SimplexHarmonics)(nil)
	_ algorithm.Algorithm = (*BasicWaveform)(nil)
)
