package debug

import (
	"fmt"
	"math"
)

// Analysis summarizes one block of rendered samples.
type Analysis struct {
	Samples       int
	Peak          float32
	RMS           float32
	DC            float32
	NonFinite     int // NaN or Inf samples, excluded from the other figures
	OverFullScale int // samples with |s| > 1; oscillator output is not clipped
	ZeroCrossings int
	Silent        bool
}

// silenceThreshold is the RMS below which a block counts as silent
const silenceThreshold = 1e-4

// Analyze computes peak, RMS and DC offset of a buffer.
func Analyze(buffer []float32) Analysis {
	result := Analysis{Samples: len(buffer)}
	if len(buffer) == 0 {
		result.Silent = true
		return result
	}

	var sum, sumSquares float64
	var finite int
	var last float32
	haveLast := false

	for _, sample := range buffer {
		f := float64(sample)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			result.NonFinite++
			continue
		}
		finite++

		abs := float32(math.Abs(f))
		if abs > result.Peak {
			result.Peak = abs
		}
		if abs > 1 {
			result.OverFullScale++
		}

		sum += f
		sumSquares += f * f

		if haveLast && ((last < 0 && sample >= 0) || (last >= 0 && sample < 0)) {
			result.ZeroCrossings++
		}
		last, haveLast = sample, true
	}

	if finite > 0 {
		result.RMS = float32(math.Sqrt(sumSquares / float64(finite)))
		result.DC = float32(sum / float64(finite))
	}
	result.Silent = result.RMS < silenceThreshold
	return result
}

// Merge folds another block's analysis into a running total.
// Peak, counts and crossings combine exactly; RMS and DC are sample-weighted.
func (a Analysis) Merge(b Analysis) Analysis {
	if a.Samples == 0 {
		return b
	}
	if b.Samples == 0 {
		return a
	}

	na := float64(a.Samples - a.NonFinite)
	nb := float64(b.Samples - b.NonFinite)

	out := Analysis{
		Samples:       a.Samples + b.Samples,
		Peak:          a.Peak,
		NonFinite:     a.NonFinite + b.NonFinite,
		OverFullScale: a.OverFullScale + b.OverFullScale,
		ZeroCrossings: a.ZeroCrossings + b.ZeroCrossings,
	}
	if b.Peak > out.Peak {
		out.Peak = b.Peak
	}
	if n := na + nb; n > 0 {
		ms := (float64(a.RMS)*float64(a.RMS)*na + float64(b.RMS)*float64(b.RMS)*nb) / n
		out.RMS = float32(math.Sqrt(ms))
		out.DC = float32((float64(a.DC)*na + float64(b.DC)*nb) / n)
	}
	out.Silent = out.RMS < silenceThreshold
	return out
}

// Issues lists problems a host should warn about.
func (a Analysis) Issues(name string) []string {
	var issues []string
	if a.NonFinite > 0 {
		issues = append(issues, fmt.Sprintf("%s: %d non-finite samples", name, a.NonFinite))
	}
	if a.OverFullScale > 0 {
		issues = append(issues, fmt.Sprintf("%s: %d samples exceed full scale (peak %.3f)", name, a.OverFullScale, a.Peak))
	}
	if math.Abs(float64(a.DC)) > 0.01 {
		issues = append(issues, fmt.Sprintf("%s: DC offset %.3f", name, a.DC))
	}
	return issues
}

// LogBufferStats logs an analysis at info level and its issues as warnings.
func LogBufferStats(l *Logger, a Analysis, name string) {
	l.Info("%s: %d samples, peak %.3f, rms %.3f, dc %+.4f, %d zero crossings",
		name, a.Samples, a.Peak, a.RMS, a.DC, a.ZeroCrossings)
	if a.Silent {
		l.Info("%s: silent", name)
	}
	for _, issue := range a.Issues(name) {
		l.Warn("%s", issue)
	}
}
