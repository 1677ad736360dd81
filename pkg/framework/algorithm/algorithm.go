// Package algorithm defines the contract every oscillator variant implements
// and a factory so hosts can pick variants by name.
package algorithm

import "github.com/justyntemme/noisesynth/pkg/framework/param"

// Algorithm is the interface a host drives at sample rate.
//
// Implementations are single-threaded: one caller configures the sample
// rate, then issues a strict sequence of GenerateSample, UpdateParameter
// and diagnostic calls. Concurrent use needs external locking.
type Algorithm interface {
	// Name returns a stable, human-readable identifier.
	Name() string

	// SetSampleRate stores the output rate in Hz. Calling it again
	// mid-stream takes effect on the next sample without resetting phase.
	SetSampleRate(rate uint32)

	// GenerateSample advances state by one sample period and returns the
	// amplitude. It fails with ErrNotConfigured while the rate is 0.
	GenerateSample() (float32, error)

	// Parameters returns a fresh snapshot of every editable quantity in
	// declared order.
	Parameters() param.List

	// UpdateParameter writes value into the named parameter. Names are
	// matched exactly; anything else fails with ErrUnknownParameter.
	UpdateParameter(name string, value float64) error

	Diagnostics
}

// Diagnostics are debug hooks for test harnesses and overlays.
// They are not meant for audio-path logic.
type Diagnostics interface {
	// DebugFrequency returns the current frequency without side effects.
	DebugFrequency() float64

	// DebugTakeRollover returns whether the phase wrapped since the last
	// call, and clears the flag.
	DebugTakeRollover() bool
}
