package algorithm

// Base holds the sample rate shared by every variant.
// Embed it to get SetSampleRate for free.
type Base struct {
	name       string
	sampleRate uint32
}

// NewBase creates a base for the named algorithm, unconfigured
func NewBase(name string) Base {
	return Base{name: name}
}

// Name implements Algorithm
func (b *Base) Name() string {
	return b.name
}

// SetSampleRate implements Algorithm
func (b *Base) SetSampleRate(rate uint32) {
	b.sampleRate = rate
}

// SampleRate returns the configured rate, 0 when unconfigured
func (b *Base) SampleRate() uint32 {
	return b.sampleRate
}

// Ready returns ErrNotConfigured until a non-zero rate is set
func (b *Base) Ready() error {
	if b.sampleRate == 0 {
		return &Error{Kind: NotConfigured, Algorithm: b.name}
	}
	return nil
}
