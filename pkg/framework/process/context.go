// Package process drives a sound algorithm at sample rate on behalf of a host.
package process

import (
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"sync"

	dspdebug "github.com/justyntemme/noisesynth/pkg/dsp/debug"
	"github.com/justyntemme/noisesynth/pkg/dsp/gain"
	"github.com/justyntemme/noisesynth/pkg/framework/algorithm"
	"github.com/justyntemme/noisesynth/pkg/framework/debug"
	"github.com/justyntemme/noisesynth/pkg/framework/param"
)

// DefaultBlockSize is used when NewContext gets a non-positive block size
const DefaultBlockSize = 512

// ProfileSection names the profiler section timing each block
const ProfileSection = "render"

// Context owns one algorithm instance and serializes every call into it.
// It is the single-owner handle a host shares between its audio callback
// and its control code.
type Context struct {
	mu sync.Mutex

	alg        algorithm.Algorithm
	sampleRate uint32
	blockSize  int

	// Pre-allocated buffer for Read
	readBuffer []float32

	logger   *debug.Logger
	profiler *debug.Profiler

	// Output level, nil for unity
	level *gain.Ramp

	samples uint64
	cycles  uint64
	last    debug.Analysis
	total   debug.Analysis
}

// Option customizes a Context
type Option func(*Context)

// WithLogger sets the logger used for parameter changes and failures
func WithLogger(l *debug.Logger) Option {
	return func(c *Context) { c.logger = l }
}

// WithProfiler times every block under ProfileSection
func WithProfiler(p *debug.Profiler) Option {
	return func(c *Context) { c.profiler = p }
}

// WithGain scales output by db, ramping up from silence over fadeIn samples
func WithGain(db float64, fadeIn int) Option {
	return func(c *Context) {
		target := gain.DbToLinear(db)
		if fadeIn <= 0 {
			c.level = gain.NewRamp(target)
			return
		}
		c.level = gain.NewRamp(0)
		c.level.SetTarget(target, fadeIn)
	}
}

// NewContext configures alg for sampleRate and wraps it.
// A zero rate is passed through; rendering then fails with
// algorithm.ErrNotConfigured.
func NewContext(alg algorithm.Algorithm, sampleRate uint32, blockSize int, opts ...Option) *Context {
	if blockSize <= 0 {
		blockSize = DefaultBlockSize
	}
	c := &Context{
		alg:        alg,
		sampleRate: sampleRate,
		blockSize:  blockSize,
		readBuffer: make([]float32, blockSize),
		logger:     debug.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	alg.SetSampleRate(sampleRate)
	return c
}

// Algorithm returns the wrapped algorithm's name
func (c *Context) Algorithm() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.alg.Name()
}

// SampleRate returns the configured sample rate
func (c *Context) SampleRate() uint32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sampleRate
}

// BlockSize returns the number of samples rendered between cancellation checks
func (c *Context) BlockSize() int {
	return c.blockSize
}

// SetSampleRate changes the rate without resetting phase
func (c *Context) SetSampleRate(rate uint32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sampleRate = rate
	c.alg.SetSampleRate(rate)
	c.logger.Debug("%s: sample rate %d Hz", c.alg.Name(), rate)
}

// Parameters returns the algorithm's parameter snapshot
func (c *Context) Parameters() param.List {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.alg.Parameters()
}

// SetParameter forwards a parameter write between blocks
func (c *Context) SetParameter(name string, value float64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.alg.UpdateParameter(name, value); err != nil {
		c.logger.Error("%v", err)
		return fmt.Errorf("process: set %s: %w", name, err)
	}
	c.logger.Debug("%s: %s = %g", c.alg.Name(), name, value)
	return nil
}

// Process fills out with one GenerateSample call per sample.
//
// ctx is checked before each block; on cancellation Process returns the
// samples written so far and ctx.Err(). The rollover flag is polled after
// every sample, so each wraparound is counted exactly once.
func (c *Context) Process(ctx context.Context, out []float32) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.process(ctx, out)
}

func (c *Context) process(ctx context.Context, out []float32) (int, error) {
	written := 0
	for written < len(out) {
		if err := ctx.Err(); err != nil {
			return written, err
		}

		end := written + c.blockSize
		if end > len(out) {
			end = len(out)
		}
		block := out[written:end]

		n, err := c.renderBlock(block)
		written += n
		if err != nil {
			return written, err
		}
	}
	return written, nil
}

func (c *Context) renderBlock(block []float32) (int, error) {
	if c.profiler != nil {
		defer c.profiler.Start(ProfileSection)()
	}

	for i := range block {
		s, err := c.alg.GenerateSample()
		if err != nil {
			c.logger.Error("%s: generation failed after %d samples: %v", c.alg.Name(), c.samples, err)
			c.applyLevel(block[:i])
			c.record(block[:i])
			return i, fmt.Errorf("process: sample %d: %w", c.samples, err)
		}
		block[i] = s
		c.samples++
		if c.alg.DebugTakeRollover() {
			c.cycles++
		}
	}

	dspdebug.AssertFinite(block, c.alg.Name())
	c.applyLevel(block)
	c.record(block)
	return len(block), nil
}

func (c *Context) applyLevel(block []float32) {
	if c.level != nil {
		c.level.Process(block)
	}
}

// FadeOut ramps the output to silence over the given number of samples.
// Samples rendered afterwards stay silent.
func (c *Context) FadeOut(samples int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.level == nil {
		c.level = gain.NewRamp(1)
	}
	c.level.SetTarget(0, samples)
	c.logger.Debug("%s: fading out over %d samples", c.alg.Name(), samples)
}

// Level returns the current output gain
func (c *Context) Level() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.level == nil {
		return 1
	}
	return c.level.Value()
}

func (c *Context) record(block []float32) {
	if len(block) == 0 {
		return
	}
	c.last = debug.Analyze(block)
	c.total = c.total.Merge(c.last)
}

// Render allocates and fills n samples
func (c *Context) Render(ctx context.Context, n int) ([]float32, error) {
	out := make([]float32, n)
	written, err := c.Process(ctx, out)
	return out[:written], err
}

// Read implements io.Reader, producing mono float32 little-endian PCM.
// It is what audio backends such as oto pull from.
func (c *Context) Read(p []byte) (int, error) {
	numSamples := len(p) / 4
	if numSamples == 0 {
		return 0, io.ErrShortBuffer
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	// This should rarely happen after the first callback
	if len(c.readBuffer) < numSamples {
		c.readBuffer = make([]float32, numSamples)
	}
	samples := c.readBuffer[:numSamples]

	n, err := c.process(context.Background(), samples)
	for i, s := range samples[:n] {
		binary.LittleEndian.PutUint32(p[4*i:], math.Float32bits(s))
	}
	return 4 * n, err
}

// Stats is a snapshot of what a Context has rendered
type Stats struct {
	Samples uint64
	Cycles  uint64         // phase wraparounds observed
	Last    debug.Analysis // most recent block
	Total   debug.Analysis // everything rendered
}

// Stats returns render counters and buffer analysis
func (c *Context) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Stats{
		Samples: c.samples,
		Cycles:  c.cycles,
		Last:    c.last,
		Total:   c.total,
	}
}

// Peek returns the current frequency and consumes the rollover flag.
// Render loops should prefer Stats; Peek exists for debug overlays.
func (c *Context) Peek() (frequency float64, rolled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.alg.DebugFrequency(), c.alg.DebugTakeRollover()
}
