package process

import (
	"bytes"
	"context"
	"encoding/binary"
	"io"
	"math"
	"testing"

	"github.com/justyntemme/noisesynth/pkg/dsp/noise"
	"github.com/justyntemme/noisesynth/pkg/dsp/oscillator"
	"github.com/justyntemme/noisesynth/pkg/framework/algorithm"
	"github.com/justyntemme/noisesynth/pkg/framework/debug"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger(buf *bytes.Buffer) *debug.Logger {
	l := debug.New(buf, "test", debug.FlagLevel)
	l.SetLevel(debug.LogLevelDebug)
	return l
}

// newSquare returns a context around an 8-samples-per-cycle square wave.
func newSquare(t *testing.T, blockSize int, opts ...Option) *Context {
	t.Helper()
	osc := oscillator.NewBasicWaveform()
	require.NoError(t, osc.UpdateParameter(oscillator.ParamWaveform, float64(oscillator.Square)))
	require.NoError(t, osc.UpdateParameter(oscillator.ParamFrequency, 1000))
	return NewContext(osc, 8000, blockSize, opts...)
}

func TestProcessCountsCycles(t *testing.T) {
	for _, blockSize := range []int{1, 5, 64, 0} {
		var logs bytes.Buffer
		c := newSquare(t, blockSize, WithLogger(quietLogger(&logs)))

		out := make([]float32, 64)
		n, err := c.Process(context.Background(), out)
		require.NoError(t, err)
		assert.Equal(t, 64, n)

		stats := c.Stats()
		assert.Equal(t, uint64(64), stats.Samples)
		assert.Equal(t, uint64(8), stats.Cycles, "block size %d", blockSize)
		assert.Equal(t, 64, stats.Total.Samples)
		assert.Equal(t, float32(1), stats.Total.Peak)
	}
}

func TestProcessDefaultBlockSize(t *testing.T) {
	c := newSquare(t, -1)
	assert.Equal(t, DefaultBlockSize, c.BlockSize())
	assert.Equal(t, uint32(8000), c.SampleRate())
	assert.Equal(t, oscillator.BasicWaveformName, c.Algorithm())
}

func TestProcessCancelled(t *testing.T) {
	c := newSquare(t, 16)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	n, err := c.Process(ctx, make([]float32, 64))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, n)
	assert.Equal(t, uint64(0), c.Stats().Samples)
}

func TestProcessNotConfigured(t *testing.T) {
	var logs bytes.Buffer
	c := NewContext(oscillator.NewSimplexHarmonics(nil), 0, 32, WithLogger(quietLogger(&logs)))

	out, err := c.Render(context.Background(), 10)
	require.Error(t, err)
	assert.ErrorIs(t, err, algorithm.ErrNotConfigured)
	assert.Empty(t, out)
	assert.Contains(t, logs.String(), "[ERROR]")

	c.SetSampleRate(44100)
	out, err = c.Render(context.Background(), 10)
	require.NoError(t, err)
	assert.Len(t, out, 10)
}

func TestSetParameter(t *testing.T) {
	var logs bytes.Buffer
	c := NewContext(oscillator.NewSimplexHarmonics(nil), 44100, 64, WithLogger(quietLogger(&logs)))

	require.NoError(t, c.SetParameter("Harmonics", 3.6))
	d, ok := c.Parameters().Lookup("Harmonics")
	require.True(t, ok)
	assert.Equal(t, 4.0, d.Value)
	assert.Contains(t, logs.String(), "Harmonics = 3.6")

	err := c.SetParameter("Bogus", 1)
	assert.ErrorIs(t, err, algorithm.ErrUnknownParameter)
	assert.Contains(t, logs.String(), `unknown parameter "Bogus"`)
}

func TestRenderMatchesDirectGeneration(t *testing.T) {
	oracle := noise.NewOpenSimplex()
	configure := func(s *oscillator.SimplexHarmonics) {
		require.NoError(t, s.UpdateParameter("Harmonics", 4))
		require.NoError(t, s.UpdateParameter("Radius", 1.5))
	}

	direct := oscillator.NewSimplexHarmonics(oracle)
	configure(direct)
	direct.SetSampleRate(22050)
	want := make([]float32, 300)
	for i := range want {
		v, err := direct.GenerateSample()
		require.NoError(t, err)
		want[i] = v
	}

	wrapped := oscillator.NewSimplexHarmonics(oracle)
	configure(wrapped)
	c := NewContext(wrapped, 22050, 7)
	got, err := c.Render(context.Background(), 300)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestReadProducesFloat32LE(t *testing.T) {
	reference, err := newSquare(t, 32).Render(context.Background(), 100)
	require.NoError(t, err)

	c := newSquare(t, 32)
	raw, err := io.ReadAll(io.LimitReader(c, 400))
	require.NoError(t, err)
	require.Len(t, raw, 400)

	for i := range reference {
		bits := binary.LittleEndian.Uint32(raw[4*i:])
		assert.Equal(t, reference[i], math.Float32frombits(bits), "sample %d", i)
	}
}

func TestReadShortBuffer(t *testing.T) {
	c := newSquare(t, 32)
	n, err := c.Read(make([]byte, 3))
	assert.Equal(t, 0, n)
	assert.ErrorIs(t, err, io.ErrShortBuffer)
}

func TestReadGrowsBuffer(t *testing.T) {
	c := newSquare(t, 4)
	n, err := c.Read(make([]byte, 4*100))
	require.NoError(t, err)
	assert.Equal(t, 400, n)
	assert.Equal(t, uint64(100), c.Stats().Samples)
}

func TestProfilerRecordsBlocks(t *testing.T) {
	p := debug.NewProfiler()
	c := newSquare(t, 10, WithProfiler(p))

	_, err := c.Render(context.Background(), 95)
	require.NoError(t, err)

	m, ok := p.Get(ProfileSection)
	require.True(t, ok)
	assert.Equal(t, uint64(10), m.Count)
}

func TestPeek(t *testing.T) {
	c := newSquare(t, 8)
	freq, rolled := c.Peek()
	assert.Equal(t, 1000.0, freq)
	assert.False(t, rolled)
}

func TestGainFades(t *testing.T) {
	reference, err := newSquare(t, 16).Render(context.Background(), 64)
	require.NoError(t, err)

	c := newSquare(t, 16, WithGain(-6.0206, 32))
	assert.Equal(t, 0.0, c.Level())

	head, err := c.Render(context.Background(), 64)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, c.Level(), 1e-4)
	assert.InDelta(t, float64(reference[0])/64, float64(head[0]), 1e-6)
	assert.InDelta(t, float64(reference[63])*0.5, float64(head[63]), 1e-4)

	c.FadeOut(8)
	tail, err := c.Render(context.Background(), 16)
	require.NoError(t, err)
	assert.Equal(t, 0.0, c.Level())
	for _, s := range tail[8:] {
		assert.Zero(t, s)
	}
	assert.Equal(t, uint64(80), c.Stats().Samples, "fading must not stop generation")
}

func TestGainWithoutFade(t *testing.T) {
	c := newSquare(t, 16, WithGain(0, 0))
	out, err := c.Render(context.Background(), 8)
	require.NoError(t, err)
	assert.Equal(t, float32(1), out[0])
	assert.Equal(t, 1.0, c.Level())
}
