package algorithm

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/justyntemme/noisesynth/pkg/framework/param"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// constant is a minimal variant used to exercise the contract helpers.
type constant struct {
	Base
	level float64
}

func newConstant() Algorithm {
	return &constant{Base: NewBase("Constant"), level: 0.5}
}

func (c *constant) GenerateSample() (float32, error) {
	if err := c.Ready(); err != nil {
		return 0, err
	}
	return float32(c.level), nil
}

func (c *constant) Parameters() param.List {
	return param.List{param.Float("Level", 0, 1).Value(c.level).Build()}
}

func (c *constant) UpdateParameter(name string, value float64) error {
	if name != "Level" {
		return UnknownParameterError(c.Name(), name)
	}
	c.level = value
	return nil
}

func (c *constant) DebugFrequency() float64 { return 0 }
func (c *constant) DebugTakeRollover() bool { return false }

func TestBaseReady(t *testing.T) {
	c := newConstant()

	_, err := c.GenerateSample()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotConfigured)
	assert.NotErrorIs(t, err, ErrUnknownParameter)
	assert.Equal(t, NotConfigured, KindOf(err))
	assert.Equal(t, "Constant: sample rate not configured", err.Error())

	c.SetSampleRate(48000)
	s, err := c.GenerateSample()
	require.NoError(t, err)
	assert.Equal(t, float32(0.5), s)

	c.SetSampleRate(0)
	_, err = c.GenerateSample()
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestUnknownParameterError(t *testing.T) {
	c := newConstant()

	err := c.UpdateParameter("Bogus", 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownParameter)
	assert.Equal(t, UnknownParameter, KindOf(err))
	assert.Contains(t, err.Error(), `"Bogus"`)

	wrapped := fmt.Errorf("preset: %w", err)
	assert.ErrorIs(t, wrapped, ErrUnknownParameter)

	var e *Error
	require.True(t, errors.As(wrapped, &e))
	assert.Equal(t, "Bogus", e.Param)
	assert.Equal(t, "Constant", e.Algorithm)
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, ErrorKind(0), KindOf(nil))
	assert.Equal(t, ErrorKind(0), KindOf(errors.New("other")))
	assert.Equal(t, "UnknownParameter", UnknownParameter.String())
	assert.Equal(t, "NotConfigured", NotConfigured.String())
	assert.Equal(t, "ErrorKind(9)", ErrorKind(9).String())
}

var registerOnce sync.Once

func TestRegistry(t *testing.T) {
	registerOnce.Do(func() { Register("Constant (test)", newConstant) })

	t.Run("New", func(t *testing.T) {
		a, err := New("Constant (test)")
		require.NoError(t, err)
		assert.Equal(t, "Constant", a.Name())
	})

	t.Run("FreshInstances", func(t *testing.T) {
		a, _ := New("Constant (test)")
		b, _ := New("Constant (test)")
		require.NoError(t, a.UpdateParameter("Level", 0.9))
		assert.Equal(t, 0.5, b.Parameters()[0].Value)
	})

	t.Run("Unknown", func(t *testing.T) {
		_, err := New("Nope")
		assert.ErrorIs(t, err, ErrUnknownAlgorithm)
	})

	t.Run("Names", func(t *testing.T) {
		assert.Contains(t, Names(), "Constant (test)")
	})

	t.Run("Duplicate", func(t *testing.T) {
		assert.Panics(t, func() { Register("Constant (test)", newConstant) })
	})

	t.Run("NilConstructor", func(t *testing.T) {
		assert.Panics(t, func() { Register("Nil (test)", nil) })
	})
}
