// Package noise provides the coherent-noise oracle the oscillators sample.
//
// An Oracle is a pure function of an integer seed and continuous
// coordinates: the same inputs always give the same value, nominally in
// [-1, 1].
package noise

import (
	"sync"

	"github.com/ojrac/opensimplex-go"
)

// Oracle evaluates seeded coherent noise.
type Oracle interface {
	Noise2(seed int64, x, y float64) float64
	Noise3(seed int64, x, y, z float64) float64
}

// Func adapts a plain 3D function to Oracle. Noise2 evaluates the z = 0 plane.
type Func func(seed int64, x, y, z float64) float64

// Noise2 implements Oracle.
func (f Func) Noise2(seed int64, x, y float64) float64 {
	return f(seed, x, y, 0)
}

// Noise3 implements Oracle.
func (f Func) Noise3(seed int64, x, y, z float64) float64 {
	return f(seed, x, y, z)
}

// OpenSimplex is an Oracle backed by OpenSimplex noise. Generators are
// built lazily per seed and kept for reuse.
type OpenSimplex struct {
	mu   sync.Mutex
	gens map[int64]opensimplex.Noise
}

// NewOpenSimplex creates an empty OpenSimplex oracle.
func NewOpenSimplex() *OpenSimplex {
	return &OpenSimplex{gens: make(map[int64]opensimplex.Noise)}
}

func (o *OpenSimplex) generator(seed int64) opensimplex.Noise {
	o.mu.Lock()
	defer o.mu.Unlock()

	g, ok := o.gens[seed]
	if !ok {
		g = opensimplex.New(seed)
		o.gens[seed] = g
	}
	return g
}

// Noise2 implements Oracle.
func (o *OpenSimplex) Noise2(seed int64, x, y float64) float64 {
	return o.generator(seed).Eval2(x, y)
}

// Noise3 implements Oracle.
func (o *OpenSimplex) Noise3(seed int64, x, y, z float64) float64 {
	return o.generator(seed).Eval3(x, y, z)
}

// Seeds returns how many seeds have a cached generator.
func (o *OpenSimplex) Seeds() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.gens)
}

var (
	defaultOracle *OpenSimplex
	defaultOnce   sync.Once
)

// Default returns the process-wide OpenSimplex oracle.
func Default() *OpenSimplex {
	defaultOnce.Do(func() {
		defaultOracle = NewOpenSimplex()
	})
	return defaultOracle
}
