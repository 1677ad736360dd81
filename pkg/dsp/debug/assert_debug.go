//go:build debug

package debug

import (
	"fmt"
	"math"
)

// Enabled reports whether the assertions are compiled in.
const Enabled = true

// AssertFinite panics if buffer holds a NaN or infinite sample.
func AssertFinite(buffer []float32, name string) {
	for i, s := range buffer {
		f := float64(s)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			panic(fmt.Sprintf("%s: non-finite sample %v at index %d", name, s, i))
		}
	}
}
