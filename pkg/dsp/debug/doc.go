// Package debug provides debug-build assertions for DSP code.
//
// The checks are only active when building with the 'debug' build tag:
//
//	go test -tags debug ./...
//
// In a render loop:
//
//	func render(out []float32) {
//	    // ... fill out ...
//	    debug.AssertFinite(out, "oscillator")
//	}
//
// Without the tag every function is a no-op with zero overhead, so the
// assertions never stand in for real error handling.
package debug
