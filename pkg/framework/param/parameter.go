// Package param describes the editable quantities a sound algorithm exposes to its host.
package param

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidRange is returned when a range constraint has Min > Max.
var ErrInvalidRange = errors.New("param: range minimum exceeds maximum")

// Kind identifies the variant of a Constraint.
type Kind int

const (
	// KindFloat is a continuous floating-point range.
	KindFloat Kind = iota
	// KindInt is reserved for an integer range constraint.
	KindInt
	// KindChoice is reserved for an enumerated choice constraint.
	KindChoice
)

// String returns the name of the kind.
func (k Kind) String() string {
	switch k {
	case KindFloat:
		return "float"
	case KindInt:
		return "int"
	case KindChoice:
		return "choice"
	default:
		return "unknown"
	}
}

// Constraint is the typed range attached to a descriptor.
// Only FloatRange implements it today.
type Constraint interface {
	Kind() Kind
	Contains(value float64) bool
	Validate() error
	isConstraint()
}

// FloatRange is an advisory [Min, Max] range for a float-valued parameter.
// Hosts use it for presentation; values outside it are still accepted.
type FloatRange struct {
	Min float64
	Max float64
}

// Kind implements Constraint.
func (r FloatRange) Kind() Kind { return KindFloat }

func (FloatRange) isConstraint() {}

// Contains reports whether value lies within the range, inclusive.
func (r FloatRange) Contains(value float64) bool {
	return value >= r.Min && value <= r.Max
}

// Validate checks the Min <= Max invariant.
func (r FloatRange) Validate() error {
	if math.IsNaN(r.Min) || math.IsNaN(r.Max) || r.Min > r.Max {
		return fmt.Errorf("%w: [%g, %g]", ErrInvalidRange, r.Min, r.Max)
	}
	return nil
}

// Normalize converts a plain value to 0-1 for a host slider
func (r FloatRange) Normalize(plain float64) float64 {
	if r.Max <= r.Min {
		return 0
	}
	normalized := (plain - r.Min) / (r.Max - r.Min)
	if normalized < 0 {
		return 0
	}
	if normalized > 1 {
		return 1
	}
	return normalized
}

// Denormalize converts a 0-1 slider position back to a plain value
func (r FloatRange) Denormalize(normalized float64) float64 {
	return r.Min + normalized*(r.Max-r.Min)
}

// Descriptor is a snapshot of one editable quantity.
// Name is the stable identity used with UpdateParameter.
type Descriptor struct {
	Name       string
	Value      float64
	Unit       string
	Integer    bool // integer-backed; writes are rounded
	Constraint Constraint
}

// Range returns the float range of the descriptor, if it has one.
func (d Descriptor) Range() (FloatRange, bool) {
	r, ok := d.Constraint.(FloatRange)
	return r, ok
}

// InRange reports whether the current value satisfies the advisory constraint.
// A descriptor without a constraint is always in range.
func (d Descriptor) InRange() bool {
	if d.Constraint == nil {
		return true
	}
	return d.Constraint.Contains(d.Value)
}

// Validate checks the descriptor's constraint.
func (d Descriptor) Validate() error {
	if d.Name == "" {
		return errors.New("param: descriptor has no name")
	}
	if d.Constraint == nil {
		return nil
	}
	if err := d.Constraint.Validate(); err != nil {
		return fmt.Errorf("%s: %w", d.Name, err)
	}
	return nil
}

// Format returns the current value as a host would display it.
func (d Descriptor) Format() string {
	return FormatValue(d.Value, d.Unit, d.Integer)
}
