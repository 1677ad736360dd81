package algorithm

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownParameter is returned by UpdateParameter for an unrecognized name.
	ErrUnknownParameter = errors.New("algorithm: unknown parameter")
	// ErrNotConfigured is returned by GenerateSample before a non-zero sample rate is set.
	ErrNotConfigured = errors.New("algorithm: sample rate not configured")
	// ErrUnknownAlgorithm is returned by New for a name nobody registered.
	ErrUnknownAlgorithm = errors.New("algorithm: unknown algorithm")
)

// ErrorKind enumerates the contract failures.
type ErrorKind int

const (
	// UnknownParameter means the parameter name matched nothing.
	UnknownParameter ErrorKind = iota + 1
	// NotConfigured means generation was attempted with a zero sample rate.
	NotConfigured
)

// String returns the name of the kind.
func (k ErrorKind) String() string {
	switch k {
	case UnknownParameter:
		return "UnknownParameter"
	case NotConfigured:
		return "NotConfigured"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// Error is a contract failure raised by an algorithm.
// It matches ErrUnknownParameter or ErrNotConfigured with errors.Is.
type Error struct {
	Kind      ErrorKind
	Algorithm string
	Param     string
}

func (e *Error) Error() string {
	switch e.Kind {
	case UnknownParameter:
		return fmt.Sprintf("%s: unknown parameter %q", e.Algorithm, e.Param)
	case NotConfigured:
		return fmt.Sprintf("%s: sample rate not configured", e.Algorithm)
	default:
		return fmt.Sprintf("%s: %s", e.Algorithm, e.Kind)
	}
}

// Is matches the package sentinels by kind.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrUnknownParameter:
		return e.Kind == UnknownParameter
	case ErrNotConfigured:
		return e.Kind == NotConfigured
	}
	return false
}

// UnknownParameterError builds the failure for an unrecognized parameter name.
func UnknownParameterError(algorithm, name string) error {
	return &Error{Kind: UnknownParameter, Algorithm: algorithm, Param: name}
}

// KindOf extracts the ErrorKind from err, or 0 when err is not a contract failure.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}
