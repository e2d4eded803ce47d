package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for simulation operations.
var (
	// ErrInvalidParameter indicates a non-positive or non-finite physical parameter.
	ErrInvalidParameter = errors.New("dynamo: invalid parameter")

	// ErrUnsupportedProfile indicates an initial profile name with no registered initializer.
	ErrUnsupportedProfile = errors.New("dynamo: unsupported profile")

	// ErrInvalidField indicates a field containing NaN or Inf values.
	ErrInvalidField = errors.New("dynamo: invalid field (NaN or Inf detected)")

	// ErrDimensionMismatch indicates fields of different lengths passed to one operation.
	ErrDimensionMismatch = errors.New("dynamo: dimension mismatch between fields")
)

// ParameterError reports which parameter was rejected and the value supplied.
// An empty Reason means the value was not a finite positive number.
type ParameterError struct {
	Name   string
	Value  float64
	Reason string
}

func (e *ParameterError) Error() string {
	reason := e.Reason
	if reason == "" {
		reason = "must be positive"
	}
	return fmt.Sprintf("%s: %s %s, got %g", ErrInvalidParameter, e.Name, reason, e.Value)
}

func (e *ParameterError) Unwrap() error {
	return ErrInvalidParameter
}

// ProfileError carries the unrecognised profile name.
type ProfileError struct {
	Name string
}

func (e *ProfileError) Error() string {
	return fmt.Sprintf("%s: unknown profile type (%q)", ErrUnsupportedProfile, e.Name)
}

func (e *ProfileError) Unwrap() error {
	return ErrUnsupportedProfile
}

// SimError wraps a failure detected while stepping.
type SimError struct {
	Step    int
	Time    float64
	Wrapped error
}

func (e *SimError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %v", e.Step, e.Time, e.Wrapped)
}

func (e *SimError) Unwrap() error {
	return e.Wrapped
}
