// Package dynamo provides core primitives for one-dimensional field simulations.
//
// The package defines the shared types used by the diffusion solver:
//
//   - [Grid]: immutable, evenly spaced spatial coordinates on [0, Lx)
//   - [Field]: concentration values aligned index-for-index with a Grid
//   - [Stepper]: advances a field by one time step
//   - [Metric] and [Observer]: per-step instrumentation hooks
//
// # Errors
//
// Configuration mistakes are reported with [ErrInvalidParameter] and
// [ErrUnsupportedProfile]. Use errors.Is to classify and errors.As with
// [*ParameterError] or [*ProfileError] to read the offending value.
//
// # Thread Safety
//
// Fields are plain slices and carry no locking. A simulation has a single
// writer; [ParallelFor] splits one step across workers that each write a
// disjoint index range.
package dynamo
