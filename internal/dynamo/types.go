package dynamo

import (
	"math"
)

// Field is a concentration profile, one value per grid point.
type Field []float64

func (f Field) Clone() Field {
	c := make(Field, len(f))
	copy(c, f)
	return c
}

func (f Field) IsValid() bool {
	for _, v := range f {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Bounds returns the minimum and maximum values. An empty field returns (0, 0).
func (f Field) Bounds() (lo, hi float64) {
	if len(f) == 0 {
		return 0, 0
	}
	lo, hi = f[0], f[0]
	for _, v := range f[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return lo, hi
}

// Integral approximates the area under the field with the trapezoid rule.
func (f Field) Integral(dx float64) float64 {
	if len(f) < 2 {
		return 0
	}
	sum := 0.5 * (f[0] + f[len(f)-1])
	for _, v := range f[1 : len(f)-1] {
		sum += v
	}
	return sum * dx
}

// MaxCurvature returns the largest |C[i-1] - 2C[i] + C[i+1]| over interior points.
func (f Field) MaxCurvature() float64 {
	m := 0.0
	for i := 1; i < len(f)-1; i++ {
		m = math.Max(m, math.Abs(f[i-1]-2*f[i]+f[i+1]))
	}
	return m
}

// Grid holds evenly spaced coordinates x_i = i*dx on the half-open interval [0, length).
// It is immutable; use Points for a copy of the coordinates.
type Grid struct {
	x      []float64
	dx     float64
	length float64
}

// NewGridFromPoints wraps precomputed coordinates. Callers must not modify x afterwards.
func NewGridFromPoints(x []float64, dx, length float64) Grid {
	return Grid{x: x, dx: dx, length: length}
}

func (g Grid) Len() int          { return len(g.x) }
func (g Grid) At(i int) float64  { return g.x[i] }
func (g Grid) Dx() float64       { return g.dx }
func (g Grid) Length() float64   { return g.length }
func (g Grid) Midpoint() float64 { return g.length / 2 }
func (g Grid) Points() []float64 {
	p := make([]float64, len(g.x))
	copy(p, g.x)
	return p
}

// Stepper advances a field by one time step. dst and src must have equal length
// and must not alias; only src is read.
type Stepper interface {
	StepInto(dst, src Field)
}

type Metric interface {
	Name() string
	Observe(c Field, t float64)
	Value() float64
	Reset()
}

// Observer receives the initial field once and every stepped field afterwards.
// Fields passed to observers are reused by the driver; clone to retain them.
type Observer interface {
	OnStart(g Grid, initial Field)
	OnStep(step int, t float64, c Field)
}
