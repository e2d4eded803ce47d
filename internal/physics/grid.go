package physics

import (
	"fmt"
	"math"

	"github.com/san-kum/diffsim/internal/dynamo"
)

// MaxGridPoints caps ceil(length/dx) so a tiny dx cannot request an unallocatable field.
const MaxGridPoints = 1 << 27

// NewGrid builds x_i = i*dx for every x_i < length.
func NewGrid(length, dx float64) (dynamo.Grid, error) {
	n, err := GridPoints(length, dx)
	if err != nil {
		return dynamo.Grid{}, err
	}

	x := make([]float64, n)
	for i := range x {
		x[i] = float64(i) * dx
	}
	return dynamo.NewGridFromPoints(x, dx, length), nil
}

// GridPoints validates length and dx and returns the number of points NewGrid would build.
func GridPoints(length, dx float64) (int, error) {
	if err := Positive("length", length); err != nil {
		return 0, err
	}
	if err := Positive("dx", dx); err != nil {
		return 0, err
	}

	ratio := math.Ceil(length / dx)
	if math.IsInf(ratio, 0) || ratio > MaxGridPoints {
		return 0, &dynamo.ParameterError{
			Name:   "dx",
			Value:  dx,
			Reason: fmt.Sprintf("gives more than %d grid points for length %g", MaxGridPoints, length),
		}
	}

	n := int(ratio)
	// length/dx can round up past an exact multiple; keep the right endpoint excluded.
	for n > 0 && float64(n-1)*dx >= length {
		n--
	}
	return n, nil
}

// Positive rejects zero, negative, NaN and infinite values.
func Positive(name string, v float64) error {
	if !(v > 0) || math.IsInf(v, 0) {
		return &dynamo.ParameterError{Name: name, Value: v}
	}
	return nil
}
