package physics

import "golang.org/x/exp/constraints"

// StableTimeStep returns dt = 0.5*dx^2/D, the explicit-scheme stability bound
// with a 0.5 safety factor. The result is float64 for integer inputs too.
func StableTimeStep[T constraints.Integer | constraints.Float](dx, diffusivity T) (float64, error) {
	h, d := float64(dx), float64(diffusivity)
	if err := Positive("dx", h); err != nil {
		return 0, err
	}
	if err := Positive("diffusivity", d); err != nil {
		return 0, err
	}
	return 0.5 * h * h / d, nil
}
