package physics

import "github.com/san-kum/diffsim/internal/dynamo"

// ParallelThreshold is the interior size above which a step is split across workers.
const ParallelThreshold = 4096

// Diffusion advances a field with the explicit FTCS scheme
//
//	C'[i] = C[i] + D*dt/dx^2 * (C[i-1] - 2C[i] + C[i+1])
//
// End points are copied unchanged, which holds them at their initial values.
type Diffusion struct {
	Diffusivity, Dx, Dt float64

	// MinChunk is the smallest index range handed to a worker. Zero means ParallelThreshold.
	MinChunk int
}

func NewDiffusion(diffusivity, dx, dt float64) (*Diffusion, error) {
	if err := Positive("diffusivity", diffusivity); err != nil {
		return nil, err
	}
	if err := Positive("dx", dx); err != nil {
		return nil, err
	}
	if err := Positive("dt", dt); err != nil {
		return nil, err
	}
	return &Diffusion{Diffusivity: diffusivity, Dx: dx, Dt: dt}, nil
}

// Coefficient returns r = D*dt/dx^2. The scheme is stable for r <= 0.5.
func (d *Diffusion) Coefficient() float64 {
	return d.Diffusivity * d.Dt / (d.Dx * d.Dx)
}

// StepInto writes the next field into dst, reading neighbours only from src.
func (d *Diffusion) StepInto(dst, src dynamo.Field) {
	n := len(src)
	if n == 0 {
		return
	}
	dst[0] = src[0]
	dst[n-1] = src[n-1]
	if n < 3 {
		return
	}

	r := d.Coefficient()
	minChunk := d.MinChunk
	if minChunk <= 0 {
		minChunk = ParallelThreshold
	}
	dynamo.ParallelFor(1, n-1, minChunk, func(lo, hi int) {
		for i := lo; i < hi; i++ {
			dst[i] = src[i] + r*(src[i-1]-2*src[i]+src[i+1])
		}
	})
}

// Step returns a new field one time step after src.
func (d *Diffusion) Step(src dynamo.Field) dynamo.Field {
	dst := make(dynamo.Field, len(src))
	d.StepInto(dst, src)
	return dst
}

// Run applies n steps to c and returns the result; c itself is not modified.
func (d *Diffusion) Run(c dynamo.Field, n int) dynamo.Field {
	cur, next := c.Clone(), make(dynamo.Field, len(c))
	for i := 0; i < n; i++ {
		d.StepInto(next, cur)
		cur, next = next, cur
	}
	return cur
}
