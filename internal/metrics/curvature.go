package metrics

import "github.com/san-kum/diffsim/internal/dynamo"

// Curvature reports the maximum |second difference| of the latest field.
type Curvature struct {
	name    string
	current float64
}

func NewCurvature() *Curvature {
	return &Curvature{name: "max_curvature"}
}

func (c *Curvature) Name() string { return c.name }

func (c *Curvature) Observe(f dynamo.Field, t float64) {
	c.current = f.MaxCurvature()
}

func (c *Curvature) Value() float64 { return c.current }

func (c *Curvature) Reset() { c.current = 0 }

// BoundaryDrift reports the largest change seen at either end point.
// Fixed-value boundaries keep it at zero.
type BoundaryDrift struct {
	name        string
	left, right float64
	maxDrift    float64
	samples     int
}

func NewBoundaryDrift() *BoundaryDrift {
	return &BoundaryDrift{name: "boundary_drift"}
}

func (b *BoundaryDrift) Name() string { return b.name }

func (b *BoundaryDrift) Observe(f dynamo.Field, t float64) {
	if len(f) == 0 {
		return
	}
	if b.samples == 0 {
		b.left, b.right = f[0], f[len(f)-1]
	}
	b.samples++

	drift := max(abs(f[0]-b.left), abs(f[len(f)-1]-b.right))
	b.maxDrift = max(b.maxDrift, drift)
}

func (b *BoundaryDrift) Value() float64 { return b.maxDrift }

func (b *BoundaryDrift) Reset() {
	b.left, b.right = 0, 0
	b.maxDrift = 0
	b.samples = 0
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
