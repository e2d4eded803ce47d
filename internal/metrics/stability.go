package metrics

import (
	"github.com/san-kum/diffsim/internal/dynamo"
)

// Stability reports the fraction of observed fields that stay inside the
// [min, max] range of the first field. Diffusion obeys a maximum principle,
// so anything below 1.0 means the scheme overshot.
type Stability struct {
	name       string
	tolerance  float64
	lo, hi     float64
	violations int
	samples    int
}

func NewStability(tolerance float64) *Stability {
	return &Stability{
		name:      "stability",
		tolerance: tolerance,
	}
}

func (s *Stability) Name() string {
	return s.name
}

func (s *Stability) Observe(c dynamo.Field, t float64) {
	if s.samples == 0 {
		s.lo, s.hi = c.Bounds()
	}
	s.samples++
	lo, hi := c.Bounds()
	if lo < s.lo-s.tolerance || hi > s.hi+s.tolerance || !c.IsValid() {
		s.violations++
	}
}

func (s *Stability) Value() float64 {
	if s.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(s.violations)/float64(s.samples)
}

func (s *Stability) Reset() {
	s.violations = 0
	s.samples = 0
	s.lo, s.hi = 0, 0
}
