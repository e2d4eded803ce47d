package metrics

import (
	"math"

	"github.com/san-kum/diffsim/internal/dynamo"
)

// Mass tracks the integral of the most recent field.
type Mass struct {
	name    string
	dx      float64
	current float64
	samples int
}

func NewMass(dx float64) *Mass {
	return &Mass{name: "mass", dx: dx}
}

func (m *Mass) Name() string { return m.name }

func (m *Mass) Observe(c dynamo.Field, t float64) {
	m.current = c.Integral(m.dx)
	m.samples++
}

func (m *Mass) Value() float64 { return m.current }

func (m *Mass) Reset() {
	m.current = 0
	m.samples = 0
}

// MassDrift is the largest relative change of the integral from its first value.
// Fixed end points act as sources and sinks, so drift is expected while the
// profile relaxes toward a linear ramp.
type MassDrift struct {
	name     string
	dx       float64
	initial  float64
	maxDrift float64
	samples  int
}

func NewMassDrift(dx float64) *MassDrift {
	return &MassDrift{name: "mass_drift", dx: dx}
}

func (m *MassDrift) Name() string { return m.name }

func (m *MassDrift) Observe(c dynamo.Field, t float64) {
	mass := c.Integral(m.dx)
	if m.samples == 0 {
		m.initial = mass
	}
	m.samples++

	if m.initial != 0 {
		drift := math.Abs(mass-m.initial) / math.Abs(m.initial)
		m.maxDrift = math.Max(m.maxDrift, drift)
	}
}

func (m *MassDrift) Value() float64 { return m.maxDrift }

func (m *MassDrift) Reset() {
	m.initial = 0
	m.maxDrift = 0
	m.samples = 0
}
