package sim

import "github.com/san-kum/diffsim/internal/dynamo"

type Config struct {
	Length      float64
	Dx          float64
	Diffusivity float64
	Steps       int
	Profile     string

	// SnapshotEvery records the field every n steps. Zero records only the
	// initial and final fields.
	SnapshotEvery int

	// ValidateField aborts the run when a step produces NaN or Inf.
	ValidateField bool
}

func DefaultConfig() Config {
	return Config{
		Length:        300,
		Dx:            0.5,
		Diffusivity:   100,
		Steps:         5000,
		Profile:       "step",
		ValidateField: true,
	}
}

type Result struct {
	Grid       dynamo.Grid
	Initial    dynamo.Field
	Final      dynamo.Field
	Dt         float64
	StepsTaken int
	Times      []float64
	Snapshots  []dynamo.Field
	Metrics    map[string]float64
}

// Duration is the simulated time covered by the run.
func (r *Result) Duration() float64 {
	return float64(r.StepsTaken) * r.Dt
}
