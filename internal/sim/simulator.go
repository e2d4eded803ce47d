package sim

import (
	"context"

	"github.com/san-kum/diffsim/internal/dynamo"
	"github.com/san-kum/diffsim/internal/physics"
)

type Simulator struct {
	profiles  *physics.Profiles
	metrics   []dynamo.Metric
	observers []dynamo.Observer
}

// New returns a simulator resolving profile names through profiles.
// A nil registry uses physics.DefaultProfiles.
func New(profiles *physics.Profiles) *Simulator {
	if profiles == nil {
		profiles = physics.DefaultProfiles()
	}
	return &Simulator{
		profiles:  profiles,
		metrics:   make([]dynamo.Metric, 0),
		observers: make([]dynamo.Observer, 0),
	}
}

func (s *Simulator) AddMetric(m dynamo.Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o dynamo.Observer) { s.observers = append(s.observers, o) }

// Setup is a validated run: grid, initial field and a stepper fixed to a stable dt.
// Stepper starts out as Diffusion; callers of RunSetup may wrap or replace it.
type Setup struct {
	Grid      dynamo.Grid
	Initial   dynamo.Field
	Dt        float64
	Diffusion *physics.Diffusion
	Stepper   dynamo.Stepper
}

// Prepare builds the grid, the initial profile and the stepper for cfg.
// Errors from each stage are returned unchanged.
func (s *Simulator) Prepare(cfg Config) (*Setup, error) {
	grid, err := physics.NewGrid(cfg.Length, cfg.Dx)
	if err != nil {
		return nil, err
	}
	initial, err := s.profiles.New(cfg.Profile, grid)
	if err != nil {
		return nil, err
	}
	dt, err := physics.StableTimeStep(cfg.Dx, cfg.Diffusivity)
	if err != nil {
		return nil, err
	}
	stepper, err := physics.NewDiffusion(cfg.Diffusivity, cfg.Dx, dt)
	if err != nil {
		return nil, err
	}
	if cfg.Steps < 0 {
		return nil, &dynamo.ParameterError{Name: "steps", Value: float64(cfg.Steps)}
	}
	return &Setup{Grid: grid, Initial: initial, Dt: dt, Diffusion: stepper, Stepper: stepper}, nil
}

// Run applies the diffusion step exactly cfg.Steps times to the initial profile.
// On cancellation the partial result is returned together with ctx.Err().
func (s *Simulator) Run(ctx context.Context, cfg Config) (*Result, error) {
	setup, err := s.Prepare(cfg)
	if err != nil {
		return nil, err
	}
	return s.RunSetup(ctx, setup, cfg)
}

// RunSetup steps a prepared setup cfg.Steps times. Only Steps, SnapshotEvery
// and ValidateField are read from cfg.
func (s *Simulator) RunSetup(ctx context.Context, setup *Setup, cfg Config) (*Result, error) {
	if cfg.Steps < 0 {
		return nil, &dynamo.ParameterError{Name: "steps", Value: float64(cfg.Steps)}
	}

	result := &Result{
		Grid:    setup.Grid,
		Initial: setup.Initial.Clone(),
		Dt:      setup.Dt,
		Times:   make([]float64, 0, 2),
		Metrics: make(map[string]float64),
	}

	for _, m := range s.metrics {
		m.Reset()
		m.Observe(setup.Initial, 0)
	}
	for _, obs := range s.observers {
		obs.OnStart(setup.Grid, setup.Initial)
	}

	cur, next := setup.Initial.Clone(), make(dynamo.Field, len(setup.Initial))

	result.snapshot(cur, 0)

	t := 0.0
	for i := 0; i < cfg.Steps; i++ {
		select {
		case <-ctx.Done():
			result.finish(cur, t, s.metrics)
			return result, ctx.Err()
		default:
		}

		setup.Stepper.StepInto(next, cur)
		cur, next = next, cur
		t = float64(i+1) * setup.Dt
		result.StepsTaken++

		if cfg.ValidateField && !cur.IsValid() {
			result.finish(cur, t, s.metrics)
			return result, &dynamo.SimError{Step: i + 1, Time: t, Wrapped: dynamo.ErrInvalidField}
		}

		for _, m := range s.metrics {
			m.Observe(cur, t)
		}
		for _, obs := range s.observers {
			obs.OnStep(i+1, t, cur)
		}

		if cfg.SnapshotEvery > 0 && (i+1)%cfg.SnapshotEvery == 0 {
			result.snapshot(cur, t)
		}
	}

	result.finish(cur, t, s.metrics)
	return result, nil
}

func (r *Result) snapshot(c dynamo.Field, t float64) {
	r.Snapshots = append(r.Snapshots, c.Clone())
	r.Times = append(r.Times, t)
}

func (r *Result) finish(c dynamo.Field, t float64, metrics []dynamo.Metric) {
	r.Final = c.Clone()
	if last := len(r.Times) - 1; last < 0 || r.Times[last] != t {
		r.snapshot(c, t)
	}
	for _, m := range metrics {
		r.Metrics[m.Name()] = m.Value()
	}
}

// RunWithCallback steps cfg like Run but hands each field to callback instead
// of collecting a result. Returning false from callback stops the run early.
func (s *Simulator) RunWithCallback(ctx context.Context, cfg Config, callback func(step int, t float64, c dynamo.Field) bool) error {
	setup, err := s.Prepare(cfg)
	if err != nil {
		return err
	}

	cur, next := setup.Initial.Clone(), make(dynamo.Field, len(setup.Initial))
	if !callback(0, 0, cur) {
		return nil
	}
	for i := 0; i < cfg.Steps; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		setup.Stepper.StepInto(next, cur)
		cur, next = next, cur
		t := float64(i+1) * setup.Dt

		if cfg.ValidateField && !cur.IsValid() {
			return &dynamo.SimError{Step: i + 1, Time: t, Wrapped: dynamo.ErrInvalidField}
		}
		if !callback(i+1, t, cur) {
			return nil
		}
	}
	return nil
}
