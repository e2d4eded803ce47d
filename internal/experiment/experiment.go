package experiment

import (
	"context"
	"fmt"

	"github.com/san-kum/diffsim/internal/config"
	"github.com/san-kum/diffsim/internal/dynamo"
	"github.com/san-kum/diffsim/internal/sim"
)

type Experiment struct {
	cfg       *config.Config
	simulator *sim.Simulator
}

func New(cfg *config.Config) *Experiment {
	return &Experiment{cfg: cfg.Clone()}
}

func (e *Experiment) Config() *config.Config { return e.cfg.Clone() }

// Setup validates the configuration and wires metrics and observers into a simulator
// backed by the registry's profiles.
func (e *Experiment) Setup(r *Registry, metrics []dynamo.Metric, observers ...dynamo.Observer) error {
	if err := e.cfg.Validate(); err != nil {
		return err
	}
	if !r.Profiles().Has(e.cfg.Profile) {
		return &dynamo.ProfileError{Name: e.cfg.Profile}
	}

	e.simulator = sim.New(r.Profiles())
	for _, m := range metrics {
		e.simulator.AddMetric(m)
	}
	for _, o := range observers {
		e.simulator.AddObserver(o)
	}
	return nil
}

func (e *Experiment) Run(ctx context.Context) (*sim.Result, error) {
	if e.simulator == nil {
		return nil, fmt.Errorf("experiment not setup")
	}
	return e.simulator.Run(ctx, e.cfg.SimConfig())
}

// GetSimulator returns the underlying simulator for adding observers
func (e *Experiment) GetSimulator() *sim.Simulator {
	return e.simulator
}
