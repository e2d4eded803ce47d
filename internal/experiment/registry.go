package experiment

import (
	"fmt"
	"sort"

	"github.com/san-kum/diffsim/internal/dynamo"
	"github.com/san-kum/diffsim/internal/metrics"
	"github.com/san-kum/diffsim/internal/physics"
)

type Registry struct {
	profiles *physics.Profiles
	metrics  map[string]func(dx float64) dynamo.Metric
}

func NewRegistry() *Registry {
	r := &Registry{
		profiles: physics.DefaultProfiles(),
		metrics:  make(map[string]func(float64) dynamo.Metric),
	}

	r.metrics["mass"] = func(dx float64) dynamo.Metric { return metrics.NewMass(dx) }
	r.metrics["mass_drift"] = func(dx float64) dynamo.Metric { return metrics.NewMassDrift(dx) }
	r.metrics["max_curvature"] = func(float64) dynamo.Metric { return metrics.NewCurvature() }
	r.metrics["boundary_drift"] = func(float64) dynamo.Metric { return metrics.NewBoundaryDrift() }
	r.metrics["stability"] = func(float64) dynamo.Metric { return metrics.NewStability(1e-9) }

	return r
}

func (r *Registry) Profiles() *physics.Profiles { return r.profiles }

func (r *Registry) RegisterProfile(name string, fn physics.ProfileFunc) {
	r.profiles.Register(name, fn)
}

func (r *Registry) ListProfiles() []string {
	return r.profiles.Names()
}

func (r *Registry) GetMetric(name string, dx float64) (dynamo.Metric, error) {
	fn, ok := r.metrics[name]
	if !ok {
		return nil, fmt.Errorf("unknown metric: %s", name)
	}
	return fn(dx), nil
}

func (r *Registry) ListMetrics() []string {
	names := make([]string, 0, len(r.metrics))
	for name := range r.metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultMetrics returns a fresh instance of every registered metric.
func (r *Registry) DefaultMetrics(dx float64) []dynamo.Metric {
	out := make([]dynamo.Metric, 0, len(r.metrics))
	for _, name := range r.ListMetrics() {
		out = append(out, r.metrics[name](dx))
	}
	return out
}
