package optim

import (
	"context"
	"errors"
	"fmt"
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/san-kum/diffsim/internal/config"
	"github.com/san-kum/diffsim/internal/experiment"
)

// BuildFunc turns one parameter combination into a ready-to-run experiment.
type BuildFunc func(params map[string]float64) (*experiment.Experiment, error)

// Point is the outcome of a single combination. Err holds build or run
// failures that do not stop the rest of the sweep.
type Point struct {
	Params  map[string]float64
	Metrics map[string]float64
	Err     error
}

type GridSearch struct {
	paramNames []string
	ranges     [][]float64
	limit      int
}

func NewGridSearch(params []string, ranges [][]float64) *GridSearch {
	return &GridSearch{paramNames: params, ranges: ranges, limit: runtime.GOMAXPROCS(0)}
}

// SetLimit bounds the number of simulations running at once. n <= 0 means GOMAXPROCS.
func (g *GridSearch) SetLimit(n int) {
	if n <= 0 {
		n = runtime.GOMAXPROCS(0)
	}
	g.limit = n
}

// Combinations returns the cartesian product of the ranges, last parameter varying fastest.
func (g *GridSearch) Combinations() []map[string]float64 {
	var out []map[string]float64
	g.combine(0, make(map[string]float64), &out)
	return out
}

func (g *GridSearch) combine(depth int, current map[string]float64, out *[]map[string]float64) {
	if depth == len(g.paramNames) {
		params := make(map[string]float64, len(current))
		for k, v := range current {
			params[k] = v
		}
		*out = append(*out, params)
		return
	}

	name := g.paramNames[depth]
	for _, val := range g.ranges[depth] {
		current[name] = val
		g.combine(depth+1, current, out)
	}
	delete(current, name)
}

// Sweep runs every combination concurrently. Points come back in Combinations order.
// Only context cancellation aborts the sweep; other failures land in Point.Err.
func (g *GridSearch) Sweep(ctx context.Context, build BuildFunc) ([]Point, error) {
	if len(g.paramNames) != len(g.ranges) {
		return nil, fmt.Errorf("optim: %d parameters but %d ranges", len(g.paramNames), len(g.ranges))
	}

	combos := g.Combinations()
	points := make([]Point, len(combos))

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(g.limit)

	for i, params := range combos {
		i, params := i, params
		points[i].Params = params
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			exp, err := build(params)
			if err != nil {
				points[i].Err = err
				return nil
			}
			result, err := exp.Run(ctx)
			if err != nil {
				if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
					return err
				}
				points[i].Err = err
				return nil
			}
			points[i].Metrics = result.Metrics
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return points, err
	}
	return points, nil
}

// Search sweeps the grid and returns the combination minimising metricName.
func (g *GridSearch) Search(ctx context.Context, build BuildFunc, metricName string) (map[string]float64, float64, error) {
	points, err := g.Sweep(ctx, build)
	if err != nil {
		return nil, 0, err
	}
	return Best(points, metricName)
}

// Best picks the successful point with the smallest value of metricName.
// Ties keep the earlier point.
func Best(points []Point, metricName string) (map[string]float64, float64, error) {
	best := math.Inf(1)
	var bestParams map[string]float64
	for _, p := range points {
		if p.Err != nil {
			continue
		}
		val, ok := p.Metrics[metricName]
		if !ok || math.IsNaN(val) {
			continue
		}
		if val < best || bestParams == nil {
			best = val
			bestParams = p.Params
		}
	}
	if bestParams == nil {
		return nil, 0, fmt.Errorf("optim: no successful run reported %q", metricName)
	}
	return bestParams, best, nil
}

// ApplyParams returns a copy of base with the named parameters overridden.
// Recognised names are length, dx, diffusivity and steps.
func ApplyParams(base *config.Config, params map[string]float64) (*config.Config, error) {
	cfg := base.Clone()
	for name, v := range params {
		switch name {
		case "length":
			cfg.Length = v
		case "dx":
			cfg.Dx = v
		case "diffusivity":
			cfg.Diffusivity = v
		case "steps":
			cfg.Steps = int(v)
		default:
			return nil, fmt.Errorf("optim: unknown parameter %q", name)
		}
	}
	return cfg, nil
}

// ConfigBuilder builds experiments from base plus each combination, attaching
// fresh instances of the named metrics.
func ConfigBuilder(r *experiment.Registry, base *config.Config, metricNames ...string) BuildFunc {
	return func(params map[string]float64) (*experiment.Experiment, error) {
		cfg, err := ApplyParams(base, params)
		if err != nil {
			return nil, err
		}
		exp := experiment.New(cfg)

		ms := r.DefaultMetrics(cfg.Dx)
		if len(metricNames) > 0 {
			ms = ms[:0]
			for _, name := range metricNames {
				m, err := r.GetMetric(name, cfg.Dx)
				if err != nil {
					return nil, err
				}
				ms = append(ms, m)
			}
		}

		if err := exp.Setup(r, ms); err != nil {
			return nil, err
		}
		return exp, nil
	}
}
