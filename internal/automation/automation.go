package automation

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/diffsim/internal/config"
	"github.com/san-kum/diffsim/internal/dynamo"
	"github.com/san-kum/diffsim/internal/experiment"
	"github.com/san-kum/diffsim/internal/physics"
	"github.com/san-kum/diffsim/internal/sim"
	"github.com/san-kum/diffsim/internal/storage"
)

// Scenario is a scripted sequence of runs loaded from YAML.
type Scenario struct {
	Name        string
	Description string
	Runs        []ScenarioRun
}

// ScenarioRun is one configuration in a scenario. Keys omitted in the file
// keep the values of config.DefaultConfig.
type ScenarioRun struct {
	Name          string `yaml:"name"`
	config.Config `yaml:",inline"`
	Save          bool   `yaml:"save"`
}

// ScenarioResult pairs a run with its outcome. RunID is set when the run was saved.
type ScenarioResult struct {
	Name   string
	Result *sim.Result
	RunID  string
}

type scenarioFile struct {
	Name        string      `yaml:"name"`
	Description string      `yaml:"description"`
	Runs        []yaml.Node `yaml:"runs"`
}

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseScenario(data)
}

func ParseScenario(data []byte) (*Scenario, error) {
	var raw scenarioFile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	sc := &Scenario{Name: raw.Name, Description: raw.Description, Runs: make([]ScenarioRun, 0, len(raw.Runs))}
	for i := range raw.Runs {
		run := ScenarioRun{Config: *config.DefaultConfig()}
		if err := raw.Runs[i].Decode(&run); err != nil {
			return nil, fmt.Errorf("run %d: %w", i+1, err)
		}
		if run.Name == "" {
			run.Name = fmt.Sprintf("%s-%d", run.Profile, i+1)
		}
		sc.Runs = append(sc.Runs, run)
	}
	return sc, nil
}

// RunScenario executes the runs in order and stops at the first failure.
// Runs marked save are persisted to st, which may be nil when none are.
func RunScenario(ctx context.Context, sc *Scenario, registry *experiment.Registry, st *storage.Store, progress io.Writer) ([]ScenarioResult, error) {
	results := make([]ScenarioResult, 0, len(sc.Runs))

	for i, run := range sc.Runs {
		fmt.Fprintf(progress, "running %d/%d: %s\n", i+1, len(sc.Runs), run.Name)

		exp := experiment.New(&run.Config)
		if err := exp.Setup(registry, registry.DefaultMetrics(run.Dx)); err != nil {
			return results, fmt.Errorf("run %d (%s) setup: %w", i+1, run.Name, err)
		}

		result, err := exp.Run(ctx)
		if err != nil {
			return results, fmt.Errorf("run %d (%s): %w", i+1, run.Name, err)
		}

		res := ScenarioResult{Name: run.Name, Result: result}
		if run.Save {
			if st == nil {
				return results, fmt.Errorf("run %d (%s): save requested without a store", i+1, run.Name)
			}
			if res.RunID, err = st.Save(exp.Config(), result); err != nil {
				return results, fmt.Errorf("run %d (%s) save: %w", i+1, run.Name, err)
			}
		}
		results = append(results, res)
	}

	return results, nil
}

// MonteCarloConfig perturbs the interior of Base's initial profile with
// uniform noise of the given amplitude, once per trial.
type MonteCarloConfig struct {
	Base         *config.Config
	Perturbation float64
	NumTrials    int
	Seed         int64
}

// MonteCarloResult records whether a trial stayed inside its initial range.
type MonteCarloResult struct {
	TrialID   int
	Initial   dynamo.Field
	Final     dynamo.Field
	Stability float64
	Stable    bool
}

// RunMonteCarlo checks the maximum principle against randomly perturbed
// initial profiles. End points are never perturbed.
func RunMonteCarlo(ctx context.Context, cfg *MonteCarloConfig, registry *experiment.Registry) ([]MonteCarloResult, error) {
	if err := cfg.Base.Validate(); err != nil {
		return nil, err
	}
	if !registry.Profiles().Has(cfg.Base.Profile) {
		return nil, &dynamo.ProfileError{Name: cfg.Base.Profile}
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	results := make([]MonteCarloResult, 0, cfg.NumTrials)
	for trial := 0; trial < cfg.NumTrials; trial++ {
		base, amp := cfg.Base.Profile, cfg.Perturbation
		noise := rng.Int63()

		profiles := physics.NewProfiles()
		profiles.Register(base, func(g dynamo.Grid) dynamo.Field {
			c, _ := registry.Profiles().New(base, g)
			r := rand.New(rand.NewSource(noise))
			for i := 1; i < len(c)-1; i++ {
				c[i] += (r.Float64() - 0.5) * 2 * amp
			}
			return c
		})

		s := sim.New(profiles)
		for _, m := range registry.DefaultMetrics(cfg.Base.Dx) {
			s.AddMetric(m)
		}

		result, err := s.Run(ctx, cfg.Base.SimConfig())
		if err != nil {
			return results, err
		}

		st := result.Metrics["stability"]
		results = append(results, MonteCarloResult{
			TrialID:   trial,
			Initial:   result.Initial,
			Final:     result.Final,
			Stability: st,
			Stable:    st == 1.0,
		})
	}

	return results, nil
}

// MonteCarloStats counts stable and unstable trials.
func MonteCarloStats(results []MonteCarloResult) (stableCount int, unstableCount int) {
	for _, r := range results {
		if r.Stable {
			stableCount++
		} else {
			unstableCount++
		}
	}
	return
}
