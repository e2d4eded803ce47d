package main

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/san-kum/diffsim/internal/dynamo"
	"github.com/san-kum/diffsim/internal/experiment"
	"github.com/san-kum/diffsim/internal/export"
	"github.com/san-kum/diffsim/internal/optim"
	"github.com/san-kum/diffsim/internal/storage"
	"github.com/san-kum/diffsim/internal/viz"
)

// runSimulation prints the final profile to stdout. Everything else goes to stderr.
func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	registry := experiment.NewRegistry()
	exp := experiment.New(cfg)
	if err := exp.Setup(registry, registry.DefaultMetrics(cfg.Dx)); err != nil {
		return err
	}

	exp.GetSimulator().AddObserver(&progressObserver{w: cmd.ErrOrStderr(), total: cfg.Steps})

	cmd.PrintErrf("running %s: length=%g dx=%g D=%g steps=%d\n", cfg.Profile, cfg.Length, cfg.Dx, cfg.Diffusivity, cfg.Steps)
	start := time.Now()

	result, err := exp.Run(cmd.Context())
	if err != nil {
		return err
	}
	cmd.PrintErrf("completed %d steps in %v (dt=%g, t=%g)\n", result.StepsTaken, time.Since(start), result.Dt, result.Duration())

	if err := export.WriteText(cmd.OutOrStdout(), result.Final); err != nil {
		return fmt.Errorf("write profile: %w", err)
	}

	if plotPath != "" {
		series := []export.Series{{Name: "final", Color: plotColor, C: result.Final}}
		if plotInitial {
			series = append([]export.Series{{Name: "initial", Color: "k", C: result.Initial}}, series...)
		}
		opts := export.PlotOptions{Title: plotTitle, Color: plotColor}
		if err := export.SaveProfiles(plotPath, result.Grid.Points(), series, opts); err != nil {
			return fmt.Errorf("plot: %w", err)
		}
		cmd.PrintErrf("plot written to %s\n", plotPath)
	}

	if save {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(exp.Config(), result)
		if err != nil {
			return fmt.Errorf("save run: %w", err)
		}
		cmd.PrintErrf("run id: %s\n", runID)
	}

	names := make([]string, 0, len(result.Metrics))
	for name := range result.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		cmd.PrintErrf("  %s: %.6g\n", name, result.Metrics[name])
	}
	return nil
}

// progressObserver prints a status line at every tenth of the run.
type progressObserver struct {
	w     io.Writer
	total int
	every int
}

func (p *progressObserver) OnStart(g dynamo.Grid, initial dynamo.Field) {
	p.every = max(p.total/10, 1)
	fmt.Fprintf(p.w, "grid: %d points, dx=%g\n", g.Len(), g.Dx())
}

func (p *progressObserver) OnStep(step int, t float64, c dynamo.Field) {
	if step%p.every == 0 && step < p.total {
		fmt.Fprintf(p.w, "  step %d/%d t=%.4g\n", step, p.total, t)
	}
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	m, err := viz.NewModel(cfg.SimConfig(), experiment.NewRegistry().Profiles())
	if err != nil {
		return err
	}

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	_, err = p.Run()
	return err
}

func runSweep(cmd *cobra.Command, args []string) error {
	base, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	var names []string
	var ranges [][]float64
	for _, axis := range []struct {
		name   string
		values []float64
	}{
		{"diffusivity", sweepD},
		{"dx", sweepDx},
		{"steps", sweepSteps},
	} {
		if len(axis.values) > 0 {
			names = append(names, axis.name)
			ranges = append(ranges, axis.values)
		}
	}
	if len(names) == 0 {
		return fmt.Errorf("nothing to sweep: set --d-values, --dx-values or --steps-values")
	}

	registry := experiment.NewRegistry()
	if _, err := registry.GetMetric(sweepBy, base.Dx); err != nil {
		return err
	}

	gs := optim.NewGridSearch(names, ranges)
	gs.SetLimit(parallel)

	start := time.Now()
	points, err := gs.Sweep(cmd.Context(), optim.ConfigBuilder(registry, base))
	if err != nil {
		return err
	}
	cmd.PrintErrf("%d runs in %v\n", len(points), time.Since(start))

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, strings.ToUpper(strings.Join(names, "\t"))+"\t"+strings.ToUpper(sweepBy)+"\tERROR")
	for _, p := range points {
		cols := make([]string, 0, len(names)+2)
		for _, name := range names {
			cols = append(cols, fmt.Sprintf("%g", p.Params[name]))
		}
		if p.Err != nil {
			cols = append(cols, "-", p.Err.Error())
		} else {
			cols = append(cols, fmt.Sprintf("%.6g", p.Metrics[sweepBy]), "")
		}
		fmt.Fprintln(w, strings.Join(cols, "\t"))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	best, val, err := optim.Best(points, sweepBy)
	if err != nil {
		return err
	}
	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s=%g", name, best[name]))
	}
	cmd.PrintErrf("best %s: %.6g (%s)\n", sweepBy, val, strings.Join(parts, " "))
	return nil
}
