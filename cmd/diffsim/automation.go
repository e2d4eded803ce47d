package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/san-kum/diffsim/internal/automation"
	"github.com/san-kum/diffsim/internal/experiment"
	"github.com/san-kum/diffsim/internal/storage"
)

func runScenario(cmd *cobra.Command, args []string) error {
	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return fmt.Errorf("failed to load scenario: %w", err)
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	if sc.Name != "" {
		cmd.PrintErrf("scenario %s: %d runs\n", sc.Name, len(sc.Runs))
	}
	results, err := automation.RunScenario(cmd.Context(), sc, experiment.NewRegistry(), st, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tSTEPS\tT_END\tMAX_CURV\tRUN_ID")
	for _, r := range results {
		id := r.RunID
		if id == "" {
			id = "-"
		}
		fmt.Fprintf(w, "%s\t%d\t%.4g\t%.4g\t%s\n", r.Name, r.Result.StepsTaken, r.Result.Duration(), r.Result.Metrics["max_curvature"], id)
	}
	return w.Flush()
}

func runMonteCarlo(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	results, err := automation.RunMonteCarlo(cmd.Context(), &automation.MonteCarloConfig{
		Base:         cfg,
		Perturbation: perturbation,
		NumTrials:    trials,
		Seed:         seed,
	}, experiment.NewRegistry())
	if err != nil {
		return err
	}

	stable, unstable := automation.MonteCarloStats(results)
	fmt.Fprintf(cmd.OutOrStdout(), "trials: %d\nstable: %d\nunstable: %d\n", len(results), stable, unstable)
	if unstable > 0 {
		return fmt.Errorf("%d of %d trials left the initial range", unstable, len(results))
	}
	return nil
}
