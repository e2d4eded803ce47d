package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/san-kum/diffsim/internal/config"
	"github.com/san-kum/diffsim/internal/experiment"
)

var (
	dataDir string

	length        float64
	dx            float64
	diffusivity   float64
	steps         int
	profile       string
	snapshotEvery int
	configFile    string
	preset        string

	save        bool
	plotPath    string
	plotInitial bool
	plotColor   string
	plotTitle   string

	outPath string
	cutoff  float64

	sweepD     []float64
	sweepDx    []float64
	sweepSteps []float64
	sweepBy    string
	parallel   int

	trials       int
	perturbation float64
	seed         int64
)

// main registers the diffsim commands and exits with status 1 if any of them fails.
func main() {
	rootCmd := &cobra.Command{
		Use:          "diffsim",
		Short:        "1D explicit diffusion solver",
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".diffsim", "data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a simulation and print the final profile",
		Args:  cobra.NoArgs,
		RunE:  runSimulation,
	}
	addSimFlags(runCmd)
	runCmd.Flags().BoolVar(&save, "save", false, "persist the run under --data")
	runCmd.Flags().StringVar(&plotPath, "plot", "", "write a profile plot (.png or .svg)")
	runCmd.Flags().BoolVar(&plotInitial, "plot-initial", false, "include the initial profile in the plot")
	runCmd.Flags().StringVar(&plotColor, "color", "r", "plot colour hint (r, b, g, k, c, m, y)")
	runCmd.Flags().StringVar(&plotTitle, "title", "", "plot title")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "plot a saved run in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default stdout)")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run snapshots to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "profile summary and spectrum of a saved run",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().Float64Var(&cutoff, "cutoff", 0.25, "high-frequency cutoff as a fraction of Nyquist")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run a simulation with live terminal visualization",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}
	addSimFlags(liveCmd)

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "run a grid of configurations concurrently",
		Args:  cobra.NoArgs,
		RunE:  runSweep,
	}
	addSimFlags(sweepCmd)
	sweepCmd.Flags().Float64SliceVar(&sweepD, "d-values", nil, "diffusivities to try")
	sweepCmd.Flags().Float64SliceVar(&sweepDx, "dx-values", nil, "grid spacings to try")
	sweepCmd.Flags().Float64SliceVar(&sweepSteps, "steps-values", nil, "step counts to try")
	sweepCmd.Flags().StringVar(&sweepBy, "metric", "max_curvature", "metric to minimise")
	sweepCmd.Flags().IntVar(&parallel, "parallel", 0, "concurrent runs (default GOMAXPROCS)")

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run every configuration in a YAML scenario",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}

	monteCarloCmd := &cobra.Command{
		Use:   "montecarlo",
		Short: "check the maximum principle on randomly perturbed profiles",
		Args:  cobra.NoArgs,
		RunE:  runMonteCarlo,
	}
	addSimFlags(monteCarloCmd)
	monteCarloCmd.Flags().IntVar(&trials, "trials", 20, "number of trials")
	monteCarloCmd.Flags().Float64Var(&perturbation, "perturbation", 0.05, "noise amplitude added to interior points")
	monteCarloCmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 uses the clock)")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tPROFILE\tLENGTH\tDX\tD\tSTEPS")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%s\t%g\t%g\t%g\t%d\n", name, p.Profile, p.Length, p.Dx, p.Diffusivity, p.Steps)
			}
			return w.Flush()
		},
	}

	profilesCmd := &cobra.Command{
		Use:   "profiles",
		Short: "list initial profiles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range experiment.NewRegistry().ListProfiles() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}

	rootCmd.AddCommand(runCmd, listCmd, showCmd, exportJSONCmd, exportCSVCmd, analyzeCmd, liveCmd, sweepCmd, scenarioCmd, monteCarloCmd, presetsCmd, profilesCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func addSimFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&length, "length", config.DefaultLength, "domain length Lx")
	cmd.Flags().Float64Var(&dx, "dx", config.DefaultDx, "grid spacing")
	cmd.Flags().Float64Var(&diffusivity, "diffusivity", config.DefaultDiffusivity, "diffusion coefficient D")
	cmd.Flags().IntVar(&steps, "steps", config.DefaultSteps, "number of time steps")
	cmd.Flags().StringVar(&profile, "profile", config.DefaultProfile, "initial profile")
	cmd.Flags().IntVar(&snapshotEvery, "snapshot-every", 0, "keep a snapshot every n steps (0 disables)")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
}

// resolveConfig layers preset, config file and explicitly set flags, in that order.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.LoadOver(configFile, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("length") {
		cfg.Length = length
	}
	if flags.Changed("dx") {
		cfg.Dx = dx
	}
	if flags.Changed("diffusivity") {
		cfg.Diffusivity = diffusivity
	}
	if flags.Changed("steps") {
		cfg.Steps = steps
	}
	if flags.Changed("profile") {
		cfg.Profile = profile
	}
	if flags.Changed("snapshot-every") {
		cfg.SnapshotEvery = snapshotEvery
	}
	return cfg, nil
}
