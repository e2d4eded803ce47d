package main

import (
	"encoding/csv"
	"fmt"
	"math"
	"sort"
	"strconv"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/diffsim/internal/analysis"
	"github.com/san-kum/diffsim/internal/dynamo"
	"github.com/san-kum/diffsim/internal/storage"
	"github.com/san-kum/diffsim/internal/viz"
)

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		cmd.PrintErrln("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPROFILE\tTIME\tPOINTS\tSTEPS\tDT\tT_END")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%.6g\t%.4g\n",
			run.ID,
			run.Profile,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Points,
			run.Steps,
			run.Dt,
			run.Duration,
		)
	}

	return w.Flush()
}

func showRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	_, initial, final, err := st.LoadProfile(runID)
	if err != nil {
		return err
	}
	if len(final) == 0 {
		return fmt.Errorf("no data to plot")
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, viz.HeaderStyle.Render("run "+meta.ID))
	fmt.Fprintln(out, viz.Metric("Profile", meta.Profile))
	fmt.Fprintln(out, viz.Metric("Grid", fmt.Sprintf("%d points, dx=%g, Lx=%g", meta.Points, meta.Dx, meta.Length)))
	fmt.Fprintln(out, viz.Metric("Diffusivity", fmt.Sprintf("%g", meta.Diffusivity)))
	fmt.Fprintln(out, viz.Metric("Steps", fmt.Sprintf("%d (dt=%g, t=%g)", meta.Steps, meta.Dt, meta.Duration)))
	fmt.Fprintln(out)

	fmt.Fprintln(out, viz.PlotProfiles([][]float64{initial, final}, 80, 15, "initial (red) / final (blue)"))
	fmt.Fprintln(out)

	names := make([]string, 0, len(meta.Metrics))
	for name := range meta.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintln(out, viz.Metric(name, fmt.Sprintf("%.6g", meta.Metrics[name])))
	}
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	data, err := st.Export(args[0])
	if err != nil {
		return err
	}

	if outPath != "" {
		if err := storage.ExportJSON(outPath, data); err != nil {
			return fmt.Errorf("export %s: %w", outPath, err)
		}
		cmd.PrintErrf("exported to %s\n", outPath)
		return nil
	}
	return storage.WriteJSON(cmd.OutOrStdout(), data)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	snaps, times, err := st.LoadSnapshots(args[0])
	if err != nil {
		return err
	}
	if len(snaps) == 0 {
		return fmt.Errorf("no data to export")
	}

	w := csv.NewWriter(cmd.OutOrStdout())

	header := []string{"time"}
	for i := range snaps[0] {
		header = append(header, fmt.Sprintf("c%d", i))
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for i := range snaps {
		row := []string{strconv.FormatFloat(times[i], 'f', 6, 64)}
		for _, val := range snaps[i] {
			row = append(row, strconv.FormatFloat(val, 'f', 6, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	x, initial, final, err := st.LoadProfile(runID)
	if err != nil {
		return err
	}
	if len(final) < 2 {
		return fmt.Errorf("no data")
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "profile analysis: %s\n", meta.ID)
	fmt.Fprintf(out, "profile: %s, t=%g\n\n", meta.Profile, meta.Duration)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "\tMIN\tMAX\tMASS\tMAX_CURV\tWIDTH\tHF_FRACTION")
	for _, row := range []struct {
		name string
		c    dynamo.Field
	}{
		{"initial", initial},
		{"final", final},
	} {
		s := analysis.Summarize(x, row.c)
		fmt.Fprintf(w, "%s\t%.4g\t%.4g\t%.6g\t%.4g\t%.4g\t%.3e\n",
			row.name, s.Min, s.Max, s.Mass, s.MaxCurvature, s.Width,
			analysis.HighFrequencyFraction(row.c, cutoff))
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Fprintln(out)

	ps := analysis.PowerSpectrum(final)
	plotData := ps[1:max(len(ps)/4, 2)]
	for i, v := range plotData {
		plotData[i] = log10(v)
	}
	fmt.Fprintln(out, asciigraph.Plot(plotData,
		asciigraph.Height(12),
		asciigraph.Width(80),
		asciigraph.Caption("log10 power spectrum (final, detrended)"),
	))
	return nil
}

// log10 clamps empty bins so a flat spectrum still plots.
func log10(v float64) float64 {
	return math.Log10(max(v, 1e-300))
}
