package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/san-kum/diffsim/internal/dynamo"
)

func newRunCmd(t *testing.T, flags map[string]string) (*cobra.Command, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	preset, configFile = "", ""
	save, plotPath, plotInitial = false, "", false
	dataDir = t.TempDir()

	cmd := &cobra.Command{Use: "run", RunE: runSimulation}
	addSimFlags(cmd)
	for k, v := range flags {
		if err := cmd.Flags().Set(k, v); err != nil {
			t.Fatalf("set %s: %v", k, err)
		}
	}

	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetContext(context.Background())
	return cmd, &out, &errOut
}

func TestResolveConfig_Precedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	if err := os.WriteFile(path, []byte("steps: 42\ndx: 0.25\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cmd, _, _ := newRunCmd(t, map[string]string{"dx": "2"})
	preset = "slow"
	configFile = path

	cfg, err := resolveConfig(cmd)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Diffusivity != 10 {
		t.Errorf("preset diffusivity lost: %v", cfg.Diffusivity)
	}
	if cfg.Steps != 42 {
		t.Errorf("config file steps lost: %v", cfg.Steps)
	}
	if cfg.Dx != 2 {
		t.Errorf("flag should win over config file, got dx=%v", cfg.Dx)
	}
}

func TestResolveConfig_UnknownPreset(t *testing.T) {
	cmd, _, _ := newRunCmd(t, nil)
	preset = "nope"
	if _, err := resolveConfig(cmd); err == nil {
		t.Error("expected error for unknown preset")
	}
}

func TestRunSimulation_PrintsFinalProfile(t *testing.T) {
	cmd, out, errOut := newRunCmd(t, map[string]string{
		"length": "10", "dx": "1", "diffusivity": "1", "steps": "10",
	})

	if err := runSimulation(cmd, nil); err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 10 {
		t.Fatalf("expected 10 lines on stdout, got %d", len(lines))
	}
	if lines[0] != "0.000000" || lines[9] != "1.000000" {
		t.Errorf("boundaries changed: %q ... %q", lines[0], lines[9])
	}
	if !strings.Contains(errOut.String(), "completed 10 steps") {
		t.Errorf("status line missing from stderr: %q", errOut.String())
	}
}

func TestRunSimulation_Errors(t *testing.T) {
	cmd, out, _ := newRunCmd(t, map[string]string{"profile": "triangle"})
	err := runSimulation(cmd, nil)
	if !errors.Is(err, dynamo.ErrUnsupportedProfile) || !strings.Contains(err.Error(), "triangle") {
		t.Errorf("expected unsupported profile naming triangle, got %v", err)
	}
	if out.Len() != 0 {
		t.Error("nothing should reach stdout on error")
	}

	cmd, _, _ = newRunCmd(t, map[string]string{"dx": "0"})
	err = runSimulation(cmd, nil)
	if !errors.Is(err, dynamo.ErrInvalidParameter) || !strings.Contains(err.Error(), "dx") {
		t.Errorf("expected invalid dx, got %v", err)
	}
}

func TestRunSimulation_SaveAndPlot(t *testing.T) {
	cmd, _, errOut := newRunCmd(t, map[string]string{
		"length": "10", "dx": "1", "diffusivity": "1", "steps": "4",
	})
	save = true
	plotPath = filepath.Join(t.TempDir(), "profile.svg")
	plotInitial = true

	if err := runSimulation(cmd, nil); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(plotPath); err != nil {
		t.Errorf("plot not written: %v", err)
	}
	if !strings.Contains(errOut.String(), "run id: step_") {
		t.Errorf("run id missing: %q", errOut.String())
	}
}
