package export

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/diffsim/internal/dynamo"
)

func TestWriteText(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteText(&buf, []float64{0, 0.5, 1, 1.0 / 3, -2.25, 1234.5678915}); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	want := "0.000000\n0.500000\n1.000000\n0.333333\n-2.250000\n1234.567892\n"
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
}

func TestWriteText_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteText(&buf, nil); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("expected no output, got %q", buf.String())
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path string
		want Format
		ok   bool
	}{
		{"out.png", PNG, true},
		{"OUT.SVG", SVG, true},
		{"out.jpg", "", false},
		{"out", "", false},
	}

	for _, tt := range tests {
		got, err := FormatFromPath(tt.path)
		if (err == nil) != tt.ok || got != tt.want {
			t.Errorf("FormatFromPath(%q) = %q, %v", tt.path, got, err)
		}
	}
}

func TestColor(t *testing.T) {
	red, err := Color("")
	if err != nil {
		t.Fatalf("default color failed: %v", err)
	}
	named, _ := Color("red")
	if red != named {
		t.Error("empty hint should default to red")
	}

	if _, err := Color("b"); err != nil {
		t.Errorf("expected b to resolve: %v", err)
	}
	if _, err := Color("chartreuse"); err == nil {
		t.Error("expected unknown color error")
	}
}

func TestRenderProfile_SVG(t *testing.T) {
	x := []float64{0, 0.5, 1, 1.5}
	c := []float64{0, 0, 1, 1}

	var buf bytes.Buffer
	if err := RenderProfile(&buf, SVG, x, c, PlotOptions{Title: "Initial Profile", Color: "b"}); err != nil {
		t.Fatalf("render failed: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "<svg") {
		t.Fatal("output is not svg")
	}
	if !strings.Contains(out, "Initial Profile") {
		t.Error("svg missing title")
	}
}

func TestRenderProfile_Errors(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderProfile(&buf, PNG, []float64{0}, []float64{1}, PlotOptions{}); err == nil {
		t.Error("expected error for a single point")
	}
	if err := RenderProfile(&buf, PNG, []float64{0, 1}, []float64{1}, PlotOptions{}); !errors.Is(err, dynamo.ErrDimensionMismatch) {
		t.Errorf("expected dimension mismatch, got %v", err)
	}
	if err := RenderProfile(&buf, Format("gif"), []float64{0, 1}, []float64{0, 1}, PlotOptions{}); err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestSaveProfiles_PNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.png")
	x := []float64{0, 1, 2, 3}
	series := []Series{
		{Name: "initial", Color: "r", C: []float64{0, 0, 1, 1}},
		{Name: "final", Color: "b", C: []float64{0, 0.3, 0.7, 1}},
	}

	if err := SaveProfiles(path, x, series, PlotOptions{}); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("\x89PNG")) {
		t.Error("output is not a png")
	}
}
