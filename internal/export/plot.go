package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/san-kum/diffsim/internal/dynamo"
)

const DefaultTitle = "Concentration profile"

type Format string

const (
	PNG Format = "png"
	SVG Format = "svg"
)

// FormatFromPath picks the image format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return PNG, nil
	case ".svg":
		return SVG, nil
	default:
		return "", fmt.Errorf("unsupported plot format %q (use .png or .svg)", filepath.Ext(path))
	}
}

// colors maps single-letter and named colour hints to stroke colours.
var colors = map[string]drawing.Color{
	"r": {R: 214, G: 39, B: 40, A: 255},
	"b": {R: 31, G: 119, B: 180, A: 255},
	"g": {R: 44, G: 160, B: 44, A: 255},
	"k": {R: 0, G: 0, B: 0, A: 255},
	"c": {R: 23, G: 190, B: 207, A: 255},
	"m": {R: 227, G: 119, B: 194, A: 255},
	"y": {R: 188, G: 189, B: 34, A: 255},
}

var colorNames = map[string]string{
	"red": "r", "blue": "b", "green": "g", "black": "k", "cyan": "c", "magenta": "m", "yellow": "y",
}

// Color resolves a colour hint. An empty hint is red.
func Color(hint string) (drawing.Color, error) {
	if hint == "" {
		hint = "r"
	}
	if short, ok := colorNames[strings.ToLower(hint)]; ok {
		hint = short
	}
	c, ok := colors[hint]
	if !ok {
		return drawing.Color{}, fmt.Errorf("unknown color %q", hint)
	}
	return c, nil
}

type PlotOptions struct {
	Title  string
	Color  string
	Width  int
	Height int
}

// Series is one labelled curve over shared x coordinates.
type Series struct {
	Name  string
	Color string
	C     []float64
}

// RenderProfile draws C against x with axes labelled "x" and "C".
func RenderProfile(w io.Writer, format Format, x, c []float64, opts PlotOptions) error {
	return RenderProfiles(w, format, x, []Series{{Name: "C", Color: opts.Color, C: c}}, opts)
}

// RenderProfiles draws several fields on one chart, e.g. initial and final.
func RenderProfiles(w io.Writer, format Format, x []float64, series []Series, opts PlotOptions) error {
	if len(x) < 2 {
		return fmt.Errorf("plot needs at least 2 points, got %d", len(x))
	}

	cs := make([]chart.Series, 0, len(series))
	for _, s := range series {
		if len(s.C) != len(x) {
			return fmt.Errorf("series %q has %d values for %d coordinates: %w", s.Name, len(s.C), len(x), dynamo.ErrDimensionMismatch)
		}
		stroke, err := Color(s.Color)
		if err != nil {
			return err
		}
		cs = append(cs, chart.ContinuousSeries{
			Name:    s.Name,
			XValues: x,
			YValues: s.C,
			Style:   chart.Style{StrokeColor: stroke, StrokeWidth: 2.0},
		})
	}

	title := opts.Title
	if title == "" {
		title = DefaultTitle
	}
	width, height := opts.Width, opts.Height
	if width <= 0 {
		width = 800
	}
	if height <= 0 {
		height = 500
	}

	graph := chart.Chart{
		Title:  title,
		Width:  width,
		Height: height,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20},
		},
		XAxis: chart.XAxis{
			Name:  "x",
			Style: chart.Style{FontSize: 10.0},
		},
		YAxis: chart.YAxis{
			Name:  "C",
			Style: chart.Style{FontSize: 10.0},
		},
		Series: cs,
	}
	if len(series) > 1 {
		graph.Elements = []chart.Renderable{chart.Legend(&graph)}
	}

	switch format {
	case PNG:
		return graph.Render(chart.PNG, w)
	case SVG:
		return graph.Render(chart.SVG, w)
	default:
		return fmt.Errorf("unsupported plot format %q", format)
	}
}

// SaveProfiles renders to path, choosing the format from its extension.
func SaveProfiles(path string, x []float64, series []Series, opts PlotOptions) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := RenderProfiles(f, format, x, series, opts); err != nil {
		return err
	}
	return f.Close()
}
