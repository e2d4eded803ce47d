package viz

import (
	"github.com/guptarohit/asciigraph"
)

// PlotProfile draws c as an asciigraph line chart. asciigraph interpolates the
// field onto width columns, so long fields are resampled rather than clipped.
func PlotProfile(c []float64, width, height int, caption string) string {
	if len(c) == 0 {
		return ""
	}
	opts := []asciigraph.Option{
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Precision(2),
	}
	if caption != "" {
		opts = append(opts, asciigraph.Caption(caption))
	}
	return asciigraph.Plot(c, opts...)
}

var seriesColors = []asciigraph.AnsiColor{
	asciigraph.Red,
	asciigraph.Blue,
	asciigraph.Green,
	asciigraph.Yellow,
}

// PlotProfiles overlays several fields, e.g. initial and final.
func PlotProfiles(series [][]float64, width, height int, caption string) string {
	data := make([][]float64, 0, len(series))
	for _, s := range series {
		if len(s) > 0 {
			data = append(data, s)
		}
	}
	if len(data) == 0 {
		return ""
	}
	colors := make([]asciigraph.AnsiColor, len(data))
	for i := range data {
		colors[i] = seriesColors[i%len(seriesColors)]
	}
	opts := []asciigraph.Option{
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Precision(2),
		asciigraph.SeriesColors(colors...),
	}
	if caption != "" {
		opts = append(opts, asciigraph.Caption(caption))
	}
	return asciigraph.PlotMany(data, opts...)
}
