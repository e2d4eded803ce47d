package analysis

import "github.com/san-kum/diffsim/internal/dynamo"

type Summary struct {
	Min, Max     float64
	Mass         float64
	MaxCurvature float64
	// Width is the distance between the 10% and 90% crossings of the range
	// spanned by the two end points. Zero when the end points are equal.
	Width float64
}

func Summarize(x []float64, c dynamo.Field) Summary {
	s := Summary{MaxCurvature: c.MaxCurvature()}
	s.Min, s.Max = c.Bounds()
	if len(x) < 2 || len(c) != len(x) {
		return s
	}
	s.Mass = c.Integral(x[1] - x[0])

	a, b := c[0], c[len(c)-1]
	if a == b {
		return s
	}
	lo, ok1 := crossing(x, c, a+0.1*(b-a))
	hi, ok2 := crossing(x, c, a+0.9*(b-a))
	if ok1 && ok2 {
		s.Width = abs(hi - lo)
	}
	return s
}

// crossing returns the interpolated x of the first segment bracketing level.
func crossing(x []float64, c []float64, level float64) (float64, bool) {
	for i := 1; i < len(c); i++ {
		lo, hi := c[i-1], c[i]
		if (lo-level)*(hi-level) > 0 || lo == hi {
			continue
		}
		f := (level - lo) / (hi - lo)
		return x[i-1] + f*(x[i]-x[i-1]), true
	}
	return 0, false
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
