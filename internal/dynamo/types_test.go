package dynamo

import (
	"errors"
	"math"
	"strings"
	"sync/atomic"
	"testing"
)

func TestField_IsValid(t *testing.T) {
	tests := []struct {
		name  string
		field Field
		valid bool
	}{
		{"empty", Field{}, true},
		{"normal", Field{1.0, 2.0, 3.0}, true},
		{"zeros", Field{0.0, 0.0}, true},
		{"with NaN", Field{1.0, math.NaN()}, false},
		{"with +Inf", Field{1.0, math.Inf(1)}, false},
		{"with -Inf", Field{1.0, math.Inf(-1)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.field.IsValid(); got != tt.valid {
				t.Errorf("IsValid() = %v, want %v", got, tt.valid)
			}
		})
	}
}

func TestField_Bounds(t *testing.T) {
	lo, hi := Field{0.5, -1, 3, 2}.Bounds()
	if lo != -1 || hi != 3 {
		t.Errorf("Bounds() = (%v, %v), want (-1, 3)", lo, hi)
	}

	lo, hi = Field{}.Bounds()
	if lo != 0 || hi != 0 {
		t.Errorf("empty Bounds() = (%v, %v), want (0, 0)", lo, hi)
	}
}

func TestField_Integral(t *testing.T) {
	tests := []struct {
		field    Field
		dx       float64
		expected float64
	}{
		{Field{1, 1, 1}, 0.5, 1.0},
		{Field{0, 1, 2}, 1.0, 2.0},
		{Field{3}, 1.0, 0.0},
	}

	for _, tt := range tests {
		if got := tt.field.Integral(tt.dx); math.Abs(got-tt.expected) > 1e-12 {
			t.Errorf("Integral(%v, %v) = %v, want %v", tt.field, tt.dx, got, tt.expected)
		}
	}
}

func TestField_MaxCurvature(t *testing.T) {
	if got := (Field{0, 1, 2, 3}).MaxCurvature(); got != 0 {
		t.Errorf("linear ramp curvature = %v, want 0", got)
	}
	if got := (Field{0, 0, 0.5, 1, 1}).MaxCurvature(); got != 0.5 {
		t.Errorf("step curvature = %v, want 0.5", got)
	}
}

func TestField_Clone(t *testing.T) {
	src := Field{1, 2, 3}
	c := src.Clone()
	c[0] = 99
	if src[0] == 99 {
		t.Error("Clone did not create independent copy")
	}
}

func TestGrid_Points(t *testing.T) {
	g := NewGridFromPoints([]float64{0, 0.5, 1.0}, 0.5, 1.5)

	if g.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", g.Len())
	}
	if g.Midpoint() != 0.75 {
		t.Errorf("Midpoint() = %v, want 0.75", g.Midpoint())
	}

	p := g.Points()
	p[1] = 42
	if g.At(1) != 0.5 {
		t.Error("Points() exposed internal storage")
	}
}

func TestErrors(t *testing.T) {
	var err error = &ParameterError{Name: "dx", Value: -1}
	if !errors.Is(err, ErrInvalidParameter) {
		t.Error("ParameterError should match ErrInvalidParameter")
	}
	if !strings.Contains(err.Error(), "dx") {
		t.Errorf("ParameterError message %q does not name the parameter", err.Error())
	}

	err = &ProfileError{Name: "triangle"}
	if !errors.Is(err, ErrUnsupportedProfile) {
		t.Error("ProfileError should match ErrUnsupportedProfile")
	}
	if !strings.Contains(err.Error(), `"triangle"`) {
		t.Errorf("ProfileError message %q does not quote the name", err.Error())
	}

	err = &SimError{Step: 150, Time: 1.5, Wrapped: ErrInvalidField}
	if !errors.Is(err, ErrInvalidField) {
		t.Error("SimError should unwrap to its cause")
	}
	if !strings.HasPrefix(err.Error(), "step 150 (t=1.5000)") {
		t.Errorf("SimError.Error() = %q", err.Error())
	}
}

func TestParallelFor_CoversRange(t *testing.T) {
	tests := []struct {
		name            string
		start, end, min int
	}{
		{"empty", 5, 5, 4},
		{"serial", 0, 10, 64},
		{"split", 1, 1001, 16},
		{"zero chunk", 0, 100, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hits := make([]int32, tt.end+1)
			ParallelFor(tt.start, tt.end, tt.min, func(lo, hi int) {
				for i := lo; i < hi; i++ {
					atomic.AddInt32(&hits[i], 1)
				}
			})
			for i := range hits {
				want := int32(0)
				if i >= tt.start && i < tt.end {
					want = 1
				}
				if hits[i] != want {
					t.Fatalf("index %d visited %d times, want %d", i, hits[i], want)
				}
			}
		})
	}
}
