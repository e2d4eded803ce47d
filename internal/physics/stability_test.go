package physics

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/san-kum/diffsim/internal/dynamo"
)

func TestStableTimeStep_IsFloat(t *testing.T) {
	dt, err := StableTimeStep(1, 1)
	if err != nil {
		t.Fatalf("StableTimeStep failed: %v", err)
	}
	if kind := reflect.TypeOf(dt).Kind(); kind != reflect.Float64 {
		t.Errorf("expected float64 time step, got %s", kind)
	}
	if dt != 0.5 {
		t.Errorf("expected 0.5, got %v", dt)
	}
}

func TestStableTimeStep_Values(t *testing.T) {
	tests := []struct {
		dx, d    float64
		expected float64
	}{
		{0.5, 100, 0.00125},
		{1, 2, 0.25},
		{2, 1, 2},
		{0.1, 0.01, 0.5},
	}

	for _, tt := range tests {
		dt, err := StableTimeStep(tt.dx, tt.d)
		if err != nil {
			t.Fatalf("StableTimeStep(%v, %v) failed: %v", tt.dx, tt.d, err)
		}
		if math.Abs(dt-tt.expected) > 1e-12 {
			t.Errorf("StableTimeStep(%v, %v) = %v, want %v", tt.dx, tt.d, dt, tt.expected)
		}
	}
}

func TestStableTimeStep_IntegerInputs(t *testing.T) {
	dt, err := StableTimeStep[int64](3, 9)
	if err != nil {
		t.Fatalf("StableTimeStep failed: %v", err)
	}
	if dt != 0.5 {
		t.Errorf("expected 0.5 without integer truncation, got %v", dt)
	}
}

func TestStableTimeStep_InvalidParameter(t *testing.T) {
	tests := []struct {
		name  string
		dx, d float64
	}{
		{"zero dx", 0, 1},
		{"negative dx", -1, 1},
		{"zero diffusivity", 1, 0},
		{"negative diffusivity", 1, -100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := StableTimeStep(tt.dx, tt.d); !errors.Is(err, dynamo.ErrInvalidParameter) {
				t.Errorf("expected ErrInvalidParameter, got %v", err)
			}
		})
	}
}
