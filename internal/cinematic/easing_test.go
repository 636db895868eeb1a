package cinematic

import (
	"math"
	"testing"
)

func TestEasing_Endpoints(t *testing.T) {
	easings := []Easing{EasingLinear, EasingIn, EasingOut, EasingInOut, ""}

	for _, e := range easings {
		t.Run(string(e), func(t *testing.T) {
			if got := e.Apply(0); got != 0 {
				t.Errorf("Apply(0): expected 0, got %v", got)
			}
			if got := e.Apply(1); math.Abs(got-1) > 1e-12 {
				t.Errorf("Apply(1): expected 1, got %v", got)
			}
		})
	}
}

func TestEasing_KnownValues(t *testing.T) {
	tests := []struct {
		easing Easing
		t      float64
		want   float64
	}{
		{EasingLinear, 0.25, 0.25},
		{EasingIn, 0.5, 0.25},
		{EasingOut, 0.5, 0.75},
		{EasingInOut, 0.25, 0.125},
		{EasingInOut, 0.5, 0.5},
		{EasingInOut, 0.75, 0.875},
	}

	for _, tt := range tests {
		if got := tt.easing.Apply(tt.t); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("%s.Apply(%v): expected %v, got %v", tt.easing, tt.t, tt.want, got)
		}
	}
}

func TestEasing_Monotonic(t *testing.T) {
	for _, e := range []Easing{EasingLinear, EasingIn, EasingOut, EasingInOut} {
		prev := e.Apply(0)
		for i := 1; i <= 100; i++ {
			cur := e.Apply(float64(i) / 100)
			if cur < prev {
				t.Errorf("%s not monotonic at t=%v: %v < %v", e, float64(i)/100, cur, prev)
			}
			prev = cur
		}
	}
}

func TestEasing_Valid(t *testing.T) {
	tests := []struct {
		easing Easing
		want   bool
	}{
		{EasingLinear, true},
		{EasingIn, true},
		{EasingOut, true},
		{EasingInOut, true},
		{"", true},
		{"bounce", false},
		{"Linear", false}, // case sensitive
	}

	for _, tt := range tests {
		if got := tt.easing.Valid(); got != tt.want {
			t.Errorf("Valid(%q): expected %v, got %v", tt.easing, tt.want, got)
		}
	}
}
