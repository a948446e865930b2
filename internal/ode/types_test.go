package ode

import (
	"math"
	"testing"
)

func TestState_IsValid(t *testing.T) {
	tests := []struct {
		name  string
		state State
		valid bool
	}{
		{"empty", State{}, true},
		{"finite", State{1.0, -2.5, 0}, true},
		{"nan", State{1.0, math.NaN()}, false},
		{"pos inf", State{math.Inf(1)}, false},
		{"neg inf", State{0, math.Inf(-1)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.state.IsValid(); got != tt.valid {
				t.Errorf("IsValid() = %v, want %v", got, tt.valid)
			}
		})
	}
}

func TestState_MaxAbs(t *testing.T) {
	s := State{1.0, -7.5, 3.0}
	if got := s.MaxAbs(); got != 7.5 {
		t.Errorf("MaxAbs() = %f, want 7.5", got)
	}
	if got := (State{}).MaxAbs(); got != 0 {
		t.Errorf("MaxAbs() on empty = %f, want 0", got)
	}
}

func TestState_CloneIndependence(t *testing.T) {
	s := State{1, 2, 3}
	c := s.Clone()
	c[0] = 99
	if s[0] != 1 {
		t.Error("Clone shares backing array with original")
	}
}

func TestTrajectory_At(t *testing.T) {
	tr := &Trajectory{
		Times:  []float64{0, 0.1, 0.2},
		States: []State{{1}, {2}, nil},
	}

	if _, ok := tr.At(2); ok {
		t.Error("At should report unset for nil entry")
	}
	if _, ok := tr.At(-1); ok {
		t.Error("At should report unset for negative index")
	}
	if s, ok := tr.At(1); !ok || s[0] != 2 {
		t.Errorf("At(1) = %v, %v", s, ok)
	}
}
