package l96

import (
	"github.com/feiyulu/L96-demo/internal/closure"
	"github.com/feiyulu/L96-demo/internal/ode"
)

// SlowTendency computes the uncoupled slow equation
//
//	dX[k]/dt = -X[k-1]*(X[k-2] - X[k+1]) - X[k] + F - U[k]
//
// with indices cyclic mod K. A nil u means zero coupling. Pure, O(K).
func SlowTendency(x ode.State, f float64, u ode.State) ode.State {
	k := len(x)
	dx := make(ode.State, k)
	for i := 0; i < k; i++ {
		dx[i] = -x[cyc(i-1, k)]*(x[cyc(i-2, k)]-x[(i+1)%k]) - x[i] + f
		if u != nil {
			dx[i] -= u[i]
		}
	}
	return dx
}

// OneScale is the reduced single-time-scale system standing in for a
// GCM: the slow equation with an optional closure estimating the
// unresolved fast-scale effect. A nil Closure runs the plain uncoupled
// equation.
type OneScale struct {
	K       int
	F       float64
	Closure closure.Closure
}

func NewOneScale(k int, f float64) *OneScale {
	return &OneScale{K: k, F: f}
}

func (s *OneScale) StateDim() int { return s.K }

func (s *OneScale) Derive(x ode.State, _ float64) (ode.State, error) {
	var u ode.State
	if s.Closure != nil {
		var err error
		u, err = s.Closure.Correct(x)
		if err != nil {
			return nil, err
		}
	}
	return SlowTendency(x, s.F, u), nil
}

// Coupling reports the closure's correction at x, so a driver can
// record the parameterized forcing alongside the trajectory. Zero when
// no closure is attached; a closure failure propagates.
func (s *OneScale) Coupling(x ode.State) (ode.State, error) {
	if s.Closure == nil {
		return make(ode.State, s.K), nil
	}
	return s.Closure.Correct(x)
}
