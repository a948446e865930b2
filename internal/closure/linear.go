package closure

import (
	"errors"

	"github.com/feiyulu/L96-demo/internal/ode"
)

// ErrArity indicates a state vector whose length does not match the
// closure's declared dimension.
var ErrArity = errors.New("closure: state length does not match declared dimension")

// Linear is a first-order fit U(x) = Intercept + Slope*x, the simplest
// non-trivial parameterization.
type Linear struct {
	dim       int
	Slope     float64
	Intercept float64
}

func NewLinear(dim int, slope, intercept float64) *Linear {
	return &Linear{dim: dim, Slope: slope, Intercept: intercept}
}

func (l *Linear) Dim() int { return l.dim }

func (l *Linear) Correct(x ode.State) (ode.State, error) {
	if len(x) != l.dim {
		return nil, ErrArity
	}
	u := make(ode.State, l.dim)
	for k, v := range x {
		u[k] = l.Intercept + l.Slope*v
	}
	return u, nil
}
