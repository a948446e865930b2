package l96

import (
	"context"

	"github.com/feiyulu/L96-demo/internal/closure"
	"github.com/feiyulu/L96-demo/internal/ode"
)

// GCM wraps the reduced model behind a run entry point: forcing, an
// integration scheme and an optional closure. It is the substitution
// seam for parameterizations; the driver and tendencies below it are
// agnostic to which closure (if any) is attached.
type GCM struct {
	F          float64
	Integrator ode.Integrator
	Closure    closure.Closure
}

func NewGCM(f float64, integ ode.Integrator, cl closure.Closure) *GCM {
	return &GCM{F: f, Integrator: integ, Closure: cl}
}

// Run integrates the reduced model from the slow initial condition x0.
// The closure arity is checked once here, before any stepping.
func (g *GCM) Run(ctx context.Context, x0 ode.State, cfg ode.Config) (*ode.Trajectory, error) {
	k := len(x0)
	if k < 1 {
		return nil, &ode.ConfigError{Field: "x0", Wrapped: ErrBadK}
	}
	if g.Closure != nil && g.Closure.Dim() != k {
		return nil, &ode.ConfigError{Field: "closure", Wrapped: ErrClosureArity}
	}

	sys := &OneScale{K: k, F: g.F, Closure: g.Closure}
	return ode.NewDriver(sys, g.Integrator).Run(ctx, x0, cfg)
}
