package ode

import (
	"context"
	"math"
)

// Driver advances a system through a fixed-step trajectory. It owns the
// history buffers; the integrator and system never see them.
type Driver struct {
	sys    System
	integ  Integrator
	guard  float64
}

func NewDriver(sys System, integ Integrator) *Driver {
	return &Driver{sys: sys, integ: integ, guard: DivergeThreshold}
}

// SetGuard overrides the divergence threshold. Zero disables the guard.
func (d *Driver) SetGuard(threshold float64) {
	d.guard = threshold
}

func (d *Driver) validate(x0 State, cfg Config) error {
	if d.sys == nil || d.integ == nil {
		return &ConfigError{Field: "driver", Wrapped: ErrNilSystem}
	}
	if cfg.Dt <= 0 || math.IsNaN(cfg.Dt) {
		return &ConfigError{Field: "dt", Wrapped: ErrNonPositiveStep}
	}
	if cfg.Steps < 0 {
		return &ConfigError{Field: "steps", Wrapped: ErrNegativeSteps}
	}
	if len(x0) != d.sys.StateDim() {
		return &ConfigError{Field: "x0", Wrapped: ErrDimensionMismatch}
	}
	return nil
}

// Run integrates Steps steps of size Dt from x0. The returned trajectory
// always holds the initial condition at index 0. Entries past an early
// termination remain nil rather than holding fabricated values; callers
// distinguish a clean run from a blow-up via Diverged/DivergedAt.
func (d *Driver) Run(ctx context.Context, x0 State, cfg Config) (*Trajectory, error) {
	if err := d.validate(x0, cfg); err != nil {
		return nil, err
	}

	n := cfg.Steps
	tr := &Trajectory{
		Times:      make([]float64, n+1),
		States:     make([]State, n+1),
		DivergedAt: -1,
	}
	for i := 0; i <= n; i++ {
		tr.Times[i] = float64(i) * cfg.Dt
	}

	coupler, hasCoupler := d.sys.(Coupler)
	if cfg.RecordCoupling && hasCoupler {
		tr.Coupling = make([]State, n+1)
	}

	x := x0.Clone()
	tr.States[0] = x.Clone()
	if tr.Coupling != nil {
		u, err := coupler.Coupling(x)
		if err != nil {
			return tr, &StepError{Step: 0, Time: tr.Times[0], Wrapped: err}
		}
		tr.Coupling[0] = u
	}

	for i := 0; i < n; i++ {
		select {
		case <-ctx.Done():
			return tr, ctx.Err()
		default:
		}

		next, err := d.integ.Step(d.sys, x, tr.Times[i], cfg.Dt)
		if err != nil {
			return tr, &StepError{Step: i, Time: tr.Times[i], Wrapped: err}
		}

		x = next
		tr.States[i+1] = x.Clone()
		if tr.Coupling != nil {
			u, err := coupler.Coupling(x)
			if err != nil {
				return tr, &StepError{Step: i, Time: tr.Times[i], Wrapped: err}
			}
			tr.Coupling[i+1] = u
		}
		tr.StepsTaken = i + 1

		if d.guard > 0 && (!x.IsValid() || x.MaxAbs() > d.guard) {
			tr.Diverged = true
			tr.DivergedAt = i + 1
			break
		}
	}

	return tr, nil
}
